package services

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"heimdall-http-service/config"
	"heimdall-http-service/models"
)

// InterfaceTrackingService 定义追踪服务接口
type InterfaceTrackingService interface {
	StartTracking(buildingID uint, eventID string, memberID uint) (*models.TrackingSessionInfo, error)
	StopTracking(eventID string, memberID uint)
	ReportLocation(eventID string, memberID uint, lat, lon float64) (*LocationReport, error)
	MarkSafe(eventID string, memberID uint) (*models.Attendee, error)
	MarkNotSafe(eventID string, memberID uint) (*models.Attendee, error)
	GetSession(eventID string, memberID uint) (*models.TrackingSessionInfo, error)
	HandleEventCompleted(eventID string) int
}

// LocationReport 是一次位置上报的处理结果
type LocationReport struct {
	Session        models.TrackingSessionInfo `json:"session"`
	EnteredRegions []Region                   `json:"entered_regions,omitempty"` // 本次新进入的区域
	Prompted       bool                       `json:"prompted"`                  // 本次上报是否触发了签到提示
}

// TrackingService 实现成员侧的紧急事件追踪
// 每个(事件, 成员)持有一个追踪会话：
// tracking -> prompted（进入集合点）-> safe（确认安全）⟷ tracking（撤销确认），
// 事件结束是正交终态，由HandleEventCompleted统一处理
type TrackingService struct {
	DB        *gorm.DB
	Config    *config.Config
	Geofence  InterfaceGeofenceService
	Attendees InterfaceAttendeeService
	Push      InterfacePushService
	Sessions  *models.SessionManager
}

// NewTrackingService 创建一个新的追踪服务
func NewTrackingService(
	db *gorm.DB,
	cfg *config.Config,
	geofenceService InterfaceGeofenceService,
	attendeeService InterfaceAttendeeService,
	pushService InterfacePushService,
) InterfaceTrackingService {
	return &TrackingService{
		DB:        db,
		Config:    cfg,
		Geofence:  geofenceService,
		Attendees: attendeeService,
		Push:      pushService,
		Sessions:  models.NewSessionManager(),
	}
}

// loadActiveEvent 加载事件并校验归属与状态
func (s *TrackingService) loadActiveEvent(eventID string) (*models.Event, error) {
	var event models.Event
	if err := s.DB.First(&event, "id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("事件不存在")
		}
		return nil, err
	}
	return &event, nil
}

// 1. StartTracking 开始追踪
// 解析事件的紧急类型、注册集合点区域、创建会话并隐式创建出勤记录。
// 重复开始是幂等的；紧急类型缺失是终态错误，不重试
func (s *TrackingService) StartTracking(buildingID uint, eventID string, memberID uint) (*models.TrackingSessionInfo, error) {
	event, err := s.loadActiveEvent(eventID)
	if err != nil {
		return nil, err
	}
	if event.BuildingID != buildingID {
		return nil, errors.New("事件不属于该楼宇")
	}
	if event.IsCompleted() {
		return nil, errors.New("事件已结束")
	}

	// 在楼宇范围内解析紧急类型，取其集合点
	var emergencyType models.EmergencyType
	err = s.DB.Where("building_id = ? AND id = ?", buildingID, event.EmergencyTypeID).
		Preload("AssemblyPoints").
		First(&emergencyType).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("紧急类型不存在")
		}
		return nil, err
	}

	// 注册集合点区域；平台层面的注册失败属于软失败，这里注册总是成功
	s.Geofence.RegisterEventRegions(eventID, emergencyType.AssemblyPoints)

	session := s.Sessions.CreateSession(eventID, memberID, buildingID)

	// 首次交互隐式创建出勤记录（in_progress）
	if _, err := s.Attendees.GetAttendee(eventID, memberID); err != nil {
		if _, err := s.Attendees.UpsertStatus(eventID, memberID, models.AttendeeStatusInProgress, nil); err != nil {
			log.Printf("创建出勤记录失败: 事件=%s, 成员=%d, 错误=%v", eventID, memberID, err)
		}
	}

	info := session.Snapshot()
	return &info, nil
}

// 2. StopTracking 停止追踪并移除会话，重复调用是安全的
func (s *TrackingService) StopTracking(eventID string, memberID uint) {
	s.Sessions.EndSession(eventID, memberID)
}

// 3. ReportLocation 处理一次位置上报
// 首次进入任一集合点区域时将会话置为prompted并下发签到提示；
// 已在prompted或safe状态时后续进入均为no-op
func (s *TrackingService) ReportLocation(eventID string, memberID uint, lat, lon float64) (*LocationReport, error) {
	session, exists := s.Sessions.GetSession(eventID, memberID)
	if !exists {
		return nil, errors.New("追踪会话不存在，请先开始追踪")
	}

	// 事件结束后不再处理位置上报
	event, err := s.loadActiveEvent(eventID)
	if err == nil && event.IsCompleted() {
		s.HandleEventCompleted(eventID)
		info := session.Snapshot()
		return &LocationReport{Session: info}, nil
	}

	entered := s.Geofence.CheckLocation(eventID, memberID, lat, lon)

	report := &LocationReport{EnteredRegions: entered}

	// 进入任一区域即触发提示，先到先得，重复进入不再提示
	if len(entered) > 0 && session.Prompt(entered[0].Name) {
		report.Prompted = true

		if s.Push != nil {
			if err := s.Push.PublishCheckInPrompt(eventID, memberID, entered[0].Name); err != nil {
				log.Printf("发布签到提示失败: 事件=%s, 成员=%d, 错误=%v", eventID, memberID, err)
			}
		}
	}

	report.Session = session.Snapshot()
	return report, nil
}

// 4. MarkSafe 成员确认安全
// 写入存储后以回读结果更新会话，不做本地乐观更新
func (s *TrackingService) MarkSafe(eventID string, memberID uint) (*models.Attendee, error) {
	attendee, err := s.Attendees.UpsertStatus(eventID, memberID, models.AttendeeStatusSafe, nil)
	if err != nil {
		return nil, err
	}

	if session, exists := s.Sessions.GetSession(eventID, memberID); exists {
		// 以存储回读的状态为准
		if attendee.IsSafe() {
			session.SetSafe()
		}
	}

	return attendee, nil
}

// 5. MarkNotSafe 成员撤销安全确认，回到追踪状态
func (s *TrackingService) MarkNotSafe(eventID string, memberID uint) (*models.Attendee, error) {
	attendee, err := s.Attendees.UpsertStatus(eventID, memberID, models.AttendeeStatusInProgress, nil)
	if err != nil {
		return nil, err
	}

	if session, exists := s.Sessions.GetSession(eventID, memberID); exists {
		if !attendee.IsSafe() {
			session.SetNotSafe()
		}
	}

	return attendee, nil
}

// 6. GetSession 获取会话快照
func (s *TrackingService) GetSession(eventID string, memberID uint) (*models.TrackingSessionInfo, error) {
	session, exists := s.Sessions.GetSession(eventID, memberID)
	if !exists {
		return nil, errors.New("追踪会话不存在")
	}

	info := session.Snapshot()
	return &info, nil
}

// 7. HandleEventCompleted 处理事件结束
// 无条件停止该事件的所有追踪，清除区域注册与进入标记；
// 对重复结束通知幂等，返回实际被结束的会话数
func (s *TrackingService) HandleEventCompleted(eventID string) int {
	completed := s.Sessions.CompleteEventSessions(eventID)
	s.Geofence.ClearEventRegions(eventID)
	return completed
}

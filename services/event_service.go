package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"heimdall-http-service/config"
	"heimdall-http-service/models"
)

// InterfaceEventService 定义事件服务接口
type InterfaceEventService interface {
	TriggerEvent(req *TriggerEventRequest) (*TriggerEventResult, error)
	StopEvent(eventID string, actorID uint) (*models.Event, error)
	GetEventByID(eventID string) (*models.Event, error)
	GetEvents(buildingID uint, page, pageSize int) ([]models.Event, int64, error)
	GetActiveEvents(buildingID uint) ([]models.Event, error)
}

// TriggerEventRequest 触发事件的请求参数
type TriggerEventRequest struct {
	BuildingID        uint
	EmergencyTypeID   uint
	EmergencyTypeName string
	EventType         string // drill, alert
	TriggeredBy       uint
}

// TriggerEventResult 触发事件的结果
// 事件创建成功即视为成功，通知下发是尽力而为
type TriggerEventResult struct {
	Event              *models.Event `json:"event"`
	NotifiedCount      int           `json:"notified_count"`       // 实际尝试下发的通知数
	SkippedCount       int           `json:"skipped_count"`        // 因无推送令牌被跳过的成员数
	NotifyFailureCount int           `json:"notify_failure_count"` // 下发失败数（不影响整体成功）
}

// EventService 提供紧急事件相关服务
// 事件只能经由本服务创建，保证管理员权限校验不被绕过
type EventService struct {
	DB       *gorm.DB
	Config   *config.Config
	Push     InterfacePushService
	Tracking InterfaceTrackingService
}

// NewEventService 创建一个新的事件服务
func NewEventService(db *gorm.DB, cfg *config.Config, pushService InterfacePushService, trackingService InterfaceTrackingService) InterfaceEventService {
	return &EventService{
		DB:       db,
		Config:   cfg,
		Push:     pushService,
		Tracking: trackingService,
	}
}

// 1. TriggerEvent 触发紧急事件（警报或演练）
// 权限校验：触发者必须是该楼宇的管理员；
// 事件创建后向所有持有推送令牌的成员下发警报，无令牌成员静默跳过
func (s *EventService) TriggerEvent(req *TriggerEventRequest) (*TriggerEventResult, error) {
	if req.EventType != models.EventTypeDrill && req.EventType != models.EventTypeAlert {
		return nil, errors.New("无效的事件类型")
	}

	// 权限校验：仅管理员可触发
	var actor models.Member
	if err := s.DB.Where("id = ? AND building_id = ?", req.TriggeredBy, req.BuildingID).First(&actor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("触发者不属于该楼宇")
		}
		return nil, err
	}
	if actor.Role != models.RoleAdmin {
		return nil, errors.New("没有权限触发警报，需要管理员角色")
	}

	// 在楼宇范围内解析紧急类型
	var emergencyType models.EmergencyType
	if err := s.DB.Where("building_id = ? AND id = ?", req.BuildingID, req.EmergencyTypeID).First(&emergencyType).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("紧急类型不存在")
		}
		return nil, err
	}

	typeName := req.EmergencyTypeName
	if typeName == "" {
		typeName = emergencyType.Name
	}

	event := &models.Event{
		ID:              uuid.New().String(),
		BuildingID:      req.BuildingID,
		EmergencyTypeID: emergencyType.ID,
		Name:            fmt.Sprintf("%s %s", typeName, time.Now().Format("2006-01-02 15:04")),
		Type:            req.EventType,
		Status:          models.EventStatusActive,
		TriggeredBy:     req.TriggeredBy,
		StartedAt:       time.Now(),
	}

	// 事件创建失败才是整体失败
	if err := s.DB.Create(event).Error; err != nil {
		return nil, err
	}

	// 加载楼宇全部成员做通知扇出
	var members []models.Member
	if err := s.DB.Where("building_id = ?", req.BuildingID).Find(&members).Error; err != nil {
		// 事件已创建，成员查询失败只影响通知
		log.Printf("加载楼宇成员失败，跳过通知下发: 楼宇=%d, 错误=%v", req.BuildingID, err)
		return &TriggerEventResult{Event: event}, nil
	}

	alertMsg := &AlertMessage{
		AlertType:         event.Type,
		BuildingID:        event.BuildingID,
		EventID:           event.ID,
		EmergencyTypeID:   event.EmergencyTypeID,
		EmergencyTypeName: typeName,
		EventName:         event.Name,
	}

	attempted, skipped, failed := FanOutAlert(s.Push, members, alertMsg)

	result := &TriggerEventResult{
		Event:              event,
		NotifiedCount:      attempted,
		SkippedCount:       skipped,
		NotifyFailureCount: failed,
	}

	log.Printf("触发事件: ID=%s, 类型=%s, 通知=%d, 跳过=%d, 失败=%d",
		event.ID, event.Type, attempted, skipped, failed)

	return result, nil
}

// FanOutAlert 向成员列表下发警报
// 无推送令牌的成员静默跳过；单个下发失败记录日志但不中断。
// 返回(尝试下发数, 跳过数, 失败数)
func FanOutAlert(push InterfacePushService, members []models.Member, msg *AlertMessage) (attempted, skipped, failed int) {
	for _, member := range members {
		if member.PushToken == "" {
			skipped++
			continue
		}

		attempted++
		if push == nil {
			failed++
			continue
		}

		msgCopy := *msg
		if err := push.PublishAlertToMember(member.PushToken, &msgCopy); err != nil {
			log.Printf("下发警报失败: 成员=%d, 错误=%v", member.ID, err)
			failed++
		}
	}

	return attempted, skipped, failed
}

// 2. StopEvent 结束事件
// 权限校验：协调员或管理员；事件置为completed并记录结束时间（终态）。
// 对已结束事件重复调用无害，直接返回当前状态
func (s *EventService) StopEvent(eventID string, actorID uint) (*models.Event, error) {
	event, err := s.GetEventByID(eventID)
	if err != nil {
		return nil, err
	}

	var actor models.Member
	if err := s.DB.Where("id = ? AND building_id = ?", actorID, event.BuildingID).First(&actor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("操作者不属于该楼宇")
		}
		return nil, err
	}
	if !actor.IsCoordinator() {
		return nil, errors.New("没有权限结束事件，需要协调员或管理员角色")
	}

	// 重复结束是无害写入
	if event.IsCompleted() {
		return event, nil
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":   models.EventStatusCompleted,
		"ended_at": now,
	}
	if err := s.DB.Model(event).Updates(updates).Error; err != nil {
		return nil, err
	}

	event.Status = models.EventStatusCompleted
	event.EndedAt = &now

	// 发布事件状态变更（尽力而为）
	if s.Push != nil {
		if err := s.Push.PublishEventStatus(event); err != nil {
			log.Printf("发布事件状态变更失败: 事件=%s, 错误=%v", eventID, err)
		}
	}

	// 停止该事件的所有追踪会话并清除地理围栏
	if s.Tracking != nil {
		s.Tracking.HandleEventCompleted(eventID)
	}

	return event, nil
}

// 3. GetEventByID 根据ID获取事件
func (s *EventService) GetEventByID(eventID string) (*models.Event, error) {
	var event models.Event
	if err := s.DB.First(&event, "id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("事件不存在")
		}
		return nil, err
	}
	return &event, nil
}

// 4. GetEvents 获取楼宇的事件列表，按开始时间倒序分页
func (s *EventService) GetEvents(buildingID uint, page, pageSize int) ([]models.Event, int64, error) {
	var events []models.Event
	var total int64

	query := s.DB.Model(&models.Event{}).Where("building_id = ?", buildingID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := query.Order("started_at DESC").Limit(pageSize).Offset(offset).Find(&events).Error; err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

// 5. GetActiveEvents 获取楼宇的进行中事件
func (s *EventService) GetActiveEvents(buildingID uint) ([]models.Event, error) {
	var events []models.Event
	err := s.DB.Where("building_id = ? AND status = ?", buildingID, models.EventStatusActive).
		Order("started_at DESC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

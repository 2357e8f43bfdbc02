package services

import (
	"errors"
	"log"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"heimdall-http-service/config"
	"heimdall-http-service/models"
)

// InterfaceAttendeeService 定义出勤服务接口
type InterfaceAttendeeService interface {
	GetRoster(eventID string) ([]models.Attendee, error)
	GetRosterSummary(eventID string, search string) (*RosterSummary, error)
	UpsertStatus(eventID string, memberID uint, status string, checkedInBy *uint) (*models.Attendee, error)
	ManualCheckIn(eventID string, memberID uint, actorID uint) (*models.Attendee, error)
	GetAttendee(eventID string, memberID uint) (*models.Attendee, error)
}

// RosterSummary 是协调员视角的花名册聚合视图
// 每次请求基于全量记录重新计算，不做增量维护
type RosterSummary struct {
	Total           int               `json:"total"`
	SafeCount       int               `json:"safe_count"`
	InProgressCount int               `json:"in_progress_count"`
	Safe            []models.Attendee `json:"safe"`
	InProgress      []models.Attendee `json:"in_progress"`
}

// AttendeeService 提供事件出勤相关的服务
type AttendeeService struct {
	DB     *gorm.DB
	Config *config.Config
	Redis  InterfaceRedisService
	Push   InterfacePushService
}

// NewAttendeeService 创建一个新的出勤服务
func NewAttendeeService(db *gorm.DB, cfg *config.Config, redisService InterfaceRedisService, pushService InterfacePushService) InterfaceAttendeeService {
	return &AttendeeService{
		DB:     db,
		Config: cfg,
		Redis:  redisService,
		Push:   pushService,
	}
}

// rosterCacheTTL 花名册缓存时效
const rosterCacheTTL = 10 * time.Minute

// 1. GetRoster 获取事件的完整出勤记录
// 数据库不可用时回退到缓存的最后已知花名册，宁可显示过期数据也不清空
func (s *AttendeeService) GetRoster(eventID string) ([]models.Attendee, error) {
	var roster []models.Attendee
	if err := s.DB.Where("event_id = ?", eventID).Find(&roster).Error; err != nil {
		log.Printf("查询花名册失败，回退到缓存: 事件=%s, 错误=%v", eventID, err)

		if s.Redis != nil {
			cached, cacheErr := s.Redis.GetCachedRoster(eventID)
			if cacheErr == nil {
				return cached, nil
			}
		}
		return nil, err
	}

	// 成功读取后刷新缓存，失败只记录不影响主流程
	if s.Redis != nil {
		if err := s.Redis.CacheRoster(eventID, roster, rosterCacheTTL); err != nil {
			log.Printf("缓存花名册失败: 事件=%s, 错误=%v", eventID, err)
		}
	}

	return roster, nil
}

// 2. GetRosterSummary 获取聚合视图：计数 + 按搜索词过滤并排序的子集
func (s *AttendeeService) GetRosterSummary(eventID string, search string) (*RosterSummary, error) {
	roster, err := s.GetRoster(eventID)
	if err != nil {
		return nil, err
	}

	summary := BuildRosterSummary(roster, search)
	return &summary, nil
}

// BuildRosterSummary 基于全量出勤记录计算聚合视图
// 计数始终基于未过滤的全集，满足 total == safe + in_progress；
// 过滤为大小写不敏感的子串匹配，空搜索词返回全集
func BuildRosterSummary(roster []models.Attendee, search string) RosterSummary {
	summary := RosterSummary{
		Total:      len(roster),
		Safe:       []models.Attendee{},
		InProgress: []models.Attendee{},
	}

	for _, attendee := range roster {
		if attendee.IsSafe() {
			summary.SafeCount++
		} else {
			summary.InProgressCount++
		}
	}

	for _, attendee := range FilterAttendeesByName(roster, search) {
		if attendee.IsSafe() {
			summary.Safe = append(summary.Safe, attendee)
		} else {
			summary.InProgress = append(summary.InProgress, attendee)
		}
	}

	SortAttendeesByName(summary.Safe)
	SortAttendeesByName(summary.InProgress)

	return summary
}

// FilterAttendeesByName 按显示名做大小写不敏感的子串过滤
func FilterAttendeesByName(roster []models.Attendee, search string) []models.Attendee {
	if search == "" {
		return roster
	}

	needle := strings.ToLower(search)
	var filtered []models.Attendee
	for _, attendee := range roster {
		if strings.Contains(strings.ToLower(attendee.Name), needle) {
			filtered = append(filtered, attendee)
		}
	}
	return filtered
}

// SortAttendeesByName 按显示名升序排序
func SortAttendeesByName(roster []models.Attendee) {
	sort.Slice(roster, func(i, j int) bool {
		return roster[i].Name < roster[j].Name
	})
}

// 3. UpsertStatus 合并写入出勤状态
// (事件, 成员)对应的记录不存在时隐式创建；safe状态由服务端写入时间戳。
// 写入后发布变更消息，权威状态以存储为准回读
func (s *AttendeeService) UpsertStatus(eventID string, memberID uint, status string, checkedInBy *uint) (*models.Attendee, error) {
	if status != models.AttendeeStatusInProgress && status != models.AttendeeStatusSafe {
		return nil, errors.New("无效的出勤状态")
	}

	// 校验事件存在且未结束
	var event models.Event
	if err := s.DB.First(&event, "id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("事件不存在")
		}
		return nil, err
	}
	if event.IsCompleted() {
		return nil, errors.New("事件已结束")
	}

	// 成员必须属于事件所在楼宇
	var member models.Member
	if err := s.DB.Where("id = ? AND building_id = ?", memberID, event.BuildingID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("成员不属于该楼宇")
		}
		return nil, err
	}

	attendee := models.Attendee{
		EventID:     eventID,
		MemberID:    memberID,
		Name:        member.Name, // 显示名快照
		Phone:       member.Phone,
		Status:      status,
		CheckedInBy: checkedInBy,
	}

	if status == models.AttendeeStatusSafe {
		now := time.Now()
		attendee.SafeAt = &now
	}

	// 按(event_id, member_id)合并写入，每次安全确认刷新时间戳
	err := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}, {Name: "member_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "safe_at", "checked_in_by", "updated_at"}),
	}).Create(&attendee).Error
	if err != nil {
		return nil, err
	}

	// 回读存储的权威状态
	stored, err := s.GetAttendee(eventID, memberID)
	if err != nil {
		return nil, err
	}

	// 发布出勤状态变更，失败只记录（推送是尽力而为）
	if s.Push != nil {
		if err := s.Push.PublishAttendeeStatus(stored); err != nil {
			log.Printf("发布出勤状态变更失败: 事件=%s, 成员=%d, 错误=%v", eventID, memberID, err)
		}
	}

	return stored, nil
}

// 4. ManualCheckIn 协调员/管理员手动签到
// 将目标成员置为safe并记录操作者，与自助签到写同一条记录。
// 操作者和目标成员都必须属于事件所在楼宇，跨楼宇操作一律拒绝
func (s *AttendeeService) ManualCheckIn(eventID string, memberID uint, actorID uint) (*models.Attendee, error) {
	var event models.Event
	if err := s.DB.Where("id = ?", eventID).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("事件不存在")
		}
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
		return nil, errors.New("没有权限执行手动签到，需要协调员或管理员角色")
	}

	// 目标成员的楼宇归属由UpsertStatus校验
	return s.UpsertStatus(eventID, memberID, models.AttendeeStatusSafe, &actorID)
}

// 5. GetAttendee 获取单条出勤记录
func (s *AttendeeService) GetAttendee(eventID string, memberID uint) (*models.Attendee, error) {
	var attendee models.Attendee
	if err := s.DB.Where("event_id = ? AND member_id = ?", eventID, memberID).First(&attendee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("出勤记录不存在")
		}
		return nil, err
	}
	return &attendee, nil
}

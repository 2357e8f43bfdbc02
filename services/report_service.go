package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"heimdall-http-service/config"
	"heimdall-http-service/models"
)

// InterfaceReportService 定义报告导出服务接口
type InterfaceReportService interface {
	ExportReport(buildingID uint, eventID string, actorID uint) (*ExportResult, error)
	DownloadReport(token string) (*ExportTicket, error)
}

// ExportResult 是一次导出请求的结果：带时效的签名下载链接
type ExportResult struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ReportService 提供出勤报告导出服务
type ReportService struct {
	DB     *gorm.DB
	Config *config.Config
	Redis  InterfaceRedisService
	JWT    InterfaceJWTService
}

// NewReportService 创建一个新的报告导出服务
func NewReportService(db *gorm.DB, cfg *config.Config, redisService InterfaceRedisService, jwtService InterfaceJWTService) InterfaceReportService {
	return &ReportService{
		DB:     db,
		Config: cfg,
		Redis:  redisService,
		JWT:    jwtService,
	}
}

// 1. ExportReport 导出事件的出勤报告
// 权限校验：协调员或管理员；生成CSV并以凭据形式短时存储，
// 返回签名下载链接，链接到期后凭据随之失效
func (s *ReportService) ExportReport(buildingID uint, eventID string, actorID uint) (*ExportResult, error) {
	// 权限校验
	var actor models.Member
	if err := s.DB.Where("id = ? AND building_id = ?", actorID, buildingID).First(&actor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("操作者不属于该楼宇")
		}
		return nil, err
	}
	if !actor.IsCoordinator() {
		return nil, errors.New("没有权限导出报告，需要协调员或管理员角色")
	}

	// 事件必须属于该楼宇
	var event models.Event
	if err := s.DB.Where("id = ? AND building_id = ?", eventID, buildingID).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("事件不存在")
		}
		return nil, err
	}

	var roster []models.Attendee
	if err := s.DB.Where("event_id = ?", eventID).Order("name ASC").Find(&roster).Error; err != nil {
		return nil, err
	}

	// 解析手动签到操作者的显示名
	checkerNames, err := s.resolveCheckerNames(roster)
	if err != nil {
		log.Printf("解析签到操作者失败: 事件=%s, 错误=%v", eventID, err)
		checkerNames = map[uint]string{}
	}

	csvData, err := BuildAttendanceCSV(roster, checkerNames)
	if err != nil {
		return nil, err
	}

	ttl := time.Duration(s.Config.ExportURLTTLMinutes) * time.Minute

	ticketID := uuid.New().String()
	ticket := &ExportTicket{
		EventID:   event.ID,
		EventName: event.Name,
		CSV:       csvData,
	}
	if err := s.Redis.StoreExportTicket(ticketID, ticket, ttl); err != nil {
		return nil, fmt.Errorf("存储导出凭据失败: %v", err)
	}

	token, err := s.JWT.GenerateDownloadToken(ticketID, ttl)
	if err != nil {
		return nil, fmt.Errorf("生成下载令牌失败: %v", err)
	}

	return &ExportResult{
		URL:       fmt.Sprintf("%s/api/reports/download/%s", s.Config.BaseURL, token),
		ExpiresAt: time.Now().Add(ttl),
	}, nil
}

// resolveCheckerNames 收集花名册中出现的手动签到操作者并解析显示名
func (s *ReportService) resolveCheckerNames(roster []models.Attendee) (map[uint]string, error) {
	var ids []uint
	seen := map[uint]bool{}
	for _, attendee := range roster {
		if attendee.CheckedInBy != nil && !seen[*attendee.CheckedInBy] {
			seen[*attendee.CheckedInBy] = true
			ids = append(ids, *attendee.CheckedInBy)
		}
	}

	names := map[uint]string{}
	if len(ids) == 0 {
		return names, nil
	}

	var members []models.Member
	if err := s.DB.Where("id IN ?", ids).Find(&members).Error; err != nil {
		return nil, err
	}
	for _, member := range members {
		names[member.ID] = member.Name
	}
	return names, nil
}

// BuildAttendanceCSV 生成出勤报告CSV
// 表头 + 每位出勤者一行；safe行的签到时间为ISO-8601格式，
// in_progress行的签到时间为空
func BuildAttendanceCSV(roster []models.Attendee, checkerNames map[uint]string) (string, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"name", "status", "checked_in_at", "checked_in_by"}); err != nil {
		return "", err
	}

	for _, attendee := range roster {
		checkedInAt := ""
		if attendee.SafeAt != nil {
			checkedInAt = attendee.SafeAt.UTC().Format(time.RFC3339)
		}

		checkedInBy := ""
		if attendee.CheckedInBy != nil {
			if name, ok := checkerNames[*attendee.CheckedInBy]; ok {
				checkedInBy = name
			} else {
				checkedInBy = strconv.FormatUint(uint64(*attendee.CheckedInBy), 10)
			}
		}

		row := []string{attendee.Name, attendee.Status, checkedInAt, checkedInBy}
		if err := writer.Write(row); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// 2. DownloadReport 验证下载令牌并取出导出凭据
func (s *ReportService) DownloadReport(token string) (*ExportTicket, error) {
	ticketID, err := s.JWT.ValidateDownloadToken(token)
	if err != nil {
		return nil, errors.New("下载链接无效或已过期")
	}

	ticket, err := s.Redis.GetExportTicket(ticketID)
	if err != nil {
		return nil, errors.New("下载链接无效或已过期")
	}

	return ticket, nil
}

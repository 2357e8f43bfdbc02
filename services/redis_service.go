package services

import (
	"context"
	"encoding/json"
	"fmt"
	"heimdall-http-service/config"
	"heimdall-http-service/models"
	"time"

	"github.com/go-redis/redis/v8"
)

// InterfaceRedisService 定义Redis服务接口
type InterfaceRedisService interface {
	Set(key string, value interface{}, expiration time.Duration) error
	Get(key string, dest interface{}) error
	Delete(key string) error
	CacheRoster(eventID string, roster []models.Attendee, expiration time.Duration) error
	GetCachedRoster(eventID string) ([]models.Attendee, error)
	StoreExportTicket(ticketID string, ticket *ExportTicket, expiration time.Duration) error
	GetExportTicket(ticketID string) (*ExportTicket, error)
	MarkRegionEntered(eventID string, memberID, regionID uint, expiration time.Duration) (bool, error)
	ClearRegionEntries(eventID string) error
}

// ExportTicket 表示一次已生成的报告导出，按凭据ID短时存储
type ExportTicket struct {
	EventID   string `json:"event_id"`
	EventName string `json:"event_name"`
	CSV       string `json:"csv"`
}

// RedisService handles Redis operations
type RedisService struct {
	Client *redis.Client
	Ctx    context.Context
}

// NewRedisService creates a new Redis service
func NewRedisService(cfg *config.Config) *RedisService {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: "", // No password set
		DB:       cfg.RedisDB,
	})

	ctx := context.Background()

	return &RedisService{
		Client: client,
		Ctx:    ctx,
	}
}

// Set sets a key-value pair in Redis with expiration
func (s *RedisService) Set(key string, value interface{}, expiration time.Duration) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return s.Client.Set(s.Ctx, key, jsonValue, expiration).Err()
}

// Get gets a value from Redis by key
func (s *RedisService) Get(key string, dest interface{}) error {
	val, err := s.Client.Get(s.Ctx, key).Result()
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(val), dest)
}

// Delete deletes a key from Redis
func (s *RedisService) Delete(key string) error {
	return s.Client.Del(s.Ctx, key).Err()
}

// CacheRoster 缓存事件花名册，作为数据库不可用时的最后已知状态
func (s *RedisService) CacheRoster(eventID string, roster []models.Attendee, expiration time.Duration) error {
	key := "roster:" + eventID
	return s.Set(key, roster, expiration)
}

// GetCachedRoster 获取缓存的事件花名册
func (s *RedisService) GetCachedRoster(eventID string) ([]models.Attendee, error) {
	key := "roster:" + eventID
	var roster []models.Attendee
	if err := s.Get(key, &roster); err != nil {
		return nil, err
	}
	return roster, nil
}

// StoreExportTicket 存储报告导出凭据，到期自动失效
func (s *RedisService) StoreExportTicket(ticketID string, ticket *ExportTicket, expiration time.Duration) error {
	key := "export_ticket:" + ticketID
	return s.Set(key, ticket, expiration)
}

// GetExportTicket 获取报告导出凭据，不存在或已过期时返回错误
func (s *RedisService) GetExportTicket(ticketID string) (*ExportTicket, error) {
	key := "export_ticket:" + ticketID
	var ticket ExportTicket
	if err := s.Get(key, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// MarkRegionEntered 以SETNX语义写入(事件, 成员, 区域)的进入标记
// 首次写入返回true；标记集中存放在事件维度的哈希键中，随事件过期
func (s *RedisService) MarkRegionEntered(eventID string, memberID, regionID uint, expiration time.Duration) (bool, error) {
	key := "geofence_entered:" + eventID
	field := fmt.Sprintf("%d:%d", memberID, regionID)

	first, err := s.Client.HSetNX(s.Ctx, key, field, 1).Result()
	if err != nil {
		return false, err
	}
	if first {
		s.Client.Expire(s.Ctx, key, expiration)
	}
	return first, nil
}

// ClearRegionEntries 删除事件的全部进入标记
func (s *RedisService) ClearRegionEntries(eventID string) error {
	return s.Client.Del(s.Ctx, "geofence_entered:"+eventID).Err()
}

package services

import (
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"heimdall-http-service/config"
	"heimdall-http-service/models"
)

// InterfaceGeofenceService 定义地理围栏服务接口
type InterfaceGeofenceService interface {
	RegisterEventRegions(eventID string, points []models.AssemblyPoint)
	ClearEventRegions(eventID string)
	EventRegions(eventID string) []Region
	CheckLocation(eventID string, memberID uint, lat, lon float64) []Region
}

// Region 表示一个以集合点为圆心的监控区域
type Region struct {
	AssemblyPointID uint    `json:"assembly_point_id"`
	Name            string  `json:"name"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	RadiusMeters    float64 `json:"radius_meters"`
}

// GeofenceService 负责集合点区域的注册与进入检测
// 只上报"进入"事件，且每个(事件, 成员, 区域)至多触发一次，
// 不监控离开事件，避免GPS抖动造成重复提示。
// 进入标记通过Redis以SETNX语义写入，服务重启后不会重复提示；
// Redis不可用时降级为本地标记
type GeofenceService struct {
	Config  *config.Config
	Redis   InterfaceRedisService
	regions map[string][]Region // 以eventID为键的已注册区域
	entered map[string]bool     // 降级用的本地进入标记，键为"eventID:memberID:regionID"
	mu      sync.RWMutex
}

// geofenceEntryTTL 进入标记的存活时长，覆盖事件的最大合理持续时间
const geofenceEntryTTL = 24 * time.Hour

// NewGeofenceService 创建一个新的地理围栏服务
func NewGeofenceService(cfg *config.Config, redisService InterfaceRedisService) InterfaceGeofenceService {
	return &GeofenceService{
		Config:  cfg,
		Redis:   redisService,
		regions: make(map[string][]Region),
		entered: make(map[string]bool),
	}
}

// distanceMeters 使用Haversine公式计算两点间的距离（米）
func distanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	const R = 6371000 // 地球半径（米）
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	deltaPhi := (lat2 - lat1) * math.Pi / 180
	deltaLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*
			math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return R * c
}

func enteredKey(eventID string, memberID uint, regionID uint) string {
	return fmt.Sprintf("%s:%d:%d", eventID, memberID, regionID)
}

// RegisterEventRegions 为事件注册集合点区域
// 重复注册时整体替换，半径统一取配置值
func (s *GeofenceService) RegisterEventRegions(eventID string, points []models.AssemblyPoint) {
	regions := make([]Region, 0, len(points))
	for _, p := range points {
		regions = append(regions, Region{
			AssemblyPointID: p.ID,
			Name:            p.Name,
			Latitude:        p.Latitude,
			Longitude:       p.Longitude,
			RadiusMeters:    s.Config.GeofenceRadiusMeters,
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.regions[eventID] = regions
}

// ClearEventRegions 清除事件的所有区域及进入标记
// 事件结束时调用，避免残留的围栏回调
func (s *GeofenceService) ClearEventRegions(eventID string) {
	s.mu.Lock()
	delete(s.regions, eventID)

	prefix := eventID + ":"
	for key := range s.entered {
		if len(key) > len(prefix) && key[:len(prefix)] == prefix {
			delete(s.entered, key)
		}
	}
	s.mu.Unlock()

	if s.Redis != nil {
		if err := s.Redis.ClearRegionEntries(eventID); err != nil {
			log.Printf("清除进入标记失败: 事件=%s, 错误=%v", eventID, err)
		}
	}
}

// EventRegions 返回事件已注册的区域
func (s *GeofenceService) EventRegions(eventID string) []Region {
	s.mu.RLock()
	defer s.mu.RUnlock()

	regions := s.regions[eventID]
	result := make([]Region, len(regions))
	copy(result, regions)
	return result
}

// CheckLocation 检查成员位置，返回本次新进入的区域
// 已进入过的区域不再重复返回
func (s *GeofenceService) CheckLocation(eventID string, memberID uint, lat, lon float64) []Region {
	s.mu.RLock()
	regions := s.regions[eventID]
	s.mu.RUnlock()

	if len(regions) == 0 {
		return nil
	}

	var newlyEntered []Region
	for _, region := range regions {
		dist := distanceMeters(lat, lon, region.Latitude, region.Longitude)
		if dist > region.RadiusMeters {
			continue
		}

		if s.markEntered(eventID, memberID, region.AssemblyPointID) {
			newlyEntered = append(newlyEntered, region)
		}
	}

	return newlyEntered
}

// markEntered 写入进入标记，首次写入返回true
// 优先写Redis保证跨实例与重启后的一次性语义，失败时退回本地标记
func (s *GeofenceService) markEntered(eventID string, memberID, regionID uint) bool {
	if s.Redis != nil {
		first, err := s.Redis.MarkRegionEntered(eventID, memberID, regionID, geofenceEntryTTL)
		if err == nil {
			return first
		}
		log.Printf("写入进入标记失败，降级为本地标记: 事件=%s, 成员=%d, 错误=%v", eventID, memberID, err)
	}

	key := enteredKey(eventID, memberID, regionID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entered[key] {
		return false
	}
	s.entered[key] = true
	return true
}

package container

import (
	"context"
	"log"
	"sync"
	"time"

	"heimdall-http-service/config"
	"heimdall-http-service/services"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// ServiceContainer 管理所有服务的依赖注入
// 服务在应用启动时构造一次，通过容器注入各控制器，
// 避免散落的惰性单例和隐藏的全局可变状态
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config
	redis  *redis.Client

	// 基础服务
	jwtService services.InterfaceJWTService

	// 数据存储服务
	redisService services.InterfaceRedisService

	// 推送与实时变更分发服务
	pushService services.InterfacePushService

	// 地理围栏服务
	geofenceService services.InterfaceGeofenceService

	// 业务服务
	buildingService      services.InterfaceBuildingService
	memberService        services.InterfaceMemberService
	emergencyTypeService services.InterfaceEmergencyTypeService
	attendeeService      services.InterfaceAttendeeService
	trackingService      services.InterfaceTrackingService
	eventService         services.InterfaceEventService
	reportService        services.InterfaceReportService

	mu sync.RWMutex
}

// NewServiceContainer 创建新的服务容器
func NewServiceContainer(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *ServiceContainer {
	if db == nil {
		panic("数据库连接为空")
	}

	if cfg == nil {
		panic("配置为空")
	}

	// 测试Redis连接
	if redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("Redis连接测试失败: %v，将不使用Redis缓存", err)
		}
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
		redis:  redisClient,
	}
	container.initializeServices()
	return container
}

// initializeServices 初始化所有服务
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 初始化基础服务
	c.jwtService = services.NewJWTService(c.config)

	// 初始化Redis服务
	c.redisService = services.NewRedisService(c.config)

	// 初始化推送服务并连接MQTT服务器
	c.pushService = services.NewPushService(c.config)
	if err := c.pushService.Connect(); err != nil {
		log.Printf("MQTT服务连接失败: %v", err)
	}

	// 初始化地理围栏服务，进入标记写入Redis
	c.geofenceService = services.NewGeofenceService(c.config, c.redisService)

	// 初始化业务服务
	c.buildingService = services.NewBuildingService(c.db, c.config)
	c.memberService = services.NewMemberService(c.db, c.config)
	c.emergencyTypeService = services.NewEmergencyTypeService(c.db, c.config)
	c.attendeeService = services.NewAttendeeService(c.db, c.config, c.redisService, c.pushService)
	c.trackingService = services.NewTrackingService(c.db, c.config, c.geofenceService, c.attendeeService, c.pushService)
	c.eventService = services.NewEventService(c.db, c.config, c.pushService, c.trackingService)
	c.reportService = services.NewReportService(c.db, c.config, c.redisService, c.jwtService)
}

// GetService 获取指定名称的服务
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "jwt":
		return c.jwtService
	case "redis":
		return c.redisService
	case "push":
		return c.pushService
	case "geofence":
		return c.geofenceService
	case "building":
		return c.buildingService
	case "member":
		return c.memberService
	case "emergency_type":
		return c.emergencyTypeService
	case "attendee":
		return c.attendeeService
	case "tracking":
		return c.trackingService
	case "event":
		return c.eventService
	case "report":
		return c.reportService
	default:
		return nil
	}
}

// GetDB 获取数据库连接
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}

// GetConfig 获取应用配置
func (c *ServiceContainer) GetConfig() *config.Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

// GetJWTService 获取JWT服务
func (c *ServiceContainer) GetJWTService() services.InterfaceJWTService {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.jwtService
}

// GetRedisService 获取Redis服务
func (c *ServiceContainer) GetRedisService() services.InterfaceRedisService {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.redisService
}

// GetPushService 获取推送服务
func (c *ServiceContainer) GetPushService() services.InterfacePushService {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pushService
}

// GetGeofenceService 获取地理围栏服务
func (c *ServiceContainer) GetGeofenceService() services.InterfaceGeofenceService {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.geofenceService
}

// GetBuildingService 获取楼宇服务
func (c *ServiceContainer) GetBuildingService() services.InterfaceBuildingService {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.buildingService
}

// GetMemberService 获取成员服务
func (c *ServiceContainer) GetMemberService() services.InterfaceMemberService {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.memberService
}

// GetEmergencyTypeService 获取紧急类型服务
func (c *ServiceContainer) GetEmergencyTypeService() services.InterfaceEmergencyTypeService {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.emergencyTypeService
}

// GetAttendeeService 获取出勤服务
func (c *ServiceContainer) GetAttendeeService() services.InterfaceAttendeeService {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.attendeeService
}

// GetTrackingService 获取追踪服务
func (c *ServiceContainer) GetTrackingService() services.InterfaceTrackingService {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.trackingService
}

// GetEventService 获取事件服务
func (c *ServiceContainer) GetEventService() services.InterfaceEventService {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.eventService
}

// GetReportService 获取报告导出服务
func (c *ServiceContainer) GetReportService() services.InterfaceReportService {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.reportService
}

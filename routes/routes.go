package routes

import (
	"heimdall-http-service/config"
	"heimdall-http-service/controllers"
	_ "heimdall-http-service/docs"
	"heimdall-http-service/middleware"
	"heimdall-http-service/services/container"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter 初始化并返回配置好的路由
func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// 初始化 Gin
	r := gin.Default()

	// 添加 CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})
	// 设置正确的Content-Type，确保UTF-8编码
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
		c.Next()
	})
	// 创建服务容器
	serviceContainer := container.NewServiceContainer(db, cfg, nil)
	// 初始化中间件
	middleware.InitAuthMiddleware(cfg)
	// 添加 Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册路由
	registerRoutes(r, serviceContainer)
	return r
}

// registerRoutes 配置所有API路由
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	// API 路由根路径
	api := r.Group("/api")
	// 注册公共路由
	registerPublicRoutes(api, container)
	// 注册需要认证的路由
	registerAuthenticatedRoutes(api, container)
}

// registerPublicRoutes 注册公共路由
func registerPublicRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 健康检查
	api.GET("/ping", controllers.HealthCheck)

	// 认证路由
	api.POST("/auth/login", controllers.HandleAuthFunc(container, "login"))
	api.POST("/auth/register-building", controllers.HandleAuthFunc(container, "registerBuilding"))
	api.POST("/auth/join", controllers.HandleAuthFunc(container, "joinBuilding"))

	// 报告下载路由，链接本身带签名令牌，无需登录态
	api.GET("/reports/download/:token", controllers.HandleReportFunc(container, "downloadReport"))
}

// registerAuthenticatedRoutes 注册需要认证的路由
func registerAuthenticatedRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 成员级路由：楼宇内任意成员可访问
	auth := api.Group("/")
	auth.Use(middleware.AuthenticateMember())

	// 楼宇路由
	auth.Group("/buildings").GET("/current", controllers.HandleBuildingFunc(container, "getBuilding"))
	auth.Group("/buildings").GET("/current/invite-code", controllers.HandleBuildingFunc(container, "getInviteCode"))

	// 成员路由
	auth.Group("/members").GET("", controllers.HandleMemberFunc(container, "getMembers"))
	auth.Group("/members").GET("/me", controllers.HandleMemberFunc(container, "getCurrentMember"))
	auth.Group("/members").PUT("/me", controllers.HandleMemberFunc(container, "updateCurrentMember"))
	auth.Group("/members").PUT("/me/push-token", controllers.HandleMemberFunc(container, "updatePushToken"))

	// 紧急类型路由（读取）
	auth.Group("/emergency-types").GET("", controllers.HandleEmergencyTypeFunc(container, "getEmergencyTypes"))
	auth.Group("/emergency-types").GET("/:id", controllers.HandleEmergencyTypeFunc(container, "getEmergencyType"))

	// 事件路由（读取与成员侧追踪）
	auth.Group("/events").GET("", controllers.HandleEventFunc(container, "getEvents"))
	auth.Group("/events").GET("/active", controllers.HandleEventFunc(container, "getActiveEvents"))
	auth.Group("/events").GET("/:id", controllers.HandleEventFunc(container, "getEvent"))
	auth.Group("/events").GET("/:id/roster", controllers.HandleAttendeeFunc(container, "getRosterSummary"))
	auth.Group("/events").POST("/:id/tracking/start", controllers.HandleTrackingFunc(container, "startTracking"))
	auth.Group("/events").POST("/:id/tracking/location", controllers.HandleTrackingFunc(container, "reportLocation"))
	auth.Group("/events").POST("/:id/tracking/safe", controllers.HandleTrackingFunc(container, "markSafe"))
	auth.Group("/events").POST("/:id/tracking/not-safe", controllers.HandleTrackingFunc(container, "markNotSafe"))
	auth.Group("/events").GET("/:id/tracking/session", controllers.HandleTrackingFunc(container, "getSession"))
	auth.Group("/events").POST("/:id/tracking/stop", controllers.HandleTrackingFunc(container, "stopTracking"))

	// 协调员级路由：协调员与管理员可访问
	coordinator := api.Group("/")
	coordinator.Use(middleware.AuthenticateCoordinator())

	coordinator.Group("/events").POST("/:id/stop", controllers.HandleEventFunc(container, "stopEvent"))
	coordinator.Group("/events").POST("/:id/check-in", controllers.HandleAttendeeFunc(container, "manualCheckIn"))
	coordinator.Group("/events").POST("/:id/report", controllers.HandleReportFunc(container, "exportReport"))

	// 管理员级路由：仅管理员可访问
	admin := api.Group("/")
	admin.Use(middleware.AuthenticateAdmin())

	admin.Group("/buildings").PUT("/current", controllers.HandleBuildingFunc(container, "updateBuilding"))
	admin.Group("/buildings").DELETE("/current", controllers.HandleBuildingFunc(container, "deleteBuilding"))

	admin.Group("/members").PUT("/:id/role", controllers.HandleMemberFunc(container, "updateMemberRole"))
	admin.Group("/members").DELETE("/:id", controllers.HandleMemberFunc(container, "deleteMember"))

	admin.Group("/emergency-types").POST("", controllers.HandleEmergencyTypeFunc(container, "createEmergencyType"))
	admin.Group("/emergency-types").PUT("/:id", controllers.HandleEmergencyTypeFunc(container, "updateEmergencyType"))
	admin.Group("/emergency-types").PUT("/:id/instruction-steps", controllers.HandleEmergencyTypeFunc(container, "replaceInstructionSteps"))
	admin.Group("/emergency-types").PUT("/:id/assembly-points", controllers.HandleEmergencyTypeFunc(container, "replaceAssemblyPoints"))
	admin.Group("/emergency-types").DELETE("/:id", controllers.HandleEmergencyTypeFunc(container, "deleteEmergencyType"))

	admin.Group("/events").POST("/trigger", controllers.HandleEventFunc(container, "triggerEvent"))
}

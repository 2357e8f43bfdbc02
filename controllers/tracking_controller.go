package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"heimdall-http-service/services/container"
)

// TrackingController 处理成员侧事件追踪相关的请求
// 成员收到警报后开始追踪，期间持续上报定位，
// 进入集合点会收到签到提示，成员可确认安全或撤销确认
type TrackingController struct {
	BaseControllerImpl
}

// NewTrackingController 创建一个新的追踪控制器
func (f *ControllerFactory) NewTrackingController(ctx *gin.Context) *TrackingController {
	return &TrackingController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// ReportLocationRequest 表示定位上报请求
// 经纬度用指针字段区分"未提供"和合法的0值（赤道、本初子午线）
type ReportLocationRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required" example:"31.2304"`
	Longitude *float64 `json:"longitude" binding:"required" example:"121.4737"`
}

// StartTracking 开始追踪事件
// @Summary      开始追踪
// @Description  成员加入事件追踪，注册集合点区域并以疏散中状态登记出勤，重复调用幂等
// @Tags         Tracking
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "事件ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /events/{id}/tracking/start [post]
func (c *TrackingController) StartTracking() {
	session, err := c.Container.GetTrackingService().StartTracking(
		currentBuildingID(c.Context), c.Context.Param("id"), currentUserID(c.Context))
	if err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "开始追踪失败: " + err.Error(),
			"data":    nil,
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "开始追踪成功",
		"data":    session,
	})
}

// ReportLocation 上报定位
// @Summary      上报定位
// @Description  上报当前定位，首次进入集合点区域时触发签到提示（每个区域仅提示一次）
// @Tags         Tracking
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "事件ID"
// @Param        request body ReportLocationRequest true "定位上报参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /events/{id}/tracking/location [post]
func (c *TrackingController) ReportLocation() {
	var req ReportLocationRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的请求参数: " + err.Error(),
			"data":    nil,
		})
		return
	}

	report, err := c.Container.GetTrackingService().ReportLocation(
		c.Context.Param("id"), currentUserID(c.Context), *req.Latitude, *req.Longitude)
	if err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "上报定位失败: " + err.Error(),
			"data":    nil,
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "上报定位成功",
		"data":    report,
	})
}

// MarkSafe 确认安全
// @Summary      确认安全
// @Description  成员确认已抵达安全位置，出勤状态更新为安全
// @Tags         Tracking
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "事件ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /events/{id}/tracking/safe [post]
func (c *TrackingController) MarkSafe() {
	attendee, err := c.Container.GetTrackingService().MarkSafe(c.Context.Param("id"), currentUserID(c.Context))
	if err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "确认安全失败: " + err.Error(),
			"data":    nil,
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "确认安全成功",
		"data":    attendee,
	})
}

// MarkNotSafe 撤销安全确认
// @Summary      撤销安全确认
// @Description  成员撤销安全确认，出勤状态回到疏散中，追踪会话恢复定位跟踪
// @Tags         Tracking
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "事件ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /events/{id}/tracking/not-safe [post]
func (c *TrackingController) MarkNotSafe() {
	attendee, err := c.Container.GetTrackingService().MarkNotSafe(c.Context.Param("id"), currentUserID(c.Context))
	if err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "撤销安全确认失败: " + err.Error(),
			"data":    nil,
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "撤销安全确认成功",
		"data":    attendee,
	})
}

// GetSession 获取当前成员的追踪会话
// @Summary      获取追踪会话
// @Description  获取当前成员在指定事件中的追踪会话状态
// @Tags         Tracking
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "事件ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /events/{id}/tracking/session [get]
func (c *TrackingController) GetSession() {
	session, err := c.Container.GetTrackingService().GetSession(c.Context.Param("id"), currentUserID(c.Context))
	if err != nil {
		c.Context.JSON(http.StatusNotFound, gin.H{
			"code":    404,
			"message": "追踪会话不存在",
			"data":    nil,
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "获取追踪会话成功",
		"data":    session,
	})
}

// StopTracking 停止追踪
// @Summary      停止追踪
// @Description  成员主动停止追踪并移除会话，不影响已登记的出勤状态
// @Tags         Tracking
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "事件ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /events/{id}/tracking/stop [post]
func (c *TrackingController) StopTracking() {
	c.Container.GetTrackingService().StopTracking(c.Context.Param("id"), currentUserID(c.Context))

	c.Context.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "停止追踪成功",
		"data":    nil,
	})
}

// HandleTrackingFunc 返回一个处理追踪请求的Gin处理函数
func HandleTrackingFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewTrackingController(ctx)

		switch method {
		case "startTracking":
			controller.StartTracking()
		case "reportLocation":
			controller.ReportLocation()
		case "markSafe":
			controller.MarkSafe()
		case "markNotSafe":
			controller.MarkNotSafe()
		case "getSession":
			controller.GetSession()
		case "stopTracking":
			controller.StopTracking()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}

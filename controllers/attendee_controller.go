package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"heimdall-http-service/services/container"
)

// AttendeeController 处理事件出勤相关的请求
type AttendeeController struct {
	BaseControllerImpl
}

// NewAttendeeController 创建一个新的出勤控制器
func (f *ControllerFactory) NewAttendeeController(ctx *gin.Context) *AttendeeController {
	return &AttendeeController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// ManualCheckInRequest 表示手动签到请求
type ManualCheckInRequest struct {
	MemberID uint `json:"member_id" binding:"required" example:"3"`
}

// GetRosterSummary 获取事件出勤汇总
// @Summary      获取出勤汇总
// @Description  获取事件的出勤名单汇总，按安全/疏散中分组，支持姓名模糊过滤（计数始终基于全量名单）
// @Tags         Attendee
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "事件ID"
// @Param        search query string false "姓名过滤关键字，不区分大小写"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /events/{id}/roster [get]
func (c *AttendeeController) GetRosterSummary() {
	eventID := c.Context.Param("id")

	event, err := c.Container.GetEventService().GetEventByID(eventID)
	if err != nil || event.BuildingID != currentBuildingID(c.Context) {
		c.Context.JSON(http.StatusNotFound, gin.H{
			"code":    404,
			"message": "事件不存在",
			"data":    nil,
		})
		return
	}

	summary, err := c.Container.GetAttendeeService().GetRosterSummary(eventID, c.Context.Query("search"))
	if err != nil {
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "获取出勤汇总失败: " + err.Error(),
			"data":    nil,
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "获取出勤汇总成功",
		"data":    summary,
	})
}

// ManualCheckIn 代为签到
// @Summary      手动签到
// @Description  协调员或管理员代成员签到，将其标记为安全
// @Tags         Attendee
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "事件ID"
// @Param        request body ManualCheckInRequest true "手动签到请求参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Router       /events/{id}/check-in [post]
func (c *AttendeeController) ManualCheckIn() {
	eventID := c.Context.Param("id")

	event, err := c.Container.GetEventService().GetEventByID(eventID)
	if err != nil || event.BuildingID != currentBuildingID(c.Context) {
		c.Context.JSON(http.StatusNotFound, gin.H{
			"code":    404,
			"message": "事件不存在",
			"data":    nil,
		})
		return
	}

	var req ManualCheckInRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的请求参数: " + err.Error(),
			"data":    nil,
		})
		return
	}

	attendee, err := c.Container.GetAttendeeService().ManualCheckIn(eventID, req.MemberID, currentUserID(c.Context))
	if err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "手动签到失败: " + err.Error(),
			"data":    nil,
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "手动签到成功",
		"data":    attendee,
	})
}

// HandleAttendeeFunc 返回一个处理出勤请求的Gin处理函数
func HandleAttendeeFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewAttendeeController(ctx)

		switch method {
		case "getRosterSummary":
			controller.GetRosterSummary()
		case "manualCheckIn":
			controller.ManualCheckIn()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}

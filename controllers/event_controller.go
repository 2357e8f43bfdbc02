package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"heimdall-http-service/models"
	"heimdall-http-service/services"
	"heimdall-http-service/services/container"
)

// EventController 处理紧急事件相关的请求
type EventController struct {
	BaseControllerImpl
}

// NewEventController 创建一个新的事件控制器
func (f *ControllerFactory) NewEventController(ctx *gin.Context) *EventController {
	return &EventController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// TriggerEventRequest 表示触发紧急事件的请求
type TriggerEventRequest struct {
	EmergencyTypeID   uint   `json:"emergency_type_id" binding:"required" example:"1"`
	EmergencyTypeName string `json:"emergency_type_name" example:"火灾"` // 展示用名称，缺省取紧急类型配置名
	EventType         string `json:"event_type" example:"drill"`       // drill或alert，默认alert
}

// requireEventInBuilding 加载事件并校验其属于当前楼宇
func (c *EventController) requireEventInBuilding(eventID string) (*models.Event, bool) {
	event, err := c.Container.GetEventService().GetEventByID(eventID)
	if err != nil || event.BuildingID != currentBuildingID(c.Context) {
		c.Context.JSON(http.StatusNotFound, gin.H{
			"code":    404,
			"message": "事件不存在",
			"data":    nil,
		})
		return nil, false
	}
	return event, true
}

// TriggerEvent 触发紧急事件
// @Summary      触发紧急事件
// @Description  触发警报或演练，向全体持有推送令牌的成员下发通知，仅管理员可操作
// @Tags         Event
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body TriggerEventRequest true "触发事件请求参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Router       /events/trigger [post]
func (c *EventController) TriggerEvent() {
	var req TriggerEventRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的请求参数: " + err.Error(),
			"data":    nil,
		})
		return
	}

	eventType := req.EventType
	if eventType == "" {
		eventType = models.EventTypeAlert
	}

	result, err := c.Container.GetEventService().TriggerEvent(&services.TriggerEventRequest{
		BuildingID:        currentBuildingID(c.Context),
		EmergencyTypeID:   req.EmergencyTypeID,
		EmergencyTypeName: req.EmergencyTypeName,
		EventType:         eventType,
		TriggeredBy:       currentUserID(c.Context),
	})
	if err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "触发事件失败: " + err.Error(),
			"data":    nil,
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "触发事件成功",
		"data":    result,
	})
}

// StopEvent 结束紧急事件
// @Summary      结束紧急事件
// @Description  将事件标记为已结束并广播状态变更，协调员及以上可操作，重复结束幂等
// @Tags         Event
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "事件ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /events/{id}/stop [post]
func (c *EventController) StopEvent() {
	eventID := c.Context.Param("id")
	if _, ok := c.requireEventInBuilding(eventID); !ok {
		return
	}

	event, err := c.Container.GetEventService().StopEvent(eventID, currentUserID(c.Context))
	if err != nil {
		c.Context.JSON(http.StatusForbidden, gin.H{
			"code":    403,
			"message": "结束事件失败: " + err.Error(),
			"data":    nil,
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "结束事件成功",
		"data":    event,
	})
}

// GetEvent 获取事件详情
// @Summary      获取事件详情
// @Description  获取指定事件的详情，含紧急类型信息
// @Tags         Event
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "事件ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /events/{id} [get]
func (c *EventController) GetEvent() {
	event, ok := c.requireEventInBuilding(c.Context.Param("id"))
	if !ok {
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "获取事件成功",
		"data":    event,
	})
}

// GetEvents 获取当前楼宇的事件列表
// @Summary      获取事件列表
// @Description  分页获取当前楼宇的事件列表，按开始时间倒序
// @Tags         Event
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页数量" default(20)
// @Success      200  {object}  map[string]interface{}
// @Router       /events [get]
func (c *EventController) GetEvents() {
	page, pageSize := parsePagination(c.Context)

	events, total, err := c.Container.GetEventService().GetEvents(currentBuildingID(c.Context), page, pageSize)
	if err != nil {
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "获取事件列表失败: " + err.Error(),
			"data":    nil,
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "获取事件列表成功",
		"data": gin.H{
			"total":       total,
			"page":        page,
			"page_size":   pageSize,
			"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
			"data":        events,
		},
	})
}

// GetActiveEvents 获取当前楼宇进行中的事件
// @Summary      获取进行中的事件
// @Description  获取当前楼宇所有进行中的事件
// @Tags         Event
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /events/active [get]
func (c *EventController) GetActiveEvents() {
	events, err := c.Container.GetEventService().GetActiveEvents(currentBuildingID(c.Context))
	if err != nil {
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "获取进行中事件失败: " + err.Error(),
			"data":    nil,
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "获取进行中事件成功",
		"data":    events,
	})
}

// HandleEventFunc 返回一个处理事件请求的Gin处理函数
func HandleEventFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewEventController(ctx)

		switch method {
		case "triggerEvent":
			controller.TriggerEvent()
		case "stopEvent":
			controller.StopEvent()
		case "getEvent":
			controller.GetEvent()
		case "getEvents":
			controller.GetEvents()
		case "getActiveEvents":
			controller.GetActiveEvents()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}

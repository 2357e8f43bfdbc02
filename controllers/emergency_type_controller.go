package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"heimdall-http-service/models"
	"heimdall-http-service/services/container"
)

// EmergencyTypeController 处理紧急类型相关的请求
type EmergencyTypeController struct {
	BaseControllerImpl
}

// NewEmergencyTypeController 创建一个新的紧急类型控制器
func (f *ControllerFactory) NewEmergencyTypeController(ctx *gin.Context) *EmergencyTypeController {
	return &EmergencyTypeController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// InstructionStepRequest 表示疏散指引步骤
type InstructionStepRequest struct {
	Content string `json:"content" binding:"required" example:"保持冷静，不要使用电梯"`
}

// AssemblyPointRequest 表示集合点
type AssemblyPointRequest struct {
	Name      string  `json:"name" binding:"required" example:"东门广场"`
	Latitude  float64 `json:"latitude" binding:"required" example:"31.2304"`
	Longitude float64 `json:"longitude" binding:"required" example:"121.4737"`
}

// CreateEmergencyTypeRequest 表示创建紧急类型的请求
type CreateEmergencyTypeRequest struct {
	Name             string                   `json:"name" binding:"required" example:"fire"`
	DrillDayOfMonth  int                      `json:"drill_day_of_month" example:"15"`
	DrillTimeOfDay   string                   `json:"drill_time_of_day" example:"09:00"`
	DrillInterval    string                   `json:"drill_interval" example:"quarterly"`
	InstructionSteps []InstructionStepRequest `json:"instruction_steps"`
	AssemblyPoints   []AssemblyPointRequest   `json:"assembly_points"`
}

// UpdateEmergencyTypeRequest 表示更新紧急类型的请求
type UpdateEmergencyTypeRequest struct {
	Name            string `json:"name"`
	DrillDayOfMonth int    `json:"drill_day_of_month"`
	DrillTimeOfDay  string `json:"drill_time_of_day"`
	DrillInterval   string `json:"drill_interval"`
}

// ReplaceInstructionStepsRequest 表示整体替换疏散指引步骤的请求
type ReplaceInstructionStepsRequest struct {
	InstructionSteps []InstructionStepRequest `json:"instruction_steps" binding:"required"`
}

// ReplaceAssemblyPointsRequest 表示整体替换集合点的请求
type ReplaceAssemblyPointsRequest struct {
	AssemblyPoints []AssemblyPointRequest `json:"assembly_points" binding:"required"`
}

// emergencyTypeIDParam 解析路径中的紧急类型ID
func (c *EmergencyTypeController) emergencyTypeIDParam() (uint, bool) {
	id, err := strconv.ParseUint(c.Context.Param("id"), 10, 32)
	if err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的紧急类型ID",
			"data":    nil,
		})
		return 0, false
	}
	return uint(id), true
}

// GetEmergencyTypes 获取当前楼宇的紧急类型列表
// @Summary      获取紧急类型列表
// @Description  获取当前楼宇配置的所有紧急类型，含指引步骤与集合点
// @Tags         EmergencyType
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /emergency-types [get]
func (c *EmergencyTypeController) GetEmergencyTypes() {
	types, err := c.Container.GetEmergencyTypeService().GetEmergencyTypes(currentBuildingID(c.Context))
	if err != nil {
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "获取紧急类型列表失败: " + err.Error(),
			"data":    nil,
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "获取紧急类型列表成功",
		"data":    types,
	})
}

// GetEmergencyType 获取单个紧急类型
// @Summary      获取紧急类型
// @Description  获取指定紧急类型的详情，含指引步骤与集合点
// @Tags         EmergencyType
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "紧急类型ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /emergency-types/{id} [get]
func (c *EmergencyTypeController) GetEmergencyType() {
	id, ok := c.emergencyTypeIDParam()
	if !ok {
		return
	}

	emergencyType, err := c.Container.GetEmergencyTypeService().GetEmergencyTypeByID(currentBuildingID(c.Context), id)
	if err != nil {
		c.Context.JSON(http.StatusNotFound, gin.H{
			"code":    404,
			"message": "紧急类型不存在",
			"data":    nil,
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "获取紧急类型成功",
		"data":    emergencyType,
	})
}

// CreateEmergencyType 创建紧急类型
// @Summary      创建紧急类型
// @Description  为当前楼宇创建新的紧急类型，仅管理员可操作
// @Tags         EmergencyType
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateEmergencyTypeRequest true "创建紧急类型请求参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /emergency-types [post]
func (c *EmergencyTypeController) CreateEmergencyType() {
	var req CreateEmergencyTypeRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的请求参数: " + err.Error(),
			"data":    nil,
		})
		return
	}

	emergencyType := &models.EmergencyType{
		BuildingID:      currentBuildingID(c.Context),
		Name:            req.Name,
		DrillDayOfMonth: req.DrillDayOfMonth,
		DrillTimeOfDay:  req.DrillTimeOfDay,
		DrillInterval:   req.DrillInterval,
	}
	for _, step := range req.InstructionSteps {
		emergencyType.InstructionSteps = append(emergencyType.InstructionSteps, models.InstructionStep{Content: step.Content})
	}
	for _, point := range req.AssemblyPoints {
		emergencyType.AssemblyPoints = append(emergencyType.AssemblyPoints, models.AssemblyPoint{
			Name:      point.Name,
			Latitude:  point.Latitude,
			Longitude: point.Longitude,
		})
	}

	if err := c.Container.GetEmergencyTypeService().CreateEmergencyType(emergencyType); err != nil {
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "创建紧急类型失败: " + err.Error(),
			"data":    nil,
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "创建紧急类型成功",
		"data":    emergencyType,
	})
}

// UpdateEmergencyType 更新紧急类型的基本信息
// @Summary      更新紧急类型
// @Description  更新紧急类型的名称与演练计划，仅管理员可操作
// @Tags         EmergencyType
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "紧急类型ID"
// @Param        request body UpdateEmergencyTypeRequest true "更新紧急类型请求参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /emergency-types/{id} [put]
func (c *EmergencyTypeController) UpdateEmergencyType() {
	id, ok := c.emergencyTypeIDParam()
	if !ok {
		return
	}

	var req UpdateEmergencyTypeRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的请求参数: " + err.Error(),
			"data":    nil,
		})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.DrillDayOfMonth != 0 {
		updates["drill_day_of_month"] = req.DrillDayOfMonth
	}
	if req.DrillTimeOfDay != "" {
		updates["drill_time_of_day"] = req.DrillTimeOfDay
	}
	if req.DrillInterval != "" {
		updates["drill_interval"] = req.DrillInterval
	}

	emergencyType, err := c.Container.GetEmergencyTypeService().UpdateEmergencyType(currentBuildingID(c.Context), id, updates)
	if err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "更新紧急类型失败: " + err.Error(),
			"data":    nil,
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "更新紧急类型成功",
		"data":    emergencyType,
	})
}

// ReplaceInstructionSteps 整体替换疏散指引步骤
// @Summary      替换疏散指引
// @Description  按请求顺序整体替换紧急类型的疏散指引步骤，仅管理员可操作
// @Tags         EmergencyType
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "紧急类型ID"
// @Param        request body ReplaceInstructionStepsRequest true "指引步骤列表"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /emergency-types/{id}/instruction-steps [put]
func (c *EmergencyTypeController) ReplaceInstructionSteps() {
	id, ok := c.emergencyTypeIDParam()
	if !ok {
		return
	}

	var req ReplaceInstructionStepsRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的请求参数: " + err.Error(),
			"data":    nil,
		})
		return
	}

	steps := make([]models.InstructionStep, 0, len(req.InstructionSteps))
	for _, step := range req.InstructionSteps {
		steps = append(steps, models.InstructionStep{Content: step.Content})
	}

	emergencyType, err := c.Container.GetEmergencyTypeService().ReplaceInstructionSteps(currentBuildingID(c.Context), id, steps)
	if err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "替换疏散指引失败: " + err.Error(),
			"data":    nil,
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "替换疏散指引成功",
		"data":    emergencyType,
	})
}

// ReplaceAssemblyPoints 整体替换集合点
// @Summary      替换集合点
// @Description  整体替换紧急类型的集合点，仅管理员可操作
// @Tags         EmergencyType
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "紧急类型ID"
// @Param        request body ReplaceAssemblyPointsRequest true "集合点列表"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /emergency-types/{id}/assembly-points [put]
func (c *EmergencyTypeController) ReplaceAssemblyPoints() {
	id, ok := c.emergencyTypeIDParam()
	if !ok {
		return
	}

	var req ReplaceAssemblyPointsRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的请求参数: " + err.Error(),
			"data":    nil,
		})
		return
	}

	points := make([]models.AssemblyPoint, 0, len(req.AssemblyPoints))
	for _, point := range req.AssemblyPoints {
		points = append(points, models.AssemblyPoint{
			Name:      point.Name,
			Latitude:  point.Latitude,
			Longitude: point.Longitude,
		})
	}

	emergencyType, err := c.Container.GetEmergencyTypeService().ReplaceAssemblyPoints(currentBuildingID(c.Context), id, points)
	if err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "替换集合点失败: " + err.Error(),
			"data":    nil,
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "替换集合点成功",
		"data":    emergencyType,
	})
}

// DeleteEmergencyType 删除紧急类型
// @Summary      删除紧急类型
// @Description  删除紧急类型及其指引步骤与集合点，存在进行中的事件时不允许删除
// @Tags         EmergencyType
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "紧急类型ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /emergency-types/{id} [delete]
func (c *EmergencyTypeController) DeleteEmergencyType() {
	id, ok := c.emergencyTypeIDParam()
	if !ok {
		return
	}

	if err := c.Container.GetEmergencyTypeService().DeleteEmergencyType(currentBuildingID(c.Context), id); err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "删除紧急类型失败: " + err.Error(),
			"data":    nil,
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "删除紧急类型成功",
		"data":    nil,
	})
}

// HandleEmergencyTypeFunc 返回一个处理紧急类型请求的Gin处理函数
func HandleEmergencyTypeFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewEmergencyTypeController(ctx)

		switch method {
		case "getEmergencyTypes":
			controller.GetEmergencyTypes()
		case "getEmergencyType":
			controller.GetEmergencyType()
		case "createEmergencyType":
			controller.CreateEmergencyType()
		case "updateEmergencyType":
			controller.UpdateEmergencyType()
		case "replaceInstructionSteps":
			controller.ReplaceInstructionSteps()
		case "replaceAssemblyPoints":
			controller.ReplaceAssemblyPoints()
		case "deleteEmergencyType":
			controller.DeleteEmergencyType()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}

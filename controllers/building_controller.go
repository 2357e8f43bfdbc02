package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"heimdall-http-service/services/container"
)

// BuildingController 处理楼宇相关的请求
type BuildingController struct {
	BaseControllerImpl
}

// NewBuildingController 创建一个新的楼宇控制器
func (f *ControllerFactory) NewBuildingController(ctx *gin.Context) *BuildingController {
	return &BuildingController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// UpdateBuildingRequest 表示更新楼宇信息的请求
type UpdateBuildingRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	MapURL      string `json:"map_url"`
}

// GetBuilding 获取当前成员所在楼宇的信息
// @Summary      获取楼宇信息
// @Description  获取当前成员所在楼宇的详细信息
// @Tags         Building
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /buildings/current [get]
func (c *BuildingController) GetBuilding() {
	buildingID := currentBuildingID(c.Context)

	building, err := c.Container.GetBuildingService().GetBuildingByID(buildingID)
	if err != nil {
		c.Context.JSON(http.StatusNotFound, gin.H{
			"code":    404,
			"message": "楼宇不存在",
			"data":    nil,
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "获取楼宇信息成功",
		"data":    building,
	})
}

// UpdateBuilding 更新楼宇信息
// @Summary      更新楼宇信息
// @Description  更新楼宇的名称、描述、图片等信息，仅管理员可操作
// @Tags         Building
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body UpdateBuildingRequest true "更新楼宇请求参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /buildings/current [put]
func (c *BuildingController) UpdateBuilding() {
	buildingID := currentBuildingID(c.Context)

	var req UpdateBuildingRequest
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
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.ImageURL != "" {
		updates["image_url"] = req.ImageURL
	}
	if req.MapURL != "" {
		updates["map_url"] = req.MapURL
	}

	building, err := c.Container.GetBuildingService().UpdateBuilding(buildingID, updates)
	if err != nil {
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "更新楼宇失败: " + err.Error(),
			"data":    nil,
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "更新楼宇成功",
		"data":    building,
	})
}

// DeleteBuilding 删除楼宇
// @Summary      删除楼宇
// @Description  删除楼宇及其所有关联数据，存在进行中的事件时不允许删除
// @Tags         Building
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /buildings/current [delete]
func (c *BuildingController) DeleteBuilding() {
	buildingID := currentBuildingID(c.Context)

	if err := c.Container.GetBuildingService().DeleteBuilding(buildingID); err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "删除楼宇失败: " + err.Error(),
			"data":    nil,
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "删除楼宇成功",
		"data":    nil,
	})
}

// GetInviteCode 获取楼宇邀请码
// @Summary      获取邀请码
// @Description  获取当前楼宇的邀请码，用于邀请新成员加入
// @Tags         Building
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /buildings/current/invite-code [get]
func (c *BuildingController) GetInviteCode() {
	buildingID := currentBuildingID(c.Context)

	building, err := c.Container.GetBuildingService().GetBuildingByID(buildingID)
	if err != nil {
		c.Context.JSON(http.StatusNotFound, gin.H{
			"code":    404,
			"message": "楼宇不存在",
			"data":    nil,
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "获取邀请码成功",
		"data": gin.H{
			"invite_code": building.InviteCode,
		},
	})
}

// parsePagination 从查询参数中解析分页信息
func parsePagination(ctx *gin.Context) (int, int) {
	page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(ctx.DefaultQuery("page_size", "20"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

// HandleBuildingFunc 返回一个处理楼宇请求的Gin处理函数
func HandleBuildingFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewBuildingController(ctx)

		switch method {
		case "getBuilding":
			controller.GetBuilding()
		case "updateBuilding":
			controller.UpdateBuilding()
		case "deleteBuilding":
			controller.DeleteBuilding()
		case "getInviteCode":
			controller.GetInviteCode()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}

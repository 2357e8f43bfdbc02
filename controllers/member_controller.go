package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"heimdall-http-service/models"
	"heimdall-http-service/services/container"
)

// MemberController 处理楼宇成员相关的请求
type MemberController struct {
	BaseControllerImpl
}

// NewMemberController 创建一个新的成员控制器
func (f *ControllerFactory) NewMemberController(ctx *gin.Context) *MemberController {
	return &MemberController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// UpdateMemberRequest 表示更新成员资料的请求
type UpdateMemberRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	PhotoURL string `json:"photo_url"`
}

// UpdateMemberRoleRequest 表示更新成员角色的请求
type UpdateMemberRoleRequest struct {
	Role string `json:"role" binding:"required" example:"coordinator"`
}

// UpdatePushTokenRequest 表示更新推送令牌的请求
type UpdatePushTokenRequest struct {
	PushToken string `json:"push_token" binding:"required"`
}

// memberIDParam 解析路径中的成员ID
func (c *MemberController) memberIDParam() (uint, bool) {
	id, err := strconv.ParseUint(c.Context.Param("id"), 10, 32)
	if err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的成员ID",
			"data":    nil,
		})
		return 0, false
	}
	return uint(id), true
}

// requireSameBuilding 校验成员属于当前楼宇
func (c *MemberController) requireSameBuilding(id uint) (*models.Member, bool) {
	member, err := c.Container.GetMemberService().GetMemberByID(id)
	if err != nil || member.BuildingID != currentBuildingID(c.Context) {
		c.Context.JSON(http.StatusNotFound, gin.H{
			"code":    404,
			"message": "成员不存在",
			"data":    nil,
		})
		return nil, false
	}
	return member, true
}

// GetMembers 获取当前楼宇的成员列表
// @Summary      获取成员列表
// @Description  分页获取当前楼宇的成员列表，按姓名排序
// @Tags         Member
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页数量" default(20)
// @Success      200  {object}  map[string]interface{}
// @Router       /members [get]
func (c *MemberController) GetMembers() {
	page, pageSize := parsePagination(c.Context)

	members, total, err := c.Container.GetMemberService().GetMembers(currentBuildingID(c.Context), page, pageSize)
	if err != nil {
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "获取成员列表失败: " + err.Error(),
			"data":    nil,
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "获取成员列表成功",
		"data": gin.H{
			"total":       total,
			"page":        page,
			"page_size":   pageSize,
			"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
			"data":        members,
		},
	})
}

// GetCurrentMember 获取当前登录成员的资料
// @Summary      获取当前成员
// @Description  获取当前登录成员的详细资料
// @Tags         Member
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /members/me [get]
func (c *MemberController) GetCurrentMember() {
	member, err := c.Container.GetMemberService().GetMemberByID(currentUserID(c.Context))
	if err != nil {
		c.Context.JSON(http.StatusNotFound, gin.H{
			"code":    404,
			"message": "成员不存在",
			"data":    nil,
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "获取成员资料成功",
		"data":    member,
	})
}

// UpdateCurrentMember 更新当前登录成员的资料
// @Summary      更新当前成员资料
// @Description  更新当前登录成员的姓名、电话、头像，角色与所属楼宇不可修改
// @Tags         Member
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body UpdateMemberRequest true "更新资料请求参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /members/me [put]
func (c *MemberController) UpdateCurrentMember() {
	var req UpdateMemberRequest
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
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.PhotoURL != "" {
		updates["photo_url"] = req.PhotoURL
	}

	member, err := c.Container.GetMemberService().UpdateMember(currentUserID(c.Context), updates)
	if err != nil {
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "更新成员资料失败: " + err.Error(),
			"data":    nil,
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "更新成员资料成功",
		"data":    member,
	})
}

// UpdatePushToken 更新当前成员的推送令牌
// @Summary      更新推送令牌
// @Description  更新当前成员的推送令牌，用于接收警报通知
// @Tags         Member
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body UpdatePushTokenRequest true "推送令牌"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /members/me/push-token [put]
func (c *MemberController) UpdatePushToken() {
	var req UpdatePushTokenRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的请求参数: " + err.Error(),
			"data":    nil,
		})
		return
	}

	if err := c.Container.GetMemberService().UpdatePushToken(currentUserID(c.Context), req.PushToken); err != nil {
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "更新推送令牌失败: " + err.Error(),
			"data":    nil,
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "更新推送令牌成功",
		"data":    nil,
	})
}

// UpdateMemberRole 更新指定成员的角色
// @Summary      更新成员角色
// @Description  更新指定成员的角色，仅管理员可操作
// @Tags         Member
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "成员ID"
// @Param        request body UpdateMemberRoleRequest true "角色"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /members/{id}/role [put]
func (c *MemberController) UpdateMemberRole() {
	id, ok := c.memberIDParam()
	if !ok {
		return
	}
	if _, ok := c.requireSameBuilding(id); !ok {
		return
	}

	var req UpdateMemberRoleRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的请求参数: " + err.Error(),
			"data":    nil,
		})
		return
	}

	member, err := c.Container.GetMemberService().UpdateMemberRole(id, req.Role)
	if err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "更新成员角色失败: " + err.Error(),
			"data":    nil,
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "更新成员角色成功",
		"data":    member,
	})
}

// DeleteMember 将成员移出楼宇
// @Summary      移除成员
// @Description  将指定成员移出楼宇，仅管理员可操作
// @Tags         Member
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "成员ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /members/{id} [delete]
func (c *MemberController) DeleteMember() {
	id, ok := c.memberIDParam()
	if !ok {
		return
	}
	if _, ok := c.requireSameBuilding(id); !ok {
		return
	}

	if id == currentUserID(c.Context) {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "不能移除自己",
			"data":    nil,
		})
		return
	}

	if err := c.Container.GetMemberService().DeleteMember(id); err != nil {
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "移除成员失败: " + err.Error(),
			"data":    nil,
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "移除成员成功",
		"data":    nil,
	})
}

// HandleMemberFunc 返回一个处理成员请求的Gin处理函数
func HandleMemberFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewMemberController(ctx)

		switch method {
		case "getMembers":
			controller.GetMembers()
		case "getCurrentMember":
			controller.GetCurrentMember()
		case "updateCurrentMember":
			controller.UpdateCurrentMember()
		case "updatePushToken":
			controller.UpdatePushToken()
		case "updateMemberRole":
			controller.UpdateMemberRole()
		case "deleteMember":
			controller.DeleteMember()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"heimdall-http-service/models"
	"heimdall-http-service/services/container"
	"heimdall-http-service/utils"
)

// AuthController 处理认证相关的请求
type AuthController struct {
	BaseControllerImpl
}

// NewAuthController 创建一个新的认证控制器
func (f *ControllerFactory) NewAuthController(ctx *gin.Context) *AuthController {
	return &AuthController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// LoginRequest 表示登录请求
type LoginRequest struct {
	BuildingID uint   `json:"building_id" binding:"required" example:"1"`
	Email      string `json:"email" binding:"required" example:"user@example.com"`
	Password   string `json:"password" binding:"required"`
}

// RegisterBuildingRequest 表示创建楼宇请求，创建者自动成为管理员
type RegisterBuildingRequest struct {
	BuildingName        string `json:"building_name" binding:"required" example:"科技园A座"`
	BuildingDescription string `json:"building_description"`
	AdminName           string `json:"admin_name" binding:"required" example:"张伟"`
	AdminEmail          string `json:"admin_email" binding:"required" example:"admin@example.com"`
	AdminPhone          string `json:"admin_phone"`
	AdminPassword       string `json:"admin_password" binding:"required"`
}

// JoinBuildingRequest 表示通过邀请码加入楼宇的请求
type JoinBuildingRequest struct {
	InviteCode string `json:"invite_code" binding:"required" example:"XK7P2M9Q"`
	Name       string `json:"name" binding:"required" example:"李娜"`
	Email      string `json:"email" binding:"required" example:"member@example.com"`
	Phone      string `json:"phone"`
	Password   string `json:"password" binding:"required"`
}

// Login 处理登录请求
// @Summary      成员登录
// @Description  楼宇成员使用邮箱和密码登录，返回JWT令牌
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "登录请求参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Router       /auth/login [post]
func (c *AuthController) Login() {
	var req LoginRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的请求参数: " + err.Error(),
			"data":    nil,
		})
		return
	}

	memberService := c.Container.GetMemberService()

	member, err := memberService.GetMemberByEmail(req.BuildingID, req.Email)
	if err != nil {
		c.Context.JSON(http.StatusUnauthorized, gin.H{
			"code":    401,
			"message": "邮箱或密码错误",
			"data":    nil,
		})
		return
	}

	if !utils.CheckPasswordHash(req.Password, member.Password) {
		c.Context.JSON(http.StatusUnauthorized, gin.H{
			"code":    401,
			"message": "邮箱或密码错误",
			"data":    nil,
		})
		return
	}

	token, err := c.Container.GetJWTService().GenerateToken(member.ID, member.BuildingID, member.Role)
	if err != nil {
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "Failed to generate token",
			"data":    nil,
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "登录成功",
		"data": gin.H{
			"token":       token,
			"user_id":     member.ID,
			"building_id": member.BuildingID,
			"name":        member.Name,
			"role":        member.Role,
		},
	})
}

// RegisterBuilding 处理创建楼宇请求
// @Summary      创建楼宇
// @Description  创建新楼宇，创建者自动成为该楼宇的管理员
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterBuildingRequest true "创建楼宇请求参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /auth/register-building [post]
func (c *AuthController) RegisterBuilding() {
	var req RegisterBuildingRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的请求参数: " + err.Error(),
			"data":    nil,
		})
		return
	}

	building := &models.Building{
		Name:        req.BuildingName,
		Description: req.BuildingDescription,
	}
	admin := &models.Member{
		Name:     req.AdminName,
		Email:    req.AdminEmail,
		Phone:    req.AdminPhone,
		Password: req.AdminPassword,
	}

	if err := c.Container.GetBuildingService().CreateBuilding(building, admin); err != nil {
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "创建楼宇失败: " + err.Error(),
			"data":    nil,
		})
		return
	}

	token, err := c.Container.GetJWTService().GenerateToken(admin.ID, building.ID, admin.Role)
	if err != nil {
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "Failed to generate token",
			"data":    nil,
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功创建楼宇",
		"data": gin.H{
			"token":       token,
			"building_id": building.ID,
			"invite_code": building.InviteCode,
			"user_id":     admin.ID,
			"role":        admin.Role,
		},
	})
}

// JoinBuilding 处理通过邀请码加入楼宇的请求
// @Summary      加入楼宇
// @Description  通过邀请码加入楼宇，新成员角色为member
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body JoinBuildingRequest true "加入楼宇请求参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /auth/join [post]
func (c *AuthController) JoinBuilding() {
	var req JoinBuildingRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的请求参数: " + err.Error(),
			"data":    nil,
		})
		return
	}

	member := &models.Member{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	}

	building, err := c.Container.GetBuildingService().JoinByInviteCode(req.InviteCode, member)
	if err != nil {
		c.Context.JSON(http.StatusNotFound, gin.H{
			"code":    404,
			"message": "加入楼宇失败: " + err.Error(),
			"data":    nil,
		})
		return
	}

	token, err := c.Container.GetJWTService().GenerateToken(member.ID, building.ID, member.Role)
	if err != nil {
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "Failed to generate token",
			"data":    nil,
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功加入楼宇",
		"data": gin.H{
			"token":         token,
			"building_id":   building.ID,
			"building_name": building.Name,
			"user_id":       member.ID,
			"role":          member.Role,
		},
	})
}

// HandleAuthFunc 返回一个处理认证请求的Gin处理函数
func HandleAuthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewAuthController(ctx)

		switch method {
		case "login":
			controller.Login()
		case "registerBuilding":
			controller.RegisterBuilding()
		case "joinBuilding":
			controller.JoinBuilding()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}

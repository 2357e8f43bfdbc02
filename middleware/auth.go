package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"heimdall-http-service/config"
	"heimdall-http-service/models"
	"heimdall-http-service/services"
)

var jwtService services.InterfaceJWTService

// InitAuthMiddleware 初始化认证中间件
func InitAuthMiddleware(cfg *config.Config) {
	jwtService = services.NewJWTService(cfg)
}

// extractToken 从授权头中提取token
func extractToken(authHeader string) string {
	// 检查并移除 "Bearer " 前缀
	if len(authHeader) > 7 && strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader[7:]
	}
	return authHeader
}

// parseClaims 验证请求中的令牌并返回声明，验证失败时写入响应并返回nil
// 用户ID、楼宇ID和角色在此一次性计算并存入上下文，后续组件不再重复推导
func parseClaims(c *gin.Context) jwt.MapClaims {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"code":    401,
			"message": "Authorization header is required",
			"data":    nil,
		})
		c.Abort()
		return nil
	}

	tokenString := extractToken(authHeader)
	token, err := jwtService.ValidateToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"code":    401,
			"message": "Invalid token: " + err.Error(),
			"data":    nil,
		})
		c.Abort()
		return nil
	}

	if !token.Valid {
		c.JSON(http.StatusUnauthorized, gin.H{
			"code":    401,
			"message": "Invalid token",
			"data":    nil,
		})
		c.Abort()
		return nil
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"code":    401,
			"message": "Invalid token claims",
			"data":    nil,
		})
		c.Abort()
		return nil
	}

	return claims
}

// storeClaims 将声明写入请求上下文
func storeClaims(c *gin.Context, claims jwt.MapClaims) {
	if userID, ok := claims["user_id"].(float64); ok {
		c.Set("userID", uint(userID))
	}
	if buildingID, ok := claims["building_id"].(float64); ok {
		c.Set("buildingID", uint(buildingID))
	}
	if role, ok := claims["role"].(string); ok {
		c.Set("role", role)
	}
	c.Set("claims", claims)
}

// AuthenticateMember 验证楼宇成员身份（任意角色）
func AuthenticateMember() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := parseClaims(c)
		if claims == nil {
			return
		}

		if role, exists := claims["role"].(string); !exists ||
			(role != models.RoleAdmin && role != models.RoleCoordinator && role != models.RoleMember) {
			c.JSON(http.StatusForbidden, gin.H{
				"code":    403,
				"message": "Insufficient permissions: requires valid member role",
				"data":    nil,
			})
			c.Abort()
			return
		}

		storeClaims(c, claims)
		c.Next()
	}
}

// AuthenticateCoordinator 验证协调员权限（协调员或管理员）
func AuthenticateCoordinator() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := parseClaims(c)
		if claims == nil {
			return
		}

		if role, exists := claims["role"].(string); !exists ||
			(role != models.RoleCoordinator && role != models.RoleAdmin) {
			c.JSON(http.StatusForbidden, gin.H{
				"code":    403,
				"message": "Insufficient permissions: requires coordinator or admin role",
				"data":    nil,
			})
			c.Abort()
			return
		}

		storeClaims(c, claims)
		c.Next()
	}
}

// AuthenticateAdmin 验证管理员权限
func AuthenticateAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := parseClaims(c)
		if claims == nil {
			return
		}

		if role, exists := claims["role"].(string); !exists || role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{
				"code":    403,
				"message": "Insufficient permissions: requires admin role",
				"data":    nil,
			})
			c.Abort()
			return
		}

		storeClaims(c, claims)
		c.Next()
	}
}

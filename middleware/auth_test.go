package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"heimdall-http-service/config"
	"heimdall-http-service/models"
	"heimdall-http-service/services"
)

func setupAuthTest(t *testing.T) services.InterfaceJWTService {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{JWTSecretKey: "test-secret-key"}
	InitAuthMiddleware(cfg)
	return services.NewJWTService(cfg)
}

func newAuthTestRouter(mw gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.GET("/protected", mw, func(c *gin.Context) {
		userID, _ := c.Get("userID")
		buildingID, _ := c.Get("buildingID")
		role, _ := c.Get("role")
		c.JSON(http.StatusOK, gin.H{
			"user_id":     userID,
			"building_id": buildingID,
			"role":        role,
		})
	})
	return r
}

func doAuthRequest(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticateMemberMissingHeader(t *testing.T) {
	setupAuthTest(t)
	r := newAuthTestRouter(AuthenticateMember())

	w := doAuthRequest(r, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("缺少授权头应返回401, 实际为%d", w.Code)
	}
}

func TestAuthenticateMemberInvalidToken(t *testing.T) {
	setupAuthTest(t)
	r := newAuthTestRouter(AuthenticateMember())

	w := doAuthRequest(r, "garbage-token")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("非法令牌应返回401, 实际为%d", w.Code)
	}
}

func TestAuthenticateMemberAllowsAllRoles(t *testing.T) {
	jwtSvc := setupAuthTest(t)
	r := newAuthTestRouter(AuthenticateMember())

	for _, role := range []string{models.RoleMember, models.RoleCoordinator, models.RoleAdmin} {
		token, err := jwtSvc.GenerateToken(1, 1, role)
		if err != nil {
			t.Fatalf("生成令牌失败: %v", err)
		}

		w := doAuthRequest(r, token)
		if w.Code != http.StatusOK {
			t.Fatalf("角色%s应通过成员验证, 实际为%d", role, w.Code)
		}
	}
}

func TestAuthenticateCoordinatorRejectsMember(t *testing.T) {
	jwtSvc := setupAuthTest(t)
	r := newAuthTestRouter(AuthenticateCoordinator())

	token, err := jwtSvc.GenerateToken(1, 1, models.RoleMember)
	if err != nil {
		t.Fatalf("生成令牌失败: %v", err)
	}

	w := doAuthRequest(r, token)
	if w.Code != http.StatusForbidden {
		t.Fatalf("普通成员应被协调员验证拒绝, 实际为%d", w.Code)
	}
}

func TestAuthenticateCoordinatorAllowsAdmin(t *testing.T) {
	jwtSvc := setupAuthTest(t)
	r := newAuthTestRouter(AuthenticateCoordinator())

	for _, role := range []string{models.RoleCoordinator, models.RoleAdmin} {
		token, err := jwtSvc.GenerateToken(1, 1, role)
		if err != nil {
			t.Fatalf("生成令牌失败: %v", err)
		}

		w := doAuthRequest(r, token)
		if w.Code != http.StatusOK {
			t.Fatalf("角色%s应通过协调员验证, 实际为%d", role, w.Code)
		}
	}
}

func TestAuthenticateAdminRejectsCoordinator(t *testing.T) {
	jwtSvc := setupAuthTest(t)
	r := newAuthTestRouter(AuthenticateAdmin())

	for _, role := range []string{models.RoleMember, models.RoleCoordinator} {
		token, err := jwtSvc.GenerateToken(1, 1, role)
		if err != nil {
			t.Fatalf("生成令牌失败: %v", err)
		}

		w := doAuthRequest(r, token)
		if w.Code != http.StatusForbidden {
			t.Fatalf("角色%s应被管理员验证拒绝, 实际为%d", role, w.Code)
		}
	}
}

func TestAuthenticateStoresClaims(t *testing.T) {
	jwtSvc := setupAuthTest(t)

	var gotUserID, gotBuildingID uint
	var gotRole string

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthenticateAdmin(), func(c *gin.Context) {
		gotUserID = c.GetUint("userID")
		gotBuildingID = c.GetUint("buildingID")
		gotRole = c.GetString("role")
		c.Status(http.StatusOK)
	})

	token, err := jwtSvc.GenerateToken(42, 7, models.RoleAdmin)
	if err != nil {
		t.Fatalf("生成令牌失败: %v", err)
	}

	w := doAuthRequest(r, token)
	if w.Code != http.StatusOK {
		t.Fatalf("管理员应通过验证, 实际为%d", w.Code)
	}
	if gotUserID != 42 || gotBuildingID != 7 || gotRole != models.RoleAdmin {
		t.Fatalf("上下文声明错误: userID=%d, buildingID=%d, role=%s", gotUserID, gotBuildingID, gotRole)
	}
}

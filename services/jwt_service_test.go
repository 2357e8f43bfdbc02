package services

import (
	"testing"
	"time"

	"heimdall-http-service/config"
	"heimdall-http-service/models"
)

func newTestJWTService() InterfaceJWTService {
	return NewJWTService(&config.Config{JWTSecretKey: "test-secret-key"})
}

func TestGenerateAndExtractClaims(t *testing.T) {
	svc := newTestJWTService()

	token, err := svc.GenerateToken(42, 7, models.RoleCoordinator)
	if err != nil {
		t.Fatalf("生成令牌失败: %v", err)
	}

	claims, err := svc.ExtractClaims(token)
	if err != nil {
		t.Fatalf("解析令牌失败: %v", err)
	}

	if claims.UserID != 42 {
		t.Fatalf("用户ID错误: %d", claims.UserID)
	}
	if claims.BuildingID != 7 {
		t.Fatalf("楼宇ID错误: %d", claims.BuildingID)
	}
	if claims.Role != models.RoleCoordinator {
		t.Fatalf("角色错误: %s", claims.Role)
	}
}

func TestValidateTokenRejectsInvalid(t *testing.T) {
	svc := newTestJWTService()

	if _, err := svc.ValidateToken("not-a-token"); err == nil {
		t.Fatal("格式错误的令牌应验证失败")
	}

	// 使用不同密钥签发的令牌应被拒绝
	other := NewJWTService(&config.Config{JWTSecretKey: "other-secret"})
	token, err := other.GenerateToken(1, 1, models.RoleMember)
	if err != nil {
		t.Fatalf("生成令牌失败: %v", err)
	}
	if _, err := svc.ExtractClaims(token); err == nil {
		t.Fatal("不同密钥签发的令牌应验证失败")
	}
}

func TestDownloadTokenRoundTrip(t *testing.T) {
	svc := newTestJWTService()

	token, err := svc.GenerateDownloadToken("ticket-abc", 30*time.Minute)
	if err != nil {
		t.Fatalf("生成下载令牌失败: %v", err)
	}

	ticketID, err := svc.ValidateDownloadToken(token)
	if err != nil {
		t.Fatalf("验证下载令牌失败: %v", err)
	}
	if ticketID != "ticket-abc" {
		t.Fatalf("凭据ID错误: %s", ticketID)
	}
}

func TestDownloadTokenExpired(t *testing.T) {
	svc := newTestJWTService()

	token, err := svc.GenerateDownloadToken("ticket-abc", -time.Minute)
	if err != nil {
		t.Fatalf("生成下载令牌失败: %v", err)
	}

	if _, err := svc.ValidateDownloadToken(token); err == nil {
		t.Fatal("过期的下载令牌应验证失败")
	}
}

func TestDownloadTokenNotInterchangeable(t *testing.T) {
	svc := newTestJWTService()

	// 登录令牌不能当作下载令牌使用
	authToken, err := svc.GenerateToken(1, 1, models.RoleMember)
	if err != nil {
		t.Fatalf("生成令牌失败: %v", err)
	}
	if _, err := svc.ValidateDownloadToken(authToken); err == nil {
		t.Fatal("登录令牌不应通过下载令牌验证")
	}
}

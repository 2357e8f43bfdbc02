package services

import (
	"errors"
	"fmt"
	"heimdall-http-service/config"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// InterfaceJWTService 定义JWT服务接口
type InterfaceJWTService interface {
	GenerateToken(memberID, buildingID uint, role string) (string, error)
	ValidateToken(tokenString string) (*jwt.Token, error)
	ExtractClaims(tokenString string) (*JWTClaims, error)
	GenerateDownloadToken(ticketID string, ttl time.Duration) (string, error)
	ValidateDownloadToken(tokenString string) (string, error)
}

// JWTService 提供JWT相关服务
type JWTService struct {
	secretKey string
	issuer    string
}

// JWTClaims 定义JWT令牌的声明结构
// 角色在签发时一次性计算并随令牌下发，各组件不再重复推导权限
type JWTClaims struct {
	UserID     uint   `json:"user_id"`
	BuildingID uint   `json:"building_id"` // 成员所属楼宇ID
	Role       string `json:"role"`
	jwt.RegisteredClaims
}

// NewJWTService 创建一个新的JWT服务
func NewJWTService(cfg *config.Config) InterfaceJWTService {
	return &JWTService{
		secretKey: cfg.JWTSecretKey,
		issuer:    "heimdall-http-service",
	}
}

// GenerateToken 生成JWT令牌
func (s *JWTService) GenerateToken(memberID, buildingID uint, role string) (string, error) {
	// 令牌有效期为24小时
	expirationTime := time.Now().Add(24 * time.Hour)

	claims := &JWTClaims{
		UserID:     memberID,
		BuildingID: buildingID,
		Role:       role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    s.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secretKey))
}

// ValidateToken 验证JWT令牌
func (s *JWTService) ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// 验证签名算法
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secretKey), nil
	})
}

// ExtractClaims 从令牌中提取声明
func (s *JWTService) ExtractClaims(tokenString string) (*JWTClaims, error) {
	token, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		jwtClaims := &JWTClaims{}

		// 提取签发者
		if issuer, ok := claims["iss"].(string); ok {
			jwtClaims.Issuer = issuer
		}

		// 提取用户ID
		if userID, ok := claims["user_id"].(float64); ok {
			jwtClaims.UserID = uint(userID)
		}

		// 提取楼宇ID
		if buildingID, ok := claims["building_id"].(float64); ok {
			jwtClaims.BuildingID = uint(buildingID)
		}

		// 提取角色
		if role, ok := claims["role"].(string); ok {
			jwtClaims.Role = role
		}

		return jwtClaims, nil
	}

	return nil, errors.New("invalid token claims")
}

// GenerateDownloadToken 为报告下载生成短时效签名令牌
// 令牌中只携带导出凭据ID，有效期与导出凭据的存储时效一致
func (s *JWTService) GenerateDownloadToken(ticketID string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"ticket_id": ticketID,
		"exp":       time.Now().Add(ttl).Unix(),
		"iat":       time.Now().Unix(),
		"iss":       s.issuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secretKey))
}

// ValidateDownloadToken 验证下载令牌并返回其中的导出凭据ID
func (s *JWTService) ValidateDownloadToken(tokenString string) (string, error) {
	token, err := s.ValidateToken(tokenString)
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid download token")
	}

	ticketID, ok := claims["ticket_id"].(string)
	if !ok || ticketID == "" {
		return "", errors.New("download token missing ticket id")
	}

	return ticketID, nil
}

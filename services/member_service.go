package services

import (
	"errors"
	"heimdall-http-service/config"
	"heimdall-http-service/models"

	"gorm.io/gorm"
)

// InterfaceMemberService 定义成员服务接口
type InterfaceMemberService interface {
	GetMembers(buildingID uint, page, pageSize int) ([]models.Member, int64, error)
	GetMemberByID(id uint) (*models.Member, error)
	GetMemberByEmail(buildingID uint, email string) (*models.Member, error)
	UpdateMember(id uint, updates map[string]interface{}) (*models.Member, error)
	UpdateMemberRole(id uint, role string) (*models.Member, error)
	UpdatePushToken(id uint, pushToken string) error
	DeleteMember(id uint) error
}

// MemberService 提供楼宇成员相关的服务
type MemberService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewMemberService 创建一个新的成员服务
func NewMemberService(db *gorm.DB, cfg *config.Config) InterfaceMemberService {
	return &MemberService{
		DB:     db,
		Config: cfg,
	}
}

// 1. GetMembers 获取楼宇成员列表，支持分页
func (s *MemberService) GetMembers(buildingID uint, page, pageSize int) ([]models.Member, int64, error) {
	var members []models.Member
	var total int64

	query := s.DB.Model(&models.Member{}).Where("building_id = ?", buildingID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := query.Order("name ASC").Limit(pageSize).Offset(offset).Find(&members).Error; err != nil {
		return nil, 0, err
	}

	return members, total, nil
}

// 2. GetMemberByID 根据ID获取成员
func (s *MemberService) GetMemberByID(id uint) (*models.Member, error) {
	var member models.Member
	if err := s.DB.First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("成员不存在")
		}
		return nil, err
	}
	return &member, nil
}

// 3. GetMemberByEmail 根据楼宇和邮箱获取成员，用于登录
func (s *MemberService) GetMemberByEmail(buildingID uint, email string) (*models.Member, error) {
	var member models.Member
	if err := s.DB.Where("building_id = ? AND email = ?", buildingID, email).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("成员不存在")
		}
		return nil, err
	}
	return &member, nil
}

// 4. UpdateMember 更新成员信息
func (s *MemberService) UpdateMember(id uint, updates map[string]interface{}) (*models.Member, error) {
	member, err := s.GetMemberByID(id)
	if err != nil {
		return nil, err
	}

	// 角色变更走专门接口，楼宇归属不可改
	delete(updates, "role")
	delete(updates, "building_id")

	if err := s.DB.Model(member).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetMemberByID(id)
}

// 5. UpdateMemberRole 更新成员角色
func (s *MemberService) UpdateMemberRole(id uint, role string) (*models.Member, error) {
	if role != models.RoleAdmin && role != models.RoleCoordinator && role != models.RoleMember {
		return nil, errors.New("无效的角色")
	}

	member, err := s.GetMemberByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.DB.Model(member).Update("role", role).Error; err != nil {
		return nil, err
	}

	return s.GetMemberByID(id)
}

// 6. UpdatePushToken 更新成员的推送令牌
func (s *MemberService) UpdatePushToken(id uint, pushToken string) error {
	member, err := s.GetMemberByID(id)
	if err != nil {
		return err
	}

	return s.DB.Model(member).Update("push_token", pushToken).Error
}

// 7. DeleteMember 删除成员（成员离开或被移除）
func (s *MemberService) DeleteMember(id uint) error {
	member, err := s.GetMemberByID(id)
	if err != nil {
		return err
	}

	return s.DB.Delete(member).Error
}

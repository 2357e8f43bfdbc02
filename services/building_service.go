package services

import (
	"errors"
	"heimdall-http-service/config"
	"heimdall-http-service/models"
	"heimdall-http-service/utils"

	"gorm.io/gorm"
)

// InterfaceBuildingService 定义楼宇服务接口
type InterfaceBuildingService interface {
	GetAllBuildings(page, pageSize int) ([]models.Building, int64, error)
	GetBuildingByID(id uint) (*models.Building, error)
	GetBuildingByInviteCode(code string) (*models.Building, error)
	CreateBuilding(building *models.Building, admin *models.Member) error
	UpdateBuilding(id uint, updates map[string]interface{}) (*models.Building, error)
	DeleteBuilding(id uint) error
	JoinByInviteCode(code string, member *models.Member) (*models.Building, error)
}

// BuildingService 提供楼宇相关的服务
type BuildingService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewBuildingService 创建一个新的楼宇服务
func NewBuildingService(db *gorm.DB, cfg *config.Config) InterfaceBuildingService {
	return &BuildingService{
		DB:     db,
		Config: cfg,
	}
}

// 1. GetAllBuildings 获取所有楼宇列表，支持分页
func (s *BuildingService) GetAllBuildings(page, pageSize int) ([]models.Building, int64, error) {
	var buildings []models.Building
	var total int64

	// 获取总数
	if err := s.DB.Model(&models.Building{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 分页查询
	offset := (page - 1) * pageSize
	if err := s.DB.Limit(pageSize).Offset(offset).Find(&buildings).Error; err != nil {
		return nil, 0, err
	}

	return buildings, total, nil
}

// 2. GetBuildingByID 根据ID获取楼宇
func (s *BuildingService) GetBuildingByID(id uint) (*models.Building, error) {
	var building models.Building
	if err := s.DB.First(&building, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("楼宇不存在")
		}
		return nil, err
	}
	return &building, nil
}

// 3. GetBuildingByInviteCode 根据邀请码获取楼宇
func (s *BuildingService) GetBuildingByInviteCode(code string) (*models.Building, error) {
	var building models.Building
	if err := s.DB.Where("invite_code = ?", code).First(&building).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("邀请码无效")
		}
		return nil, err
	}
	return &building, nil
}

// generateUniqueInviteCode 生成全局唯一的邀请码
func (s *BuildingService) generateUniqueInviteCode() (string, error) {
	// 碰撞概率极低，重试几次足够
	for i := 0; i < 5; i++ {
		code := utils.RandomInviteCode(8)

		var count int64
		if err := s.DB.Model(&models.Building{}).Where("invite_code = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", errors.New("生成邀请码失败，请重试")
}

// 4. CreateBuilding 创建新楼宇，创建者自动成为该楼宇的管理员
func (s *BuildingService) CreateBuilding(building *models.Building, admin *models.Member) error {
	if building.Name == "" {
		return errors.New("楼宇名称不能为空")
	}

	code, err := s.generateUniqueInviteCode()
	if err != nil {
		return err
	}
	building.InviteCode = code

	// 楼宇和管理员成员在同一事务中创建
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(building).Error; err != nil {
			return err
		}

		admin.BuildingID = building.ID
		admin.Role = models.RoleAdmin
		if err := tx.Create(admin).Error; err != nil {
			return err
		}

		building.CreatedBy = admin.ID
		return tx.Model(building).Update("created_by", admin.ID).Error
	})
}

// 5. UpdateBuilding 更新楼宇信息
func (s *BuildingService) UpdateBuilding(id uint, updates map[string]interface{}) (*models.Building, error) {
	building, err := s.GetBuildingByID(id)
	if err != nil {
		return nil, err
	}

	// 邀请码由服务端生成，不允许直接修改
	delete(updates, "invite_code")

	if err := s.DB.Model(building).Updates(updates).Error; err != nil {
		return nil, err
	}

	// 重新获取更新后的楼宇信息
	return s.GetBuildingByID(id)
}

// 6. DeleteBuilding 删除楼宇
func (s *BuildingService) DeleteBuilding(id uint) error {
	building, err := s.GetBuildingByID(id)
	if err != nil {
		return err
	}

	// 检查是否有进行中的事件
	var activeCount int64
	if err := s.DB.Model(&models.Event{}).
		Where("building_id = ? AND status = ?", id, models.EventStatusActive).
		Count(&activeCount).Error; err != nil {
		return err
	}
	if activeCount > 0 {
		return errors.New("该楼宇存在进行中的紧急事件，无法删除")
	}

	// 删除楼宇及其成员
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("building_id = ?", id).Delete(&models.Member{}).Error; err != nil {
			return err
		}
		return tx.Delete(building).Error
	})
}

// 7. JoinByInviteCode 通过邀请码加入楼宇，新成员角色为member
func (s *BuildingService) JoinByInviteCode(code string, member *models.Member) (*models.Building, error) {
	building, err := s.GetBuildingByInviteCode(code)
	if err != nil {
		return nil, err
	}

	// 同一楼宇内邮箱唯一
	var count int64
	if err := s.DB.Model(&models.Member{}).
		Where("building_id = ? AND email = ?", building.ID, member.Email).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("该邮箱已加入此楼宇")
	}

	member.BuildingID = building.ID
	member.Role = models.RoleMember
	if err := s.DB.Create(member).Error; err != nil {
		return nil, err
	}

	return building, nil
}

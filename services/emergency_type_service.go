package services

import (
	"errors"
	"heimdall-http-service/config"
	"heimdall-http-service/models"

	"gorm.io/gorm"
)

// InterfaceEmergencyTypeService 定义紧急类型服务接口
type InterfaceEmergencyTypeService interface {
	GetEmergencyTypes(buildingID uint) ([]models.EmergencyType, error)
	GetEmergencyTypeByID(buildingID, id uint) (*models.EmergencyType, error)
	CreateEmergencyType(emergencyType *models.EmergencyType) error
	UpdateEmergencyType(buildingID, id uint, updates map[string]interface{}) (*models.EmergencyType, error)
	ReplaceInstructionSteps(buildingID, id uint, steps []models.InstructionStep) (*models.EmergencyType, error)
	ReplaceAssemblyPoints(buildingID, id uint, points []models.AssemblyPoint) (*models.EmergencyType, error)
	DeleteEmergencyType(buildingID, id uint) error
}

// EmergencyTypeService 提供紧急类型配置相关的服务
// 紧急类型归属于楼宇，按(楼宇, ID)检索
type EmergencyTypeService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewEmergencyTypeService 创建一个新的紧急类型服务
func NewEmergencyTypeService(db *gorm.DB, cfg *config.Config) InterfaceEmergencyTypeService {
	return &EmergencyTypeService{
		DB:     db,
		Config: cfg,
	}
}

// 1. GetEmergencyTypes 获取楼宇下配置的所有紧急类型
func (s *EmergencyTypeService) GetEmergencyTypes(buildingID uint) ([]models.EmergencyType, error) {
	var types []models.EmergencyType
	err := s.DB.Where("building_id = ?", buildingID).
		Preload("InstructionSteps", func(db *gorm.DB) *gorm.DB {
			return db.Order("step_order ASC")
		}).
		Preload("AssemblyPoints").
		Find(&types).Error
	if err != nil {
		return nil, err
	}
	return types, nil
}

// 2. GetEmergencyTypeByID 在楼宇范围内按ID检索紧急类型
// 检索不到视为终态错误，由调用方呈现"数据不存在"
func (s *EmergencyTypeService) GetEmergencyTypeByID(buildingID, id uint) (*models.EmergencyType, error) {
	var emergencyType models.EmergencyType
	err := s.DB.Where("building_id = ? AND id = ?", buildingID, id).
		Preload("InstructionSteps", func(db *gorm.DB) *gorm.DB {
			return db.Order("step_order ASC")
		}).
		Preload("AssemblyPoints").
		First(&emergencyType).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("紧急类型不存在")
		}
		return nil, err
	}
	return &emergencyType, nil
}

// 3. CreateEmergencyType 创建紧急类型，指引步骤和集合点一并写入
func (s *EmergencyTypeService) CreateEmergencyType(emergencyType *models.EmergencyType) error {
	if emergencyType.Name == "" {
		return errors.New("紧急类型名称不能为空")
	}
	if emergencyType.BuildingID == 0 {
		return errors.New("必须指定所属楼宇")
	}

	// 步骤序号缺省时按传入顺序编号
	for i := range emergencyType.InstructionSteps {
		if emergencyType.InstructionSteps[i].StepOrder == 0 {
			emergencyType.InstructionSteps[i].StepOrder = i + 1
		}
	}

	return s.DB.Create(emergencyType).Error
}

// 4. UpdateEmergencyType 更新紧急类型基础字段（名称、演练计划）
func (s *EmergencyTypeService) UpdateEmergencyType(buildingID, id uint, updates map[string]interface{}) (*models.EmergencyType, error) {
	emergencyType, err := s.GetEmergencyTypeByID(buildingID, id)
	if err != nil {
		return nil, err
	}

	// 楼宇归属不可改，嵌套集合走整体替换接口
	delete(updates, "building_id")
	delete(updates, "instruction_steps")
	delete(updates, "assembly_points")

	if err := s.DB.Model(emergencyType).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetEmergencyTypeByID(buildingID, id)
}

// 5. ReplaceInstructionSteps 整体替换疏散指引步骤
func (s *EmergencyTypeService) ReplaceInstructionSteps(buildingID, id uint, steps []models.InstructionStep) (*models.EmergencyType, error) {
	emergencyType, err := s.GetEmergencyTypeByID(buildingID, id)
	if err != nil {
		return nil, err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("emergency_type_id = ?", emergencyType.ID).Delete(&models.InstructionStep{}).Error; err != nil {
			return err
		}
		for i := range steps {
			steps[i].ID = 0
			steps[i].EmergencyTypeID = emergencyType.ID
			if steps[i].StepOrder == 0 {
				steps[i].StepOrder = i + 1
			}
		}
		if len(steps) == 0 {
			return nil
		}
		return tx.Create(&steps).Error
	})
	if err != nil {
		return nil, err
	}

	return s.GetEmergencyTypeByID(buildingID, id)
}

// 6. ReplaceAssemblyPoints 整体替换集合点
// 集合点是嵌入数据，只支持整体替换，替换后ID重新生成
func (s *EmergencyTypeService) ReplaceAssemblyPoints(buildingID, id uint, points []models.AssemblyPoint) (*models.EmergencyType, error) {
	emergencyType, err := s.GetEmergencyTypeByID(buildingID, id)
	if err != nil {
		return nil, err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("emergency_type_id = ?", emergencyType.ID).Delete(&models.AssemblyPoint{}).Error; err != nil {
			return err
		}
		for i := range points {
			points[i].ID = 0
			points[i].EmergencyTypeID = emergencyType.ID
		}
		if len(points) == 0 {
			return nil
		}
		return tx.Create(&points).Error
	})
	if err != nil {
		return nil, err
	}

	return s.GetEmergencyTypeByID(buildingID, id)
}

// 7. DeleteEmergencyType 删除紧急类型及其嵌套数据
func (s *EmergencyTypeService) DeleteEmergencyType(buildingID, id uint) error {
	emergencyType, err := s.GetEmergencyTypeByID(buildingID, id)
	if err != nil {
		return err
	}

	// 检查是否有进行中的事件引用该类型
	var activeCount int64
	if err := s.DB.Model(&models.Event{}).
		Where("emergency_type_id = ? AND status = ?", emergencyType.ID, models.EventStatusActive).
		Count(&activeCount).Error; err != nil {
		return err
	}
	if activeCount > 0 {
		return errors.New("存在引用该类型的进行中事件，无法删除")
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("emergency_type_id = ?", emergencyType.ID).Delete(&models.InstructionStep{}).Error; err != nil {
			return err
		}
		if err := tx.Where("emergency_type_id = ?", emergencyType.ID).Delete(&models.AssemblyPoint{}).Error; err != nil {
			return err
		}
		return tx.Delete(emergencyType).Error
	})
}

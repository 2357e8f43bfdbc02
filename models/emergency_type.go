package models

// 演练周期常量
const (
	DrillIntervalMonthly    = "monthly"    // 每月
	DrillIntervalQuarterly  = "quarterly"  // 每季度
	DrillIntervalHalfYearly = "halfyearly" // 每半年
	DrillIntervalYearly     = "yearly"     // 每年
)

// EmergencyType 表示一种已配置的紧急类型（如火灾、地震）
// 归属于楼宇（building_id），在楼宇内按ID唯一检索
type EmergencyType struct {
	BaseModel
	BuildingID      uint   `gorm:"index;not null" json:"building_id"`
	Name            string `gorm:"type:varchar(50);not null" json:"name" example:"fire"`     // 类型标签，如 fire(火灾)、earthquake(地震)等
	DrillDayOfMonth int    `gorm:"default:1" json:"drill_day_of_month"`                      // 演练日期（每月第几天）
	DrillTimeOfDay  string `gorm:"type:varchar(5);default:'09:00'" json:"drill_time_of_day"` // 演练时间，格式"HH:MM"
	DrillInterval   string `gorm:"type:varchar(20);default:'monthly'" json:"drill_interval"` // 演练周期: monthly, quarterly, halfyearly, yearly

	// 关联关系
	InstructionSteps []InstructionStep `gorm:"foreignKey:EmergencyTypeID" json:"instruction_steps,omitempty"` // 疏散指引步骤（有序）
	AssemblyPoints   []AssemblyPoint   `gorm:"foreignKey:EmergencyTypeID" json:"assembly_points,omitempty"`   // 集合点
}

// InstructionStep 表示疏散指引中的一个步骤
type InstructionStep struct {
	BaseModel
	EmergencyTypeID uint   `gorm:"index;not null" json:"emergency_type_id"`
	StepOrder       int    `gorm:"not null" json:"step_order"` // 步骤序号，从1开始
	Content         string `gorm:"type:text;not null" json:"content"`
}

// AssemblyPoint 表示疏散后的安全集合点
type AssemblyPoint struct {
	BaseModel
	EmergencyTypeID uint    `gorm:"index;not null" json:"emergency_type_id"`
	Name            string  `gorm:"type:varchar(100);not null" json:"name"`
	Latitude        float64 `gorm:"not null" json:"latitude"`
	Longitude       float64 `gorm:"not null" json:"longitude"`
}

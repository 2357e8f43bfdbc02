package models

import (
	"time"

	"gorm.io/gorm"

	"heimdall-http-service/utils"
)

// 成员角色常量
const (
	RoleAdmin       = "admin"       // 管理员：可配置紧急类型、触发警报
	RoleCoordinator = "coordinator" // 协调员：可查看花名册、手动签到、结束事件
	RoleMember      = "member"      // 普通成员
)

// Member represents a building member
type Member struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	BuildingID uint      `gorm:"index;not null;uniqueIndex:idx_building_email" json:"building_id"`
	Name       string    `gorm:"type:varchar(50);not null" json:"name"`
	Email      string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_building_email" json:"email"`
	Phone      string    `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Password   string    `gorm:"type:varchar(100);not null" json:"-"` // 不在JSON中暴露密码
	Role       string    `gorm:"type:varchar(20);default:'member'" json:"role"`
	PushToken  string    `gorm:"type:varchar(255)" json:"push_token,omitempty"` // 推送令牌，为空表示无法接收推送
	PhotoURL   string    `gorm:"type:varchar(255)" json:"photo_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	Building  *Building  `gorm:"foreignKey:BuildingID" json:"building,omitempty"`
	Attendees []Attendee `gorm:"foreignKey:MemberID" json:"attendees,omitempty"`
}

// IsCoordinator 判断成员是否具有协调员级别权限（协调员或管理员）
func (m *Member) IsCoordinator() bool {
	return m.Role == RoleCoordinator || m.Role == RoleAdmin
}

// BeforeCreate 是一个GORM钩子，在创建新记录前运行
func (m *Member) BeforeCreate(tx *gorm.DB) error {
	// 如果提供了密码，对其进行哈希处理
	if m.Password != "" {
		hashedPassword, err := utils.HashPassword(m.Password)
		if err != nil {
			return err
		}
		m.Password = hashedPassword
	}
	return nil
}

// BeforeSave 是一个GORM钩子，在保存记录前运行
func (m *Member) BeforeSave(tx *gorm.DB) error {
	// 如果提供了密码且不是已哈希的，对其进行哈希处理
	if m.Password != "" && len(m.Password) < 60 {
		hashedPassword, err := utils.HashPassword(m.Password)
		if err != nil {
			return err
		}
		m.Password = hashedPassword
	}
	return nil
}

package models

// Building 表示楼宇信息
type Building struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);not null" json:"name"`              // 楼宇名称，如"科技园A座"
	Description string `gorm:"type:text" json:"description,omitempty"`              // 楼宇描述
	ImageURL    string `gorm:"type:varchar(255)" json:"image_url,omitempty"`        // 楼宇照片URL
	MapURL      string `gorm:"type:varchar(255)" json:"map_url,omitempty"`          // 疏散地图URL
	InviteCode  string `gorm:"type:varchar(20);unique;not null" json:"invite_code"` // 邀请码，全局唯一，用于成员加入
	CreatedBy   uint   `gorm:"not null" json:"created_by"`                          // 创建者用户ID，创建时自动成为管理员

	// 关联关系
	Members        []Member        `gorm:"foreignKey:BuildingID" json:"members,omitempty"`         // 楼宇成员（一对多）
	EmergencyTypes []EmergencyType `gorm:"foreignKey:BuildingID" json:"emergency_types,omitempty"` // 紧急类型配置（一对多）
	Events         []Event         `gorm:"foreignKey:BuildingID" json:"events,omitempty"`          // 紧急事件（一对多）
}

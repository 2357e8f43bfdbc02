package models

import "time"

// 事件状态常量
const (
	EventStatusActive    = "active"    // 进行中
	EventStatusCompleted = "completed" // 已结束（终态，不可重新打开）
)

// 事件类型常量
const (
	EventTypeDrill = "drill" // 演练
	EventTypeAlert = "alert" // 真实警报
)

// Event 表示一次紧急事件（警报或演练）
// 事件只能通过警报触发接口创建，以保证管理员权限校验
type Event struct {
	ID              string     `gorm:"type:varchar(36);primaryKey" json:"id"` // UUID
	BuildingID      uint       `gorm:"index;not null" json:"building_id"`
	EmergencyTypeID uint       `gorm:"not null" json:"emergency_type_id"`
	Name            string     `gorm:"type:varchar(100);not null" json:"name"`
	Type            string     `gorm:"type:varchar(10);not null" json:"type"`           // drill, alert
	Status          string     `gorm:"type:varchar(20);default:'active'" json:"status"` // active, completed
	TriggeredBy     uint       `gorm:"not null" json:"triggered_by"`                    // 触发者成员ID
	StartedAt       time.Time  `json:"started_at"`
	EndedAt         *time.Time `json:"ended_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	// Relations
	EmergencyType *EmergencyType `gorm:"foreignKey:EmergencyTypeID" json:"emergency_type,omitempty"`
	Attendees     []Attendee     `gorm:"foreignKey:EventID" json:"attendees,omitempty"`
}

// IsCompleted 判断事件是否已结束
func (e *Event) IsCompleted() bool {
	return e.Status == EventStatusCompleted
}

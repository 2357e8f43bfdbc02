package models

import "time"

// 出勤状态常量
const (
	AttendeeStatusInProgress = "in_progress" // 尚未确认安全
	AttendeeStatusSafe       = "safe"        // 已确认安全
)

// Attendee 表示某次事件中一位成员的出勤记录
// 每个(事件, 成员)对至多一条记录，首次写入状态时隐式创建，从不删除
type Attendee struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	EventID     string     `gorm:"type:varchar(36);not null;uniqueIndex:idx_event_member" json:"event_id"`
	MemberID    uint       `gorm:"not null;uniqueIndex:idx_event_member" json:"member_id"`
	Name        string     `gorm:"type:varchar(50);not null" json:"name"` // 成员显示名快照
	Phone       string     `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Status      string     `gorm:"type:varchar(20);default:'in_progress'" json:"status"` // in_progress, safe
	SafeAt      *time.Time `json:"safe_at,omitempty"`                                    // 确认安全的时间，由服务端写入
	CheckedInBy *uint      `json:"checked_in_by,omitempty"`                              // 手动签到操作者的成员ID，自助签到时为空
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// IsSafe 判断该出勤记录是否为安全状态
func (a *Attendee) IsSafe() bool {
	return a.Status == AttendeeStatusSafe
}

package models

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// 追踪会话状态常量
const (
	TrackingStatusTracking = "tracking" // 正在追踪位置，尚未到达集合点
	TrackingStatusPrompted = "prompted" // 已进入集合点范围，等待成员确认安全
	TrackingStatusSafe     = "safe"     // 成员已确认安全
)

// TrackingSession 表示一个(事件, 成员)的追踪会话
type TrackingSession struct {
	EventID        string     // 事件ID
	MemberID       uint       // 成员ID
	BuildingID     uint       // 楼宇ID
	Status         string     // 状态: tracking, prompted, safe
	Completed      bool       // 事件是否已结束（终态，与Status正交）
	PromptedRegion string     // 触发签到提示的集合点名称
	StartTime      time.Time  // 开始时间
	LastActivity   time.Time  // 最后活动时间
	mu             sync.Mutex // 互斥锁，保护会话状态修改
}

// TrackingSessionInfo 是会话的只读快照，用于JSON响应
type TrackingSessionInfo struct {
	EventID        string    `json:"event_id"`
	MemberID       uint      `json:"member_id"`
	BuildingID     uint      `json:"building_id"`
	Status         string    `json:"status"`
	Completed      bool      `json:"completed"`
	PromptedRegion string    `json:"prompted_region,omitempty"`
	StartTime      time.Time `json:"start_time"`
	LastActivity   time.Time `json:"last_activity"`
}

// Prompt 将会话置为"等待签到确认"状态
// 仅首次进入集合点范围时生效，返回true；重复进入或已确认安全时为no-op
func (s *TrackingSession) Prompt(region string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Completed || s.Status != TrackingStatusTracking {
		return false
	}

	s.Status = TrackingStatusPrompted
	s.PromptedRegion = region
	s.LastActivity = time.Now()
	return true
}

// SetSafe 将会话置为安全状态（反映存储层回读的权威状态）
func (s *TrackingSession) SetSafe() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Status = TrackingStatusSafe
	s.LastActivity = time.Now()
}

// SetNotSafe 将会话回退到追踪状态，签到提示标记同时清除
func (s *TrackingSession) SetNotSafe() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Status = TrackingStatusTracking
	s.PromptedRegion = ""
	s.LastActivity = time.Now()
}

// Complete 将会话标记为事件已结束
// 对重复送达的completed通知幂等，仅首次调用返回true
func (s *TrackingSession) Complete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Completed {
		return false
	}

	s.Completed = true
	s.LastActivity = time.Now()
	return true
}

// Snapshot 返回会话的只读快照
func (s *TrackingSession) Snapshot() TrackingSessionInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	return TrackingSessionInfo{
		EventID:        s.EventID,
		MemberID:       s.MemberID,
		BuildingID:     s.BuildingID,
		Status:         s.Status,
		Completed:      s.Completed,
		PromptedRegion: s.PromptedRegion,
		StartTime:      s.StartTime,
		LastActivity:   s.LastActivity,
	}
}

// SessionManager 管理所有追踪会话
type SessionManager struct {
	sessions map[string]*TrackingSession // 以"eventID:memberID"为键的会话映射
	mu       sync.RWMutex                // 读写锁保护会话映射
}

// NewSessionManager 创建一个新的追踪会话管理器
func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*TrackingSession),
	}
}

func sessionKey(eventID string, memberID uint) string {
	return fmt.Sprintf("%s:%d", eventID, memberID)
}

// CreateSession 创建一个新的追踪会话
// 重复开始追踪是幂等的：已存在的会话被原样返回
func (m *SessionManager) CreateSession(eventID string, memberID, buildingID uint) *TrackingSession {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := sessionKey(eventID, memberID)
	if session, exists := m.sessions[key]; exists {
		return session
	}

	session := &TrackingSession{
		EventID:      eventID,
		MemberID:     memberID,
		BuildingID:   buildingID,
		Status:       TrackingStatusTracking,
		StartTime:    time.Now(),
		LastActivity: time.Now(),
	}

	m.sessions[key] = session

	// 记录会话创建
	log.Printf("创建追踪会话: 事件=%s, 成员=%d", eventID, memberID)

	return session
}

// GetSession 获取指定追踪会话
func (m *SessionManager) GetSession(eventID string, memberID uint) (*TrackingSession, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[sessionKey(eventID, memberID)]
	return session, exists
}

// EndSession 结束并移除追踪会话
// 会话不存在时为no-op，停止重复调用是安全的
func (m *SessionManager) EndSession(eventID string, memberID uint) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := sessionKey(eventID, memberID)
	session, exists := m.sessions[key]
	if !exists {
		return
	}

	duration := time.Since(session.StartTime)
	log.Printf("结束追踪会话: 事件=%s, 成员=%d, 持续时间=%v", eventID, memberID, duration)

	delete(m.sessions, key)
}

// GetEventSessions 获取某事件的所有追踪会话
func (m *SessionManager) GetEventSessions(eventID string) []*TrackingSession {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var sessions []*TrackingSession
	for _, session := range m.sessions {
		if session.EventID == eventID {
			sessions = append(sessions, session)
		}
	}

	return sessions
}

// CompleteEventSessions 将某事件的所有会话标记为已结束并移除
// 返回实际被结束的会话数，对重复调用幂等
func (m *SessionManager) CompleteEventSessions(eventID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	var completedCount int
	for key, session := range m.sessions {
		if session.EventID != eventID {
			continue
		}
		if session.Complete() {
			completedCount++
		}
		delete(m.sessions, key)
	}

	if completedCount > 0 {
		log.Printf("事件结束，清理追踪会话: 事件=%s, 数量=%d", eventID, completedCount)
	}

	return completedCount
}

// CleanupStaleSessions 清理长时间无活动的会话
func (m *SessionManager) CleanupStaleSessions(maxIdle time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	var cleanedCount int
	now := time.Now()

	for key, session := range m.sessions {
		session.mu.Lock()
		lastActivity := session.LastActivity
		session.mu.Unlock()

		if now.Sub(lastActivity) > maxIdle {
			log.Printf("会话超时: %s, 最后活动=%v", key, lastActivity)
			delete(m.sessions, key)
			cleanedCount++
		}
	}

	return cleanedCount
}

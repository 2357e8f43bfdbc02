package models

import (
	"testing"
	"time"
)

func TestTrackingSessionPromptOnlyOnce(t *testing.T) {
	m := NewSessionManager()
	session := m.CreateSession("evt-1", 1, 1)

	if !session.Prompt("东门广场") {
		t.Fatal("首次进入集合点应触发提示")
	}
	if session.Status != TrackingStatusPrompted {
		t.Fatalf("状态应为prompted, 实际为%s", session.Status)
	}
	if session.PromptedRegion != "东门广场" {
		t.Fatalf("提示区域错误: %s", session.PromptedRegion)
	}

	// 再次进入不应重复提示
	if session.Prompt("西门广场") {
		t.Fatal("重复进入不应再次触发提示")
	}
	if session.PromptedRegion != "东门广场" {
		t.Fatal("重复进入不应覆盖提示区域")
	}
}

func TestTrackingSessionSafeTransitions(t *testing.T) {
	m := NewSessionManager()
	session := m.CreateSession("evt-1", 1, 1)

	session.Prompt("东门广场")
	session.SetSafe()
	if session.Status != TrackingStatusSafe {
		t.Fatalf("状态应为safe, 实际为%s", session.Status)
	}

	// 确认安全后不应再触发提示
	if session.Prompt("东门广场") {
		t.Fatal("安全状态下不应触发提示")
	}

	// 撤销确认后回到追踪状态，提示标记清除
	session.SetNotSafe()
	if session.Status != TrackingStatusTracking {
		t.Fatalf("状态应回到tracking, 实际为%s", session.Status)
	}
	if session.PromptedRegion != "" {
		t.Fatal("撤销确认后提示区域应清空")
	}

	// 回到追踪状态后可以再次触发提示
	if !session.Prompt("东门广场") {
		t.Fatal("撤销确认后再次进入应触发提示")
	}
}

func TestTrackingSessionCompleteIdempotent(t *testing.T) {
	session := &TrackingSession{EventID: "evt-1", MemberID: 1, Status: TrackingStatusTracking}

	if !session.Complete() {
		t.Fatal("首次结束应返回true")
	}
	if session.Complete() {
		t.Fatal("重复结束应返回false")
	}

	// 已结束的会话不应再触发提示
	if session.Prompt("东门广场") {
		t.Fatal("已结束的会话不应触发提示")
	}
}

func TestSessionManagerCreateIdempotent(t *testing.T) {
	m := NewSessionManager()

	first := m.CreateSession("evt-1", 1, 1)
	first.Prompt("东门广场")

	// 重复开始追踪返回原会话，状态不丢失
	second := m.CreateSession("evt-1", 1, 1)
	if first != second {
		t.Fatal("重复创建应返回已存在的会话")
	}
	if second.Status != TrackingStatusPrompted {
		t.Fatal("重复创建不应重置会话状态")
	}
}

func TestSessionManagerCompleteEventSessions(t *testing.T) {
	m := NewSessionManager()
	m.CreateSession("evt-1", 1, 1)
	m.CreateSession("evt-1", 2, 1)
	m.CreateSession("evt-2", 3, 1)

	if count := m.CompleteEventSessions("evt-1"); count != 2 {
		t.Fatalf("应结束2个会话, 实际为%d", count)
	}

	// 幂等：重复结束不再计数
	if count := m.CompleteEventSessions("evt-1"); count != 0 {
		t.Fatalf("重复结束应为0, 实际为%d", count)
	}

	// 其他事件的会话不受影响
	if _, exists := m.GetSession("evt-2", 3); !exists {
		t.Fatal("其他事件的会话不应被结束")
	}
}

func TestSessionManagerEndSessionNoop(t *testing.T) {
	m := NewSessionManager()
	m.CreateSession("evt-1", 1, 1)

	m.EndSession("evt-1", 1)
	if _, exists := m.GetSession("evt-1", 1); exists {
		t.Fatal("会话应已被移除")
	}

	// 重复停止是安全的
	m.EndSession("evt-1", 1)
	m.EndSession("evt-9", 42)
}

func TestSessionManagerCleanupStaleSessions(t *testing.T) {
	m := NewSessionManager()
	stale := m.CreateSession("evt-1", 1, 1)
	stale.LastActivity = time.Now().Add(-2 * time.Hour)
	m.CreateSession("evt-1", 2, 1)

	if count := m.CleanupStaleSessions(time.Hour); count != 1 {
		t.Fatalf("应清理1个会话, 实际为%d", count)
	}
	if _, exists := m.GetSession("evt-1", 2); !exists {
		t.Fatal("活跃会话不应被清理")
	}
}

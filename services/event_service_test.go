package services

import (
	"errors"
	"testing"

	"heimdall-http-service/models"
)

// mockPushService 记录下发调用，用于警报分发测试
type mockPushService struct {
	published []string // 收到警报的推送令牌
	failFor   map[string]bool
}

func (m *mockPushService) Connect() error { return nil }
func (m *mockPushService) Disconnect()    {}
func (m *mockPushService) IsReady() bool  { return true }
func (m *mockPushService) PublishAlertToMember(pushToken string, msg *AlertMessage) error {
	if m.failFor[pushToken] {
		return errors.New("publish failed")
	}
	m.published = append(m.published, pushToken)
	return nil
}
func (m *mockPushService) PublishEventStatus(event *models.Event) error          { return nil }
func (m *mockPushService) PublishAttendeeStatus(attendee *models.Attendee) error { return nil }
func (m *mockPushService) PublishCheckInPrompt(eventID string, memberID uint, regionName string) error {
	return nil
}
func (m *mockPushService) PublishSystemMessage(messageType string, message map[string]interface{}) error {
	return nil
}

func TestFanOutAlertSkipsTokenlessMembers(t *testing.T) {
	push := &mockPushService{}
	members := []models.Member{
		{ID: 1, Name: "Ali", PushToken: "token-1"},
		{ID: 2, Name: "Bob"}, // 未注册推送令牌
		{ID: 3, Name: "Chen", PushToken: "token-3"},
	}
	msg := &AlertMessage{AlertType: "fire", EventID: "evt-1"}

	attempted, skipped, failed := FanOutAlert(push, members, msg)

	if attempted != 2 || skipped != 1 || failed != 0 {
		t.Fatalf("计数错误: attempted=%d, skipped=%d, failed=%d", attempted, skipped, failed)
	}
	if len(push.published) != 2 {
		t.Fatalf("应下发2条警报, 实际为%d", len(push.published))
	}
	if push.published[0] != "token-1" || push.published[1] != "token-3" {
		t.Fatalf("下发目标错误: %v", push.published)
	}
}

func TestFanOutAlertFailuresDoNotAbort(t *testing.T) {
	push := &mockPushService{failFor: map[string]bool{"token-2": true}}
	members := []models.Member{
		{ID: 1, PushToken: "token-1"},
		{ID: 2, PushToken: "token-2"},
		{ID: 3, PushToken: "token-3"},
	}

	attempted, skipped, failed := FanOutAlert(push, members, &AlertMessage{AlertType: "fire"})

	if attempted != 3 || skipped != 0 || failed != 1 {
		t.Fatalf("计数错误: attempted=%d, skipped=%d, failed=%d", attempted, skipped, failed)
	}
	// 失败不应中断后续下发
	if len(push.published) != 2 {
		t.Fatalf("失败后应继续下发, 实际成功%d条", len(push.published))
	}
}

func TestFanOutAlertEmptyMembers(t *testing.T) {
	attempted, skipped, failed := FanOutAlert(&mockPushService{}, nil, &AlertMessage{})

	if attempted != 0 || skipped != 0 || failed != 0 {
		t.Fatalf("空成员列表计数应全为0: attempted=%d, skipped=%d, failed=%d", attempted, skipped, failed)
	}
}

package controllers

import "testing"

func TestTriggerEventRequestBindsDisplayName(t *testing.T) {
	var req TriggerEventRequest
	err := bindJSON(t, `{"emergency_type_id": 1, "emergency_type_name": "化学品泄漏", "event_type": "drill"}`, &req)
	if err != nil {
		t.Fatalf("绑定失败: %v", err)
	}
	if req.EmergencyTypeName != "化学品泄漏" {
		t.Fatalf("展示名称绑定错误: %s", req.EmergencyTypeName)
	}

	// 展示名称可缺省
	var bare TriggerEventRequest
	if err := bindJSON(t, `{"emergency_type_id": 1}`, &bare); err != nil {
		t.Fatalf("缺省展示名称应通过校验: %v", err)
	}
	if bare.EmergencyTypeName != "" {
		t.Fatalf("缺省时展示名称应为空, 实际为%s", bare.EmergencyTypeName)
	}
}

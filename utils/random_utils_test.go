package utils

import (
	"strings"
	"testing"
)

func TestRandomInviteCodeLength(t *testing.T) {
	if code := RandomInviteCode(8); len(code) != 8 {
		t.Fatalf("邀请码长度应为8, 实际为%d", len(code))
	}
	if code := RandomInviteCode(12); len(code) != 12 {
		t.Fatalf("邀请码长度应为12, 实际为%d", len(code))
	}

	// 非法长度回退为默认值
	if code := RandomInviteCode(0); len(code) != 8 {
		t.Fatalf("默认长度应为8, 实际为%d", len(code))
	}
	if code := RandomInviteCode(-5); len(code) != 8 {
		t.Fatalf("负数长度应回退为8, 实际为%d", len(code))
	}
}

func TestRandomInviteCodeCharset(t *testing.T) {
	for i := 0; i < 50; i++ {
		code := RandomInviteCode(8)
		for _, ch := range code {
			if !strings.ContainsRune(inviteCodeCharset, ch) {
				t.Fatalf("邀请码包含非法字符: %c", ch)
			}
		}
		// 字符集不包含易混淆字符
		if strings.ContainsAny(code, "0O1I") {
			t.Fatalf("邀请码不应包含易混淆字符: %s", code)
		}
	}
}

func TestRandomInviteCodeUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := RandomInviteCode(8)
		if seen[code] {
			t.Fatalf("生成了重复的邀请码: %s", code)
		}
		seen[code] = true
	}
}

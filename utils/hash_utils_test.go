package utils

import "testing"

func TestHashPasswordAndCheck(t *testing.T) {
	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("哈希密码失败: %v", err)
	}

	if hash == "secret123" {
		t.Fatal("哈希结果不应等于明文")
	}
	if !CheckPasswordHash("secret123", hash) {
		t.Fatal("正确密码应通过校验")
	}
	if CheckPasswordHash("wrong-password", hash) {
		t.Fatal("错误密码不应通过校验")
	}
}

func TestHashPasswordSalted(t *testing.T) {
	first, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("哈希密码失败: %v", err)
	}
	second, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("哈希密码失败: %v", err)
	}

	// bcrypt带盐，同一明文两次哈希结果不同
	if first == second {
		t.Fatal("两次哈希结果不应相同")
	}
}

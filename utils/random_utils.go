package utils

import (
	"crypto/rand"
	"encoding/binary"
)

// 邀请码字符集，去掉了易混淆的 0/O/1/I
const inviteCodeCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// RandomInt32 生成一个安全的随机32位整数
func RandomInt32() int32 {
	var num int32
	err := binary.Read(rand.Reader, binary.BigEndian, &num)
	if err != nil {
		panic("generate random int32 failed")
	}

	return num
}

// RandomInviteCode 生成指定长度的随机邀请码
func RandomInviteCode(length int) string {
	if length <= 0 {
		length = 8
	}

	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		panic("generate random invite code failed")
	}

	for i, b := range buf {
		buf[i] = inviteCodeCharset[int(b)%len(inviteCodeCharset)]
	}

	return string(buf)
}

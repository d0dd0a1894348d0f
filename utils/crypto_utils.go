package utils

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// CalculateMD5 计算字符串的MD5哈希值，返回32位小写十六进制字符串
func CalculateMD5(input string) string {
	hasher := md5.New()
	hasher.Write([]byte(input))
	return hex.EncodeToString(hasher.Sum(nil))
}

// FingerprintFields 将多个字段以"|"拼接后计算MD5，用作稳定的记录标识
func FingerprintFields(fields ...string) string {
	return CalculateMD5(strings.Join(fields, "|"))
}

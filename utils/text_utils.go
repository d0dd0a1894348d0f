package utils

import "fmt"

// Pluralize n为1时返回单数形式，否则返回复数形式
func Pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}

// FoundProfilesSummary 生成 "Found N profile(s)" 文案
func FoundProfilesSummary(n int) string {
	return fmt.Sprintf("Found %d %s", n, Pluralize(n, "profile", "profiles"))
}

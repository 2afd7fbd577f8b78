package model

import (
	"strconv"
	"strings"
)

// MinutesFromHours 把页面抓取到的小时字符串归一化为分钟：
// - 含小数点时逗号视为千位分隔符（"1,234.5" → 74070）
// - 仅含单个逗号时视为小数点（"12,5" → 750）
// 解析失败或为负时返回 0。
// 该函数只在抓取来源的入口处调用；API 来源本身即为分钟，不再换算。
func MinutesFromHours(raw string) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	switch {
	case strings.Contains(s, "."):
		s = strings.ReplaceAll(s, ",", "")
	case strings.Count(s, ",") > 1:
		s = strings.ReplaceAll(s, ",", "")
	default:
		s = strings.Replace(s, ",", ".", 1)
	}
	h, err := strconv.ParseFloat(s, 64)
	if err != nil || h < 0 {
		return 0
	}
	return int(h*60 + 0.5)
}

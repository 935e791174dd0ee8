package engine

import (
	"math"
	"regexp"
	"strconv"
)

// DefaultDurationMinutes 时长缺失或无法解析时的兜底值
// 视为一次正常的短会话，而不是0分钟（0会把时间类指标整体拉低）
const DefaultDurationMinutes = 15

var durationPattern = regexp.MustCompile(`^P(?:\d+[YMWD])*T?(?:(\d+)H)?(?:(\d+)M)?(?:(\d+(?:\.\d+)?)S)?$`)

// ParseISODuration 把 ISO8601 时长串（PT1H30M15S 形式）解析成分钟数
// 小时*60 + 分钟 + 秒向上取整；空串或不合法输入一律返回默认值
// 纯函数，没有错误分支
func ParseISODuration(text string) int {
	if text == "" {
		return DefaultDurationMinutes
	}

	m := durationPattern.FindStringSubmatch(text)
	if m == nil {
		return DefaultDurationMinutes
	}
	if m[1] == "" && m[2] == "" && m[3] == "" {
		return DefaultDurationMinutes
	}

	minutes := 0
	if m[1] != "" {
		h, _ := strconv.Atoi(m[1])
		minutes += h * 60
	}
	if m[2] != "" {
		mm, _ := strconv.Atoi(m[2])
		minutes += mm
	}
	if m[3] != "" {
		s, _ := strconv.ParseFloat(m[3], 64)
		minutes += int(math.Ceil(s / 60.0))
	}

	return minutes
}

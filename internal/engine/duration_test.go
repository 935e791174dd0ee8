package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseISODuration(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"时分秒组合", "PT1H30M15S", 91}, // 60 + 30 + ceil(15/60)
		{"只有分钟", "PT45M", 45},
		{"只有小时", "PT2H", 120},
		{"秒向上取整", "PT30S", 1},
		{"零秒", "PT0S", 0},
		{"带日期部分", "P1DT1H", 60},
		{"空串走默认值", "", DefaultDurationMinutes},
		{"垃圾输入走默认值", "garbage", DefaultDurationMinutes},
		{"只有P没有时间走默认值", "PT", DefaultDurationMinutes},
		{"负数不匹配走默认值", "PT-5M", DefaultDurationMinutes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseISODuration(tt.input))
		})
	}
}

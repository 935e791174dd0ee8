package engine

import (
	"testing"
	"time"

	"lrs_insight_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectInactivityGap(t *testing.T) {
	catalog := testCatalog()
	// 第 1 天和第 10 天各一条事件，空档 9 天，超过阈值 6
	statements := []model.Statement{
		completed("alice", "alg-basic-1", day(1), "PT30M"),
		scored("alice", "alg-basic-1", day(10), 80, 0.8),
	}
	idx := BuildIndex(statements, catalog)

	report := idx.DetectInactivity("alice", DefaultInactivityThresholdDays)
	require.NotNil(t, report.Gap)
	assert.InDelta(t, 9.0, report.Gap.Days, 1e-9)
	assert.Equal(t, day(1), report.Gap.Start)
	assert.Equal(t, day(10), report.Gap.End)
	assert.Equal(t, 2, report.ActiveDays)
	assert.Equal(t, 10, report.TotalDays)
}

func TestDetectInactivityBelowThreshold(t *testing.T) {
	catalog := testCatalog()
	// 每 2 天一条事件持续 20 天，最大空档 2 天，不报告
	var statements []model.Statement
	for d := 1; d <= 20; d += 2 {
		statements = append(statements, scored("alice", "alg-basic-1", day(d), 70, 0.7))
	}
	idx := BuildIndex(statements, catalog)

	report := idx.DetectInactivity("alice", DefaultInactivityThresholdDays)
	assert.Nil(t, report.Gap)
	assert.Equal(t, 10, report.ActiveDays)
	assert.Equal(t, 19, report.TotalDays)
	assert.InDelta(t, 10.0/19.0, report.ActiveDayRatio.Value, 1e-9)
}

func TestDetectInactivitySingleEvent(t *testing.T) {
	catalog := testCatalog()
	statements := []model.Statement{
		completed("alice", "alg-basic-1", day(1), "PT30M"),
	}
	idx := BuildIndex(statements, catalog)

	report := idx.DetectInactivity("alice", DefaultInactivityThresholdDays)
	assert.Nil(t, report.Gap)
	assert.Equal(t, 1, report.ActiveDays)
	assert.Equal(t, 1, report.TotalDays)
	assert.InDelta(t, 1.0, report.ActiveDayRatio.Value, 1e-9)
}

func TestDetectInactivityCrossMidnight(t *testing.T) {
	catalog := testCatalog()
	// 跨午夜但相隔不足 24 小时的两条事件占两个日历天，活跃天占比不能超过 1
	statements := []model.Statement{
		stmt("alice", model.VerbLaunched, "alg-basic-1", time.Date(2025, 3, 1, 23, 0, 0, 0, time.UTC)),
		stmt("alice", model.VerbExited, "alg-basic-1", time.Date(2025, 3, 2, 1, 0, 0, 0, time.UTC)),
	}
	idx := BuildIndex(statements, catalog)

	report := idx.DetectInactivity("alice", DefaultInactivityThresholdDays)
	assert.Equal(t, 2, report.ActiveDays)
	assert.Equal(t, 2, report.TotalDays)
	require.True(t, report.ActiveDayRatio.HasData)
	assert.InDelta(t, 1.0, report.ActiveDayRatio.Value, 1e-9)
	assert.Nil(t, report.Gap)
}

func TestDetectInactivityNoEvents(t *testing.T) {
	idx := BuildIndex(nil, testCatalog())
	report := idx.DetectInactivity("nobody", DefaultInactivityThresholdDays)
	assert.Nil(t, report.Gap)
	assert.Equal(t, 0, report.ActiveDays)
	assert.False(t, report.ActiveDayRatio.HasData)
}

func TestDetectInactivityExactThreshold(t *testing.T) {
	catalog := testCatalog()
	// 空档恰好等于阈值时要报告（达到即报）
	statements := []model.Statement{
		completed("alice", "alg-basic-1", day(1), "PT30M"),
		completed("alice", "alg-basic-2", day(7), "PT30M"),
	}
	idx := BuildIndex(statements, catalog)

	report := idx.DetectInactivity("alice", DefaultInactivityThresholdDays)
	require.NotNil(t, report.Gap)
	assert.InDelta(t, 6.0, report.Gap.Days, 1e-9)
}

package engine

import (
	"sort"
	"time"

	"lrs_insight_backend/internal/model"
)

// DefaultInactivityThresholdDays 不活跃空档的报告阈值（天）
// 统一用 6 天，低于阈值的空档不值得提醒
const DefaultInactivityThresholdDays = 6.0

// DetectInactivity 学习者不活跃分析
// 按时间排序后扫描相邻事件对，记录最大空档及其两端事件，
// 同时统计活跃天数占首末事件跨度的比例
// 事件不足两条或最大空档低于阈值时 Gap 为 nil
func (idx *Index) DetectInactivity(actorID string, thresholdDays float64) *model.InactivityReport {
	indices := idx.byActor[actorID]
	report := &model.InactivityReport{ActorID: actorID}
	if len(indices) == 0 {
		return report
	}

	times := make([]time.Time, 0, len(indices))
	for _, i := range indices {
		times = append(times, idx.Statements[i].Timestamp)
	}
	sort.Slice(times, func(a, b int) bool { return times[a].Before(times[b]) })

	// 1. 活跃天数：出现过事件的自然日去重
	days := make(map[string]bool)
	for _, t := range times {
		days[t.Format("2006-01-02")] = true
	}
	report.ActiveDays = len(days)

	// 2. 首末事件的日历天跨度（含两端）
	// 不能直接截断经过时长：跨午夜但不足 24 小时的两条事件也算两个日历天
	first := times[0]
	last := times[len(times)-1]
	firstDay := time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, first.Location())
	lastDay := time.Date(last.Year(), last.Month(), last.Day(), 0, 0, 0, 0, last.Location())
	totalDays := int(lastDay.Sub(firstDay).Hours()/24.0) + 1
	report.TotalDays = totalDays
	report.ActiveDayRatio = model.SomeMetric(float64(report.ActiveDays) / float64(totalDays))

	if len(times) < 2 {
		return report
	}

	// 3. 相邻事件对的最大空档
	maxGap := 0.0
	var gapStart, gapEnd time.Time
	for i := 1; i < len(times); i++ {
		gap := times[i].Sub(times[i-1]).Hours() / 24.0
		if gap > maxGap {
			maxGap = gap
			gapStart = times[i-1]
			gapEnd = times[i]
		}
	}

	if maxGap >= thresholdDays {
		report.Gap = &model.InactivityGap{
			Days:  maxGap,
			Start: gapStart,
			End:   gapEnd,
		}
	}
	return report
}

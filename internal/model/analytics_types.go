package model

import (
	"strconv"
	"time"
)

// NoData 无数据占位符，区别于数值0
const NoData = "N/A"

// Metric 聚合指标，HasData=false 表示输入为空（而不是指标值为0）
// 所有除零/空集合路径都走这个占位，绝不产生 NaN
type Metric struct {
	Value   float64 `json:"value"`
	HasData bool    `json:"hasData"`
}

// SomeMetric 有数据的指标
func SomeMetric(v float64) Metric {
	return Metric{Value: v, HasData: true}
}

// String 展示用格式，无数据时返回 N/A
func (m Metric) String() string {
	if !m.HasData {
		return NoData
	}
	return strconv.FormatFloat(m.Value, 'f', -1, 64)
}

// ActivityMetrics 单个活动的聚合指标
type ActivityMetrics struct {
	ActivityID      string          `json:"activityId"`
	Title           string          `json:"title"`
	SectionTitle    string          `json:"sectionTitle"`
	CompletedCount  int             `json:"completedCount"`
	AverageGrade    Metric          `json:"averageGrade"`    // 先按学习者求均值再求均值
	AverageAttempts Metric          `json:"averageAttempts"` // 通过所需平均尝试次数，保留一位小数
	AverageRating   Metric          `json:"averageRating"`
	AverageDuration Metric          `json:"averageDuration"` // 完成事件的平均用时（分钟）
	Difficulty      DifficultyLabel `json:"difficulty"`
}

// ActivityHistory 学习者在单个活动上的历史
type ActivityHistory struct {
	ActivityID    string    `json:"activityId"`
	Attempts      int       `json:"attempts"`
	Scores        []float64 `json:"scores"` // scaled 分数序列
	Completed     bool      `json:"completed"`
	TotalDuration int       `json:"totalDuration"` // 分钟
	LastDuration  int       `json:"lastDuration"`  // 分钟
}

// InactivityGap 学习者事件时间线上最大的一段空档
type InactivityGap struct {
	Days  float64   `json:"days"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// InactivityReport 学习者不活跃分析
type InactivityReport struct {
	ActorID        string         `json:"actorId"`
	Gap            *InactivityGap `json:"gap,omitempty"` // 低于阈值时为 nil
	ActiveDays     int            `json:"activeDays"`
	TotalDays      int            `json:"totalDays"`
	ActiveDayRatio Metric         `json:"activeDayRatio"`
}

// LearnerMetrics 单个学习者的聚合指标
type LearnerMetrics struct {
	ActorID         string                     `json:"actorId"`
	CompletionRatio Metric                     `json:"completionRatio"`
	TotalDuration   int                        `json:"totalDuration"` // 分钟
	AverageGrade    Metric                     `json:"averageGrade"`
	AverageAttempts Metric                     `json:"averageAttempts"`
	History         map[string]ActivityHistory `json:"history"` // activityId -> 历史
	Inactivity      *InactivityReport          `json:"inactivity,omitempty"`
}

// CommunityComparison 个人与全体学习者的同项指标对照
type CommunityComparison struct {
	ActorID            string `json:"actorId"`
	CompletionRatio    Metric `json:"completionRatio"`
	CohortCompletion   Metric `json:"cohortCompletion"`
	AverageGrade       Metric `json:"averageGrade"`
	CohortAverageGrade Metric `json:"cohortAverageGrade"`
	AverageAttempts    Metric `json:"averageAttempts"`
	CohortAttempts     Metric `json:"cohortAttempts"`
}

// PrecedenceEntry 先序统计：完成目标活动之前先完成了某个其它活动的人数占比
type PrecedenceEntry struct {
	ActivityID string  `json:"activityId"`
	Title      string  `json:"title"`
	Percentage float64 `json:"percentage"` // 0..100
}

// ScoredActivity 推荐结果中的一项，Score 取值 [0,1]
type ScoredActivity struct {
	ActivityID string  `json:"activityId"`
	Title      string  `json:"title"`
	Difficulty float64 `json:"difficulty"`
	Score      float64 `json:"score"`
	Review     bool    `json:"review"` // 复习回退时为 true
}

// CohortOverview 全体学习者概览
type CohortOverview struct {
	LearnerCount    int    `json:"learnerCount"`
	ActivityCount   int    `json:"activityCount"`
	StatementCount  int    `json:"statementCount"`
	CompletionRatio Metric `json:"completionRatio"` // 全体平均
	AverageGrade    Metric `json:"averageGrade"`
}

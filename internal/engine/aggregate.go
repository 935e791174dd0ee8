package engine

import (
	"math"
	"sort"
	"time"

	"lrs_insight_backend/internal/model"
)

// difficultyAnchors 难度规范化的五个锚点，升序排列
var difficultyAnchors = []struct {
	Value float64
	Label model.DifficultyLabel
}{
	{0.2, model.DifficultyVeryLow},
	{0.4, model.DifficultyLow},
	{0.6, model.DifficultyAverage},
	{0.8, model.DifficultyHigh},
	{1.0, model.DifficultyVeryHigh},
}

// isCompletion 判定事件是否表示完成：completed 动词或 completion 标志为真
func isCompletion(st *model.Statement) bool {
	if st.Verb == model.VerbCompleted {
		return true
	}
	return st.HasCompletion && st.Completion
}

// isAttempt 判定事件是否算一次通过/未通过的尝试
func isAttempt(st *model.Statement) bool {
	return st.Verb == model.VerbPassed || st.Verb == model.VerbFailed
}

// mean 算术平均，空集返回无数据占位
func mean(values []float64) model.Metric {
	if len(values) == 0 {
		return model.Metric{}
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return model.SomeMetric(sum / float64(len(values)))
}

// round1 保留一位小数
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// CompletedActivities 学习者完成过的目录内活动集合
func (idx *Index) CompletedActivities(actorID string) map[string]bool {
	done := make(map[string]bool)
	for _, i := range idx.byActor[actorID] {
		st := &idx.Statements[i]
		activityID, ok := idx.resolvedActivity[i]
		if !ok {
			continue
		}
		if isCompletion(st) {
			done[activityID] = true
		}
	}
	return done
}

// CompletionRatio 学习者完成的活动数占目录活动总数的比例
func (idx *Index) CompletionRatio(actorID string) model.Metric {
	total := idx.Catalog.ActivityCount()
	if total == 0 {
		return model.Metric{}
	}
	done := idx.CompletedActivities(actorID)
	return model.SomeMetric(float64(len(done)) / float64(total))
}

// AvgTimeOnTask 活动的平均完成用时（分钟）
// 只统计带时长的完成事件，空集返回无数据
func (idx *Index) AvgTimeOnTask(activityID string) model.Metric {
	var minutes []float64
	for _, i := range idx.byActivity[activityID] {
		st := &idx.Statements[i]
		if st.Verb == model.VerbCompleted && st.Duration != "" {
			minutes = append(minutes, float64(ParseISODuration(st.Duration)))
		}
	}
	return mean(minutes)
}

// AvgGrade 活动的平均成绩（全体学习者）
// 两级平均：先求每个学习者自己 scored 事件的均值，再对各均值求均值，
// 避免某个学习者的大量重复尝试淹没整体水平
func (idx *Index) AvgGrade(activityID string) model.Metric {
	perLearner := make(map[string][]float64)
	var order []string
	for _, i := range idx.byActivity[activityID] {
		st := &idx.Statements[i]
		if st.Verb != model.VerbScored || !st.HasScore {
			continue
		}
		if _, ok := perLearner[st.ActorID]; !ok {
			order = append(order, st.ActorID)
		}
		perLearner[st.ActorID] = append(perLearner[st.ActorID], st.Score.Raw)
	}

	var learnerMeans []float64
	for _, actor := range order {
		m := mean(perLearner[actor])
		learnerMeans = append(learnerMeans, m.Value)
	}
	return mean(learnerMeans)
}

// AvgAttemptsToPass 活动的平均通过尝试次数
// 分母是发起过尝试的学习者数（不是通过的人数），保留一位小数
func (idx *Index) AvgAttemptsToPass(activityID string) model.Metric {
	attempts := 0
	attempted := make(map[string]bool)
	for _, i := range idx.byActivity[activityID] {
		st := &idx.Statements[i]
		if isAttempt(st) {
			attempts++
			attempted[st.ActorID] = true
		}
	}
	if len(attempted) == 0 {
		return model.Metric{}
	}
	return model.SomeMetric(round1(float64(attempts) / float64(len(attempted))))
}

// LearnerAvgAttempts 学习者的平均尝试次数
// 按原始活动ID分桶（允许目录外的ID），分母是尝试过的活动数
func (idx *Index) LearnerAvgAttempts(actorID string) model.Metric {
	attempts := 0
	attempted := make(map[string]bool)
	for _, i := range idx.byActor[actorID] {
		st := &idx.Statements[i]
		if isAttempt(st) {
			attempts++
			attempted[st.ActivityID()] = true
		}
	}
	if len(attempted) == 0 {
		return model.Metric{}
	}
	return model.SomeMetric(round1(float64(attempts) / float64(len(attempted))))
}

// AvgRating 活动的平均评分（rated 事件的原始分）
func (idx *Index) AvgRating(activityID string) model.Metric {
	var ratings []float64
	for _, i := range idx.byActivity[activityID] {
		st := &idx.Statements[i]
		if st.Verb == model.VerbRated && st.HasScore {
			ratings = append(ratings, st.Score.Raw)
		}
	}
	return mean(ratings)
}

// LearnerAvgGrade 学习者所有 scored 事件的平均原始分
func (idx *Index) LearnerAvgGrade(actorID string) model.Metric {
	var scores []float64
	for _, i := range idx.byActor[actorID] {
		st := &idx.Statements[i]
		if st.Verb == model.VerbScored && st.HasScore {
			scores = append(scores, st.Score.Raw)
		}
	}
	return mean(scores)
}

// NormalizeDifficulty 把连续难度值或已有标签规范化成五档之一
// 连续值按最近邻匹配锚点，距离相同时取升序先遇到的锚点
func NormalizeDifficulty(act *model.Activity) model.DifficultyLabel {
	switch model.DifficultyLabel(act.DifficultyText) {
	case model.DifficultyVeryLow, model.DifficultyLow, model.DifficultyAverage,
		model.DifficultyHigh, model.DifficultyVeryHigh:
		return model.DifficultyLabel(act.DifficultyText)
	}

	best := difficultyAnchors[0].Label
	bestDist := math.Abs(act.Difficulty - difficultyAnchors[0].Value)
	for _, a := range difficultyAnchors[1:] {
		d := math.Abs(act.Difficulty - a.Value)
		if d < bestDist {
			bestDist = d
			best = a.Label
		}
	}
	return best
}

// CompletedCount 完成过该活动的学习者数
func (idx *Index) CompletedCount(activityID string) int {
	done := make(map[string]bool)
	for _, i := range idx.byActivity[activityID] {
		st := &idx.Statements[i]
		if isCompletion(st) {
			done[st.ActorID] = true
		}
	}
	return len(done)
}

// ActivityMetricsFor 单个活动的指标合集，活动不在目录中返回 nil
func (idx *Index) ActivityMetricsFor(activityID string) *model.ActivityMetrics {
	act, sec := idx.Catalog.FindActivity(activityID)
	if act == nil {
		return nil
	}
	return &model.ActivityMetrics{
		ActivityID:      activityID,
		Title:           act.Title,
		SectionTitle:    sec.Title,
		CompletedCount:  idx.CompletedCount(activityID),
		AverageGrade:    idx.AvgGrade(activityID),
		AverageAttempts: idx.AvgAttemptsToPass(activityID),
		AverageRating:   idx.AvgRating(activityID),
		AverageDuration: idx.AvgTimeOnTask(activityID),
		Difficulty:      NormalizeDifficulty(act),
	}
}

// firstCompletion 学习者首次完成某活动的时间
func (idx *Index) firstCompletion(activityID, actorID string) (time.Time, bool) {
	var first time.Time
	found := false
	for _, i := range idx.byActivityActor[activityActorKey{ActivityID: activityID, ActorID: actorID}] {
		st := &idx.Statements[i]
		if !isCompletion(st) {
			continue
		}
		if !found || st.Timestamp.Before(first) {
			first = st.Timestamp
			found = true
		}
	}
	return first, found
}

// Precedence 先序统计：对完成过目标活动的学习者，
// 统计他们完成目标之前（严格早于）先完成了哪些其它活动
// 结果按占比降序排列
func (idx *Index) Precedence(activityID string) []model.PrecedenceEntry {
	// 1. 按是否完成目标活动划分学习者
	var completers []string
	for _, actor := range idx.ActorsOnActivity(activityID) {
		if _, ok := idx.firstCompletion(activityID, actor); ok {
			completers = append(completers, actor)
		}
	}
	if len(completers) == 0 {
		return nil
	}

	// 2. 对每个完成者，比较其它已完成活动的首次完成时间
	beforeCount := make(map[string]int)
	for _, actor := range completers {
		target, _ := idx.firstCompletion(activityID, actor)
		for other := range idx.CompletedActivities(actor) {
			if other == activityID {
				continue
			}
			t, ok := idx.firstCompletion(other, actor)
			if ok && t.Before(target) {
				beforeCount[other]++
			}
		}
	}

	// 3. 汇总成百分比并按占比降序排列
	entries := make([]model.PrecedenceEntry, 0, len(beforeCount))
	for other, count := range beforeCount {
		title := other
		if act, _ := idx.Catalog.FindActivity(other); act != nil {
			title = act.Title
		}
		entries = append(entries, model.PrecedenceEntry{
			ActivityID: other,
			Title:      title,
			Percentage: float64(count) / float64(len(completers)) * 100,
		})
	}
	sort.SliceStable(entries, func(a, b int) bool {
		if entries[a].Percentage != entries[b].Percentage {
			return entries[a].Percentage > entries[b].Percentage
		}
		return entries[a].ActivityID < entries[b].ActivityID
	})
	return entries
}

// CohortCompletionRatio 全体学习者完成比例的平均值
func (idx *Index) CohortCompletionRatio(actorIDs []string) model.Metric {
	var ratios []float64
	for _, actor := range actorIDs {
		m := idx.CompletionRatio(actor)
		if m.HasData {
			ratios = append(ratios, m.Value)
		}
	}
	return mean(ratios)
}

// CohortAvgGrade 全体学习者平均成绩（每人先算自己的均值再平均）
func (idx *Index) CohortAvgGrade(actorIDs []string) model.Metric {
	var grades []float64
	for _, actor := range actorIDs {
		m := idx.LearnerAvgGrade(actor)
		if m.HasData {
			grades = append(grades, m.Value)
		}
	}
	return mean(grades)
}

// CohortAvgAttempts 全体学习者平均尝试次数
func (idx *Index) CohortAvgAttempts(actorIDs []string) model.Metric {
	var attempts []float64
	for _, actor := range actorIDs {
		m := idx.LearnerAvgAttempts(actor)
		if m.HasData {
			attempts = append(attempts, m.Value)
		}
	}
	m := mean(attempts)
	if !m.HasData {
		return m
	}
	return model.SomeMetric(round1(m.Value))
}

// Compare 个人指标与全体指标的并排对照
// 不是独立算法，只是同一聚合换了选择范围
func (idx *Index) Compare(actorID string, cohort []string) *model.CommunityComparison {
	return &model.CommunityComparison{
		ActorID:            actorID,
		CompletionRatio:    idx.CompletionRatio(actorID),
		CohortCompletion:   idx.CohortCompletionRatio(cohort),
		AverageGrade:       idx.LearnerAvgGrade(actorID),
		CohortAverageGrade: idx.CohortAvgGrade(cohort),
		AverageAttempts:    idx.LearnerAvgAttempts(actorID),
		CohortAttempts:     idx.CohortAvgAttempts(cohort),
	}
}

package engine

import (
	"runtime"
	"sync"

	"lrs_insight_backend/internal/model"
)

// LearnerHistory 学习者按活动分桶的历史（原始活动ID，允许目录外的ID）
func (idx *Index) LearnerHistory(actorID string) map[string]model.ActivityHistory {
	history := make(map[string]model.ActivityHistory)
	for _, i := range idx.byActor[actorID] {
		st := &idx.Statements[i]
		activityID := st.ActivityID()
		h := history[activityID]
		h.ActivityID = activityID

		if isAttempt(st) {
			h.Attempts++
		}
		if st.HasScore {
			h.Scores = append(h.Scores, st.Score.Scaled)
		}
		if isCompletion(st) {
			h.Completed = true
		}
		if st.Duration != "" {
			minutes := ParseISODuration(st.Duration)
			h.TotalDuration += minutes
			h.LastDuration = minutes
		}
		history[activityID] = h
	}
	return history
}

// LearnerMetricsFor 单个学习者的指标合集
func (idx *Index) LearnerMetricsFor(actorID string, inactivityThresholdDays float64) *model.LearnerMetrics {
	history := idx.LearnerHistory(actorID)
	total := 0
	for _, h := range history {
		total += h.TotalDuration
	}
	return &model.LearnerMetrics{
		ActorID:         actorID,
		CompletionRatio: idx.CompletionRatio(actorID),
		TotalDuration:   total,
		AverageGrade:    idx.LearnerAvgGrade(actorID),
		AverageAttempts: idx.LearnerAvgAttempts(actorID),
		History:         history,
		Inactivity:      idx.DetectInactivity(actorID, inactivityThresholdDays),
	}
}

// CohortLearnerMetrics 并行计算全体学习者指标
// 每个学习者的计算互相独立，用固定大小的 worker 池分摊，结果合并进一个 map
func (idx *Index) CohortLearnerMetrics(actorIDs []string, inactivityThresholdDays float64) map[string]*model.LearnerMetrics {
	workers := runtime.NumCPU()
	if workers > len(actorIDs) {
		workers = len(actorIDs)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan string)
	results := make(map[string]*model.LearnerMetrics, len(actorIDs))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for actor := range jobs {
				m := idx.LearnerMetricsFor(actor, inactivityThresholdDays)
				mu.Lock()
				results[actor] = m
				mu.Unlock()
			}
		}()
	}

	for _, actor := range actorIDs {
		jobs <- actor
	}
	close(jobs)
	wg.Wait()

	return results
}

// Overview 全体概览
func (idx *Index) Overview(actorIDs []string) *model.CohortOverview {
	return &model.CohortOverview{
		LearnerCount:    len(actorIDs),
		ActivityCount:   idx.Catalog.ActivityCount(),
		StatementCount:  len(idx.Statements),
		CompletionRatio: idx.CohortCompletionRatio(actorIDs),
		AverageGrade:    idx.CohortAvgGrade(actorIDs),
	}
}

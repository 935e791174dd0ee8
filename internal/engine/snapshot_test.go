package engine

import (
	"testing"

	"lrs_insight_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLearnerHistory(t *testing.T) {
	catalog := testCatalog()
	statements := []model.Statement{
		stmt("alice", model.VerbFailed, "alg-basic-1", day(1)),
		scored("alice", "alg-basic-1", day(1), 40, 0.4),
		stmt("alice", model.VerbPassed, "alg-basic-1", day(2)),
		completed("alice", "alg-basic-1", day(2), "PT30M"),
		completed("alice", "alg-basic-1", day(3), "PT20M"),
	}
	idx := BuildIndex(statements, catalog)

	history := idx.LearnerHistory("alice")
	h, ok := history["alg-basic-1"]
	require.True(t, ok)
	assert.Equal(t, 2, h.Attempts)
	assert.Equal(t, []float64{0.4}, h.Scores)
	assert.True(t, h.Completed)
	assert.Equal(t, 50, h.TotalDuration)
	assert.Equal(t, 20, h.LastDuration)
}

func TestLearnerMetricsFor(t *testing.T) {
	catalog := testCatalog()
	statements := []model.Statement{
		completed("alice", "alg-basic-1", day(1), "PT30M"),
		scored("alice", "alg-basic-2", day(2), 75, 0.75),
	}
	idx := BuildIndex(statements, catalog)

	m := idx.LearnerMetricsFor("alice", DefaultInactivityThresholdDays)
	assert.InDelta(t, 1.0/5.0, m.CompletionRatio.Value, 1e-9)
	assert.Equal(t, 30, m.TotalDuration)
	assert.InDelta(t, 75.0, m.AverageGrade.Value, 1e-9)
	assert.False(t, m.AverageAttempts.HasData)
	require.NotNil(t, m.Inactivity)
	assert.Nil(t, m.Inactivity.Gap)
}

func TestCohortLearnerMetricsParallel(t *testing.T) {
	catalog := testCatalog()
	var statements []model.Statement
	actors := []string{"a1", "a2", "a3", "a4", "a5", "a6", "a7", "a8"}
	for i, actor := range actors {
		statements = append(statements, completed(actor, "alg-basic-1", day(i+1), "PT30M"))
		statements = append(statements, scored(actor, "alg-basic-2", day(i+2), float64(50+i), 0.5))
	}
	idx := BuildIndex(statements, catalog)

	results := idx.CohortLearnerMetrics(actors, DefaultInactivityThresholdDays)
	require.Len(t, results, len(actors))
	for i, actor := range actors {
		m := results[actor]
		require.NotNil(t, m, actor)
		// 并行结果必须和串行一致
		assert.Equal(t, idx.LearnerMetricsFor(actor, DefaultInactivityThresholdDays), m)
		assert.InDelta(t, float64(50+i), m.AverageGrade.Value, 1e-9)
	}
}

func TestOverview(t *testing.T) {
	catalog := testCatalog()
	statements := []model.Statement{
		completed("alice", "alg-basic-1", day(1), "PT30M"),
		scored("bob", "alg-basic-1", day(2), 60, 0.6),
	}
	idx := BuildIndex(statements, catalog)

	ov := idx.Overview([]string{"alice", "bob"})
	assert.Equal(t, 2, ov.LearnerCount)
	assert.Equal(t, 5, ov.ActivityCount)
	assert.Equal(t, 2, ov.StatementCount)
	assert.InDelta(t, 0.1, ov.CompletionRatio.Value, 1e-9) // (0.2 + 0) / 2
	assert.InDelta(t, 60.0, ov.AverageGrade.Value, 1e-9)
}

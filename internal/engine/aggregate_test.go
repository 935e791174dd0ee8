package engine

import (
	"testing"

	"lrs_insight_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvgGradeTwoLevelAverage(t *testing.T) {
	catalog := testCatalog()
	// alice 刷了两次（90 和 70，均值 80），bob 只考了一次 60
	// 两级平均 = (80+60)/2 = 70，而不是混合均值 (90+70+60)/3 ≈ 73.3
	statements := []model.Statement{
		scored("alice", "alg-basic-1", day(1), 90, 0.9),
		scored("alice", "alg-basic-1", day(2), 70, 0.7),
		scored("bob", "alg-basic-1", day(3), 60, 0.6),
	}
	idx := BuildIndex(statements, catalog)

	grade := idx.AvgGrade("alg-basic-1")
	require.True(t, grade.HasData)
	assert.InDelta(t, 70.0, grade.Value, 1e-9)

	// 幂等：同一输入再算一遍结果不变
	again := idx.AvgGrade("alg-basic-1")
	assert.Equal(t, grade, again)
}

func TestAvgGradeNoScoredEvents(t *testing.T) {
	catalog := testCatalog()
	statements := []model.Statement{
		completed("alice", "alg-basic-1", day(1), "PT30M"),
		rated("alice", "alg-basic-1", day(2), 4),
	}
	idx := BuildIndex(statements, catalog)

	grade := idx.AvgGrade("alg-basic-1")
	assert.False(t, grade.HasData)
	assert.Equal(t, model.NoData, grade.String())
}

func TestAvgAttemptsToPass(t *testing.T) {
	catalog := testCatalog()
	// alice 三次尝试（2 failed + 1 passed），bob 一次通过
	// 分母是尝试过的人数（2），不是通过的人数
	statements := []model.Statement{
		stmt("alice", model.VerbFailed, "alg-basic-1", day(1)),
		stmt("alice", model.VerbFailed, "alg-basic-1", day(2)),
		stmt("alice", model.VerbPassed, "alg-basic-1", day(3)),
		stmt("bob", model.VerbPassed, "alg-basic-1", day(4)),
	}
	idx := BuildIndex(statements, catalog)

	attempts := idx.AvgAttemptsToPass("alg-basic-1")
	require.True(t, attempts.HasData)
	assert.Equal(t, 2.0, attempts.Value)

	// 没人尝试过的活动
	assert.False(t, idx.AvgAttemptsToPass("geo-basic-1").HasData)
}

func TestAvgTimeOnTask(t *testing.T) {
	catalog := testCatalog()
	statements := []model.Statement{
		completed("alice", "alg-basic-1", day(1), "PT30M"),
		completed("bob", "alg-basic-1", day(2), "PT1H"),
		// 没带时长的完成事件不参与平均
		completed("carol", "alg-basic-1", day(3), ""),
		// 非完成事件不参与
		scored("dave", "alg-basic-1", day(4), 50, 0.5),
	}
	idx := BuildIndex(statements, catalog)

	tot := idx.AvgTimeOnTask("alg-basic-1")
	require.True(t, tot.HasData)
	assert.InDelta(t, 45.0, tot.Value, 1e-9)

	assert.False(t, idx.AvgTimeOnTask("alg-basic-2").HasData)
}

func TestAvgRating(t *testing.T) {
	catalog := testCatalog()
	statements := []model.Statement{
		rated("alice", "alg-basic-1", day(1), 4),
		rated("bob", "alg-basic-1", day(2), 2),
	}
	idx := BuildIndex(statements, catalog)

	rating := idx.AvgRating("alg-basic-1")
	require.True(t, rating.HasData)
	assert.InDelta(t, 3.0, rating.Value, 1e-9)

	assert.False(t, idx.AvgRating("geo-basic-1").HasData)
}

func TestCompletionRatio(t *testing.T) {
	catalog := testCatalog() // 共 5 个活动
	statements := []model.Statement{
		completed("alice", "alg-basic-1", day(1), "PT30M"),
		completed("alice", "geo-basic-1", day(2), "PT20M"),
		// completion 标志也算完成
		func() model.Statement {
			s := stmt("alice", model.VerbScored, "alg-basic-2", day(3))
			s.HasCompletion = true
			s.Completion = true
			return s
		}(),
		// 目录外的完成不计入
		completed("alice", "ghost", day(4), "PT5M"),
	}
	idx := BuildIndex(statements, catalog)

	ratio := idx.CompletionRatio("alice")
	require.True(t, ratio.HasData)
	assert.InDelta(t, 3.0/5.0, ratio.Value, 1e-9)

	// 没有任何事件的学习者：0 完成但有数据（分母是目录规模）
	empty := idx.CompletionRatio("nobody")
	require.True(t, empty.HasData)
	assert.Equal(t, 0.0, empty.Value)
}

func TestCompletionRatioEmptyCatalog(t *testing.T) {
	idx := BuildIndex(nil, &model.Catalog{})
	assert.False(t, idx.CompletionRatio("alice").HasData)
}

func TestNormalizeDifficulty(t *testing.T) {
	tests := []struct {
		name string
		act  model.Activity
		want model.DifficultyLabel
	}{
		{"最近邻取 average", model.Activity{Difficulty: 0.55}, model.DifficultyAverage},
		{"平局取升序先遇到的锚点", model.Activity{Difficulty: 0.5}, model.DifficultyLow},
		{"低端", model.Activity{Difficulty: 0.1}, model.DifficultyVeryLow},
		{"高端", model.Activity{Difficulty: 0.95}, model.DifficultyVeryHigh},
		{"已有标签直接透传", model.Activity{Difficulty: 0.1, DifficultyText: "high"}, model.DifficultyHigh},
		{"非法标签按数值规范化", model.Activity{Difficulty: 0.8, DifficultyText: "extreme"}, model.DifficultyHigh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDifficulty(&tt.act))
		})
	}
}

func TestPrecedence(t *testing.T) {
	catalog := testCatalog()
	// alice: 先完成 A(alg-basic-1) 再完成 B(alg-basic-2)
	// bob: 顺序相反
	statements := []model.Statement{
		completed("alice", "alg-basic-1", day(1), "PT30M"),
		completed("alice", "alg-basic-2", day(3), "PT40M"),
		completed("bob", "alg-basic-2", day(2), "PT40M"),
		completed("bob", "alg-basic-1", day(5), "PT30M"),
	}
	idx := BuildIndex(statements, catalog)

	// 对目标 B：完成者 alice 和 bob，只有 alice 严格在 B 之前完成了 A
	entries := idx.Precedence("alg-basic-2")
	require.Len(t, entries, 1)
	assert.Equal(t, "alg-basic-1", entries[0].ActivityID)
	assert.InDelta(t, 50.0, entries[0].Percentage, 1e-9)

	// 对目标 A：只有 bob 在 A 之前完成了 B
	entries = idx.Precedence("alg-basic-1")
	require.Len(t, entries, 1)
	assert.Equal(t, "alg-basic-2", entries[0].ActivityID)
	assert.InDelta(t, 50.0, entries[0].Percentage, 1e-9)
}

func TestPrecedenceNoCompleters(t *testing.T) {
	catalog := testCatalog()
	statements := []model.Statement{
		scored("alice", "alg-basic-1", day(1), 50, 0.5),
	}
	idx := BuildIndex(statements, catalog)
	assert.Empty(t, idx.Precedence("alg-basic-1"))
}

func TestCompare(t *testing.T) {
	catalog := testCatalog()
	statements := []model.Statement{
		scored("alice", "alg-basic-1", day(1), 80, 0.8),
		scored("bob", "alg-basic-1", day(2), 60, 0.6),
		completed("alice", "alg-basic-1", day(3), "PT30M"),
	}
	idx := BuildIndex(statements, catalog)

	cmp := idx.Compare("alice", []string{"alice", "bob"})
	require.True(t, cmp.AverageGrade.HasData)
	assert.InDelta(t, 80.0, cmp.AverageGrade.Value, 1e-9)
	assert.InDelta(t, 70.0, cmp.CohortAverageGrade.Value, 1e-9)
	assert.InDelta(t, 1.0/5.0, cmp.CompletionRatio.Value, 1e-9)
	assert.InDelta(t, 0.1, cmp.CohortCompletion.Value, 1e-9)
	// 没人有 passed/failed 事件
	assert.False(t, cmp.AverageAttempts.HasData)
	assert.False(t, cmp.CohortAttempts.HasData)
}

func TestActivityMetricsFor(t *testing.T) {
	catalog := testCatalog()
	statements := []model.Statement{
		completed("alice", "alg-basic-2", day(1), "PT40M"),
		scored("alice", "alg-basic-2", day(1), 85, 0.85),
		rated("alice", "alg-basic-2", day(2), 5),
	}
	idx := BuildIndex(statements, catalog)

	m := idx.ActivityMetricsFor("alg-basic-2")
	require.NotNil(t, m)
	assert.Equal(t, "Linear Equations", m.Title)
	assert.Equal(t, "Foundations", m.SectionTitle)
	assert.Equal(t, 1, m.CompletedCount)
	assert.Equal(t, model.DifficultyAverage, m.Difficulty) // 0.55 -> average
	assert.True(t, m.AverageGrade.HasData)
	assert.False(t, m.AverageAttempts.HasData)

	assert.Nil(t, idx.ActivityMetricsFor("ghost"))
}

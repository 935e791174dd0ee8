package engine

import (
	"testing"

	"lrs_insight_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func learner(actorID string, persona model.PersonaType) *model.LearnerProfile {
	return &model.LearnerProfile{ActorID: actorID, Persona: persona}
}

func TestRecommendAllCompleted(t *testing.T) {
	catalog := testCatalog()
	var statements []model.Statement
	d := 1
	for _, sec := range catalog.Sections {
		for _, act := range sec.Activities {
			statements = append(statements, completed("alice", act.ActivityID, day(d), "PT30M"))
			d++
		}
	}
	idx := BuildIndex(statements, catalog)

	recs := idx.Recommend(learner("alice", model.PersonaAverage), DefaultTopN)
	assert.Empty(t, recs)
}

func TestRecommendGrittyPrefersHarder(t *testing.T) {
	// 平均 scaled 分 0.5 -> 目标难度 0.7
	// gritty 权重 0.8/0.2：难度 0.7 的活动要排在 0.3 的前面
	catalog := &model.Catalog{
		Sections: []model.Section{{
			Title: "S",
			Activities: []model.Activity{
				{ActivityID: "easy", Title: "Easy", Difficulty: 0.3, EstimatedDuration: 30},
				{ActivityID: "hard", Title: "Hard", Difficulty: 0.7, EstimatedDuration: 30},
			},
		}},
	}
	statements := []model.Statement{
		scored("alice", "easy", day(1), 50, 0.5),
	}
	idx := BuildIndex(statements, catalog)

	recs := idx.Recommend(learner("alice", model.PersonaGritty), DefaultTopN)
	require.Len(t, recs, 2)
	assert.Equal(t, "hard", recs[0].ActivityID)
	assert.Greater(t, recs[0].Score, recs[1].Score)
	assert.False(t, recs[0].Review)
}

func TestRecommendPrerequisiteFilter(t *testing.T) {
	catalog := testCatalog()
	// alice 什么都没完成：advanced 活动应被前置过滤掉
	idx := BuildIndex(nil, catalog)

	recs := idx.Recommend(learner("alice", model.PersonaAverage), DefaultTopN)
	for _, r := range recs {
		assert.NotContains(t, r.ActivityID, "advanced")
	}
	require.Len(t, recs, 3)

	// 完成 alg-basic-1 之后 alg-advanced-1 解锁
	statements := []model.Statement{
		completed("alice", "alg-basic-1", day(1), "PT30M"),
	}
	idx = BuildIndex(statements, catalog)
	recs = idx.Recommend(learner("alice", model.PersonaAverage), DefaultTopN)
	ids := make(map[string]bool)
	for _, r := range recs {
		ids[r.ActivityID] = true
	}
	assert.True(t, ids["alg-advanced-1"])
	assert.False(t, ids["geo-advanced-1"]) // geo-basic-1 还没完成
}

func TestRecommendReviewFallback(t *testing.T) {
	// 只剩一个被前置卡住的 advanced 活动：回退到高难度复习而不是空列表
	catalog := &model.Catalog{
		Sections: []model.Section{{
			Title: "S",
			Activities: []model.Activity{
				{ActivityID: "topic-basic-1", Title: "Basic", Difficulty: 0.4, EstimatedDuration: 30},
				{ActivityID: "topic-advanced-2", Title: "Advanced II", Difficulty: 0.85, EstimatedDuration: 60},
			},
		}},
	}
	// topic-advanced-2 的前置 topic-basic-2 不存在也未完成
	statements := []model.Statement{
		completed("alice", "topic-basic-1", day(1), "PT30M"),
	}
	idx := BuildIndex(statements, catalog)

	recs := idx.Recommend(learner("alice", model.PersonaAverage), DefaultTopN)
	require.NotEmpty(t, recs)
	for _, r := range recs {
		assert.True(t, r.Review)
		assert.Greater(t, r.Difficulty, 0.7)
	}
}

func TestRecommendTopN(t *testing.T) {
	var acts []model.Activity
	for i := 0; i < 10; i++ {
		acts = append(acts, model.Activity{
			ActivityID:        "act-" + string(rune('a'+i)),
			Title:             "Act",
			Difficulty:        0.1 * float64(i+1),
			EstimatedDuration: 30,
		})
	}
	catalog := &model.Catalog{Sections: []model.Section{{Title: "S", Activities: acts}}}
	idx := BuildIndex(nil, catalog)

	recs := idx.Recommend(learner("alice", model.PersonaAverage), DefaultTopN)
	assert.Len(t, recs, DefaultTopN)
	// 匹配分降序
	for i := 1; i < len(recs); i++ {
		assert.GreaterOrEqual(t, recs[i-1].Score, recs[i].Score)
	}
}

func TestRecommendUnknownPersonaFallsBack(t *testing.T) {
	catalog := testCatalog()
	idx := BuildIndex(nil, catalog)

	a := idx.Recommend(learner("alice", model.PersonaOutlierC), DefaultTopN)
	b := idx.Recommend(learner("alice", model.PersonaAverage), DefaultTopN)
	assert.Equal(t, b, a)
}

func TestLearnerBaselineDefaults(t *testing.T) {
	idx := BuildIndex(nil, testCatalog())
	avgScore, avgDuration := idx.learnerBaseline("nobody")
	assert.Equal(t, 0.0, avgScore)
	assert.Equal(t, 0.0, avgDuration)
}

package engine

import (
	"math"
	"sort"
	"strings"

	"lrs_insight_backend/internal/model"
)

// DefaultTopN 推荐列表长度
const DefaultTopN = 5

// Weights 某个画像的匹配权重：难度匹配 / 时长匹配
type Weights struct {
	Difficulty float64
	Duration   float64
}

// PersonaWeights 画像 -> 权重的查表，新画像加一行即可，不走分支逻辑
// 离群画像未单独建模，统一回退到 average
var PersonaWeights = map[model.PersonaType]Weights{
	model.PersonaStruggler: {Difficulty: 0.7, Duration: 0.3},
	model.PersonaSprinter:  {Difficulty: 0.4, Duration: 0.6},
	model.PersonaGritty:    {Difficulty: 0.8, Duration: 0.2},
	model.PersonaCoaster:   {Difficulty: 0.5, Duration: 0.5},
	model.PersonaAverage:   {Difficulty: 0.6, Duration: 0.4},
}

// weightsFor 取画像权重，未知画像回退到 average
func weightsFor(persona model.PersonaType) Weights {
	if w, ok := PersonaWeights[persona]; ok {
		return w
	}
	return PersonaWeights[model.PersonaAverage]
}

// learnerBaseline 学习者的总体平均 scaled 分数和平均单次用时（分钟）
// 历史为空时都取0：打分器需要数值基线，不能用 N/A
func (idx *Index) learnerBaseline(actorID string) (avgScore, avgDuration float64) {
	var scores, durations []float64
	for _, i := range idx.byActor[actorID] {
		st := &idx.Statements[i]
		if st.HasScore {
			scores = append(scores, st.Score.Scaled)
		}
		if st.Duration != "" {
			durations = append(durations, float64(ParseISODuration(st.Duration)))
		}
	}
	if m := mean(scores); m.HasData {
		avgScore = m.Value
	}
	if m := mean(durations); m.HasData {
		avgDuration = m.Value
	}
	return avgScore, avgDuration
}

// scoreActivity 单个活动的匹配分
// 难度目标永远比学习者当前水平高一点（+0.2，封顶1）
func scoreActivity(act *model.Activity, avgScore, avgDuration float64, w Weights) float64 {
	target := math.Min(avgScore+0.2, 1)
	difficultyMatch := 1 - math.Abs(target-act.Difficulty)
	durationMatch := 1 - math.Min(1, math.Abs(float64(act.EstimatedDuration)-avgDuration)/60)
	return w.Difficulty*difficultyMatch + w.Duration*durationMatch
}

// prerequisiteMet 前置检查：ID 带 advanced 的活动要求对应 basic 版本已完成
func prerequisiteMet(activityID string, done map[string]bool) bool {
	if !strings.Contains(activityID, "advanced") {
		return true
	}
	basic := strings.ReplaceAll(activityID, "advanced", "basic")
	return done[basic]
}

// Recommend 给学习者生成推荐列表（匹配分降序前 topN 个）
// 目录全部完成时返回空列表（本期结束）；
// 还有未完成活动但全被前置卡住时，回退成复习模式：
// 重新给出难度大于 0.7 的最难活动，按同样方式打分，保证学习者不会看到空页面
func (idx *Index) Recommend(learner *model.LearnerProfile, topN int) []model.ScoredActivity {
	if topN <= 0 {
		topN = DefaultTopN
	}
	w := weightsFor(learner.Persona)
	avgScore, avgDuration := idx.learnerBaseline(learner.ActorID)
	done := idx.CompletedActivities(learner.ActorID)

	// 1. 未完成的活动集合（前置过滤之前）
	var available []*model.Activity
	for i := range idx.Catalog.Sections {
		sec := &idx.Catalog.Sections[i]
		for j := range sec.Activities {
			act := &sec.Activities[j]
			if !done[act.ActivityID] {
				available = append(available, act)
			}
		}
	}
	if len(available) == 0 {
		return []model.ScoredActivity{}
	}

	// 2. 前置过滤
	var eligible []*model.Activity
	for _, act := range available {
		if prerequisiteMet(act.ActivityID, done) {
			eligible = append(eligible, act)
		}
	}

	// 3. 被前置卡死：回退到高难度复习
	review := false
	if len(eligible) == 0 {
		review = true
		for i := range idx.Catalog.Sections {
			sec := &idx.Catalog.Sections[i]
			for j := range sec.Activities {
				act := &sec.Activities[j]
				if act.Difficulty > 0.7 {
					eligible = append(eligible, act)
				}
			}
		}
		if len(eligible) == 0 {
			return []model.ScoredActivity{}
		}
	}

	// 4. 打分、排序、截断
	scored := make([]model.ScoredActivity, 0, len(eligible))
	for _, act := range eligible {
		scored = append(scored, model.ScoredActivity{
			ActivityID: act.ActivityID,
			Title:      act.Title,
			Difficulty: act.Difficulty,
			Score:      scoreActivity(act, avgScore, avgDuration, w),
			Review:     review,
		})
	}
	sort.SliceStable(scored, func(a, b int) bool {
		if review && scored[a].Difficulty != scored[b].Difficulty {
			return scored[a].Difficulty > scored[b].Difficulty
		}
		return scored[a].Score > scored[b].Score
	})
	if len(scored) > topN {
		scored = scored[:topN]
	}
	return scored
}

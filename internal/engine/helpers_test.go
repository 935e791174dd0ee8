package engine

import (
	"time"

	"lrs_insight_backend/internal/model"
)

// 测试用课程目录：两个章节五个活动，目录内活动ID全局唯一
func testCatalog() *model.Catalog {
	return &model.Catalog{
		Sections: []model.Section{
			{
				Title: "Foundations",
				Order: 1,
				Activities: []model.Activity{
					{ActivityID: "alg-basic-1", Title: "Algebra Basics", Difficulty: 0.3, EstimatedDuration: 30, Order: 1},
					{ActivityID: "alg-basic-2", Title: "Linear Equations", Difficulty: 0.55, EstimatedDuration: 45, Order: 2},
					{ActivityID: "alg-advanced-1", Title: "Polynomial Division", Difficulty: 0.8, EstimatedDuration: 60, Order: 3},
				},
			},
			{
				Title: "Geometry",
				Order: 2,
				Activities: []model.Activity{
					{ActivityID: "geo-basic-1", Title: "Angles", Difficulty: 0.7, EstimatedDuration: 20, Order: 1},
					{ActivityID: "geo-advanced-1", Title: "Proof Writing", Difficulty: 0.9, EstimatedDuration: 90, Order: 2},
				},
			},
		},
	}
}

func day(n int) time.Time {
	return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC).AddDate(0, 0, n-1)
}

func stmt(actor string, verb model.Verb, activity string, ts time.Time) model.Statement {
	return model.Statement{
		ActorID:          actor,
		Verb:             verb,
		ObjectID:         "https://lms.example/object/" + activity,
		ObjectExtensions: map[string]string{model.ActivityIDExtension: activity},
		Timestamp:        ts,
	}
}

func completed(actor, activity string, ts time.Time, duration string) model.Statement {
	s := stmt(actor, model.VerbCompleted, activity, ts)
	s.HasCompletion = true
	s.Completion = true
	s.Duration = duration
	return s
}

func scored(actor, activity string, ts time.Time, raw, scaled float64) model.Statement {
	s := stmt(actor, model.VerbScored, activity, ts)
	s.HasScore = true
	s.Score = model.Score{Raw: raw, Min: 0, Max: 100, Scaled: scaled}
	return s
}

func rated(actor, activity string, ts time.Time, raw float64) model.Statement {
	s := stmt(actor, model.VerbRated, activity, ts)
	s.HasScore = true
	s.Score = model.Score{Raw: raw, Min: 1, Max: 5, Scaled: raw / 5}
	return s
}

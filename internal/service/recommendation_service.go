package service

import (
	"context"
	"errors"

	"lrs_insight_backend/internal/config"
	"lrs_insight_backend/internal/model"
	"lrs_insight_backend/internal/repository"
	"lrs_insight_backend/internal/util"
)

// RecommendationService 按学习者画像加权的活动推荐
type RecommendationService struct {
	Snapshot    *SnapshotService
	LearnerRepo *repository.LearnerRepository
	Analytics   *AnalyticsService
	Cfg         *config.Config
}

func NewRecommendationService(
	snapshot *SnapshotService,
	learnerRepo *repository.LearnerRepository,
	analytics *AnalyticsService,
	cfg *config.Config,
) *RecommendationService {
	return &RecommendationService{
		Snapshot:    snapshot,
		LearnerRepo: learnerRepo,
		Analytics:   analytics,
		Cfg:         cfg,
	}
}

// RecommendationResponse 推荐结果，带上画像方便前端展示权重来源
type RecommendationResponse struct {
	ActorID    string                 `json:"actorId"`
	Persona    model.PersonaType      `json:"persona"`
	Activities []model.ScoredActivity `json:"activities"`
}

// Recommend 为学习者生成推荐列表
// 没有档案的学习者按 average 画像处理，不会因此报错
func (s *RecommendationService) Recommend(ctx context.Context, actorID string) (*RecommendationResponse, error) {
	profile, err := s.LearnerRepo.FindByActorID(actorID)
	if err != nil {
		if !errors.Is(err, util.ErrLearnerNotFound) {
			return nil, err
		}
		profile = &model.LearnerProfile{ActorID: actorID, Persona: model.PersonaAverage}
	}

	var resp RecommendationResponse
	err = s.Analytics.cached(ctx, CachePrefix+"recommend:"+actorID, &resp, func() (interface{}, error) {
		idx, err := s.Snapshot.Index()
		if err != nil {
			return nil, err
		}
		return &RecommendationResponse{
			ActorID:    actorID,
			Persona:    profile.Persona,
			Activities: idx.Recommend(profile, s.Cfg.Engine.RecommendationTopN),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

package service

import (
	"context"

	"lrs_insight_backend/internal/model"
	"lrs_insight_backend/internal/repository"
)

type LearnerService struct {
	LearnerRepo *repository.LearnerRepository
	Snapshot    *SnapshotService
}

func NewLearnerService(learnerRepo *repository.LearnerRepository, snapshot *SnapshotService) *LearnerService {
	return &LearnerService{
		LearnerRepo: learnerRepo,
		Snapshot:    snapshot,
	}
}

// LearnerImport 学习者档案导入请求
type LearnerImport struct {
	ActorID string `json:"actorId" binding:"required"`
	Name    string `json:"name"`
	Persona string `json:"persona"`
}

// ImportProfiles 批量导入学习者档案，已存在的按 actorId 更新
func (s *LearnerService) ImportProfiles(ctx context.Context, reqs []LearnerImport) (int, error) {
	for _, req := range reqs {
		persona := model.PersonaType(req.Persona)
		if persona == "" {
			persona = model.PersonaAverage
		}
		profile := &model.LearnerProfile{
			ActorID: req.ActorID,
			Name:    req.Name,
			Persona: persona,
		}
		if err := s.LearnerRepo.Upsert(profile); err != nil {
			return 0, err
		}
	}
	// 画像影响推荐权重，清掉缓存的推荐结果
	s.Snapshot.Invalidate(ctx)
	return len(reqs), nil
}

func (s *LearnerService) Get(actorID string) (*model.LearnerProfile, error) {
	return s.LearnerRepo.FindByActorID(actorID)
}

func (s *LearnerService) List() ([]model.LearnerProfile, error) {
	return s.LearnerRepo.FindAll()
}

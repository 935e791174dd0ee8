package service

import (
	"context"
	"time"

	"lrs_insight_backend/internal/model"
	"lrs_insight_backend/internal/repository"
	"lrs_insight_backend/internal/util"
	"lrs_insight_backend/pkg/monitoring"
)

type StatementService struct {
	StatementRepo *repository.StatementRepository
	Snapshot      *SnapshotService
}

func NewStatementService(
	statementRepo *repository.StatementRepository,
	snapshot *SnapshotService,
) *StatementService {
	return &StatementService{
		StatementRepo: statementRepo,
		Snapshot:      snapshot,
	}
}

// StatementRequest 事件上报请求体
type StatementRequest struct {
	ActorID          string            `json:"actorId" binding:"required"`
	Verb             string            `json:"verb" binding:"required"`
	ObjectID         string            `json:"objectId" binding:"required"`
	ObjectExtensions map[string]string `json:"objectExtensions"`
	Timestamp        time.Time         `json:"timestamp"`
	Score            *model.Score      `json:"score"`
	Completion       *bool             `json:"completion"`
	Duration         string            `json:"duration"`
}

func (req *StatementRequest) toModel() *model.Statement {
	st := &model.Statement{
		ActorID:          req.ActorID,
		Verb:             model.Verb(req.Verb),
		ObjectID:         req.ObjectID,
		ObjectExtensions: req.ObjectExtensions,
		Timestamp:        req.Timestamp,
		Duration:         req.Duration,
	}
	if st.Timestamp.IsZero() {
		st.Timestamp = time.Now().UTC()
	}
	if req.Score != nil {
		st.HasScore = true
		st.Score = *req.Score
	}
	if req.Completion != nil {
		st.HasCompletion = true
		st.Completion = *req.Completion
	}
	return st
}

func validateStatement(st *model.Statement) error {
	if st.ActorID == "" || st.Verb == "" || st.ObjectID == "" {
		return util.ErrInvalidStatement
	}
	return nil
}

// Ingest 写入一条事件并使快照失效
func (s *StatementService) Ingest(ctx context.Context, req *StatementRequest) (*model.Statement, error) {
	st := req.toModel()
	if err := validateStatement(st); err != nil {
		return nil, err
	}
	if err := s.StatementRepo.Create(st); err != nil {
		return nil, err
	}

	monitoring.StatementsIngested.Inc()
	s.Snapshot.Invalidate(ctx)
	return st, nil
}

// IngestBatch 批量写入，整批校验通过才入库
func (s *StatementService) IngestBatch(ctx context.Context, reqs []StatementRequest) (int, error) {
	statements := make([]model.Statement, 0, len(reqs))
	for i := range reqs {
		st := reqs[i].toModel()
		if err := validateStatement(st); err != nil {
			return 0, err
		}
		statements = append(statements, *st)
	}

	if err := s.StatementRepo.CreateBatch(statements); err != nil {
		return 0, err
	}

	monitoring.StatementsIngested.Add(float64(len(statements)))
	s.Snapshot.Invalidate(ctx)
	return len(statements), nil
}

func (s *StatementService) ListByActor(actorID string) ([]model.Statement, error) {
	return s.StatementRepo.FindByActor(actorID)
}

// List 按条件查询事件流水，verb 为空时返回全部
func (s *StatementService) List(verb string) ([]model.Statement, error) {
	if verb != "" {
		return s.StatementRepo.FindByVerb(model.Verb(verb))
	}
	return s.StatementRepo.FindAll()
}

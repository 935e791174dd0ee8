package service

import (
	"context"
	"encoding/json"
	"time"

	"lrs_insight_backend/internal/config"
	"lrs_insight_backend/internal/model"
	"lrs_insight_backend/internal/repository"
	"lrs_insight_backend/internal/util"
	"lrs_insight_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// AnalyticsService 聚合指标的读取入口
// 指标从内存快照派生，结果按键缓存到 Redis，事件写入后整体失效
type AnalyticsService struct {
	Snapshot    *SnapshotService
	LearnerRepo *repository.LearnerRepository
	Redis       *redis.Client
	Cfg         *config.Config
}

func NewAnalyticsService(
	snapshot *SnapshotService,
	learnerRepo *repository.LearnerRepository,
	rdb *redis.Client,
	cfg *config.Config,
) *AnalyticsService {
	return &AnalyticsService{
		Snapshot:    snapshot,
		LearnerRepo: learnerRepo,
		Redis:       rdb,
		Cfg:         cfg,
	}
}

func (s *AnalyticsService) cacheTTL() time.Duration {
	return time.Duration(s.Cfg.Engine.CacheTTLMinutes) * time.Minute
}

// cached 先查 Redis，未命中时计算并回填
// 缓存读写失败只记日志，不影响主流程
func (s *AnalyticsService) cached(ctx context.Context, key string, out interface{}, build func() (interface{}, error)) error {
	data, err := s.Redis.Get(ctx, key).Bytes()
	if err == nil {
		if json.Unmarshal(data, out) == nil {
			return nil
		}
	} else if err != redis.Nil {
		logger.Log.Warn("读取指标缓存失败", zap.String("key", key), zap.Error(err))
	}

	value, err := build()
	if err != nil {
		return err
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := s.Redis.Set(ctx, key, encoded, s.cacheTTL()).Err(); err != nil {
		logger.Log.Warn("写入指标缓存失败", zap.String("key", key), zap.Error(err))
	}
	return json.Unmarshal(encoded, out)
}

// ActivityMetrics 单个活动的聚合指标
// 目录里没有的活动ID直接报未找到，不落缓存，避免把空结构当成合法结果
func (s *AnalyticsService) ActivityMetrics(ctx context.Context, activityID string) (*model.ActivityMetrics, error) {
	idx, err := s.Snapshot.Index()
	if err != nil {
		return nil, err
	}
	if act, _ := idx.Catalog.FindActivity(activityID); act == nil {
		return nil, util.ErrActivityNotFound
	}

	var metrics model.ActivityMetrics
	err = s.cached(ctx, CachePrefix+"activity:"+activityID, &metrics, func() (interface{}, error) {
		return idx.ActivityMetricsFor(activityID), nil
	})
	if err != nil {
		return nil, err
	}
	return &metrics, nil
}

// Precedence 完成目标活动前先完成了哪些活动的占比
func (s *AnalyticsService) Precedence(ctx context.Context, activityID string) ([]model.PrecedenceEntry, error) {
	var entries []model.PrecedenceEntry
	err := s.cached(ctx, CachePrefix+"precedence:"+activityID, &entries, func() (interface{}, error) {
		idx, err := s.Snapshot.Index()
		if err != nil {
			return nil, err
		}
		return idx.Precedence(activityID), nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// LearnerMetrics 单个学习者的聚合指标和活动历史
func (s *AnalyticsService) LearnerMetrics(ctx context.Context, actorID string) (*model.LearnerMetrics, error) {
	var metrics model.LearnerMetrics
	err := s.cached(ctx, CachePrefix+"learner:"+actorID, &metrics, func() (interface{}, error) {
		idx, err := s.Snapshot.Index()
		if err != nil {
			return nil, err
		}
		return idx.LearnerMetricsFor(actorID, s.Cfg.Engine.InactivityThresholdDays), nil
	})
	if err != nil {
		return nil, err
	}
	return &metrics, nil
}

// Compare 学习者和全体学习者的同项指标对照
func (s *AnalyticsService) Compare(ctx context.Context, actorID string) (*model.CommunityComparison, error) {
	var comparison model.CommunityComparison
	err := s.cached(ctx, CachePrefix+"compare:"+actorID, &comparison, func() (interface{}, error) {
		idx, err := s.Snapshot.Index()
		if err != nil {
			return nil, err
		}
		return idx.Compare(actorID, idx.Actors()), nil
	})
	if err != nil {
		return nil, err
	}
	return &comparison, nil
}

// Inactivity 学习者不活跃空档分析
func (s *AnalyticsService) Inactivity(ctx context.Context, actorID string) (*model.InactivityReport, error) {
	var report model.InactivityReport
	err := s.cached(ctx, CachePrefix+"inactivity:"+actorID, &report, func() (interface{}, error) {
		idx, err := s.Snapshot.Index()
		if err != nil {
			return nil, err
		}
		return idx.DetectInactivity(actorID, s.Cfg.Engine.InactivityThresholdDays), nil
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// Overview 全体学习者概览
func (s *AnalyticsService) Overview(ctx context.Context) (*model.CohortOverview, error) {
	var overview model.CohortOverview
	err := s.cached(ctx, CachePrefix+"overview", &overview, func() (interface{}, error) {
		idx, err := s.Snapshot.Index()
		if err != nil {
			return nil, err
		}
		return idx.Overview(idx.Actors()), nil
	})
	if err != nil {
		return nil, err
	}
	return &overview, nil
}

// CohortLearnerMetrics 全体学习者逐人指标，导出报表用
func (s *AnalyticsService) CohortLearnerMetrics(ctx context.Context) (map[string]*model.LearnerMetrics, error) {
	idx, err := s.Snapshot.Index()
	if err != nil {
		return nil, err
	}
	return idx.CohortLearnerMetrics(idx.Actors(), s.Cfg.Engine.InactivityThresholdDays), nil
}

package service

import (
	"context"
	"sync"
	"time"

	"lrs_insight_backend/internal/engine"
	"lrs_insight_backend/internal/repository"
	"lrs_insight_backend/pkg/logger"
	"lrs_insight_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CachePrefix 派生指标在 Redis 中的键前缀，事件写入后整体失效
const CachePrefix = "insight:analytics:"

// SnapshotService 维护内存中的事件索引快照
// 事件和目录入库后在这里构建 engine.Index，所有分析读取共享同一份快照
type SnapshotService struct {
	StatementRepo *repository.StatementRepository
	CatalogRepo   *repository.CatalogRepository
	Redis         *redis.Client

	mu      sync.RWMutex
	idx     *engine.Index
	builtAt time.Time
}

func NewSnapshotService(
	statementRepo *repository.StatementRepository,
	catalogRepo *repository.CatalogRepository,
	rdb *redis.Client,
) *SnapshotService {
	return &SnapshotService{
		StatementRepo: statementRepo,
		CatalogRepo:   catalogRepo,
		Redis:         rdb,
	}
}

// Index 返回当前快照，没有快照时先重建
func (s *SnapshotService) Index() (*engine.Index, error) {
	s.mu.RLock()
	idx := s.idx
	s.mu.RUnlock()
	if idx != nil {
		return idx, nil
	}
	return s.Rebuild()
}

// Rebuild 从数据库全量加载事件和目录，重建索引
func (s *SnapshotService) Rebuild() (*engine.Index, error) {
	start := time.Now()

	statements, err := s.StatementRepo.FindAll()
	if err != nil {
		return nil, err
	}
	catalog, err := s.CatalogRepo.Load()
	if err != nil {
		return nil, err
	}

	idx := engine.BuildIndex(statements, catalog)

	s.mu.Lock()
	s.idx = idx
	s.builtAt = time.Now()
	s.mu.Unlock()

	monitoring.SnapshotRebuilds.Inc()
	monitoring.RecomputeDuration.Observe(time.Since(start).Seconds())

	logger.Log.Info("事件索引重建完成",
		zap.Int("statements", len(statements)),
		zap.Int("activities", catalog.ActivityCount()),
		zap.Int("unresolvable", idx.UnresolvableCount()),
		zap.Duration("elapsed", time.Since(start)))

	return idx, nil
}

// Invalidate 丢弃内存快照并清掉 Redis 里的派生指标缓存
// 写入路径调用，下一次读取会触发重建
func (s *SnapshotService) Invalidate(ctx context.Context) {
	s.mu.Lock()
	s.idx = nil
	s.mu.Unlock()

	iter := s.Redis.Scan(ctx, 0, CachePrefix+"*", 200).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		logger.Log.Warn("扫描缓存键失败", zap.Error(err))
		return
	}
	if len(keys) > 0 {
		if err := s.Redis.Del(ctx, keys...).Err(); err != nil {
			logger.Log.Warn("清理指标缓存失败", zap.Error(err))
		}
	}
}

// BuiltAt 当前快照的构建时间，零值表示还没有快照
func (s *SnapshotService) BuiltAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.builtAt
}

// StartRecomputeLoop 后台定期重建快照，避免首个请求冷启动
func (s *SnapshotService) StartRecomputeLoop(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := s.Rebuild(); err != nil {
					logger.Log.Error("后台重建快照失败", zap.Error(err))
				}
			}
		}
	}()
}

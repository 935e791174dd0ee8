package service

import (
	"context"
	"testing"

	"lrs_insight_backend/internal/config"
	"lrs_insight_backend/internal/engine"
	"lrs_insight_backend/internal/model"
	"lrs_insight_backend/internal/util"
	"lrs_insight_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// 测试用分析服务：直接注入内存快照，Redis 指向不可达地址（缓存读写失败只记日志）
func newAnalyticsFixture() *AnalyticsService {
	logger.Log = zap.NewNop()

	catalog := &model.Catalog{
		Sections: []model.Section{
			{
				Title: "Foundations",
				Order: 1,
				Activities: []model.Activity{
					{ActivityID: "alg-basic-1", Title: "Algebra Basics", Difficulty: 0.3, EstimatedDuration: 30, Order: 1},
				},
			},
		},
	}

	snap := &SnapshotService{}
	snap.idx = engine.BuildIndex(nil, catalog)

	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	return NewAnalyticsService(snap, nil, rdb, &config.Config{})
}

// 目录外的活动ID要报未找到，而不是 200 加一个零值指标结构
func TestActivityMetricsUnknownActivity(t *testing.T) {
	svc := newAnalyticsFixture()

	metrics, err := svc.ActivityMetrics(context.Background(), "no-such-activity")
	assert.Nil(t, metrics)
	assert.ErrorIs(t, err, util.ErrActivityNotFound)
}

func TestActivityMetricsKnownActivity(t *testing.T) {
	svc := newAnalyticsFixture()

	metrics, err := svc.ActivityMetrics(context.Background(), "alg-basic-1")
	require.NoError(t, err)
	assert.Equal(t, "alg-basic-1", metrics.ActivityID)
	assert.Equal(t, "Algebra Basics", metrics.Title)
	assert.False(t, metrics.AverageGrade.HasData)
}

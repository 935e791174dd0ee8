package controller

import (
	"net/http"

	"lrs_insight_backend/internal/service"
	"lrs_insight_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type HealthController struct {
	DB       *gorm.DB
	Redis    *redis.Client
	Snapshot *service.SnapshotService
}

func NewHealthController(db *gorm.DB, rdb *redis.Client, snapshot *service.SnapshotService) *HealthController {
	return &HealthController{DB: db, Redis: rdb, Snapshot: snapshot}
}

// @Summary 健康检查
// @Description 检查数据库、Redis 和指标快照状态
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	// 检查数据库连接
	sqlDB, err := c.DB.DB()
	if err != nil {
		util.InternalServerError(ctx)
		return
	}

	if err := sqlDB.Ping(); err != nil {
		util.Error(ctx, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	redisStatus := "up"
	if err := c.Redis.Ping(ctx.Request.Context()).Err(); err != nil {
		redisStatus = "down"
	}

	snapshotStatus := "cold"
	if builtAt := c.Snapshot.BuiltAt(); !builtAt.IsZero() {
		snapshotStatus = builtAt.Format(util.TimeFormat)
	}

	util.Success(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"database": "up",
			"redis":    redisStatus,
			"snapshot": snapshotStatus,
		},
	})
}

package app

import (
	"lrs_insight_backend/docs"
	"lrs_insight_backend/internal/config"
	"lrs_insight_backend/internal/middleware"
	"lrs_insight_backend/internal/model"
	"lrs_insight_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/me", c.auth.Me)

		// 事件上报，教师及以上角色
		statements := authGroup.Group("/statements")
		statements.Use(middleware.RoleMiddleware(model.Teacher, model.Admin))
		{
			statements.POST("", c.statement.Ingest)
			statements.POST("/batch", c.statement.IngestBatch)
		}
		authGroup.GET("/statements", c.statement.List)
		authGroup.GET("/statements/actor/:actorId", c.statement.ListByActor)

		// 目录维护
		authGroup.GET("/catalog", c.catalog.Get)
		authGroup.GET("/catalog/activities/:activityId", c.catalog.GetActivity)
		catalogAdmin := authGroup.Group("/catalog")
		catalogAdmin.Use(middleware.RoleMiddleware(model.Teacher, model.Admin))
		{
			catalogAdmin.POST("", c.catalog.Import)
			catalogAdmin.POST("/activities/:activityId/media", c.catalog.UploadMedia)
		}

		// 学习者档案
		authGroup.GET("/learners", c.learner.List)
		authGroup.GET("/learners/:actorId", c.learner.Get)
		learnerAdmin := authGroup.Group("/learners")
		learnerAdmin.Use(middleware.RoleMiddleware(model.Teacher, model.Admin))
		{
			learnerAdmin.POST("", c.learner.Import)
		}

		// 分析
		authGroup.GET("/analytics/overview", c.analytics.Overview)
		authGroup.GET("/analytics/learners", c.analytics.CohortLearners)
		authGroup.GET("/analytics/learners/:actorId", c.analytics.LearnerMetrics)
		authGroup.GET("/analytics/learners/:actorId/comparison", c.analytics.Compare)
		authGroup.GET("/analytics/learners/:actorId/inactivity", c.analytics.Inactivity)
		authGroup.GET("/analytics/activities/:activityId", c.analytics.ActivityMetrics)
		authGroup.GET("/analytics/activities/:activityId/precedence", c.analytics.Precedence)

		// 推荐
		authGroup.GET("/recommendations/:actorId", c.recommendation.Recommend)
	}
}

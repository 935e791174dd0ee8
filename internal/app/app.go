package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lrs_insight_backend/internal/config"
	"lrs_insight_backend/internal/controller"
	"lrs_insight_backend/internal/repository"
	"lrs_insight_backend/internal/service"
	"lrs_insight_backend/pkg/database"
	"lrs_insight_backend/pkg/logger"
	"lrs_insight_backend/pkg/monitoring"
	"lrs_insight_backend/pkg/security"
	"lrs_insight_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services

	bgCancel context.CancelFunc
}

type repositories struct {
	user      *repository.UserRepository
	statement *repository.StatementRepository
	catalog   *repository.CatalogRepository
	learner   *repository.LearnerRepository
}

type services struct {
	auth           *service.AuthService
	storage        *service.StorageService
	snapshot       *service.SnapshotService
	statement      *service.StatementService
	catalog        *service.CatalogService
	learner        *service.LearnerService
	analytics      *service.AnalyticsService
	recommendation *service.RecommendationService
}

type controllers struct {
	auth           *controller.AuthController
	statement      *controller.StatementController
	catalog        *controller.CatalogController
	learner        *controller.LearnerController
	analytics      *controller.AnalyticsController
	recommendation *controller.RecommendationController
	health         *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:      repository.NewUserRepository(db),
		statement: repository.NewStatementRepository(db),
		catalog:   repository.NewCatalogRepository(db),
		learner:   repository.NewLearnerRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.snapshot = service.NewSnapshotService(repos.statement, repos.catalog, rdb)
	s.statement = service.NewStatementService(repos.statement, s.snapshot)
	s.catalog = service.NewCatalogService(repos.catalog, s.storage, s.snapshot)
	s.learner = service.NewLearnerService(repos.learner, s.snapshot)
	s.analytics = service.NewAnalyticsService(s.snapshot, repos.learner, rdb, cfg)
	s.recommendation = service.NewRecommendationService(s.snapshot, repos.learner, s.analytics, cfg)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:           controller.NewAuthController(s.auth),
		statement:      controller.NewStatementController(s.statement),
		catalog:        controller.NewCatalogController(s.catalog),
		learner:        controller.NewLearnerController(s.learner),
		analytics:      controller.NewAnalyticsController(s.analytics),
		recommendation: controller.NewRecommendationController(s.recommendation),
		health:         controller.NewHealthController(db, rdb, s.snapshot),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 100000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window, "/metrics", "/api/health"))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// startBackgroundTasks 后台任务：定期重建指标快照，避免冷启动
func (a *App) startBackgroundTasks(s *services) {
	ctx, cancel := context.WithCancel(context.Background())
	a.bgCancel = cancel

	interval := time.Duration(a.Config.Engine.RecomputeIntervalMinutes) * time.Minute
	s.snapshot.StartRecomputeLoop(ctx, interval)

	// 启动时预热一次，数据库还没数据也没关系
	go func() {
		if _, err := s.snapshot.Rebuild(); err != nil {
			logger.Log.Warn("启动预热快照失败", zap.Error(err))
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	migrate := cfg.Server.Mode != "release" || cfg.ForceMigrate
	db, err := database.InitDB(&cfg.Database, migrate)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("lrs-insight", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/media", cfg.Storage.LocalPath)
	}

	app.startBackgroundTasks(services)

	return app
}

// ApplyEngineConfig 热更新引擎策略参数，其余配置仍需重启生效
func (a *App) ApplyEngineConfig(newCfg *config.Config) {
	a.Config.Engine = newCfg.Engine
	logger.Log.Info("引擎配置已热更新",
		zap.Float64("inactivity_threshold_days", newCfg.Engine.InactivityThresholdDays),
		zap.Int("recommendation_top_n", newCfg.Engine.RecommendationTopN),
		zap.Int("cache_ttl_minutes", newCfg.Engine.CacheTTLMinutes))
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	if a.bgCancel != nil {
		a.bgCancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}

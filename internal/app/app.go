package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ui_review_backend/internal/config"
	"ui_review_backend/internal/controller"
	"ui_review_backend/internal/repository"
	"ui_review_backend/internal/service"
	"ui_review_backend/pkg/configwatcher"
	"ui_review_backend/pkg/database"
	"ui_review_backend/pkg/logger"
	"ui_review_backend/pkg/monitoring"
	"ui_review_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	configCallbacks []func(*config.Config)
}

type repositories struct {
	participant *repository.ParticipantRepository
	submission  *repository.SubmissionRepository
	accessLog   *repository.AccessLogRepository
	admin       *repository.AdminRepository
}

type services struct {
	auth          *service.AuthService
	participant   *service.ParticipantService
	tasks         *service.TaskService
	feedbackTasks *service.TaskService
	submission    *service.SubmissionService
	feedback      *service.FeedbackService
	access        *service.AccessService
	ai            *service.AIService
}

type controllers struct {
	submission *controller.SubmissionController
	feedback   *controller.FeedbackController
	task       *controller.TaskController
	access     *controller.AccessController
	admin      *controller.AdminController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		participant: repository.NewParticipantRepository(db),
		submission:  repository.NewSubmissionRepository(db),
		accessLog:   repository.NewAccessLogRepository(db),
		admin:       repository.NewAdminRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) (*services, error) {
	clock, err := service.NewStudyClock(cfg.Study.StartDate, cfg.Study.Timezone)
	if err != nil {
		return nil, err
	}

	s := &services{}

	s.auth = service.NewAuthService(repos.admin, cfg)
	s.participant = service.NewParticipantService(repos.participant)
	s.tasks = service.NewTaskService(repos.submission, cfg.Study.SubmissionTaskPool(), nil)
	s.feedbackTasks = service.NewTaskService(repos.submission, cfg.Study.FeedbackTaskPool(), nil)
	s.submission = service.NewSubmissionService(repos.submission, s.participant, s.tasks, clock, cfg)
	s.feedback = service.NewFeedbackService(repos.submission, repos.participant, s.feedbackTasks, clock, cfg, rdb)
	s.access = service.NewAccessService(repos.accessLog, rdb)
	s.ai = service.NewAIService(cfg.AI)

	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB, cfg *config.Config) *controllers {
	return &controllers{
		submission: controller.NewSubmissionController(s.submission),
		feedback:   controller.NewFeedbackController(s.feedback, s.participant),
		task:       controller.NewTaskController(s.tasks),
		access:     controller.NewAccessController(s.access),
		admin:      controller.NewAdminController(s.auth, s.submission, s.ai, cfg),
		health:     controller.NewHealthController(db),
	}
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	// Migrations run automatically outside release mode; in release they need
	// the explicit -migrate flag.
	migrate := cfg.Server.Mode != "release" || cfg.ForceMigrate
	db, err := database.InitDB(&cfg.Database, migrate)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// The study can run without Redis; idempotency falls back to the
		// database constraints.
		logger.Log.Warn("Redis unavailable, continuing without cache", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services, err := app.initServices(repos, cfg, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	controllers := app.initControllers(services, db, cfg)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("ui-review-study", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	return app
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(securityMiddlewares(cfg)...)

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		logger.Log.Info("Config reloaded")
		for _, callback := range a.configCallbacks {
			callback(newCfg)
		}
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}

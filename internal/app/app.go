package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quiz_exam_backend/internal/config"
	"quiz_exam_backend/internal/controller"
	"quiz_exam_backend/internal/repository"
	"quiz_exam_backend/internal/service"
	"quiz_exam_backend/pkg/database"
	"quiz_exam_backend/pkg/logger"
	"quiz_exam_backend/pkg/monitoring"
	"quiz_exam_backend/pkg/security"
	"quiz_exam_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Live   *config.Live // 热加载用，请求路径上的读取都走它
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user     *repository.UserRepository
	question *repository.QuestionRepository
	session  *repository.SessionRepository
	answer   *repository.AnswerRepository
	progress *repository.ProgressRepository
}

type services struct {
	auth *service.AuthService
	exam *service.ExamService
}

type controllers struct {
	auth     *controller.AuthController
	exam     *controller.ExamController
	question *controller.QuestionController
	health   *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		question: repository.NewQuestionRepository(db),
		session:  repository.NewSessionRepository(db),
		answer:   repository.NewAnswerRepository(db),
		progress: repository.NewProgressRepository(rdb, cfg.Session.TokenTTL, cfg.Session.ProgressTTL),
	}
}

func (a *App) initServices(repos *repositories, live *config.Live) *services {
	selector := service.NewQuestionSelector(repos.question, live)
	return &services{
		auth: service.NewAuthService(repos.user, repos.progress, live),
		exam: service.NewExamService(repos.session, repos.question, repos.answer, repos.progress, selector),
	}
}

func (a *App) initControllers(s *services, repos *repositories, db *gorm.DB, cfg *config.Config) *controllers {
	return &controllers{
		auth:     controller.NewAuthController(s.auth, cfg.Server.Mode == "release"),
		exam:     controller.NewExamController(s.exam),
		question: controller.NewQuestionController(repos.question),
		health:   controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if cfg.MigrateOnly {
		return &App{Config: cfg, DB: db}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		Live:   config.NewLive(cfg),
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb, cfg)
	services := app.initServices(repos, app.Live)
	controllers := app.initControllers(services, repos, db, cfg)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("quiz-exam-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos)

	return app
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}

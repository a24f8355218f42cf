package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"manor_backend/internal/config"
	"manor_backend/internal/controller"
	"manor_backend/internal/repository"
	"manor_backend/internal/service"
	"manor_backend/pkg/configwatcher"
	"manor_backend/pkg/database"
	"manor_backend/pkg/logger"
	"manor_backend/pkg/monitoring"
	"manor_backend/pkg/security"
	"manor_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user    *repository.UserRepository
	session *repository.SessionRepository
	attempt *repository.AttemptRepository
	save    *repository.SaveRepository
	pattern *repository.PatternRepository
}

type services struct {
	auth        *service.AuthService
	user        *service.UserService
	game        *service.GameService
	save        *service.SaveService
	leaderboard *service.LeaderboardService
	storage     *service.StorageService
}

type controllers struct {
	auth        *controller.AuthController
	user        *controller.UserController
	game        *controller.GameController
	save        *controller.SaveController
	leaderboard *controller.LeaderboardController
	health      *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		user:    repository.NewUserRepository(db),
		session: repository.NewSessionRepository(db),
		attempt: repository.NewAttemptRepository(db),
		save:    repository.NewSaveRepository(db),
		pattern: repository.NewPatternRepository(rdb),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) (*services, error) {
	storage, err := service.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}

	return &services{
		auth:        service.NewAuthService(repos.user, cfg),
		user:        service.NewUserService(repos.user),
		game:        service.NewGameService(repos.session, repos.attempt, repos.pattern),
		save:        service.NewSaveService(repos.save, repos.session),
		leaderboard: service.NewLeaderboardService(repos.session, rdb),
		storage:     storage,
	}, nil
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth, s.user),
		user:        controller.NewUserController(s.user, s.storage),
		game:        controller.NewGameController(s.game),
		save:        controller.NewSaveController(s.save),
		leaderboard: controller.NewLeaderboardController(s.leaderboard),
		health:      controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb)
	services, err := app.initServices(repos, cfg, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("manor-of-shadow", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		app.Config = newCfg
		logger.Log.Info("Configuration reloaded")
	})

	return app
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

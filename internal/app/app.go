package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"exam_prep_backend/internal/config"
	"exam_prep_backend/internal/controller"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/service"
	"exam_prep_backend/pkg/configwatcher"
	"exam_prep_backend/pkg/database"
	"exam_prep_backend/pkg/event"
	"exam_prep_backend/pkg/logger"
	"exam_prep_backend/pkg/monitoring"
	"exam_prep_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const serviceName = "exam-prep-backend"

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
	Events event.Publisher

	services        *services
	tracer          *sdktrace.TracerProvider
	ctx             context.Context
	cancel          context.CancelFunc
	configCallbacks []func(*config.Config)
}

type services struct {
	attempt *service.AttemptService
	mistake *service.MistakeService
}

type controllers struct {
	attempt *controller.AttemptController
	mistake *controller.MistakeController
	health  *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) applyConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func (a *App) initServices(store *repository.Store, cfg *config.Config) *services {
	ttl := time.Duration(cfg.Cache.TestTTLMinutes) * time.Minute
	tests := repository.NewCachedTestCatalog(store.Tests, a.Redis, ttl)

	return &services{
		attempt: service.NewAttemptService(store, tests, store.Questions, a.Events),
		mistake: service.NewMistakeService(store, store.Questions, a.Events, cfg.Revision),
	}
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		attempt: controller.NewAttemptController(s.attempt),
		mistake: controller.NewMistakeController(s.mistake),
		health:  controller.NewHealthController(a.DB, a.Redis),
	}
}

// initRedis 缓存可选，连接失败时降级为直接读库
func initRedis(cfg *config.Config) *redis.Client {
	if cfg.Redis.Host == "" {
		logger.Log.Info("Redis not configured, test cache disabled")
		return nil
	}
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, test cache disabled", zap.Error(err))
		return nil
	}
	return rdb
}

func initEvents(cfg *config.Config) event.Publisher {
	if cfg.Events.AMQPURL == "" {
		return event.NoopPublisher{}
	}
	pub, err := event.NewAMQPPublisher(cfg.Events.AMQPURL, cfg.Events.Exchange)
	if err != nil {
		logger.Log.Warn("RabbitMQ unavailable, domain events disabled", zap.Error(err))
		return event.NoopPublisher{}
	}
	logger.Log.Info("Publishing domain events", zap.String("exchange", cfg.Events.Exchange))
	return pub
}

func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		return nil, err
	}

	// release 模式下默认不自动迁移
	if cfg.ForceMigrate || cfg.Server.Mode != gin.ReleaseMode {
		if err := database.AutoMigrate(db); err != nil {
			return nil, err
		}
		logger.Log.Info("Database migrated")
	}

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		Config: cfg,
		DB:     db,
		ctx:    ctx,
		cancel: cancel,
	}
	if cfg.MigrateOnly {
		return app, nil
	}

	app.Redis = initRedis(cfg)
	app.Events = initEvents(cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(serviceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Error("Failed to initialize tracing", zap.Error(err))
		} else {
			app.tracer = tp
		}
	}

	// 监控初始化
	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	app.services = app.initServices(repository.NewStore(db), cfg)
	app.Router = newRouter(ctx, cfg, app.initControllers(app.services))

	app.RegisterConfigCallback(logger.SetLevel)
	app.RegisterConfigCallback(func(c *config.Config) {
		app.services.mistake.SetLimits(c.Revision)
	})

	return app, nil
}

// WatchConfig 热更新日志级别与复习队列上限
func (a *App) WatchConfig(configDir string) {
	file := filepath.Join(configDir, "config.yaml")
	go func() {
		if err := configwatcher.WatchConfig(a.ctx, file, a.applyConfig); err != nil {
			logger.Log.Error("Config watcher stopped", zap.Error(err))
		}
	}()
}

func (a *App) Run() error {
	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		a.Close()
		return err
	case <-quit:
	}
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(ctx)
	a.Close()
	return err
}

// Close 释放后台协程与外部连接
func (a *App) Close() {
	a.cancel()
	if a.Events != nil {
		a.Events.Close()
	}
	if a.tracer != nil {
		if err := a.tracer.Shutdown(context.Background()); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = logger.Log.Sync()
}

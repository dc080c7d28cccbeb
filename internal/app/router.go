package app

import (
	"context"
	"time"

	"exam_prep_backend/internal/config"
	"exam_prep_backend/internal/middleware"
	"exam_prep_backend/internal/util"
	"exam_prep_backend/pkg/monitoring"
	"exam_prep_backend/pkg/security"
	"exam_prep_backend/pkg/tracing"

	_ "exam_prep_backend/docs"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func newRouter(ctx context.Context, cfg *config.Config, c *controllers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Server.Mode == gin.DebugMode {
		router.Use(gin.Logger())
	}

	setupMiddlewares(ctx, router, cfg)
	registerRoutes(router, c, cfg)
	return router
}

func setupMiddlewares(ctx context.Context, router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(ctx, cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}
	router.Use(monitoring.MetricsMiddleware())
}

func registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))
	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	api.GET("/health", c.health.HealthCheck)

	authorized := api.Group("")
	authorized.Use(middleware.AuthMiddleware(cfg.JWT.Secret))
	{
		tests := authorized.Group("/tests/:testId")
		tests.POST("/attempts", c.attempt.StartAttempt)
		tests.GET("/attempts", c.attempt.ListAttempts)

		attempts := authorized.Group("/attempts/:attemptId")
		attempts.PUT("/answers/:questionId", c.attempt.SubmitAnswer)
		attempts.POST("/finish", c.attempt.FinishAttempt)
		attempts.GET("/results", c.attempt.GetResults)
		attempts.POST("/mistakes", c.mistake.CaptureFromAttempt)

		mistakes := authorized.Group("/mistakes")
		mistakes.GET("", c.mistake.ListMistakes)
		mistakes.POST("", c.mistake.AddMistake)
		mistakes.GET("/stats", c.mistake.Stats)
		mistakes.GET("/revision-queue", c.mistake.RevisionQueue)
		mistakes.DELETE("/:questionId", c.mistake.RemoveMistake)
		mistakes.POST("/:questionId/review", c.mistake.Review)

		admin := authorized.Group("/admin")
		admin.Use(middleware.RoleMiddleware(util.RoleTeacher, util.RoleAdmin))
		admin.GET("/attempts/:attemptId/results", c.attempt.GetResultsForReview)
	}
}

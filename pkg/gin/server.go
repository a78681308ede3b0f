package gin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	swaggoFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/aebalz/daily-mood-tracker/internal/config"
	"github.com/aebalz/daily-mood-tracker/internal/handler"
	"github.com/aebalz/daily-mood-tracker/internal/middleware"

	// Import docs for swagger
	_ "github.com/aebalz/daily-mood-tracker/docs"
)

// NewGinServer creates and configures a new Gin application.
func NewGinServer(cfg *config.AppConfig, moodHandler *handler.MoodHandler, logger zerolog.Logger) *gin.Engine {
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(middleware.RecoverGin(logger))
	router.Use(middleware.RequestIDGin())
	router.Use(middleware.RequestLoggerGin(logger))
	router.Use(middleware.MetricsMiddlewareGin())
	router.Use(middleware.CORSGin(cfg.CorsAllowedOrigins))

	url := ginSwagger.URL("/swagger/doc.json")
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggoFiles.Handler, url))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", moodHandler.HealthHandler.CheckHealthGin)

	api := router.Group("/api/v1", middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst).Gin())
	RegisterRoutes(api, moodHandler)

	return router
}

// RegisterRoutes mounts the mood endpoints on r.
func RegisterRoutes(r gin.IRouter, h *handler.MoodHandler) {
	users := r.Group("/users/:user_id")
	{
		users.POST("/moods", h.CreateMoodGin)
		users.GET("/moods", h.ListMoodsGin)
		users.GET("/moods/export", h.ExportMoodsGin)
		users.GET("/moods/:id", h.GetMoodGin)
		users.DELETE("/moods/:id", h.DeleteMoodGin)
		users.GET("/insights", h.InsightsGin)
		users.GET("/streak", h.StreakGin)
		users.GET("/forecast", h.ForecastGin)
		users.POST("/forecast/train", h.TrainGin)
	}
}

// StartGinServer starts the Gin server in the background.
func StartGinServer(router *gin.Engine, cfg *config.AppConfig, logger zerolog.Logger) *http.Server {
	addr := fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort)

	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	logger.Info().Str("addr", addr).Msg("starting gin server")

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("gin server stopped unexpectedly")
		}
	}()

	return srv
}

// ShutdownGinServer gracefully shuts down the Gin server.
func ShutdownGinServer(srv *http.Server, timeout time.Duration, logger zerolog.Logger) error {
	logger.Info().Msg("shutting down gin server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("gin server forced to shutdown: %w", err)
	}
	return nil
}

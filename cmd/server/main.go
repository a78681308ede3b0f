package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/aebalz/daily-mood-tracker/docs"
	"github.com/aebalz/daily-mood-tracker/internal/config"
	"github.com/aebalz/daily-mood-tracker/internal/forecast"
	"github.com/aebalz/daily-mood-tracker/internal/handler"
	"github.com/aebalz/daily-mood-tracker/internal/logging"
	"github.com/aebalz/daily-mood-tracker/internal/repository"
	"github.com/aebalz/daily-mood-tracker/internal/service"
	"github.com/aebalz/daily-mood-tracker/pkg/database"
	fiberserver "github.com/aebalz/daily-mood-tracker/pkg/fiber"
	ginserver "github.com/aebalz/daily-mood-tracker/pkg/gin"
)

// @title Daily Mood Tracker API
// @version 1.0
// @description API for logging daily moods, reviewing insights and forecasting upcoming mood.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /
// @schemes http https
func main() {
	cfg, err := config.LoadConfig("config.env")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := logging.Setup(cfg.LogLevel, cfg.AppEnv)
	logger.Info().Str("env", cfg.AppEnv).Str("framework", cfg.ServerFramework).Msg("configuration loaded")

	docs.SwaggerInfo.Host = cfg.SwaggerHost
	docs.SwaggerInfo.BasePath = cfg.SwaggerBasePath
	docs.SwaggerInfo.Schemes = cfg.SwaggerSchemes
	docs.SwaggerInfo.Title = cfg.AppName + " API"

	db, err := database.ConnectDB(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer database.CloseDB(db)

	if err := database.MigrateDB(db); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}

	store, err := newArtifactStore(cfg, db)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open model store")
	}
	engineCfg, err := engineConfig(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid forecast configuration")
	}

	moodRepo := repository.NewMoodRepository(db)
	moodSvc := service.NewMoodService(moodRepo, store, service.ForecastSettings{
		DefaultDays:  cfg.ForecastDays,
		MaxDays:      cfg.ForecastMaxDays,
		RetrainEvery: cfg.ForecastRetrainEvery,
		Engine:       engineCfg,
	}, logger)
	moodHandler := handler.NewMoodHandler(moodSvc, handler.NewHealthHandler(db, cfg.ModelStore), logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	switch cfg.ServerFramework {
	case "fiber":
		app := fiberserver.NewFiberServer(cfg, moodHandler, logger)
		go func() {
			if err := fiberserver.StartFiberServer(app, cfg, logger); err != nil {
				logger.Fatal().Err(err).Msg("failed to start fiber server")
			}
		}()
		<-quit
		logger.Info().Msg("shutting down fiber server")
		if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
			logger.Error().Err(err).Msg("error during fiber server shutdown")
		}
	case "gin":
		engine := ginserver.NewGinServer(cfg, moodHandler, logger)
		srv := ginserver.StartGinServer(engine, cfg, logger)
		<-quit
		if err := ginserver.ShutdownGinServer(srv, cfg.ShutdownTimeout, logger); err != nil {
			logger.Error().Err(err).Msg("error during gin server shutdown")
		}
	default:
		logger.Fatal().Msgf("unsupported server framework %q, supported: fiber, gin", cfg.ServerFramework)
	}

	logger.Info().Msg("server gracefully stopped")
}

// newArtifactStore picks where trained models are persisted.
func newArtifactStore(cfg *config.AppConfig, db *gorm.DB) (forecast.ArtifactStore, error) {
	switch cfg.ModelStore {
	case "postgres":
		return repository.NewArtifactRepository(db), nil
	case "file":
		fs, err := forecast.NewFileStore(cfg.ModelDir)
		if err != nil {
			return nil, err
		}
		return fs, nil
	case "memory":
		return forecast.NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown model store %q", cfg.ModelStore)
}

func engineConfig(cfg *config.AppConfig) (forecast.Config, error) {
	engineCfg := forecast.DefaultConfig()
	strategy, err := forecast.ParseStrategy(cfg.ForecastStrategy)
	if err != nil {
		return engineCfg, err
	}
	engineCfg.Strategy = strategy
	if cfg.ModelKey != "" {
		engineCfg.Key = cfg.ModelKey
	}
	return engineCfg, nil
}

package fiber

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	swaggoFiber "github.com/swaggo/fiber-swagger"

	"github.com/aebalz/daily-mood-tracker/internal/config"
	"github.com/aebalz/daily-mood-tracker/internal/handler"
	"github.com/aebalz/daily-mood-tracker/internal/middleware"

	// Import docs for swagger
	_ "github.com/aebalz/daily-mood-tracker/docs"
)

// NewFiberServer creates and configures a new Fiber application.
func NewFiberServer(cfg *config.AppConfig, moodHandler *handler.MoodHandler, logger zerolog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.AppName,
		ReadTimeout:           cfg.ServerReadTimeout,
		WriteTimeout:          cfg.ServerWriteTimeout,
		IdleTimeout:           cfg.ServerIdleTimeout,
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler(logger),
	})

	app.Use(middleware.RecoverFiber(logger))
	app.Use(middleware.RequestIDFiber())
	app.Use(middleware.RequestLoggerFiber(logger))
	app.Use(middleware.MetricsMiddlewareFiber())
	app.Use(middleware.CORSFiber(cfg.CorsAllowedOrigins))

	app.Get("/swagger/*", swaggoFiber.WrapHandler)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/health", moodHandler.HealthHandler.CheckHealthFiber)

	api := app.Group("/api/v1", middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst).Fiber())
	RegisterRoutes(api, moodHandler)

	return app
}

// RegisterRoutes mounts the mood endpoints on r.
func RegisterRoutes(r fiber.Router, h *handler.MoodHandler) {
	users := r.Group("/users/:user_id")
	users.Post("/moods", h.CreateMoodFiber)
	users.Get("/moods", h.ListMoodsFiber)
	users.Get("/moods/export", h.ExportMoodsFiber)
	users.Get("/moods/:id", h.GetMoodFiber)
	users.Delete("/moods/:id", h.DeleteMoodFiber)
	users.Get("/insights", h.InsightsFiber)
	users.Get("/streak", h.StreakFiber)
	users.Get("/forecast", h.ForecastFiber)
	users.Post("/forecast/train", h.TrainFiber)
}

// customErrorHandler renders errors that escape the handlers in the API error shape.
func customErrorHandler(logger zerolog.Logger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal Server Error"

		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
			message = e.Message
		}
		if code >= fiber.StatusInternalServerError {
			logger.Error().Err(err).Str("path", ctx.Path()).Msg("fiber error")
		}

		return ctx.Status(code).JSON(handler.ErrorResponse{Error: true, Message: message})
	}
}

// StartFiberServer starts the Fiber server. It blocks until the app shuts down.
func StartFiberServer(app *fiber.App, cfg *config.AppConfig, logger zerolog.Logger) error {
	addr := fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort)
	logger.Info().Str("addr", addr).Msg("starting fiber server")
	return app.Listen(addr)
}

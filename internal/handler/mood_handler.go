package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/aebalz/daily-mood-tracker/internal/export"
	"github.com/aebalz/daily-mood-tracker/internal/features"
	"github.com/aebalz/daily-mood-tracker/internal/forecast"
	"github.com/aebalz/daily-mood-tracker/internal/insights"
	"github.com/aebalz/daily-mood-tracker/internal/repository"
	"github.com/aebalz/daily-mood-tracker/internal/service"
)

const (
	keepLoggingMessage = "Not enough mood history yet. Keep logging your mood daily to unlock forecasts."
	noHistoryMessage   = "No mood entries yet. Log your first mood to see insights."
)

// MoodHandler encapsulates all handlers for the application: mood, insight and forecast
// endpoints plus the HealthHandler.
type MoodHandler struct {
	Service       service.MoodServiceInterface
	HealthHandler *HealthHandler
	Log           zerolog.Logger
}

// NewMoodHandler creates a new MoodHandler.
func NewMoodHandler(svc service.MoodServiceInterface, health *HealthHandler, logger zerolog.Logger) *MoodHandler {
	return &MoodHandler{Service: svc, HealthHandler: health, Log: logger}
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   bool   `json:"error" example:"true"`
	Message string `json:"message" example:"mood entry not found"`
}

// errorStatus maps domain errors to an HTTP status and a client-facing message.
func (h *MoodHandler) errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, features.ErrInsufficientData):
		return http.StatusUnprocessableEntity, keepLoggingMessage
	case errors.Is(err, insights.ErrNoHistory):
		return http.StatusUnprocessableEntity, noHistoryMessage
	case errors.Is(err, features.ErrMalformedEntry), errors.Is(err, insights.ErrMissingScores):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, forecast.ErrInvalidHorizon),
		errors.Is(err, export.ErrUnsupportedFormat):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, repository.ErrMoodNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, forecast.ErrModelUnavailable):
		return http.StatusServiceUnavailable, "Mood forecast is temporarily unavailable."
	}
	h.Log.Error().Err(err).Msg("request failed")
	return http.StatusInternalServerError, "Internal Server Error"
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: invalid mood id %q", service.ErrInvalidInput, raw)
	}
	return uint(id), nil
}

func parseIntQuery(name, raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", service.ErrInvalidInput, name)
	}
	return v, nil
}

func exportFilename(userID, format string) string {
	return fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("moods-%s.%s", userID, format))
}

// --- Fiber ---

func (h *MoodHandler) fiberError(c *fiber.Ctx, err error) error {
	status, message := h.errorStatus(err)
	return c.Status(status).JSON(ErrorResponse{Error: true, Message: message})
}

// CreateMoodFiber handles POST requests to log a mood.
// @Summary Log a mood
// @Description Store a mood check-in (score 1-10) with optional journal text and triggers.
// @Tags Moods
// @Accept json
// @Produce json
// @Param user_id path string true "User ID"
// @Param mood body service.CreateMoodRequest true "Mood entry"
// @Success 201 {object} model.MoodEntry
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/users/{user_id}/moods [post]
func (h *MoodHandler) CreateMoodFiber(c *fiber.Ctx) error {
	var req service.CreateMoodRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fiberError(c, fmt.Errorf("%w: %v", service.ErrInvalidInput, err))
	}
	entry, err := h.Service.LogMood(c.UserContext(), c.Params("user_id"), req)
	if err != nil {
		return h.fiberError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// ListMoodsFiber handles GET requests for a page of moods.
// @Summary List moods
// @Description List a user's mood entries, newest first.
// @Tags Moods
// @Produce json
// @Param user_id path string true "User ID"
// @Param limit query int false "Page size (max 200)" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} service.MoodListResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/users/{user_id}/moods [get]
func (h *MoodHandler) ListMoodsFiber(c *fiber.Ctx) error {
	limit, err := parseIntQuery("limit", c.Query("limit"), 50)
	if err != nil {
		return h.fiberError(c, err)
	}
	offset, err := parseIntQuery("offset", c.Query("offset"), 0)
	if err != nil {
		return h.fiberError(c, err)
	}
	resp, err := h.Service.ListMoods(c.UserContext(), c.Params("user_id"), limit, offset)
	if err != nil {
		return h.fiberError(c, err)
	}
	return c.JSON(resp)
}

// GetMoodFiber handles GET requests for a single mood.
// @Summary Get a mood
// @Tags Moods
// @Produce json
// @Param user_id path string true "User ID"
// @Param id path int true "Mood ID"
// @Success 200 {object} model.MoodEntry
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/users/{user_id}/moods/{id} [get]
func (h *MoodHandler) GetMoodFiber(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return h.fiberError(c, err)
	}
	entry, err := h.Service.GetMood(c.UserContext(), c.Params("user_id"), id)
	if err != nil {
		return h.fiberError(c, err)
	}
	return c.JSON(entry)
}

// DeleteMoodFiber handles DELETE requests for a single mood.
// @Summary Delete a mood
// @Tags Moods
// @Param user_id path string true "User ID"
// @Param id path int true "Mood ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/users/{user_id}/moods/{id} [delete]
func (h *MoodHandler) DeleteMoodFiber(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return h.fiberError(c, err)
	}
	if err := h.Service.DeleteMood(c.UserContext(), c.Params("user_id"), id); err != nil {
		return h.fiberError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ExportMoodsFiber handles GET requests to download the mood history.
// @Summary Export moods
// @Tags Moods
// @Produce json
// @Produce text/csv
// @Param user_id path string true "User ID"
// @Param format query string false "csv or json" default(json)
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/users/{user_id}/moods/export [get]
func (h *MoodHandler) ExportMoodsFiber(c *fiber.Ctx) error {
	userID, format := c.Params("user_id"), c.Query("format", export.FormatJSON)
	data, contentType, err := h.Service.ExportMoods(c.UserContext(), userID, format)
	if err != nil {
		return h.fiberError(c, err)
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, exportFilename(userID, format))
	return c.Send(data)
}

// InsightsFiber handles GET requests for mood statistics.
// @Summary Mood insights
// @Description Summary statistics, trend, streaks and the weekly report.
// @Tags Insights
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} service.InsightsResponse
// @Failure 422 {object} ErrorResponse
// @Router /api/v1/users/{user_id}/insights [get]
func (h *MoodHandler) InsightsFiber(c *fiber.Ctx) error {
	resp, err := h.Service.Insights(c.UserContext(), c.Params("user_id"))
	if err != nil {
		return h.fiberError(c, err)
	}
	return c.JSON(resp)
}

// StreakFiber handles GET requests for logging streaks.
// @Summary Logging streak
// @Tags Insights
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} service.StreakResponse
// @Router /api/v1/users/{user_id}/streak [get]
func (h *MoodHandler) StreakFiber(c *fiber.Ctx) error {
	resp, err := h.Service.Streak(c.UserContext(), c.Params("user_id"))
	if err != nil {
		return h.fiberError(c, err)
	}
	return c.JSON(resp)
}

// ForecastFiber handles GET requests for mood predictions.
// @Summary Mood forecast
// @Description Predict the mood for the days after the latest entry. Trains on first use.
// @Tags Forecast
// @Produce json
// @Param user_id path string true "User ID"
// @Param days query int false "Days ahead" default(7)
// @Success 200 {object} service.ForecastResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /api/v1/users/{user_id}/forecast [get]
func (h *MoodHandler) ForecastFiber(c *fiber.Ctx) error {
	days, err := parseIntQuery("days", c.Query("days"), 0)
	if err != nil {
		return h.fiberError(c, err)
	}
	resp, err := h.Service.Forecast(c.UserContext(), c.Params("user_id"), days)
	if err != nil {
		return h.fiberError(c, err)
	}
	return c.JSON(resp)
}

// TrainFiber handles POST requests to retrain the forecast model.
// @Summary Retrain forecast model
// @Tags Forecast
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} service.TrainResponse
// @Failure 422 {object} ErrorResponse
// @Router /api/v1/users/{user_id}/forecast/train [post]
func (h *MoodHandler) TrainFiber(c *fiber.Ctx) error {
	resp, err := h.Service.Retrain(c.UserContext(), c.Params("user_id"))
	if err != nil {
		return h.fiberError(c, err)
	}
	return c.JSON(resp)
}

// --- Gin ---

func (h *MoodHandler) ginError(c *gin.Context, err error) {
	status, message := h.errorStatus(err)
	c.AbortWithStatusJSON(status, ErrorResponse{Error: true, Message: message})
}

// CreateMoodGin handles POST requests to log a mood.
func (h *MoodHandler) CreateMoodGin(c *gin.Context) {
	var req service.CreateMoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ginError(c, fmt.Errorf("%w: %v", service.ErrInvalidInput, err))
		return
	}
	entry, err := h.Service.LogMood(c.Request.Context(), c.Param("user_id"), req)
	if err != nil {
		h.ginError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// ListMoodsGin handles GET requests for a page of moods.
func (h *MoodHandler) ListMoodsGin(c *gin.Context) {
	limit, err := parseIntQuery("limit", c.Query("limit"), 50)
	if err != nil {
		h.ginError(c, err)
		return
	}
	offset, err := parseIntQuery("offset", c.Query("offset"), 0)
	if err != nil {
		h.ginError(c, err)
		return
	}
	resp, err := h.Service.ListMoods(c.Request.Context(), c.Param("user_id"), limit, offset)
	if err != nil {
		h.ginError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetMoodGin handles GET requests for a single mood.
func (h *MoodHandler) GetMoodGin(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		h.ginError(c, err)
		return
	}
	entry, err := h.Service.GetMood(c.Request.Context(), c.Param("user_id"), id)
	if err != nil {
		h.ginError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// DeleteMoodGin handles DELETE requests for a single mood.
func (h *MoodHandler) DeleteMoodGin(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		h.ginError(c, err)
		return
	}
	if err := h.Service.DeleteMood(c.Request.Context(), c.Param("user_id"), id); err != nil {
		h.ginError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ExportMoodsGin handles GET requests to download the mood history.
func (h *MoodHandler) ExportMoodsGin(c *gin.Context) {
	userID, format := c.Param("user_id"), c.DefaultQuery("format", export.FormatJSON)
	data, contentType, err := h.Service.ExportMoods(c.Request.Context(), userID, format)
	if err != nil {
		h.ginError(c, err)
		return
	}
	c.Header("Content-Disposition", exportFilename(userID, format))
	c.Data(http.StatusOK, contentType, data)
}

// InsightsGin handles GET requests for mood statistics.
func (h *MoodHandler) InsightsGin(c *gin.Context) {
	resp, err := h.Service.Insights(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		h.ginError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// StreakGin handles GET requests for logging streaks.
func (h *MoodHandler) StreakGin(c *gin.Context) {
	resp, err := h.Service.Streak(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		h.ginError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ForecastGin handles GET requests for mood predictions.
func (h *MoodHandler) ForecastGin(c *gin.Context) {
	days, err := parseIntQuery("days", c.Query("days"), 0)
	if err != nil {
		h.ginError(c, err)
		return
	}
	resp, err := h.Service.Forecast(c.Request.Context(), c.Param("user_id"), days)
	if err != nil {
		h.ginError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TrainGin handles POST requests to retrain the forecast model.
func (h *MoodHandler) TrainGin(c *gin.Context) {
	resp, err := h.Service.Retrain(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		h.ginError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

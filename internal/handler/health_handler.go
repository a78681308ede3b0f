package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/aebalz/daily-mood-tracker/pkg/database"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	DB        *gorm.DB
	ModelMode string
	now       func() time.Time
}

// NewHealthHandler creates a new HealthHandler. modelStore names the configured artifact store.
func NewHealthHandler(db *gorm.DB, modelStore string) *HealthHandler {
	return &HealthHandler{DB: db, ModelMode: modelStore, now: time.Now}
}

// HealthCheckResponse defines the structure for the health check response.
type HealthCheckResponse struct {
	ServerStatus   string `json:"server_status" example:"OK"`
	DatabaseStatus string `json:"database_status" example:"OK"`
	ModelStore     string `json:"model_store" example:"postgres"`
	Timestamp      string `json:"timestamp" example:"2024-01-01T00:00:00Z"`
}

func (h *HealthHandler) check() (int, HealthCheckResponse) {
	response := HealthCheckResponse{
		ServerStatus: "OK",
		ModelStore:   h.ModelMode,
		Timestamp:    h.now().UTC().Format(time.RFC3339),
	}
	if err := database.PingDB(h.DB); err != nil {
		response.DatabaseStatus = "Error: " + err.Error()
		return http.StatusServiceUnavailable, response
	}
	response.DatabaseStatus = "OK"
	return http.StatusOK, response
}

// CheckHealthFiber is the health check endpoint handler for Fiber.
// @Summary API Health Check
// @Description Check the health of the API and database connection.
// @Tags Health
// @Produce json
// @Success 200 {object} HealthCheckResponse "Successfully checked health"
// @Failure 503 {object} HealthCheckResponse "Service unavailable if database ping fails"
// @Router /health [get]
func (h *HealthHandler) CheckHealthFiber(c *fiber.Ctx) error {
	status, response := h.check()
	return c.Status(status).JSON(response)
}

// CheckHealthGin is the health check endpoint handler for Gin.
func (h *HealthHandler) CheckHealthGin(c *gin.Context) {
	status, response := h.check()
	c.JSON(status, response)
}

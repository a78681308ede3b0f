package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestHealthHandler(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	fixed := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	healthy := NewHealthHandler(db, "memory")
	healthy.now = func() time.Time { return fixed }
	broken := NewHealthHandler(nil, "file")

	tests := []struct {
		name     string
		h        *HealthHandler
		status   int
		dbStatus string
	}{
		{"healthy", healthy, http.StatusOK, "OK"},
		{"no database", broken, http.StatusServiceUnavailable, "Error: database connection is not initialized"},
	}
	for _, tt := range tests {
		t.Run("gin/"+tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			router := gin.New()
			router.GET("/health", tt.h.CheckHealthGin)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.status, w.Code)
			var body HealthCheckResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.dbStatus, body.DatabaseStatus)
			assert.Equal(t, "OK", body.ServerStatus)
			assert.Equal(t, tt.h.ModelMode, body.ModelStore)
		})
		t.Run("fiber/"+tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/health", tt.h.CheckHealthFiber)
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			var body HealthCheckResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.dbStatus, body.DatabaseStatus)
		})
	}

	_, resp := healthy.check()
	assert.Equal(t, "2024-01-01T12:00:00Z", resp.Timestamp)
}

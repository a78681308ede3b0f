package gin

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/aebalz/daily-mood-tracker/internal/config"
	"github.com/aebalz/daily-mood-tracker/internal/forecast"
	"github.com/aebalz/daily-mood-tracker/internal/handler"
	"github.com/aebalz/daily-mood-tracker/internal/repository"
	"github.com/aebalz/daily-mood-tracker/internal/service"
	"github.com/aebalz/daily-mood-tracker/pkg/database"
)

func newTestServer(t *testing.T, burst int) http.Handler {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { database.CloseDB(db) })
	require.NoError(t, database.MigrateDB(db))

	svc := service.NewMoodService(repository.NewMoodRepository(db), forecast.NewMemoryStore(),
		service.ForecastSettings{Engine: forecast.DefaultConfig()}, zerolog.Nop())
	h := handler.NewMoodHandler(svc, handler.NewHealthHandler(db, "memory"), zerolog.Nop())

	cfg := &config.AppConfig{
		AppEnv:             "production",
		CorsAllowedOrigins: []string{"*"},
		RateLimitPerSecond: 0.001,
		RateLimitBurst:     burst,
	}
	return NewGinServer(cfg, h, zerolog.Nop())
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestGinServer_MoodLifecycle(t *testing.T) {
	srv := newTestServer(t, 100)

	w := serve(srv, http.MethodPost, "/api/v1/users/alice/moods", `{"mood_score":7,"triggers":["sleep"]}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = serve(srv, http.MethodGet, "/api/v1/users/alice/moods", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)
	assert.Contains(t, w.Body.String(), `"triggers":["sleep"]`)

	w = serve(srv, http.MethodGet, "/api/v1/users/alice/streak", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"longest":1`)

	w = serve(srv, http.MethodGet, "/api/v1/users/alice/forecast", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = serve(srv, http.MethodGet, "/api/v1/users/alice/moods/export?format=csv", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), ",7,good,,sleep")
}

func TestGinServer_OperationalEndpoints(t *testing.T) {
	srv := newTestServer(t, 100)

	w := serve(srv, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)

	serve(srv, http.MethodGet, "/api/v1/users/alice/moods/1", "")
	w = serve(srv, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `path="/api/v1/users/:user_id/moods/:id"`)
}

func TestGinServer_RateLimitsAPI(t *testing.T) {
	srv := newTestServer(t, 1)

	assert.Equal(t, http.StatusOK, serve(srv, http.MethodGet, "/api/v1/users/alice/streak", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(srv, http.MethodGet, "/api/v1/users/alice/streak", "").Code)
	assert.Equal(t, http.StatusOK, serve(srv, http.MethodGet, "/health", "").Code)
}

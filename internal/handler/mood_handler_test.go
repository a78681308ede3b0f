package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aebalz/daily-mood-tracker/internal/export"
	"github.com/aebalz/daily-mood-tracker/internal/features"
	"github.com/aebalz/daily-mood-tracker/internal/forecast"
	"github.com/aebalz/daily-mood-tracker/internal/insights"
	"github.com/aebalz/daily-mood-tracker/internal/model"
	"github.com/aebalz/daily-mood-tracker/internal/repository"
	"github.com/aebalz/daily-mood-tracker/internal/service"
)

// stubService returns canned results; err, when set, is returned by every method.
type stubService struct {
	err      error
	lastUser string
	lastDays int
	lastReq  service.CreateMoodRequest
}

var _ service.MoodServiceInterface = (*stubService)(nil)

func (s *stubService) LogMood(_ context.Context, userID string, req service.CreateMoodRequest) (*model.MoodEntry, error) {
	s.lastUser, s.lastReq = userID, req
	if s.err != nil {
		return nil, s.err
	}
	return &model.MoodEntry{ID: 1, UserID: userID, MoodScore: req.MoodScore, MoodLabel: model.MoodLabelFor(float64(req.MoodScore))}, nil
}

func (s *stubService) GetMood(_ context.Context, userID string, id uint) (*model.MoodEntry, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &model.MoodEntry{ID: id, UserID: userID, MoodScore: 6}, nil
}

func (s *stubService) ListMoods(_ context.Context, _ string, limit, offset int) (*service.MoodListResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &service.MoodListResponse{Data: []model.MoodEntry{}, Limit: limit, Offset: offset}, nil
}

func (s *stubService) DeleteMood(context.Context, string, uint) error { return s.err }

func (s *stubService) ExportMoods(_ context.Context, _, format string) ([]byte, string, error) {
	if s.err != nil {
		return nil, "", s.err
	}
	return export.Encode(nil, format)
}

func (s *stubService) Insights(context.Context, string) (*service.InsightsResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &service.InsightsResponse{Summary: insights.Summary{TotalEntries: 3, Trend: insights.TrendStable}}, nil
}

func (s *stubService) Streak(context.Context, string) (*service.StreakResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &service.StreakResponse{Current: 2, Longest: 5}, nil
}

func (s *stubService) Forecast(_ context.Context, _ string, days int) (*service.ForecastResponse, error) {
	s.lastDays = days
	if s.err != nil {
		return nil, s.err
	}
	return &service.ForecastResponse{
		Predictions:  []forecast.Prediction{{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), PredictedMood: 6.5, MoodLabel: "okay"}},
		ForecastDays: 1,
	}, nil
}

func (s *stubService) Retrain(context.Context, string) (*service.TrainResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &service.TrainResponse{Entries: 30}, nil
}

type request struct {
	method, path, body string
}

type response struct {
	status int
	header http.Header
	body   string
}

// clients exercise the same routes through both frameworks.
func clients(t *testing.T, svc service.MoodServiceInterface) map[string]func(request) response {
	t.Helper()
	h := NewMoodHandler(svc, nil, zerolog.Nop())

	gin.SetMode(gin.TestMode)
	router := gin.New()
	g := router.Group("/api/v1/users/:user_id")
	g.POST("/moods", h.CreateMoodGin)
	g.GET("/moods", h.ListMoodsGin)
	g.GET("/moods/export", h.ExportMoodsGin)
	g.GET("/moods/:id", h.GetMoodGin)
	g.DELETE("/moods/:id", h.DeleteMoodGin)
	g.GET("/insights", h.InsightsGin)
	g.GET("/streak", h.StreakGin)
	g.GET("/forecast", h.ForecastGin)
	g.POST("/forecast/train", h.TrainGin)

	app := fiber.New()
	f := app.Group("/api/v1/users/:user_id")
	f.Post("/moods", h.CreateMoodFiber)
	f.Get("/moods", h.ListMoodsFiber)
	f.Get("/moods/export", h.ExportMoodsFiber)
	f.Get("/moods/:id", h.GetMoodFiber)
	f.Delete("/moods/:id", h.DeleteMoodFiber)
	f.Get("/insights", h.InsightsFiber)
	f.Get("/streak", h.StreakFiber)
	f.Get("/forecast", h.ForecastFiber)
	f.Post("/forecast/train", h.TrainFiber)

	newReq := func(r request) *http.Request {
		req := httptest.NewRequest(r.method, r.path, strings.NewReader(r.body))
		if r.body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		return req
	}

	return map[string]func(request) response{
		"gin": func(r request) response {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, newReq(r))
			return response{status: w.Code, header: w.Header(), body: w.Body.String()}
		},
		"fiber": func(r request) response {
			resp, err := app.Test(newReq(r))
			require.NoError(t, err)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			return response{status: resp.StatusCode, header: resp.Header, body: string(body)}
		},
	}
}

func TestMoodHandler_Success(t *testing.T) {
	tests := []struct {
		name   string
		req    request
		status int
		body   string
	}{
		{"create", request{http.MethodPost, "/api/v1/users/alice/moods", `{"mood_score":8,"triggers":["work"]}`}, http.StatusCreated, `"mood_label":"good"`},
		{"list", request{http.MethodGet, "/api/v1/users/alice/moods?limit=5&offset=2", ""}, http.StatusOK, `"limit":5`},
		{"get", request{http.MethodGet, "/api/v1/users/alice/moods/7", ""}, http.StatusOK, `"id":7`},
		{"delete", request{http.MethodDelete, "/api/v1/users/alice/moods/7", ""}, http.StatusNoContent, ""},
		{"insights", request{http.MethodGet, "/api/v1/users/alice/insights", ""}, http.StatusOK, `"trend":"stable"`},
		{"streak", request{http.MethodGet, "/api/v1/users/alice/streak", ""}, http.StatusOK, `"longest":5`},
		{"forecast", request{http.MethodGet, "/api/v1/users/alice/forecast?days=1", ""}, http.StatusOK, `"predicted_mood":6.5`},
		{"train", request{http.MethodPost, "/api/v1/users/alice/forecast/train", ""}, http.StatusOK, `"entries":30`},
	}
	for name, do := range clients(t, &stubService{}) {
		for _, tt := range tests {
			t.Run(name+"/"+tt.name, func(t *testing.T) {
				resp := do(tt.req)
				assert.Equal(t, tt.status, resp.status, resp.body)
				assert.Contains(t, resp.body, tt.body)
			})
		}
	}
}

func TestMoodHandler_CreatePassesRequest(t *testing.T) {
	for name := range clients(t, &stubService{}) {
		t.Run(name, func(t *testing.T) {
			svc := &stubService{}
			do := clients(t, svc)[name]
			resp := do(request{http.MethodPost, "/api/v1/users/bob/moods", `{"mood_score":3,"journal_text":"tired","created_at":"2024-01-05T08:00:00Z"}`})
			require.Equal(t, http.StatusCreated, resp.status, resp.body)

			assert.Equal(t, "bob", svc.lastUser)
			assert.Equal(t, 3, svc.lastReq.MoodScore)
			assert.Equal(t, "tired", svc.lastReq.JournalText)
			require.NotNil(t, svc.lastReq.CreatedAt)
			assert.True(t, svc.lastReq.CreatedAt.Equal(time.Date(2024, 1, 5, 8, 0, 0, 0, time.UTC)))
		})
	}
}

func TestMoodHandler_ForecastDefaultsDays(t *testing.T) {
	for name := range clients(t, &stubService{}) {
		t.Run(name, func(t *testing.T) {
			svc := &stubService{}
			resp := clients(t, svc)[name](request{http.MethodGet, "/api/v1/users/alice/forecast", ""})
			require.Equal(t, http.StatusOK, resp.status)
			assert.Zero(t, svc.lastDays)
		})
	}
}

func TestMoodHandler_Export(t *testing.T) {
	for name, do := range clients(t, &stubService{}) {
		t.Run(name, func(t *testing.T) {
			resp := do(request{http.MethodGet, "/api/v1/users/alice/moods/export?format=csv", ""})
			require.Equal(t, http.StatusOK, resp.status)
			assert.Equal(t, "text/csv", resp.header.Get("Content-Type"))
			assert.Contains(t, resp.header.Get("Content-Disposition"), "moods-alice.csv")
			assert.True(t, strings.HasPrefix(resp.body, "id,created_at,mood_score"))
		})
	}
}

func TestMoodHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		req     request
		status  int
		message string
	}{
		{
			name:    "insufficient history",
			err:     fmt.Errorf("%w: %w", forecast.ErrModelUnavailable, features.ErrInsufficientData),
			req:     request{http.MethodGet, "/api/v1/users/alice/forecast", ""},
			status:  http.StatusUnprocessableEntity,
			message: keepLoggingMessage,
		},
		{
			name:    "no history",
			err:     insights.ErrNoHistory,
			req:     request{http.MethodGet, "/api/v1/users/alice/insights", ""},
			status:  http.StatusUnprocessableEntity,
			message: noHistoryMessage,
		},
		{
			name:   "invalid input",
			err:    fmt.Errorf("%w: days must be between 1 and 30", service.ErrInvalidInput),
			req:    request{http.MethodGet, "/api/v1/users/alice/forecast?days=99", ""},
			status: http.StatusBadRequest,
		},
		{
			name:   "not found",
			err:    repository.ErrMoodNotFound,
			req:    request{http.MethodGet, "/api/v1/users/alice/moods/3", ""},
			status: http.StatusNotFound,
		},
		{
			name:   "model unavailable",
			err:    fmt.Errorf("%w: %w", forecast.ErrModelUnavailable, errors.New("fit failed")),
			req:    request{http.MethodPost, "/api/v1/users/alice/forecast/train", ""},
			status: http.StatusServiceUnavailable,
		},
		{
			name:    "unexpected",
			err:     errors.New("connection reset"),
			req:     request{http.MethodGet, "/api/v1/users/alice/streak", ""},
			status:  http.StatusInternalServerError,
			message: "Internal Server Error",
		},
	}
	for _, tt := range tests {
		for name, do := range clients(t, &stubService{err: tt.err}) {
			t.Run(name+"/"+tt.name, func(t *testing.T) {
				resp := do(tt.req)
				assert.Equal(t, tt.status, resp.status)

				var body ErrorResponse
				require.NoError(t, json.Unmarshal([]byte(resp.body), &body))
				assert.True(t, body.Error)
				if tt.message != "" {
					assert.Equal(t, tt.message, body.Message)
				}
			})
		}
	}
}

func TestMoodHandler_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		req  request
	}{
		{"bad id", request{http.MethodGet, "/api/v1/users/alice/moods/abc", ""}},
		{"zero id", request{http.MethodDelete, "/api/v1/users/alice/moods/0", ""}},
		{"bad days", request{http.MethodGet, "/api/v1/users/alice/forecast?days=soon", ""}},
		{"bad limit", request{http.MethodGet, "/api/v1/users/alice/moods?limit=x", ""}},
		{"bad body", request{http.MethodPost, "/api/v1/users/alice/moods", `{"mood_score":`}},
	}
	for name, do := range clients(t, &stubService{}) {
		for _, tt := range tests {
			t.Run(name+"/"+tt.name, func(t *testing.T) {
				resp := do(tt.req)
				assert.Equal(t, http.StatusBadRequest, resp.status, resp.body)
			})
		}
	}
}

func TestMoodHandler_GinBindingRejectsOutOfRange(t *testing.T) {
	svc := &stubService{}
	resp := clients(t, svc)["gin"](request{http.MethodPost, "/api/v1/users/alice/moods", `{"mood_score":11}`})
	assert.Equal(t, http.StatusBadRequest, resp.status)
	assert.Empty(t, svc.lastUser, "service must not be called")
}

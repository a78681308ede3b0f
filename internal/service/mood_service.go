package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/aebalz/daily-mood-tracker/internal/features"
	"github.com/aebalz/daily-mood-tracker/internal/forecast"
	"github.com/aebalz/daily-mood-tracker/internal/insights"
	"github.com/aebalz/daily-mood-tracker/internal/model"
	"github.com/aebalz/daily-mood-tracker/internal/repository"
)

// ErrInvalidInput wraps request validation failures.
var ErrInvalidInput = errors.New("invalid input")

// MoodServiceInterface defines the mood tracking operations exposed to handlers.
type MoodServiceInterface interface {
	LogMood(ctx context.Context, userID string, req CreateMoodRequest) (*model.MoodEntry, error)
	GetMood(ctx context.Context, userID string, id uint) (*model.MoodEntry, error)
	ListMoods(ctx context.Context, userID string, limit, offset int) (*MoodListResponse, error)
	DeleteMood(ctx context.Context, userID string, id uint) error
	ExportMoods(ctx context.Context, userID, format string) ([]byte, string, error)

	Insights(ctx context.Context, userID string) (*InsightsResponse, error)
	Streak(ctx context.Context, userID string) (*StreakResponse, error)
	Forecast(ctx context.Context, userID string, days int) (*ForecastResponse, error)
	Retrain(ctx context.Context, userID string) (*TrainResponse, error)
}

// ForecastSettings configures per-user forecast engines.
type ForecastSettings struct {
	DefaultDays  int
	MaxDays      int
	RetrainEvery int
	Engine       forecast.Config
}

// MoodService implements MoodServiceInterface.
type MoodService struct {
	repo     repository.MoodRepositoryInterface
	store    forecast.ArtifactStore
	settings ForecastSettings
	log      zerolog.Logger
	validate *validator.Validate
	now      func() time.Time

	mu      sync.Mutex
	engines map[string]*userEngine
}

type userEngine struct {
	engine *forecast.Engine
	// logged counts entries created since the engine was last trained by this process.
	logged int
}

// NewMoodService creates a new MoodService.
func NewMoodService(repo repository.MoodRepositoryInterface, store forecast.ArtifactStore, settings ForecastSettings, logger zerolog.Logger) *MoodService {
	if settings.DefaultDays <= 0 {
		settings.DefaultDays = forecast.DefaultForecastDays
	}
	if settings.MaxDays < settings.DefaultDays {
		settings.MaxDays = settings.DefaultDays
	}
	return &MoodService{
		repo:     repo,
		store:    store,
		settings: settings,
		log:      logger.With().Str("component", "mood_service").Logger(),
		validate: validator.New(),
		now:      time.Now,
		engines:  make(map[string]*userEngine),
	}
}

// engineFor returns the user's engine, creating it (and loading its artifacts) on first use.
func (s *MoodService) engineFor(ctx context.Context, userID string) *userEngine {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ue, ok := s.engines[userID]; ok {
		return ue
	}
	cfg := s.settings.Engine
	cfg.Key = fmt.Sprintf("%s/%s", cfg.Key, userID)
	ue := &userEngine{engine: forecast.NewEngine(ctx, s.store, cfg, s.log)}
	s.engines[userID] = ue
	return ue
}

// LogMood validates and stores a new entry. When automatic retraining is enabled, the user's
// model is retrained once enough new entries have been logged.
func (s *MoodService) LogMood(ctx context.Context, userID string, req CreateMoodRequest) (*model.MoodEntry, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := validUserID(userID); err != nil {
		return nil, err
	}

	entry := &model.MoodEntry{
		UserID:      userID,
		MoodScore:   req.MoodScore,
		MoodLabel:   model.MoodLabelFor(float64(req.MoodScore)),
		JournalText: req.JournalText,
		Triggers:    req.Triggers,
		CreatedAt:   s.now(),
	}
	if req.CreatedAt != nil {
		entry.CreatedAt = *req.CreatedAt
	}

	created, err := s.repo.CreateMood(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("create mood entry: %w", err)
	}
	s.log.Info().Str("user_id", userID).Uint("id", created.ID).Int("mood_score", created.MoodScore).Msg("mood logged")

	s.maybeRetrain(ctx, userID)
	return created, nil
}

func (s *MoodService) maybeRetrain(ctx context.Context, userID string) {
	if s.settings.RetrainEvery <= 0 {
		return
	}
	ue := s.engineFor(ctx, userID)

	s.mu.Lock()
	ue.logged++
	due := ue.logged >= s.settings.RetrainEvery && ue.engine.Trained()
	if due {
		ue.logged = 0
	}
	s.mu.Unlock()
	if !due {
		return
	}

	history, err := s.repo.GetHistory(ctx, userID)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("automatic retrain skipped")
		return
	}
	if err := ue.engine.Train(ctx, history); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("automatic retrain failed")
	}
}

// GetMood returns one entry.
func (s *MoodService) GetMood(ctx context.Context, userID string, id uint) (*model.MoodEntry, error) {
	if err := validUserID(userID); err != nil {
		return nil, err
	}
	return s.repo.GetMoodByID(ctx, userID, id)
}

// ListMoods returns a page of entries, newest first.
func (s *MoodService) ListMoods(ctx context.Context, userID string, limit, offset int) (*MoodListResponse, error) {
	if err := validUserID(userID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	entries, total, err := s.repo.ListMoods(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.MoodEntry{}
	}
	return &MoodListResponse{Data: entries, Total: total, Limit: limit, Offset: offset}, nil
}

// DeleteMood removes one entry.
func (s *MoodService) DeleteMood(ctx context.Context, userID string, id uint) error {
	if err := validUserID(userID); err != nil {
		return err
	}
	return s.repo.DeleteMood(ctx, userID, id)
}

// ExportMoods returns the user's history as csv or json.
func (s *MoodService) ExportMoods(ctx context.Context, userID, format string) ([]byte, string, error) {
	if err := validUserID(userID); err != nil {
		return nil, "", err
	}
	if format == "" {
		format = "json"
	}
	return s.repo.ExportMoods(ctx, userID, format)
}

// Insights computes statistics, streaks and the weekly report for the user.
func (s *MoodService) Insights(ctx context.Context, userID string) (*InsightsResponse, error) {
	if err := validUserID(userID); err != nil {
		return nil, err
	}
	history, err := s.repo.GetHistory(ctx, userID)
	if err != nil {
		return nil, err
	}
	summary, err := insights.Analyze(history)
	if err != nil {
		return nil, err
	}
	now := s.now()
	return &InsightsResponse{
		Summary: *summary,
		Streak: StreakResponse{
			Current: insights.CurrentStreak(history, now),
			Longest: insights.LongestStreak(history, now.Location()),
		},
		Weekly: insights.Weekly(history, now),
	}, nil
}

// Streak returns the current and longest logging streaks.
func (s *MoodService) Streak(ctx context.Context, userID string) (*StreakResponse, error) {
	if err := validUserID(userID); err != nil {
		return nil, err
	}
	history, err := s.repo.GetHistory(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	return &StreakResponse{
		Current: insights.CurrentStreak(history, now),
		Longest: insights.LongestStreak(history, now.Location()),
	}, nil
}

// Forecast predicts the user's mood for the next days. Zero days means the configured default.
func (s *MoodService) Forecast(ctx context.Context, userID string, days int) (*ForecastResponse, error) {
	if err := validUserID(userID); err != nil {
		return nil, err
	}
	if days == 0 {
		days = s.settings.DefaultDays
	}
	if days < 0 || days > s.settings.MaxDays {
		return nil, fmt.Errorf("%w: days must be between 1 and %d", ErrInvalidInput, s.settings.MaxDays)
	}

	history, err := s.repo.GetHistory(ctx, userID)
	if err != nil {
		return nil, err
	}
	// Engines are only created for users with enough history to ever produce a forecast.
	if len(history) < features.MinEntries {
		return nil, fmt.Errorf("%w: %w: have %d entries, need %d",
			forecast.ErrModelUnavailable, features.ErrInsufficientData, len(history), features.MinEntries)
	}
	ue := s.engineFor(ctx, userID)
	predictions, err := ue.engine.Predict(ctx, history, days)
	if err != nil {
		return nil, err
	}
	return &ForecastResponse{
		Predictions:  predictions,
		ForecastDays: days,
		Strategy:     string(s.settings.Engine.Strategy),
		TrainedAt:    ue.engine.TrainedAt(),
		GeneratedAt:  s.now().UTC(),
	}, nil
}

// Retrain fits the user's model on the full history, replacing the previous one on success.
func (s *MoodService) Retrain(ctx context.Context, userID string) (*TrainResponse, error) {
	if err := validUserID(userID); err != nil {
		return nil, err
	}
	history, err := s.repo.GetHistory(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(history) < features.MinEntries {
		return nil, fmt.Errorf("%w: have %d entries, need %d", features.ErrInsufficientData, len(history), features.MinEntries)
	}
	ue := s.engineFor(ctx, userID)
	if err := ue.engine.Train(ctx, history); err != nil {
		return nil, err
	}
	s.mu.Lock()
	ue.logged = 0
	s.mu.Unlock()
	return &TrainResponse{Entries: len(history), TrainedAt: ue.engine.TrainedAt()}, nil
}

func validUserID(userID string) error {
	if userID == "" || len(userID) > 128 {
		return fmt.Errorf("%w: user id must be 1-128 characters", ErrInvalidInput)
	}
	return nil
}

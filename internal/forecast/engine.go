// Package forecast trains a per-user mood model and projects mood scores forward day by day.
package forecast

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/aebalz/daily-mood-tracker/internal/features"
	"github.com/aebalz/daily-mood-tracker/internal/model"
)

// DefaultForecastDays is the horizon used when the caller does not pick one.
const DefaultForecastDays = 7

var (
	// ErrModelUnavailable is returned when no model is loaded and training fails.
	ErrModelUnavailable = errors.New("forecast model unavailable")
	// ErrInvalidHorizon is returned for a non-positive number of forecast days.
	ErrInvalidHorizon = errors.New("days ahead must be positive")
)

// Strategy selects how the seed feature vector advances between forecast steps.
type Strategy string

const (
	// StrategyLag1 only replaces the lag-1 feature with the previous prediction.
	// Rolling statistics and other lags stay at their seed values; this is an approximation.
	StrategyLag1 Strategy = "lag1"
	// StrategyRecompute appends each prediction as a synthetic daily entry and rebuilds every feature.
	StrategyRecompute Strategy = "recompute"
)

// ParseStrategy maps a config value to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyLag1, StrategyRecompute:
		return Strategy(s), nil
	case "":
		return StrategyLag1, nil
	}
	return "", fmt.Errorf("unknown forecast strategy %q", s)
}

// Config tunes an Engine.
type Config struct {
	// Key prefixes the persisted artifact names.
	Key             string
	Strategy        Strategy
	MinTrainingRows int
	MinCleanRows    int
	Boosting        BoostingConfig
}

// DefaultConfig returns the standard engine configuration.
func DefaultConfig() Config {
	return Config{
		Key:             "mood_predictor",
		Strategy:        StrategyLag1,
		MinTrainingRows: 14,
		MinCleanRows:    10,
		Boosting:        DefaultBoostingConfig(),
	}
}

// Prediction is one forecasted day.
type Prediction struct {
	Date          time.Time `json:"date"`
	PredictedMood float64   `json:"predicted_mood"`
	MoodLabel     string    `json:"mood_label"`
}

// Engine owns one trained model and scaler pair. It is safe for concurrent use.
type Engine struct {
	store ArtifactStore
	cfg   Config
	log   zerolog.Logger

	mu        sync.RWMutex
	scaler    *Scaler
	model     *GradientBoosting
	trainedAt time.Time
}

// NewEngine creates an engine and loads any previously persisted artifacts.
// A load failure is logged and leaves the engine untrained.
func NewEngine(ctx context.Context, store ArtifactStore, cfg Config, logger zerolog.Logger) *Engine {
	if cfg.Key == "" {
		cfg.Key = DefaultConfig().Key
	}
	if cfg.Strategy == "" {
		cfg.Strategy = StrategyLag1
	}
	e := &Engine{
		store: store,
		cfg:   cfg,
		log:   logger.With().Str("component", "forecast").Str("model_key", cfg.Key).Logger(),
	}
	e.load(ctx)
	return e
}

func (e *Engine) modelKey() string  { return e.cfg.Key + ".model" }
func (e *Engine) scalerKey() string { return e.cfg.Key + ".scaler" }

// Reset drops the in-memory model so the next Predict retrains. Persisted artifacts are left alone.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scaler, e.model, e.trainedAt = nil, nil, time.Time{}
}

// Trained reports whether a model is loaded.
func (e *Engine) Trained() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.model != nil
}

// TrainedAt returns when the in-memory model was trained or loaded.
func (e *Engine) TrainedAt() time.Time {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.trainedAt
}

// Train fits a new scaler and model on the history. On failure the previous pair is kept.
func (e *Engine) Train(ctx context.Context, entries []model.MoodEntry) error {
	start := time.Now()
	scaler, gb, samples, err := e.fit(entries)
	if err != nil {
		trainingsTotal.WithLabelValues("failure").Inc()
		e.log.Warn().Err(err).Int("entries", len(entries)).Msg("model training failed")
		return err
	}

	// Both artifacts carry the same generation so load can tell a matched pair from a torn save.
	trainedAt := time.Now()
	scaler.Generation, gb.Generation = trainedAt.UnixNano(), trainedAt.UnixNano()

	e.mu.Lock()
	e.scaler, e.model, e.trainedAt = scaler, gb, trainedAt
	e.mu.Unlock()

	trainingsTotal.WithLabelValues("success").Inc()
	trainingDuration.Observe(time.Since(start).Seconds())
	e.log.Info().Int("samples", samples).Dur("took", time.Since(start)).Msg("model trained")

	e.save(ctx, scaler, gb)
	return nil
}

func (e *Engine) fit(entries []model.MoodEntry) (*Scaler, *GradientBoosting, int, error) {
	rows, err := features.Prepare(entries)
	if err != nil {
		return nil, nil, 0, err
	}
	if len(rows) < e.cfg.MinTrainingRows {
		return nil, nil, 0, fmt.Errorf("%w: have %d rows, need %d for training",
			features.ErrInsufficientData, len(rows), e.cfg.MinTrainingRows)
	}

	clean := rows[:0:0]
	for _, r := range rows {
		if r.Finite() {
			clean = append(clean, r)
		}
	}
	if len(clean) < e.cfg.MinCleanRows {
		return nil, nil, 0, fmt.Errorf("%w: have %d clean rows, need %d",
			features.ErrInsufficientData, len(clean), e.cfg.MinCleanRows)
	}

	x, y := features.Matrix(clean)
	scaler, err := FitScaler(x)
	if err != nil {
		return nil, nil, 0, err
	}
	gb, err := FitBoosting(scaler.TransformAll(x), y, e.cfg.Boosting)
	if err != nil {
		return nil, nil, 0, err
	}
	return scaler, gb, len(clean), nil
}

// Predict forecasts daysAhead days past the last entry, training first if no model is loaded.
func (e *Engine) Predict(ctx context.Context, entries []model.MoodEntry, daysAhead int) ([]Prediction, error) {
	out, err := e.predict(ctx, entries, daysAhead)
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	predictionsTotal.WithLabelValues(string(e.cfg.Strategy), outcome).Inc()
	return out, err
}

func (e *Engine) predict(ctx context.Context, entries []model.MoodEntry, daysAhead int) ([]Prediction, error) {
	if daysAhead <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidHorizon, daysAhead)
	}
	if !e.Trained() {
		if err := e.Train(ctx, entries); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrModelUnavailable, err)
		}
	}

	rows, err := features.Prepare(entries)
	if err != nil {
		return nil, err
	}

	e.mu.RLock()
	scaler, gb := e.scaler, e.model
	e.mu.RUnlock()

	seed := rows[len(rows)-1]
	lastDate := seed.Date
	vec := make([]float64, features.NumFeatures)
	copy(vec, seed.Features[:])
	work := rows

	predictions := make([]Prediction, 0, daysAhead)
	for i := 1; i <= daysAhead; i++ {
		mood := clamp(gb.Predict(scaler.Transform(vec)), model.MinMoodScore, model.MaxMoodScore)
		date := lastDate.AddDate(0, 0, i)
		rounded := math.Round(mood*100) / 100
		predictions = append(predictions, Prediction{
			Date:          date,
			PredictedMood: rounded,
			MoodLabel:     model.MoodLabelFor(rounded),
		})

		switch e.cfg.Strategy {
		case StrategyRecompute:
			next := features.Append(work, mood, date)
			work = append(work[:len(work):len(work)], next)
			copy(vec, next.Features[:])
		default:
			vec[features.Lag1] = mood
		}
	}

	e.log.Debug().Int("days", daysAhead).Str("strategy", string(e.cfg.Strategy)).Msg("generated mood forecast")
	return predictions, nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func (e *Engine) save(ctx context.Context, scaler *Scaler, gb *GradientBoosting) {
	modelData, err := json.Marshal(gb)
	if err == nil {
		err = e.store.Save(ctx, e.modelKey(), modelData)
	}
	if err != nil {
		artifactErrorsTotal.WithLabelValues("save").Inc()
		e.log.Error().Err(err).Msg("failed to save model")
		return
	}

	scalerData, err := json.Marshal(scaler)
	if err == nil {
		err = e.store.Save(ctx, e.scalerKey(), scalerData)
	}
	if err != nil {
		artifactErrorsTotal.WithLabelValues("save").Inc()
		e.log.Error().Err(err).Msg("failed to save scaler")
		return
	}
	e.log.Info().Msg("mood prediction model saved")
}

func (e *Engine) load(ctx context.Context) {
	modelData, err := e.store.Load(ctx, e.modelKey())
	if errors.Is(err, ErrArtifactNotFound) {
		e.log.Info().Msg("no existing model found, will train on first use")
		return
	}
	if err != nil {
		artifactErrorsTotal.WithLabelValues("load").Inc()
		e.log.Warn().Err(err).Msg("could not load model")
		return
	}
	scalerData, err := e.store.Load(ctx, e.scalerKey())
	if err != nil {
		artifactErrorsTotal.WithLabelValues("load").Inc()
		e.log.Warn().Err(err).Msg("could not load scaler")
		return
	}

	var gb GradientBoosting
	var scaler Scaler
	if err := json.Unmarshal(modelData, &gb); err != nil {
		artifactErrorsTotal.WithLabelValues("decode").Inc()
		e.log.Warn().Err(err).Msg("could not decode model")
		return
	}
	if err := json.Unmarshal(scalerData, &scaler); err != nil {
		artifactErrorsTotal.WithLabelValues("decode").Inc()
		e.log.Warn().Err(err).Msg("could not decode scaler")
		return
	}
	if !gb.valid(features.NumFeatures) || !scaler.valid(features.NumFeatures) {
		artifactErrorsTotal.WithLabelValues("decode").Inc()
		e.log.Warn().Msg("persisted model does not match the feature set, ignoring")
		return
	}

	if gb.Generation == 0 || gb.Generation != scaler.Generation {
		artifactErrorsTotal.WithLabelValues("mismatch").Inc()
		e.log.Warn().Int64("model_generation", gb.Generation).Int64("scaler_generation", scaler.Generation).
			Msg("persisted model and scaler come from different trainings, ignoring")
		return
	}

	e.mu.Lock()
	e.scaler, e.model, e.trainedAt = &scaler, &gb, time.Unix(0, gb.Generation)
	e.mu.Unlock()
	e.log.Info().Msg("loaded existing mood prediction model")
}

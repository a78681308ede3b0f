// Package insights computes rule-based statistics over a mood history without any model.
package insights

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/aebalz/daily-mood-tracker/internal/model"
)

// Trend window and thresholds.
const (
	RecentWindow   = 7
	TrendThreshold = 0.5
)

// Trend labels.
const (
	TrendImproving        = "improving"
	TrendDeclining        = "declining"
	TrendStable           = "stable"
	TrendInsufficientData = "insufficient_data"
)

// Volatility labels.
const (
	VolatilityHigh     = "high"
	VolatilityModerate = "moderate"
	VolatilityLow      = "low"
)

var (
	// ErrNoHistory is returned when there are no entries to analyze.
	ErrNoHistory = errors.New("no mood history")
	// ErrMissingScores is returned when an entry has no valid mood score.
	ErrMissingScores = errors.New("no mood scores found")
)

// Summary holds descriptive statistics for a mood history.
// @Description Statistical mood insights.
type Summary struct {
	AverageMood  float64 `json:"average_mood" example:"6.42"`
	MoodStd      float64 `json:"mood_std" example:"1.12"`
	MinMood      int     `json:"min_mood" example:"3"`
	MaxMood      int     `json:"max_mood" example:"9"`
	MedianMood   float64 `json:"median_mood" example:"6.5"`
	Volatility   string  `json:"mood_volatility" example:"moderate"`
	Trend        string  `json:"trend" example:"improving"`
	TotalEntries int     `json:"total_entries" example:"30"`
}

// Analyze summarizes the scores in chronological order.
func Analyze(entries []model.MoodEntry) (*Summary, error) {
	if len(entries) == 0 {
		return nil, ErrNoHistory
	}
	scores := make([]float64, 0, len(entries))
	for _, e := range chronological(entries) {
		if !e.HasScore() {
			return nil, ErrMissingScores
		}
		scores = append(scores, float64(e.MoodScore))
	}

	std := math.Sqrt(stat.PopVariance(scores, nil))
	return &Summary{
		AverageMood:  round2(stat.Mean(scores, nil)),
		MoodStd:      round2(std),
		MinMood:      int(floats.Min(scores)),
		MaxMood:      int(floats.Max(scores)),
		MedianMood:   round2(median(scores)),
		Volatility:   volatility(std),
		Trend:        trend(scores),
		TotalEntries: len(scores),
	}, nil
}

func volatility(std float64) string {
	switch {
	case std > 2:
		return VolatilityHigh
	case std > 1:
		return VolatilityModerate
	default:
		return VolatilityLow
	}
}

// trend compares the last RecentWindow scores to everything before them.
func trend(scores []float64) string {
	if len(scores) < RecentWindow {
		return TrendInsufficientData
	}
	split := len(scores) - RecentWindow
	recent := stat.Mean(scores[split:], nil)
	older := recent
	if split > 0 {
		older = stat.Mean(scores[:split], nil)
	}
	switch diff := recent - older; {
	case diff > TrendThreshold:
		return TrendImproving
	case diff < -TrendThreshold:
		return TrendDeclining
	default:
		return TrendStable
	}
}

func median(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func chronological(entries []model.MoodEntry) []model.MoodEntry {
	sorted := make([]model.MoodEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})
	return sorted
}

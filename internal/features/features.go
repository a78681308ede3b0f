// Package features turns a user's mood history into the numeric feature rows used by the forecaster.
package features

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/aebalz/daily-mood-tracker/internal/model"
)

// MinEntries is the smallest history Prepare accepts.
const MinEntries = 7

var (
	// ErrInsufficientData is returned when the history is too short for the requested operation.
	ErrInsufficientData = errors.New("insufficient mood history")
	// ErrMalformedEntry is returned when an entry lacks its timestamp or mood score.
	ErrMalformedEntry = errors.New("malformed mood entry")
)

// Column indexes into Row.Features.
const (
	DayOfWeek = iota
	DayOfMonth
	Month
	Hour
	RollingMean3
	RollingStd3
	RollingMean7
	Lag1
	Lag2
	Lag7
	Trend

	NumFeatures
)

// Names lists the feature columns in matrix order.
var Names = [NumFeatures]string{
	"day_of_week", "day_of_month", "month", "hour",
	"mood_rolling_mean_3", "mood_rolling_std_3", "mood_rolling_mean_7",
	"mood_lag_1", "mood_lag_2", "mood_lag_7", "mood_trend",
}

// Row is the derived feature record for one mood entry.
type Row struct {
	Date      time.Time            `json:"date"`
	MoodScore float64              `json:"mood_score"`
	Features  [NumFeatures]float64 `json:"features"`
}

type point struct {
	at    time.Time
	score float64
}

// Prepare validates and sorts the history, then derives one Row per entry in chronological order.
// The input slice is not modified.
func Prepare(entries []model.MoodEntry) ([]Row, error) {
	if len(entries) < MinEntries {
		return nil, fmt.Errorf("%w: have %d entries, need %d", ErrInsufficientData, len(entries), MinEntries)
	}

	sorted := make([]model.MoodEntry, len(entries))
	copy(sorted, entries)
	for i, e := range sorted {
		if e.CreatedAt.IsZero() {
			return nil, fmt.Errorf("%w: entry %d has no created_at", ErrMalformedEntry, i)
		}
		if !e.HasScore() {
			return nil, fmt.Errorf("%w: entry %d has no valid mood_score", ErrMalformedEntry, i)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		if a.MoodScore != b.MoodScore {
			return a.MoodScore < b.MoodScore
		}
		return a.ID < b.ID
	})

	points := make([]point, len(sorted))
	for i, e := range sorted {
		points[i] = point{at: e.CreatedAt, score: float64(e.MoodScore)}
	}
	return derive(points), nil
}

// Append returns the row an entry with the given score at the given time would get if it followed rows.
// Lag backfill uses the mean of the extended series, exactly as Prepare would.
func Append(rows []Row, score float64, at time.Time) Row {
	points := make([]point, 0, len(rows)+1)
	for _, r := range rows {
		points = append(points, point{at: r.Date, score: r.MoodScore})
	}
	points = append(points, point{at: at, score: score})
	out := derive(points)
	return out[len(out)-1]
}

// Matrix splits rows into the design matrix and target vector.
func Matrix(rows []Row) ([][]float64, []float64) {
	x := make([][]float64, len(rows))
	y := make([]float64, len(rows))
	for i, r := range rows {
		vec := make([]float64, NumFeatures)
		copy(vec, r.Features[:])
		x[i] = vec
		y[i] = r.MoodScore
	}
	return x, y
}

func derive(points []point) []Row {
	scores := make([]float64, len(points))
	for i, p := range points {
		scores[i] = p.score
	}
	mean := stat.Mean(scores, nil)

	lag := func(i, n int) float64 {
		if i-n < 0 {
			return mean
		}
		return scores[i-n]
	}

	rows := make([]Row, len(points))
	for i, p := range points {
		var f [NumFeatures]float64
		f[DayOfWeek] = float64((int(p.at.Weekday()) + 6) % 7)
		f[DayOfMonth] = float64(p.at.Day())
		f[Month] = float64(p.at.Month())
		f[Hour] = float64(p.at.Hour())

		win3 := window(scores, i, 3)
		f[RollingMean3] = stat.Mean(win3, nil)
		f[RollingStd3] = sampleStd(win3)
		f[RollingMean7] = stat.Mean(window(scores, i, 7), nil)

		f[Lag1] = lag(i, 1)
		f[Lag2] = lag(i, 2)
		f[Lag7] = lag(i, 7)

		if i > 0 {
			f[Trend] = scores[i] - scores[i-1]
		}

		rows[i] = Row{Date: p.at, MoodScore: p.score, Features: f}
	}
	return rows
}

// window returns the trailing window of at most size values ending at i.
func window(values []float64, i, size int) []float64 {
	start := i - size + 1
	if start < 0 {
		start = 0
	}
	return values[start : i+1]
}

// sampleStd is the n-1 standard deviation; a single value has deviation 0.
func sampleStd(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	std := stat.StdDev(values, nil)
	if math.IsNaN(std) {
		return 0
	}
	return std
}

// Finite reports whether every feature and the target are finite numbers.
func (r Row) Finite() bool {
	if math.IsNaN(r.MoodScore) || math.IsInf(r.MoodScore, 0) {
		return false
	}
	for _, v := range r.Features {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

package insights

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/aebalz/daily-mood-tracker/internal/model"
)

// WeeklyReport summarizes the entries logged in the last week.
// @Description Mood summary for the last 7 days.
type WeeklyReport struct {
	From         time.Time      `json:"from" example:"2024-01-01T00:00:00Z"`
	TotalEntries int            `json:"total_entries" example:"6"`
	AverageMood  float64        `json:"average_mood" example:"6.5"`
	HighestMood  int            `json:"highest_mood" example:"8"`
	LowestMood   int            `json:"lowest_mood" example:"4"`
	MoodRange    int            `json:"mood_range" example:"4"`
	Distribution map[string]int `json:"distribution"`
}

// Weekly reports on entries dated on or after the day seven days before now.
// It returns nil when no entry falls in that window.
func Weekly(entries []model.MoodEntry, now time.Time) *WeeklyReport {
	from := dayOf(now, now.Location()).AddDate(0, 0, -7)

	report := &WeeklyReport{From: from, Distribution: make(map[string]int)}
	var scores []float64
	for _, e := range entries {
		if e.CreatedAt.IsZero() || !e.HasScore() || dayOf(e.CreatedAt, now.Location()).Before(from) {
			continue
		}
		scores = append(scores, float64(e.MoodScore))
		if report.TotalEntries == 0 || e.MoodScore > report.HighestMood {
			report.HighestMood = e.MoodScore
		}
		if report.TotalEntries == 0 || e.MoodScore < report.LowestMood {
			report.LowestMood = e.MoodScore
		}
		report.TotalEntries++
		report.Distribution[model.MoodLabelFor(float64(e.MoodScore))]++
	}
	if report.TotalEntries == 0 {
		return nil
	}
	report.AverageMood = round2(stat.Mean(scores, nil))
	report.MoodRange = report.HighestMood - report.LowestMood
	return report
}

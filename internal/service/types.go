package service

import (
	"time"

	"github.com/aebalz/daily-mood-tracker/internal/forecast"
	"github.com/aebalz/daily-mood-tracker/internal/insights"
	"github.com/aebalz/daily-mood-tracker/internal/model"
)

// CreateMoodRequest is the payload for logging a mood.
// @Description Mood check-in payload.
type CreateMoodRequest struct {
	MoodScore   int        `json:"mood_score" binding:"required,min=1,max=10" validate:"required,min=1,max=10" example:"7"`
	JournalText string     `json:"journal_text" binding:"max=5000" validate:"max=5000" example:"Long walk after work."`
	Triggers    []string   `json:"triggers" binding:"max=10,dive,max=64" validate:"max=10,dive,max=64"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// MoodListResponse is a page of mood entries.
type MoodListResponse struct {
	Data   []model.MoodEntry `json:"data"`
	Total  int64             `json:"total" example:"42"`
	Limit  int               `json:"limit" example:"50"`
	Offset int               `json:"offset" example:"0"`
}

// StreakResponse holds logging streaks in days.
type StreakResponse struct {
	Current int `json:"current" example:"5"`
	Longest int `json:"longest" example:"21"`
}

// InsightsResponse combines statistics, streaks and the weekly report.
type InsightsResponse struct {
	insights.Summary
	Streak StreakResponse         `json:"streak"`
	Weekly *insights.WeeklyReport `json:"weekly,omitempty"`
}

// ForecastResponse holds the predictions for the upcoming days.
type ForecastResponse struct {
	Predictions  []forecast.Prediction `json:"predictions"`
	ForecastDays int                   `json:"forecast_days" example:"7"`
	Strategy     string                `json:"strategy" example:"lag1"`
	TrainedAt    time.Time             `json:"trained_at"`
	GeneratedAt  time.Time             `json:"generated_at"`
}

// TrainResponse reports a completed retrain.
type TrainResponse struct {
	Entries   int       `json:"entries" example:"30"`
	TrainedAt time.Time `json:"trained_at"`
}

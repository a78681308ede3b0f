package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Mood score bounds.
const (
	MinMoodScore = 1
	MaxMoodScore = 10
)

// MoodEntry represents one mood check-in logged by a user.
type MoodEntry struct {
	ID          uint                        `json:"id" gorm:"primarykey"`
	UserID      string                      `json:"user_id" gorm:"index:idx_mood_entries_user_created,priority:1;not null"`
	MoodScore   int                         `json:"mood_score" gorm:"not null;check:mood_score >= 1 AND mood_score <= 10"`
	MoodLabel   string                      `json:"mood_label"`
	JournalText string                      `json:"journal_text"`
	Triggers    datatypes.JSONSlice[string] `json:"triggers" gorm:"type:jsonb"`
	CreatedAt   time.Time                   `json:"created_at" gorm:"index:idx_mood_entries_user_created,priority:2"`
	UpdatedAt   time.Time                   `json:"updated_at"`
	DeletedAt   gorm.DeletedAt              `json:"-" gorm:"index"`
}

// HasScore reports whether the entry carries a usable mood score.
func (e MoodEntry) HasScore() bool {
	return e.MoodScore >= MinMoodScore && e.MoodScore <= MaxMoodScore
}

// MoodLabelFor maps a score to its label. Fractional scores are truncated first.
func MoodLabelFor(score float64) string {
	switch s := int(score); {
	case s >= 9:
		return "excellent"
	case s >= 7:
		return "good"
	case s >= 5:
		return "okay"
	case s >= 3:
		return "low"
	default:
		return "very_low"
	}
}

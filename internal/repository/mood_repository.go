package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/aebalz/daily-mood-tracker/internal/export"
	"github.com/aebalz/daily-mood-tracker/internal/model"
)

// ErrMoodNotFound is returned when a mood entry does not exist for the user.
var ErrMoodNotFound = errors.New("mood entry not found")

// MoodRepositoryInterface defines the interface for mood entry storage.
type MoodRepositoryInterface interface {
	CreateMood(ctx context.Context, entry *model.MoodEntry) (*model.MoodEntry, error)
	GetMoodByID(ctx context.Context, userID string, id uint) (*model.MoodEntry, error)
	ListMoods(ctx context.Context, userID string, limit, offset int) ([]model.MoodEntry, int64, error)
	DeleteMood(ctx context.Context, userID string, id uint) error

	// GetHistory returns every entry for the user, oldest first.
	GetHistory(ctx context.Context, userID string) ([]model.MoodEntry, error)
	CountSince(ctx context.Context, userID string, since time.Time) (int64, error)

	ExportMoods(ctx context.Context, userID, format string) ([]byte, string, error)
}

// MoodRepository implements MoodRepositoryInterface on GORM.
type MoodRepository struct {
	DB *gorm.DB
}

// NewMoodRepository creates a new MoodRepository.
func NewMoodRepository(db *gorm.DB) MoodRepositoryInterface {
	return &MoodRepository{DB: db}
}

// CreateMood adds a new mood entry.
func (r *MoodRepository) CreateMood(ctx context.Context, entry *model.MoodEntry) (*model.MoodEntry, error) {
	if err := r.DB.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// GetMoodByID retrieves a single entry owned by the user.
func (r *MoodRepository) GetMoodByID(ctx context.Context, userID string, id uint) (*model.MoodEntry, error) {
	var entry model.MoodEntry
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&entry, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMoodNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListMoods returns a page of the user's entries, newest first, and the total count.
func (r *MoodRepository) ListMoods(ctx context.Context, userID string, limit, offset int) ([]model.MoodEntry, int64, error) {
	var entries []model.MoodEntry
	var totalCount int64

	query := r.DB.WithContext(ctx).Model(&model.MoodEntry{}).Where("user_id = ?", userID)
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if err := query.Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, totalCount, nil
}

// DeleteMood soft-deletes an entry owned by the user.
func (r *MoodRepository) DeleteMood(ctx context.Context, userID string, id uint) error {
	result := r.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.MoodEntry{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMoodNotFound
	}
	return nil
}

// GetHistory returns all of the user's entries in chronological order.
func (r *MoodRepository) GetHistory(ctx context.Context, userID string) ([]model.MoodEntry, error) {
	var entries []model.MoodEntry
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").Order("id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// CountSince counts the user's entries created at or after since.
func (r *MoodRepository) CountSince(ctx context.Context, userID string, since time.Time) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.MoodEntry{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Count(&count).Error
	return count, err
}

// ExportMoods formats the user's full history as CSV or JSON.
func (r *MoodRepository) ExportMoods(ctx context.Context, userID, format string) ([]byte, string, error) {
	entries, err := r.GetHistory(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	return export.Encode(entries, format)
}

// The (user_id, created_at) composite index declared on model.MoodEntry serves both the
// per-user history scan used for forecasting and the newest-first listing.

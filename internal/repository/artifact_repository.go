package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aebalz/daily-mood-tracker/internal/forecast"
	"github.com/aebalz/daily-mood-tracker/internal/model"
)

// ArtifactRepository stores forecasting artifacts in the model_artifacts table.
// It satisfies forecast.ArtifactStore.
type ArtifactRepository struct {
	DB *gorm.DB
}

var _ forecast.ArtifactStore = (*ArtifactRepository)(nil)

// NewArtifactRepository creates a new ArtifactRepository.
func NewArtifactRepository(db *gorm.DB) *ArtifactRepository {
	return &ArtifactRepository{DB: db}
}

// Save upserts the artifact for key.
func (r *ArtifactRepository) Save(ctx context.Context, key string, data []byte) error {
	artifact := model.ModelArtifact{Key: key, Data: data}
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "artifact_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&artifact).Error
}

// Load returns the artifact for key or forecast.ErrArtifactNotFound.
func (r *ArtifactRepository) Load(ctx context.Context, key string) ([]byte, error) {
	var artifact model.ModelArtifact
	err := r.DB.WithContext(ctx).Where("artifact_key = ?", key).First(&artifact).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, forecast.ErrArtifactNotFound
	}
	if err != nil {
		return nil, err
	}
	return artifact.Data, nil
}

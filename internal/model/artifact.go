package model

import "time"

// ModelArtifact stores a serialized forecasting artifact (model or scaler) under a well-known key.
type ModelArtifact struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Key       string    `json:"key" gorm:"column:artifact_key;uniqueIndex;not null"`
	Data      []byte    `json:"-" gorm:"type:bytea;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

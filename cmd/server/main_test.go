package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aebalz/daily-mood-tracker/internal/config"
	"github.com/aebalz/daily-mood-tracker/internal/forecast"
	"github.com/aebalz/daily-mood-tracker/internal/repository"
)

func TestNewArtifactStore(t *testing.T) {
	dir := t.TempDir()

	store, err := newArtifactStore(&config.AppConfig{ModelStore: "file", ModelDir: dir}, nil)
	require.NoError(t, err)
	assert.IsType(t, &forecast.FileStore{}, store)

	store, err = newArtifactStore(&config.AppConfig{ModelStore: "memory"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &forecast.MemoryStore{}, store)

	store, err = newArtifactStore(&config.AppConfig{ModelStore: "postgres"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &repository.ArtifactRepository{}, store)

	_, err = newArtifactStore(&config.AppConfig{ModelStore: "s3"}, nil)
	assert.Error(t, err)
}

func TestEngineConfig(t *testing.T) {
	cfg, err := engineConfig(&config.AppConfig{ForecastStrategy: "recompute", ModelKey: "custom"})
	require.NoError(t, err)
	assert.Equal(t, forecast.StrategyRecompute, cfg.Strategy)
	assert.Equal(t, "custom", cfg.Key)
	assert.Equal(t, 14, cfg.MinTrainingRows)

	cfg, err = engineConfig(&config.AppConfig{})
	require.NoError(t, err)
	assert.Equal(t, forecast.StrategyLag1, cfg.Strategy)
	assert.Equal(t, "mood_predictor", cfg.Key)

	_, err = engineConfig(&config.AppConfig{ForecastStrategy: "magic"})
	assert.Error(t, err)
}

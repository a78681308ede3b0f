package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "fiber", cfg.ServerFramework)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, 15*time.Second, cfg.ServerReadTimeout)
	assert.Equal(t, []string{"*"}, cfg.CorsAllowedOrigins)
	assert.Equal(t, 7, cfg.ForecastDays)
	assert.Equal(t, 30, cfg.ForecastMaxDays)
	assert.Equal(t, "lag1", cfg.ForecastStrategy)
	assert.Equal(t, "postgres", cfg.ModelStore)
	assert.Equal(t, "mood_predictor", cfg.ModelKey)
	assert.Zero(t, cfg.ForecastRetrainEvery)
}

func TestLoadConfig_FromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.env")
	content := "SERVER_FRAMEWORK=gin\nFORECAST_STRATEGY=recompute\nFORECAST_DAYS=14\nMODEL_STORE=file\nCORS_ALLOWED_ORIGINS=http://a.test, http://b.test\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	for _, key := range []string{"SERVER_FRAMEWORK", "FORECAST_STRATEGY", "FORECAST_DAYS", "MODEL_STORE", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "gin", cfg.ServerFramework)
	assert.Equal(t, "recompute", cfg.ForecastStrategy)
	assert.Equal(t, 14, cfg.ForecastDays)
	assert.Equal(t, "file", cfg.ModelStore)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CorsAllowedOrigins)
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("SERVER_FRAMEWORK", "echo")
	t.Setenv("APP_ENV", "qa")
	t.Setenv("FORECAST_STRATEGY", "lstm")
	t.Setenv("MODEL_STORE", "s3")
	t.Setenv("FORECAST_DAYS", "90")
	t.Setenv("FORECAST_MAX_DAYS", "30")
	t.Setenv("FORECAST_RETRAIN_EVERY", "-2")
	t.Setenv("SERVER_PORT", "not-a-port")
	t.Setenv("SERVER_READ_TIMEOUT", "soon")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "fiber", cfg.ServerFramework)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "lag1", cfg.ForecastStrategy)
	assert.Equal(t, "postgres", cfg.ModelStore)
	assert.Equal(t, 7, cfg.ForecastDays)
	assert.Zero(t, cfg.ForecastRetrainEvery)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, 15*time.Second, cfg.ServerReadTimeout)
}

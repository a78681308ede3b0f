package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aebalz/daily-mood-tracker/internal/features"
	"github.com/aebalz/daily-mood-tracker/internal/forecast"
)

var cliNow = time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)

// writeHistory writes n daily entries ending the day before cliNow.
func writeHistory(t *testing.T, dir string, n int) string {
	t.Helper()
	scores := []int{5, 6, 7, 6, 5, 4, 5}
	var b strings.Builder
	b.WriteString("created_at,mood_score\n")
	for i := 0; i < n; i++ {
		at := cliNow.AddDate(0, 0, i-n).Add(8 * time.Hour)
		fmt.Fprintf(&b, "%s,%d\n", at.Format(time.RFC3339), scores[i%len(scores)])
	}
	path := filepath.Join(dir, "moods.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o600))
	return path
}

func run(t *testing.T, args ...string) (map[string]any, error) {
	t.Helper()
	cmd := newRootCmd(func() time.Time { return cliNow })
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		return nil, err
	}
	var result map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &result), out.String())
	return result, nil
}

func TestForecastCommand_TrainsAndSaves(t *testing.T) {
	dir := t.TempDir()
	input := writeHistory(t, dir, 30)
	models := filepath.Join(dir, "models")

	result, err := run(t, "forecast", "--input", input, "--model-dir", models, "--days", "5")
	require.NoError(t, err)

	predictions, ok := result["predictions"].([]any)
	require.True(t, ok)
	assert.Len(t, predictions, 5)
	assert.Equal(t, "lag1", result["strategy"])

	assert.FileExists(t, filepath.Join(models, "mood_predictor.model.json"))
	assert.FileExists(t, filepath.Join(models, "mood_predictor.scaler.json"))
}

func TestTrainCommand(t *testing.T) {
	dir := t.TempDir()

	result, err := run(t, "train", "--input", writeHistory(t, dir, 20), "--model-dir", dir)
	require.NoError(t, err)
	assert.EqualValues(t, 20, result["entries"])

	_, err = run(t, "train", "--input", writeHistory(t, dir, 10), "--model-dir", dir)
	assert.ErrorIs(t, err, features.ErrInsufficientData)
}

func TestForecastCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	input := writeHistory(t, dir, 30)

	_, err := run(t, "forecast", "--input", input, "--model-dir", dir, "--strategy", "magic")
	assert.Error(t, err)

	_, err = run(t, "forecast", "--input", input, "--model-dir", dir, "--days", "0")
	assert.ErrorIs(t, err, forecast.ErrInvalidHorizon)

	_, err = run(t, "forecast", "--model-dir", dir)
	assert.ErrorContains(t, err, "--input is required")
}

func TestStreakCommand(t *testing.T) {
	input := writeHistory(t, t.TempDir(), 10)

	result, err := run(t, "streak", "--input", input)
	require.NoError(t, err)
	assert.EqualValues(t, 10, result["current"])
	assert.EqualValues(t, 10, result["longest"])
}

func TestInsightsCommand(t *testing.T) {
	input := writeHistory(t, t.TempDir(), 14)

	result, err := run(t, "insights", "--input", input)
	require.NoError(t, err)
	summary, ok := result["summary"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 14, summary["total_entries"])
	assert.Equal(t, "stable", summary["trend"])
	assert.NotNil(t, result["weekly"])

	_, err = run(t, "insights", "--input", writeHistory(t, t.TempDir(), 0))
	assert.Error(t, err)
}

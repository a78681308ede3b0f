package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/aebalz/daily-mood-tracker/internal/export"
	"github.com/aebalz/daily-mood-tracker/internal/forecast"
	"github.com/aebalz/daily-mood-tracker/internal/insights"
	"github.com/aebalz/daily-mood-tracker/internal/logging"
	"github.com/aebalz/daily-mood-tracker/internal/model"
)

type options struct {
	input    string
	format   string
	modelDir string
	modelKey string
	logLevel string

	logger zerolog.Logger
	now    func() time.Time
}

func newRootCmd(now func() time.Time) *cobra.Command {
	opts := &options{now: now}

	root := &cobra.Command{
		Use:           "moodctl",
		Short:         "Offline mood insights and forecasts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.input == "" {
				return fmt.Errorf("--input is required")
			}
			opts.logger = logging.Console(cmd.ErrOrStderr(), opts.logLevel)
			return nil
		},
	}
	flags := root.PersistentFlags()
	flags.StringVarP(&opts.input, "input", "i", "", "mood history export (.json or .csv)")
	flags.StringVar(&opts.format, "format", "", "input format: json or csv (default: from file extension)")
	flags.StringVar(&opts.modelDir, "model-dir", "./models", "directory for trained model artifacts")
	flags.StringVar(&opts.modelKey, "model-key", "mood_predictor", "artifact name prefix")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(
		newTrainCmd(opts),
		newForecastCmd(opts),
		newInsightsCmd(opts),
		newStreakCmd(opts),
	)
	return root
}

func newTrainCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "train",
		Short: "Train the forecast model on the history and save it",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := opts.load()
			if err != nil {
				return err
			}
			engine, err := opts.engine(cmd.Context(), forecast.StrategyLag1)
			if err != nil {
				return err
			}
			if err := engine.Train(cmd.Context(), entries); err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), map[string]any{
				"entries":    len(entries),
				"trained_at": engine.TrainedAt().UTC(),
				"model_dir":  opts.modelDir,
			})
		},
	}
}

func newForecastCmd(opts *options) *cobra.Command {
	var (
		days     int
		strategy string
	)
	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Predict the mood for the days after the last entry",
		Long: `Predict the mood for the days after the last entry.

A saved model is used when present; otherwise one is trained and saved first.

Examples:
  moodctl forecast --input moods.json --days 7
  moodctl forecast --input moods.csv --days 14 --strategy recompute`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := forecast.ParseStrategy(strategy)
			if err != nil {
				return err
			}
			entries, err := opts.load()
			if err != nil {
				return err
			}
			engine, err := opts.engine(cmd.Context(), s)
			if err != nil {
				return err
			}
			predictions, err := engine.Predict(cmd.Context(), entries, days)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), map[string]any{
				"predictions":   predictions,
				"forecast_days": days,
				"strategy":      string(s),
			})
		},
	}
	cmd.Flags().IntVarP(&days, "days", "d", forecast.DefaultForecastDays, "number of days to forecast")
	cmd.Flags().StringVar(&strategy, "strategy", string(forecast.StrategyLag1), "step strategy: lag1 or recompute")
	return cmd
}

func newInsightsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "insights",
		Short: "Print summary statistics and the weekly report",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := opts.load()
			if err != nil {
				return err
			}
			summary, err := insights.Analyze(entries)
			if err != nil {
				return err
			}
			now := opts.now()
			return writeJSON(cmd.OutOrStdout(), map[string]any{
				"summary": summary,
				"streak":  streak(entries, now),
				"weekly":  insights.Weekly(entries, now),
			})
		},
	}
}

func newStreakCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "streak",
		Short: "Print the current and longest logging streaks",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := opts.load()
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), streak(entries, opts.now()))
		},
	}
}

func streak(entries []model.MoodEntry, now time.Time) map[string]int {
	return map[string]int{
		"current": insights.CurrentStreak(entries, now),
		"longest": insights.LongestStreak(entries, now.Location()),
	}
}

func (o *options) load() ([]model.MoodEntry, error) {
	format := o.format
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(o.input)), ".")
	}
	f, err := os.Open(o.input)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()
	return export.Decode(f, format)
}

func (o *options) engine(ctx context.Context, s forecast.Strategy) (*forecast.Engine, error) {
	store, err := forecast.NewFileStore(o.modelDir)
	if err != nil {
		return nil, err
	}
	cfg := forecast.DefaultConfig()
	cfg.Key = o.modelKey
	cfg.Strategy = s
	return forecast.NewEngine(ctx, store, cfg, o.logger), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Package export encodes mood histories as CSV or JSON and reads them back.
package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/aebalz/daily-mood-tracker/internal/model"
)

// Supported formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// ErrUnsupportedFormat is returned for formats other than csv and json.
var ErrUnsupportedFormat = errors.New("unsupported export format")

var csvHeader = []string{"id", "created_at", "mood_score", "mood_label", "journal_text", "triggers"}

// Encode writes entries in the given format and returns the payload with its content type.
func Encode(entries []model.MoodEntry, format string) ([]byte, string, error) {
	switch strings.ToLower(format) {
	case FormatCSV:
		var buffer bytes.Buffer
		writer := csv.NewWriter(&buffer)
		if err := writer.Write(csvHeader); err != nil {
			return nil, "", err
		}
		for _, e := range entries {
			row := []string{
				strconv.FormatUint(uint64(e.ID), 10),
				e.CreatedAt.Format(time.RFC3339),
				strconv.Itoa(e.MoodScore),
				e.MoodLabel,
				e.JournalText,
				strings.Join(e.Triggers, ";"),
			}
			if err := writer.Write(row); err != nil {
				return nil, "", err
			}
		}
		writer.Flush()
		if err := writer.Error(); err != nil {
			return nil, "", err
		}
		return buffer.Bytes(), "text/csv", nil

	case FormatJSON:
		if entries == nil {
			entries = []model.MoodEntry{}
		}
		data, err := json.Marshal(entries)
		if err != nil {
			return nil, "", err
		}
		return data, "application/json", nil
	}
	return nil, "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}

// Decode reads entries previously written by Encode. CSV input needs at least the
// created_at and mood_score columns; the other columns are optional.
func Decode(r io.Reader, format string) ([]model.MoodEntry, error) {
	switch strings.ToLower(format) {
	case FormatJSON:
		var entries []model.MoodEntry
		if err := json.NewDecoder(r).Decode(&entries); err != nil {
			return nil, fmt.Errorf("decode json history: %w", err)
		}
		return entries, nil
	case FormatCSV:
		return decodeCSV(r)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}

func decodeCSV(r io.Reader) ([]model.MoodEntry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("decode csv history: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	cols := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	createdCol, okCreated := cols["created_at"]
	scoreCol, okScore := cols["mood_score"]
	if !okCreated || !okScore {
		return nil, errors.New("decode csv history: header must contain created_at and mood_score")
	}
	field := func(rec []string, name string) string {
		if i, ok := cols[name]; ok && i < len(rec) {
			return rec[i]
		}
		return ""
	}

	entries := make([]model.MoodEntry, 0, len(records)-1)
	for line, rec := range records[1:] {
		if createdCol >= len(rec) || scoreCol >= len(rec) {
			return nil, fmt.Errorf("decode csv history: line %d is missing columns", line+2)
		}
		created, err := time.Parse(time.RFC3339, strings.TrimSpace(rec[createdCol]))
		if err != nil {
			return nil, fmt.Errorf("decode csv history: line %d: %w", line+2, err)
		}
		score, err := strconv.Atoi(strings.TrimSpace(rec[scoreCol]))
		if err != nil {
			return nil, fmt.Errorf("decode csv history: line %d: %w", line+2, err)
		}
		e := model.MoodEntry{
			CreatedAt:   created,
			MoodScore:   score,
			MoodLabel:   field(rec, "mood_label"),
			JournalText: field(rec, "journal_text"),
		}
		if id, err := strconv.ParseUint(field(rec, "id"), 10, 64); err == nil {
			e.ID = uint(id)
		}
		if t := field(rec, "triggers"); t != "" {
			e.Triggers = strings.Split(t, ";")
		}
		entries = append(entries, e)
	}
	return entries, nil
}

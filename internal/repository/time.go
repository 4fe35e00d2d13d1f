package repository

import (
	"fmt"
	"time"
)

// Timestamps are stored as UTC RFC 3339 text with nanoseconds.
const timeLayout = time.RFC3339Nano

var timeNow = time.Now

func nowString() string {
	return formatTime(timeNow())
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime accepts the stored layout with or without fractional seconds. An
// empty column reads as the zero time.
func parseTime(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", raw, err)
	}
	return t.UTC(), nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"focusorbit/backend/internal/model"
)

type SettingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) Get(ctx context.Context, userID string) (*model.UserSettings, error) {
	var settings model.UserSettings
	err := r.db.QueryRowContext(
		ctx,
		`SELECT focus_duration, short_break_duration, long_break_duration, long_break_interval
		 FROM user_settings WHERE user_id = ?`,
		userID,
	).Scan(
		&settings.FocusDuration,
		&settings.ShortBreakDuration,
		&settings.LongBreakDuration,
		&settings.LongBreakInterval,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &settings, nil
}

func (r *SettingsRepository) Save(ctx context.Context, userID string, settings model.UserSettings) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO user_settings (
			user_id, focus_duration, short_break_duration, long_break_duration,
			long_break_interval, updated_at
		) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			focus_duration = excluded.focus_duration,
			short_break_duration = excluded.short_break_duration,
			long_break_duration = excluded.long_break_duration,
			long_break_interval = excluded.long_break_interval,
			updated_at = excluded.updated_at`,
		userID,
		settings.FocusDuration,
		settings.ShortBreakDuration,
		settings.LongBreakDuration,
		settings.LongBreakInterval,
		nowString(),
	)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

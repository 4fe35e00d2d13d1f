package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"focusorbit/backend/internal/model"
)

type StreakRepository struct {
	db *sql.DB
}

func NewStreakRepository(db *sql.DB) *StreakRepository {
	return &StreakRepository{db: db}
}

func (r *StreakRepository) BeginTx(ctx context.Context) (*sql.Tx, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	return tx, nil
}

func (r *StreakRepository) Get(ctx context.Context, userID string) (*model.StreakData, error) {
	return getStreak(ctx, r.db, userID)
}

func (r *StreakRepository) GetTx(ctx context.Context, tx *sql.Tx, userID string) (*model.StreakData, error) {
	return getStreak(ctx, tx, userID)
}

func (r *StreakRepository) SaveTx(ctx context.Context, tx *sql.Tx, userID string, streak *model.StreakData) error {
	return saveStreak(ctx, tx, userID, streak)
}

func getStreak(ctx context.Context, q Querier, userID string) (*model.StreakData, error) {
	row := q.QueryRowContext(
		ctx,
		`SELECT current_streak, longest_streak, last_active_date, freeze_balance,
		        freeze_used_today, freezes_earned, last_earned_date, version
		 FROM streaks WHERE user_id = ?`,
		userID,
	)

	var streak model.StreakData
	err := row.Scan(
		&streak.CurrentStreak,
		&streak.LongestStreak,
		&streak.LastActiveDate,
		&streak.FreezeBalance,
		&streak.FreezeUsedToday,
		&streak.FreezesEarned,
		&streak.LastEarnedDate,
		&streak.Version,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get streak: %w", err)
	}
	return &streak, nil
}

// saveStreak writes every column as given; version bookkeeping is the
// caller's.
func saveStreak(ctx context.Context, q Querier, userID string, streak *model.StreakData) error {
	_, err := q.ExecContext(
		ctx,
		`INSERT INTO streaks (
			user_id, current_streak, longest_streak, last_active_date, freeze_balance,
			freeze_used_today, freezes_earned, last_earned_date, version, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			current_streak = excluded.current_streak,
			longest_streak = excluded.longest_streak,
			last_active_date = excluded.last_active_date,
			freeze_balance = excluded.freeze_balance,
			freeze_used_today = excluded.freeze_used_today,
			freezes_earned = excluded.freezes_earned,
			last_earned_date = excluded.last_earned_date,
			version = excluded.version,
			updated_at = excluded.updated_at`,
		userID,
		streak.CurrentStreak,
		streak.LongestStreak,
		streak.LastActiveDate,
		streak.FreezeBalance,
		streak.FreezeUsedToday,
		streak.FreezesEarned,
		streak.LastEarnedDate,
		streak.Version,
		nowString(),
	)
	if err != nil {
		return fmt.Errorf("save streak: %w", err)
	}
	return nil
}

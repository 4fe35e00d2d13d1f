package repository

import (
	"context"
	"database/sql"
	"fmt"

	"focusorbit/backend/internal/model"
)

type GoalRepository struct {
	db *sql.DB
}

func NewGoalRepository(db *sql.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

// Create inserts a new active goal. An existing (user, id) pair yields
// ErrDuplicate and leaves the stored goal as it was.
func (r *GoalRepository) Create(ctx context.Context, userID string, goal model.Goal) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO goals (user_id, id, name, daily_target_sessions, active, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		userID,
		goal.ID,
		goal.Name,
		goal.DailyTargetSessions,
		goal.Active,
		nowString(),
	)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("create goal: %w", err)
	}
	return nil
}

func (r *GoalRepository) Update(ctx context.Context, userID string, goal model.Goal) error {
	result, err := r.db.ExecContext(
		ctx,
		`UPDATE goals
		 SET name = ?,
		     daily_target_sessions = ?,
		     active = ?,
		     updated_at = ?
		 WHERE user_id = ? AND id = ?`,
		goal.Name,
		goal.DailyTargetSessions,
		goal.Active,
		nowString(),
		userID,
		goal.ID,
	)
	if err != nil {
		return fmt.Errorf("update goal: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update goal: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete reports whether a row was removed.
func (r *GoalRepository) Delete(ctx context.Context, userID, goalID string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE user_id = ? AND id = ?`, userID, goalID)
	if err != nil {
		return false, fmt.Errorf("delete goal: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete goal: %w", err)
	}
	return affected > 0, nil
}

func (r *GoalRepository) List(ctx context.Context, userID string) ([]model.Goal, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, name, daily_target_sessions, active
		 FROM goals
		 WHERE user_id = ?
		 ORDER BY seq ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	goals := make([]model.Goal, 0)
	for rows.Next() {
		var goal model.Goal
		if err := rows.Scan(&goal.ID, &goal.Name, &goal.DailyTargetSessions, &goal.Active); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		goals = append(goals, goal)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate goals: %w", err)
	}
	return goals, nil
}

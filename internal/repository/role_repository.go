package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"focusorbit/backend/internal/model"
)

type RoleRepository struct {
	db *sql.DB
}

func NewRoleRepository(db *sql.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) Get(ctx context.Context, userID string) (model.UserRole, error) {
	var role string
	err := r.db.QueryRowContext(ctx, `SELECT role FROM user_roles WHERE user_id = ?`, userID).Scan(&role)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get role: %w", err)
	}
	return model.UserRole(role), nil
}

func (r *RoleRepository) Set(ctx context.Context, userID string, role model.UserRole) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO user_roles (user_id, role, updated_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT (user_id) DO UPDATE SET
		     role = excluded.role,
		     updated_at = excluded.updated_at`,
		userID,
		string(role),
		nowString(),
	)
	if err != nil {
		return fmt.Errorf("set role: %w", err)
	}
	return nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"focusorbit/backend/internal/model"
)

type ProfileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Get(ctx context.Context, userID string) (*model.UserProfile, error) {
	var profile model.UserProfile
	var email sql.NullString
	err := r.db.QueryRowContext(
		ctx,
		`SELECT name, email FROM user_profiles WHERE user_id = ?`,
		userID,
	).Scan(&profile.Name, &email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if email.Valid {
		value := email.String
		profile.Email = &value
	}
	return &profile, nil
}

// Save overwrites the whole profile row; an absent email clears the column.
func (r *ProfileRepository) Save(ctx context.Context, userID string, profile model.UserProfile) error {
	var email interface{}
	if profile.Email != nil {
		email = *profile.Email
	}
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO user_profiles (user_id, name, email, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (user_id) DO UPDATE SET
		     name = excluded.name,
		     email = excluded.email,
		     updated_at = excluded.updated_at`,
		userID,
		profile.Name,
		email,
		nowString(),
	)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

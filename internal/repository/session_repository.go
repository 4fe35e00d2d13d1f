package repository

import (
	"context"
	"database/sql"
	"fmt"

	"focusorbit/backend/internal/model"
)

// SessionRepository is the append-only log of completed timer sessions.
type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// BeginTx starts a transaction that callers can thread through InsertTx and
// the Tx methods of other repositories sharing the same database.
func (r *SessionRepository) BeginTx(ctx context.Context) (*sql.Tx, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	return tx, nil
}

func (r *SessionRepository) Insert(ctx context.Context, userID string, session *model.SessionRecord) error {
	return insertSession(ctx, r.db, userID, session)
}

func (r *SessionRepository) InsertTx(ctx context.Context, tx *sql.Tx, userID string, session *model.SessionRecord) error {
	return insertSession(ctx, tx, userID, session)
}

// ListByDateRange returns the sessions whose date string falls in
// [startDate, endDate], oldest insert first. YYYY-MM-DD strings order the
// same way as the dates they name, so the comparison is done on text.
func (r *SessionRepository) ListByDateRange(ctx context.Context, userID, startDate, endDate string) ([]model.SessionRecord, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, duration, session_type, date_string, timestamp
		 FROM focus_sessions
		 WHERE user_id = ? AND date_string >= ? AND date_string <= ?
		 ORDER BY id ASC`,
		userID,
		startDate,
		endDate,
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]model.SessionRecord, 0)
	for rows.Next() {
		session, scanErr := scanSession(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		sessions = append(sessions, *session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}

	return sessions, nil
}

func (r *SessionRepository) DeleteAll(ctx context.Context, userID string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM focus_sessions WHERE user_id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("delete sessions: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete sessions: %w", err)
	}
	return deleted, nil
}

func insertSession(ctx context.Context, q Querier, userID string, session *model.SessionRecord) error {
	result, err := q.ExecContext(
		ctx,
		`INSERT INTO focus_sessions (user_id, duration, session_type, date_string, timestamp)
		 VALUES (?, ?, ?, ?, ?)`,
		userID,
		session.Duration,
		session.SessionType,
		session.DateString,
		session.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert session id: %w", err)
	}
	session.ID = id
	return nil
}

func scanSession(s scanner) (*model.SessionRecord, error) {
	var session model.SessionRecord
	if err := s.Scan(
		&session.ID,
		&session.Duration,
		&session.SessionType,
		&session.DateString,
		&session.Timestamp,
	); err != nil {
		return nil, fmt.Errorf("scan session: %w", err)
	}
	return &session, nil
}

package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	apperrors "focusorbit/backend/internal/errors"
	"focusorbit/backend/internal/metrics"
	"focusorbit/backend/internal/model"
	"focusorbit/backend/internal/repository"
)

const maxSummaryDays = 366

// FreezeEarner is the secondary bookkeeping call made after a milestone.
type FreezeEarner interface {
	EarnFreeze(ctx context.Context, userID string) *apperrors.APIError
}

type SessionService struct {
	repo       *repository.SessionRepository
	streakRepo *repository.StreakRepository
	earner     FreezeEarner
	logger     *zap.Logger
	now        func() time.Time
}

type LogSessionInput struct {
	Duration    int
	SessionType string
	DateString  string
}

type CompletionResult struct {
	SessionID    int64             `json:"sessionId"`
	Streak       *model.StreakData `json:"streak,omitempty"`
	EarnedFreeze bool              `json:"earnedFreeze"`
}

type DaySummary struct {
	Date          string `json:"date"`
	FocusSessions int    `json:"focusSessions"`
	FocusMinutes  int    `json:"focusMinutes"`
	BreakSessions int    `json:"breakSessions"`
}

type SessionSummary struct {
	StartDate          string       `json:"startDate"`
	EndDate            string       `json:"endDate"`
	Days               []DaySummary `json:"days"`
	TotalFocusSessions int          `json:"totalFocusSessions"`
	TotalFocusMinutes  int          `json:"totalFocusMinutes"`
	TotalBreakSessions int          `json:"totalBreakSessions"`
}

func NewSessionService(
	repo *repository.SessionRepository,
	streakRepo *repository.StreakRepository,
	earner FreezeEarner,
	logger *zap.Logger,
) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{
		repo:       repo,
		streakRepo: streakRepo,
		earner:     earner,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *SessionService) LogSession(ctx context.Context, userID string, input LogSessionInput) (int64, *apperrors.APIError) {
	session, apiErr := s.newRecord(userID, input)
	if apiErr != nil {
		return 0, apiErr
	}

	if err := s.repo.Insert(ctx, userID, session); err != nil {
		return 0, apperrors.Internal("failed to log session")
	}

	metrics.SessionLogged(session.SessionType)
	return session.ID, nil
}

// CompleteSession logs a finished session and, for a focus session, advances
// the streak with the session's date as today. Both writes commit together.
// A session dated before the streak's last active day is logged but leaves
// the streak as it was. The follow-up EarnFreeze after a milestone is best
// effort: its failure is logged and does not undo the committed streak.
func (s *SessionService) CompleteSession(ctx context.Context, userID string, input LogSessionInput) (*CompletionResult, *apperrors.APIError) {
	session, apiErr := s.newRecord(userID, input)
	if apiErr != nil {
		return nil, apiErr
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to start transaction")
	}
	defer tx.Rollback()

	if err := s.repo.InsertTx(ctx, tx, userID, session); err != nil {
		return nil, apperrors.Internal("failed to log session")
	}

	result := &CompletionResult{SessionID: session.ID}
	var welcomed bool
	if session.SessionType == model.SessionFocus {
		prev, err := s.streakRepo.GetTx(ctx, tx, userID)
		if errors.Is(err, repository.ErrNotFound) {
			prev = &model.StreakData{}
		} else if err != nil {
			return nil, apperrors.Internal("failed to get streak")
		}

		if session.DateString < prev.LastActiveDate {
			result.Streak = prev
		} else {
			next, earned, err := ApplyFocusCompletion(*prev, session.DateString)
			if err != nil {
				return nil, invalidDate("dateString")
			}
			next.Version = prev.Version + 1
			if err := s.streakRepo.SaveTx(ctx, tx, userID, &next); err != nil {
				return nil, apperrors.Internal("failed to save streak")
			}

			welcomed = prev.LastActiveDate == "" && prev.FreezeBalance == 0
			result.Streak = &next
			result.EarnedFreeze = earned
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, apperrors.Internal("failed to commit transaction")
	}

	metrics.SessionLogged(session.SessionType)
	if welcomed {
		metrics.FreezeGranted("welcome")
	}
	if result.EarnedFreeze {
		metrics.FreezeGranted("milestone")
		s.earnFreezeBestEffort(ctx, userID)
	}
	return result, nil
}

func (s *SessionService) earnFreezeBestEffort(ctx context.Context, userID string) {
	if s.earner == nil {
		return
	}
	if apiErr := s.earner.EarnFreeze(ctx, userID); apiErr != nil {
		metrics.BestEffortFailed("earn_freeze")
		s.logger.Warn("earn freeze failed after milestone",
			zap.String("user_id", userID),
			zap.String("code", apiErr.Code),
			zap.String("error", apiErr.Message),
		)
	}
}

// GetSessionsByDateRange returns an empty slice, not an error, when
// startDate sorts after endDate.
func (s *SessionService) GetSessionsByDateRange(ctx context.Context, userID, startDate, endDate string) ([]model.SessionRecord, *apperrors.APIError) {
	if startDate == "" || endDate == "" {
		return nil, apperrors.BadRequest("invalid_date", "start and end dates are required")
	}
	if startDate > endDate {
		return []model.SessionRecord{}, nil
	}

	sessions, err := s.repo.ListByDateRange(ctx, userID, startDate, endDate)
	if err != nil {
		return nil, apperrors.Internal("failed to list sessions")
	}
	return sessions, nil
}

func (s *SessionService) ClearAllSessions(ctx context.Context, userID string) *apperrors.APIError {
	if apiErr := requireIdentity(userID); apiErr != nil {
		return apiErr
	}

	deleted, err := s.repo.DeleteAll(ctx, userID)
	if err != nil {
		return apperrors.Internal("failed to clear sessions")
	}
	s.logger.Info("sessions cleared", zap.String("user_id", userID), zap.Int64("deleted", deleted))
	return nil
}

// Summarize buckets the sessions of [startDate, endDate] by calendar day.
// Every day in the range gets a bucket, active or not.
func (s *SessionService) Summarize(ctx context.Context, userID, startDate, endDate string) (*SessionSummary, *apperrors.APIError) {
	start, ok := parseDate(startDate)
	if !ok {
		return nil, invalidDate("start")
	}
	end, ok := parseDate(endDate)
	if !ok {
		return nil, invalidDate("end")
	}
	if end.Before(start) {
		return nil, apperrors.BadRequest("invalid_date", "start must not be after end")
	}
	if int(end.Sub(start).Hours()/24) >= maxSummaryDays {
		return nil, apperrors.BadRequest("invalid_date", "range must not exceed 366 days")
	}

	sessions, err := s.repo.ListByDateRange(ctx, userID, startDate, endDate)
	if err != nil {
		return nil, apperrors.Internal("failed to list sessions")
	}

	summary := &SessionSummary{StartDate: startDate, EndDate: endDate, Days: []DaySummary{}}
	index := make(map[string]int)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		date := day.Format(model.DateLayout)
		index[date] = len(summary.Days)
		summary.Days = append(summary.Days, DaySummary{Date: date})
	}

	for _, session := range sessions {
		i, ok := index[session.DateString]
		if !ok {
			continue
		}
		bucket := &summary.Days[i]
		if session.SessionType == model.SessionFocus {
			minutes := roundMinutes(session.Duration)
			bucket.FocusSessions++
			bucket.FocusMinutes += minutes
			summary.TotalFocusSessions++
			summary.TotalFocusMinutes += minutes
		} else {
			bucket.BreakSessions++
			summary.TotalBreakSessions++
		}
	}

	return summary, nil
}

func (s *SessionService) newRecord(userID string, input LogSessionInput) (*model.SessionRecord, *apperrors.APIError) {
	if apiErr := requireIdentity(userID); apiErr != nil {
		return nil, apiErr
	}
	if input.Duration <= 0 {
		return nil, apperrors.BadRequest("invalid_duration", "duration must be a positive number of seconds")
	}
	if !model.IsValidSessionType(input.SessionType) {
		return nil, apperrors.BadRequest("invalid_session_type", "sessionType must be one of focus, short_break, long_break")
	}
	if _, ok := parseDate(input.DateString); !ok {
		return nil, invalidDate("dateString")
	}

	return &model.SessionRecord{
		Duration:    input.Duration,
		SessionType: input.SessionType,
		DateString:  input.DateString,
		Timestamp:   s.now().UnixNano(),
	}, nil
}

func roundMinutes(seconds int) int {
	return (seconds + 30) / 60
}

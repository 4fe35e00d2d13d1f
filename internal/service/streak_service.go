package service

import (
	"context"
	"database/sql"
	"errors"

	apperrors "focusorbit/backend/internal/errors"
	"focusorbit/backend/internal/metrics"
	"focusorbit/backend/internal/model"
	"focusorbit/backend/internal/repository"
)

type StreakService struct {
	repo *repository.StreakRepository
}

// UpdateStreakInput carries the caller-computed record. BaseVersion zero
// means an unconditional overwrite; a positive value must match the stored
// version or the write is rejected.
type UpdateStreakInput struct {
	CurrentStreak   int
	LongestStreak   int
	LastActiveDate  string
	FreezeBalance   int
	FreezeUsedToday bool
	BaseVersion     int
}

func NewStreakService(repo *repository.StreakRepository) *StreakService {
	return &StreakService{repo: repo}
}

func (s *StreakService) GetStreakData(ctx context.Context, userID string) (*model.StreakData, *apperrors.APIError) {
	streak, err := s.repo.Get(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return &model.StreakData{}, nil
	}
	if err != nil {
		return nil, apperrors.Internal("failed to get streak")
	}
	return streak, nil
}

func (s *StreakService) GetFreezeBalance(ctx context.Context, userID string) (int, *apperrors.APIError) {
	streak, apiErr := s.GetStreakData(ctx, userID)
	if apiErr != nil {
		return 0, apiErr
	}
	return streak.FreezeBalance, nil
}

// UpdateStreak overwrites the record with the caller's values. Nothing is
// merged and longestStreak >= currentStreak is left to the caller.
func (s *StreakService) UpdateStreak(ctx context.Context, userID string, input UpdateStreakInput) (*model.StreakData, *apperrors.APIError) {
	if apiErr := requireIdentity(userID); apiErr != nil {
		return nil, apiErr
	}
	if input.CurrentStreak < 0 || input.LongestStreak < 0 || input.FreezeBalance < 0 {
		return nil, apperrors.BadRequest("invalid_streak", "streak counts and freeze balance must not be negative")
	}
	if input.LastActiveDate != "" {
		if _, ok := parseDate(input.LastActiveDate); !ok {
			return nil, invalidDate("lastActiveDate")
		}
	}
	if input.BaseVersion < 0 {
		return nil, apperrors.BadRequest("invalid_streak", "baseVersion must not be negative")
	}

	var result *model.StreakData
	apiErr := s.withStreak(ctx, userID, func(streak *model.StreakData) *apperrors.APIError {
		if input.BaseVersion > 0 && input.BaseVersion != streak.Version {
			current := *streak
			return apperrors.Conflict("streak_conflict", "streak changed since it was read", map[string]interface{}{
				"streak": current,
			})
		}

		streak.CurrentStreak = input.CurrentStreak
		streak.LongestStreak = input.LongestStreak
		streak.LastActiveDate = input.LastActiveDate
		streak.FreezeBalance = input.FreezeBalance
		streak.FreezeUsedToday = input.FreezeUsedToday
		result = streak
		return nil
	})
	if apiErr != nil {
		return nil, apiErr
	}
	return result, nil
}

func (s *StreakService) UseFreeze(ctx context.Context, userID string) (*model.StreakData, *apperrors.APIError) {
	if apiErr := requireIdentity(userID); apiErr != nil {
		return nil, apiErr
	}

	var result *model.StreakData
	apiErr := s.withStreak(ctx, userID, func(streak *model.StreakData) *apperrors.APIError {
		if streak.FreezeBalance <= 0 {
			return apperrors.BadRequest("no_freeze_available", "no streak freezes left")
		}
		streak.FreezeBalance--
		streak.FreezeUsedToday = true
		result = streak
		return nil
	})
	if apiErr != nil {
		return nil, apiErr
	}

	metrics.FreezeUsed()
	return result, nil
}

// EarnFreeze bumps the lifetime earned-freeze counter. It does not touch the
// balance. It is a no-op for an identity with no active day yet and for a
// repeat call on the same active day, so the best-effort call after a
// milestone can be retried safely.
func (s *StreakService) EarnFreeze(ctx context.Context, userID string) *apperrors.APIError {
	if apiErr := requireIdentity(userID); apiErr != nil {
		return apiErr
	}

	return s.withStreak(ctx, userID, func(streak *model.StreakData) *apperrors.APIError {
		if streak.LastActiveDate == "" || streak.LastEarnedDate == streak.LastActiveDate {
			return errUnchanged
		}
		streak.FreezesEarned++
		streak.LastEarnedDate = streak.LastActiveDate
		return nil
	})
}

// errUnchanged lets a withStreak mutation skip the write without reporting
// a failure to its caller.
var errUnchanged = &apperrors.APIError{Code: "unchanged"}

// withStreak loads the record (zero value when absent) inside a transaction,
// applies mutate and persists the result with the version bumped.
func (s *StreakService) withStreak(ctx context.Context, userID string, mutate func(*model.StreakData) *apperrors.APIError) *apperrors.APIError {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return apperrors.Internal("failed to start transaction")
	}
	defer tx.Rollback()

	streak, apiErr := s.loadTx(ctx, tx, userID)
	if apiErr != nil {
		return apiErr
	}

	if apiErr := mutate(streak); apiErr != nil {
		if apiErr == errUnchanged {
			return nil
		}
		return apiErr
	}

	streak.Version++
	if err := s.repo.SaveTx(ctx, tx, userID, streak); err != nil {
		return apperrors.Internal("failed to save streak")
	}

	if err := tx.Commit(); err != nil {
		return apperrors.Internal("failed to commit transaction")
	}
	return nil
}

func (s *StreakService) loadTx(ctx context.Context, tx *sql.Tx, userID string) (*model.StreakData, *apperrors.APIError) {
	streak, err := s.repo.GetTx(ctx, tx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return &model.StreakData{}, nil
	}
	if err != nil {
		return nil, apperrors.Internal("failed to get streak")
	}
	return streak, nil
}

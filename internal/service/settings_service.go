package service

import (
	"context"
	"errors"

	apperrors "focusorbit/backend/internal/errors"
	"focusorbit/backend/internal/model"
	"focusorbit/backend/internal/repository"
)

type SettingsService struct {
	repo *repository.SettingsRepository
}

func NewSettingsService(repo *repository.SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

// GetSettings never fails on absence: an identity without a stored record
// gets the defaults.
func (s *SettingsService) GetSettings(ctx context.Context, userID string) (*model.UserSettings, *apperrors.APIError) {
	settings, err := s.repo.Get(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		defaults := model.DefaultSettings()
		return &defaults, nil
	}
	if err != nil {
		return nil, apperrors.Internal("failed to get settings")
	}
	return settings, nil
}

func (s *SettingsService) SetSettings(ctx context.Context, userID string, settings model.UserSettings) (*model.UserSettings, *apperrors.APIError) {
	if apiErr := requireIdentity(userID); apiErr != nil {
		return nil, apiErr
	}
	if settings.FocusDuration <= 0 || settings.ShortBreakDuration <= 0 ||
		settings.LongBreakDuration <= 0 || settings.LongBreakInterval <= 0 {
		return nil, apperrors.BadRequest("invalid_settings", "all durations and the long break interval must be positive")
	}

	if err := s.repo.Save(ctx, userID, settings); err != nil {
		return nil, apperrors.Internal("failed to save settings")
	}
	return &settings, nil
}

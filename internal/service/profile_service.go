package service

import (
	"context"
	"errors"
	"strings"

	apperrors "focusorbit/backend/internal/errors"
	"focusorbit/backend/internal/model"
	"focusorbit/backend/internal/repository"
)

type ProfileService struct {
	repo *repository.ProfileRepository
}

func NewProfileService(repo *repository.ProfileRepository) *ProfileService {
	return &ProfileService{repo: repo}
}

// GetProfile returns nil, nil when the identity never saved a profile. Any
// caller may read any identity's profile.
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*model.UserProfile, *apperrors.APIError) {
	if strings.TrimSpace(userID) == "" {
		return nil, nil
	}
	profile, err := s.repo.Get(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Internal("failed to get profile")
	}
	return profile, nil
}

func (s *ProfileService) SaveProfile(ctx context.Context, userID string, profile model.UserProfile) (*model.UserProfile, *apperrors.APIError) {
	if apiErr := requireIdentity(userID); apiErr != nil {
		return nil, apiErr
	}

	profile.Name = strings.TrimSpace(profile.Name)
	if profile.Name == "" {
		return nil, apperrors.BadRequest("invalid_name", "name is required")
	}
	if profile.Email != nil {
		email := strings.TrimSpace(*profile.Email)
		if email == "" {
			profile.Email = nil
		} else {
			profile.Email = &email
		}
	}

	if err := s.repo.Save(ctx, userID, profile); err != nil {
		return nil, apperrors.Internal("failed to save profile")
	}
	return &profile, nil
}

package service

import (
	"context"
	"errors"
	"strings"

	apperrors "focusorbit/backend/internal/errors"
	"focusorbit/backend/internal/model"
	"focusorbit/backend/internal/repository"
)

type RoleService struct {
	repo *repository.RoleRepository
}

func NewRoleService(repo *repository.RoleRepository) *RoleService {
	return &RoleService{repo: repo}
}

// GetCallerUserRole reports guest for an anonymous caller and user for an
// identity that was never assigned a role.
func (s *RoleService) GetCallerUserRole(ctx context.Context, userID string) (model.UserRole, *apperrors.APIError) {
	if strings.TrimSpace(userID) == "" {
		return model.RoleGuest, nil
	}
	role, err := s.repo.Get(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return model.RoleUser, nil
	}
	if err != nil {
		return "", apperrors.Internal("failed to get role")
	}
	return role, nil
}

func (s *RoleService) IsCallerAdmin(ctx context.Context, userID string) (bool, *apperrors.APIError) {
	role, apiErr := s.GetCallerUserRole(ctx, userID)
	if apiErr != nil {
		return false, apiErr
	}
	return role == model.RoleAdmin, nil
}

func (s *RoleService) AssignCallerUserRole(ctx context.Context, actingID, targetID string, role model.UserRole) *apperrors.APIError {
	if apiErr := requireIdentity(actingID); apiErr != nil {
		return apiErr
	}
	if strings.TrimSpace(targetID) == "" {
		return apperrors.BadRequest("invalid_role", "target identity is required")
	}
	if !role.Valid() {
		return apperrors.BadRequest("invalid_role", "role must be one of admin, user, guest")
	}

	isAdmin, apiErr := s.IsCallerAdmin(ctx, actingID)
	if apiErr != nil {
		return apiErr
	}
	if !isAdmin {
		return apperrors.Forbidden("only admins can assign roles")
	}

	return s.Grant(ctx, targetID, role)
}

// Grant stores a role without an admin check. It exists for operator
// tooling that bootstraps the first admin.
func (s *RoleService) Grant(ctx context.Context, userID string, role model.UserRole) *apperrors.APIError {
	if !role.Valid() {
		return apperrors.BadRequest("invalid_role", "role must be one of admin, user, guest")
	}
	if err := s.repo.Set(ctx, userID, role); err != nil {
		return apperrors.Internal("failed to assign role")
	}
	return nil
}

package service

import (
	"context"
	"errors"
	"strings"

	apperrors "focusorbit/backend/internal/errors"
	"focusorbit/backend/internal/model"
	"focusorbit/backend/internal/repository"
)

type GoalService struct {
	repo        *repository.GoalRepository
	sessionRepo *repository.SessionRepository
}

type GoalProgress struct {
	Goal      model.Goal `json:"goal"`
	Completed int        `json:"completed"`
	Met       bool       `json:"met"`
}

type DailyGoalProgress struct {
	Date          string         `json:"date"`
	FocusSessions int            `json:"focusSessions"`
	Goals         []GoalProgress `json:"goals"`
}

func NewGoalService(repo *repository.GoalRepository, sessionRepo *repository.SessionRepository) *GoalService {
	return &GoalService{repo: repo, sessionRepo: sessionRepo}
}

func (s *GoalService) AddGoal(ctx context.Context, userID, id, name string, dailyTargetSessions int) (*model.Goal, *apperrors.APIError) {
	if apiErr := requireIdentity(userID); apiErr != nil {
		return nil, apiErr
	}
	goal, apiErr := validateGoal(id, name, dailyTargetSessions, true)
	if apiErr != nil {
		return nil, apiErr
	}

	err := s.repo.Create(ctx, userID, goal)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, apperrors.Conflict("goal_exists", "a goal with this id already exists", nil)
	}
	if err != nil {
		return nil, apperrors.Internal("failed to add goal")
	}
	return &goal, nil
}

func (s *GoalService) UpdateGoal(ctx context.Context, userID, id, name string, dailyTargetSessions int, active bool) (*model.Goal, *apperrors.APIError) {
	if apiErr := requireIdentity(userID); apiErr != nil {
		return nil, apiErr
	}
	goal, apiErr := validateGoal(id, name, dailyTargetSessions, active)
	if apiErr != nil {
		return nil, apiErr
	}

	err := s.repo.Update(ctx, userID, goal)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("goal_not_found", "goal not found")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to update goal")
	}
	return &goal, nil
}

// DeleteGoal is idempotent: removing an id that does not exist succeeds.
func (s *GoalService) DeleteGoal(ctx context.Context, userID, id string) *apperrors.APIError {
	if apiErr := requireIdentity(userID); apiErr != nil {
		return apiErr
	}
	if _, err := s.repo.Delete(ctx, userID, id); err != nil {
		return apperrors.Internal("failed to delete goal")
	}
	return nil
}

// GetAllGoals lists the caller's goals in the order they were added.
func (s *GoalService) GetAllGoals(ctx context.Context, userID string) ([]model.Goal, *apperrors.APIError) {
	goals, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to list goals")
	}
	return goals, nil
}

// Progress counts the focus sessions logged on date against every active
// goal's daily target.
func (s *GoalService) Progress(ctx context.Context, userID, date string) (*DailyGoalProgress, *apperrors.APIError) {
	if _, ok := parseDate(date); !ok {
		return nil, invalidDate("date")
	}

	goals, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to list goals")
	}
	sessions, err := s.sessionRepo.ListByDateRange(ctx, userID, date, date)
	if err != nil {
		return nil, apperrors.Internal("failed to list sessions")
	}

	focus := 0
	for _, session := range sessions {
		if session.SessionType == model.SessionFocus {
			focus++
		}
	}

	progress := &DailyGoalProgress{Date: date, FocusSessions: focus, Goals: []GoalProgress{}}
	for _, goal := range goals {
		if !goal.Active {
			continue
		}
		progress.Goals = append(progress.Goals, GoalProgress{
			Goal:      goal,
			Completed: focus,
			Met:       focus >= goal.DailyTargetSessions,
		})
	}
	return progress, nil
}

func validateGoal(id, name string, dailyTargetSessions int, active bool) (model.Goal, *apperrors.APIError) {
	name = strings.TrimSpace(name)
	if strings.TrimSpace(id) == "" {
		return model.Goal{}, apperrors.BadRequest("invalid_goal", "goal id is required")
	}
	if name == "" {
		return model.Goal{}, apperrors.BadRequest("invalid_goal", "goal name is required")
	}
	if dailyTargetSessions <= 0 {
		return model.Goal{}, apperrors.BadRequest("invalid_goal", "dailyTargetSessions must be positive")
	}
	return model.Goal{
		ID:                  id,
		Name:                name,
		DailyTargetSessions: dailyTargetSessions,
		Active:              active,
	}, nil
}

package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusorbit/backend/internal/model"
	"focusorbit/backend/internal/repository"
)

func newGoalFixture(t *testing.T) (*GoalService, *SessionService) {
	t.Helper()
	database := newTestDB(t)
	sessionRepo := repository.NewSessionRepository(database)
	goals := NewGoalService(repository.NewGoalRepository(database), sessionRepo)
	sessions := NewSessionService(sessionRepo, repository.NewStreakRepository(database), nil, nil)
	return goals, sessions
}

func TestAddGoalRejectsDuplicateWithoutChanges(t *testing.T) {
	goals, _ := newGoalFixture(t)
	ctx := context.Background()

	added, apiErr := goals.AddGoal(ctx, "u", "read", "  Read  ", 3)
	require.Nil(t, apiErr)
	assert.Equal(t, model.Goal{ID: "read", Name: "Read", DailyTargetSessions: 3, Active: true}, *added)

	_, apiErr = goals.AddGoal(ctx, "u", "read", "Something else", 9)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "goal_exists", apiErr.Code)

	// The same id belongs to each identity separately.
	_, apiErr = goals.AddGoal(ctx, "v", "read", "Read", 1)
	require.Nil(t, apiErr)

	list, apiErr := goals.GetAllGoals(ctx, "u")
	require.Nil(t, apiErr)
	assert.Equal(t, []model.Goal{{ID: "read", Name: "Read", DailyTargetSessions: 3, Active: true}}, list)
}

func TestAddGoalValidation(t *testing.T) {
	goals, _ := newGoalFixture(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		userID string
		id     string
		goal   string
		target int
		code   string
	}{
		{"no identity", "", "g", "Goal", 1, "unauthorized"},
		{"blank id", "u", "  ", "Goal", 1, "invalid_goal"},
		{"blank name", "u", "g", "   ", 1, "invalid_goal"},
		{"zero target", "u", "g", "Goal", 0, "invalid_goal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, apiErr := goals.AddGoal(ctx, tt.userID, tt.id, tt.goal, tt.target)
			require.NotNil(t, apiErr)
			assert.Equal(t, tt.code, apiErr.Code)
		})
	}

	list, _ := goals.GetAllGoals(ctx, "u")
	assert.Empty(t, list)
}

func TestUpdateGoal(t *testing.T) {
	goals, _ := newGoalFixture(t)
	ctx := context.Background()

	_, apiErr := goals.UpdateGoal(ctx, "u", "missing", "Name", 1, true)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "goal_not_found", apiErr.Code)

	_, apiErr = goals.AddGoal(ctx, "u", "g1", "First", 2)
	require.Nil(t, apiErr)
	_, apiErr = goals.AddGoal(ctx, "u", "g2", "Second", 2)
	require.Nil(t, apiErr)

	updated, apiErr := goals.UpdateGoal(ctx, "u", "g1", "First, renamed", 4, false)
	require.Nil(t, apiErr)
	assert.False(t, updated.Active)

	_, apiErr = goals.UpdateGoal(ctx, "u", "g2", "", 4, true)
	require.NotNil(t, apiErr)
	assert.Equal(t, "invalid_goal", apiErr.Code)

	list, _ := goals.GetAllGoals(ctx, "u")
	assert.Equal(t, []model.Goal{
		{ID: "g1", Name: "First, renamed", DailyTargetSessions: 4, Active: false},
		{ID: "g2", Name: "Second", DailyTargetSessions: 2, Active: true},
	}, list)
}

func TestDeleteGoalIsIdempotent(t *testing.T) {
	goals, _ := newGoalFixture(t)
	ctx := context.Background()

	require.Nil(t, goals.DeleteGoal(ctx, "u", "never-existed"))

	_, apiErr := goals.AddGoal(ctx, "u", "g1", "Goal", 1)
	require.Nil(t, apiErr)
	require.Nil(t, goals.DeleteGoal(ctx, "u", "g1"))
	require.Nil(t, goals.DeleteGoal(ctx, "u", "g1"))

	list, _ := goals.GetAllGoals(ctx, "u")
	assert.Empty(t, list)

	// Re-adding after delete keeps insertion order with later goals.
	_, apiErr = goals.AddGoal(ctx, "u", "g2", "Later", 1)
	require.Nil(t, apiErr)
	_, apiErr = goals.AddGoal(ctx, "u", "g1", "Again", 1)
	require.Nil(t, apiErr)
	list, _ = goals.GetAllGoals(ctx, "u")
	require.Len(t, list, 2)
	assert.Equal(t, "g2", list[0].ID)
	assert.Equal(t, "g1", list[1].ID)

	assert.NotNil(t, goals.DeleteGoal(ctx, "", "g1"))
}

func TestGoalProgress(t *testing.T) {
	goals, sessions := newGoalFixture(t)
	ctx := context.Background()

	_, apiErr := goals.AddGoal(ctx, "u", "two", "Two a day", 2)
	require.Nil(t, apiErr)
	_, apiErr = goals.AddGoal(ctx, "u", "four", "Four a day", 4)
	require.Nil(t, apiErr)
	_, apiErr = goals.AddGoal(ctx, "u", "paused", "Paused", 1)
	require.Nil(t, apiErr)
	_, apiErr = goals.UpdateGoal(ctx, "u", "paused", "Paused", 1, false)
	require.Nil(t, apiErr)

	for _, input := range []LogSessionInput{
		{Duration: 1500, SessionType: model.SessionFocus, DateString: "2026-04-01"},
		{Duration: 300, SessionType: model.SessionShortBreak, DateString: "2026-04-01"},
		{Duration: 1500, SessionType: model.SessionFocus, DateString: "2026-04-01"},
		{Duration: 1500, SessionType: model.SessionFocus, DateString: "2026-04-02"},
	} {
		_, apiErr := sessions.LogSession(ctx, "u", input)
		require.Nil(t, apiErr)
	}

	progress, apiErr := goals.Progress(ctx, "u", "2026-04-01")
	require.Nil(t, apiErr)
	assert.Equal(t, 2, progress.FocusSessions)
	require.Len(t, progress.Goals, 2)
	assert.Equal(t, "two", progress.Goals[0].Goal.ID)
	assert.True(t, progress.Goals[0].Met)
	assert.Equal(t, "four", progress.Goals[1].Goal.ID)
	assert.False(t, progress.Goals[1].Met)

	_, apiErr = goals.Progress(ctx, "u", "")
	require.NotNil(t, apiErr)
	assert.Equal(t, "invalid_date", apiErr.Code)
}

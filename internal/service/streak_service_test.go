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

func newStreakService(t *testing.T) *StreakService {
	t.Helper()
	return NewStreakService(repository.NewStreakRepository(newTestDB(t)))
}

func TestGetStreakDataDefaults(t *testing.T) {
	svc := newStreakService(t)

	streak, apiErr := svc.GetStreakData(context.Background(), "user-1")
	require.Nil(t, apiErr)
	assert.Equal(t, model.StreakData{}, *streak)

	balance, apiErr := svc.GetFreezeBalance(context.Background(), "user-1")
	require.Nil(t, apiErr)
	assert.Zero(t, balance)
}

func TestUpdateStreakOverwrites(t *testing.T) {
	svc := newStreakService(t)
	ctx := context.Background()

	_, apiErr := svc.UpdateStreak(ctx, "user-1", UpdateStreakInput{CurrentStreak: 8, LongestStreak: 8, LastActiveDate: "2026-04-01", FreezeBalance: 4})
	require.Nil(t, apiErr)

	// longest < current is stored as given.
	stored, apiErr := svc.UpdateStreak(ctx, "user-1", UpdateStreakInput{CurrentStreak: 3, LongestStreak: 1, LastActiveDate: "2026-04-02"})
	require.Nil(t, apiErr)
	assert.Equal(t, 2, stored.Version)

	got, apiErr := svc.GetStreakData(ctx, "user-1")
	require.Nil(t, apiErr)
	assert.Equal(t, 3, got.CurrentStreak)
	assert.Equal(t, 1, got.LongestStreak)
	assert.Equal(t, 0, got.FreezeBalance)
	assert.Equal(t, "2026-04-02", got.LastActiveDate)
}

func TestUpdateStreakValidation(t *testing.T) {
	svc := newStreakService(t)
	ctx := context.Background()

	_, apiErr := svc.UpdateStreak(ctx, "", UpdateStreakInput{})
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)

	_, apiErr = svc.UpdateStreak(ctx, "user-1", UpdateStreakInput{CurrentStreak: -1})
	require.NotNil(t, apiErr)
	assert.Equal(t, "invalid_streak", apiErr.Code)

	_, apiErr = svc.UpdateStreak(ctx, "user-1", UpdateStreakInput{LastActiveDate: "2026-13-01"})
	require.NotNil(t, apiErr)
	assert.Equal(t, "invalid_date", apiErr.Code)

	got, apiErr := svc.GetStreakData(ctx, "user-1")
	require.Nil(t, apiErr)
	assert.Equal(t, model.StreakData{}, *got)
}

func TestUpdateStreakStaleVersionLeavesRecord(t *testing.T) {
	svc := newStreakService(t)
	ctx := context.Background()

	first, apiErr := svc.UpdateStreak(ctx, "user-1", UpdateStreakInput{CurrentStreak: 2, LongestStreak: 2, LastActiveDate: "2026-04-01"})
	require.Nil(t, apiErr)
	_, apiErr = svc.UpdateStreak(ctx, "user-1", UpdateStreakInput{CurrentStreak: 3, LongestStreak: 3, LastActiveDate: "2026-04-02", BaseVersion: first.Version})
	require.Nil(t, apiErr)

	_, apiErr = svc.UpdateStreak(ctx, "user-1", UpdateStreakInput{CurrentStreak: 99, LongestStreak: 99, BaseVersion: first.Version})
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "streak_conflict", apiErr.Code)

	details, ok := apiErr.Details.(map[string]interface{})
	require.True(t, ok)
	current, ok := details["streak"].(model.StreakData)
	require.True(t, ok)
	assert.Equal(t, 3, current.CurrentStreak)

	got, apiErr := svc.GetStreakData(ctx, "user-1")
	require.Nil(t, apiErr)
	assert.Equal(t, 3, got.CurrentStreak)
	assert.Equal(t, 2, got.Version)
}

func TestUseFreeze(t *testing.T) {
	svc := newStreakService(t)
	ctx := context.Background()

	_, apiErr := svc.UseFreeze(ctx, "user-1")
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "no_freeze_available", apiErr.Code)

	_, apiErr = svc.UpdateStreak(ctx, "user-1", UpdateStreakInput{CurrentStreak: 5, LongestStreak: 5, LastActiveDate: "2026-04-01", FreezeBalance: 1})
	require.Nil(t, apiErr)

	streak, apiErr := svc.UseFreeze(ctx, "user-1")
	require.Nil(t, apiErr)
	assert.Equal(t, 0, streak.FreezeBalance)
	assert.True(t, streak.FreezeUsedToday)
	assert.Equal(t, 5, streak.CurrentStreak)

	_, apiErr = svc.UseFreeze(ctx, "user-1")
	require.NotNil(t, apiErr)

	got, _ := svc.GetStreakData(ctx, "user-1")
	assert.Equal(t, 0, got.FreezeBalance)
}

func TestEarnFreezeCountsOncePerActiveDay(t *testing.T) {
	svc := newStreakService(t)
	ctx := context.Background()

	_, apiErr := svc.UpdateStreak(ctx, "user-1", UpdateStreakInput{CurrentStreak: 21, LongestStreak: 21, LastActiveDate: "2026-04-21", FreezeBalance: 3})
	require.Nil(t, apiErr)

	require.Nil(t, svc.EarnFreeze(ctx, "user-1"))
	require.Nil(t, svc.EarnFreeze(ctx, "user-1"))

	got, _ := svc.GetStreakData(ctx, "user-1")
	assert.Equal(t, 1, got.FreezesEarned)
	assert.Equal(t, 3, got.FreezeBalance)

	_, apiErr = svc.UpdateStreak(ctx, "user-1", UpdateStreakInput{CurrentStreak: 42, LongestStreak: 42, LastActiveDate: "2026-05-12", FreezeBalance: 4})
	require.Nil(t, apiErr)
	require.Nil(t, svc.EarnFreeze(ctx, "user-1"))

	got, _ = svc.GetStreakData(ctx, "user-1")
	assert.Equal(t, 2, got.FreezesEarned)

	assert.NotNil(t, svc.EarnFreeze(ctx, ""))
}

func TestEarnFreezeWithoutActiveDayIsNoop(t *testing.T) {
	svc := newStreakService(t)
	ctx := context.Background()

	require.Nil(t, svc.EarnFreeze(ctx, "cold"))
	require.Nil(t, svc.EarnFreeze(ctx, "cold"))

	got, apiErr := svc.GetStreakData(ctx, "cold")
	require.Nil(t, apiErr)
	assert.Equal(t, model.StreakData{}, *got)
}

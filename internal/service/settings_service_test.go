package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusorbit/backend/internal/model"
	"focusorbit/backend/internal/repository"
)

func TestSettingsDefaultsAndReplace(t *testing.T) {
	svc := NewSettingsService(repository.NewSettingsRepository(newTestDB(t)))
	ctx := context.Background()

	got, apiErr := svc.GetSettings(ctx, "u")
	require.Nil(t, apiErr)
	assert.Equal(t, model.UserSettings{FocusDuration: 25, ShortBreakDuration: 5, LongBreakDuration: 15, LongBreakInterval: 4}, *got)

	want := model.UserSettings{FocusDuration: 50, ShortBreakDuration: 10, LongBreakDuration: 20, LongBreakInterval: 3}
	_, apiErr = svc.SetSettings(ctx, "u", want)
	require.Nil(t, apiErr)

	got, apiErr = svc.GetSettings(ctx, "u")
	require.Nil(t, apiErr)
	assert.Equal(t, want, *got)

	other, apiErr := svc.GetSettings(ctx, "v")
	require.Nil(t, apiErr)
	assert.Equal(t, model.DefaultSettings(), *other)
}

func TestSetSettingsRejectsNonPositive(t *testing.T) {
	svc := NewSettingsService(repository.NewSettingsRepository(newTestDB(t)))
	ctx := context.Background()

	for _, bad := range []model.UserSettings{
		{FocusDuration: 0, ShortBreakDuration: 5, LongBreakDuration: 15, LongBreakInterval: 4},
		{FocusDuration: 25, ShortBreakDuration: -1, LongBreakDuration: 15, LongBreakInterval: 4},
		{FocusDuration: 25, ShortBreakDuration: 5, LongBreakDuration: 0, LongBreakInterval: 4},
		{FocusDuration: 25, ShortBreakDuration: 5, LongBreakDuration: 15, LongBreakInterval: 0},
	} {
		_, apiErr := svc.SetSettings(ctx, "u", bad)
		require.NotNil(t, apiErr)
		assert.Equal(t, "invalid_settings", apiErr.Code)
	}

	got, _ := svc.GetSettings(ctx, "u")
	assert.Equal(t, model.DefaultSettings(), *got)

	_, apiErr := svc.SetSettings(ctx, "", model.DefaultSettings())
	assert.NotNil(t, apiErr)
}

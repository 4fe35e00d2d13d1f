package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusorbit/backend/internal/model"
	"focusorbit/backend/internal/repository"
)

func strPtr(value string) *string {
	return &value
}

func TestProfileRoundTrip(t *testing.T) {
	svc := NewProfileService(repository.NewProfileRepository(newTestDB(t)))
	ctx := context.Background()

	profile, apiErr := svc.GetProfile(ctx, "u")
	require.Nil(t, apiErr)
	assert.Nil(t, profile)

	saved, apiErr := svc.SaveProfile(ctx, "u", model.UserProfile{Name: "  Grace ", Email: strPtr(" grace@example.com ")})
	require.Nil(t, apiErr)
	assert.Equal(t, "Grace", saved.Name)
	require.NotNil(t, saved.Email)
	assert.Equal(t, "grace@example.com", *saved.Email)

	// A later save without email clears it.
	_, apiErr = svc.SaveProfile(ctx, "u", model.UserProfile{Name: "Grace", Email: strPtr("   ")})
	require.Nil(t, apiErr)

	profile, apiErr = svc.GetProfile(ctx, "u")
	require.Nil(t, apiErr)
	require.NotNil(t, profile)
	assert.Equal(t, "Grace", profile.Name)
	assert.Nil(t, profile.Email)

	other, apiErr := svc.GetProfile(ctx, "v")
	require.Nil(t, apiErr)
	assert.Nil(t, other)
}

func TestSaveProfileValidation(t *testing.T) {
	svc := NewProfileService(repository.NewProfileRepository(newTestDB(t)))
	ctx := context.Background()

	_, apiErr := svc.SaveProfile(ctx, "u", model.UserProfile{Name: "   "})
	require.NotNil(t, apiErr)
	assert.Equal(t, "invalid_name", apiErr.Code)

	_, apiErr = svc.SaveProfile(ctx, "", model.UserProfile{Name: "Anon"})
	require.NotNil(t, apiErr)
	assert.Equal(t, "unauthorized", apiErr.Code)

	profile, _ := svc.GetProfile(ctx, "u")
	assert.Nil(t, profile)
}

package main

import (
	"bytes"
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusorbit/backend/internal/model"
	"focusorbit/backend/internal/repository"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestMigrateAndRoleCommands(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "focus.db")

	out, err := runCLI(t, "--db", dbPath, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "migrations applied successfully")

	err = withDatabase(context.Background(), &globalFlags{dbPath: dbPath}, nil, func(database *sql.DB) error {
		now := time.Now().UTC()
		return repository.NewUserRepository(database).Create(context.Background(), &model.User{
			ID:           "u-1",
			Email:        "ops@example.com",
			PasswordHash: "x",
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	})
	require.NoError(t, err)

	out, err = runCLI(t, "--db", dbPath, "role", "show", "u-1")
	require.NoError(t, err)
	assert.Equal(t, "user\n", out)

	out, err = runCLI(t, "--db", dbPath, "role", "assign", "u-1", "admin")
	require.NoError(t, err)
	assert.Equal(t, "u-1 is now admin\n", out)

	out, err = runCLI(t, "--db", dbPath, "role", "show", "u-1")
	require.NoError(t, err)
	assert.Equal(t, "admin\n", out)
}

func TestRoleAssignRejectsUnknownUserAndRole(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "focus.db")

	_, err := runCLI(t, "--db", dbPath, "role", "assign", "nobody", "admin")
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = runCLI(t, "--db", dbPath, "role", "assign")
	require.Error(t, err)
}

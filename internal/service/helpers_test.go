package service

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"focusorbit/backend/internal/db"
	"focusorbit/backend/migrations"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "service.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = database.Close()
	})
	require.NoError(t, db.RunMigrations(context.Background(), database, migrations.FS, nil))
	return database
}

func dayAfter(t *testing.T, date string, days int) string {
	t.Helper()
	parsed, ok := parseDate(date)
	require.True(t, ok, "bad date %q", date)
	return parsed.AddDate(0, 0, days).Format("2006-01-02")
}

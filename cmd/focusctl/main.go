package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"focusorbit/backend/internal/config"
	"focusorbit/backend/internal/db"
	"focusorbit/backend/internal/logging"
	"focusorbit/backend/internal/model"
	"focusorbit/backend/internal/repository"
	"focusorbit/backend/internal/service"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type globalFlags struct {
	dbPath        string
	migrationsDir string
}

func newRootCmd() *cobra.Command {
	cfg := config.Load()
	flags := &globalFlags{dbPath: cfg.DBPath, migrationsDir: cfg.MigrationsDir}

	root := &cobra.Command{
		Use:           "focusctl",
		Short:         "Operator tooling for the FocusOrbit backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.dbPath, "db", flags.dbPath, "SQLite database path")
	root.PersistentFlags().StringVar(&flags.migrationsDir, "migrations", flags.migrationsDir, "migrations directory (empty uses the embedded set)")

	root.AddCommand(newMigrateCmd(flags, cfg))
	root.AddCommand(newRoleCmd(flags, cfg))
	return root
}

func newMigrateCmd(flags *globalFlags, cfg config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := logging.New(cfg.Env, cfg.LogLevel)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			return withDatabase(cmd.Context(), flags, logger, func(*sql.DB) error {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "migrations applied successfully")
				return err
			})
		},
	}
}

func newRoleCmd(flags *globalFlags, cfg config.Config) *cobra.Command {
	role := &cobra.Command{Use: "role", Short: "Inspect and assign user roles"}

	role.AddCommand(&cobra.Command{
		Use:   "assign <user-id> <role>",
		Short: "Assign a role without an admin check (bootstraps the first admin)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(cmd.Context(), flags, zap.NewNop(), func(database *sql.DB) error {
				return assignRole(cmd.Context(), cmd.OutOrStdout(), database, args[0], model.UserRole(args[1]))
			})
		},
	})

	role.AddCommand(&cobra.Command{
		Use:   "show <user-id>",
		Short: "Print the effective role of a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(cmd.Context(), flags, zap.NewNop(), func(database *sql.DB) error {
				return showRole(cmd.Context(), cmd.OutOrStdout(), database, args[0])
			})
		},
	})

	return role
}

func assignRole(ctx context.Context, out io.Writer, database *sql.DB, userID string, role model.UserRole) error {
	if _, err := repository.NewUserRepository(database).GetByID(ctx, userID); err != nil {
		return fmt.Errorf("look up user %s: %w", userID, err)
	}
	if apiErr := service.NewRoleService(repository.NewRoleRepository(database)).Grant(ctx, userID, role); apiErr != nil {
		return apiErr
	}
	_, err := fmt.Fprintf(out, "%s is now %s\n", userID, role)
	return err
}

func showRole(ctx context.Context, out io.Writer, database *sql.DB, userID string) error {
	role, apiErr := service.NewRoleService(repository.NewRoleRepository(database)).GetCallerUserRole(ctx, userID)
	if apiErr != nil {
		return apiErr
	}
	_, err := fmt.Fprintln(out, role)
	return err
}

// withDatabase opens the store, brings the schema up to date and hands the
// connection to fn.
func withDatabase(ctx context.Context, flags *globalFlags, logger *zap.Logger, fn func(*sql.DB) error) error {
	if ctx == nil {
		ctx = context.Background()
	}

	database, err := db.OpenSQLite(flags.dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer database.Close()

	if err := db.RunMigrations(ctx, database, db.MigrationSource(flags.migrationsDir), logger); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return fn(database)
}

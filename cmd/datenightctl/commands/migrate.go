package commands

import (
	"fmt"

	"github.com/benvon/date-night/internal/database"
	"github.com/spf13/cobra"
)

// NewMigrateCmd creates the migrate command with up, down and version subcommands.
func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database schema migrations",
		Long:  "Apply or roll back the SQL migrations under MIGRATIONS_PATH.",
	}
	cmd.AddCommand(newMigrateRunCmd("up", "Apply all pending migrations", (*database.Migrator).Up))
	cmd.AddCommand(newMigrateRunCmd("down", "Roll back the latest migration", (*database.Migrator).Down))
	cmd.AddCommand(newMigrateVersionCmd())
	return cmd
}

func openMigrator() (*database.Migrator, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.DatabaseEnabled() {
		return nil, errDatabaseRequired
	}
	m, err := database.NewMigrator(cfg.DatabaseURL, cfg.MigrationsPath)
	if err != nil {
		return nil, fmt.Errorf("open migrations: %w", err)
	}
	return m, nil
}

func newMigrateRunCmd(use, short string, run func(*database.Migrator) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := openMigrator()
			if err != nil {
				return err
			}
			defer func() { _ = m.Close() }()

			if err := run(m); err != nil {
				return err
			}
			return printVersion(cmd, m)
		},
	}
}

func newMigrateVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := openMigrator()
			if err != nil {
				return err
			}
			defer func() { _ = m.Close() }()
			return printVersion(cmd, m)
		},
	}
}

func printVersion(cmd *cobra.Command, m *database.Migrator) error {
	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	if dirty {
		fmt.Fprintf(cmd.OutOrStdout(), "Schema version: %d (dirty)\n", version)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Schema version: %d\n", version)
	return nil
}

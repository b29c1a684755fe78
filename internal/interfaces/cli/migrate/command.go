package migrate

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/assistitk12/assistitk12/internal/infrastructure/database"
	"github.com/assistitk12/assistitk12/internal/infrastructure/migration"
	"github.com/assistitk12/assistitk12/internal/interfaces/cli/bootstrap"
	"github.com/assistitk12/assistitk12/internal/shared/logger"
)

var (
	env        string
	configPath string
	name       string
	steps      int
	dialect    string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations including running migrations, checking status, and creating new migration files.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
		newCreateCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		Long:  `Apply all pending database migrations with the configured strategy.`,
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		Long:  `Rollback a specified number of database migrations.`,
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		Long:  `Display the current migration version and, for goose, every known migration.`,
		RunE:  runStatus,
	}
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new goose migration",
		Long:  `Create a timestamped SQL migration file for one dialect.`,
		RunE:  runCreate,
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Name of the migration (required)")
	cmd.Flags().StringVar(&dialect, "dialect", "mysql", "Script directory to write into (mysql, sqlite3)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func initManager() (*migration.Manager, logger.Interface, error) {
	cfg, log, err := bootstrap.EnvWithDatabase(env, configPath)
	if err != nil {
		return nil, nil, err
	}

	manager, err := migration.NewManager(&cfg.Database, log)
	if err != nil {
		database.Close()
		return nil, nil, err
	}
	return manager, log, nil
}

func runUp(cmd *cobra.Command, args []string) error {
	manager, log, err := initManager()
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("running up migrations", "environment", env, "strategy", manager.Strategy().Name())

	if err := manager.Up(cmd.Context(), database.Get()); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Infow("migrations completed successfully")
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	manager, log, err := initManager()
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("running down migrations", "environment", env, "steps", steps)

	if err := manager.Down(cmd.Context(), database.Get(), steps); err != nil {
		return fmt.Errorf("down migration failed: %w", err)
	}

	log.Infow("down migration completed successfully")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	manager, _, err := initManager()
	if err != nil {
		return err
	}
	defer database.Close()

	version, err := manager.Version(cmd.Context(), database.Get())
	if err != nil {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nMigration Status:\n")
	fmt.Fprintf(out, "  Environment:     %s\n", env)
	fmt.Fprintf(out, "  Strategy:        %s\n", manager.Strategy().Name())
	fmt.Fprintf(out, "  Current Version: %d\n", version)

	goose, ok := manager.Strategy().(*migration.GooseStrategy)
	if !ok {
		return nil
	}

	statuses, err := goose.Status(cmd.Context(), database.Get())
	if err != nil {
		return fmt.Errorf("failed to get detailed status: %w", err)
	}
	fmt.Fprintln(out)
	for _, s := range statuses {
		applied := "pending"
		if !s.AppliedAt.IsZero() {
			applied = s.AppliedAt.Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(out, "  %-14d %-20s %s\n", s.Source.Version, applied, filepath.Base(s.Source.Path))
	}
	return nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	_, log, err := bootstrap.Env(env, configPath)
	if err != nil {
		return err
	}

	if dialect != "mysql" && dialect != "sqlite3" {
		return fmt.Errorf("unsupported dialect %q", dialect)
	}

	strategy, err := migration.NewGooseStrategy(dialectDriver(dialect), log)
	if err != nil {
		return err
	}

	dir := filepath.Join(migration.SourceDir, dialect)
	if err := strategy.Create(dir, name); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Migration '%s' created in %s\n", name, dir)
	return nil
}

func dialectDriver(d string) string {
	if d == "sqlite3" {
		return "sqlite"
	}
	return d
}

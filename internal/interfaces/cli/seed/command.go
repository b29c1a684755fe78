package seed

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/assistitk12/assistitk12/internal/infrastructure/auth"
	"github.com/assistitk12/assistitk12/internal/infrastructure/database"
	"github.com/assistitk12/assistitk12/internal/infrastructure/migration"
	"github.com/assistitk12/assistitk12/internal/infrastructure/permission"
	"github.com/assistitk12/assistitk12/internal/infrastructure/repository"
	seeddata "github.com/assistitk12/assistitk12/internal/infrastructure/seed"
	"github.com/assistitk12/assistitk12/internal/interfaces/cli/bootstrap"
)

var (
	env        string
	configPath string
	migrate    bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Install reference data and the first administrator",
		Long: `Create the reserved roles, the issue title catalog, the District Office site,
the organization row and the default access policy. The administrator is taken
from seed.admin_* (ASSISTIT_SEED_ADMIN_EMAIL, ASSISTIT_SEED_ADMIN_PASSWORD, ...).
Running it again is safe.`,
		RunE: run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().BoolVar(&migrate, "migrate", false, "Apply pending migrations first")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap.EnvWithDatabase(env, configPath)
	if err != nil {
		return err
	}
	defer database.Close()

	ctx := cmd.Context()
	db := database.Get()

	if migrate {
		manager, err := migration.NewManager(&cfg.Database, log)
		if err != nil {
			return err
		}
		if err := manager.Up(ctx, db); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	enforcer, err := permission.NewEnforcer(db, log)
	if err != nil {
		return fmt.Errorf("failed to create permission enforcer: %w", err)
	}

	catalog, err := seeddata.DefaultCatalog()
	if err != nil {
		return err
	}

	seeder := seeddata.NewSeeder(seeddata.Repositories{
		Users:        repository.NewUserRepository(db),
		Roles:        repository.NewRoleRepository(db),
		Sites:        repository.NewSiteRepository(db),
		Titles:       repository.NewTitleRepository(db),
		Organization: repository.NewOrganizationRepository(db),
	}, auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost), enforcer, catalog, log)

	report, err := seeder.Run(ctx, cfg.Seed)
	if err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Roles created:  %d\n", report.RolesCreated)
	fmt.Fprintf(out, "Sites created:  %d (updated %d)\n", report.SitesCreated, report.SitesUpdated)
	fmt.Fprintf(out, "Titles created: %d\n", report.TitlesCreated)
	switch {
	case report.AdminCreated:
		fmt.Fprintf(out, "Administrator %s created\n", cfg.Seed.AdminEmail)
	case report.AdminUpdated:
		fmt.Fprintf(out, "Administrator %s password reset\n", cfg.Seed.AdminEmail)
	default:
		fmt.Fprintln(out, "Administrator skipped (seed.admin_email not set)")
	}
	return nil
}

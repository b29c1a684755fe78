package importusers

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	directoryUsecases "github.com/assistitk12/assistitk12/internal/application/directory/usecases"
	"github.com/assistitk12/assistitk12/internal/domain/access"
	"github.com/assistitk12/assistitk12/internal/domain/directory"
	"github.com/assistitk12/assistitk12/internal/infrastructure/auth"
	"github.com/assistitk12/assistitk12/internal/infrastructure/cache"
	"github.com/assistitk12/assistitk12/internal/infrastructure/database"
	"github.com/assistitk12/assistitk12/internal/infrastructure/importer"
	"github.com/assistitk12/assistitk12/internal/infrastructure/permission"
	"github.com/assistitk12/assistitk12/internal/infrastructure/repository"
	"github.com/assistitk12/assistitk12/internal/interfaces/cli/bootstrap"
	"github.com/assistitk12/assistitk12/internal/shared/db"
)

var (
	env        string
	configPath string
	asEmail    string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-users <file>",
		Short: "Bulk import users from a CSV or XLSX file",
		Long: `Import users the same way the upload endpoint does. The import runs as the
user named by --as, who must hold the ManageDirectory capability.`,
		Args: cobra.ExactArgs(1),
		RunE: run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().StringVar(&asEmail, "as", "", "Email of the administrator performing the import (required)")
	_ = cmd.MarkFlagRequired("as")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap.EnvWithDatabase(env, configPath)
	if err != nil {
		return err
	}
	defer database.Close()

	ctx := cmd.Context()
	gdb := database.Get()

	userRepo := repository.NewUserRepository(gdb)
	enforcer, err := permission.NewEnforcer(gdb, log)
	if err != nil {
		return fmt.Errorf("failed to create permission enforcer: %w", err)
	}

	actor, err := resolveActor(cmd, userRepo, enforcer)
	if err != nil {
		return err
	}

	// Invalidate the cache the server reads when it is shared through Redis.
	var assignables directory.AssignableUserCache = cache.NewMemoryAssignableUserCache(cfg.Cache.AssignableUsersTTL())
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		assignables = cache.NewRedisAssignableUserCache(client, cfg.Cache.AssignableUsersTTL())
	}

	uc := directoryUsecases.NewImportUsersUseCase(
		userRepo,
		repository.NewRoleRepository(gdb),
		repository.NewSiteRepository(gdb),
		repository.NewBulkUploadLogRepository(gdb),
		importer.NewSheetReader(),
		auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost),
		db.NewTransactionManager(gdb),
		assignables,
		log,
	)

	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	result, err := uc.Execute(ctx, directoryUsecases.ImportUsersCommand{
		Actor:    actor,
		Filename: filepath.Base(path),
		Content:  f,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d rows: %d added, %d updated (log #%d)\n",
		result.Total, result.Added, result.Updated, result.LogID)
	return nil
}

func resolveActor(cmd *cobra.Command, users directory.UserRepository, resolver access.Resolver) (access.Actor, error) {
	ctx := cmd.Context()
	u, err := users.GetByEmail(ctx, asEmail)
	if err != nil {
		return access.Actor{}, err
	}
	if u == nil || !u.IsActive() {
		return access.Actor{}, fmt.Errorf("no active user with email %s", asEmail)
	}

	caps, err := resolver.Capabilities(ctx, u.RoleID())
	if err != nil {
		return access.Actor{}, err
	}
	actor := access.Actor{
		UserID:       u.ID(),
		RoleID:       u.RoleID(),
		SiteID:       u.SiteID(),
		Capabilities: caps,
	}
	if !actor.Can(access.ManageDirectory) {
		return access.Actor{}, fmt.Errorf("%s is not allowed to import users", asEmail)
	}
	return actor, nil
}

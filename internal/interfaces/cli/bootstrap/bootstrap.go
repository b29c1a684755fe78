// Package bootstrap holds the start-up steps every CLI command shares.
package bootstrap

import (
	"fmt"
	"os"

	"github.com/assistitk12/assistitk12/internal/infrastructure/config"
	"github.com/assistitk12/assistitk12/internal/infrastructure/database"
	"github.com/assistitk12/assistitk12/internal/shared/biztime"
	"github.com/assistitk12/assistitk12/internal/shared/logger"
)

// Env loads the configuration and initializes the logger and the business
// timezone. configPath may be empty to search ./configs.
func Env(env, configPath string) (*config.Config, logger.Interface, error) {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}
	mode := GinMode(env)

	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFile(configPath, mode)
	} else {
		cfg, err = config.Load(mode)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode == "debug"); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	return cfg, logger.NewLogger(), nil
}

// EnvWithDatabase is Env plus the process-wide database connection. Callers
// must defer database.Close.
func EnvWithDatabase(env, configPath string) (*config.Config, logger.Interface, error) {
	cfg, log, err := Env(env, configPath)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return cfg, log, nil
}

// GinMode maps an environment name to a gin mode.
func GinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}

package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "github.com/assistitk12/assistitk12/internal/shared/config"
)

const (
	envPrefix       = "ASSISTIT"
	insecureDefault = "change-me-in-production"
)

type Config struct {
	Server       sharedConfig.ServerConfig       `mapstructure:"server"`
	Database     sharedConfig.DatabaseConfig     `mapstructure:"database"`
	Logger       sharedConfig.LoggerConfig       `mapstructure:"logger"`
	Auth         sharedConfig.AuthConfig         `mapstructure:"auth"`
	Security     sharedConfig.SecurityConfig     `mapstructure:"security"`
	Redis        sharedConfig.RedisConfig        `mapstructure:"redis"`
	Storage      sharedConfig.StorageConfig      `mapstructure:"storage"`
	Notification sharedConfig.NotificationConfig `mapstructure:"notification"`
	Cache        sharedConfig.CacheConfig        `mapstructure:"cache"`
	Seed         sharedConfig.SeedConfig         `mapstructure:"seed"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load reads configs/config.yaml (searched upward from the working
// directory) and ASSISTIT_* environment variables. A missing file is
// allowed; defaults and the environment still apply.
func Load(env string) (*Config, error) {
	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath("../../configs")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return finish(v, env)
}

// LoadFile is Load with an explicit config file.
func LoadFile(path, env string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return finish(v, env)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func finish(v *viper.Viper, env string) (*Config, error) {
	// Allow env parameter to override server mode if provided
	if env != "" && env != "default" {
		v.Set("server.mode", env)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Validate rejects settings the server cannot start with. Placeholder
// secrets are only tolerated outside release mode.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	switch c.Database.MigrationStrategy {
	case "goose", "golang-migrate", "auto":
	default:
		return fmt.Errorf("unsupported migration strategy %q", c.Database.MigrationStrategy)
	}
	if c.Storage.MaxUploadBytes <= 0 {
		return fmt.Errorf("storage.max_upload_bytes must be positive")
	}
	if c.Server.Mode == "release" {
		if c.Auth.JWT.Secret == "" || c.Auth.JWT.Secret == insecureDefault {
			return fmt.Errorf("auth.jwt.secret must be set in release mode")
		}
		if c.Security.SecretKey == "" || c.Security.SecretKey == insecureDefault {
			return fmt.Errorf("security.secret_key must be set in release mode")
		}
	}
	return nil
}

func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:8080"})
	v.SetDefault("server.timezone", "America/Los_Angeles")

	// Database defaults
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "root")
	v.SetDefault("database.password", "")
	v.SetDefault("database.database", "assistit.db")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 60)
	v.SetDefault("database.migration_strategy", "goose")

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	// Auth defaults
	v.SetDefault("auth.password.bcrypt_cost", 12)
	v.SetDefault("auth.jwt.secret", insecureDefault)
	v.SetDefault("auth.jwt.access_exp_minutes", 60)
	v.SetDefault("auth.jwt.refresh_exp_days", 7)
	v.SetDefault("auth.cookie.domain", "")
	v.SetDefault("auth.cookie.path", "/")
	v.SetDefault("auth.cookie.secure", false)
	v.SetDefault("auth.cookie.same_site", "Lax")
	v.SetDefault("auth.google.client_id", "")
	v.SetDefault("auth.google.client_secret", "")
	v.SetDefault("auth.google.redirect_url", "http://localhost:8080/api/v1/auth/google/callback")
	v.SetDefault("auth.login_attempts_per_minute", 10)

	v.SetDefault("security.secret_key", insecureDefault)

	// Redis defaults (optional; in-memory fallbacks are used when disabled)
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("storage.upload_dir", "./uploads")
	v.SetDefault("storage.max_upload_bytes", 5<<20)
	v.SetDefault("storage.orphan_sweep_cron", "0 3 * * *")

	v.SetDefault("notification.workers", 2)
	v.SetDefault("notification.queue_size", 256)
	v.SetDefault("notification.send_timeout_seconds", 30)

	v.SetDefault("cache.assignable_users_ttl_seconds", 7200)

	v.SetDefault("seed.organization_name", "Default Organization")
	v.SetDefault("seed.admin_email", "")
	v.SetDefault("seed.admin_password", "")
	v.SetDefault("seed.admin_first_name", "System")
	v.SetDefault("seed.admin_last_name", "Administrator")
}

package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	BaseURL        string   `mapstructure:"base_url"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	Timezone       string   `mapstructure:"timezone"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig selects the gorm dialector. Driver is "mysql" or "sqlite";
// for sqlite, Database is the file path (":memory:" allowed).
type DatabaseConfig struct {
	Driver            string `mapstructure:"driver"`
	Host              string `mapstructure:"host"`
	Port              int    `mapstructure:"port"`
	Username          string `mapstructure:"username"`
	Password          string `mapstructure:"password"`
	Database          string `mapstructure:"database"`
	MaxIdleConns      int    `mapstructure:"max_idle_conns"`
	MaxOpenConns      int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime   int    `mapstructure:"conn_max_lifetime"`
	MigrationStrategy string `mapstructure:"migration_strategy"`
}

func (d *DatabaseConfig) GetDSN() string {
	if d.Driver == "sqlite" {
		return d.Database
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

// GetMigrationDSN is GetDSN with multi-statement scripts enabled for MySQL.
func (d *DatabaseConfig) GetMigrationDSN() string {
	if d.Driver == "sqlite" {
		return d.GetDSN()
	}
	return d.GetDSN() + "&multiStatements=true"
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type PasswordConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

type JWTConfig struct {
	Secret           string `mapstructure:"secret"`
	AccessExpMinutes int    `mapstructure:"access_exp_minutes"`
	RefreshExpDays   int    `mapstructure:"refresh_exp_days"`
}

type CookieConfig struct {
	Domain   string `mapstructure:"domain"`
	Path     string `mapstructure:"path"`
	Secure   bool   `mapstructure:"secure"`
	SameSite string `mapstructure:"same_site"`
}

type GoogleOAuthConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURL  string `mapstructure:"redirect_url"`
}

// Enabled reports whether Google sign-in has been configured.
func (g *GoogleOAuthConfig) Enabled() bool {
	return g.ClientID != "" && g.ClientSecret != ""
}

type AuthConfig struct {
	Password PasswordConfig    `mapstructure:"password"`
	JWT      JWTConfig         `mapstructure:"jwt"`
	Cookie   CookieConfig      `mapstructure:"cookie"`
	Google   GoogleOAuthConfig `mapstructure:"google"`
	// LoginAttemptsPerMinute limits login requests per client IP; 0 disables.
	LoginAttemptsPerMinute int `mapstructure:"login_attempts_per_minute"`
}

// SecurityConfig holds the master secret used to derive at-rest encryption keys.
type SecurityConfig struct {
	SecretKey string `mapstructure:"secret_key"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type StorageConfig struct {
	UploadDir       string `mapstructure:"upload_dir"`
	MaxUploadBytes  int64  `mapstructure:"max_upload_bytes"`
	OrphanSweepCron string `mapstructure:"orphan_sweep_cron"`
}

type NotificationConfig struct {
	Workers   int `mapstructure:"workers"`
	QueueSize int `mapstructure:"queue_size"`
	// SendTimeoutSeconds bounds a single SMTP delivery.
	SendTimeoutSeconds int `mapstructure:"send_timeout_seconds"`
}

func (n *NotificationConfig) SendTimeout() time.Duration {
	return time.Duration(n.SendTimeoutSeconds) * time.Second
}

type CacheConfig struct {
	AssignableUsersTTLSeconds int `mapstructure:"assignable_users_ttl_seconds"`
}

func (c *CacheConfig) AssignableUsersTTL() time.Duration {
	return time.Duration(c.AssignableUsersTTLSeconds) * time.Second
}

// SeedConfig carries the initial administrator created by the seed command.
type SeedConfig struct {
	OrganizationName string `mapstructure:"organization_name"`
	AdminEmail       string `mapstructure:"admin_email"`
	AdminPassword    string `mapstructure:"admin_password"`
	AdminFirstName   string `mapstructure:"admin_first_name"`
	AdminLastName    string `mapstructure:"admin_last_name"`
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFile_DefaultsAndOverrides(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
database:
  driver: mysql
  database: assistit
storage:
  max_upload_bytes: 1048576
`)
	t.Setenv("ASSISTIT_REDIS_ENABLED", "true")
	t.Setenv("ASSISTIT_AUTH_JWT_SECRET", "from-env")

	cfg, err := LoadFile(path, "")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "America/Los_Angeles", cfg.Server.Timezone)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Contains(t, cfg.Database.GetDSN(), "@tcp(localhost:3306)/assistit?")
	assert.Equal(t, "goose", cfg.Database.MigrationStrategy)
	assert.Equal(t, int64(1<<20), cfg.Storage.MaxUploadBytes)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "from-env", cfg.Auth.JWT.Secret)
	assert.Equal(t, 2, cfg.Notification.Workers)
	assert.Equal(t, float64(7200), cfg.Cache.AssignableUsersTTL().Seconds())
	assert.False(t, cfg.Auth.Google.Enabled())
	assert.Same(t, cfg, Get())
}

func TestLoadFile_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  string
	}{
		{"unknown driver", "database:\n  driver: oracle\n", ""},
		{"unknown strategy", "database:\n  migration_strategy: flyway\n", ""},
		{"release needs secrets", "server:\n  mode: debug\n", "release"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeConfig(t, tt.body), tt.env)
			assert.Error(t, err)
		})
	}
}

func TestLoadFile_ReleaseWithSecrets(t *testing.T) {
	t.Setenv("ASSISTIT_AUTH_JWT_SECRET", "jwt-secret")
	t.Setenv("ASSISTIT_SECURITY_SECRET_KEY", "master-secret")

	cfg, err := LoadFile(writeConfig(t, "logger:\n  level: debug\n"), "release")
	require.NoError(t, err)
	assert.Equal(t, "release", cfg.Server.Mode)
}

// Package migration applies the database schema with goose,
// golang-migrate or gorm AutoMigrate.
package migration

import (
	"context"
	"embed"
	"fmt"

	"gorm.io/gorm"

	"github.com/assistitk12/assistitk12/internal/shared/config"
	"github.com/assistitk12/assistitk12/internal/shared/logger"
)

//go:embed scripts
var scripts embed.FS

// SourceDir is where new goose migrations are written, relative to the
// repository root.
const SourceDir = "internal/infrastructure/migration/scripts/goose"

type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks the strategy named by cfg.MigrationStrategy.
func NewManager(cfg *config.DatabaseConfig, log logger.Interface) (*Manager, error) {
	strategy, err := newStrategy(cfg, log)
	if err != nil {
		return nil, err
	}
	return &Manager{strategy: strategy, logger: log}, nil
}

func newStrategy(cfg *config.DatabaseConfig, log logger.Interface) (Strategy, error) {
	switch cfg.MigrationStrategy {
	case "", "goose":
		return NewGooseStrategy(cfg.Driver, log)
	case "golang-migrate":
		return NewGolangMigrateStrategy(cfg, log)
	case "auto":
		return NewAutoMigrateStrategy(log), nil
	default:
		return nil, fmt.Errorf("unknown migration strategy %q", cfg.MigrationStrategy)
	}
}

func NewManagerWithStrategy(strategy Strategy, log logger.Interface) *Manager {
	return &Manager{strategy: strategy, logger: log}
}

func (m *Manager) Strategy() Strategy { return m.strategy }

func (m *Manager) Up(ctx context.Context, db *gorm.DB) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.Name())

	if err := m.strategy.Up(ctx, db); err != nil {
		m.logger.Errorw("migration failed", "strategy", m.strategy.Name(), "error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.Name(), err)
	}

	m.logger.Infow("database migration completed successfully", "strategy", m.strategy.Name())
	return nil
}

func (m *Manager) Down(ctx context.Context, db *gorm.DB, steps int) error {
	if steps <= 0 {
		steps = 1
	}
	m.logger.Infow("starting down migration", "strategy", m.strategy.Name(), "steps", steps)
	return m.strategy.Down(ctx, db, steps)
}

func (m *Manager) Version(ctx context.Context, db *gorm.DB) (int64, error) {
	return m.strategy.Version(ctx, db)
}

package migration

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pressly/goose/v3"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/assistitk12/assistitk12/internal/infrastructure/persistence/models"
	"github.com/assistitk12/assistitk12/internal/shared/config"
	"github.com/assistitk12/assistitk12/internal/shared/logger"
)

// Strategy applies schema changes to a database.
type Strategy interface {
	Up(ctx context.Context, db *gorm.DB) error
	Down(ctx context.Context, db *gorm.DB, steps int) error
	// Version returns the applied schema version; 0 when none.
	Version(ctx context.Context, db *gorm.DB) (int64, error)
	Name() string
}

// GooseStrategy runs the embedded goose scripts for one dialect.
type GooseStrategy struct {
	dialect string
	fsys    fs.FS
	logger  logger.Interface
}

func NewGooseStrategy(driver string, log logger.Interface) (*GooseStrategy, error) {
	dialect, err := gooseDialect(driver)
	if err != nil {
		return nil, err
	}
	sub, err := fs.Sub(scripts, "scripts/goose/"+dialect)
	if err != nil {
		return nil, fmt.Errorf("failed to open migration scripts: %w", err)
	}
	return &GooseStrategy{dialect: dialect, fsys: sub, logger: log}, nil
}

func gooseDialect(driver string) (string, error) {
	switch driver {
	case "mysql":
		return "mysql", nil
	case "sqlite":
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("goose does not support driver %q", driver)
	}
}

func (s *GooseStrategy) Name() string { return "goose" }

func (s *GooseStrategy) provider(db *gorm.DB) (*goose.Provider, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	p, err := goose.NewProvider(goose.Dialect(s.dialect), sqlDB, s.fsys)
	if err != nil {
		return nil, fmt.Errorf("failed to create goose provider: %w", err)
	}
	return p, nil
}

func (s *GooseStrategy) Up(ctx context.Context, db *gorm.DB) error {
	p, err := s.provider(db)
	if err != nil {
		return err
	}

	results, err := p.Up(ctx)
	if err != nil {
		s.logger.Errorw("migration failed", "error", err)
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	for _, r := range results {
		s.logger.Infow("migration applied",
			"version", r.Source.Version,
			"path", r.Source.Path,
			"duration", r.Duration,
		)
	}
	return nil
}

func (s *GooseStrategy) Down(ctx context.Context, db *gorm.DB, steps int) error {
	p, err := s.provider(db)
	if err != nil {
		return err
	}

	for i := 0; i < steps; i++ {
		r, err := p.Down(ctx)
		if err != nil {
			if errors.Is(err, goose.ErrNoNextVersion) {
				return nil
			}
			s.logger.Errorw("down migration failed", "error", err)
			return fmt.Errorf("failed to run down migration: %w", err)
		}
		s.logger.Infow("migration rolled back", "version", r.Source.Version)
	}
	return nil
}

func (s *GooseStrategy) Version(ctx context.Context, db *gorm.DB) (int64, error) {
	p, err := s.provider(db)
	if err != nil {
		return 0, err
	}
	v, err := p.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get version: %w", err)
	}
	return v, nil
}

// Status lists every known migration and whether it has been applied.
func (s *GooseStrategy) Status(ctx context.Context, db *gorm.DB) ([]*goose.MigrationStatus, error) {
	p, err := s.provider(db)
	if err != nil {
		return nil, err
	}
	status, err := p.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}
	return status, nil
}

// Create writes a new timestamped SQL migration into dir.
func (s *GooseStrategy) Create(dir, name string) error {
	if err := goose.Create(nil, dir, name, "sql"); err != nil {
		return fmt.Errorf("failed to create migration: %w", err)
	}
	s.logger.Infow("migration created successfully", "name", name, "dir", dir)
	return nil
}

// GolangMigrateStrategy runs the embedded golang-migrate scripts. Only
// MySQL is supported. The scripts hold several statements each, so the
// strategy uses its own connection opened with multiStatements=true.
type GolangMigrateStrategy struct {
	dsn    string
	logger logger.Interface
}

func NewGolangMigrateStrategy(cfg *config.DatabaseConfig, log logger.Interface) (*GolangMigrateStrategy, error) {
	if cfg.Driver != "mysql" {
		return nil, fmt.Errorf("golang-migrate strategy requires mysql, got %q", cfg.Driver)
	}
	return &GolangMigrateStrategy{dsn: cfg.GetMigrationDSN(), logger: log}, nil
}

func (s *GolangMigrateStrategy) Name() string { return "golang-migrate" }

// DSN returns the connection string migrations run with.
func (s *GolangMigrateStrategy) DSN() string { return s.dsn }

func (s *GolangMigrateStrategy) instance() (*migrate.Migrate, func(), error) {
	conn, err := gorm.Open(gormmysql.Open(s.dsn), &gorm.Config{Logger: gormlogger.Discard})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open migration connection: %w", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	source, err := iofs.New(scripts, "scripts/golang-migrate/mysql")
	if err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to open migration scripts: %w", err)
	}

	driver, err := migratemysql.WithInstance(sqlDB, &migratemysql.Config{})
	if err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to create MySQL driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "mysql", driver)
	if err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	// Close releases the driver and the sql.DB it wraps.
	closeFn := func() { _, _ = m.Close() }
	return m, closeFn, nil
}

func (s *GolangMigrateStrategy) Up(_ context.Context, _ *gorm.DB) error {
	m, closeFn, err := s.instance()
	if err != nil {
		return err
	}
	defer closeFn()

	currentVersion, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}
	if dirty {
		s.logger.Warnw("database is in dirty state, please fix manually")
		return fmt.Errorf("database is in dirty state at version %d", currentVersion)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		s.logger.Errorw("migration failed", "error", err)
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	finalVersion, _, _ := m.Version()
	s.logger.Infow("migration completed successfully",
		"from_version", currentVersion,
		"to_version", finalVersion)
	return nil
}

func (s *GolangMigrateStrategy) Down(_ context.Context, _ *gorm.DB, steps int) error {
	m, closeFn, err := s.instance()
	if err != nil {
		return err
	}
	defer closeFn()
	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		s.logger.Errorw("down migration failed", "error", err)
		return fmt.Errorf("failed to run down migrations: %w", err)
	}
	return nil
}

func (s *GolangMigrateStrategy) Version(_ context.Context, _ *gorm.DB) (int64, error) {
	m, closeFn, err := s.instance()
	if err != nil {
		return 0, err
	}
	defer closeFn()
	v, _, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get version: %w", err)
	}
	return int64(v), nil
}

// AutoMigrateStrategy derives the schema from the gorm models. Intended for
// local development; it cannot roll back.
type AutoMigrateStrategy struct {
	logger logger.Interface
}

func NewAutoMigrateStrategy(log logger.Interface) *AutoMigrateStrategy {
	return &AutoMigrateStrategy{logger: log}
}

func (s *AutoMigrateStrategy) Name() string { return "auto" }

func (s *AutoMigrateStrategy) Up(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to auto-migrate models: %w", err)
	}
	s.logger.Infow("auto migration completed", "models", len(models.All()))
	return nil
}

func (s *AutoMigrateStrategy) Down(context.Context, *gorm.DB, int) error {
	return fmt.Errorf("auto migration does not support rollback")
}

func (s *AutoMigrateStrategy) Version(context.Context, *gorm.DB) (int64, error) {
	return 0, nil
}

package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/assistitk12/assistitk12/internal/domain/directory"
	"github.com/assistitk12/assistitk12/internal/infrastructure/auth"
	"github.com/assistitk12/assistitk12/internal/infrastructure/persistence/models"
	"github.com/assistitk12/assistitk12/internal/infrastructure/repository"
	"github.com/assistitk12/assistitk12/internal/shared/config"
	"github.com/assistitk12/assistitk12/internal/shared/logger"
)

type countingPolicies struct{ calls int }

func (p *countingPolicies) SeedDefaults() error {
	p.calls++
	return nil
}

func setupSeeder(t *testing.T) (*Seeder, Repositories, *countingPolicies) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, gdb.AutoMigrate(models.All()...))

	repos := Repositories{
		Users:        repository.NewUserRepository(gdb),
		Roles:        repository.NewRoleRepository(gdb),
		Sites:        repository.NewSiteRepository(gdb),
		Titles:       repository.NewTitleRepository(gdb),
		Organization: repository.NewOrganizationRepository(gdb),
	}
	catalog, err := DefaultCatalog()
	require.NoError(t, err)

	policies := &countingPolicies{}
	// minimum bcrypt cost keeps the test fast
	s := NewSeeder(repos, auth.NewBcryptPasswordHasher(4), policies, catalog, logger.NewNopLogger())
	return s, repos, policies
}

func seedConfig() config.SeedConfig {
	return config.SeedConfig{
		OrganizationName: "Unified School District",
		AdminEmail:       "admin@district.org",
		AdminPassword:    "Sup3r-Secret!pw",
		AdminFirstName:   "Pat",
		AdminLastName:    "Admin",
	}
}

func TestDefaultCatalog(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)

	assert.Len(t, c.Roles, 5)
	assert.Equal(t, RoleEntry{ID: directory.RoleAdmin, Name: "Admin"}, c.Roles[0])
	require.Len(t, c.Sites, 1)
	assert.Equal(t, "District Office", c.Sites[0].Name)
	assert.Equal(t, "000", c.Sites[0].Code)
	assert.Len(t, c.Titles, 15)
	assert.Equal(t, "Other", c.Titles[0])
}

func TestParseCatalog_RejectsRoleWithoutID(t *testing.T) {
	_, err := ParseCatalog([]byte("roles:\n  - name: Admin\n"))
	assert.Error(t, err)
}

func TestSeeder_Run(t *testing.T) {
	s, repos, policies := setupSeeder(t)
	ctx := context.Background()

	report, err := s.Run(ctx, seedConfig())
	require.NoError(t, err)

	assert.Equal(t, 5, report.RolesCreated)
	assert.Equal(t, 1, report.SitesCreated)
	assert.Equal(t, 15, report.TitlesCreated)
	assert.True(t, report.AdminCreated)
	assert.Equal(t, 1, policies.calls)

	org, err := repos.Organization.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, org)
	assert.Equal(t, "Unified School District", org.Name())

	technician, err := repos.Roles.GetByID(ctx, directory.RoleTechnician)
	require.NoError(t, err)
	require.NotNil(t, technician)
	assert.Equal(t, "Technician", technician.Name())

	admin, err := repos.Users.GetByEmail(ctx, "admin@district.org")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, directory.RoleAdmin, admin.RoleID())
	assert.True(t, admin.IsActive())
	assert.False(t, admin.MustResetPassword())
}

func TestSeeder_Run_Idempotent(t *testing.T) {
	s, repos, _ := setupSeeder(t)
	ctx := context.Background()

	_, err := s.Run(ctx, seedConfig())
	require.NoError(t, err)

	report, err := s.Run(ctx, seedConfig())
	require.NoError(t, err)
	assert.Zero(t, report.RolesCreated)
	assert.Zero(t, report.SitesCreated)
	assert.Zero(t, report.SitesUpdated)
	assert.Zero(t, report.TitlesCreated)
	assert.False(t, report.AdminCreated)
	assert.True(t, report.AdminUpdated)

	titles, err := repos.Titles.List(ctx)
	require.NoError(t, err)
	assert.Len(t, titles, 15)
}

func TestSeeder_Run_WithoutAdmin(t *testing.T) {
	s, _, _ := setupSeeder(t)

	cfg := seedConfig()
	cfg.AdminEmail = ""
	report, err := s.Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.False(t, report.AdminCreated)
}

func TestSeeder_Run_WeakAdminPassword(t *testing.T) {
	s, _, _ := setupSeeder(t)

	cfg := seedConfig()
	cfg.AdminPassword = "short"
	_, err := s.Run(context.Background(), cfg)
	assert.Error(t, err)
}

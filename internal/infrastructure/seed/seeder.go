// Package seed installs the reference data a fresh database needs: reserved
// roles, the issue title catalog, the District Office site, the organization
// row, the first administrator and the default access policy.
package seed

import (
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/assistitk12/assistitk12/internal/domain/directory"
	vo "github.com/assistitk12/assistitk12/internal/domain/directory/valueobjects"
	"github.com/assistitk12/assistitk12/internal/domain/organization"
	"github.com/assistitk12/assistitk12/internal/shared/config"
	"github.com/assistitk12/assistitk12/internal/shared/logger"
)

//go:embed catalog.yaml
var catalogYAML []byte

type Catalog struct {
	Roles  []RoleEntry `yaml:"roles"`
	Sites  []SiteEntry `yaml:"sites"`
	Titles []string    `yaml:"titles"`
}

type RoleEntry struct {
	ID   uint   `yaml:"id"`
	Name string `yaml:"name"`
}

type SiteEntry struct {
	ID      uint   `yaml:"id"`
	Name    string `yaml:"name"`
	GUID    string `yaml:"guid"`
	CDS     string `yaml:"cds"`
	Code    string `yaml:"code"`
	Abbr    string `yaml:"abbr"`
	Address string `yaml:"address"`
	Type    string `yaml:"type"`
}

func (e SiteEntry) details() directory.SiteDetails {
	return directory.SiteDetails{
		Name:    e.Name,
		GUID:    e.GUID,
		CDS:     e.CDS,
		Code:    e.Code,
		Abbr:    e.Abbr,
		Address: e.Address,
		Type:    e.Type,
	}
}

// DefaultCatalog parses the embedded catalog.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(catalogYAML)
}

func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse seed catalog: %w", err)
	}
	for _, r := range c.Roles {
		if r.ID == 0 || r.Name == "" {
			return nil, fmt.Errorf("seed catalog role needs an id and a name")
		}
	}
	return &c, nil
}

// PolicySeeder grants the built-in role capabilities.
type PolicySeeder interface {
	SeedDefaults() error
}

type Repositories struct {
	Users        directory.UserRepository
	Roles        directory.RoleRepository
	Sites        directory.SiteRepository
	Titles       directory.TitleRepository
	Organization organization.Repository
}

// Report counts what a run created or updated.
type Report struct {
	RolesCreated  int
	SitesCreated  int
	SitesUpdated  int
	TitlesCreated int
	AdminCreated  bool
	AdminUpdated  bool
}

// Seeder is idempotent: rows that already exist are left alone, except the
// seeded sites and the admin account which are brought back in line with the
// catalog and configuration.
type Seeder struct {
	repos    Repositories
	hasher   directory.PasswordHasher
	policies PolicySeeder
	catalog  *Catalog
	policy   *vo.PasswordPolicy
	logger   logger.Interface
}

func NewSeeder(repos Repositories, hasher directory.PasswordHasher, policies PolicySeeder, catalog *Catalog, logger logger.Interface) *Seeder {
	return &Seeder{
		repos:    repos,
		hasher:   hasher,
		policies: policies,
		catalog:  catalog,
		policy:   vo.DefaultPasswordPolicy(),
		logger:   logger,
	}
}

func (s *Seeder) Run(ctx context.Context, cfg config.SeedConfig) (*Report, error) {
	report := &Report{}

	if err := s.seedOrganization(ctx, cfg.OrganizationName); err != nil {
		return nil, err
	}
	if err := s.seedRoles(ctx, report); err != nil {
		return nil, err
	}
	if err := s.policies.SeedDefaults(); err != nil {
		return nil, fmt.Errorf("failed to seed access policy: %w", err)
	}
	if err := s.seedSites(ctx, report); err != nil {
		return nil, err
	}
	if err := s.seedTitles(ctx, report); err != nil {
		return nil, err
	}
	if err := s.seedAdmin(ctx, cfg, report); err != nil {
		return nil, err
	}

	s.logger.Infow("seed completed",
		"roles_created", report.RolesCreated,
		"sites_created", report.SitesCreated,
		"sites_updated", report.SitesUpdated,
		"titles_created", report.TitlesCreated,
		"admin_created", report.AdminCreated,
		"admin_updated", report.AdminUpdated,
	)
	return report, nil
}

func (s *Seeder) seedOrganization(ctx context.Context, name string) error {
	existing, err := s.repos.Organization.Get(ctx)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	if name == "" {
		name = "Default Organization"
	}
	org, err := organization.NewOrganization(name)
	if err != nil {
		return err
	}
	return s.repos.Organization.Save(ctx, org)
}

func (s *Seeder) seedRoles(ctx context.Context, report *Report) error {
	for _, entry := range s.catalog.Roles {
		existing, err := s.repos.Roles.GetByID(ctx, entry.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		role, err := directory.NewRole(entry.Name)
		if err != nil {
			return err
		}
		if err := role.SetID(entry.ID); err != nil {
			return err
		}
		if err := s.repos.Roles.Create(ctx, role); err != nil {
			return err
		}
		report.RolesCreated++
	}
	return nil
}

// seedSites matches on CDS, the site's external identifier.
func (s *Seeder) seedSites(ctx context.Context, report *Report) error {
	for _, entry := range s.catalog.Sites {
		existing, err := s.repos.Sites.GetByCDS(ctx, entry.CDS)
		if err != nil {
			return err
		}
		if existing != nil {
			changed, err := existing.Update(entry.details())
			if err != nil {
				return err
			}
			if changed {
				if err := s.repos.Sites.Update(ctx, existing); err != nil {
					return err
				}
				report.SitesUpdated++
			}
			continue
		}

		site, err := directory.NewSite(entry.details())
		if err != nil {
			return err
		}
		if entry.ID != 0 {
			if err := site.SetID(entry.ID); err != nil {
				return err
			}
		}
		if err := s.repos.Sites.Create(ctx, site); err != nil {
			return err
		}
		report.SitesCreated++
	}
	return nil
}

func (s *Seeder) seedTitles(ctx context.Context, report *Report) error {
	for _, name := range s.catalog.Titles {
		existing, err := s.repos.Titles.GetByName(ctx, name)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		title, err := directory.NewTitle(name)
		if err != nil {
			return err
		}
		if err := s.repos.Titles.Create(ctx, title); err != nil {
			return err
		}
		report.TitlesCreated++
	}
	return nil
}

// seedAdmin is skipped when no admin email is configured.
func (s *Seeder) seedAdmin(ctx context.Context, cfg config.SeedConfig, report *Report) error {
	if cfg.AdminEmail == "" {
		s.logger.Warnw("seed admin email not set; skipping administrator")
		return nil
	}
	if err := s.policy.ValidatePassword(cfg.AdminPassword); err != nil {
		return fmt.Errorf("seed admin password: %w", err)
	}
	if len(s.catalog.Sites) == 0 {
		return fmt.Errorf("seed catalog has no site for the administrator")
	}

	home, err := s.repos.Sites.GetByCDS(ctx, s.catalog.Sites[0].CDS)
	if err != nil {
		return err
	}
	if home == nil {
		return fmt.Errorf("seeded site %q not found", s.catalog.Sites[0].Name)
	}

	hash, err := s.hasher.Hash(cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	existing, err := s.repos.Users.GetByEmail(ctx, cfg.AdminEmail)
	if err != nil {
		return err
	}
	if existing != nil {
		if err := existing.SetPasswordHash(hash, false); err != nil {
			return err
		}
		if err := s.repos.Users.Update(ctx, existing); err != nil {
			return err
		}
		report.AdminUpdated = true
		return nil
	}

	admin, err := directory.NewUser(directory.UserProfile{
		FirstName: cfg.AdminFirstName,
		LastName:  cfg.AdminLastName,
		Email:     cfg.AdminEmail,
		RoleID:    directory.RoleAdmin,
		SiteID:    home.ID(),
		Status:    vo.UserStatusActive,
	}, hash)
	if err != nil {
		return err
	}
	if err := s.repos.Users.Create(ctx, admin); err != nil {
		return err
	}
	report.AdminCreated = true
	return nil
}

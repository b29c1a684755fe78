package usecases

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/assistitk12/assistitk12/internal/application/directory/dto"
	"github.com/assistitk12/assistitk12/internal/domain/access"
	"github.com/assistitk12/assistitk12/internal/domain/directory"
	"github.com/assistitk12/assistitk12/internal/shared/errors"
	"github.com/assistitk12/assistitk12/internal/shared/logger"
	"github.com/assistitk12/assistitk12/internal/shared/utils"
)

const errMsgSiteExists = "a site with the same name, CDS, code, abbreviation or GUID already exists"

type ListSitesResult struct {
	Sites    []dto.SiteDTO
	Total    int64
	Page     int
	PageSize int
}

type SiteUpdateResult struct {
	Site    dto.SiteDTO
	Changed bool
}

type SiteUseCases struct {
	siteRepo directory.SiteRepository
	userRepo directory.UserRepository
	tickets  TicketCounter
	logger   logger.Interface
}

func NewSiteUseCases(
	siteRepo directory.SiteRepository,
	userRepo directory.UserRepository,
	tickets TicketCounter,
	logger logger.Interface,
) *SiteUseCases {
	return &SiteUseCases{siteRepo: siteRepo, userRepo: userRepo, tickets: tickets, logger: logger}
}

// List is open to every signed-in user; forms need the site names.
func (uc *SiteUseCases) List(ctx context.Context, search string, page, pageSize int) (*ListSitesResult, error) {
	p := utils.ValidatePagination(page, pageSize)
	sites, total, err := uc.siteRepo.List(ctx, directory.SiteFilter{Search: search, Page: p.Page, PageSize: p.PageSize})
	if err != nil {
		uc.logger.Errorw("failed to list sites", "error", err)
		return nil, fmt.Errorf("failed to list sites: %w", err)
	}
	out := make([]dto.SiteDTO, 0, len(sites))
	for _, s := range sites {
		out = append(out, dto.ToSiteDTO(s))
	}
	return &ListSitesResult{Sites: out, Total: total, Page: p.Page, PageSize: p.PageSize}, nil
}

// Create adds a site. An empty GUID is generated.
func (uc *SiteUseCases) Create(ctx context.Context, actor access.Actor, d directory.SiteDetails) (*dto.SiteDTO, error) {
	uc.logger.Infow("executing create site use case", "name", d.Name, "cds", d.CDS)
	if err := actor.Require(access.ManageDirectory); err != nil {
		return nil, err
	}
	if d.GUID == "" {
		d.GUID = uuid.New().String()
	}

	site, err := directory.NewSite(d)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.ensureCDSFree(ctx, site.CDS(), 0); err != nil {
		return nil, err
	}
	if err := uc.siteRepo.Create(ctx, site); err != nil {
		return nil, writeError(uc.logger, "create site", errMsgSiteExists, err)
	}

	out := dto.ToSiteDTO(site)
	return &out, nil
}

func (uc *SiteUseCases) Update(ctx context.Context, actor access.Actor, id uint, d directory.SiteDetails) (*SiteUpdateResult, error) {
	uc.logger.Infow("executing update site use case", "site_id", id)
	if err := actor.Require(access.ManageDirectory); err != nil {
		return nil, err
	}

	site, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	changed, err := site.Update(d)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if !changed {
		return &SiteUpdateResult{Site: dto.ToSiteDTO(site)}, nil
	}
	if err := uc.ensureCDSFree(ctx, site.CDS(), id); err != nil {
		return nil, err
	}
	if err := uc.siteRepo.Update(ctx, site); err != nil {
		return nil, writeError(uc.logger, "update site", errMsgSiteExists, err)
	}
	return &SiteUpdateResult{Site: dto.ToSiteDTO(site), Changed: true}, nil
}

func (uc *SiteUseCases) Delete(ctx context.Context, actor access.Actor, id uint) error {
	uc.logger.Infow("executing delete site use case", "site_id", id)
	if err := actor.Require(access.ManageDirectory); err != nil {
		return err
	}
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}

	users, err := uc.userRepo.CountBySite(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count site users: %w", err)
	}
	tickets, err := uc.tickets.CountBySite(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count site tickets: %w", err)
	}
	if users > 0 || tickets > 0 {
		return errors.NewConflictError("site is in use and cannot be deleted",
			fmt.Sprintf("%d users and %d tickets reference this site", users, tickets))
	}

	if err := uc.siteRepo.Delete(ctx, id); err != nil {
		return writeError(uc.logger, "delete site", "site is still referenced", err)
	}
	return nil
}

func (uc *SiteUseCases) get(ctx context.Context, id uint) (*directory.Site, error) {
	site, err := uc.siteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get site: %w", err)
	}
	if site == nil {
		return nil, errors.NewNotFoundError("site not found")
	}
	return site, nil
}

func (uc *SiteUseCases) ensureCDSFree(ctx context.Context, cds string, selfID uint) error {
	other, err := uc.siteRepo.GetByCDS(ctx, cds)
	if err != nil {
		return fmt.Errorf("failed to check site cds: %w", err)
	}
	if other != nil && other.ID() != selfID {
		return errors.NewConflictError("site CDS already exists")
	}
	return nil
}

package usecases

import (
	"context"
	"fmt"

	"github.com/assistitk12/assistitk12/internal/application/banner/dto"
	"github.com/assistitk12/assistitk12/internal/domain/access"
	"github.com/assistitk12/assistitk12/internal/domain/banner"
	"github.com/assistitk12/assistitk12/internal/shared/constants"
	"github.com/assistitk12/assistitk12/internal/shared/db"
	"github.com/assistitk12/assistitk12/internal/shared/errors"
	"github.com/assistitk12/assistitk12/internal/shared/logger"
	"github.com/assistitk12/assistitk12/internal/shared/utils"
)

const errMsgBannerExists = "banner name already exists"

// Renderer turns banner markdown into safe HTML.
type Renderer interface {
	ToHTMLSanitized(markdown string) (string, error)
}

type ListBannersResult struct {
	Banners  []*dto.BannerDTO
	Total    int64
	Page     int
	PageSize int
}

type EditBannerCommand struct {
	Actor   access.Actor
	ID      uint
	Name    string
	Content string
}

type BannerResult struct {
	Banner  *dto.BannerDTO
	Changed bool
}

// BannerUseCases manages login-page banners. At most one banner is active.
type BannerUseCases struct {
	repo      banner.Repository
	txManager db.Transactor
	renderer  Renderer
	logger    logger.Interface
}

func NewBannerUseCases(repo banner.Repository, txManager db.Transactor, renderer Renderer, logger logger.Interface) *BannerUseCases {
	return &BannerUseCases{repo: repo, txManager: txManager, renderer: renderer, logger: logger}
}

func (uc *BannerUseCases) List(ctx context.Context, actor access.Actor, page, pageSize int) (*ListBannersResult, error) {
	if err := actor.Require(access.ManageDirectory); err != nil {
		return nil, err
	}
	p := utils.ValidatePagination(page, pageSize)
	banners, total, err := uc.repo.List(ctx, p.Page, p.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list banners", "error", err)
		return nil, fmt.Errorf("failed to list banners: %w", err)
	}
	out := make([]*dto.BannerDTO, 0, len(banners))
	for _, b := range banners {
		out = append(out, dto.ToBannerDTO(b))
	}
	return &ListBannersResult{Banners: out, Total: total, Page: p.Page, PageSize: p.PageSize}, nil
}

// Create adds an inactive banner.
func (uc *BannerUseCases) Create(ctx context.Context, actor access.Actor, name, content string) (*dto.BannerDTO, error) {
	uc.logger.Infow("executing create banner use case", "name", name)
	if err := actor.Require(access.ManageDirectory); err != nil {
		return nil, err
	}

	b, err := banner.NewBanner(name, content)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.ensureNameFree(ctx, b.Name(), 0); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, b); err != nil {
		return nil, uc.writeError("create banner", err)
	}
	return dto.ToBannerDTO(b), nil
}

func (uc *BannerUseCases) Edit(ctx context.Context, cmd EditBannerCommand) (*BannerResult, error) {
	uc.logger.Infow("executing edit banner use case", "banner_id", cmd.ID)
	if err := cmd.Actor.Require(access.ManageDirectory); err != nil {
		return nil, err
	}

	b, err := uc.get(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}
	changed, err := b.Edit(cmd.Name, cmd.Content)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if !changed {
		return &BannerResult{Banner: dto.ToBannerDTO(b)}, nil
	}
	if err := uc.ensureNameFree(ctx, b.Name(), b.ID()); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, b); err != nil {
		return nil, uc.writeError("edit banner", err)
	}
	return &BannerResult{Banner: dto.ToBannerDTO(b), Changed: true}, nil
}

// SetStatus activates or deactivates a banner. Activating while a different
// banner is active is a conflict.
func (uc *BannerUseCases) SetStatus(ctx context.Context, actor access.Actor, id uint, status string) (*BannerResult, error) {
	uc.logger.Infow("executing set banner status use case", "banner_id", id, "status", status)
	if err := actor.Require(access.ManageDirectory); err != nil {
		return nil, err
	}

	s, err := banner.ParseStatus(status)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	var (
		b       *banner.Banner
		changed bool
	)
	err = uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if s == banner.StatusActive {
			active, err := uc.repo.ListActiveForUpdate(ctx)
			if err != nil {
				return fmt.Errorf("failed to list active banners: %w", err)
			}
			for _, other := range active {
				if other.ID() != id {
					return errors.NewConflictError("another banner is already active",
						fmt.Sprintf("deactivate %q first", other.Name()))
				}
			}
		}

		found, err := uc.get(ctx, id)
		if err != nil {
			return err
		}
		b = found
		if changed, err = b.SetStatus(s); err != nil {
			return errors.NewValidationError(err.Error())
		}
		if !changed {
			return nil
		}
		if err := uc.repo.Update(ctx, b); err != nil {
			return uc.writeError("set banner status", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &BannerResult{Banner: dto.ToBannerDTO(b), Changed: changed}, nil
}

func (uc *BannerUseCases) Delete(ctx context.Context, actor access.Actor, id uint) error {
	uc.logger.Infow("executing delete banner use case", "banner_id", id)
	if err := actor.Require(access.ManageDirectory); err != nil {
		return err
	}
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return uc.writeError("delete banner", err)
	}
	return nil
}

// Active renders the active banners for anonymous visitors. A banner that
// fails to render is skipped.
func (uc *BannerUseCases) Active(ctx context.Context) ([]dto.ActiveBannerDTO, error) {
	banners, err := uc.repo.ListActive(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list active banners", "error", err)
		return nil, fmt.Errorf("failed to list active banners: %w", err)
	}

	out := make([]dto.ActiveBannerDTO, 0, len(banners))
	for _, b := range banners {
		html, err := uc.renderer.ToHTMLSanitized(b.Content())
		if err != nil {
			uc.logger.Warnw("failed to render banner", "banner_id", b.ID(), "error", err)
			continue
		}
		out = append(out, dto.ActiveBannerDTO{ID: b.ID(), Name: b.Name(), HTML: html})
	}
	return out, nil
}

func (uc *BannerUseCases) get(ctx context.Context, id uint) (*banner.Banner, error) {
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get banner: %w", err)
	}
	if b == nil {
		return nil, errors.NewNotFoundError("banner not found")
	}
	return b, nil
}

func (uc *BannerUseCases) ensureNameFree(ctx context.Context, name string, selfID uint) error {
	other, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to check banner name: %w", err)
	}
	if other != nil && other.ID() != selfID {
		return errors.NewConflictError(errMsgBannerExists)
	}
	return nil
}

func (uc *BannerUseCases) writeError(op string, err error) error {
	if errors.IsDuplicateError(err) {
		return errors.NewConflictError(errMsgBannerExists)
	}
	uc.logger.Errorw("banner write failed", "operation", op, "error", err)
	return errors.NewStorageError(constants.ErrMsgStorageFailure)
}

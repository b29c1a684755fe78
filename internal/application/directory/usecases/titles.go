package usecases

import (
	"context"
	"fmt"

	"github.com/assistitk12/assistitk12/internal/application/directory/dto"
	"github.com/assistitk12/assistitk12/internal/domain/access"
	"github.com/assistitk12/assistitk12/internal/domain/directory"
	"github.com/assistitk12/assistitk12/internal/shared/errors"
	"github.com/assistitk12/assistitk12/internal/shared/logger"
)

const errMsgTitleExists = "title name already exists"

type TitleUpdateResult struct {
	Title   dto.TitleDTO
	Changed bool
}

// TitleUseCases manages the ticket title catalog.
type TitleUseCases struct {
	titleRepo directory.TitleRepository
	tickets   TicketCounter
	logger    logger.Interface
}

func NewTitleUseCases(titleRepo directory.TitleRepository, tickets TicketCounter, logger logger.Interface) *TitleUseCases {
	return &TitleUseCases{titleRepo: titleRepo, tickets: tickets, logger: logger}
}

// List returns titles ordered by name. Open to every signed-in user.
func (uc *TitleUseCases) List(ctx context.Context) ([]dto.TitleDTO, error) {
	titles, err := uc.titleRepo.List(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list titles", "error", err)
		return nil, fmt.Errorf("failed to list titles: %w", err)
	}
	out := make([]dto.TitleDTO, 0, len(titles))
	for _, t := range titles {
		out = append(out, dto.ToTitleDTO(t))
	}
	return out, nil
}

func (uc *TitleUseCases) Create(ctx context.Context, actor access.Actor, name string) (*dto.TitleDTO, error) {
	uc.logger.Infow("executing create title use case", "name", name)
	if err := actor.Require(access.ManageDirectory); err != nil {
		return nil, err
	}

	title, err := directory.NewTitle(name)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.ensureNameFree(ctx, title.Name(), 0); err != nil {
		return nil, err
	}
	if err := uc.titleRepo.Create(ctx, title); err != nil {
		return nil, writeError(uc.logger, "create title", errMsgTitleExists, err)
	}

	out := dto.ToTitleDTO(title)
	return &out, nil
}

func (uc *TitleUseCases) Update(ctx context.Context, actor access.Actor, id uint, name string) (*TitleUpdateResult, error) {
	uc.logger.Infow("executing update title use case", "title_id", id)
	if err := actor.Require(access.ManageDirectory); err != nil {
		return nil, err
	}

	title, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	changed, err := title.Rename(name)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if !changed {
		return &TitleUpdateResult{Title: dto.ToTitleDTO(title)}, nil
	}
	if err := uc.ensureNameFree(ctx, title.Name(), id); err != nil {
		return nil, err
	}
	if err := uc.titleRepo.Update(ctx, title); err != nil {
		return nil, writeError(uc.logger, "update title", errMsgTitleExists, err)
	}
	return &TitleUpdateResult{Title: dto.ToTitleDTO(title), Changed: true}, nil
}

func (uc *TitleUseCases) Delete(ctx context.Context, actor access.Actor, id uint) error {
	uc.logger.Infow("executing delete title use case", "title_id", id)
	if err := actor.Require(access.ManageDirectory); err != nil {
		return err
	}
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}

	n, err := uc.tickets.CountByTitle(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count title tickets: %w", err)
	}
	if n > 0 {
		return errors.NewConflictError("title is used by tickets and cannot be deleted",
			fmt.Sprintf("%d tickets use this title", n))
	}

	if err := uc.titleRepo.Delete(ctx, id); err != nil {
		return writeError(uc.logger, "delete title", "title is still referenced", err)
	}
	return nil
}

func (uc *TitleUseCases) get(ctx context.Context, id uint) (*directory.Title, error) {
	title, err := uc.titleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get title: %w", err)
	}
	if title == nil {
		return nil, errors.NewNotFoundError("title not found")
	}
	return title, nil
}

func (uc *TitleUseCases) ensureNameFree(ctx context.Context, name string, selfID uint) error {
	other, err := uc.titleRepo.GetByName(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to check title name: %w", err)
	}
	if other != nil && other.ID() != selfID {
		return errors.NewConflictError(errMsgTitleExists)
	}
	return nil
}

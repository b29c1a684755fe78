package usecases

import (
	"context"
	"fmt"

	"github.com/assistitk12/assistitk12/internal/domain/access"
	"github.com/assistitk12/assistitk12/internal/domain/directory"
	"github.com/assistitk12/assistitk12/internal/shared/errors"
	"github.com/assistitk12/assistitk12/internal/shared/logger"
)

// TicketCounter reports how many tickets reference a directory row.
type TicketCounter interface {
	CountByUser(ctx context.Context, userID uint) (int64, error)
	CountBySite(ctx context.Context, siteID uint) (int64, error)
	CountByTitle(ctx context.Context, titleID uint) (int64, error)
}

type DeleteUserUseCase struct {
	userRepo directory.UserRepository
	tickets  TicketCounter
	cache    directory.AssignableUserCache
	logger   logger.Interface
}

func NewDeleteUserUseCase(
	userRepo directory.UserRepository,
	tickets TicketCounter,
	cache directory.AssignableUserCache,
	logger logger.Interface,
) *DeleteUserUseCase {
	return &DeleteUserUseCase{
		userRepo: userRepo,
		tickets:  tickets,
		cache:    cache,
		logger:   logger,
	}
}

func (uc *DeleteUserUseCase) Execute(ctx context.Context, actor access.Actor, userID uint) error {
	uc.logger.Infow("executing delete user use case", "user_id", userID)

	if err := actor.Require(access.ManageDirectory); err != nil {
		return err
	}
	if actor.UserID == userID {
		return errors.NewValidationError("you cannot delete your own account")
	}

	u, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil {
		return errors.NewNotFoundError("user not found")
	}

	n, err := uc.tickets.CountByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to count user tickets: %w", err)
	}
	if n > 0 {
		return errors.NewConflictError("user has tickets and cannot be deleted",
			fmt.Sprintf("%d tickets reference this user", n))
	}

	if err := uc.userRepo.Delete(ctx, userID); err != nil {
		return writeError(uc.logger, "delete user", "user is still referenced", err)
	}
	invalidateAssignable(ctx, uc.cache, uc.logger)

	uc.logger.Infow("user deleted", "user_id", userID)
	return nil
}

package usecases

import (
	"context"
	"fmt"

	"github.com/assistitk12/assistitk12/internal/domain/access"
	"github.com/assistitk12/assistitk12/internal/domain/directory"
	"github.com/assistitk12/assistitk12/internal/shared/logger"
)

// ListAssignableUsersUseCase serves the assignee picker from the cache,
// loading active users whose role is Assignable on a miss.
type ListAssignableUsersUseCase struct {
	userRepo directory.UserRepository
	resolver access.Resolver
	cache    directory.AssignableUserCache
	logger   logger.Interface
}

func NewListAssignableUsersUseCase(
	userRepo directory.UserRepository,
	resolver access.Resolver,
	cache directory.AssignableUserCache,
	logger logger.Interface,
) *ListAssignableUsersUseCase {
	return &ListAssignableUsersUseCase{
		userRepo: userRepo,
		resolver: resolver,
		cache:    cache,
		logger:   logger,
	}
}

func (uc *ListAssignableUsersUseCase) Execute(ctx context.Context) ([]directory.AssignableUser, error) {
	if cached, ok, err := uc.cache.Get(ctx); err != nil {
		uc.logger.Warnw("assignable users cache read failed", "error", err)
	} else if ok {
		return cached, nil
	}

	roleIDs, err := uc.resolver.RolesWith(ctx, access.Assignable)
	if err != nil {
		uc.logger.Errorw("failed to resolve assignable roles", "error", err)
		return nil, fmt.Errorf("failed to resolve assignable roles: %w", err)
	}

	users := []directory.AssignableUser{}
	if len(roleIDs) > 0 {
		found, _, err := uc.userRepo.List(ctx, directory.UserFilter{RoleIDs: roleIDs})
		if err != nil {
			uc.logger.Errorw("failed to list assignable users", "error", err)
			return nil, fmt.Errorf("failed to list assignable users: %w", err)
		}
		for _, u := range found {
			if !u.IsActive() {
				continue
			}
			users = append(users, directory.AssignableUser{
				ID:       u.ID(),
				FullName: u.FullName(),
				Email:    u.Email(),
				RoleID:   u.RoleID(),
				SiteID:   u.SiteID(),
			})
		}
	}

	if err := uc.cache.Set(ctx, users); err != nil {
		uc.logger.Warnw("assignable users cache write failed", "error", err)
	}
	return users, nil
}

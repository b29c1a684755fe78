package usecases

import (
	"context"
	"fmt"

	"github.com/assistitk12/assistitk12/internal/application/directory/dto"
	"github.com/assistitk12/assistitk12/internal/domain/directory"
	"github.com/assistitk12/assistitk12/internal/shared/constants"
	"github.com/assistitk12/assistitk12/internal/shared/errors"
	"github.com/assistitk12/assistitk12/internal/shared/logger"
)

// writeError maps a failed write: AppErrors pass through, unique-key
// violations become conflicts and anything else is a generic storage error.
func writeError(log logger.Interface, op, conflictMsg string, err error) error {
	if err == nil {
		return nil
	}
	if errors.IsAppError(err) {
		return err
	}
	if errors.IsDuplicateError(err) {
		return errors.NewConflictError(conflictMsg)
	}
	log.Errorw("directory write failed", "operation", op, "error", err)
	return errors.NewStorageError(constants.ErrMsgStorageFailure)
}

func invalidateAssignable(ctx context.Context, cache directory.AssignableUserCache, log logger.Interface) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx); err != nil {
		log.Warnw("failed to invalidate assignable users cache", "error", err)
	}
}

func loadLookup(ctx context.Context, roleRepo directory.RoleRepository, siteRepo directory.SiteRepository) (dto.Lookup, error) {
	l := dto.Lookup{Roles: make(map[uint]string), Sites: make(map[uint]string)}

	roles, err := roleRepo.List(ctx)
	if err != nil {
		return l, fmt.Errorf("failed to list roles: %w", err)
	}
	for _, r := range roles {
		l.Roles[r.ID()] = r.Name()
	}

	sites, _, err := siteRepo.List(ctx, directory.SiteFilter{})
	if err != nil {
		return l, fmt.Errorf("failed to list sites: %w", err)
	}
	for _, s := range sites {
		l.Sites[s.ID()] = s.Name()
	}
	return l, nil
}

// checkRoleAndSite verifies the referenced rows exist.
func checkRoleAndSite(ctx context.Context, roleRepo directory.RoleRepository, siteRepo directory.SiteRepository, roleID, siteID *uint) error {
	if roleID != nil {
		role, err := roleRepo.GetByID(ctx, *roleID)
		if err != nil {
			return fmt.Errorf("failed to get role: %w", err)
		}
		if role == nil {
			return errors.NewNotFoundError("role not found")
		}
	}
	if siteID != nil {
		site, err := siteRepo.GetByID(ctx, *siteID)
		if err != nil {
			return fmt.Errorf("failed to get site: %w", err)
		}
		if site == nil {
			return errors.NewNotFoundError("site not found")
		}
	}
	return nil
}

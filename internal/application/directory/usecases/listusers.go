package usecases

import (
	"context"
	"fmt"

	"github.com/assistitk12/assistitk12/internal/application/directory/dto"
	"github.com/assistitk12/assistitk12/internal/domain/access"
	"github.com/assistitk12/assistitk12/internal/domain/directory"
	"github.com/assistitk12/assistitk12/internal/shared/errors"
	"github.com/assistitk12/assistitk12/internal/shared/logger"
	"github.com/assistitk12/assistitk12/internal/shared/utils"
)

type ListUsersQuery struct {
	Actor    access.Actor
	Search   string
	SiteID   *uint
	RoleID   *uint
	Page     int
	PageSize int
}

type ListUsersResult struct {
	Users    []*dto.UserDTO
	Total    int64
	Page     int
	PageSize int
}

type ListUsersUseCase struct {
	userRepo directory.UserRepository
	roleRepo directory.RoleRepository
	siteRepo directory.SiteRepository
	logger   logger.Interface
}

func NewListUsersUseCase(
	userRepo directory.UserRepository,
	roleRepo directory.RoleRepository,
	siteRepo directory.SiteRepository,
	logger logger.Interface,
) *ListUsersUseCase {
	return &ListUsersUseCase{
		userRepo: userRepo,
		roleRepo: roleRepo,
		siteRepo: siteRepo,
		logger:   logger,
	}
}

func (uc *ListUsersUseCase) Execute(ctx context.Context, query ListUsersQuery) (*ListUsersResult, error) {
	if err := query.Actor.Require(access.ManageUsers); err != nil {
		return nil, err
	}

	p := utils.ValidatePagination(query.Page, query.PageSize)
	users, total, err := uc.userRepo.List(ctx, directory.UserFilter{
		Search:   query.Search,
		SiteID:   query.SiteID,
		RoleID:   query.RoleID,
		Page:     p.Page,
		PageSize: p.PageSize,
	})
	if err != nil {
		uc.logger.Errorw("failed to list users", "error", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	lookup, err := loadLookup(ctx, uc.roleRepo, uc.siteRepo)
	if err != nil {
		return nil, err
	}

	return &ListUsersResult{
		Users:    dto.ToUserDTOs(users, lookup),
		Total:    total,
		Page:     p.Page,
		PageSize: p.PageSize,
	}, nil
}

type GetUserUseCase struct {
	userRepo directory.UserRepository
	roleRepo directory.RoleRepository
	siteRepo directory.SiteRepository
	logger   logger.Interface
}

func NewGetUserUseCase(
	userRepo directory.UserRepository,
	roleRepo directory.RoleRepository,
	siteRepo directory.SiteRepository,
	logger logger.Interface,
) *GetUserUseCase {
	return &GetUserUseCase{
		userRepo: userRepo,
		roleRepo: roleRepo,
		siteRepo: siteRepo,
		logger:   logger,
	}
}

// Execute returns a user. Anyone may read their own record.
func (uc *GetUserUseCase) Execute(ctx context.Context, actor access.Actor, userID uint) (*dto.UserDTO, error) {
	if actor.UserID != userID {
		if err := actor.Require(access.ManageUsers); err != nil {
			return nil, err
		}
	}

	u, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	lookup, err := loadLookup(ctx, uc.roleRepo, uc.siteRepo)
	if err != nil {
		return nil, err
	}
	return dto.ToUserDTO(u, lookup), nil
}

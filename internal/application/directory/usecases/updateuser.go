package usecases

import (
	"context"
	"fmt"

	"github.com/assistitk12/assistitk12/internal/application/directory/dto"
	"github.com/assistitk12/assistitk12/internal/domain/access"
	"github.com/assistitk12/assistitk12/internal/domain/directory"
	vo "github.com/assistitk12/assistitk12/internal/domain/directory/valueobjects"
	"github.com/assistitk12/assistitk12/internal/shared/errors"
	"github.com/assistitk12/assistitk12/internal/shared/logger"
)

// UpdateUserCommand carries a partial update; nil fields are unchanged.
type UpdateUserCommand struct {
	Actor      access.Actor
	UserID     uint
	FirstName  *string
	MiddleName *string
	LastName   *string
	Email      *string
	RmNum      *string
	RoleID     *uint
	SiteID     *uint
	Status     *string
	Password   *string
}

type UpdateUserResult struct {
	User          *dto.UserDTO
	Changed       bool
	ChangedFields []string
}

type UpdateUserUseCase struct {
	userRepo directory.UserRepository
	roleRepo directory.RoleRepository
	siteRepo directory.SiteRepository
	hasher   directory.PasswordHasher
	policy   *vo.PasswordPolicy
	cache    directory.AssignableUserCache
	logger   logger.Interface
}

func NewUpdateUserUseCase(
	userRepo directory.UserRepository,
	roleRepo directory.RoleRepository,
	siteRepo directory.SiteRepository,
	hasher directory.PasswordHasher,
	cache directory.AssignableUserCache,
	logger logger.Interface,
) *UpdateUserUseCase {
	return &UpdateUserUseCase{
		userRepo: userRepo,
		roleRepo: roleRepo,
		siteRepo: siteRepo,
		hasher:   hasher,
		policy:   vo.DefaultPasswordPolicy(),
		cache:    cache,
		logger:   logger,
	}
}

func (uc *UpdateUserUseCase) Execute(ctx context.Context, cmd UpdateUserCommand) (*UpdateUserResult, error) {
	uc.logger.Infow("executing update user use case", "user_id", cmd.UserID)

	if err := cmd.Actor.Require(access.ManageUsers); err != nil {
		return nil, err
	}

	u, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "user_id", cmd.UserID, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	patch := directory.UserPatch{
		FirstName:  cmd.FirstName,
		MiddleName: cmd.MiddleName,
		LastName:   cmd.LastName,
		Email:      cmd.Email,
		RmNum:      cmd.RmNum,
		RoleID:     cmd.RoleID,
		SiteID:     cmd.SiteID,
	}
	if cmd.Status != nil {
		status, err := vo.ParseUserStatus(*cmd.Status)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		patch.Status = &status
	}

	var roleCheck, siteCheck *uint
	if cmd.RoleID != nil && *cmd.RoleID != u.RoleID() {
		roleCheck = cmd.RoleID
	}
	if cmd.SiteID != nil && *cmd.SiteID != u.SiteID() {
		siteCheck = cmd.SiteID
	}
	if err := checkRoleAndSite(ctx, uc.roleRepo, uc.siteRepo, roleCheck, siteCheck); err != nil {
		return nil, err
	}

	if cmd.Email != nil && vo.NormalizeEmail(*cmd.Email) != u.Email() {
		other, err := uc.userRepo.GetByEmail(ctx, vo.NormalizeEmail(*cmd.Email))
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if other != nil && other.ID() != u.ID() {
			return nil, errors.NewConflictError("email already exists")
		}
	}

	changed, err := u.ApplyPatch(patch)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if cmd.Password != nil && *cmd.Password != "" {
		if err := uc.policy.ValidatePassword(*cmd.Password); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		hash, err := uc.hasher.Hash(*cmd.Password)
		if err != nil {
			uc.logger.Errorw("failed to hash password", "user_id", u.ID(), "error", err)
			return nil, errors.NewInternalError("failed to hash password")
		}
		if err := u.SetPasswordHash(hash, false); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		changed = append(changed, "password")
	}

	result := &UpdateUserResult{Changed: len(changed) > 0, ChangedFields: changed}
	if result.Changed {
		if err := uc.userRepo.Update(ctx, u); err != nil {
			return nil, writeError(uc.logger, "update user", "email already exists", err)
		}
		invalidateAssignable(ctx, uc.cache, uc.logger)
		uc.logger.Infow("user updated", "user_id", u.ID(), "fields", changed)
	}

	lookup, err := loadLookup(ctx, uc.roleRepo, uc.siteRepo)
	if err != nil {
		uc.logger.Warnw("failed to load names for updated user", "user_id", u.ID(), "error", err)
	}
	result.User = dto.ToUserDTO(u, lookup)
	return result, nil
}

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

type CreateUserCommand struct {
	Actor      access.Actor
	FirstName  string
	MiddleName string
	LastName   string
	Email      string
	RmNum      string
	RoleID     uint
	SiteID     uint
	Status     string
	Password   string
}

type CreateUserUseCase struct {
	userRepo directory.UserRepository
	roleRepo directory.RoleRepository
	siteRepo directory.SiteRepository
	hasher   directory.PasswordHasher
	policy   *vo.PasswordPolicy
	cache    directory.AssignableUserCache
	logger   logger.Interface
}

func NewCreateUserUseCase(
	userRepo directory.UserRepository,
	roleRepo directory.RoleRepository,
	siteRepo directory.SiteRepository,
	hasher directory.PasswordHasher,
	cache directory.AssignableUserCache,
	logger logger.Interface,
) *CreateUserUseCase {
	return &CreateUserUseCase{
		userRepo: userRepo,
		roleRepo: roleRepo,
		siteRepo: siteRepo,
		hasher:   hasher,
		policy:   vo.DefaultPasswordPolicy(),
		cache:    cache,
		logger:   logger,
	}
}

func (uc *CreateUserUseCase) Execute(ctx context.Context, cmd CreateUserCommand) (*dto.UserDTO, error) {
	uc.logger.Infow("executing create user use case", "email", cmd.Email)

	if err := cmd.Actor.Require(access.ManageDirectory); err != nil {
		return nil, err
	}

	status, err := vo.ParseUserStatus(cmd.Status)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.policy.ValidatePassword(cmd.Password); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := checkRoleAndSite(ctx, uc.roleRepo, uc.siteRepo, &cmd.RoleID, &cmd.SiteID); err != nil {
		return nil, err
	}

	existing, err := uc.userRepo.GetByEmail(ctx, vo.NormalizeEmail(cmd.Email))
	if err != nil {
		uc.logger.Errorw("failed to check email", "error", err)
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, errors.NewConflictError("email already exists")
	}

	hash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return nil, errors.NewInternalError("failed to hash password")
	}

	u, err := directory.NewUser(directory.UserProfile{
		FirstName:  cmd.FirstName,
		MiddleName: cmd.MiddleName,
		LastName:   cmd.LastName,
		Email:      cmd.Email,
		RmNum:      cmd.RmNum,
		RoleID:     cmd.RoleID,
		SiteID:     cmd.SiteID,
		Status:     status,
	}, hash)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Create(ctx, u); err != nil {
		return nil, writeError(uc.logger, "create user", "email already exists", err)
	}
	invalidateAssignable(ctx, uc.cache, uc.logger)

	uc.logger.Infow("user created", "user_id", u.ID(), "role_id", u.RoleID(), "site_id", u.SiteID())

	lookup, err := loadLookup(ctx, uc.roleRepo, uc.siteRepo)
	if err != nil {
		uc.logger.Warnw("failed to load names for created user", "user_id", u.ID(), "error", err)
	}
	return dto.ToUserDTO(u, lookup), nil
}

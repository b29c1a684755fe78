package usecases

import (
	"context"
	"fmt"

	"github.com/assistitk12/assistitk12/internal/domain/directory"
	vo "github.com/assistitk12/assistitk12/internal/domain/directory/valueobjects"
	"github.com/assistitk12/assistitk12/internal/shared/errors"
	"github.com/assistitk12/assistitk12/internal/shared/logger"
)

type ChangePasswordCommand struct {
	UserID          uint
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

// ChangePasswordUseCase lets a user replace their own password.
type ChangePasswordUseCase struct {
	userRepo directory.UserRepository
	hasher   directory.PasswordHasher
	policy   *vo.PasswordPolicy
	logger   logger.Interface
}

func NewChangePasswordUseCase(
	userRepo directory.UserRepository,
	hasher directory.PasswordHasher,
	logger logger.Interface,
) *ChangePasswordUseCase {
	return &ChangePasswordUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		policy:   vo.DefaultPasswordPolicy(),
		logger:   logger,
	}
}

func (uc *ChangePasswordUseCase) Execute(ctx context.Context, cmd ChangePasswordCommand) error {
	uc.logger.Infow("executing change password use case", "user_id", cmd.UserID)

	switch {
	case cmd.CurrentPassword == "":
		return errors.NewValidationError("current password is required")
	case cmd.NewPassword == "":
		return errors.NewValidationError("new password is required")
	case cmd.ConfirmPassword == "":
		return errors.NewValidationError("password confirmation is required")
	case cmd.NewPassword != cmd.ConfirmPassword:
		return errors.NewValidationError("new password and confirmation do not match")
	}

	u, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "user_id", cmd.UserID, "error", err)
		return fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil {
		return errors.NewNotFoundError("user not found")
	}

	if err := uc.hasher.Verify(cmd.CurrentPassword, u.PasswordHash()); err != nil {
		uc.logger.Warnw("current password mismatch", "user_id", cmd.UserID)
		return errors.NewValidationError("current password is incorrect")
	}
	if err := uc.policy.ValidatePassword(cmd.NewPassword); err != nil {
		return errors.NewValidationError(err.Error())
	}

	hash, err := uc.hasher.Hash(cmd.NewPassword)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "user_id", cmd.UserID, "error", err)
		return errors.NewInternalError("failed to hash password")
	}
	if err := u.SetPasswordHash(hash, false); err != nil {
		return errors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Update(ctx, u); err != nil {
		return writeError(uc.logger, "change password", "", err)
	}

	uc.logger.Infow("password changed successfully", "user_id", cmd.UserID)
	return nil
}

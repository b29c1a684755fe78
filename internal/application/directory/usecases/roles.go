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

const errMsgRoleExists = "role name already exists"

// RolePolicies drops the access grants of a deleted role.
type RolePolicies interface {
	RemoveRole(roleID uint) error
}

// RoleUseCases groups role administration. Every operation requires
// ManageDirectory and the built-in roles are read-only.
type RoleUseCases struct {
	roleRepo directory.RoleRepository
	userRepo directory.UserRepository
	policies RolePolicies
	logger   logger.Interface
}

// policies may be nil.
func NewRoleUseCases(roleRepo directory.RoleRepository, userRepo directory.UserRepository, policies RolePolicies, logger logger.Interface) *RoleUseCases {
	return &RoleUseCases{roleRepo: roleRepo, userRepo: userRepo, policies: policies, logger: logger}
}

func (uc *RoleUseCases) List(ctx context.Context, actor access.Actor) ([]dto.RoleDTO, error) {
	if err := actor.Require(access.ManageDirectory); err != nil {
		return nil, err
	}
	roles, err := uc.roleRepo.List(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list roles", "error", err)
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	out := make([]dto.RoleDTO, 0, len(roles))
	for _, r := range roles {
		out = append(out, dto.ToRoleDTO(r))
	}
	return out, nil
}

func (uc *RoleUseCases) Create(ctx context.Context, actor access.Actor, name string) (*dto.RoleDTO, error) {
	uc.logger.Infow("executing create role use case", "name", name)
	if err := actor.Require(access.ManageDirectory); err != nil {
		return nil, err
	}

	role, err := directory.NewRole(name)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.ensureNameFree(ctx, role.Name(), 0); err != nil {
		return nil, err
	}
	if err := uc.roleRepo.Create(ctx, role); err != nil {
		return nil, writeError(uc.logger, "create role", errMsgRoleExists, err)
	}

	out := dto.ToRoleDTO(role)
	return &out, nil
}

func (uc *RoleUseCases) Update(ctx context.Context, actor access.Actor, id uint, name string) (*dto.RoleDTO, error) {
	uc.logger.Infow("executing update role use case", "role_id", id)
	if err := actor.Require(access.ManageDirectory); err != nil {
		return nil, err
	}

	role, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := role.Rename(name); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.ensureNameFree(ctx, role.Name(), id); err != nil {
		return nil, err
	}
	if err := uc.roleRepo.Update(ctx, role); err != nil {
		return nil, writeError(uc.logger, "update role", errMsgRoleExists, err)
	}

	out := dto.ToRoleDTO(role)
	return &out, nil
}

func (uc *RoleUseCases) Delete(ctx context.Context, actor access.Actor, id uint) error {
	uc.logger.Infow("executing delete role use case", "role_id", id)
	if err := actor.Require(access.ManageDirectory); err != nil {
		return err
	}
	if directory.IsReservedRole(id) {
		return errors.NewValidationError("built-in roles cannot be deleted")
	}
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}

	n, err := uc.userRepo.CountByRole(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count role users: %w", err)
	}
	if n > 0 {
		return errors.NewConflictError("role is assigned to users and cannot be deleted",
			fmt.Sprintf("%d users have this role", n))
	}

	if err := uc.roleRepo.Delete(ctx, id); err != nil {
		return writeError(uc.logger, "delete role", "role is still referenced", err)
	}
	if uc.policies != nil {
		if err := uc.policies.RemoveRole(id); err != nil {
			uc.logger.Warnw("failed to remove role policies", "role_id", id, "error", err)
		}
	}
	return nil
}

func (uc *RoleUseCases) get(ctx context.Context, id uint) (*directory.Role, error) {
	role, err := uc.roleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get role: %w", err)
	}
	if role == nil {
		return nil, errors.NewNotFoundError("role not found")
	}
	return role, nil
}

func (uc *RoleUseCases) ensureNameFree(ctx context.Context, name string, selfID uint) error {
	other, err := uc.roleRepo.GetByName(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to check role name: %w", err)
	}
	if other != nil && other.ID() != selfID {
		return errors.NewConflictError(errMsgRoleExists)
	}
	return nil
}

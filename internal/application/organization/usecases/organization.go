package usecases

import (
	"context"
	"fmt"

	"github.com/assistitk12/assistitk12/internal/application/organization/dto"
	"github.com/assistitk12/assistitk12/internal/domain/access"
	"github.com/assistitk12/assistitk12/internal/domain/organization"
	"github.com/assistitk12/assistitk12/internal/shared/constants"
	"github.com/assistitk12/assistitk12/internal/shared/errors"
	"github.com/assistitk12/assistitk12/internal/shared/logger"
)

// SecretCipher encrypts values stored at rest.
type SecretCipher interface {
	Encrypt(plaintext string) (string, error)
}

// ChangeNotifier is told about every saved organization change.
type ChangeNotifier interface {
	OnOrganizationChange(ctx context.Context, org *organization.Organization) error
}

// UpdateOrganizationCommand replaces the profile. A nil MailPassword keeps
// the stored password; ClearMailPassword removes it.
type UpdateOrganizationCommand struct {
	Actor             access.Actor
	Name              string
	SiteVersion       string
	LogoPath          string
	MailServer        string
	MailPort          int
	MailUseTLS        bool
	MailUseSSL        bool
	MailUsername      string
	MailSender        string
	MailPassword      *string
	ClearMailPassword bool
}

type UpdateOrganizationResult struct {
	Organization *dto.OrganizationDTO
	Changed      bool
}

type OrganizationUseCases struct {
	repo     organization.Repository
	cipher   SecretCipher
	notifier ChangeNotifier
	logger   logger.Interface
}

func NewOrganizationUseCases(
	repo organization.Repository,
	cipher SecretCipher,
	notifier ChangeNotifier,
	logger logger.Interface,
) *OrganizationUseCases {
	return &OrganizationUseCases{
		repo:     repo,
		cipher:   cipher,
		notifier: notifier,
		logger:   logger,
	}
}

func (uc *OrganizationUseCases) Get(ctx context.Context, actor access.Actor) (*dto.OrganizationDTO, error) {
	if err := actor.Require(access.ManageDirectory); err != nil {
		return nil, err
	}
	org, err := uc.load(ctx)
	if err != nil {
		return nil, err
	}
	return dto.ToOrganizationDTO(org), nil
}

func (uc *OrganizationUseCases) Update(ctx context.Context, cmd UpdateOrganizationCommand) (*UpdateOrganizationResult, error) {
	uc.logger.Infow("executing update organization use case", "user_id", cmd.Actor.UserID)
	if err := cmd.Actor.Require(access.ManageDirectory); err != nil {
		return nil, err
	}

	org, err := uc.load(ctx)
	if err != nil {
		return nil, err
	}

	changed, err := org.Update(organization.Profile{
		Name:        cmd.Name,
		SiteVersion: cmd.SiteVersion,
		LogoPath:    cmd.LogoPath,
		Mail: organization.MailSettings{
			Server:        cmd.MailServer,
			Port:          cmd.MailPort,
			UseTLS:        cmd.MailUseTLS,
			UseSSL:        cmd.MailUseSSL,
			Username:      cmd.MailUsername,
			DefaultSender: cmd.MailSender,
		},
	})
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	switch {
	case cmd.ClearMailPassword:
		if org.HasMailPassword() {
			org.SetEncryptedMailPassword("")
			changed = true
		}
	case cmd.MailPassword != nil && *cmd.MailPassword != "":
		ciphertext, err := uc.cipher.Encrypt(*cmd.MailPassword)
		if err != nil {
			uc.logger.Errorw("failed to encrypt mail password", "error", err)
			return nil, errors.NewInternalError("failed to store mail password")
		}
		org.SetEncryptedMailPassword(ciphertext)
		changed = true
	}

	if !changed {
		return &UpdateOrganizationResult{Organization: dto.ToOrganizationDTO(org)}, nil
	}

	if err := uc.repo.Save(ctx, org); err != nil {
		uc.logger.Errorw("failed to save organization", "error", err)
		return nil, errors.NewStorageError(constants.ErrMsgStorageFailure)
	}

	if uc.notifier != nil {
		if err := uc.notifier.OnOrganizationChange(ctx, org); err != nil {
			uc.logger.Warnw("failed to apply organization change", "error", err)
		}
	}

	uc.logger.Infow("organization updated", "user_id", cmd.Actor.UserID)
	return &UpdateOrganizationResult{Organization: dto.ToOrganizationDTO(org), Changed: true}, nil
}

func (uc *OrganizationUseCases) load(ctx context.Context) (*organization.Organization, error) {
	org, err := uc.repo.Get(ctx)
	if err != nil {
		uc.logger.Errorw("failed to get organization", "error", err)
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}
	if org == nil {
		return nil, errors.NewNotFoundError("organization has not been set up, run the seed command")
	}
	return org, nil
}

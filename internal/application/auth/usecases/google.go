package usecases

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/assistitk12/assistitk12/internal/domain/directory"
	vo "github.com/assistitk12/assistitk12/internal/domain/directory/valueobjects"
	"github.com/assistitk12/assistitk12/internal/shared/errors"
	"github.com/assistitk12/assistitk12/internal/shared/logger"
)

// ExternalLoginUseCase signs in existing directory users through an
// identity provider. Unknown addresses are rejected, never provisioned.
type ExternalLoginUseCase struct {
	provider IdentityProvider
	states   StateStore
	userRepo directory.UserRepository
	tokens   TokenService
	logger   logger.Interface
}

func NewExternalLoginUseCase(
	provider IdentityProvider,
	states StateStore,
	userRepo directory.UserRepository,
	tokens TokenService,
	logger logger.Interface,
) *ExternalLoginUseCase {
	return &ExternalLoginUseCase{
		provider: provider,
		states:   states,
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

// Start returns the provider URL to redirect the browser to.
func (uc *ExternalLoginUseCase) Start(ctx context.Context) (string, error) {
	state := uuid.NewString()
	authURL, verifier, err := uc.provider.AuthURL(state)
	if err != nil {
		uc.logger.Errorw("failed to build external sign-in url", "error", err)
		return "", errors.NewInternalError("failed to start sign-in")
	}
	if err := uc.states.Save(ctx, state, verifier); err != nil {
		uc.logger.Errorw("failed to store sign-in state", "error", err)
		return "", errors.NewInternalError("failed to start sign-in")
	}
	return authURL, nil
}

func (uc *ExternalLoginUseCase) Callback(ctx context.Context, state, code string) (*AuthResult, error) {
	if state == "" || code == "" {
		return nil, errors.NewValidationError("authorization code and state are required")
	}

	verifier, err := uc.states.Consume(ctx, state)
	if err != nil {
		uc.logger.Errorw("failed to load sign-in state", "error", err)
		return nil, fmt.Errorf("failed to load sign-in state: %w", err)
	}
	if verifier == "" {
		return nil, errors.NewUnauthorizedError("sign-in session expired, please try again")
	}

	email, err := uc.provider.Email(ctx, code, verifier)
	if err != nil {
		uc.logger.Warnw("external sign-in failed", "error", err)
		return nil, errors.NewUnauthorizedError("sign-in with the identity provider failed")
	}

	u, err := uc.userRepo.GetByEmail(ctx, vo.NormalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil {
		uc.logger.Warnw("external sign-in for unknown email", "email", email)
		return nil, errors.NewUnauthorizedError("no account exists for this email, contact your administrator")
	}

	return issue(uc.tokens, uc.logger, u, "google")
}

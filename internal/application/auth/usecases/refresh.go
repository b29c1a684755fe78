package usecases

import (
	"context"
	"fmt"

	"github.com/assistitk12/assistitk12/internal/domain/directory"
	"github.com/assistitk12/assistitk12/internal/shared/errors"
	"github.com/assistitk12/assistitk12/internal/shared/logger"
)

// RefreshTokenUseCase rotates a refresh token: the presented token is
// revoked and a new pair is issued.
type RefreshTokenUseCase struct {
	userRepo directory.UserRepository
	tokens   TokenService
	revoker  TokenRevoker
	logger   logger.Interface
}

func NewRefreshTokenUseCase(
	userRepo directory.UserRepository,
	tokens TokenService,
	revoker TokenRevoker,
	logger logger.Interface,
) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{
		userRepo: userRepo,
		tokens:   tokens,
		revoker:  revoker,
		logger:   logger,
	}
}

func (uc *RefreshTokenUseCase) Execute(ctx context.Context, refreshToken string) (*AuthResult, error) {
	if refreshToken == "" {
		return nil, errors.NewUnauthorizedError("refresh token is required")
	}
	claims, err := uc.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return nil, errors.NewUnauthorizedError("invalid refresh token")
	}

	revoked, err := uc.revoker.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		uc.logger.Errorw("failed to check token revocation", "error", err)
		return nil, fmt.Errorf("failed to check token: %w", err)
	}
	if revoked {
		uc.logger.Warnw("revoked refresh token presented", "user_id", claims.UserID)
		return nil, errors.NewUnauthorizedError("invalid refresh token")
	}

	u, err := uc.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil {
		return nil, errors.NewUnauthorizedError("invalid refresh token")
	}

	result, err := issue(uc.tokens, uc.logger, u, "refresh")
	if err != nil {
		return nil, err
	}
	if err := uc.revoker.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		uc.logger.Warnw("failed to revoke rotated refresh token", "user_id", u.ID(), "error", err)
	}
	return result, nil
}

type LogoutUseCase struct {
	tokens  TokenService
	revoker TokenRevoker
	logger  logger.Interface
}

func NewLogoutUseCase(tokens TokenService, revoker TokenRevoker, logger logger.Interface) *LogoutUseCase {
	return &LogoutUseCase{tokens: tokens, revoker: revoker, logger: logger}
}

// Execute revokes the refresh token if one is presented. An invalid or
// missing token is not an error; the caller clears cookies regardless.
func (uc *LogoutUseCase) Execute(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	claims, err := uc.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return nil
	}
	if err := uc.revoker.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		uc.logger.Errorw("failed to revoke refresh token", "user_id", claims.UserID, "error", err)
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	uc.logger.Infow("user logged out", "user_id", claims.UserID)
	return nil
}

package usecases

import (
	"context"
	"fmt"

	"github.com/assistitk12/assistitk12/internal/domain/directory"
	vo "github.com/assistitk12/assistitk12/internal/domain/directory/valueobjects"
	"github.com/assistitk12/assistitk12/internal/shared/errors"
	"github.com/assistitk12/assistitk12/internal/shared/logger"
)

const errMsgInvalidCredentials = "invalid email or password"

type LoginCommand struct {
	Email    string
	Password string
	ClientIP string
}

type AuthResult struct {
	User   *directory.User
	Tokens *TokenPair
}

type LoginUseCase struct {
	userRepo directory.UserRepository
	hasher   directory.PasswordHasher
	tokens   TokenService
	limiter  LoginLimiter
	logger   logger.Interface
}

// NewLoginUseCase builds the password login. limiter may be nil.
func NewLoginUseCase(
	userRepo directory.UserRepository,
	hasher directory.PasswordHasher,
	tokens TokenService,
	limiter LoginLimiter,
	logger logger.Interface,
) *LoginUseCase {
	return &LoginUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		limiter:  limiter,
		logger:   logger,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*AuthResult, error) {
	if uc.limiter != nil && cmd.ClientIP != "" {
		allowed, err := uc.limiter.Allow(ctx, "login:"+cmd.ClientIP)
		if err != nil {
			// Fail open: a limiter outage must not lock everyone out.
			uc.logger.Warnw("login rate limiter unavailable", "error", err)
		} else if !allowed {
			uc.logger.Warnw("login rate limited", "ip", cmd.ClientIP)
			return nil, errors.NewRateLimitedError("too many login attempts, please wait a minute")
		}
	}

	if cmd.Email == "" || cmd.Password == "" {
		return nil, errors.NewValidationError("email and password are required")
	}

	u, err := uc.userRepo.GetByEmail(ctx, vo.NormalizeEmail(cmd.Email))
	if err != nil {
		uc.logger.Errorw("failed to get user by email", "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil {
		return nil, errors.NewUnauthorizedError(errMsgInvalidCredentials)
	}
	if err := uc.hasher.Verify(cmd.Password, u.PasswordHash()); err != nil {
		uc.logger.Warnw("login failed", "user_id", u.ID(), "ip", cmd.ClientIP)
		return nil, errors.NewUnauthorizedError(errMsgInvalidCredentials)
	}

	return issue(uc.tokens, uc.logger, u, "password")
}

func issue(tokens TokenService, log logger.Interface, u *directory.User, method string) (*AuthResult, error) {
	if !u.IsActive() {
		log.Warnw("inactive user attempted to sign in", "user_id", u.ID(), "method", method)
		return nil, errors.NewUnauthorizedError("account is inactive")
	}
	pair, err := tokens.Generate(u.ID())
	if err != nil {
		log.Errorw("failed to generate tokens", "user_id", u.ID(), "error", err)
		return nil, errors.NewInternalError("failed to sign in")
	}
	log.Infow("user signed in", "user_id", u.ID(), "method", method)
	return &AuthResult{User: u, Tokens: pair}, nil
}

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/assistitk12/assistitk12/internal/domain/access"
	"github.com/assistitk12/assistitk12/internal/domain/directory"
	"github.com/assistitk12/assistitk12/internal/shared/constants"
	"github.com/assistitk12/assistitk12/internal/shared/logger"
	"github.com/assistitk12/assistitk12/internal/shared/utils"
)

// AccessTokenVerifier validates an access token and returns its subject.
type AccessTokenVerifier interface {
	VerifyAccess(token string) (uint, error)
}

// UserLookup is the slice of the user repository the middleware needs.
type UserLookup interface {
	GetByID(ctx context.Context, id uint) (*directory.User, error)
}

type AuthMiddleware struct {
	tokens   AccessTokenVerifier
	users    UserLookup
	resolver access.Resolver
	logger   logger.Interface
}

func NewAuthMiddleware(tokens AccessTokenVerifier, users UserLookup, resolver access.Resolver, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:   tokens,
		users:    users,
		resolver: resolver,
		logger:   logger,
	}
}

// RequireAuth authenticates the request and attaches the caller's
// access.Actor to both the gin context and the request context. The user
// row is re-read on every request so deactivation and role changes apply
// immediately.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		userID, err := m.tokens.VerifyAccess(token)
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		u, err := m.users.GetByID(ctx, userID)
		if err != nil {
			m.logger.Errorw("failed to load authenticated user", "user_id", userID, "error", err)
			utils.ErrorResponse(c, http.StatusInternalServerError, constants.ErrMsgInternalServerError)
			c.Abort()
			return
		}
		if u == nil || !u.IsActive() {
			utils.ErrorResponse(c, http.StatusUnauthorized, "account is not active")
			c.Abort()
			return
		}

		caps, err := m.resolver.Capabilities(ctx, u.RoleID())
		if err != nil {
			m.logger.Errorw("failed to resolve capabilities", "user_id", userID, "role_id", u.RoleID(), "error", err)
			utils.ErrorResponse(c, http.StatusInternalServerError, constants.ErrMsgInternalServerError)
			c.Abort()
			return
		}

		actor := access.Actor{
			UserID:       u.ID(),
			RoleID:       u.RoleID(),
			SiteID:       u.SiteID(),
			Capabilities: caps,
		}
		c.Set(constants.ContextKeyUserID, u.ID())
		c.Set(constants.ContextKeyActor, actor)
		c.Request = c.Request.WithContext(access.WithActor(ctx, actor))

		c.Next()
	}
}

// ActorFrom returns the actor set by RequireAuth.
func ActorFrom(c *gin.Context) (access.Actor, bool) {
	if v, ok := c.Get(constants.ContextKeyActor); ok {
		if a, ok := v.(access.Actor); ok {
			return a, true
		}
	}
	return access.ActorFromContext(c.Request.Context())
}

// cookie first, then a Bearer header
func extractToken(c *gin.Context) string {
	if token := utils.GetTokenFromCookie(c, utils.AccessTokenCookie); token != "" {
		return token
	}
	header := c.GetHeader(constants.HeaderAuthorization)
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/assistitk12/assistitk12/internal/domain/access"
	"github.com/assistitk12/assistitk12/internal/shared/constants"
	"github.com/assistitk12/assistitk12/internal/shared/utils"
)

// RequireCapability rejects callers whose actor lacks any of caps. It must
// run after RequireAuth. Use cases repeat the check; routing through this
// keeps whole route groups closed.
func RequireCapability(caps ...access.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
			c.Abort()
			return
		}
		for _, capability := range caps {
			if !actor.Can(capability) {
				utils.ErrorResponse(c, http.StatusForbidden, constants.ErrMsgForbidden)
				c.Abort()
				return
			}
		}
		c.Next()
	}
}

package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/assistitk12/assistitk12/internal/shared/config"
)

const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
	OAuthStateCookie   = "oauth_state"
)

// SetAuthCookies sets the access and refresh tokens as HttpOnly cookies.
func SetAuthCookies(c *gin.Context, cfg config.CookieConfig, accessToken, refreshToken string, accessMaxAge, refreshMaxAge int) {
	setCookie(c, cfg, AccessTokenCookie, accessToken, accessMaxAge)
	setCookie(c, cfg, RefreshTokenCookie, refreshToken, refreshMaxAge)
}

func ClearAuthCookies(c *gin.Context, cfg config.CookieConfig) {
	setCookie(c, cfg, AccessTokenCookie, "", -1)
	setCookie(c, cfg, RefreshTokenCookie, "", -1)
}

// SetOAuthStateCookie stores the OAuth state for the callback to compare.
func SetOAuthStateCookie(c *gin.Context, cfg config.CookieConfig, state string) {
	setCookie(c, cfg, OAuthStateCookie, state, 600)
}

func ClearOAuthStateCookie(c *gin.Context, cfg config.CookieConfig) {
	setCookie(c, cfg, OAuthStateCookie, "", -1)
}

// GetTokenFromCookie returns the named cookie value or "".
func GetTokenFromCookie(c *gin.Context, cookieName string) string {
	token, err := c.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return token
}

func setCookie(c *gin.Context, cfg config.CookieConfig, name, value string, maxAge int) {
	c.SetSameSite(parseSameSite(cfg.SameSite))
	c.SetCookie(name, value, maxAge, cfg.Path, cfg.Domain, cfg.Secure, true)
}

func parseSameSite(sameSite string) http.SameSite {
	switch sameSite {
	case "Strict":
		return http.SameSiteStrictMode
	case "None":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

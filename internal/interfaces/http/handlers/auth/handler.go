package auth

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	authUsecases "github.com/assistitk12/assistitk12/internal/application/auth/usecases"
	directorydto "github.com/assistitk12/assistitk12/internal/application/directory/dto"
	directoryUsecases "github.com/assistitk12/assistitk12/internal/application/directory/usecases"
	"github.com/assistitk12/assistitk12/internal/domain/access"
	"github.com/assistitk12/assistitk12/internal/interfaces/http/middleware"
	"github.com/assistitk12/assistitk12/internal/shared/config"
	"github.com/assistitk12/assistitk12/internal/shared/errors"
	"github.com/assistitk12/assistitk12/internal/shared/logger"
	"github.com/assistitk12/assistitk12/internal/shared/utils"
)

type LoginExecutor interface {
	Execute(ctx context.Context, cmd authUsecases.LoginCommand) (*authUsecases.AuthResult, error)
}

type RefreshExecutor interface {
	Execute(ctx context.Context, refreshToken string) (*authUsecases.AuthResult, error)
}

type LogoutExecutor interface {
	Execute(ctx context.Context, refreshToken string) error
}

type ExternalLoginExecutor interface {
	Start(ctx context.Context) (string, error)
	Callback(ctx context.Context, state, code string) (*authUsecases.AuthResult, error)
}

type CurrentUserGetter interface {
	Execute(ctx context.Context, actor access.Actor, userID uint) (*directorydto.UserDTO, error)
}

type ChangePasswordExecutor interface {
	Execute(ctx context.Context, cmd directoryUsecases.ChangePasswordCommand) error
}

type AuthHandler struct {
	login          LoginExecutor
	refresh        RefreshExecutor
	logout         LogoutExecutor
	external       ExternalLoginExecutor
	currentUser    CurrentUserGetter
	changePassword ChangePasswordExecutor
	cookieConfig   config.CookieConfig
	// redirect target after an external sign-in completes
	frontendURL string
	logger      logger.Interface
}

// NewAuthHandler builds the handler. external may be nil when Google
// sign-in is not configured.
func NewAuthHandler(
	login LoginExecutor,
	refresh RefreshExecutor,
	logout LogoutExecutor,
	external ExternalLoginExecutor,
	currentUser CurrentUserGetter,
	changePassword ChangePasswordExecutor,
	cookieConfig config.CookieConfig,
	frontendURL string,
	logger logger.Interface,
) *AuthHandler {
	return &AuthHandler{
		login:          login,
		refresh:        refresh,
		logout:         logout,
		external:       external,
		currentUser:    currentUser,
		changePassword: changePassword,
		cookieConfig:   cookieConfig,
		frontendURL:    frontendURL,
		logger:         logger,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// SessionResponse is returned by login and refresh.
type SessionResponse struct {
	UserID            uint   `json:"user_id"`
	Email             string `json:"email"`
	FullName          string `json:"full_name"`
	MustResetPassword bool   `json:"must_reset_password"`
	AccessToken       string `json:"access_token"`
	RefreshToken      string `json:"refresh_token"`
	ExpiresIn         int64  `json:"expires_in"`
}

// Login handles POST /auth/login
//
//	@Summary	Sign in with email and password
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		LoginRequest	true	"Credentials"
//	@Success	200		{object}	utils.APIResponse{data=SessionResponse}
//	@Failure	401		{object}	utils.APIResponse
//	@Failure	429		{object}	utils.APIResponse
//	@Router		/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.login.Execute(c.Request.Context(), authUsecases.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
		ClientIP: c.ClientIP(),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.startSession(c, result)
	utils.SuccessResponse(c, http.StatusOK, "login successful", toSessionResponse(result))
}

// Refresh handles POST /auth/refresh
//
//	@Summary	Exchange a refresh token for a new token pair
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		RefreshTokenRequest	false	"Refresh token when not sent as a cookie"
//	@Success	200		{object}	utils.APIResponse{data=SessionResponse}
//	@Router		/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	token := h.refreshToken(c)
	if token == "" {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("missing refresh token"))
		return
	}

	result, err := h.refresh.Execute(c.Request.Context(), token)
	if err != nil {
		utils.ClearAuthCookies(c, h.cookieConfig)
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.startSession(c, result)
	utils.SuccessResponse(c, http.StatusOK, "token refreshed", toSessionResponse(result))
}

// Logout handles POST /auth/logout
//
//	@Summary	Revoke the refresh token and clear cookies
//	@Tags		auth
//	@Success	200	{object}	utils.APIResponse
//	@Router		/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if token := h.refreshToken(c); token != "" {
		if err := h.logout.Execute(c.Request.Context(), token); err != nil {
			h.logger.Warnw("logout could not revoke token", "error", err)
		}
	}
	utils.ClearAuthCookies(c, h.cookieConfig)
	utils.SuccessResponse(c, http.StatusOK, "logged out", nil)
}

// Me handles GET /auth/me
//
//	@Summary	The signed-in user
//	@Tags		auth
//	@Produce	json
//	@Success	200	{object}	utils.APIResponse{data=directorydto.UserDTO}
//	@Router		/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("user not authenticated"))
		return
	}

	user, err := h.currentUser.Execute(c.Request.Context(), actor, actor.UserID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"user":         user,
		"capabilities": actor.Capabilities.List(),
	})
}

// ChangePassword handles POST /auth/password
//
//	@Summary	Change the signed-in user's password
//	@Tags		auth
//	@Accept		json
//	@Param		body	body		ChangePasswordRequest	true	"Passwords"
//	@Success	200		{object}	utils.APIResponse
//	@Router		/auth/password [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("user not authenticated"))
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	if err := h.changePassword.Execute(c.Request.Context(), directoryUsecases.ChangePasswordCommand{
		UserID:          actor.UserID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "password changed", nil)
}

// GoogleLogin handles GET /auth/google/login
//
//	@Summary	Redirect to Google sign-in
//	@Tags		auth
//	@Success	302
//	@Router		/auth/google/login [get]
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	if h.external == nil {
		utils.ErrorResponseWithError(c, errors.NewNotFoundError("google sign-in is not enabled"))
		return
	}

	authURL, err := h.external.Start(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.Redirect(http.StatusFound, authURL)
}

// GoogleCallback handles GET /auth/google/callback
//
//	@Summary	Complete Google sign-in
//	@Tags		auth
//	@Param		state	query	string	true	"OAuth state"
//	@Param		code	query	string	true	"Authorization code"
//	@Success	302
//	@Router		/auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	if h.external == nil {
		utils.ErrorResponseWithError(c, errors.NewNotFoundError("google sign-in is not enabled"))
		return
	}

	if oauthErr := c.Query("error"); oauthErr != "" {
		h.logger.Warnw("google sign-in was declined", "error", oauthErr)
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("sign-in was cancelled"))
		return
	}

	result, err := h.external.Callback(c.Request.Context(), c.Query("state"), c.Query("code"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.startSession(c, result)
	target := h.frontendURL
	if target == "" {
		target = "/"
	}
	c.Redirect(http.StatusFound, target)
}

func (h *AuthHandler) startSession(c *gin.Context, result *authUsecases.AuthResult) {
	utils.SetAuthCookies(c, h.cookieConfig,
		result.Tokens.AccessToken, result.Tokens.RefreshToken,
		int(result.Tokens.ExpiresIn), int(result.Tokens.RefreshExpiresIn))
}

// cookie first, then the JSON body
func (h *AuthHandler) refreshToken(c *gin.Context) string {
	if token := utils.GetTokenFromCookie(c, utils.RefreshTokenCookie); token != "" {
		return token
	}
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return ""
	}
	return req.RefreshToken
}

func toSessionResponse(r *authUsecases.AuthResult) SessionResponse {
	return SessionResponse{
		UserID:            r.User.ID(),
		Email:             r.User.Email(),
		FullName:          r.User.FullName(),
		MustResetPassword: r.User.MustResetPassword(),
		AccessToken:       r.Tokens.AccessToken,
		RefreshToken:      r.Tokens.RefreshToken,
		ExpiresIn:         r.Tokens.ExpiresIn,
	}
}

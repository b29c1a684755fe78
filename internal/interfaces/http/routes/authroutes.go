package routes

import (
	"github.com/gin-gonic/gin"

	authhandlers "github.com/assistitk12/assistitk12/internal/interfaces/http/handlers/auth"
	"github.com/assistitk12/assistitk12/internal/interfaces/http/middleware"
)

type AuthRouteConfig struct {
	AuthHandler    *authhandlers.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
}

func SetupAuthRoutes(api *gin.RouterGroup, config *AuthRouteConfig) {
	auth := api.Group("/auth")
	{
		auth.POST("/login", config.AuthHandler.Login)
		auth.POST("/refresh", config.AuthHandler.Refresh)
		auth.POST("/logout", config.AuthHandler.Logout)
		auth.GET("/google/login", config.AuthHandler.GoogleLogin)
		auth.GET("/google/callback", config.AuthHandler.GoogleCallback)

		auth.GET("/me", config.AuthMiddleware.RequireAuth(), config.AuthHandler.Me)
		auth.POST("/password", config.AuthMiddleware.RequireAuth(), config.AuthHandler.ChangePassword)
	}
}

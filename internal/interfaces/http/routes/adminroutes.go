package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/assistitk12/assistitk12/internal/domain/access"
	adminhandlers "github.com/assistitk12/assistitk12/internal/interfaces/http/handlers/admin"
	"github.com/assistitk12/assistitk12/internal/interfaces/http/middleware"
)

type AdminRouteConfig struct {
	BannerHandler       *adminhandlers.BannerHandler
	OrganizationHandler *adminhandlers.OrganizationHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

func SetupAdminRoutes(api *gin.RouterGroup, config *AdminRouteConfig) {
	api.GET("/banners/active", config.BannerHandler.ActiveBanners)

	banners := api.Group("/banners")
	banners.Use(config.AuthMiddleware.RequireAuth(), middleware.RequireCapability(access.ManageDirectory))
	{
		banners.GET("", config.BannerHandler.ListBanners)
		banners.POST("", config.BannerHandler.CreateBanner)
		banners.PUT("/:id", config.BannerHandler.UpdateBanner)
		banners.PATCH("/:id/status", config.BannerHandler.SetBannerStatus)
		banners.DELETE("/:id", config.BannerHandler.DeleteBanner)
	}

	org := api.Group("/organization")
	org.Use(config.AuthMiddleware.RequireAuth(), middleware.RequireCapability(access.ManageDirectory))
	{
		org.GET("", config.OrganizationHandler.GetOrganization)
		org.PUT("", config.OrganizationHandler.UpdateOrganization)
	}
}

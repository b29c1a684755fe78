package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/assistitk12/assistitk12/internal/domain/access"
	directoryhandlers "github.com/assistitk12/assistitk12/internal/interfaces/http/handlers/directory"
	"github.com/assistitk12/assistitk12/internal/interfaces/http/middleware"
)

type DirectoryRouteConfig struct {
	UserHandler    *directoryhandlers.UserHandler
	CatalogHandler *directoryhandlers.CatalogHandler
	AuthMiddleware *middleware.AuthMiddleware
}

func SetupDirectoryRoutes(api *gin.RouterGroup, config *DirectoryRouteConfig) {
	manageDirectory := middleware.RequireCapability(access.ManageDirectory)
	manageUsers := middleware.RequireCapability(access.ManageUsers)

	users := api.Group("/users")
	users.Use(config.AuthMiddleware.RequireAuth())
	{
		users.GET("", manageUsers, config.UserHandler.ListUsers)
		users.POST("", manageDirectory, config.UserHandler.CreateUser)
		users.POST("/import", manageDirectory, config.UserHandler.ImportUsers)

		// self-reads are allowed, so no capability gate here
		users.GET("/:id", config.UserHandler.GetUser)
		users.PATCH("/:id", manageUsers, config.UserHandler.UpdateUser)
		users.DELETE("/:id", manageDirectory, config.UserHandler.DeleteUser)
	}

	roles := api.Group("/roles")
	roles.Use(config.AuthMiddleware.RequireAuth(), manageDirectory)
	{
		roles.GET("", config.CatalogHandler.ListRoles)
		roles.POST("", config.CatalogHandler.CreateRole)
		roles.PUT("/:id", config.CatalogHandler.UpdateRole)
		roles.DELETE("/:id", config.CatalogHandler.DeleteRole)
	}

	sites := api.Group("/sites")
	sites.Use(config.AuthMiddleware.RequireAuth())
	{
		sites.GET("", config.CatalogHandler.ListSites)
		sites.POST("", manageDirectory, config.CatalogHandler.CreateSite)
		sites.PUT("/:id", manageDirectory, config.CatalogHandler.UpdateSite)
		sites.DELETE("/:id", manageDirectory, config.CatalogHandler.DeleteSite)
	}

	titles := api.Group("/titles")
	titles.Use(config.AuthMiddleware.RequireAuth())
	{
		titles.GET("", config.CatalogHandler.ListTitles)
		titles.POST("", manageDirectory, config.CatalogHandler.CreateTitle)
		titles.PUT("/:id", manageDirectory, config.CatalogHandler.UpdateTitle)
		titles.DELETE("/:id", manageDirectory, config.CatalogHandler.DeleteTitle)
	}
}

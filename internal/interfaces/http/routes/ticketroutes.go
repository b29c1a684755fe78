package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/assistitk12/assistitk12/internal/domain/access"
	tickethandlers "github.com/assistitk12/assistitk12/internal/interfaces/http/handlers/ticket"
	"github.com/assistitk12/assistitk12/internal/interfaces/http/middleware"
)

type TicketRouteConfig struct {
	TicketHandler  *tickethandlers.TicketHandler
	AuthMiddleware *middleware.AuthMiddleware
}

func SetupTicketRoutes(api *gin.RouterGroup, config *TicketRouteConfig) {
	h := config.TicketHandler

	api.GET("/dashboard", config.AuthMiddleware.RequireAuth(), h.Dashboard)

	tickets := api.Group("/tickets")
	tickets.Use(config.AuthMiddleware.RequireAuth())
	{
		// static segments before /:id
		tickets.POST("", h.CreateTicket)
		tickets.GET("", h.ListTickets)
		tickets.GET("/assignable-users",
			middleware.RequireCapability(access.ActOnTickets),
			h.ListAssignableUsers)

		tickets.POST("/:id/comments", h.AddComment)
		tickets.GET("/:id/attachments/:attachment_id", h.DownloadAttachment)
		tickets.DELETE("/:id/attachments/:attachment_id", h.DeleteAttachment)

		tickets.GET("/:id", h.GetTicket)
		tickets.PATCH("/:id", h.UpdateTicket)
		tickets.DELETE("/:id",
			middleware.RequireCapability(access.DeleteTickets),
			h.DeleteTicket)
	}
}

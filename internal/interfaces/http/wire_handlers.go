package http

import (
	"github.com/assistitk12/assistitk12/internal/infrastructure/scheduler"
	adminHandlers "github.com/assistitk12/assistitk12/internal/interfaces/http/handlers/admin"
	authHandlers "github.com/assistitk12/assistitk12/internal/interfaces/http/handlers/auth"
	directoryHandlers "github.com/assistitk12/assistitk12/internal/interfaces/http/handlers/directory"
	ticketHandlers "github.com/assistitk12/assistitk12/internal/interfaces/http/handlers/ticket"
	"github.com/assistitk12/assistitk12/internal/interfaces/http/middleware"
)

// multipartOverhead is added to the attachment limit for form fields and
// part headers.
const multipartOverhead = 1 << 20

// allHandlers holds every HTTP handler instance.
type allHandlers struct {
	authHandler         *authHandlers.AuthHandler
	ticketHandler       *ticketHandlers.TicketHandler
	userHandler         *directoryHandlers.UserHandler
	catalogHandler      *directoryHandlers.CatalogHandler
	bannerHandler       *adminHandlers.BannerHandler
	organizationHandler *adminHandlers.OrganizationHandler
}

func (c *Container) initHandlers() {
	u := c.ucs

	// A nil *ExternalLoginUseCase must stay a nil interface so the handler
	// can report Google sign-in as disabled.
	var external authHandlers.ExternalLoginExecutor
	if u.external != nil {
		external = u.external
	}

	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, c.repos.userRepo, c.enforcer, c.log)

	c.hdlrs = &allHandlers{
		authHandler: authHandlers.NewAuthHandler(
			u.login, u.refresh, u.logout, external, u.getUser, u.changePassword,
			c.cfg.Auth.Cookie, c.cfg.Server.BaseURL, c.log,
		),
		ticketHandler: ticketHandlers.NewTicketHandler(ticketHandlers.UseCases{
			Create:           u.createTicket,
			Update:           u.updateTicket,
			AddComment:       u.addComment,
			Get:              u.getTicket,
			List:             u.listTickets,
			Delete:           u.deleteTicket,
			GetAttachment:    u.getAttachment,
			DeleteAttachment: u.deleteAttachment,
			Assignable:       u.assignable,
			Dashboard:        u.dashboard,
		}, c.cfg.Storage.MaxUploadBytes+multipartOverhead, c.log),
		userHandler: directoryHandlers.NewUserHandler(
			u.listUsers, u.getUser, u.createUser, u.updateUser, u.deleteUser, u.importUsers, c.log,
		),
		catalogHandler:      directoryHandlers.NewCatalogHandler(u.roles, u.sites, u.titles, c.log),
		bannerHandler:       adminHandlers.NewBannerHandler(u.banners, c.log),
		organizationHandler: adminHandlers.NewOrganizationHandler(u.organization, c.log),
	}
}

func (c *Container) initScheduler() error {
	manager, err := scheduler.NewSchedulerManager(c.log)
	if err != nil {
		return err
	}
	if err := manager.RegisterOrphanSweepJob(c.ucs.sweepOrphans, c.cfg.Storage.OrphanSweepCron); err != nil {
		return err
	}
	c.schedulerManager = manager
	return nil
}

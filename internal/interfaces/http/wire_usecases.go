package http

import (
	authUsecases "github.com/assistitk12/assistitk12/internal/application/auth/usecases"
	bannerUsecases "github.com/assistitk12/assistitk12/internal/application/banner/usecases"
	directoryUsecases "github.com/assistitk12/assistitk12/internal/application/directory/usecases"
	orgUsecases "github.com/assistitk12/assistitk12/internal/application/organization/usecases"
	ticketUsecases "github.com/assistitk12/assistitk12/internal/application/ticket/usecases"
)

// allUseCases holds every use case instance used by handlers and jobs.
type allUseCases struct {
	// Auth
	login          *authUsecases.LoginUseCase
	refresh        *authUsecases.RefreshTokenUseCase
	logout         *authUsecases.LogoutUseCase
	external       *authUsecases.ExternalLoginUseCase
	changePassword *directoryUsecases.ChangePasswordUseCase

	// Directory
	listUsers   *directoryUsecases.ListUsersUseCase
	getUser     *directoryUsecases.GetUserUseCase
	createUser  *directoryUsecases.CreateUserUseCase
	updateUser  *directoryUsecases.UpdateUserUseCase
	deleteUser  *directoryUsecases.DeleteUserUseCase
	importUsers *directoryUsecases.ImportUsersUseCase
	roles       *directoryUsecases.RoleUseCases
	sites       *directoryUsecases.SiteUseCases
	titles      *directoryUsecases.TitleUseCases

	// Tickets
	createTicket     *ticketUsecases.CreateTicketUseCase
	updateTicket     *ticketUsecases.UpdateTicketUseCase
	addComment       *ticketUsecases.AddCommentUseCase
	getTicket        *ticketUsecases.GetTicketUseCase
	listTickets      *ticketUsecases.ListTicketsUseCase
	deleteTicket     *ticketUsecases.DeleteTicketUseCase
	getAttachment    *ticketUsecases.GetAttachmentUseCase
	deleteAttachment *ticketUsecases.DeleteAttachmentUseCase
	assignable       *ticketUsecases.ListAssignableUsersUseCase
	dashboard        *ticketUsecases.GetDashboardUseCase
	sweepOrphans     *ticketUsecases.SweepOrphanAttachmentsUseCase

	// Administration
	banners      *bannerUsecases.BannerUseCases
	organization *orgUsecases.OrganizationUseCases
}

func (c *Container) initUseCases() {
	r := c.repos
	s := c.svcs
	maxUpload := c.cfg.Storage.MaxUploadBytes

	ucs := &allUseCases{
		login:          authUsecases.NewLoginUseCase(r.userRepo, s.hasher, c.jwtSvc, s.limiter, c.log),
		refresh:        authUsecases.NewRefreshTokenUseCase(r.userRepo, c.jwtSvc, s.revoker, c.log),
		logout:         authUsecases.NewLogoutUseCase(c.jwtSvc, s.revoker, c.log),
		changePassword: directoryUsecases.NewChangePasswordUseCase(r.userRepo, s.hasher, c.log),

		listUsers:  directoryUsecases.NewListUsersUseCase(r.userRepo, r.roleRepo, r.siteRepo, c.log),
		getUser:    directoryUsecases.NewGetUserUseCase(r.userRepo, r.roleRepo, r.siteRepo, c.log),
		createUser: directoryUsecases.NewCreateUserUseCase(r.userRepo, r.roleRepo, r.siteRepo, s.hasher, s.assignables, c.log),
		updateUser: directoryUsecases.NewUpdateUserUseCase(r.userRepo, r.roleRepo, r.siteRepo, s.hasher, s.assignables, c.log),
		deleteUser: directoryUsecases.NewDeleteUserUseCase(r.userRepo, r.ticketRepo, s.assignables, c.log),
		importUsers: directoryUsecases.NewImportUsersUseCase(
			r.userRepo, r.roleRepo, r.siteRepo, r.uploadLogRepo,
			s.sheets, s.hasher, r.txManager, s.assignables, c.log,
		),
		roles:  directoryUsecases.NewRoleUseCases(r.roleRepo, r.userRepo, c.enforcer, c.log),
		sites:  directoryUsecases.NewSiteUseCases(r.siteRepo, r.userRepo, r.ticketRepo, c.log),
		titles: directoryUsecases.NewTitleUseCases(r.titleRepo, r.ticketRepo, c.log),

		getTicket:   ticketUsecases.NewGetTicketUseCase(r.ticketRepo, r.commentRepo, r.attachmentRepo, r.titleRepo, r.userRepo, c.log),
		listTickets: ticketUsecases.NewListTicketsUseCase(r.ticketRepo, r.titleRepo, r.userRepo, c.log),
		deleteTicket: ticketUsecases.NewDeleteTicketUseCase(
			r.ticketRepo, r.commentRepo, r.attachmentRepo, s.files, r.txManager, c.log,
		),
		getAttachment:    ticketUsecases.NewGetAttachmentUseCase(r.ticketRepo, r.attachmentRepo, s.files, c.log),
		deleteAttachment: ticketUsecases.NewDeleteAttachmentUseCase(r.ticketRepo, r.attachmentRepo, s.files, r.txManager, c.log),
		assignable:       ticketUsecases.NewListAssignableUsersUseCase(r.userRepo, c.enforcer, s.assignables, c.log),
		dashboard:        ticketUsecases.NewGetDashboardUseCase(r.ticketRepo, r.titleRepo, c.log),
		sweepOrphans: ticketUsecases.NewSweepOrphanAttachmentsUseCase(
			s.files, s.files, r.attachmentRepo, ticketUsecases.DefaultOrphanGrace, c.log,
		),

		banners:      bannerUsecases.NewBannerUseCases(r.bannerRepo, r.txManager, s.markdown, c.log),
		organization: orgUsecases.NewOrganizationUseCases(r.orgRepo, s.cipher, c.mailer, c.log),
	}

	ucs.createTicket = ticketUsecases.NewCreateTicketUseCase(
		r.ticketRepo, r.commentRepo, r.attachmentRepo, r.titleRepo, r.userRepo,
		s.files, maxUpload, s.markdown, r.txManager, s.notifier, c.log,
	)
	ucs.updateTicket = ticketUsecases.NewUpdateTicketUseCase(
		r.ticketRepo, r.commentRepo, r.attachmentRepo, r.titleRepo, r.userRepo, c.enforcer,
		s.files, maxUpload, s.markdown, r.txManager, s.notifier, c.log,
	)
	ucs.addComment = ticketUsecases.NewAddCommentUseCase(ucs.updateTicket, c.log)

	if s.google != nil {
		ucs.external = authUsecases.NewExternalLoginUseCase(s.google, s.states, r.userRepo, c.jwtSvc, c.log)
	}

	c.ucs = ucs
}

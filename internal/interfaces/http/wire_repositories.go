package http

import (
	"github.com/assistitk12/assistitk12/internal/domain/banner"
	"github.com/assistitk12/assistitk12/internal/domain/directory"
	"github.com/assistitk12/assistitk12/internal/domain/organization"
	"github.com/assistitk12/assistitk12/internal/domain/ticket"
	"github.com/assistitk12/assistitk12/internal/infrastructure/repository"
	"github.com/assistitk12/assistitk12/internal/shared/db"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	userRepo       directory.UserRepository
	roleRepo       directory.RoleRepository
	siteRepo       directory.SiteRepository
	titleRepo      directory.TitleRepository
	uploadLogRepo  directory.BulkUploadLogRepository
	ticketRepo     ticket.TicketRepository
	commentRepo    ticket.CommentRepository
	attachmentRepo ticket.AttachmentRepository
	bannerRepo     banner.Repository
	orgRepo        organization.Repository

	txManager *db.TransactionManager
}

func (c *Container) initRepositories() {
	c.repos = &repositories{
		userRepo:       repository.NewUserRepository(c.db),
		roleRepo:       repository.NewRoleRepository(c.db),
		siteRepo:       repository.NewSiteRepository(c.db),
		titleRepo:      repository.NewTitleRepository(c.db),
		uploadLogRepo:  repository.NewBulkUploadLogRepository(c.db),
		ticketRepo:     repository.NewTicketRepository(c.db),
		commentRepo:    repository.NewCommentRepository(c.db),
		attachmentRepo: repository.NewAttachmentRepository(c.db),
		bannerRepo:     repository.NewBannerRepository(c.db),
		orgRepo:        repository.NewOrganizationRepository(c.db),
		txManager:      db.NewTransactionManager(c.db),
	}
}

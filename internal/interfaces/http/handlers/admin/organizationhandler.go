package admin

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/assistitk12/assistitk12/internal/application/organization/dto"
	"github.com/assistitk12/assistitk12/internal/application/organization/usecases"
	"github.com/assistitk12/assistitk12/internal/domain/access"
	"github.com/assistitk12/assistitk12/internal/shared/logger"
	"github.com/assistitk12/assistitk12/internal/shared/utils"
)

type OrganizationService interface {
	Get(ctx context.Context, actor access.Actor) (*dto.OrganizationDTO, error)
	Update(ctx context.Context, cmd usecases.UpdateOrganizationCommand) (*usecases.UpdateOrganizationResult, error)
}

var _ OrganizationService = (*usecases.OrganizationUseCases)(nil)

type OrganizationHandler struct {
	org    OrganizationService
	logger logger.Interface
}

func NewOrganizationHandler(org OrganizationService, logger logger.Interface) *OrganizationHandler {
	return &OrganizationHandler{org: org, logger: logger}
}

// UpdateOrganizationRequest carries the organization profile. A nil
// mail_password keeps the stored secret.
type UpdateOrganizationRequest struct {
	Name              string  `json:"name" binding:"required,max=100"`
	SiteVersion       string  `json:"site_version" binding:"max=20"`
	LogoPath          string  `json:"logo_path" binding:"max=255"`
	MailServer        string  `json:"mail_server" binding:"omitempty,hostname_rfc1123"`
	MailPort          int     `json:"mail_port" binding:"min=0,max=65535"`
	MailUseTLS        bool    `json:"mail_use_tls"`
	MailUseSSL        bool    `json:"mail_use_ssl"`
	MailUsername      string  `json:"mail_username" binding:"max=255"`
	MailSender        string  `json:"mail_default_sender" binding:"omitempty,email"`
	MailPassword      *string `json:"mail_password"`
	ClearMailPassword bool    `json:"clear_mail_password"`
}

// GetOrganization handles GET /organization
//
//	@Summary	Organization profile and mail settings
//	@Tags		organization
//	@Produce	json
//	@Success	200	{object}	utils.APIResponse{data=dto.OrganizationDTO}
//	@Router		/organization [get]
func (h *OrganizationHandler) GetOrganization(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	org, err := h.org.Get(c.Request.Context(), actor)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", org)
}

// UpdateOrganization handles PUT /organization
//
//	@Summary	Update the organization profile
//	@Tags		organization
//	@Accept		json
//	@Param		body	body		UpdateOrganizationRequest	true	"Organization"
//	@Success	200		{object}	utils.APIResponse{data=dto.OrganizationDTO}
//	@Router		/organization [put]
func (h *OrganizationHandler) UpdateOrganization(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req UpdateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.org.Update(c.Request.Context(), usecases.UpdateOrganizationCommand{
		Actor:             actor,
		Name:              req.Name,
		SiteVersion:       req.SiteVersion,
		LogoPath:          req.LogoPath,
		MailServer:        req.MailServer,
		MailPort:          req.MailPort,
		MailUseTLS:        req.MailUseTLS,
		MailUseSSL:        req.MailUseSSL,
		MailUsername:      req.MailUsername,
		MailSender:        req.MailSender,
		MailPassword:      req.MailPassword,
		ClearMailPassword: req.ClearMailPassword,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, changedMessage(result.Changed, "Organization"), result.Organization)
}

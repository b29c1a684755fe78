package ticket

import (
	"context"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/assistitk12/assistitk12/internal/application/ticket/dto"
	"github.com/assistitk12/assistitk12/internal/application/ticket/usecases"
	"github.com/assistitk12/assistitk12/internal/domain/directory"
	"github.com/assistitk12/assistitk12/internal/interfaces/http/middleware"
	"github.com/assistitk12/assistitk12/internal/shared/errors"
	"github.com/assistitk12/assistitk12/internal/shared/logger"
	"github.com/assistitk12/assistitk12/internal/shared/utils"
)

type CreateTicketExecutor interface {
	Execute(ctx context.Context, cmd usecases.CreateTicketCommand) (*usecases.CreateTicketResult, error)
}

type UpdateTicketExecutor interface {
	Execute(ctx context.Context, cmd usecases.UpdateTicketCommand) (*usecases.UpdateTicketResult, error)
}

type AddCommentExecutor interface {
	Execute(ctx context.Context, cmd usecases.AddCommentCommand) (*usecases.AddCommentResult, error)
}

type GetTicketExecutor interface {
	Execute(ctx context.Context, query usecases.GetTicketQuery) (*dto.TicketDTO, error)
}

type ListTicketsExecutor interface {
	Execute(ctx context.Context, query usecases.ListTicketsQuery) (*usecases.ListTicketsResult, error)
}

type DeleteTicketExecutor interface {
	Execute(ctx context.Context, cmd usecases.DeleteTicketCommand) error
}

type GetAttachmentExecutor interface {
	Execute(ctx context.Context, query usecases.GetAttachmentQuery) (*usecases.AttachmentDownload, error)
}

type DeleteAttachmentExecutor interface {
	Execute(ctx context.Context, cmd usecases.DeleteAttachmentCommand) error
}

type ListAssignableUsersExecutor interface {
	Execute(ctx context.Context) ([]directory.AssignableUser, error)
}

type GetDashboardExecutor interface {
	Execute(ctx context.Context, query usecases.DashboardQuery) (*dto.DashboardDTO, error)
}

// UseCases groups the executors the handler dispatches to.
type UseCases struct {
	Create           CreateTicketExecutor
	Update           UpdateTicketExecutor
	AddComment       AddCommentExecutor
	Get              GetTicketExecutor
	List             ListTicketsExecutor
	Delete           DeleteTicketExecutor
	GetAttachment    GetAttachmentExecutor
	DeleteAttachment DeleteAttachmentExecutor
	Assignable       ListAssignableUsersExecutor
	Dashboard        GetDashboardExecutor
}

type TicketHandler struct {
	uc           UseCases
	maxBodyBytes int64
	logger       logger.Interface
}

// NewTicketHandler builds the handler. maxBodyBytes bounds multipart
// requests and should leave headroom above the attachment limit.
func NewTicketHandler(uc UseCases, maxBodyBytes int64, logger logger.Interface) *TicketHandler {
	return &TicketHandler{
		uc:           uc,
		maxBodyBytes: maxBodyBytes,
		logger:       logger,
	}
}

// CreateTicket handles POST /tickets (multipart/form-data).
//
//	@Summary	Submit a ticket
//	@Tags		tickets
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		title_id	formData	int		true	"Issue title"
//	@Param		comment		formData	string	false	"Initial comment"
//	@Param		attachment	formData	file	false	"Attachment"
//	@Success	201			{object}	utils.APIResponse
//	@Router		/tickets [post]
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("user not authenticated"))
		return
	}
	h.limitBody(c)

	req, err := parseCreateForm(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	upload, closeFn, err := formAttachment(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	defer closeFn()

	result, err := h.uc.Create.Execute(c.Request.Context(), usecases.CreateTicketCommand{
		Actor:      actor,
		TitleID:    req.TitleID,
		Comment:    req.Comment,
		Attachment: upload,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Ticket submitted successfully")
}

// GetTicket handles GET /tickets/:id
//
//	@Summary	Ticket detail with comments and attachments
//	@Tags		tickets
//	@Produce	json
//	@Param		id	path		int	true	"Ticket ID"
//	@Success	200	{object}	utils.APIResponse{data=dto.TicketDTO}
//	@Router		/tickets/{id} [get]
func (h *TicketHandler) GetTicket(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("user not authenticated"))
		return
	}
	ticketID, err := utils.ParseUintParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Get.Execute(c.Request.Context(), usecases.GetTicketQuery{Actor: actor, TicketID: ticketID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListTickets handles GET /tickets
//
//	@Summary	Tickets visible to the caller, in queue order
//	@Tags		tickets
//	@Produce	json
//	@Param		site_id		query		int		false	"Site filter"
//	@Param		status		query		string	false	"Status filter"
//	@Param		assignee_id	query		int		false	"Assignee filter"
//	@Param		page		query		int		false	"Page"
//	@Param		page_size	query		int		false	"Page size"
//	@Success	200			{object}	utils.APIResponse{data=utils.ListResponse}
//	@Router		/tickets [get]
func (h *TicketHandler) ListTickets(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("user not authenticated"))
		return
	}
	query := parseListQuery(c)
	query.Actor = actor

	result, err := h.uc.List.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Tickets, result.Total, result.Page, result.PageSize)
}

// UpdateTicket handles PATCH /tickets/:id (multipart/form-data). Omitted
// fields are left unchanged; assignee_id="" unassigns.
//
//	@Summary	Update a ticket
//	@Tags		tickets
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		id			path		int		true	"Ticket ID"
//	@Param		title_id	formData	int		false	"Issue title"
//	@Param		status		formData	string	false	"Status"
//	@Param		assignee_id	formData	string	false	"Assignee, empty to unassign"
//	@Param		escalated	formData	bool	false	"Escalation flag"
//	@Param		comment		formData	string	false	"Comment"
//	@Param		attachment	formData	file	false	"Attachment"
//	@Success	200			{object}	utils.APIResponse
//	@Router		/tickets/{id} [patch]
func (h *TicketHandler) UpdateTicket(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("user not authenticated"))
		return
	}
	ticketID, err := utils.ParseUintParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	h.limitBody(c)

	cmd, err := parseUpdateForm(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	upload, closeFn, err := formAttachment(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	defer closeFn()

	cmd.Actor = actor
	cmd.TicketID = ticketID
	cmd.Attachment = upload

	result, err := h.uc.Update.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	message := "No changes made"
	if result.Changed {
		message = "Ticket updated successfully"
	}
	utils.SuccessResponse(c, http.StatusOK, message, result)
}

// AddComment handles POST /tickets/:id/comments
//
//	@Summary	Comment on a ticket
//	@Tags		tickets
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int					true	"Ticket ID"
//	@Param		body	body		AddCommentRequest	true	"Comment"
//	@Success	201		{object}	utils.APIResponse
//	@Router		/tickets/{id}/comments [post]
func (h *TicketHandler) AddComment(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("user not authenticated"))
		return
	}
	ticketID, err := utils.ParseUintParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for add comment", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.uc.AddComment.Execute(c.Request.Context(), usecases.AddCommentCommand{
		Actor:    actor,
		TicketID: ticketID,
		Text:     req.Text,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Comment added successfully")
}

// DeleteTicket handles DELETE /tickets/:id
//
//	@Summary	Delete a ticket with its comments and attachments
//	@Tags		tickets
//	@Param		id	path	int	true	"Ticket ID"
//	@Success	204
//	@Router		/tickets/{id} [delete]
func (h *TicketHandler) DeleteTicket(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("user not authenticated"))
		return
	}
	ticketID, err := utils.ParseUintParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.uc.Delete.Execute(c.Request.Context(), usecases.DeleteTicketCommand{Actor: actor, TicketID: ticketID}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// DownloadAttachment handles GET /tickets/:id/attachments/:attachment_id
//
//	@Summary	Download an attachment
//	@Tags		tickets
//	@Produce	octet-stream
//	@Param		id				path	int	true	"Ticket ID"
//	@Param		attachment_id	path	int	true	"Attachment ID"
//	@Success	200
//	@Router		/tickets/{id}/attachments/{attachment_id} [get]
func (h *TicketHandler) DownloadAttachment(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("user not authenticated"))
		return
	}
	ticketID, attachmentID, err := parseAttachmentParams(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	file, err := h.uc.GetAttachment.Execute(c.Request.Context(), usecases.GetAttachmentQuery{
		Actor:        actor,
		TicketID:     ticketID,
		AttachmentID: attachmentID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	defer file.Content.Close()

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": file.OriginalName})
	c.DataFromReader(http.StatusOK, file.Size, file.ContentType, file.Content, map[string]string{
		"Content-Disposition": disposition,
	})
}

// DeleteAttachment handles DELETE /tickets/:id/attachments/:attachment_id
//
//	@Summary	Remove an attachment
//	@Tags		tickets
//	@Param		id				path	int	true	"Ticket ID"
//	@Param		attachment_id	path	int	true	"Attachment ID"
//	@Success	204
//	@Router		/tickets/{id}/attachments/{attachment_id} [delete]
func (h *TicketHandler) DeleteAttachment(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("user not authenticated"))
		return
	}
	ticketID, attachmentID, err := parseAttachmentParams(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.uc.DeleteAttachment.Execute(c.Request.Context(), usecases.DeleteAttachmentCommand{
		Actor:        actor,
		TicketID:     ticketID,
		AttachmentID: attachmentID,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// ListAssignableUsers handles GET /tickets/assignable-users
//
//	@Summary	Users a ticket may be assigned to
//	@Tags		tickets
//	@Produce	json
//	@Success	200	{object}	utils.APIResponse
//	@Router		/tickets/assignable-users [get]
func (h *TicketHandler) ListAssignableUsers(c *gin.Context) {
	users, err := h.uc.Assignable.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if users == nil {
		users = []directory.AssignableUser{}
	}
	utils.SuccessResponse(c, http.StatusOK, "", users)
}

// Dashboard handles GET /dashboard
//
//	@Summary	Ticket counts and charts
//	@Tags		dashboard
//	@Produce	json
//	@Param		site_id	query		int	false	"Site filter"
//	@Param		year	query		int	false	"Year filter"
//	@Success	200		{object}	utils.APIResponse{data=dto.DashboardDTO}
//	@Router		/dashboard [get]
func (h *TicketHandler) Dashboard(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("user not authenticated"))
		return
	}

	result, err := h.uc.Dashboard.Execute(c.Request.Context(), usecases.DashboardQuery{
		Actor:  actor,
		SiteID: utils.ParseOptionalUintQuery(c, "site_id"),
		Year:   utils.ParseOptionalIntQuery(c, "year"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *TicketHandler) limitBody(c *gin.Context) {
	if h.maxBodyBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)
	}
}

package ticket

import (
	stderrors "errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/assistitk12/assistitk12/internal/application/ticket/usecases"
	"github.com/assistitk12/assistitk12/internal/shared/errors"
	"github.com/assistitk12/assistitk12/internal/shared/utils"
)

const attachmentField = "attachment"

type CreateTicketForm struct {
	TitleID uint   `form:"title_id" binding:"required,gt=0"`
	Comment string `form:"comment" binding:"max=10000"`
}

type AddCommentRequest struct {
	Text string `json:"text" binding:"required,max=10000"`
}

func parseCreateForm(c *gin.Context) (*CreateTicketForm, error) {
	var form CreateTicketForm
	if err := c.ShouldBind(&form); err != nil {
		if isBodyTooLarge(err) {
			return nil, errors.NewValidationError("request body too large")
		}
		return nil, utils.BindingError(err)
	}
	return &form, nil
}

// parseUpdateForm reads only the fields present in the form so that absent
// fields leave the ticket untouched.
func parseUpdateForm(c *gin.Context) (usecases.UpdateTicketCommand, error) {
	var cmd usecases.UpdateTicketCommand
	if _, err := c.MultipartForm(); err != nil && !stderrors.Is(err, http.ErrNotMultipart) {
		if isBodyTooLarge(err) {
			return cmd, errors.NewValidationError("request body too large")
		}
		return cmd, errors.NewValidationError("invalid form data", err.Error())
	}

	if raw, ok := c.GetPostForm("title_id"); ok {
		id, err := parsePositive(raw)
		if err != nil {
			return cmd, errors.NewValidationError("invalid title_id")
		}
		cmd.TitleID = &id
	}
	if raw, ok := c.GetPostForm("status"); ok {
		status := strings.TrimSpace(raw)
		cmd.Status = &status
	}
	if raw, ok := c.GetPostForm("assignee_id"); ok {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			cmd.Assignee = &usecases.AssigneeInput{}
		} else {
			id, err := parsePositive(raw)
			if err != nil {
				return cmd, errors.NewValidationError("invalid assignee_id")
			}
			cmd.Assignee = &usecases.AssigneeInput{UserID: &id}
		}
	}
	if raw, ok := c.GetPostForm("escalated"); ok {
		escalated, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return cmd, errors.NewValidationError("invalid escalated flag")
		}
		cmd.Escalated = &escalated
	}
	cmd.Comment = c.PostForm("comment")
	return cmd, nil
}

// formAttachment opens the optional attachment part. The returned close
// function is always safe to call.
func formAttachment(c *gin.Context) (*usecases.UploadedFile, func(), error) {
	noop := func() {}
	header, err := c.FormFile(attachmentField)
	if err != nil {
		if stderrors.Is(err, http.ErrMissingFile) || stderrors.Is(err, http.ErrNotMultipart) {
			return nil, noop, nil
		}
		if isBodyTooLarge(err) {
			return nil, noop, errors.NewValidationError("attachment too large")
		}
		return nil, noop, errors.NewValidationError("invalid attachment", err.Error())
	}
	f, err := header.Open()
	if err != nil {
		return nil, noop, errors.NewValidationError("invalid attachment", err.Error())
	}
	return &usecases.UploadedFile{
		Name:    header.Filename,
		Size:    header.Size,
		Content: f,
	}, func() { _ = f.Close() }, nil
}

func parseListQuery(c *gin.Context) usecases.ListTicketsQuery {
	p := utils.ParsePagination(c)
	return usecases.ListTicketsQuery{
		SiteID:     utils.ParseOptionalUintQuery(c, "site_id"),
		Status:     strings.TrimSpace(c.Query("status")),
		AssigneeID: utils.ParseOptionalUintQuery(c, "assignee_id"),
		Page:       p.Page,
		PageSize:   p.PageSize,
	}
}

func parseAttachmentParams(c *gin.Context) (uint, uint, error) {
	ticketID, err := utils.ParseUintParam(c, "id", "ticket")
	if err != nil {
		return 0, 0, err
	}
	attachmentID, err := utils.ParseUintParam(c, "attachment_id", "attachment")
	if err != nil {
		return 0, 0, err
	}
	return ticketID, attachmentID, nil
}

func parsePositive(raw string) (uint, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || n == 0 {
		return 0, strconv.ErrSyntax
	}
	return uint(n), nil
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return stderrors.As(err, &maxErr)
}

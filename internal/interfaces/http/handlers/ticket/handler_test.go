package ticket

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assistitk12/assistitk12/internal/application/ticket/dto"
	"github.com/assistitk12/assistitk12/internal/application/ticket/usecases"
	"github.com/assistitk12/assistitk12/internal/domain/access"
	"github.com/assistitk12/assistitk12/internal/domain/directory"
	"github.com/assistitk12/assistitk12/internal/interfaces/http/handlers/testutil"
	"github.com/assistitk12/assistitk12/internal/shared/errors"
	"github.com/assistitk12/assistitk12/internal/shared/utils"
)

// =====================================================================
// Mock use cases
// =====================================================================

type mockCreateUC struct {
	got    usecases.CreateTicketCommand
	body   []byte
	result *usecases.CreateTicketResult
	err    error
}

func (m *mockCreateUC) Execute(_ context.Context, cmd usecases.CreateTicketCommand) (*usecases.CreateTicketResult, error) {
	m.got = cmd
	if cmd.Attachment != nil {
		m.body, _ = io.ReadAll(cmd.Attachment.Content)
	}
	return m.result, m.err
}

type mockUpdateUC struct {
	got    usecases.UpdateTicketCommand
	result *usecases.UpdateTicketResult
	err    error
}

func (m *mockUpdateUC) Execute(_ context.Context, cmd usecases.UpdateTicketCommand) (*usecases.UpdateTicketResult, error) {
	m.got = cmd
	return m.result, m.err
}

type mockCommentUC struct {
	got usecases.AddCommentCommand
	err error
}

func (m *mockCommentUC) Execute(_ context.Context, cmd usecases.AddCommentCommand) (*usecases.AddCommentResult, error) {
	m.got = cmd
	if m.err != nil {
		return nil, m.err
	}
	return &usecases.AddCommentResult{TicketID: cmd.TicketID, CommentID: 9}, nil
}

type mockGetUC struct {
	result *dto.TicketDTO
	err    error
}

func (m *mockGetUC) Execute(_ context.Context, _ usecases.GetTicketQuery) (*dto.TicketDTO, error) {
	return m.result, m.err
}

type mockListUC struct {
	got    usecases.ListTicketsQuery
	result *usecases.ListTicketsResult
}

func (m *mockListUC) Execute(_ context.Context, q usecases.ListTicketsQuery) (*usecases.ListTicketsResult, error) {
	m.got = q
	return m.result, nil
}

type mockDeleteUC struct {
	got usecases.DeleteTicketCommand
	err error
}

func (m *mockDeleteUC) Execute(_ context.Context, cmd usecases.DeleteTicketCommand) error {
	m.got = cmd
	return m.err
}

type mockGetAttachmentUC struct {
	result *usecases.AttachmentDownload
	err    error
}

func (m *mockGetAttachmentUC) Execute(_ context.Context, _ usecases.GetAttachmentQuery) (*usecases.AttachmentDownload, error) {
	return m.result, m.err
}

type mockAssignableUC struct {
	users []directory.AssignableUser
}

func (m *mockAssignableUC) Execute(context.Context) ([]directory.AssignableUser, error) {
	return m.users, nil
}

type mockDashboardUC struct {
	got usecases.DashboardQuery
}

func (m *mockDashboardUC) Execute(_ context.Context, q usecases.DashboardQuery) (*dto.DashboardDTO, error) {
	m.got = q
	return &dto.DashboardDTO{Years: []int{2024}}, nil
}

func newTestHandler(uc UseCases) *TicketHandler {
	return NewTicketHandler(uc, 6<<20, testutil.NewMockLogger())
}

func staffActor() access.Actor {
	return testutil.ActorWith(7, 2, 1, access.ViewAllSites, access.ActOnTickets)
}

// =====================================================================
// CreateTicket
// =====================================================================

func TestTicketHandler_CreateTicket_Success(t *testing.T) {
	assignee := uint(3)
	mockUC := &mockCreateUC{result: &usecases.CreateTicketResult{
		TicketID:   11,
		AssigneeID: &assignee,
		Status:     "1-pending",
		CreatedAt:  time.Now().UTC(),
	}}
	handler := newTestHandler(UseCases{Create: mockUC})

	c, w := testutil.NewMultipartContext(http.MethodPost, "/tickets",
		map[string]string{"title_id": "4", "comment": "projector is dead"},
		"attachment", "photo.png", []byte("png-bytes"))
	testutil.SetActor(c, staffActor())

	handler.CreateTicket(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, uint(4), mockUC.got.TitleID)
	assert.Equal(t, "projector is dead", mockUC.got.Comment)
	assert.Equal(t, uint(7), mockUC.got.Actor.UserID)
	require.NotNil(t, mockUC.got.Attachment)
	assert.Equal(t, "photo.png", mockUC.got.Attachment.Name)
	assert.Equal(t, int64(9), mockUC.got.Attachment.Size)
	assert.Equal(t, []byte("png-bytes"), mockUC.body)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)
}

func TestTicketHandler_CreateTicket_WithoutAttachment(t *testing.T) {
	mockUC := &mockCreateUC{result: &usecases.CreateTicketResult{TicketID: 1}}
	handler := newTestHandler(UseCases{Create: mockUC})

	c, w := testutil.NewMultipartContext(http.MethodPost, "/tickets",
		map[string]string{"title_id": "2"}, "", "", nil)
	testutil.SetActor(c, staffActor())

	handler.CreateTicket(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Nil(t, mockUC.got.Attachment)
}

func TestTicketHandler_CreateTicket_MissingTitle(t *testing.T) {
	mockUC := &mockCreateUC{}
	handler := newTestHandler(UseCases{Create: mockUC})

	c, w := testutil.NewMultipartContext(http.MethodPost, "/tickets",
		map[string]string{"comment": "no title"}, "", "", nil)
	testutil.SetActor(c, staffActor())

	handler.CreateTicket(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, mockUC.got.Actor.UserID, "use case must not run")
}

func TestTicketHandler_CreateTicket_Unauthenticated(t *testing.T) {
	handler := newTestHandler(UseCases{Create: &mockCreateUC{}})

	c, w := testutil.NewMultipartContext(http.MethodPost, "/tickets",
		map[string]string{"title_id": "2"}, "", "", nil)

	handler.CreateTicket(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTicketHandler_CreateTicket_StorageErrorIsGeneric(t *testing.T) {
	mockUC := &mockCreateUC{err: errors.NewStorageError("insert failed", "duplicate key tickets.PRIMARY")}
	handler := newTestHandler(UseCases{Create: mockUC})

	c, w := testutil.NewMultipartContext(http.MethodPost, "/tickets",
		map[string]string{"title_id": "2"}, "", "", nil)
	testutil.SetActor(c, staffActor())

	handler.CreateTicket(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "duplicate key")
}

// =====================================================================
// UpdateTicket
// =====================================================================

func TestTicketHandler_UpdateTicket_ParsesPresentFields(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]string
		check  func(t *testing.T, cmd usecases.UpdateTicketCommand)
	}{
		{
			name:   "status only",
			fields: map[string]string{"status": "2-progress"},
			check: func(t *testing.T, cmd usecases.UpdateTicketCommand) {
				require.NotNil(t, cmd.Status)
				assert.Equal(t, "2-progress", *cmd.Status)
				assert.Nil(t, cmd.TitleID)
				assert.Nil(t, cmd.Assignee)
				assert.Nil(t, cmd.Escalated)
			},
		},
		{
			name:   "empty assignee unassigns",
			fields: map[string]string{"assignee_id": ""},
			check: func(t *testing.T, cmd usecases.UpdateTicketCommand) {
				require.NotNil(t, cmd.Assignee)
				assert.Nil(t, cmd.Assignee.UserID)
			},
		},
		{
			name:   "assignee and escalation",
			fields: map[string]string{"assignee_id": "5", "escalated": "true", "comment": "bumping"},
			check: func(t *testing.T, cmd usecases.UpdateTicketCommand) {
				require.NotNil(t, cmd.Assignee)
				require.NotNil(t, cmd.Assignee.UserID)
				assert.Equal(t, uint(5), *cmd.Assignee.UserID)
				require.NotNil(t, cmd.Escalated)
				assert.True(t, *cmd.Escalated)
				assert.Equal(t, "bumping", cmd.Comment)
			},
		},
		{
			name:   "title change",
			fields: map[string]string{"title_id": "8"},
			check: func(t *testing.T, cmd usecases.UpdateTicketCommand) {
				require.NotNil(t, cmd.TitleID)
				assert.Equal(t, uint(8), *cmd.TitleID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockUpdateUC{result: &usecases.UpdateTicketResult{TicketID: 3, Changed: true}}
			handler := newTestHandler(UseCases{Update: mockUC})

			c, w := testutil.NewMultipartContext(http.MethodPatch, "/tickets/3", tt.fields, "", "", nil)
			testutil.SetURLParam(c, "id", "3")
			testutil.SetActor(c, staffActor())

			handler.UpdateTicket(c)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, uint(3), mockUC.got.TicketID)
			tt.check(t, mockUC.got)
		})
	}
}

func TestTicketHandler_UpdateTicket_InvalidFields(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]string
	}{
		{"bad assignee", map[string]string{"assignee_id": "abc"}},
		{"zero title", map[string]string{"title_id": "0"}},
		{"bad escalated", map[string]string{"escalated": "sometimes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestHandler(UseCases{Update: &mockUpdateUC{}})

			c, w := testutil.NewMultipartContext(http.MethodPatch, "/tickets/3", tt.fields, "", "", nil)
			testutil.SetURLParam(c, "id", "3")
			testutil.SetActor(c, staffActor())

			handler.UpdateTicket(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestTicketHandler_UpdateTicket_NoChangeMessage(t *testing.T) {
	mockUC := &mockUpdateUC{result: &usecases.UpdateTicketResult{TicketID: 3}}
	handler := newTestHandler(UseCases{Update: mockUC})

	c, w := testutil.NewMultipartContext(http.MethodPatch, "/tickets/3", map[string]string{}, "", "", nil)
	testutil.SetURLParam(c, "id", "3")
	testutil.SetActor(c, staffActor())

	handler.UpdateTicket(c)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Equal(t, "No changes made", resp.Message)
}

func TestTicketHandler_UpdateTicket_Forbidden(t *testing.T) {
	mockUC := &mockUpdateUC{err: errors.NewForbiddenError("not yours")}
	handler := newTestHandler(UseCases{Update: mockUC})

	c, w := testutil.NewMultipartContext(http.MethodPatch, "/tickets/3", map[string]string{"status": "3-completed"}, "", "", nil)
	testutil.SetURLParam(c, "id", "3")
	testutil.SetActor(c, testutil.ActorWith(20, 4, 2))

	handler.UpdateTicket(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

// =====================================================================
// Other endpoints
// =====================================================================

func TestTicketHandler_AddComment(t *testing.T) {
	mockUC := &mockCommentUC{}
	handler := newTestHandler(UseCases{AddComment: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/tickets/5/comments", AddCommentRequest{Text: "rebooted it"})
	testutil.SetURLParam(c, "id", "5")
	testutil.SetActor(c, staffActor())

	handler.AddComment(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, uint(5), mockUC.got.TicketID)
	assert.Equal(t, "rebooted it", mockUC.got.Text)
}

func TestTicketHandler_AddComment_EmptyBody(t *testing.T) {
	handler := newTestHandler(UseCases{AddComment: &mockCommentUC{}})

	c, w := testutil.NewTestContext(http.MethodPost, "/tickets/5/comments", map[string]string{})
	testutil.SetURLParam(c, "id", "5")
	testutil.SetActor(c, staffActor())

	handler.AddComment(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTicketHandler_GetTicket_InvalidID(t *testing.T) {
	handler := newTestHandler(UseCases{Get: &mockGetUC{}})

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets/abc", nil)
	testutil.SetURLParam(c, "id", "abc")
	testutil.SetActor(c, staffActor())

	handler.GetTicket(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTicketHandler_GetTicket_NotFound(t *testing.T) {
	handler := newTestHandler(UseCases{Get: &mockGetUC{err: errors.NewNotFoundError("ticket not found")}})

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets/99", nil)
	testutil.SetURLParam(c, "id", "99")
	testutil.SetActor(c, staffActor())

	handler.GetTicket(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTicketHandler_ListTickets_PassesFilters(t *testing.T) {
	mockUC := &mockListUC{result: &usecases.ListTicketsResult{
		Tickets:  []*dto.TicketDTO{{ID: 1}, {ID: 2}},
		Total:    2,
		Page:     2,
		PageSize: 10,
	}}
	handler := newTestHandler(UseCases{List: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets", nil)
	testutil.SetQueryParams(c, map[string]string{"site_id": "4", "status": "1-pending", "page": "2", "page_size": "10"})
	testutil.SetActor(c, staffActor())

	handler.ListTickets(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, mockUC.got.SiteID)
	assert.Equal(t, uint(4), *mockUC.got.SiteID)
	assert.Equal(t, "1-pending", mockUC.got.Status)
	assert.Nil(t, mockUC.got.AssigneeID)
	assert.Equal(t, 2, mockUC.got.Page)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var list utils.ListResponse
	require.NoError(t, json.Unmarshal(resp.Data, &list))
	assert.Equal(t, int64(2), list.Total)
	assert.Equal(t, 10, list.PageSize)
}

func TestTicketHandler_DeleteTicket(t *testing.T) {
	mockUC := &mockDeleteUC{}
	handler := newTestHandler(UseCases{Delete: mockUC})

	c, w := testutil.NewTestContext(http.MethodDelete, "/tickets/8", nil)
	testutil.SetURLParam(c, "id", "8")
	testutil.SetActor(c, testutil.ActorWith(1, 1, 1, access.DeleteTickets))

	handler.DeleteTicket(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, uint(8), mockUC.got.TicketID)
}

func TestTicketHandler_DownloadAttachment(t *testing.T) {
	content := "%PDF-1.4 body"
	mockUC := &mockGetAttachmentUC{result: &usecases.AttachmentDownload{
		Filename:     "20240102_stored.pdf",
		OriginalName: "lesson plan.pdf",
		ContentType:  "application/pdf",
		Size:         int64(len(content)),
		Content:      io.NopCloser(strings.NewReader(content)),
	}}
	handler := newTestHandler(UseCases{GetAttachment: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets/1/attachments/2", nil)
	testutil.SetURLParam(c, "id", "1")
	testutil.SetURLParam(c, "attachment_id", "2")
	testutil.SetActor(c, staffActor())

	handler.DownloadAttachment(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="lesson plan.pdf"`)
	assert.Equal(t, content, w.Body.String())
}

func TestTicketHandler_ListAssignableUsers_EmptyIsArray(t *testing.T) {
	handler := newTestHandler(UseCases{Assignable: &mockAssignableUC{}})

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets/assignable-users", nil)
	testutil.SetActor(c, staffActor())

	handler.ListAssignableUsers(c)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.JSONEq(t, "[]", string(resp.Data))
}

func TestTicketHandler_Dashboard_Filters(t *testing.T) {
	mockUC := &mockDashboardUC{}
	handler := newTestHandler(UseCases{Dashboard: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/dashboard", nil)
	testutil.SetQueryParams(c, map[string]string{"year": "2024"})
	testutil.SetActor(c, staffActor())

	handler.Dashboard(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, mockUC.got.Year)
	assert.Equal(t, 2024, *mockUC.got.Year)
	assert.Nil(t, mockUC.got.SiteID)
}

package usecases

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/assistitk12/assistitk12/internal/domain/access"
	"github.com/assistitk12/assistitk12/internal/domain/directory"
	vo "github.com/assistitk12/assistitk12/internal/domain/directory/valueobjects"
	"github.com/assistitk12/assistitk12/internal/domain/ticket"
	tvo "github.com/assistitk12/assistitk12/internal/domain/ticket/valueobjects"
	"github.com/assistitk12/assistitk12/internal/shared/logger"
)

const testMaxBytes = 5 << 20

var (
	pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 32)...)
	pdfBytes = []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n1 0 obj\n<<>>\nendobj\n")
)

func testUser(t *testing.T, id, roleID, siteID uint, first, email string) *directory.User {
	t.Helper()
	now := time.Now()
	u, err := directory.ReconstructUser(id, directory.UserProfile{
		FirstName: first,
		LastName:  "Tester",
		Email:     email,
		RoleID:    roleID,
		SiteID:    siteID,
		Status:    vo.UserStatusActive,
	}, "hash", false, now, now)
	require.NoError(t, err)
	return u
}

func testActor(u *directory.User) access.Actor {
	return access.Actor{
		UserID:       u.ID(),
		RoleID:       u.RoleID(),
		SiteID:       u.SiteID(),
		Capabilities: access.NewCapabilitySet(access.DefaultRoleCapabilities[u.RoleID()]...),
	}
}

func testTicket(t *testing.T, id, creatorID, siteID uint, assignee *uint, status tvo.TicketStatus, escalated bool) *ticket.Ticket {
	t.Helper()
	created := time.Date(2024, 5, 6, 9, 0, 0, 0, time.UTC)
	tk, err := ticket.ReconstructTicket(id, 1, creatorID, siteID, assignee, status, escalated, created, created)
	require.NoError(t, err)
	return tk
}

func uintPtr(v uint) *uint { return &v }

func boolPtr(v bool) *bool { return &v }

func strPtr(v string) *string { return &v }

type ticketFixture struct {
	tickets     *mockTicketRepository
	comments    *mockCommentRepository
	attachments *mockAttachmentRepository
	titles      *mockTitleRepository
	users       *mockUserRepository
	resolver    *mockResolver
	files       *memFileStore
	tx          *mockTransactor
	publisher   *recordingPublisher
}

func newTicketFixture(users ...*directory.User) *ticketFixture {
	return &ticketFixture{
		tickets:     &mockTicketRepository{},
		comments:    &mockCommentRepository{},
		attachments: &mockAttachmentRepository{},
		titles:      newMockTitleRepository(directory.ReconstructTitle(1, "Password Reset"), directory.ReconstructTitle(2, "Printer")),
		users:       &mockUserRepository{users: users},
		resolver:    defaultResolver(),
		files:       newMemFileStore(),
		tx:          &mockTransactor{},
		publisher:   &recordingPublisher{},
	}
}

func (f *ticketFixture) createUseCase() *CreateTicketUseCase {
	return NewCreateTicketUseCase(f.tickets, f.comments, f.attachments, f.titles, f.users, f.files, testMaxBytes,
		passthroughSanitizer{}, f.tx, f.publisher, logger.NewNopLogger())
}

func (f *ticketFixture) updateUseCase() *UpdateTicketUseCase {
	return NewUpdateTicketUseCase(f.tickets, f.comments, f.attachments, f.titles, f.users, f.resolver, f.files, testMaxBytes,
		passthroughSanitizer{}, f.tx, f.publisher, logger.NewNopLogger())
}

func defaultResolver() *mockResolver {
	roles := make(map[uint]access.CapabilitySet, len(access.DefaultRoleCapabilities))
	for id, caps := range access.DefaultRoleCapabilities {
		roles[id] = access.NewCapabilitySet(caps...)
	}
	return &mockResolver{roles: roles}
}

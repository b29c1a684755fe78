package usecases

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assistitk12/assistitk12/internal/domain/directory"
	"github.com/assistitk12/assistitk12/internal/domain/ticket"
	tvo "github.com/assistitk12/assistitk12/internal/domain/ticket/valueobjects"
	apperrors "github.com/assistitk12/assistitk12/internal/shared/errors"
)

func TestCreateTicketUseCase_AutoAssignsSiteTechnician(t *testing.T) {
	teacher := testUser(t, 10, directory.RoleTeacher, 3, "Tina", "tina@school.org")
	otherTech := testUser(t, 5, directory.RoleTechnician, 4, "Otto", "otto@school.org")
	tech := testUser(t, 20, directory.RoleTechnician, 3, "Tom", "tom@school.org")
	laterTech := testUser(t, 21, directory.RoleTechnician, 3, "Tara", "tara@school.org")
	f := newTicketFixture(teacher, otherTech, laterTech, tech)

	var created *ticket.Ticket
	f.tickets.CreateFunc = func(ctx context.Context, tk *ticket.Ticket) error {
		created = tk
		return tk.SetID(42)
	}

	res, err := f.createUseCase().Execute(context.Background(), CreateTicketCommand{
		Actor:   testActor(teacher),
		TitleID: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, uint(42), res.TicketID)
	require.NotNil(t, res.AssigneeID)
	assert.Equal(t, uint(20), *res.AssigneeID)
	assert.Equal(t, tvo.StatusPending.String(), res.Status)
	require.NotNil(t, created)
	assert.Equal(t, uint(3), created.SiteID())
	assert.False(t, created.IsEscalated())

	require.Len(t, f.publisher.events, 1)
	ev, ok := f.publisher.events[0].(ticket.CreatedEvent)
	require.True(t, ok)
	assert.Equal(t, uint(42), ev.Ref.TicketID)
	require.NotNil(t, ev.Ref.AssigneeID)
	assert.Equal(t, uint(20), *ev.Ref.AssigneeID)
}

func TestCreateTicketUseCase_SiteComesFromCreator(t *testing.T) {
	teacher := testUser(t, 10, directory.RoleTeacher, 3, "Tina", "tina@school.org")
	f := newTicketFixture(teacher)

	actor := testActor(teacher)
	actor.SiteID = 99

	var created *ticket.Ticket
	f.tickets.CreateFunc = func(ctx context.Context, tk *ticket.Ticket) error {
		created = tk
		return tk.SetID(1)
	}

	res, err := f.createUseCase().Execute(context.Background(), CreateTicketCommand{Actor: actor, TitleID: 2})
	require.NoError(t, err)
	assert.Nil(t, res.AssigneeID)
	assert.Equal(t, uint(3), created.SiteID())
}

func TestCreateTicketUseCase_WithCommentAndAttachment(t *testing.T) {
	teacher := testUser(t, 10, directory.RoleTeacher, 3, "Tina", "tina@school.org")
	f := newTicketFixture(teacher)

	res, err := f.createUseCase().Execute(context.Background(), CreateTicketCommand{
		Actor:      testActor(teacher),
		TitleID:    1,
		Comment:    "Locked out since Monday",
		Attachment: &UploadedFile{Name: "screen.PNG", Size: int64(len(pngBytes)), Content: bytes.NewReader(pngBytes)},
	})
	require.NoError(t, err)

	require.NotNil(t, res.CommentID)
	require.NotNil(t, res.AttachmentID)
	require.Len(t, f.attachments.created, 1)
	att := f.attachments.created[0]
	assert.Regexp(t, `^ticket_100_\d{8}-\d{6}\.png$`, att.Filename())
	assert.Equal(t, "image/png", att.ContentType())
	assert.Equal(t, "screen.PNG", att.OriginalName())
	assert.Equal(t, 1, f.files.count())
	assert.Equal(t, 1, f.tx.calls)
}

func TestCreateTicketUseCase_RejectsBadAttachments(t *testing.T) {
	tests := []struct {
		name       string
		file       *UploadedFile
		wantStored bool
	}{
		{
			name: "disallowed extension",
			file: &UploadedFile{Name: "virus.exe", Size: 10, Content: bytes.NewReader(make([]byte, 10))},
		},
		{
			name: "too large",
			file: &UploadedFile{Name: "big.pdf", Size: testMaxBytes + 1, Content: bytes.NewReader(pdfBytes)},
		},
		{
			name: "empty",
			file: &UploadedFile{Name: "empty.pdf", Size: 0, Content: bytes.NewReader(nil)},
		},
		{
			name: "signature mismatch",
			file: &UploadedFile{Name: "fake.pdf", Size: 11, Content: bytes.NewReader([]byte("hello world"))},
		},
		{
			name: "png claimed as jpg",
			file: &UploadedFile{Name: "photo.jpg", Size: int64(len(pngBytes)), Content: bytes.NewReader(pngBytes)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			teacher := testUser(t, 10, directory.RoleTeacher, 3, "Tina", "tina@school.org")
			f := newTicketFixture(teacher)

			_, err := f.createUseCase().Execute(context.Background(), CreateTicketCommand{
				Actor:      testActor(teacher),
				TitleID:    1,
				Attachment: tt.file,
			})
			require.Error(t, err)
			assert.True(t, apperrors.IsValidationError(err))
			assert.Equal(t, 0, f.files.count())
			assert.Empty(t, f.attachments.created)
			assert.Empty(t, f.publisher.events)
		})
	}
}

func TestCreateTicketUseCase_RemovesFileWhenRecordFails(t *testing.T) {
	teacher := testUser(t, 10, directory.RoleTeacher, 3, "Tina", "tina@school.org")
	f := newTicketFixture(teacher)
	f.attachments.CreateFunc = func(ctx context.Context, a *ticket.Attachment) error {
		return errors.New("disk quota exceeded")
	}

	_, err := f.createUseCase().Execute(context.Background(), CreateTicketCommand{
		Actor:      testActor(teacher),
		TitleID:    1,
		Attachment: &UploadedFile{Name: "form.pdf", Size: int64(len(pdfBytes)), Content: bytes.NewReader(pdfBytes)},
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsStorageError(err))
	assert.Equal(t, 0, f.files.count())
	assert.Len(t, f.files.removed, 1)
	assert.Empty(t, f.publisher.events)
}

func TestCreateTicketUseCase_UnknownTitle(t *testing.T) {
	teacher := testUser(t, 10, directory.RoleTeacher, 3, "Tina", "tina@school.org")
	f := newTicketFixture(teacher)

	_, err := f.createUseCase().Execute(context.Background(), CreateTicketCommand{Actor: testActor(teacher), TitleID: 77})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))
	assert.Equal(t, 0, f.tx.calls)
}

func TestCreateTicketUseCase_PublishFailureDoesNotFail(t *testing.T) {
	teacher := testUser(t, 10, directory.RoleTeacher, 3, "Tina", "tina@school.org")
	f := newTicketFixture(teacher)
	f.publisher.err = errors.New("event queue is full")

	res, err := f.createUseCase().Execute(context.Background(), CreateTicketCommand{Actor: testActor(teacher), TitleID: 1})
	require.NoError(t, err)
	assert.Equal(t, uint(100), res.TicketID)
}

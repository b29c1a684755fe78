package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assistitk12/assistitk12/internal/domain/ticket"
	vo "github.com/assistitk12/assistitk12/internal/domain/ticket/valueobjects"
)

func seedTicket(t *testing.T, repo *TicketRepository, id uint, status vo.TicketStatus, escalated bool, createdAt time.Time, siteID, creatorID uint, assignee *uint) {
	t.Helper()
	tk, err := ticket.ReconstructTicket(id, 1, creatorID, siteID, assignee, status, escalated, createdAt, createdAt)
	require.NoError(t, err)
	require.NoError(t, repo.db.Create(repo.mapper.ToModel(tk)).Error)
}

func TestTicketRepository_ListOrdersByPriorityTier(t *testing.T) {
	ctx := context.Background()
	repo := NewTicketRepository(setupTestDB(t))

	seedTicket(t, repo, 1, vo.StatusCompleted, true, ts("2024-03-05T10:00:00Z"), 1, 7, nil)
	seedTicket(t, repo, 2, vo.StatusProgress, false, ts("2024-03-04T10:00:00Z"), 1, 7, nil)
	seedTicket(t, repo, 3, vo.StatusPending, false, ts("2024-03-03T10:00:00Z"), 1, 7, nil)
	seedTicket(t, repo, 4, vo.StatusProgress, true, ts("2024-03-02T10:00:00Z"), 1, 7, nil)
	seedTicket(t, repo, 5, vo.StatusPending, true, ts("2024-03-01T10:00:00Z"), 1, 7, nil)
	seedTicket(t, repo, 6, vo.StatusPending, false, ts("2024-03-06T10:00:00Z"), 1, 7, nil)

	tickets, total, err := repo.List(ctx, ticket.Filter{})
	require.NoError(t, err)
	assert.EqualValues(t, 6, total)

	ids := make([]uint, len(tickets))
	for i, tk := range tickets {
		ids[i] = tk.ID()
	}
	assert.Equal(t, []uint{5, 4, 6, 3, 2, 1}, ids)

	// The SQL ordering must agree with the in-memory comparator.
	sorted := append([]*ticket.Ticket(nil), tickets...)
	ticket.SortByPriority(sorted)
	assert.Equal(t, tickets, sorted)
}

func TestTicketRepository_ListScope(t *testing.T) {
	ctx := context.Background()
	repo := NewTicketRepository(setupTestDB(t))
	now := ts("2024-03-05T10:00:00Z")
	seedTicket(t, repo, 1, vo.StatusPending, false, now, 1, 7, nil)
	seedTicket(t, repo, 2, vo.StatusPending, false, now, 1, 8, uintPtr(7))
	seedTicket(t, repo, 3, vo.StatusPending, false, now, 2, 7, nil)

	_, total, err := repo.List(ctx, ticket.Filter{SiteID: uintPtr(1)})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	_, total, err = repo.List(ctx, ticket.Filter{SiteID: uintPtr(1), CreatorID: uintPtr(7)})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	n, err := repo.CountByUser(ctx, 7)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n, "created or assigned")
}

func TestTicketRepository_UpdateClearsAssignee(t *testing.T) {
	ctx := context.Background()
	repo := NewTicketRepository(setupTestDB(t))
	created := ts("2024-03-05T10:00:00Z")
	seedTicket(t, repo, 1, vo.StatusPending, true, created, 1, 7, uintPtr(3))

	tk, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	escalated := false
	changes, err := tk.ApplyUpdate(ticket.Update{
		Assignee:  &ticket.AssigneeUpdate{UserID: nil},
		Escalated: &escalated,
	})
	require.NoError(t, err)
	require.True(t, changes.Any())
	require.NoError(t, repo.Update(ctx, tk))

	got, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, got.AssigneeID())
	assert.False(t, got.IsEscalated())
	assert.True(t, got.CreatedAt().Equal(created))
	assert.WithinDuration(t, tk.UpdatedAt(), got.UpdatedAt(), time.Second)
	assert.True(t, got.UpdatedAt().After(created))
}

func TestTicketRepository_DashboardRowsAndYears(t *testing.T) {
	ctx := context.Background()
	repo := NewTicketRepository(setupTestDB(t))
	seedTicket(t, repo, 1, vo.StatusPending, false, ts("2023-06-01T18:00:00Z"), 1, 7, nil)
	seedTicket(t, repo, 2, vo.StatusCompleted, false, ts("2024-02-01T18:00:00Z"), 1, 7, nil)
	// New Year's Eve in Los Angeles, already 2025 in UTC.
	seedTicket(t, repo, 3, vo.StatusProgress, false, ts("2025-01-01T03:00:00Z"), 1, 7, nil)
	seedTicket(t, repo, 4, vo.StatusPending, false, ts("2024-05-01T18:00:00Z"), 2, 8, nil)

	years, err := repo.Years(ctx, ticket.DashboardFilter{SiteID: uintPtr(1)})
	require.NoError(t, err)
	assert.Equal(t, []int{2023, 2024}, years)

	year := 2024
	rows, err := repo.DashboardRows(ctx, ticket.DashboardFilter{SiteID: uintPtr(1), Year: &year})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	statuses := []vo.TicketStatus{rows[0].Status, rows[1].Status}
	assert.ElementsMatch(t, []vo.TicketStatus{vo.StatusCompleted, vo.StatusProgress}, statuses)
}

func TestAttachmentRepository_Filenames(t *testing.T) {
	ctx := context.Background()
	repo := NewAttachmentRepository(setupTestDB(t))

	a, err := ticket.NewAttachment(1, 7, "ticket_1_20240305-100000.png", "shot.png", "image/png", 10)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, a))
	b, err := ticket.NewAttachment(2, 7, "ticket_2_20240305-100000.pdf", "doc.pdf", "application/pdf", 10)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, b))

	require.NoError(t, repo.DeleteByTicket(ctx, 1))

	names, err := repo.Filenames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ticket_2_20240305-100000.pdf"}, names)

	got, err := repo.GetByID(ctx, b.ID())
	require.NoError(t, err)
	assert.Equal(t, "doc.pdf", got.OriginalName())
}

package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assistitk12/assistitk12/internal/domain/directory"
	"github.com/assistitk12/assistitk12/internal/shared/db"
	apperrors "github.com/assistitk12/assistitk12/internal/shared/errors"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(setupTestDB(t))

	u := newUser(t, "Ana", "Ana@School.org", 4, 1)
	require.NoError(t, repo.Create(ctx, u))
	require.NotZero(t, u.ID())

	got, err := repo.GetByEmail(ctx, "ANA@school.org")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID(), got.ID())
	assert.Equal(t, "ana@school.org", got.Email())

	missing, err := repo.GetByID(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(setupTestDB(t))

	require.NoError(t, repo.Create(ctx, newUser(t, "Ana", "ana@school.org", 4, 1)))
	err := repo.Create(ctx, newUser(t, "Other", "ana@school.org", 4, 1))

	require.Error(t, err)
	assert.True(t, apperrors.IsDuplicateError(err))
}

func TestUserRepository_List(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(setupTestDB(t))
	for _, u := range []*directory.User{
		newUser(t, "Zed", "zed@school.org", 3, 1),
		newUser(t, "Amy", "amy@school.org", 4, 1),
		newUser(t, "Bob", "bob@other.org", 3, 2),
	} {
		require.NoError(t, repo.Create(ctx, u))
	}

	tests := []struct {
		name      string
		filter    directory.UserFilter
		wantNames []string
		wantTotal int64
	}{
		{name: "all ordered by first name", filter: directory.UserFilter{}, wantNames: []string{"Amy", "Bob", "Zed"}, wantTotal: 3},
		{name: "search email", filter: directory.UserFilter{Search: "OTHER"}, wantNames: []string{"Bob"}, wantTotal: 1},
		{name: "by site", filter: directory.UserFilter{SiteID: uintPtr(1)}, wantNames: []string{"Amy", "Zed"}, wantTotal: 2},
		{name: "by roles", filter: directory.UserFilter{RoleIDs: []uint{3}}, wantNames: []string{"Bob", "Zed"}, wantTotal: 2},
		{name: "paginated", filter: directory.UserFilter{Page: 2, PageSize: 2}, wantNames: []string{"Zed"}, wantTotal: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users, total, err := repo.List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, total)
			names := make([]string, len(users))
			for i, u := range users {
				names[i] = u.FirstName()
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func TestUserRepository_FirstBySiteAndRole(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(setupTestDB(t))
	first := newUser(t, "Tech", "tech1@school.org", 3, 1)
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, newUser(t, "Tech", "tech2@school.org", 3, 1)))

	got, err := repo.FirstBySiteAndRole(ctx, 1, 3)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, first.ID(), got.ID())

	none, err := repo.FirstBySiteAndRole(ctx, 2, 3)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestUserRepository_RollsBackWithTransaction(t *testing.T) {
	ctx := context.Background()
	gdb := setupTestDB(t)
	repo := NewUserRepository(gdb)
	tm := db.NewTransactionManager(gdb)

	err := tm.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := repo.Create(txCtx, newUser(t, "Ana", "ana@school.org", 4, 1)); err != nil {
			return err
		}
		return repo.Create(txCtx, newUser(t, "Dup", "ana@school.org", 4, 1))
	})
	require.Error(t, err)

	n, err := repo.CountBySite(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, n)
}

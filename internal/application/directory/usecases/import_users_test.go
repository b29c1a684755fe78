package usecases

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assistitk12/assistitk12/internal/domain/directory"
	apperrors "github.com/assistitk12/assistitk12/internal/shared/errors"
	"github.com/assistitk12/assistitk12/internal/shared/logger"
)

type importFixture struct {
	users *memUserRepository
	logs  *memBulkUploadLogRepository
	tx    *passthroughTransactor
	cache *countingCache
}

func (f *importFixture) useCase(rows []map[string]string, readErr error) *ImportUsersUseCase {
	sites := newMemSiteRepository(testSite(1, "District Office", "1"), testSite(2, "Lincoln", "2"))
	return NewImportUsersUseCase(f.users, newMemRoleRepository(), sites, f.logs,
		sliceRowReader{rows: rows, err: readErr}, plainHasher{}, f.tx, f.cache, logger.NewNopLogger())
}

func newImportFixture(t *testing.T) *importFixture {
	return &importFixture{
		users: newMemUserRepository(testUser(t, 7, directory.RoleStaff, 1, "Sam", "sam@school.org")),
		logs:  &memBulkUploadLogRepository{},
		tx:    &passthroughTransactor{},
		cache: &countingCache{},
	}
}

func importRowFor(first, email, role, site, room string) map[string]string {
	return map[string]string{
		ColFirstName: first,
		ColLastName:  "Import",
		ColEmail:     email,
		ColRoleID:    role,
		ColSiteName:  site,
		ColRmNum:     room,
	}
}

func TestImportUsersUseCase_Upsert(t *testing.T) {
	f := newImportFixture(t)
	rows := []map[string]string{
		importRowFor("NEW", "new@school.org", "4", "Lincoln", "12"),
		importRowFor("Sam", "SAM@school.org", "3", "Lincoln", "55"),
	}

	out, err := f.useCase(rows, nil).Execute(context.Background(), ImportUsersCommand{
		Actor:    actorFor(directory.RoleAdmin),
		Filename: "staff.csv",
		Content:  strings.NewReader(""),
	})

	require.NoError(t, err)
	assert.Equal(t, 2, out.Total)
	assert.Equal(t, 1, out.Added)
	assert.Equal(t, 1, out.Updated)

	created := f.users.byEmail("new@school.org")
	require.NotNil(t, created)
	assert.Equal(t, "New", created.FirstName())
	assert.Equal(t, uint(2), created.SiteID())
	assert.True(t, created.MustResetPassword())
	assert.Equal(t, "hashed:default_password", created.PasswordHash())

	sam := f.users.byEmail("sam@school.org")
	assert.Equal(t, "Sam", sam.FirstName())
	assert.Equal(t, "55", sam.RmNum())
	assert.Equal(t, uint(3), sam.RoleID())
	assert.Equal(t, uint(2), sam.SiteID())
	assert.Equal(t, "hashed:"+strongPassword, sam.PasswordHash())

	require.Len(t, f.logs.logs, 1)
	assert.Equal(t, directory.BulkUploadSuccess, f.logs.logs[0].Status)
	assert.Equal(t, 1, f.logs.logs[0].Added)
	assert.Equal(t, 1, f.cache.invalidated)
}

func TestImportUsersUseCase_RejectsWholeBatch(t *testing.T) {
	tests := []struct {
		name    string
		rows    []map[string]string
		readErr error
		wantMsg string
	}{
		{
			name: "unknown site",
			rows: []map[string]string{
				importRowFor("Ana", "ana@school.org", "4", "Lincoln", "1"),
				importRowFor("Bo", "bo@school.org", "4", "Nowhere High", "2"),
			},
			wantMsg: `row 3: site "Nowhere High" not found`,
		},
		{
			name: "missing field",
			rows: []map[string]string{
				importRowFor("Ana", "ana@school.org", "4", "Lincoln", ""),
			},
			wantMsg: "row 2: missing rm_num",
		},
		{
			name: "unknown role",
			rows: []map[string]string{
				importRowFor("Ana", "ana@school.org", "42", "Lincoln", "1"),
			},
			wantMsg: "row 2: role 42 not found",
		},
		{
			name: "duplicate email in file",
			rows: []map[string]string{
				importRowFor("Ana", "ana@school.org", "4", "Lincoln", "1"),
				importRowFor("Ana", "ANA@school.org", "4", "Lincoln", "1"),
			},
			wantMsg: "row 3: email ana@school.org already appears on row 2",
		},
		{
			name:    "unreadable file",
			readErr: errors.New("bad header"),
			wantMsg: "could not read file: bad header",
		},
		{
			name:    "empty file",
			rows:    []map[string]string{},
			wantMsg: "file has no data rows",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newImportFixture(t)

			_, err := f.useCase(tt.rows, tt.readErr).Execute(context.Background(), ImportUsersCommand{
				Actor:    actorFor(directory.RoleAdmin),
				Filename: "staff.csv",
			})

			require.Error(t, err)
			assert.True(t, apperrors.IsValidationError(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Zero(t, f.users.created)
			assert.Zero(t, f.users.updated)
			assert.Zero(t, f.tx.calls)
			assert.Zero(t, f.cache.invalidated)
			require.Len(t, f.logs.logs, 1)
			assert.Equal(t, directory.BulkUploadFailed, f.logs.logs[0].Status)
		})
	}
}

func TestImportUsersUseCase_RequiresManageDirectory(t *testing.T) {
	f := newImportFixture(t)

	_, err := f.useCase(nil, nil).Execute(context.Background(), ImportUsersCommand{Actor: actorFor(directory.RoleTechnician)})

	assert.True(t, apperrors.IsForbiddenError(err))
	assert.Empty(t, f.logs.logs)
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "Mary Ann", normalizeName("mary ann"))
	assert.Equal(t, "Lopez", normalizeName("LOPEZ"))
	assert.Equal(t, "McKenzie", normalizeName("McKenzie"))
}

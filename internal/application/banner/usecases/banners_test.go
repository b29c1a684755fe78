package usecases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assistitk12/assistitk12/internal/domain/access"
	"github.com/assistitk12/assistitk12/internal/domain/banner"
	"github.com/assistitk12/assistitk12/internal/shared/errors"
	"github.com/assistitk12/assistitk12/internal/shared/logger"
)

type memBannerRepository struct {
	banners     map[uint]*banner.Banner
	nextID      uint
	updates     int
	lockedReads int
}

func newMemBannerRepository(banners ...*banner.Banner) *memBannerRepository {
	m := &memBannerRepository{banners: make(map[uint]*banner.Banner), nextID: 10}
	for _, b := range banners {
		m.banners[b.ID()] = b
	}
	return m
}

func (m *memBannerRepository) Create(_ context.Context, b *banner.Banner) error {
	m.nextID++
	m.banners[m.nextID] = b
	return b.SetID(m.nextID)
}

func (m *memBannerRepository) Update(_ context.Context, b *banner.Banner) error {
	m.updates++
	m.banners[b.ID()] = b
	return nil
}

func (m *memBannerRepository) Delete(_ context.Context, id uint) error {
	delete(m.banners, id)
	return nil
}

func (m *memBannerRepository) GetByID(_ context.Context, id uint) (*banner.Banner, error) {
	return m.banners[id], nil
}

func (m *memBannerRepository) GetByName(_ context.Context, name string) (*banner.Banner, error) {
	for _, b := range m.banners {
		if b.Name() == name {
			return b, nil
		}
	}
	return nil, nil
}

func (m *memBannerRepository) List(context.Context, int, int) ([]*banner.Banner, int64, error) {
	var out []*banner.Banner
	for _, b := range m.banners {
		out = append(out, b)
	}
	return out, int64(len(out)), nil
}

func (m *memBannerRepository) ListActive(context.Context) ([]*banner.Banner, error) {
	var out []*banner.Banner
	for _, b := range m.banners {
		if b.IsActive() {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memBannerRepository) ListActiveForUpdate(ctx context.Context) ([]*banner.Banner, error) {
	m.lockedReads++
	return m.ListActive(ctx)
}

type countingTransactor struct{ calls int }

func (tx *countingTransactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.calls++
	return fn(ctx)
}

type fakeRenderer struct{ fail string }

func (r fakeRenderer) ToHTMLSanitized(md string) (string, error) {
	if md == r.fail {
		return "", fmt.Errorf("render failed")
	}
	return "<p>" + md + "</p>", nil
}

func adminActor() access.Actor {
	return access.Actor{UserID: 1, RoleID: 1, SiteID: 1, Capabilities: access.NewCapabilitySet(access.ManageDirectory)}
}

func testBanner(t *testing.T, id uint, name string, status banner.Status) *banner.Banner {
	t.Helper()
	now := time.Now()
	b, err := banner.ReconstructBanner(id, name, "content "+name, status, now, now)
	require.NoError(t, err)
	return b
}

func TestBannerUseCases_CreateIsInactive(t *testing.T) {
	uc := NewBannerUseCases(newMemBannerRepository(), &countingTransactor{}, fakeRenderer{}, logger.NewNopLogger())

	out, err := uc.Create(context.Background(), adminActor(), "Snow day", "School is **closed**")

	require.NoError(t, err)
	assert.Equal(t, "Inactive", out.Status)

	_, err = uc.Create(context.Background(), adminActor(), "Snow day", "again")
	assert.True(t, errors.IsConflictError(err))
}

func TestBannerUseCases_SetStatus(t *testing.T) {
	tests := []struct {
		name        string
		existing    []*banner.Banner
		id          uint
		status      string
		wantChanged bool
		check       func(error) bool
	}{
		{
			name:        "activate with none active",
			existing:    []*banner.Banner{testBanner(t, 1, "a", banner.StatusInactive)},
			id:          1,
			status:      "Active",
			wantChanged: true,
		},
		{
			name: "activate while another is active",
			existing: []*banner.Banner{
				testBanner(t, 1, "a", banner.StatusInactive),
				testBanner(t, 2, "b", banner.StatusActive),
			},
			id:     1,
			status: "Active",
			check:  errors.IsConflictError,
		},
		{
			name:     "re-activate the active banner is a no-op",
			existing: []*banner.Banner{testBanner(t, 2, "b", banner.StatusActive)},
			id:       2,
			status:   "Active",
		},
		{
			name:        "deactivate",
			existing:    []*banner.Banner{testBanner(t, 2, "b", banner.StatusActive)},
			id:          2,
			status:      "Inactive",
			wantChanged: true,
		},
		{
			name:     "invalid status",
			existing: []*banner.Banner{testBanner(t, 1, "a", banner.StatusInactive)},
			id:       1,
			status:   "Paused",
			check:    errors.IsValidationError,
		},
		{
			name:   "missing banner",
			id:     9,
			status: "Active",
			check:  errors.IsNotFoundError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemBannerRepository(tt.existing...)
			uc := NewBannerUseCases(repo, &countingTransactor{}, fakeRenderer{}, logger.NewNopLogger())

			out, err := uc.SetStatus(context.Background(), adminActor(), tt.id, tt.status)

			if tt.check != nil {
				assert.True(t, tt.check(err), "unexpected error: %v", err)
				assert.Zero(t, repo.updates)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantChanged, out.Changed)
			assert.Equal(t, tt.status, out.Banner.Status)

			active, _ := repo.ListActive(context.Background())
			assert.LessOrEqual(t, len(active), 1)
		})
	}
}

func TestBannerUseCases_ActivationChecksUnderLock(t *testing.T) {
	repo := newMemBannerRepository(
		testBanner(t, 1, "a", banner.StatusInactive),
		testBanner(t, 2, "b", banner.StatusInactive),
	)
	tx := &countingTransactor{}
	uc := NewBannerUseCases(repo, tx, fakeRenderer{}, logger.NewNopLogger())

	_, err := uc.SetStatus(context.Background(), adminActor(), 1, "Active")
	require.NoError(t, err)
	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, 1, repo.lockedReads)

	_, err = uc.SetStatus(context.Background(), adminActor(), 2, "Active")
	assert.True(t, errors.IsConflictError(err), "got %v", err)

	_, err = uc.SetStatus(context.Background(), adminActor(), 1, "Inactive")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.lockedReads, "deactivation takes no lock")
}

func TestBannerUseCases_Active(t *testing.T) {
	repo := newMemBannerRepository(
		testBanner(t, 1, "a", banner.StatusActive),
		testBanner(t, 2, "b", banner.StatusInactive),
	)
	uc := NewBannerUseCases(repo, &countingTransactor{}, fakeRenderer{}, logger.NewNopLogger())

	out, err := uc.Active(context.Background())

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "<p>content a</p>", out[0].HTML)
}

func TestBannerUseCases_RequireManageDirectory(t *testing.T) {
	uc := NewBannerUseCases(newMemBannerRepository(), &countingTransactor{}, fakeRenderer{}, logger.NewNopLogger())
	staff := access.Actor{UserID: 5, RoleID: 5}

	_, err := uc.Create(context.Background(), staff, "x", "y")
	assert.True(t, errors.IsForbiddenError(err))
	assert.True(t, errors.IsForbiddenError(uc.Delete(context.Background(), staff, 1)))
}

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authUsecases "github.com/assistitk12/assistitk12/internal/application/auth/usecases"
	"github.com/assistitk12/assistitk12/internal/domain/directory"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

var techs = []directory.AssignableUser{
	{ID: 3, FullName: "Ann Tech", Email: "ann@school.org", RoleID: 3, SiteID: 1},
	{ID: 4, FullName: "Bo Spec", Email: "bo@school.org", RoleID: 2, SiteID: 1},
}

func TestAssignableUserCaches(t *testing.T) {
	_, client := newRedis(t)

	caches := map[string]directory.AssignableUserCache{
		"redis":  NewRedisAssignableUserCache(client, time.Hour),
		"memory": NewMemoryAssignableUserCache(time.Hour),
	}
	for name, c := range caches {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, ok, err := c.Get(ctx)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, c.Set(ctx, techs))
			got, ok, err := c.Get(ctx)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, techs, got)

			require.NoError(t, c.Invalidate(ctx))
			_, ok, err = c.Get(ctx)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, c.Set(ctx, nil))
			got, ok, err = c.Get(ctx)
			require.NoError(t, err)
			assert.True(t, ok, "an empty list is still a cache hit")
			assert.Empty(t, got)
		})
	}
}

func TestRedisAssignableUserCache_Expires(t *testing.T) {
	mr, client := newRedis(t)
	c := NewRedisAssignableUserCache(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, techs))
	mr.FastForward(2 * time.Minute)

	_, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryAssignableUserCache_Expires(t *testing.T) {
	now := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	c := NewMemoryAssignableUserCache(time.Minute)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, techs))
	now = now.Add(2 * time.Minute)

	_, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStateStores_SingleUse(t *testing.T) {
	_, client := newRedis(t)
	stores := map[string]authUsecases.StateStore{
		"redis":  NewRedisStateStore(client, OAuthStatePrefix, OAuthStateTTL),
		"memory": NewMemoryStateStore(OAuthStateTTL),
	}
	for name, s := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Save(ctx, "st", "verifier"))

			v, err := s.Consume(ctx, "st")
			require.NoError(t, err)
			assert.Equal(t, "verifier", v)

			v, err = s.Consume(ctx, "st")
			require.NoError(t, err)
			assert.Empty(t, v)

			assert.Error(t, s.Save(ctx, "", "verifier"))
		})
	}
}

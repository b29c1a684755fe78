package usecases

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/assistitk12/assistitk12/internal/domain/directory"
	vo "github.com/assistitk12/assistitk12/internal/domain/directory/valueobjects"
)

type stubUserRepository struct {
	directory.UserRepository
	users map[uint]*directory.User
}

func newStubUserRepository(users ...*directory.User) *stubUserRepository {
	m := &stubUserRepository{users: make(map[uint]*directory.User)}
	for _, u := range users {
		m.users[u.ID()] = u
	}
	return m
}

func (m *stubUserRepository) GetByID(_ context.Context, id uint) (*directory.User, error) {
	return m.users[id], nil
}

func (m *stubUserRepository) GetByEmail(_ context.Context, email string) (*directory.User, error) {
	for _, u := range m.users {
		if u.Email() == strings.ToLower(email) {
			return u, nil
		}
	}
	return nil, nil
}

type plainHasher struct{}

func (plainHasher) Hash(pw string) (string, error) { return "hashed:" + pw, nil }

func (plainHasher) Verify(pw, hash string) error {
	if hash != "hashed:"+pw {
		return errors.New("mismatch")
	}
	return nil
}

type fakeTokens struct {
	generated []uint
	claims    map[string]*RefreshClaims
}

func newFakeTokens() *fakeTokens {
	return &fakeTokens{claims: make(map[string]*RefreshClaims)}
}

func (f *fakeTokens) Generate(userID uint) (*TokenPair, error) {
	f.generated = append(f.generated, userID)
	return &TokenPair{AccessToken: "access", RefreshToken: "refresh", ExpiresIn: 900}, nil
}

func (f *fakeTokens) ParseRefresh(token string) (*RefreshClaims, error) {
	c, ok := f.claims[token]
	if !ok {
		return nil, errors.New("invalid token")
	}
	return c, nil
}

type memRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	err     error
}

func newMemRevoker() *memRevoker {
	return &memRevoker{revoked: make(map[string]time.Time)}
}

func (m *memRevoker) Revoke(_ context.Context, id string, until time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.revoked[id] = until
	return nil
}

func (m *memRevoker) IsRevoked(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.revoked[id]
	return ok, nil
}

type fixedLimiter struct {
	allowed bool
	err     error
	keys    []string
}

func (l *fixedLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.keys = append(l.keys, key)
	return l.allowed, l.err
}

type fakeProvider struct {
	email string
	err   error
}

func (p fakeProvider) AuthURL(state string) (string, string, error) {
	return "https://accounts.example/auth?state=" + state, "verifier-" + state, nil
}

func (p fakeProvider) Email(_ context.Context, _, verifier string) (string, error) {
	if !strings.HasPrefix(verifier, "verifier-") {
		return "", errors.New("pkce mismatch")
	}
	return p.email, p.err
}

type memStateStore struct {
	states map[string]string
}

func newMemStateStore() *memStateStore {
	return &memStateStore{states: make(map[string]string)}
}

func (m *memStateStore) Save(_ context.Context, state, verifier string) error {
	m.states[state] = verifier
	return nil
}

func (m *memStateStore) Consume(_ context.Context, state string) (string, error) {
	v := m.states[state]
	delete(m.states, state)
	return v, nil
}

func testUser(t *testing.T, id uint, email string, status vo.UserStatus) *directory.User {
	t.Helper()
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	u, err := directory.ReconstructUser(id, directory.UserProfile{
		FirstName: "Pat",
		LastName:  "Tester",
		Email:     email,
		RoleID:    4,
		SiteID:    1,
		Status:    status,
	}, "hashed:secret", false, now, now)
	require.NoError(t, err)
	return u
}

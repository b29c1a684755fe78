package notification

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/assistitk12/assistitk12/internal/domain/directory"
	vo "github.com/assistitk12/assistitk12/internal/domain/directory/valueobjects"
)

type stubTitleRepository struct {
	directory.TitleRepository
	titles map[uint]string
	err    error
}

func (s *stubTitleRepository) GetByID(_ context.Context, id uint) (*directory.Title, error) {
	if s.err != nil {
		return nil, s.err
	}
	name, ok := s.titles[id]
	if !ok {
		return nil, nil
	}
	return directory.ReconstructTitle(id, name), nil
}

type stubUserRepository struct {
	directory.UserRepository
	users map[uint]*directory.User
	err   error
}

func (s *stubUserRepository) GetByIDs(_ context.Context, ids []uint) ([]*directory.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*directory.User
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

type recordingQueue struct {
	mu   sync.Mutex
	msgs []Message
	err  error
}

func (q *recordingQueue) Enqueue(msg Message) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.msgs = append(q.msgs, msg)
	return nil
}

type tagStripper struct{}

func (tagStripper) StripTags(text string) string {
	return "plain:" + text
}

type mockMailer struct {
	SendFunc func(ctx context.Context, msg Message) error

	mu   sync.Mutex
	sent []Message
}

func (m *mockMailer) Send(ctx context.Context, msg Message) error {
	if m.SendFunc != nil {
		if err := m.SendFunc(ctx, msg); err != nil {
			return err
		}
	}
	m.mu.Lock()
	m.sent = append(m.sent, msg)
	m.mu.Unlock()
	return nil
}

func (m *mockMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

type countingObserver struct {
	mu      sync.Mutex
	queued  int
	dropped int
	failed  int
}

func (o *countingObserver) EventQueued(string) {
	o.mu.Lock()
	o.queued++
	o.mu.Unlock()
}

func (o *countingObserver) EventDropped(string) {
	o.mu.Lock()
	o.dropped++
	o.mu.Unlock()
}

func (o *countingObserver) EventHandled(_ string, err error) {
	if err == nil {
		return
	}
	o.mu.Lock()
	o.failed++
	o.mu.Unlock()
}

func (o *countingObserver) snapshot() (queued, dropped, failed int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.queued, o.dropped, o.failed
}

func testUser(t *testing.T, id uint, first, last, email string) *directory.User {
	t.Helper()
	now := time.Now()
	u, err := directory.ReconstructUser(id, directory.UserProfile{
		FirstName: first,
		LastName:  last,
		Email:     email,
		RoleID:    3,
		SiteID:    1,
		Status:    vo.UserStatusActive,
	}, "hash", false, now, now)
	require.NoError(t, err)
	return u
}

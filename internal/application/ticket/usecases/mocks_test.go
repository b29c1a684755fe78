package usecases

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"sync"

	"github.com/assistitk12/assistitk12/internal/domain/access"
	"github.com/assistitk12/assistitk12/internal/domain/directory"
	"github.com/assistitk12/assistitk12/internal/domain/shared/events"
	"github.com/assistitk12/assistitk12/internal/domain/ticket"
)

type mockTicketRepository struct {
	CreateFunc        func(ctx context.Context, t *ticket.Ticket) error
	UpdateFunc        func(ctx context.Context, t *ticket.Ticket) error
	DeleteFunc        func(ctx context.Context, id uint) error
	GetByIDFunc       func(ctx context.Context, id uint) (*ticket.Ticket, error)
	ListFunc          func(ctx context.Context, filter ticket.Filter) ([]*ticket.Ticket, int64, error)
	CountByTitleFunc  func(ctx context.Context, titleID uint) (int64, error)
	CountBySiteFunc   func(ctx context.Context, siteID uint) (int64, error)
	CountByUserFunc   func(ctx context.Context, userID uint) (int64, error)
	DashboardRowsFunc func(ctx context.Context, filter ticket.DashboardFilter) ([]ticket.DashboardRow, error)
	YearsFunc         func(ctx context.Context, filter ticket.DashboardFilter) ([]int, error)

	updated int
}

func (m *mockTicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, t)
	}
	return t.SetID(100)
}

func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	m.updated++
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockTicketRepository) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockTicketRepository) List(ctx context.Context, filter ticket.Filter) ([]*ticket.Ticket, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockTicketRepository) CountByTitle(ctx context.Context, titleID uint) (int64, error) {
	if m.CountByTitleFunc != nil {
		return m.CountByTitleFunc(ctx, titleID)
	}
	return 0, nil
}

func (m *mockTicketRepository) CountBySite(ctx context.Context, siteID uint) (int64, error) {
	if m.CountBySiteFunc != nil {
		return m.CountBySiteFunc(ctx, siteID)
	}
	return 0, nil
}

func (m *mockTicketRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	if m.CountByUserFunc != nil {
		return m.CountByUserFunc(ctx, userID)
	}
	return 0, nil
}

func (m *mockTicketRepository) DashboardRows(ctx context.Context, filter ticket.DashboardFilter) ([]ticket.DashboardRow, error) {
	if m.DashboardRowsFunc != nil {
		return m.DashboardRowsFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockTicketRepository) Years(ctx context.Context, filter ticket.DashboardFilter) ([]int, error) {
	if m.YearsFunc != nil {
		return m.YearsFunc(ctx, filter)
	}
	return nil, nil
}

type mockCommentRepository struct {
	CreateFunc         func(ctx context.Context, c *ticket.Comment) error
	ListByTicketFunc   func(ctx context.Context, ticketID uint) ([]*ticket.Comment, error)
	DeleteByTicketFunc func(ctx context.Context, ticketID uint) error

	created []*ticket.Comment
}

func (m *mockCommentRepository) Create(ctx context.Context, c *ticket.Comment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	m.created = append(m.created, c)
	return c.SetID(uint(len(m.created)))
}

func (m *mockCommentRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.Comment, error) {
	if m.ListByTicketFunc != nil {
		return m.ListByTicketFunc(ctx, ticketID)
	}
	return m.created, nil
}

func (m *mockCommentRepository) DeleteByTicket(ctx context.Context, ticketID uint) error {
	if m.DeleteByTicketFunc != nil {
		return m.DeleteByTicketFunc(ctx, ticketID)
	}
	return nil
}

type mockAttachmentRepository struct {
	CreateFunc         func(ctx context.Context, a *ticket.Attachment) error
	GetByIDFunc        func(ctx context.Context, id uint) (*ticket.Attachment, error)
	ListByTicketFunc   func(ctx context.Context, ticketID uint) ([]*ticket.Attachment, error)
	DeleteFunc         func(ctx context.Context, id uint) error
	DeleteByTicketFunc func(ctx context.Context, ticketID uint) error
	FilenamesFunc      func(ctx context.Context) ([]string, error)

	created []*ticket.Attachment
}

func (m *mockAttachmentRepository) Create(ctx context.Context, a *ticket.Attachment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, a)
	}
	m.created = append(m.created, a)
	return a.SetID(uint(len(m.created)))
}

func (m *mockAttachmentRepository) GetByID(ctx context.Context, id uint) (*ticket.Attachment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockAttachmentRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.Attachment, error) {
	if m.ListByTicketFunc != nil {
		return m.ListByTicketFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockAttachmentRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockAttachmentRepository) DeleteByTicket(ctx context.Context, ticketID uint) error {
	if m.DeleteByTicketFunc != nil {
		return m.DeleteByTicketFunc(ctx, ticketID)
	}
	return nil
}

func (m *mockAttachmentRepository) Filenames(ctx context.Context) ([]string, error) {
	if m.FilenamesFunc != nil {
		return m.FilenamesFunc(ctx)
	}
	return nil, nil
}

type mockTitleRepository struct {
	titles map[uint]*directory.Title
}

func newMockTitleRepository(titles ...*directory.Title) *mockTitleRepository {
	m := &mockTitleRepository{titles: make(map[uint]*directory.Title)}
	for _, t := range titles {
		m.titles[t.ID()] = t
	}
	return m
}

func (m *mockTitleRepository) Create(ctx context.Context, t *directory.Title) error { return nil }
func (m *mockTitleRepository) Update(ctx context.Context, t *directory.Title) error { return nil }
func (m *mockTitleRepository) Delete(ctx context.Context, id uint) error            { return nil }

func (m *mockTitleRepository) GetByID(ctx context.Context, id uint) (*directory.Title, error) {
	return m.titles[id], nil
}

func (m *mockTitleRepository) GetByIDs(ctx context.Context, ids []uint) ([]*directory.Title, error) {
	var out []*directory.Title
	for _, id := range ids {
		if t, ok := m.titles[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *mockTitleRepository) GetByName(ctx context.Context, name string) (*directory.Title, error) {
	return nil, nil
}

func (m *mockTitleRepository) List(ctx context.Context) ([]*directory.Title, error) {
	return nil, nil
}

type mockUserRepository struct {
	users []*directory.User

	ListFunc func(ctx context.Context, filter directory.UserFilter) ([]*directory.User, int64, error)
}

func (m *mockUserRepository) Create(ctx context.Context, u *directory.User) error { return nil }
func (m *mockUserRepository) Update(ctx context.Context, u *directory.User) error { return nil }
func (m *mockUserRepository) Delete(ctx context.Context, id uint) error           { return nil }

func (m *mockUserRepository) GetByID(ctx context.Context, id uint) (*directory.User, error) {
	for _, u := range m.users {
		if u.ID() == id {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepository) GetByIDs(ctx context.Context, ids []uint) ([]*directory.User, error) {
	var out []*directory.User
	for _, id := range ids {
		if u, _ := m.GetByID(ctx, id); u != nil {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*directory.User, error) {
	return nil, nil
}

func (m *mockUserRepository) GetByEmails(ctx context.Context, emails []string) ([]*directory.User, error) {
	return nil, nil
}

func (m *mockUserRepository) List(ctx context.Context, filter directory.UserFilter) ([]*directory.User, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return m.users, int64(len(m.users)), nil
}

func (m *mockUserRepository) FirstBySiteAndRole(ctx context.Context, siteID, roleID uint) (*directory.User, error) {
	var best *directory.User
	for _, u := range m.users {
		if u.SiteID() == siteID && u.RoleID() == roleID && (best == nil || u.ID() < best.ID()) {
			best = u
		}
	}
	return best, nil
}

func (m *mockUserRepository) CountByRole(ctx context.Context, roleID uint) (int64, error) {
	return 0, nil
}

func (m *mockUserRepository) CountBySite(ctx context.Context, siteID uint) (int64, error) {
	return 0, nil
}

// memFileStore keeps files in memory and sniffs them with net/http.
type memFileStore struct {
	mu        sync.Mutex
	files     map[string][]byte
	RemoveErr error
	removed   []string
}

func newMemFileStore() *memFileStore {
	return &memFileStore{files: make(map[string][]byte)}
}

func (s *memFileStore) Save(ctx context.Context, name string, r io.Reader) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.files[name]; ok {
		return 0, &fs.PathError{Op: "open", Path: name, Err: fs.ErrExist}
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	s.files[name] = data
	return int64(len(data)), nil
}

func (s *memFileStore) DetectContentType(ctx context.Context, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[name]
	if !ok {
		return "", fmt.Errorf("file %s not found", name)
	}
	return http.DetectContentType(data), nil
}

func (s *memFileStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[name]
	if !ok {
		return nil, fmt.Errorf("file %s not found", name)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memFileStore) Remove(ctx context.Context, name string) error {
	if s.RemoveErr != nil {
		return s.RemoveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, name)
	s.removed = append(s.removed, name)
	return nil
}

func (s *memFileStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}

type passthroughSanitizer struct{}

func (passthroughSanitizer) Sanitize(html string) string { return html }

type mockTransactor struct {
	calls int
}

func (m *mockTransactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type recordingPublisher struct {
	events []events.DomainEvent
	err    error
}

func (p *recordingPublisher) Publish(e events.DomainEvent) error {
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) PublishAll(evs []events.DomainEvent) error {
	p.events = append(p.events, evs...)
	return p.err
}

func (p *recordingPublisher) types() []string {
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.GetEventType())
	}
	return out
}

type mockResolver struct {
	roles map[uint]access.CapabilitySet
}

func (m *mockResolver) Capabilities(ctx context.Context, roleID uint) (access.CapabilitySet, error) {
	return m.roles[roleID], nil
}

func (m *mockResolver) RolesWith(ctx context.Context, c access.Capability) ([]uint, error) {
	var ids []uint
	for id, set := range m.roles {
		if set.Has(c) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

type mockAssignableCache struct {
	users []directory.AssignableUser
	ok    bool
	sets  int
}

func (m *mockAssignableCache) Get(ctx context.Context) ([]directory.AssignableUser, bool, error) {
	return m.users, m.ok, nil
}

func (m *mockAssignableCache) Set(ctx context.Context, users []directory.AssignableUser) error {
	m.users = users
	m.ok = true
	m.sets++
	return nil
}

func (m *mockAssignableCache) Invalidate(ctx context.Context) error {
	m.users = nil
	m.ok = false
	return nil
}

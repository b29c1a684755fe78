package usecases

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/assistitk12/assistitk12/internal/domain/directory"
)

type memUserRepository struct {
	mu     sync.Mutex
	users  map[uint]*directory.User
	nextID uint

	created int
	updated int
	deleted []uint
}

func newMemUserRepository(users ...*directory.User) *memUserRepository {
	m := &memUserRepository{users: make(map[uint]*directory.User), nextID: 100}
	for _, u := range users {
		m.users[u.ID()] = u
	}
	return m
}

func (m *memUserRepository) Create(_ context.Context, u *directory.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	m.created++
	m.users[m.nextID] = u
	return u.SetID(m.nextID)
}

func (m *memUserRepository) Update(_ context.Context, u *directory.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updated++
	m.users[u.ID()] = u
	return nil
}

func (m *memUserRepository) Delete(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *memUserRepository) GetByID(_ context.Context, id uint) (*directory.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users[id], nil
}

func (m *memUserRepository) GetByIDs(_ context.Context, ids []uint) ([]*directory.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*directory.User
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *memUserRepository) GetByEmail(_ context.Context, email string) (*directory.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email() == strings.ToLower(email) {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUserRepository) GetByEmails(ctx context.Context, emails []string) ([]*directory.User, error) {
	var out []*directory.User
	for _, e := range emails {
		u, _ := m.GetByEmail(ctx, e)
		if u != nil {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *memUserRepository) List(_ context.Context, f directory.UserFilter) ([]*directory.User, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*directory.User
	for _, u := range m.users {
		if f.RoleID != nil && u.RoleID() != *f.RoleID {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FirstName() < out[j].FirstName() })
	return out, int64(len(out)), nil
}

func (m *memUserRepository) FirstBySiteAndRole(context.Context, uint, uint) (*directory.User, error) {
	return nil, nil
}

func (m *memUserRepository) CountByRole(_ context.Context, roleID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, u := range m.users {
		if u.RoleID() == roleID {
			n++
		}
	}
	return n, nil
}

func (m *memUserRepository) CountBySite(_ context.Context, siteID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, u := range m.users {
		if u.SiteID() == siteID {
			n++
		}
	}
	return n, nil
}

func (m *memUserRepository) byEmail(email string) *directory.User {
	u, _ := m.GetByEmail(context.Background(), email)
	return u
}

type memRoleRepository struct {
	roles  map[uint]*directory.Role
	nextID uint
}

func newMemRoleRepository() *memRoleRepository {
	m := &memRoleRepository{roles: make(map[uint]*directory.Role), nextID: 5}
	for id, name := range map[uint]string{1: "Admin", 2: "Specialist", 3: "Technician", 4: "Teacher", 5: "Staff"} {
		m.roles[id] = directory.ReconstructRole(id, name)
	}
	return m
}

func (m *memRoleRepository) Create(_ context.Context, r *directory.Role) error {
	m.nextID++
	m.roles[m.nextID] = r
	return r.SetID(m.nextID)
}

func (m *memRoleRepository) Update(_ context.Context, r *directory.Role) error {
	m.roles[r.ID()] = r
	return nil
}

func (m *memRoleRepository) Delete(_ context.Context, id uint) error {
	delete(m.roles, id)
	return nil
}

func (m *memRoleRepository) GetByID(_ context.Context, id uint) (*directory.Role, error) {
	return m.roles[id], nil
}

func (m *memRoleRepository) GetByName(_ context.Context, name string) (*directory.Role, error) {
	for _, r := range m.roles {
		if strings.EqualFold(r.Name(), name) {
			return r, nil
		}
	}
	return nil, nil
}

func (m *memRoleRepository) List(context.Context) ([]*directory.Role, error) {
	out := make([]*directory.Role, 0, len(m.roles))
	for _, r := range m.roles {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

type memSiteRepository struct {
	sites  map[uint]*directory.Site
	nextID uint
}

func newMemSiteRepository(sites ...*directory.Site) *memSiteRepository {
	m := &memSiteRepository{sites: make(map[uint]*directory.Site), nextID: 10}
	for _, s := range sites {
		m.sites[s.ID()] = s
	}
	return m
}

func (m *memSiteRepository) Create(_ context.Context, s *directory.Site) error {
	m.nextID++
	m.sites[m.nextID] = s
	return s.SetID(m.nextID)
}

func (m *memSiteRepository) Update(_ context.Context, s *directory.Site) error {
	m.sites[s.ID()] = s
	return nil
}

func (m *memSiteRepository) Delete(_ context.Context, id uint) error {
	delete(m.sites, id)
	return nil
}

func (m *memSiteRepository) GetByID(_ context.Context, id uint) (*directory.Site, error) {
	return m.sites[id], nil
}

func (m *memSiteRepository) GetByCDS(_ context.Context, cds string) (*directory.Site, error) {
	for _, s := range m.sites {
		if s.CDS() == cds {
			return s, nil
		}
	}
	return nil, nil
}

func (m *memSiteRepository) GetByNames(_ context.Context, names []string) (map[string]*directory.Site, error) {
	out := make(map[string]*directory.Site)
	for _, n := range names {
		for _, s := range m.sites {
			if s.Name() == n {
				out[n] = s
			}
		}
	}
	return out, nil
}

func (m *memSiteRepository) List(context.Context, directory.SiteFilter) ([]*directory.Site, int64, error) {
	out := make([]*directory.Site, 0, len(m.sites))
	for _, s := range m.sites {
		out = append(out, s)
	}
	return out, int64(len(out)), nil
}

type memTitleRepository struct {
	titles  map[uint]*directory.Title
	nextID  uint
	updated int
}

func newMemTitleRepository(titles ...*directory.Title) *memTitleRepository {
	m := &memTitleRepository{titles: make(map[uint]*directory.Title), nextID: 10}
	for _, t := range titles {
		m.titles[t.ID()] = t
	}
	return m
}

func (m *memTitleRepository) Create(_ context.Context, t *directory.Title) error {
	m.nextID++
	m.titles[m.nextID] = t
	return t.SetID(m.nextID)
}

func (m *memTitleRepository) Update(_ context.Context, t *directory.Title) error {
	m.updated++
	m.titles[t.ID()] = t
	return nil
}

func (m *memTitleRepository) Delete(_ context.Context, id uint) error {
	delete(m.titles, id)
	return nil
}

func (m *memTitleRepository) GetByID(_ context.Context, id uint) (*directory.Title, error) {
	return m.titles[id], nil
}

func (m *memTitleRepository) GetByIDs(_ context.Context, ids []uint) ([]*directory.Title, error) {
	var out []*directory.Title
	for _, id := range ids {
		if t, ok := m.titles[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memTitleRepository) GetByName(_ context.Context, name string) (*directory.Title, error) {
	for _, t := range m.titles {
		if t.Name() == name {
			return t, nil
		}
	}
	return nil, nil
}

func (m *memTitleRepository) List(context.Context) ([]*directory.Title, error) {
	out := make([]*directory.Title, 0, len(m.titles))
	for _, t := range m.titles {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}

type memBulkUploadLogRepository struct {
	logs []*directory.BulkUploadLog
}

func (m *memBulkUploadLogRepository) Create(_ context.Context, l *directory.BulkUploadLog) error {
	l.ID = uint(len(m.logs) + 1)
	m.logs = append(m.logs, l)
	return nil
}

func (m *memBulkUploadLogRepository) List(context.Context, int, int) ([]*directory.BulkUploadLog, int64, error) {
	return m.logs, int64(len(m.logs)), nil
}

type mockTicketCounter struct {
	byUser  map[uint]int64
	bySite  map[uint]int64
	byTitle map[uint]int64
}

func (m *mockTicketCounter) CountByUser(_ context.Context, id uint) (int64, error) {
	return m.byUser[id], nil
}

func (m *mockTicketCounter) CountBySite(_ context.Context, id uint) (int64, error) {
	return m.bySite[id], nil
}

func (m *mockTicketCounter) CountByTitle(_ context.Context, id uint) (int64, error) {
	return m.byTitle[id], nil
}

// plainHasher prefixes instead of hashing so tests can assert on hashes.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Verify(password, hash string) error {
	if hash != "hashed:"+password {
		return fmt.Errorf("password mismatch")
	}
	return nil
}

type countingCache struct {
	invalidated int
}

func (c *countingCache) Get(context.Context) ([]directory.AssignableUser, bool, error) {
	return nil, false, nil
}

func (c *countingCache) Set(context.Context, []directory.AssignableUser) error { return nil }

func (c *countingCache) Invalidate(context.Context) error {
	c.invalidated++
	return nil
}

// passthroughTransactor runs fn directly; failures surface unchanged.
type passthroughTransactor struct {
	calls int
}

func (t *passthroughTransactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

type sliceRowReader struct {
	rows []map[string]string
	err  error
}

func (r sliceRowReader) ReadRows(string, io.Reader) ([]map[string]string, error) {
	return r.rows, r.err
}

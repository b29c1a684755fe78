package directory

import "context"

// UserFilter drives the paginated user list. Search matches first name, last
// name or email.
type UserFilter struct {
	Search   string
	SiteID   *uint
	RoleID   *uint
	RoleIDs  []uint
	Page     int
	PageSize int
}

// UserRepository persists users. Get* methods return (nil, nil) when the row
// does not exist.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByEmails(ctx context.Context, emails []string) ([]*User, error)
	List(ctx context.Context, filter UserFilter) ([]*User, int64, error)
	// FirstBySiteAndRole returns the lowest-id user with the role on the site.
	FirstBySiteAndRole(ctx context.Context, siteID, roleID uint) (*User, error)
	CountByRole(ctx context.Context, roleID uint) (int64, error)
	CountBySite(ctx context.Context, siteID uint) (int64, error)
}

type RoleRepository interface {
	Create(ctx context.Context, role *Role) error
	Update(ctx context.Context, role *Role) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Role, error)
	GetByName(ctx context.Context, name string) (*Role, error)
	List(ctx context.Context) ([]*Role, error)
}

type SiteFilter struct {
	Search   string
	Page     int
	PageSize int
}

type SiteRepository interface {
	Create(ctx context.Context, site *Site) error
	Update(ctx context.Context, site *Site) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Site, error)
	GetByCDS(ctx context.Context, cds string) (*Site, error)
	// GetByNames returns the sites whose name is in names, keyed by name.
	GetByNames(ctx context.Context, names []string) (map[string]*Site, error)
	List(ctx context.Context, filter SiteFilter) ([]*Site, int64, error)
}

type TitleRepository interface {
	Create(ctx context.Context, title *Title) error
	Update(ctx context.Context, title *Title) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Title, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*Title, error)
	GetByName(ctx context.Context, name string) (*Title, error)
	List(ctx context.Context) ([]*Title, error)
}

// AssignableUser is a user who can be picked as a ticket assignee.
type AssignableUser struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	RoleID   uint   `json:"role_id"`
	SiteID   uint   `json:"site_id"`
}

// AssignableUserCache holds the assignee list between user writes.
type AssignableUserCache interface {
	// Get returns the cached list and whether it was present.
	Get(ctx context.Context) ([]AssignableUser, bool, error)
	Set(ctx context.Context, users []AssignableUser) error
	Invalidate(ctx context.Context) error
}

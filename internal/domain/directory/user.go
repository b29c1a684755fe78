package directory

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/assistitk12/assistitk12/internal/domain/directory/valueobjects"
	"github.com/assistitk12/assistitk12/internal/shared/biztime"
)

// UserProfile carries the directory fields of a user.
type UserProfile struct {
	FirstName  string
	MiddleName string
	LastName   string
	Email      string
	RmNum      string
	RoleID     uint
	SiteID     uint
	Status     vo.UserStatus
}

// UserPatch is a partial profile update; nil fields are left unchanged.
type UserPatch struct {
	FirstName  *string
	MiddleName *string
	LastName   *string
	Email      *string
	RmNum      *string
	RoleID     *uint
	SiteID     *uint
	Status     *vo.UserStatus
}

// User is a directory entry. Every user belongs to exactly one role and one site.
type User struct {
	id                uint
	firstName         string
	middleName        string
	lastName          string
	email             *vo.Email
	passwordHash      string
	status            vo.UserStatus
	rmNum             string
	roleID            uint
	siteID            uint
	mustResetPassword bool
	createdAt         time.Time
	updatedAt         time.Time
}

// NewUser creates a user from a profile and an already hashed password.
func NewUser(p UserProfile, passwordHash string) (*User, error) {
	email, err := vo.NewEmail(p.Email)
	if err != nil {
		return nil, err
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password is required")
	}
	status := p.Status
	if status == "" {
		status = vo.UserStatusActive
	}

	now := biztime.NowUTC()
	u := &User{
		firstName:    strings.TrimSpace(p.FirstName),
		middleName:   strings.TrimSpace(p.MiddleName),
		lastName:     strings.TrimSpace(p.LastName),
		email:        email,
		passwordHash: passwordHash,
		status:       status,
		rmNum:        strings.TrimSpace(p.RmNum),
		roleID:       p.RoleID,
		siteID:       p.SiteID,
		createdAt:    now,
		updatedAt:    now,
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// ReconstructUser rebuilds a user from persistence without validation.
func ReconstructUser(
	id uint,
	p UserProfile,
	passwordHash string,
	mustResetPassword bool,
	createdAt, updatedAt time.Time,
) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	email, err := vo.NewEmail(p.Email)
	if err != nil {
		return nil, fmt.Errorf("invalid stored email for user %d: %w", id, err)
	}
	return &User{
		id:                id,
		firstName:         p.FirstName,
		middleName:        p.MiddleName,
		lastName:          p.LastName,
		email:             email,
		passwordHash:      passwordHash,
		status:            p.Status,
		rmNum:             p.RmNum,
		roleID:            p.RoleID,
		siteID:            p.SiteID,
		mustResetPassword: mustResetPassword,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}, nil
}

func (u *User) ID() uint                { return u.id }
func (u *User) FirstName() string       { return u.firstName }
func (u *User) MiddleName() string      { return u.middleName }
func (u *User) LastName() string        { return u.lastName }
func (u *User) Email() string           { return u.email.String() }
func (u *User) PasswordHash() string    { return u.passwordHash }
func (u *User) Status() vo.UserStatus   { return u.status }
func (u *User) RmNum() string           { return u.rmNum }
func (u *User) RoleID() uint            { return u.roleID }
func (u *User) SiteID() uint            { return u.siteID }
func (u *User) MustResetPassword() bool { return u.mustResetPassword }
func (u *User) CreatedAt() time.Time    { return u.createdAt }
func (u *User) UpdatedAt() time.Time    { return u.updatedAt }
func (u *User) IsActive() bool          { return u.status.IsActive() }

// FullName joins first and last name.
func (u *User) FullName() string {
	return strings.TrimSpace(u.firstName + " " + u.lastName)
}

func (u *User) Profile() UserProfile {
	return UserProfile{
		FirstName:  u.firstName,
		MiddleName: u.middleName,
		LastName:   u.lastName,
		Email:      u.email.String(),
		RmNum:      u.rmNum,
		RoleID:     u.roleID,
		SiteID:     u.siteID,
		Status:     u.status,
	}
}

func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}

// ApplyPatch applies the non-nil fields and returns the names of the fields
// whose value actually changed. updated_at moves only when something changed.
func (u *User) ApplyPatch(p UserPatch) ([]string, error) {
	var changed []string

	setString := func(field string, dst *string, src *string) {
		if src == nil {
			return
		}
		v := strings.TrimSpace(*src)
		if v != *dst {
			*dst = v
			changed = append(changed, field)
		}
	}
	setString("first_name", &u.firstName, p.FirstName)
	setString("middle_name", &u.middleName, p.MiddleName)
	setString("last_name", &u.lastName, p.LastName)
	setString("rm_num", &u.rmNum, p.RmNum)

	if p.Email != nil && vo.NormalizeEmail(*p.Email) != u.email.String() {
		email, err := vo.NewEmail(*p.Email)
		if err != nil {
			return nil, err
		}
		u.email = email
		changed = append(changed, "email")
	}
	if p.RoleID != nil && *p.RoleID != u.roleID {
		u.roleID = *p.RoleID
		changed = append(changed, "role_id")
	}
	if p.SiteID != nil && *p.SiteID != u.siteID {
		u.siteID = *p.SiteID
		changed = append(changed, "site_id")
	}
	if p.Status != nil && *p.Status != u.status {
		u.status = *p.Status
		changed = append(changed, "status")
	}

	if err := u.Validate(); err != nil {
		return nil, err
	}
	if len(changed) > 0 {
		u.updatedAt = biztime.NowUTC()
	}
	return changed, nil
}

// ApplyImport applies the only fields a bulk import may overwrite on an
// existing user: room, role and site. Reports whether anything changed.
func (u *User) ApplyImport(rmNum string, roleID, siteID uint) bool {
	rmNum = strings.TrimSpace(rmNum)
	if rmNum == u.rmNum && roleID == u.roleID && siteID == u.siteID {
		return false
	}
	u.rmNum = rmNum
	u.roleID = roleID
	u.siteID = siteID
	u.updatedAt = biztime.NowUTC()
	return true
}

// SetPasswordHash stores a new hash. mustReset forces a change on next login.
func (u *User) SetPasswordHash(hash string, mustReset bool) error {
	if hash == "" {
		return fmt.Errorf("password hash cannot be empty")
	}
	u.passwordHash = hash
	u.mustResetPassword = mustReset
	u.updatedAt = biztime.NowUTC()
	return nil
}

func (u *User) Validate() error {
	if u.firstName == "" {
		return fmt.Errorf("first name is required")
	}
	if u.lastName == "" {
		return fmt.Errorf("last name is required")
	}
	if len(u.firstName) > 50 || len(u.lastName) > 50 || len(u.middleName) > 50 {
		return fmt.Errorf("name parts cannot exceed 50 characters")
	}
	if u.roleID == 0 {
		return fmt.Errorf("role is required")
	}
	if u.siteID == 0 {
		return fmt.Errorf("site is required")
	}
	if u.status != vo.UserStatusActive && u.status != vo.UserStatusInactive {
		return fmt.Errorf("invalid user status: %s", u.status)
	}
	return nil
}

package directory

import (
	"fmt"
	"strings"
)

// Reserved role ids. These rows are created by the seed command and cannot be
// renamed or removed.
const (
	RoleAdmin      uint = 1
	RoleSpecialist uint = 2
	RoleTechnician uint = 3
	RoleTeacher    uint = 4
	RoleStaff      uint = 5
)

// IsReservedRole reports whether the role id is one of the built-in roles.
func IsReservedRole(id uint) bool {
	return id >= RoleAdmin && id <= RoleStaff
}

// Role is a named group of users; its capabilities live in the access policy.
type Role struct {
	id   uint
	name string
}

func NewRole(name string) (*Role, error) {
	r := &Role{}
	if err := r.Rename(name); err != nil {
		return nil, err
	}
	return r, nil
}

func ReconstructRole(id uint, name string) *Role {
	return &Role{id: id, name: name}
}

func (r *Role) ID() uint     { return r.id }
func (r *Role) Name() string { return r.name }

func (r *Role) SetID(id uint) error {
	if r.id != 0 {
		return fmt.Errorf("role ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("role ID cannot be zero")
	}
	r.id = id
	return nil
}

// Rename validates and sets the name. Reserved roles refuse the change.
func (r *Role) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("role name is required")
	}
	if len(name) > 50 {
		return fmt.Errorf("role name cannot exceed 50 characters")
	}
	if r.id != 0 && IsReservedRole(r.id) {
		return fmt.Errorf("built-in roles cannot be modified")
	}
	r.name = name
	return nil
}

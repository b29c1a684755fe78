package valueobjects

import (
	"fmt"
	"strings"
)

// UserStatus is the account status shown in the directory.
type UserStatus string

const (
	UserStatusActive   UserStatus = "Active"
	UserStatusInactive UserStatus = "Inactive"
)

// ParseUserStatus accepts any casing; empty means Active.
func ParseUserStatus(s string) (UserStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "active":
		return UserStatusActive, nil
	case "inactive":
		return UserStatusInactive, nil
	}
	return "", fmt.Errorf("invalid user status: %s", s)
}

func (s UserStatus) String() string {
	return string(s)
}

func (s UserStatus) IsActive() bool {
	return s == UserStatusActive
}

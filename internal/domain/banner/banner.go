// Package banner models the system-wide messages shown on the login page.
package banner

import (
	"fmt"
	"strings"
	"time"

	"github.com/assistitk12/assistitk12/internal/shared/biztime"
)

type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid banner status: %s", s)
	}
	return st, nil
}

const (
	maxNameLength    = 100
	maxContentLength = 10000
)

// Banner is a markdown message. At most one banner is active at a time.
type Banner struct {
	id        uint
	name      string
	content   string
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

// NewBanner creates an inactive banner.
func NewBanner(name, content string) (*Banner, error) {
	name, content, err := validate(name, content)
	if err != nil {
		return nil, err
	}

	now := biztime.NowUTC()
	return &Banner{
		name:      name,
		content:   content,
		status:    StatusInactive,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructBanner(id uint, name, content string, status Status, createdAt, updatedAt time.Time) (*Banner, error) {
	if id == 0 {
		return nil, fmt.Errorf("banner ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid banner status: %s", status)
	}
	return &Banner{
		id:        id,
		name:      name,
		content:   content,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func validate(name, content string) (string, string, error) {
	name = strings.TrimSpace(name)
	content = strings.TrimSpace(content)
	if name == "" {
		return "", "", fmt.Errorf("name is required")
	}
	if len(name) > maxNameLength {
		return "", "", fmt.Errorf("name exceeds maximum length of %d characters", maxNameLength)
	}
	if content == "" {
		return "", "", fmt.Errorf("content is required")
	}
	if len(content) > maxContentLength {
		return "", "", fmt.Errorf("content exceeds maximum length of %d characters", maxContentLength)
	}
	return name, content, nil
}

func (b *Banner) ID() uint             { return b.id }
func (b *Banner) Name() string         { return b.name }
func (b *Banner) Content() string      { return b.content }
func (b *Banner) Status() Status       { return b.status }
func (b *Banner) IsActive() bool       { return b.status == StatusActive }
func (b *Banner) CreatedAt() time.Time { return b.createdAt }
func (b *Banner) UpdatedAt() time.Time { return b.updatedAt }

func (b *Banner) SetID(id uint) error {
	if b.id != 0 {
		return fmt.Errorf("banner ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("banner ID cannot be zero")
	}
	b.id = id
	return nil
}

// Edit replaces name and content and reports whether anything changed.
func (b *Banner) Edit(name, content string) (bool, error) {
	name, content, err := validate(name, content)
	if err != nil {
		return false, err
	}
	if name == b.name && content == b.content {
		return false, nil
	}
	b.name = name
	b.content = content
	b.updatedAt = biztime.NowUTC()
	return true, nil
}

// SetStatus changes the status and reports whether it changed. The caller
// is responsible for the single-active rule.
func (b *Banner) SetStatus(s Status) (bool, error) {
	if !s.IsValid() {
		return false, fmt.Errorf("invalid banner status: %s", s)
	}
	if s == b.status {
		return false, nil
	}
	b.status = s
	b.updatedAt = biztime.NowUTC()
	return true, nil
}

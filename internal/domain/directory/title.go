package directory

import (
	"fmt"
	"strings"
)

// Title is a ticket category from the issue catalog.
type Title struct {
	id   uint
	name string
}

func NewTitle(name string) (*Title, error) {
	t := &Title{}
	if _, err := t.Rename(name); err != nil {
		return nil, err
	}
	return t, nil
}

func ReconstructTitle(id uint, name string) *Title {
	return &Title{id: id, name: name}
}

func (t *Title) ID() uint     { return t.id }
func (t *Title) Name() string { return t.name }

func (t *Title) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("title ID is already set")
	}
	t.id = id
	return nil
}

// Rename sets the name and reports whether it changed.
func (t *Title) Rename(name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, fmt.Errorf("title name is required")
	}
	if len(name) > 100 {
		return false, fmt.Errorf("title name cannot exceed 100 characters")
	}
	if name == t.name {
		return false, nil
	}
	t.name = name
	return true, nil
}

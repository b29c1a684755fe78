// Package access resolves what an authenticated user may do.
package access

import (
	"sort"
	"strings"
)

// Capability is a named permission granted to a role.
type Capability string

const (
	ManageDirectory Capability = "manage_directory"
	ManageUsers     Capability = "manage_users"
	ViewAllSites    Capability = "view_all_sites"
	ViewSiteTickets Capability = "view_site_tickets"
	ActOnTickets    Capability = "act_on_tickets"
	DeleteTickets   Capability = "delete_tickets"
	Assignable      Capability = "assignable"
)

// Permission is the resource/action pair a capability is enforced as.
type Permission struct {
	Resource string
	Action   string
}

var capabilityPermissions = map[Capability]Permission{
	ManageDirectory: {Resource: "directory", Action: "manage"},
	ManageUsers:     {Resource: "user", Action: "manage"},
	ViewAllSites:    {Resource: "ticket", Action: "view_all"},
	ViewSiteTickets: {Resource: "ticket", Action: "view_site"},
	ActOnTickets:    {Resource: "ticket", Action: "act"},
	DeleteTickets:   {Resource: "ticket", Action: "delete"},
	Assignable:      {Resource: "ticket", Action: "assignable"},
}

// AllCapabilities lists capabilities in a stable order.
var AllCapabilities = []Capability{
	ManageDirectory,
	ManageUsers,
	ViewAllSites,
	ViewSiteTickets,
	ActOnTickets,
	DeleteTickets,
	Assignable,
}

func (c Capability) Permission() Permission {
	return capabilityPermissions[c]
}

func (c Capability) IsValid() bool {
	_, ok := capabilityPermissions[c]
	return ok
}

// DefaultRoleCapabilities is the policy seeded for the reserved roles.
// Roles absent from the map get no capabilities.
var DefaultRoleCapabilities = map[uint][]Capability{
	1: {ManageDirectory, ManageUsers, ViewAllSites, ActOnTickets, DeleteTickets, Assignable},
	2: {ManageUsers, ViewAllSites, ActOnTickets, Assignable},
	3: {ManageUsers, ViewSiteTickets, ActOnTickets, Assignable},
}

// CapabilitySet is an immutable set of capabilities.
type CapabilitySet struct {
	caps map[Capability]struct{}
}

func NewCapabilitySet(caps ...Capability) CapabilitySet {
	s := CapabilitySet{caps: make(map[Capability]struct{}, len(caps))}
	for _, c := range caps {
		s.caps[c] = struct{}{}
	}
	return s
}

func (s CapabilitySet) Has(c Capability) bool {
	_, ok := s.caps[c]
	return ok
}

func (s CapabilitySet) Len() int {
	return len(s.caps)
}

// List returns the capabilities sorted by name.
func (s CapabilitySet) List() []Capability {
	out := make([]Capability, 0, len(s.caps))
	for c := range s.caps {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s CapabilitySet) String() string {
	names := make([]string, 0, len(s.caps))
	for _, c := range s.List() {
		names = append(names, string(c))
	}
	return strings.Join(names, ",")
}

package directory

import (
	"fmt"
	"strings"
)

// SiteDetails is the editable content of a site.
type SiteDetails struct {
	Name    string
	GUID    string
	CDS     string
	Code    string
	Abbr    string
	Address string
	Type    string
}

func (d SiteDetails) normalized() SiteDetails {
	return SiteDetails{
		Name:    strings.TrimSpace(d.Name),
		GUID:    strings.TrimSpace(d.GUID),
		CDS:     strings.TrimSpace(d.CDS),
		Code:    strings.TrimSpace(d.Code),
		Abbr:    strings.TrimSpace(d.Abbr),
		Address: strings.TrimSpace(d.Address),
		Type:    strings.TrimSpace(d.Type),
	}
}

func (d SiteDetails) validate() error {
	required := []struct{ field, value string }{
		{"name", d.Name},
		{"guid", d.GUID},
		{"cds", d.CDS},
		{"code", d.Code},
		{"abbreviation", d.Abbr},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("site %s is required", r.field)
		}
	}
	if len(d.Name) > 100 {
		return fmt.Errorf("site name cannot exceed 100 characters")
	}
	return nil
}

// Site is a school or office. Users belong to a site and tickets copy the
// creator's site.
type Site struct {
	id      uint
	details SiteDetails
}

func NewSite(d SiteDetails) (*Site, error) {
	d = d.normalized()
	if err := d.validate(); err != nil {
		return nil, err
	}
	return &Site{details: d}, nil
}

func ReconstructSite(id uint, d SiteDetails) *Site {
	return &Site{id: id, details: d}
}

func (s *Site) ID() uint             { return s.id }
func (s *Site) Name() string         { return s.details.Name }
func (s *Site) GUID() string         { return s.details.GUID }
func (s *Site) CDS() string          { return s.details.CDS }
func (s *Site) Code() string         { return s.details.Code }
func (s *Site) Abbr() string         { return s.details.Abbr }
func (s *Site) Address() string      { return s.details.Address }
func (s *Site) Type() string         { return s.details.Type }
func (s *Site) Details() SiteDetails { return s.details }

func (s *Site) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("site ID is already set")
	}
	s.id = id
	return nil
}

// Update replaces the details and reports whether anything differed.
func (s *Site) Update(d SiteDetails) (bool, error) {
	d = d.normalized()
	if err := d.validate(); err != nil {
		return false, err
	}
	if d == s.details {
		return false, nil
	}
	s.details = d
	return true, nil
}

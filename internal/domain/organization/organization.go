// Package organization holds the singleton organization profile and its
// outbound mail configuration.
package organization

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/assistitk12/assistitk12/internal/shared/biztime"
)

// SingletonID is the primary key of the only organization row.
const SingletonID uint = 1

// MailSettings describes the SMTP server used for notifications. UseSSL
// means implicit TLS; UseTLS means STARTTLS.
type MailSettings struct {
	Server        string
	Port          int
	UseTLS        bool
	UseSSL        bool
	Username      string
	DefaultSender string
}

// Configured reports whether enough is set to attempt delivery.
func (m MailSettings) Configured() bool {
	return m.Server != "" && m.Port > 0 && m.DefaultSender != ""
}

func (m MailSettings) validate() error {
	if m.UseTLS && m.UseSSL {
		return fmt.Errorf("use either TLS or SSL, not both")
	}
	if m.Port < 0 || m.Port > 65535 {
		return fmt.Errorf("mail port must be between 1 and 65535")
	}
	if m.Server != "" && m.Port == 0 {
		return fmt.Errorf("mail port is required when a mail server is set")
	}
	if m.DefaultSender != "" {
		if _, err := mail.ParseAddress(m.DefaultSender); err != nil {
			return fmt.Errorf("invalid default sender: %s", m.DefaultSender)
		}
	}
	return nil
}

// Profile is the editable part of the organization.
type Profile struct {
	Name        string
	SiteVersion string
	LogoPath    string
	Mail        MailSettings
}

func (p Profile) normalize() Profile {
	p.Name = strings.TrimSpace(p.Name)
	p.SiteVersion = strings.TrimSpace(p.SiteVersion)
	p.LogoPath = strings.TrimSpace(p.LogoPath)
	p.Mail.Server = strings.TrimSpace(p.Mail.Server)
	p.Mail.Username = strings.TrimSpace(p.Mail.Username)
	p.Mail.DefaultSender = strings.TrimSpace(p.Mail.DefaultSender)
	return p
}

// Organization stores the mail password only in encrypted form.
type Organization struct {
	id                    uint
	profile               Profile
	encryptedMailPassword string
	updatedAt             time.Time
}

func NewOrganization(name string) (*Organization, error) {
	p := Profile{Name: name, SiteVersion: "1.0"}.normalize()
	if p.Name == "" {
		return nil, fmt.Errorf("organization name is required")
	}
	return &Organization{
		id:        SingletonID,
		profile:   p,
		updatedAt: biztime.NowUTC(),
	}, nil
}

func ReconstructOrganization(id uint, p Profile, encryptedMailPassword string, updatedAt time.Time) *Organization {
	return &Organization{
		id:                    id,
		profile:               p,
		encryptedMailPassword: encryptedMailPassword,
		updatedAt:             updatedAt,
	}
}

func (o *Organization) ID() uint                      { return o.id }
func (o *Organization) Profile() Profile              { return o.profile }
func (o *Organization) Name() string                  { return o.profile.Name }
func (o *Organization) Mail() MailSettings            { return o.profile.Mail }
func (o *Organization) EncryptedMailPassword() string { return o.encryptedMailPassword }
func (o *Organization) HasMailPassword() bool         { return o.encryptedMailPassword != "" }
func (o *Organization) UpdatedAt() time.Time          { return o.updatedAt }

// Update replaces the profile and reports whether anything changed.
func (o *Organization) Update(p Profile) (bool, error) {
	p = p.normalize()
	if p.Name == "" {
		return false, fmt.Errorf("organization name is required")
	}
	if err := p.Mail.validate(); err != nil {
		return false, err
	}
	if p == o.profile {
		return false, nil
	}
	o.profile = p
	o.updatedAt = biztime.NowUTC()
	return true, nil
}

// SetEncryptedMailPassword stores an already encrypted password. An empty
// value clears it.
func (o *Organization) SetEncryptedMailPassword(ciphertext string) {
	o.encryptedMailPassword = ciphertext
	o.updatedAt = biztime.NowUTC()
}

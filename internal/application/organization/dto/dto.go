package dto

import (
	"time"

	"github.com/assistitk12/assistitk12/internal/domain/organization"
)

// OrganizationDTO never carries the mail password, only whether one is set.
type OrganizationDTO struct {
	Name            string    `json:"name"`
	SiteVersion     string    `json:"site_version"`
	LogoPath        string    `json:"logo_path,omitempty"`
	MailServer      string    `json:"mail_server"`
	MailPort        int       `json:"mail_port"`
	MailUseTLS      bool      `json:"mail_use_tls"`
	MailUseSSL      bool      `json:"mail_use_ssl"`
	MailUsername    string    `json:"mail_username"`
	MailSender      string    `json:"mail_default_sender"`
	MailPasswordSet bool      `json:"mail_password_set"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func ToOrganizationDTO(o *organization.Organization) *OrganizationDTO {
	if o == nil {
		return nil
	}
	p := o.Profile()
	return &OrganizationDTO{
		Name:            p.Name,
		SiteVersion:     p.SiteVersion,
		LogoPath:        p.LogoPath,
		MailServer:      p.Mail.Server,
		MailPort:        p.Mail.Port,
		MailUseTLS:      p.Mail.UseTLS,
		MailUseSSL:      p.Mail.UseSSL,
		MailUsername:    p.Mail.Username,
		MailSender:      p.Mail.DefaultSender,
		MailPasswordSet: o.HasMailPassword(),
		UpdatedAt:       o.UpdatedAt(),
	}
}

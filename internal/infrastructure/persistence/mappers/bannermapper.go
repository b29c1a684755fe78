package mappers

import (
	"fmt"

	"github.com/assistitk12/assistitk12/internal/domain/banner"
	"github.com/assistitk12/assistitk12/internal/domain/organization"
	"github.com/assistitk12/assistitk12/internal/infrastructure/persistence/models"
)

func BannerToDomain(m *models.BannerModel) (*banner.Banner, error) {
	status, err := banner.ParseStatus(m.Status)
	if err != nil {
		return nil, fmt.Errorf("invalid stored status for banner %d: %w", m.ID, err)
	}
	return banner.ReconstructBanner(m.ID, m.Name, m.Content, status, m.CreatedAt, m.UpdatedAt)
}

func BannerToModel(b *banner.Banner) *models.BannerModel {
	return &models.BannerModel{
		ID:        b.ID(),
		Name:      b.Name(),
		Content:   b.Content(),
		Status:    string(b.Status()),
		CreatedAt: b.CreatedAt(),
		UpdatedAt: b.UpdatedAt(),
	}
}

func OrganizationToDomain(m *models.OrganizationModel) *organization.Organization {
	return organization.ReconstructOrganization(m.ID, organization.Profile{
		Name:        m.Name,
		SiteVersion: m.SiteVersion,
		LogoPath:    m.LogoPath,
		Mail: organization.MailSettings{
			Server:        m.MailServer,
			Port:          m.MailPort,
			UseTLS:        m.MailUseTLS,
			UseSSL:        m.MailUseSSL,
			Username:      m.MailUsername,
			DefaultSender: m.DefaultSender,
		},
	}, m.MailPassword, m.UpdatedAt)
}

func OrganizationToModel(o *organization.Organization) *models.OrganizationModel {
	p := o.Profile()
	return &models.OrganizationModel{
		ID:            o.ID(),
		Name:          p.Name,
		SiteVersion:   p.SiteVersion,
		LogoPath:      p.LogoPath,
		MailServer:    p.Mail.Server,
		MailPort:      p.Mail.Port,
		MailUseTLS:    p.Mail.UseTLS,
		MailUseSSL:    p.Mail.UseSSL,
		MailUsername:  p.Mail.Username,
		MailPassword:  o.EncryptedMailPassword(),
		DefaultSender: p.Mail.DefaultSender,
		UpdatedAt:     o.UpdatedAt(),
	}
}

package email

import (
	"context"
	"fmt"
	"sync"

	"github.com/assistitk12/assistitk12/internal/application/notification"
	orgUsecases "github.com/assistitk12/assistitk12/internal/application/organization/usecases"
	"github.com/assistitk12/assistitk12/internal/domain/organization"
	"github.com/assistitk12/assistitk12/internal/shared/logger"
)

// SecretDecrypter opens the stored mail password.
type SecretDecrypter interface {
	Decrypt(ciphertext string) (string, error)
}

var (
	_ notification.Mailer        = (*MailerManager)(nil)
	_ orgUsecases.ChangeNotifier = (*MailerManager)(nil)
)

// MailerManager rebuilds the SMTP mailer whenever the organization's mail
// settings are saved, so changes apply without a restart.
type MailerManager struct {
	repo      organization.Repository
	decrypter SecretDecrypter
	logger    logger.Interface

	mu     sync.RWMutex
	mailer notification.Mailer
}

func NewMailerManager(repo organization.Repository, decrypter SecretDecrypter, logger logger.Interface) *MailerManager {
	return &MailerManager{
		repo:      repo,
		decrypter: decrypter,
		logger:    logger,
	}
}

// Initialize loads the current settings. A missing organization leaves mail
// disabled.
func (m *MailerManager) Initialize(ctx context.Context) error {
	org, err := m.repo.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to load organization: %w", err)
	}
	return m.OnOrganizationChange(ctx, org)
}

func (m *MailerManager) OnOrganizationChange(_ context.Context, org *organization.Organization) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if org == nil || !org.Mail().Configured() {
		m.mailer = nil
		m.logger.Infow("email service not configured")
		return nil
	}

	password := ""
	if org.HasMailPassword() {
		plain, err := m.decrypter.Decrypt(org.EncryptedMailPassword())
		if err != nil {
			m.mailer = nil
			return fmt.Errorf("failed to decrypt mail password: %w", err)
		}
		password = plain
	}

	cfg := ConfigFromOrganization(org.Mail(), password)
	m.mailer = NewSMTPMailer(cfg)
	m.logger.Infow("email service initialized",
		"host", cfg.Host,
		"port", cfg.Port,
		"ssl", cfg.SSL,
		"from", cfg.From,
	)
	return nil
}

func (m *MailerManager) Send(ctx context.Context, msg notification.Message) error {
	m.mu.RLock()
	mailer := m.mailer
	m.mu.RUnlock()

	if mailer == nil {
		return ErrEmailServiceNotConfigured
	}
	return mailer.Send(ctx, msg)
}

func (m *MailerManager) IsConfigured() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.mailer != nil
}

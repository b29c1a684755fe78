package models

import "time"

// OrganizationModel is the singleton row. MailPassword holds ciphertext.
type OrganizationModel struct {
	ID            uint   `gorm:"primaryKey"`
	Name          string `gorm:"size:200;not null"`
	SiteVersion   string `gorm:"size:50"`
	LogoPath      string `gorm:"size:255"`
	MailServer    string `gorm:"size:255"`
	MailPort      int
	MailUseTLS    bool   `gorm:"column:mail_use_tls"`
	MailUseSSL    bool   `gorm:"column:mail_use_ssl"`
	MailUsername  string `gorm:"size:255"`
	MailPassword  string `gorm:"type:text"`
	DefaultSender string `gorm:"size:255"`
	UpdatedAt     time.Time
}

func (OrganizationModel) TableName() string {
	return TableOrganization
}

// All lists every model for AutoMigrate.
func All() []any {
	return []any{
		&UserModel{},
		&RoleModel{},
		&SiteModel{},
		&TitleModel{},
		&TicketModel{},
		&CommentModel{},
		&AttachmentModel{},
		&BannerModel{},
		&OrganizationModel{},
		&BulkUploadLogModel{},
	}
}

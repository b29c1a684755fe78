package models

import "time"

type TicketModel struct {
	ID           uint      `gorm:"primaryKey"`
	TitleID      uint      `gorm:"not null;index"`
	UserID       uint      `gorm:"not null;index"`
	SiteID       uint      `gorm:"not null;index"`
	AssignedToID *uint     `gorm:"index"`
	Status       string    `gorm:"size:20;not null;index"`
	Escalated    bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time `gorm:"not null;index"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime:false"`

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (TicketModel) TableName() string {
	return TableTickets
}

type CommentModel struct {
	ID        uint      `gorm:"primaryKey"`
	TicketID  uint      `gorm:"not null;index"`
	UserID    uint      `gorm:"not null;index"`
	Text      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (CommentModel) TableName() string {
	return TableComments
}

type AttachmentModel struct {
	ID           uint      `gorm:"primaryKey"`
	TicketID     uint      `gorm:"not null;index"`
	UserID       uint      `gorm:"not null"`
	Filename     string    `gorm:"uniqueIndex;size:255;not null"`
	OriginalName string    `gorm:"size:255"`
	ContentType  string    `gorm:"size:100"`
	Size         int64     `gorm:"not null"`
	UploadedAt   time.Time `gorm:"not null"`
}

func (AttachmentModel) TableName() string {
	return TableAttachments
}

package models

import "time"

// UserModel is the persistence model for directory users.
type UserModel struct {
	ID                uint   `gorm:"primaryKey"`
	FirstName         string `gorm:"size:100;not null;index"`
	MiddleName        string `gorm:"size:100"`
	LastName          string `gorm:"size:100;not null"`
	Email             string `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash      string `gorm:"size:255;not null"`
	Status            string `gorm:"size:20;not null;default:Active"`
	RmNum             string `gorm:"size:50"`
	RoleID            uint   `gorm:"not null;index"`
	SiteID            uint   `gorm:"not null;index"`
	MustResetPassword bool   `gorm:"not null;default:false"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (UserModel) TableName() string {
	return TableUsers
}

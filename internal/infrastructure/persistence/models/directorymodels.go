package models

import (
	"time"

	"gorm.io/datatypes"
)

type RoleModel struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:100;not null"`
}

func (RoleModel) TableName() string {
	return TableRoles
}

type SiteModel struct {
	ID      uint   `gorm:"primaryKey"`
	Name    string `gorm:"uniqueIndex;size:200;not null"`
	GUID    string `gorm:"column:guid;uniqueIndex;size:64;not null"`
	CDS     string `gorm:"column:cds;uniqueIndex;size:50;not null"`
	Code    string `gorm:"uniqueIndex;size:50;not null"`
	Abbr    string `gorm:"uniqueIndex;size:50;not null"`
	Address string `gorm:"size:255"`
	Type    string `gorm:"size:50"`
}

func (SiteModel) TableName() string {
	return TableSites
}

type TitleModel struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:200;not null"`
}

func (TitleModel) TableName() string {
	return TableTitles
}

// BulkUploadLogModel keeps per-row import errors in a JSON column.
type BulkUploadLogModel struct {
	ID           uint      `gorm:"primaryKey"`
	Filename     string    `gorm:"size:255;not null"`
	UploadedAt   time.Time `gorm:"not null;index"`
	UploadedBy   uint      `gorm:"not null"`
	TotalRows    int       `gorm:"not null;default:0"`
	Added        int       `gorm:"not null;default:0"`
	Updated      int       `gorm:"not null;default:0"`
	Status       string    `gorm:"size:20;not null"`
	ErrorMessage string    `gorm:"type:text"`
	RowErrors    datatypes.JSONSlice[string]
}

func (BulkUploadLogModel) TableName() string {
	return TableBulkUploadLogs
}

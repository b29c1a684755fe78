package models

import "time"

type BannerModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;size:200;not null"`
	Content   string `gorm:"type:text;not null"`
	Status    string `gorm:"size:20;not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (BannerModel) TableName() string {
	return TableBanners
}

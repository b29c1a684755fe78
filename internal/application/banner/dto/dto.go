package dto

import (
	"time"

	"github.com/assistitk12/assistitk12/internal/domain/banner"
)

type BannerDTO struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ActiveBannerDTO is the public, rendered form shown on the login page.
type ActiveBannerDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	HTML string `json:"html"`
}

func ToBannerDTO(b *banner.Banner) *BannerDTO {
	if b == nil {
		return nil
	}
	return &BannerDTO{
		ID:        b.ID(),
		Name:      b.Name(),
		Content:   b.Content(),
		Status:    string(b.Status()),
		CreatedAt: b.CreatedAt(),
		UpdatedAt: b.UpdatedAt(),
	}
}

package models

import "time"

type PixConfig struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	ProfessionalID uint `gorm:"uniqueIndex;not null" json:"professional_id"`

	PixKey         string `gorm:"size:255;not null" json:"pix_key"`
	PixKeyType     string `gorm:"size:20" json:"pix_key_type"`
	AcceptsOnlyPix bool   `gorm:"default:false" json:"accepts_only_pix"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

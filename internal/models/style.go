package models

import "time"

// Style é a vitrine pública do profissional.
type Style struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	ProfessionalID uint `gorm:"uniqueIndex;not null" json:"professional_id"`

	LogoURL             string `gorm:"size:512" json:"logo_url"`
	ProfilePhotoURL     string `gorm:"size:512" json:"profile_photo_url"`
	CardBackgroundColor string `gorm:"size:20;default:'#ffffff'" json:"card_background_color"`
	ButtonColor         string `gorm:"size:20;default:'#1f2937'" json:"button_color"`
	TextColor           string `gorm:"size:20;default:'#111827'" json:"text_color"`

	ProfessionalName        string `gorm:"size:100" json:"professional_name"`
	ProfessionalSpecialty   string `gorm:"size:100" json:"professional_specialty"`
	ProfessionalDescription string `gorm:"type:text" json:"professional_description"`
	WhatsappNumber          string `gorm:"size:20" json:"whatsapp_number"`
	InstagramHandle         string `gorm:"size:60" json:"instagram_handle"`
	FacebookHandle          string `gorm:"size:60" json:"facebook_handle"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func DefaultStyle(professionalID uint) Style {
	return Style{
		ProfessionalID:      professionalID,
		CardBackgroundColor: "#ffffff",
		ButtonColor:         "#1f2937",
		TextColor:           "#111827",
	}
}

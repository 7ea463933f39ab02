package models

import "time"

// Professional é o dono da agenda (tenant). Todo dado de agenda pertence a ele.
type Professional struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	BusinessName string `gorm:"size:100" json:"business_name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Document     string `gorm:"size:20" json:"document"`
	Address      string `gorm:"size:255" json:"address"`
	City         string `gorm:"size:60" json:"city"`

	Timezone          string `gorm:"size:64;default:'America/Sao_Paulo'" json:"timezone"`
	MinAdvanceMinutes int    `gorm:"default:0" json:"min_advance_minutes"`
	TelegramChatID    *int64 `json:"telegram_chat_id,omitempty"`

	PlanID *uint `json:"plan_id"`
	Plan   *Plan `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"plan,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DisplayName prefere o nome fantasia.
func (p *Professional) DisplayName() string {
	if p.BusinessName != "" {
		return p.BusinessName
	}
	return p.Name
}

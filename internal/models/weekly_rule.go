package models

import "time"

// WeeklyRule guarda o expediente de um dia da semana. Horários em "15:04".
type WeeklyRule struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	ProfessionalID uint `gorm:"uniqueIndex:ux_weekly_rules_professional_weekday;not null" json:"professional_id"`

	// 0 = domingo ... 6 = sábado (time.Weekday)
	Weekday int `gorm:"uniqueIndex:ux_weekly_rules_professional_weekday;not null" json:"weekday"`

	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

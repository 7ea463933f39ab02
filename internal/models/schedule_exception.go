package models

import "time"

// ScheduleException sobrepõe a regra semanal numa data. Sem horários, o dia fica bloqueado.
type ScheduleException struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	ProfessionalID uint `gorm:"index:idx_schedule_exceptions_professional_date;not null" json:"professional_id"`

	// YYYY-MM-DD no fuso do profissional
	Date string `gorm:"size:10;index:idx_schedule_exceptions_professional_date;not null" json:"date"`

	StartTime *string `gorm:"size:5" json:"start_time"`
	EndTime   *string `gorm:"size:5" json:"end_time"`
	Reason    string  `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *ScheduleException) BlocksWholeDay() bool {
	return e.StartTime == nil && e.EndTime == nil
}

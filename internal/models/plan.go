package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Plan struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:60;not null" json:"name"`
	Description string          `gorm:"size:255" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"price"`

	// nil = ilimitado
	MaxAppointments *int `json:"max_appointments"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

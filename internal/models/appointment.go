package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ProfessionalID uint          `gorm:"index:idx_appointments_professional_start;not null" json:"professional_id"`
	Professional   *Professional `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"professional,omitempty"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	// O fim não é gravado: sempre StartTime + Service.DurationMin.
	StartTime time.Time `gorm:"index:idx_appointments_professional_start;not null" json:"start_time"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	PaymentStatus string          `gorm:"size:30;default:'pending'" json:"payment_status"`
	PaymentOption string          `gorm:"size:20" json:"payment_option"`
	PaymentMethod string          `gorm:"size:30" json:"payment_method"`
	PaymentAmount decimal.Decimal `gorm:"type:numeric(10,2);default:0" json:"payment_amount"`

	PixTxID           string `gorm:"size:35" json:"pix_txid,omitempty"`
	PixQRCodeURL      string `gorm:"type:text" json:"pix_qrcode_url,omitempty"`
	PixCopyPaste      string `gorm:"type:text" json:"pix_copy_paste,omitempty"`
	PaymentExternalID string `gorm:"size:64;index" json:"payment_external_id,omitempty"`

	Notes      string     `gorm:"size:255" json:"notes"`
	CanceledAt *time.Time `json:"canceled_at"`
	PaidAt     *time.Time `json:"paid_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EndTime depende do serviço carregado (Preload("Service")).
func (a *Appointment) EndTime() time.Time {
	return a.StartTime.Add(a.Service.Duration())
}

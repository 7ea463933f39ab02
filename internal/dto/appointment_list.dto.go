package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/pro-scheduler/internal/models"
)

type AppointmentListDTO struct {
	ID            uint            `json:"id"`
	StartTime     time.Time       `json:"start_time"`
	EndTime       time.Time       `json:"end_time"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"payment_status"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	PaymentAmount decimal.Decimal `json:"payment_amount"`
	ClientID      uint            `json:"client_id"`
	ClientName    string          `json:"client_name"`
	ClientPhone   string          `json:"client_phone,omitempty"`
	ServiceID     uint            `json:"service_id"`
	ServiceName   string          `json:"service_name"`
	Notes         string          `json:"notes,omitempty"`
}

// AppointmentList converte para o fuso do profissional; o fim vem da duração do serviço.
func AppointmentList(aps []models.Appointment, loc *time.Location) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(aps))
	for i := range aps {
		ap := &aps[i]
		out = append(out, AppointmentListDTO{
			ID:            ap.ID,
			StartTime:     ap.StartTime.In(loc),
			EndTime:       ap.EndTime().In(loc),
			Status:        ap.Status,
			PaymentStatus: ap.PaymentStatus,
			PaymentMethod: ap.PaymentMethod,
			PaymentAmount: ap.PaymentAmount,
			ClientID:      ap.ClientID,
			ClientName:    ap.Client.Name,
			ClientPhone:   ap.Client.Phone,
			ServiceID:     ap.ServiceID,
			ServiceName:   ap.Service.Name,
			Notes:         ap.Notes,
		})
	}
	return out
}

package notify

import (
	"time"

	"github.com/BruksfildServices01/pro-scheduler/internal/models"
)

// Event é o envelope publicado na fila. Carrega o suficiente para montar a
// mensagem sem reconsultar o agendamento.
type Event struct {
	AppointmentID  uint      `json:"appointment_id"`
	ProfessionalID uint      `json:"professional_id"`
	Status         string    `json:"status"`
	PaymentStatus  string    `json:"payment_status"`
	PaymentMethod  string    `json:"payment_method,omitempty"`
	ClientName     string    `json:"client_name"`
	ClientPhone    string    `json:"client_phone,omitempty"`
	ServiceName    string    `json:"service_name"`
	StartTime      time.Time `json:"start_time"`
	OccurredAt     time.Time `json:"occurred_at"`
}

func EventFrom(ap models.Appointment, now time.Time) Event {
	return Event{
		AppointmentID:  ap.ID,
		ProfessionalID: ap.ProfessionalID,
		Status:         ap.Status,
		PaymentStatus:  ap.PaymentStatus,
		PaymentMethod:  ap.PaymentMethod,
		ClientName:     ap.Client.Name,
		ClientPhone:    ap.Client.Phone,
		ServiceName:    ap.Service.Name,
		StartTime:      ap.StartTime,
		OccurredAt:     now,
	}
}

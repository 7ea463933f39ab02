package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/pro-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/pro-scheduler/internal/models"
)

// ListFilter restringe a listagem de agendamentos. Campos zerados não filtram.
type ListFilter struct {
	From          *time.Time
	To            *time.Time
	ClientID      uint
	ServiceID     uint
	Status        string
	PaymentStatus string
}

type Repository interface {
	calendar.Store

	// WithinTx executa fn numa transação; o repo recebido opera dentro dela.
	WithinTx(
		ctx context.Context,
		fn func(ctx context.Context, tx Repository) error,
	) error

	// LockProfessional serializa escritas de agenda do profissional até o fim da transação.
	LockProfessional(
		ctx context.Context,
		professionalID uint,
	) error

	// -------- Professional --------
	GetProfessional(
		ctx context.Context,
		id uint,
	) (*models.Professional, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		professionalID uint,
		serviceID uint,
	) (*models.Service, error)

	ListActiveServices(
		ctx context.Context,
		professionalID uint,
	) ([]models.Service, error)

	// -------- Client --------
	UpsertClientByEmail(
		ctx context.Context,
		professionalID uint,
		name string,
		email string,
		phone string,
	) (*models.Client, error)

	GetClient(
		ctx context.Context,
		professionalID uint,
		clientID uint,
	) (*models.Client, error)

	// -------- Pix --------
	GetPixConfig(
		ctx context.Context,
		professionalID uint,
	) (*models.PixConfig, error)

	// -------- Appointment (create / conflict) --------
	CountAppointments(
		ctx context.Context,
		professionalID uint,
	) (int64, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// ListBlockingAppointments traz os agendamentos que ocupam horário e podem
	// sobrepor [start, end), com o serviço carregado.
	ListBlockingAppointments(
		ctx context.Context,
		professionalID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		professionalID uint,
		appointmentID uint,
	) (*models.Appointment, error)

	GetAppointmentByID(
		ctx context.Context,
		appointmentID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		professionalID uint,
		appointmentID uint,
	) error

	// CancelUnpaidBefore cancela pendentes sem pagamento criados antes do corte
	// e devolve os que mudaram. Chamadas repetidas não alteram nada de novo.
	CancelUnpaidBefore(
		ctx context.Context,
		cutoff time.Time,
		now time.Time,
	) ([]models.Appointment, error)

	// -------- Listing --------
	ListAppointments(
		ctx context.Context,
		professionalID uint,
		filter ListFilter,
	) ([]models.Appointment, error)
}

package appointment

import (
	"context"

	"github.com/BruksfildServices01/pro-scheduler/internal/domain/identity"
	domain "github.com/BruksfildServices01/pro-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/pro-scheduler/internal/dto"
	"github.com/BruksfildServices01/pro-scheduler/internal/models"
	"github.com/BruksfildServices01/pro-scheduler/internal/timezone"
)

type ListAppointmentsInput struct {
	ClientID  uint
	ServiceID uint
	Status    string
}

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	who identity.Identity,
	in ListAppointmentsInput,
) ([]dto.AppointmentListDTO, error) {

	if in.Status != "" {
		if _, err := domain.ParseStatus(in.Status); err != nil {
			return nil, err
		}
	}

	_, loc, err := loadProfessional(ctx, uc.repo, who.ProfessionalID)
	if err != nil {
		return nil, err
	}

	appointments, err := uc.repo.ListAppointments(ctx, who.ProfessionalID, domain.ListFilter{
		ClientID:  in.ClientID,
		ServiceID: in.ServiceID,
		Status:    in.Status,
	})
	if err != nil {
		return nil, err
	}

	return dto.AppointmentList(appointments, loc), nil
}

type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

func (uc *GetAppointment) Execute(
	ctx context.Context,
	who identity.Identity,
	appointmentID uint,
) (*models.Appointment, error) {
	return loadAppointment(ctx, uc.repo, who.ProfessionalID, appointmentID)
}

// PaymentStatusView é o que a vitrine pública consulta enquanto espera o Pix.
type PaymentStatusView struct {
	AppointmentID uint   `json:"appointment_id"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	PaymentMethod string `json:"payment_method,omitempty"`
	StartTime     string `json:"start_time"`
}

type GetPaymentStatus struct {
	repo domain.Repository
}

func NewGetPaymentStatus(repo domain.Repository) *GetPaymentStatus {
	return &GetPaymentStatus{repo: repo}
}

func (uc *GetPaymentStatus) Execute(
	ctx context.Context,
	professionalID uint,
	appointmentID uint,
) (*PaymentStatusView, error) {

	prof, _, err := loadProfessional(ctx, uc.repo, professionalID)
	if err != nil {
		return nil, err
	}

	ap, err := loadAppointment(ctx, uc.repo, professionalID, appointmentID)
	if err != nil {
		return nil, err
	}

	return &PaymentStatusView{
		AppointmentID: ap.ID,
		Status:        ap.Status,
		PaymentStatus: ap.PaymentStatus,
		PaymentMethod: ap.PaymentMethod,
		StartTime:     ap.StartTime.In(timezone.Location(prof.Timezone)).Format("2006-01-02 15:04"),
	}, nil
}

// ListPublicServices lista os serviços ativos exibidos na vitrine.
type ListPublicServices struct {
	repo domain.Repository
}

func NewListPublicServices(repo domain.Repository) *ListPublicServices {
	return &ListPublicServices{repo: repo}
}

func (uc *ListPublicServices) Execute(
	ctx context.Context,
	professionalID uint,
) ([]models.Service, error) {

	if _, _, err := loadProfessional(ctx, uc.repo, professionalID); err != nil {
		return nil, err
	}

	services, err := uc.repo.ListActiveServices(ctx, professionalID)
	if err != nil {
		return nil, err
	}
	if services == nil {
		services = []models.Service{}
	}
	return services, nil
}

package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/pro-scheduler/internal/audit"
	"github.com/BruksfildServices01/pro-scheduler/internal/domain/identity"
	domain "github.com/BruksfildServices01/pro-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/pro-scheduler/internal/models"
)

// MarkAsPaid registra pagamento recebido fora do gateway (dinheiro, cartão, Pix presencial).
type MarkAsPaid struct {
	repo     domain.Repository
	notifier domain.Notifier
	audit    *audit.Dispatcher
	now      func() time.Time
}

func NewMarkAsPaid(
	repo domain.Repository,
	notifier domain.Notifier,
	audit *audit.Dispatcher,
) *MarkAsPaid {
	return &MarkAsPaid{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
		now:      time.Now,
	}
}

func (uc *MarkAsPaid) Execute(
	ctx context.Context,
	who identity.Identity,
	appointmentID uint,
	method string,
) (*models.Appointment, error) {

	pm, err := domain.ParsePaymentMethod(method)
	if err != nil {
		return nil, err
	}

	_, loc, err := loadProfessional(ctx, uc.repo, who.ProfessionalID)
	if err != nil {
		return nil, err
	}

	ap, err := loadAppointment(ctx, uc.repo, who.ProfessionalID, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := domain.MarkPaid(ap, pm, uc.now().In(loc)); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ProfessionalID: who.ProfessionalID,
		ActorID:        who.ActorID(),
		Action:         audit.ActionAppointmentPaid,
		Entity:         "appointment",
		EntityID:       &ap.ID,
		Metadata:       map[string]any{"method": string(pm)},
	})

	notify(ctx, uc.notifier, ap)

	return ap, nil
}

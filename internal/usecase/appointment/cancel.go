package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/pro-scheduler/internal/audit"
	"github.com/BruksfildServices01/pro-scheduler/internal/domain/identity"
	domain "github.com/BruksfildServices01/pro-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/pro-scheduler/internal/models"
)

type CancelAppointment struct {
	repo     domain.Repository
	notifier domain.Notifier
	audit    *audit.Dispatcher
	now      func() time.Time
}

func NewCancelAppointment(
	repo domain.Repository,
	notifier domain.Notifier,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
		now:      time.Now,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	who identity.Identity,
	appointmentID uint,
) (*models.Appointment, error) {

	_, loc, err := loadProfessional(ctx, uc.repo, who.ProfessionalID)
	if err != nil {
		return nil, err
	}

	ap, err := loadAppointment(ctx, uc.repo, who.ProfessionalID, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := domain.Cancel(ap, uc.now().In(loc)); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ProfessionalID: who.ProfessionalID,
		ActorID:        who.ActorID(),
		Action:         audit.ActionAppointmentCanceled,
		Entity:         "appointment",
		EntityID:       &ap.ID,
	})

	notify(ctx, uc.notifier, ap)

	return ap, nil
}

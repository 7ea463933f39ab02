package appointment

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/pro-scheduler/internal/audit"
	"github.com/BruksfildServices01/pro-scheduler/internal/domain/identity"
	domain "github.com/BruksfildServices01/pro-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/pro-scheduler/internal/httperr"
)

// DeleteAppointment é a única remoção física de agendamento.
type DeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteAppointment(repo domain.Repository, audit *audit.Dispatcher) *DeleteAppointment {
	return &DeleteAppointment{repo: repo, audit: audit}
}

func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	who identity.Identity,
	appointmentID uint,
) error {

	err := uc.repo.DeleteAppointment(ctx, who.ProfessionalID, appointmentID)
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.NotFoundErr("appointment_not_found")
	}
	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ProfessionalID: who.ProfessionalID,
		ActorID:        who.ActorID(),
		Action:         audit.ActionAppointmentDeleted,
		Entity:         "appointment",
		EntityID:       uintPtr(appointmentID),
	})
	return nil
}

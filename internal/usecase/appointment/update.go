package appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BruksfildServices01/pro-scheduler/internal/audit"
	"github.com/BruksfildServices01/pro-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/pro-scheduler/internal/domain/identity"
	domain "github.com/BruksfildServices01/pro-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/pro-scheduler/internal/httperr"
	"github.com/BruksfildServices01/pro-scheduler/internal/models"
)

// UpdateAppointmentInput só expõe os campos alteráveis; nil mantém o valor atual.
type UpdateAppointmentInput struct {
	AppointmentID uint
	ServiceID     *uint
	StartTime     *string
	Status        *string
	Notes         *string
}

type UpdateAppointment struct {
	repo     domain.Repository
	locker   domain.Locker
	notifier domain.Notifier
	audit    *audit.Dispatcher
	now      func() time.Time
}

func NewUpdateAppointment(
	repo domain.Repository,
	locker domain.Locker,
	notifier domain.Notifier,
	audit *audit.Dispatcher,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:     repo,
		locker:   locker,
		notifier: notifier,
		audit:    audit,
		now:      time.Now,
	}
}

// Execute remarca/atualiza. Mudança de horário ou serviço num agendamento ativo
// repete a validação de janela e conflito da reserva, ignorando o próprio registro.
func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	who identity.Identity,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	_, loc, err := loadProfessional(ctx, uc.repo, who.ProfessionalID)
	if err != nil {
		return nil, err
	}

	current, err := loadAppointment(ctx, uc.repo, who.ProfessionalID, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	newStart := current.StartTime
	if in.StartTime != nil {
		if newStart, err = parseStart(*in.StartTime, loc); err != nil {
			return nil, err
		}
	}

	var newStatus *domain.Status
	if in.Status != nil {
		st, err := domain.ParseStatus(strings.TrimSpace(*in.Status))
		if err != nil {
			return nil, err
		}
		newStatus = &st
	}

	if uc.locker != nil {
		unlock, err := uc.locker.Lock(ctx, domain.LockKey(who.ProfessionalID, newStart.In(loc).Format(calendar.DateLayout)))
		if errors.Is(err, domain.ErrLockTimeout) {
			return nil, httperr.SlotConflictErr("slot_busy")
		}
		if err != nil {
			return nil, fmt.Errorf("booking lock: %w", err)
		}
		defer unlock()
	}

	var (
		updated       *models.Appointment
		timeChanged   bool
		statusChanged bool
	)

	err = uc.repo.WithinTx(ctx, func(ctx context.Context, tx domain.Repository) error {
		if err := tx.LockProfessional(ctx, who.ProfessionalID); err != nil {
			return err
		}

		ap, err := loadAppointment(ctx, tx, who.ProfessionalID, in.AppointmentID)
		if err != nil {
			return err
		}

		prevStatus := domain.Status(ap.Status)
		serviceChanged := false

		if in.ServiceID != nil && *in.ServiceID != ap.ServiceID {
			svc, err := loadActiveService(ctx, tx, who.ProfessionalID, *in.ServiceID)
			if err != nil {
				return err
			}
			ap.ServiceID = svc.ID
			ap.Service = *svc
			serviceChanged = true
		}

		if !newStart.Equal(ap.StartTime) {
			ap.StartTime = newStart
			timeChanged = true
		}

		switch {
		case newStatus != nil:
			ap.Status = string(*newStatus)
		case timeChanged:
			ap.Status = string(domain.StatusRescheduled)
		}

		if domain.Status(ap.Status) == domain.StatusCanceled && prevStatus != domain.StatusCanceled {
			now := uc.now().In(loc)
			ap.CanceledAt = &now
		}
		if domain.Status(ap.Status) != domain.StatusCanceled {
			ap.CanceledAt = nil
		}

		if in.Notes != nil {
			ap.Notes = strings.TrimSpace(*in.Notes)
		}

		reactivated := !prevStatus.Blocks() && domain.Status(ap.Status).Blocks()
		if domain.Status(ap.Status).Blocks() && (timeChanged || serviceChanged || reactivated) {
			end := ap.StartTime.Add(ap.Service.Duration())
			if err := checkWindow(ctx, tx, who.ProfessionalID, ap.StartTime, end, loc); err != nil {
				return err
			}
			if err := checkConflict(ctx, tx, who.ProfessionalID, ap.StartTime, end, ap.ID); err != nil {
				return err
			}
		}

		if err := tx.UpdateAppointment(ctx, ap); err != nil {
			return err
		}

		statusChanged = domain.Status(ap.Status) != prevStatus
		updated = ap
		return nil
	})
	if err != nil {
		return nil, err
	}

	action := audit.ActionAppointmentUpdated
	switch {
	case domain.Status(updated.Status) == domain.StatusCanceled && statusChanged:
		action = audit.ActionAppointmentCanceled
	case timeChanged:
		action = audit.ActionAppointmentRescheduled
	}

	uc.audit.Dispatch(audit.Event{
		ProfessionalID: who.ProfessionalID,
		ActorID:        who.ActorID(),
		Action:         action,
		Entity:         "appointment",
		EntityID:       &updated.ID,
		Metadata: map[string]any{
			"status":     updated.Status,
			"start_time": updated.StartTime,
		},
	})

	if statusChanged || timeChanged {
		notify(ctx, uc.notifier, updated)
	}

	return updated, nil
}

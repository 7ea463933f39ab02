package appointment

import (
	"context"
	"errors"
	"strings"
	"time"

	domain "github.com/BruksfildServices01/pro-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/pro-scheduler/internal/httperr"
	"github.com/BruksfildServices01/pro-scheduler/internal/models"
	"github.com/BruksfildServices01/pro-scheduler/internal/timezone"
)

var startLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// parseStart interpreta a data/hora no fuso do profissional.
func parseStart(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range startLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, httperr.ValidationErr("invalid_date_or_time")
}

func loadProfessional(
	ctx context.Context,
	repo domain.Repository,
	id uint,
) (*models.Professional, *time.Location, error) {

	prof, err := repo.GetProfessional(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil, httperr.NotFoundErr("professional_not_found")
	}
	if err != nil {
		return nil, nil, err
	}
	return prof, timezone.Location(prof.Timezone), nil
}

// loadActiveService só aceita serviço do próprio profissional e ativo.
func loadActiveService(
	ctx context.Context,
	repo domain.Repository,
	professionalID uint,
	serviceID uint,
) (*models.Service, error) {

	svc, err := repo.GetService(ctx, professionalID, serviceID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.NotFoundErr("service_not_found")
	}
	if err != nil {
		return nil, err
	}
	if !svc.Active || svc.DurationMin < 1 {
		return nil, httperr.NotFoundErr("service_not_found")
	}
	return svc, nil
}

func loadAppointment(
	ctx context.Context,
	repo domain.Repository,
	professionalID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := repo.GetAppointment(ctx, professionalID, appointmentID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.NotFoundErr("appointment_not_found")
	}
	return ap, err
}

// earliestStart é o primeiro horário reservável: agora + antecedência mínima.
func earliestStart(now time.Time, prof *models.Professional) time.Time {
	minAdvance := prof.MinAdvanceMinutes
	if minAdvance < 0 {
		minAdvance = 0
	}
	return now.Add(time.Duration(minAdvance) * time.Minute)
}

func notify(ctx context.Context, n domain.Notifier, ap *models.Appointment) {
	if n == nil || ap == nil {
		return
	}
	n.AppointmentChanged(ctx, *ap)
}

func uintPtr(v uint) *uint { return &v }

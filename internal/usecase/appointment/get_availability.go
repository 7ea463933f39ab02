package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/pro-scheduler/internal/domain/calendar"
	domain "github.com/BruksfildServices01/pro-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/pro-scheduler/internal/httperr"
)

type GetAvailability struct {
	repo domain.Repository
	now  func() time.Time
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo, now: time.Now}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) (*domain.DayAvailability, error) {

	prof, loc, err := loadProfessional(ctx, uc.repo, in.ProfessionalID)
	if err != nil {
		return nil, err
	}

	svc, err := loadActiveService(ctx, uc.repo, prof.ID, in.ServiceID)
	if err != nil {
		return nil, err
	}

	day, err := calendar.ParseDate(in.Date, loc)
	if err != nil {
		return nil, httperr.ValidationErr("invalid_date_or_time")
	}

	out := &domain.DayAvailability{
		Date:             day.Format(calendar.DateLayout),
		Slots:            []string{},
		ProfessionalName: prof.DisplayName(),
	}

	ds, err := calendar.ResolveWindow(ctx, uc.repo, prof.ID, day)
	if err != nil {
		return nil, err
	}
	if !ds.Open {
		return out, nil
	}

	appointments, err := uc.repo.ListBlockingAppointments(
		ctx,
		prof.ID,
		ds.Window.Start,
		ds.Window.End,
	)
	if err != nil {
		return nil, err
	}

	slots := domain.GenerateSlots(
		ds.Window,
		svc.Duration(),
		domain.BusyIntervals(appointments, 0),
		earliestStart(uc.now().In(loc), prof),
	)

	for _, s := range slots {
		out.Slots = append(out.Slots, s.Format(calendar.ClockLayout))
	}

	return out, nil
}

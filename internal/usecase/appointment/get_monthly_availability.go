package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/pro-scheduler/internal/domain/calendar"
	domain "github.com/BruksfildServices01/pro-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/pro-scheduler/internal/httperr"
	"github.com/BruksfildServices01/pro-scheduler/internal/models"
)

type GetMonthlyAvailability struct {
	repo domain.Repository
	now  func() time.Time
}

func NewGetMonthlyAvailability(repo domain.Repository) *GetMonthlyAvailability {
	return &GetMonthlyAvailability{repo: repo, now: time.Now}
}

// Execute lista os dias do mês com pelo menos um horário livre. Regras, exceções
// e agendamentos são carregados uma vez; cada dia para no primeiro horário livre.
func (uc *GetMonthlyAvailability) Execute(
	ctx context.Context,
	in domain.MonthAvailabilityInput,
) (*domain.MonthAvailability, error) {

	if in.Year < 2000 || in.Year > 2100 || in.Month < 1 || in.Month > 12 {
		return nil, httperr.ValidationErr("invalid_date_or_time")
	}

	prof, loc, err := loadProfessional(ctx, uc.repo, in.ProfessionalID)
	if err != nil {
		return nil, err
	}

	svc, err := loadActiveService(ctx, uc.repo, prof.ID, in.ServiceID)
	if err != nil {
		return nil, err
	}

	monthStart := time.Date(in.Year, time.Month(in.Month), 1, 0, 0, 0, 0, loc)
	monthEnd := monthStart.AddDate(0, 1, 0)

	rules, err := uc.repo.ListWeeklyRules(ctx, prof.ID)
	if err != nil {
		return nil, err
	}
	byWeekday := make(map[int]*models.WeeklyRule, len(rules))
	for i := range rules {
		byWeekday[rules[i].Weekday] = &rules[i]
	}

	exceptions, err := uc.repo.ListExceptions(
		ctx,
		prof.ID,
		monthStart.Format(calendar.DateLayout),
		monthEnd.AddDate(0, 0, -1).Format(calendar.DateLayout),
	)
	if err != nil {
		return nil, err
	}
	// lista vem da mais recente para a mais antiga; a primeira de cada data vale
	byDate := make(map[string]*models.ScheduleException, len(exceptions))
	for i := range exceptions {
		if _, seen := byDate[exceptions[i].Date]; !seen {
			byDate[exceptions[i].Date] = &exceptions[i]
		}
	}

	appointments, err := uc.repo.ListBlockingAppointments(ctx, prof.ID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	busy := domain.BusyIntervals(appointments, 0)

	notBefore := earliestStart(uc.now().In(loc), prof)

	out := &domain.MonthAvailability{
		Year:  in.Year,
		Month: in.Month,
		Dates: []string{},
	}

	for day := monthStart; day.Before(monthEnd); day = day.AddDate(0, 0, 1) {
		key := day.Format(calendar.DateLayout)

		ds := calendar.ResolveFromRules(day, byWeekday[int(day.Weekday())], byDate[key])
		if !ds.Open {
			continue
		}

		if _, ok := domain.FirstFreeSlot(ds.Window, svc.Duration(), busy, notBefore); ok {
			out.Dates = append(out.Dates, key)
		}
	}

	return out, nil
}

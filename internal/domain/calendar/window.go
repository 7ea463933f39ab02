package calendar

import (
	"context"
	"time"

	"github.com/BruksfildServices01/pro-scheduler/internal/models"
)

// Window é o expediente resolvido de um dia, intervalo [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Contains(start, end time.Time) bool {
	return !start.Before(w.Start) && !end.After(w.End)
}

type Source int

const (
	SourceNone Source = iota
	SourceWeeklyRule
	SourceException
)

// DaySchedule diz se o dia atende e em qual janela.
type DaySchedule struct {
	Date    time.Time
	Open    bool
	Blocked bool
	Source  Source
	Window  Window
}

// ResolveFromRules aplica a precedência: exceção do dia primeiro (bloqueio total
// ou janela substituta), regra semanal depois. Sem nenhuma das duas, dia fechado.
func ResolveFromRules(
	day time.Time,
	rule *models.WeeklyRule,
	ex *models.ScheduleException,
) DaySchedule {
	out := DaySchedule{Date: day}

	if ex != nil {
		out.Source = SourceException
		if ex.BlocksWholeDay() || ex.StartTime == nil || ex.EndTime == nil {
			out.Blocked = true
			return out
		}
		return withWindow(out, day, *ex.StartTime, *ex.EndTime)
	}

	if rule == nil {
		return out
	}

	out.Source = SourceWeeklyRule
	return withWindow(out, day, rule.StartTime, rule.EndTime)
}

func withWindow(out DaySchedule, day time.Time, from, to string) DaySchedule {
	start, err1 := ParseClock(from)
	end, err2 := ParseClock(to)
	if err1 != nil || err2 != nil || start >= end {
		return out
	}

	out.Open = true
	out.Window = Window{Start: start.On(day), End: end.On(day)}
	return out
}

// ResolveWindow busca exceção e regra semanal do dia e resolve a janela.
// É o mesmo caminho usado pela geração de horários e pela reserva.
func ResolveWindow(
	ctx context.Context,
	store Store,
	professionalID uint,
	day time.Time,
) (DaySchedule, error) {

	ex, err := store.GetException(ctx, professionalID, day.Format(DateLayout))
	if err != nil {
		return DaySchedule{}, err
	}
	if ex != nil {
		return ResolveFromRules(day, nil, ex), nil
	}

	rule, err := store.GetWeeklyRule(ctx, professionalID, int(day.Weekday()))
	if err != nil {
		return DaySchedule{}, err
	}

	return ResolveFromRules(day, rule, nil), nil
}

package calendar

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/pro-scheduler/internal/audit"
	"github.com/BruksfildServices01/pro-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/pro-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/pro-scheduler/internal/httperr"
	"github.com/BruksfildServices01/pro-scheduler/internal/models"
)

// WeeklyRuleInput usa o nome do dia em inglês ("monday".."sunday").
type WeeklyRuleInput struct {
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type WeeklyRuleView struct {
	Day       string `json:"day"`
	Weekday   int    `json:"weekday"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type ReplaceWeeklyRules struct {
	store calendar.Store
	audit *audit.Dispatcher
}

func NewReplaceWeeklyRules(store calendar.Store, audit *audit.Dispatcher) *ReplaceWeeklyRules {
	return &ReplaceWeeklyRules{store: store, audit: audit}
}

// Execute sobrescreve a semana inteira. Dias sem início ou fim ficam fechados.
func (uc *ReplaceWeeklyRules) Execute(
	ctx context.Context,
	who identity.Identity,
	in []WeeklyRuleInput,
) ([]WeeklyRuleView, error) {

	rules := make([]models.WeeklyRule, 0, len(in))

	for _, r := range in {
		if strings.TrimSpace(r.StartTime) == "" || strings.TrimSpace(r.EndTime) == "" {
			continue
		}

		wd, ok := calendar.WeekdayByName(r.Day)
		if !ok {
			return nil, httperr.ValidationErr("invalid_weekday")
		}

		start, err := calendar.ParseClock(r.StartTime)
		if err != nil {
			return nil, httperr.ValidationErr("invalid_date_or_time")
		}
		end, err := calendar.ParseClock(r.EndTime)
		if err != nil {
			return nil, httperr.ValidationErr("invalid_date_or_time")
		}

		rules = append(rules, models.WeeklyRule{
			ProfessionalID: who.ProfessionalID,
			Weekday:        int(wd),
			StartTime:      start.String(),
			EndTime:        end.String(),
		})
	}

	if err := calendar.ValidateWeeklyRules(rules); err != nil {
		return nil, err
	}

	if err := uc.store.ReplaceWeeklyRules(ctx, who.ProfessionalID, rules); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ProfessionalID: who.ProfessionalID,
		ActorID:        who.ActorID(),
		Action:         audit.ActionWeeklyRulesReplaced,
		Entity:         "weekly_rule",
		Metadata:       map[string]any{"days": len(rules)},
	})

	return toViews(rules), nil
}

type ListWeeklyRules struct {
	store calendar.Store
}

func NewListWeeklyRules(store calendar.Store) *ListWeeklyRules {
	return &ListWeeklyRules{store: store}
}

func (uc *ListWeeklyRules) Execute(
	ctx context.Context,
	who identity.Identity,
) ([]WeeklyRuleView, error) {

	rules, err := uc.store.ListWeeklyRules(ctx, who.ProfessionalID)
	if err != nil {
		return nil, err
	}
	return toViews(rules), nil
}

func toViews(rules []models.WeeklyRule) []WeeklyRuleView {
	out := make([]WeeklyRuleView, 0, len(rules))
	for _, r := range rules {
		out = append(out, WeeklyRuleView{
			Day:       calendar.WeekdayName(time.Weekday(r.Weekday)),
			Weekday:   r.Weekday,
			StartTime: r.StartTime,
			EndTime:   r.EndTime,
		})
	}
	return out
}

package calendar

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/pro-scheduler/internal/httperr"
	"github.com/BruksfildServices01/pro-scheduler/internal/models"
)

// ValidateRange exige início anterior ao fim.
func ValidateRange(from, to string) error {
	start, err := ParseClock(from)
	if err != nil {
		return httperr.ValidationErr("invalid_date_or_time")
	}
	end, err := ParseClock(to)
	if err != nil {
		return httperr.ValidationErr("invalid_date_or_time")
	}
	if start >= end {
		return httperr.ValidationErr("invalid_time_range")
	}
	return nil
}

// ValidateWeeklyRules confere cada regra e impede dia da semana repetido.
func ValidateWeeklyRules(rules []models.WeeklyRule) error {
	seen := make(map[int]bool, len(rules))

	for _, r := range rules {
		if r.Weekday < 0 || r.Weekday > 6 {
			return httperr.ValidationErr("invalid_weekday")
		}
		if seen[r.Weekday] {
			return httperr.ValidationErr("duplicate_weekday")
		}
		seen[r.Weekday] = true

		if err := ValidateRange(r.StartTime, r.EndTime); err != nil {
			return err
		}
	}
	return nil
}

// ValidateException: horários ambos ou nenhum, e início antes do fim.
func ValidateException(ex *models.ScheduleException) error {
	if _, err := time.Parse(DateLayout, strings.TrimSpace(ex.Date)); err != nil {
		return httperr.ValidationErr("invalid_date_or_time")
	}

	hasStart := ex.StartTime != nil && strings.TrimSpace(*ex.StartTime) != ""
	hasEnd := ex.EndTime != nil && strings.TrimSpace(*ex.EndTime) != ""

	if hasStart != hasEnd {
		return httperr.ValidationErr("incomplete_time_range")
	}
	if !hasStart {
		ex.StartTime, ex.EndTime = nil, nil
		return nil
	}

	return ValidateRange(*ex.StartTime, *ex.EndTime)
}

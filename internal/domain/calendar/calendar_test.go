package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/pro-scheduler/internal/httperr"
	"github.com/BruksfildServices01/pro-scheduler/internal/models"
)

func strp(s string) *string { return &s }

func monday(t *testing.T) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	return time.Date(2025, 3, 10, 0, 0, 0, 0, loc)
}

func TestParseClock(t *testing.T) {
	c, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, Clock(570), c)
	assert.Equal(t, "09:30", c.String())

	c, err = ParseClock("18:00:00")
	require.NoError(t, err)
	assert.Equal(t, "18:00", c.String())

	_, err = ParseClock("25:00")
	assert.Error(t, err)
}

func TestResolveFromRules_WeeklyRule(t *testing.T) {
	day := monday(t)
	rule := &models.WeeklyRule{Weekday: 1, StartTime: "09:00", EndTime: "12:00"}

	ds := ResolveFromRules(day, rule, nil)

	require.True(t, ds.Open)
	assert.Equal(t, SourceWeeklyRule, ds.Source)
	assert.Equal(t, 9, ds.Window.Start.Hour())
	assert.Equal(t, 12, ds.Window.End.Hour())
}

func TestResolveFromRules_ExceptionBlocksDay(t *testing.T) {
	day := monday(t)
	rule := &models.WeeklyRule{Weekday: 1, StartTime: "09:00", EndTime: "12:00"}
	ex := &models.ScheduleException{Date: "2025-03-10"}

	ds := ResolveFromRules(day, rule, ex)

	assert.False(t, ds.Open)
	assert.True(t, ds.Blocked)
}

func TestResolveFromRules_ExceptionReplacesWindow(t *testing.T) {
	day := monday(t)
	rule := &models.WeeklyRule{Weekday: 1, StartTime: "09:00", EndTime: "18:00"}
	ex := &models.ScheduleException{Date: "2025-03-10", StartTime: strp("14:00"), EndTime: strp("16:30")}

	ds := ResolveFromRules(day, rule, ex)

	require.True(t, ds.Open)
	assert.Equal(t, SourceException, ds.Source)
	assert.Equal(t, "14:00", ds.Window.Start.Format(ClockLayout))
	assert.Equal(t, "16:30", ds.Window.End.Format(ClockLayout))
}

func TestResolveFromRules_NoRule(t *testing.T) {
	ds := ResolveFromRules(monday(t), nil, nil)
	assert.False(t, ds.Open)
	assert.False(t, ds.Blocked)
}

func TestValidateWeeklyRules(t *testing.T) {
	ok := []models.WeeklyRule{
		{Weekday: 1, StartTime: "09:00", EndTime: "18:00"},
		{Weekday: 2, StartTime: "09:00", EndTime: "12:00"},
	}
	assert.NoError(t, ValidateWeeklyRules(ok))

	dup := append(ok, models.WeeklyRule{Weekday: 1, StartTime: "13:00", EndTime: "14:00"})
	assert.True(t, httperr.IsBusiness(ValidateWeeklyRules(dup), "duplicate_weekday"))

	inverted := []models.WeeklyRule{{Weekday: 3, StartTime: "18:00", EndTime: "09:00"}}
	assert.True(t, httperr.IsBusiness(ValidateWeeklyRules(inverted), "invalid_time_range"))
}

func TestValidateException(t *testing.T) {
	half := &models.ScheduleException{Date: "2025-03-10", StartTime: strp("10:00")}
	assert.True(t, httperr.IsBusiness(ValidateException(half), "incomplete_time_range"))

	inverted := &models.ScheduleException{Date: "2025-03-10", StartTime: strp("11:00"), EndTime: strp("10:00")}
	assert.True(t, httperr.IsBusiness(ValidateException(inverted), "invalid_time_range"))

	blank := &models.ScheduleException{Date: "2025-03-10", StartTime: strp(""), EndTime: strp("")}
	require.NoError(t, ValidateException(blank))
	assert.True(t, blank.BlocksWholeDay())

	badDate := &models.ScheduleException{Date: "10/03/2025"}
	assert.Error(t, ValidateException(badDate))
}

func TestWeekdayByName(t *testing.T) {
	wd, ok := WeekdayByName("Monday")
	require.True(t, ok)
	assert.Equal(t, time.Monday, wd)

	_, ok = WeekdayByName("segunda")
	assert.False(t, ok)
}

package calendar

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// Clock é um horário do dia em minutos desde meia-noite.
type Clock int

// ParseClock aceita "HH:MM" e "HH:MM:SS" (segundos descartados).
func ParseClock(s string) (Clock, error) {
	s = strings.TrimSpace(s)
	if len(s) == len("15:04:05") {
		s = s[:5]
	}

	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock %q: %w", s, err)
	}
	return Clock(t.Hour()*60 + t.Minute()), nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// On posiciona o horário na data informada, no fuso da data.
func (c Clock) On(day time.Time) time.Time {
	return time.Date(
		day.Year(), day.Month(), day.Day(),
		int(c)/60, int(c)%60, 0, 0,
		day.Location(),
	)
}

// DayStart normaliza para 00:00 no fuso informado.
func DayStart(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// WeekdayByName converte "monday".."sunday" para time.Weekday.
func WeekdayByName(name string) (time.Weekday, bool) {
	wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
	return wd, ok
}

func WeekdayName(wd time.Weekday) string {
	return strings.ToLower(wd.String())
}

package appointment

import (
	"time"

	"github.com/BruksfildServices01/pro-scheduler/internal/models"
)

// Overlaps usa intervalos semiabertos: [10:00,10:30) e [10:30,11:00) não conflitam.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// Interval é um período ocupado [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// BusyIntervals converte agendamentos que bloqueiam horário em intervalos,
// sempre recalculando o fim pela duração atual do serviço.
func BusyIntervals(aps []models.Appointment, excludeID uint) []Interval {
	out := make([]Interval, 0, len(aps))
	for i := range aps {
		ap := &aps[i]
		if ap.ID != 0 && ap.ID == excludeID {
			continue
		}
		if !Status(ap.Status).Blocks() {
			continue
		}
		out = append(out, Interval{Start: ap.StartTime, End: ap.EndTime()})
	}
	return out
}

// FindConflict devolve o primeiro agendamento que sobrepõe [start, end), ou nil.
func FindConflict(
	start time.Time,
	end time.Time,
	aps []models.Appointment,
	excludeID uint,
) *models.Appointment {
	for i := range aps {
		ap := &aps[i]
		if ap.ID != 0 && ap.ID == excludeID {
			continue
		}
		if !Status(ap.Status).Blocks() {
			continue
		}
		if Overlaps(start, end, ap.StartTime, ap.EndTime()) {
			return ap
		}
	}
	return nil
}

func anyOverlap(start, end time.Time, busy []Interval) bool {
	for _, b := range busy {
		if Overlaps(start, end, b.Start, b.End) {
			return true
		}
	}
	return false
}

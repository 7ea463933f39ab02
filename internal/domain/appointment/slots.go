package appointment

import (
	"time"

	"github.com/BruksfildServices01/pro-scheduler/internal/domain/calendar"
)

// GenerateSlots divide a janela em blocos consecutivos da duração do serviço,
// a partir do início. O bloco final incompleto é descartado. Blocos que
// começam antes de notBefore ou que sobrepõem algum período ocupado ficam de fora.
func GenerateSlots(
	window calendar.Window,
	duration time.Duration,
	busy []Interval,
	notBefore time.Time,
) []time.Time {
	if duration <= 0 {
		return nil
	}

	slots := []time.Time{}
	for cur := window.Start; !cur.Add(duration).After(window.End); cur = cur.Add(duration) {
		if cur.Before(notBefore) {
			continue
		}
		if anyOverlap(cur, cur.Add(duration), busy) {
			continue
		}
		slots = append(slots, cur)
	}

	return slots
}

// FirstFreeSlot para no primeiro bloco livre. Usado na visão mensal.
func FirstFreeSlot(
	window calendar.Window,
	duration time.Duration,
	busy []Interval,
	notBefore time.Time,
) (time.Time, bool) {
	if duration <= 0 {
		return time.Time{}, false
	}

	for cur := window.Start; !cur.Add(duration).After(window.End); cur = cur.Add(duration) {
		if cur.Before(notBefore) {
			continue
		}
		if !anyOverlap(cur, cur.Add(duration), busy) {
			return cur, true
		}
	}

	return time.Time{}, false
}

package appointment

import (
	"errors"

	"github.com/BruksfildServices01/pro-scheduler/internal/domain/calendar"
)

// ErrNotFound é o mesmo sentinela do calendar: um repositório atende os dois contratos.
var ErrNotFound = calendar.ErrNotFound

var errAlreadyPaid = errors.New("appointment already paid")

func IsAlreadyPaid(err error) bool {
	return errors.Is(err, errAlreadyPaid)
}

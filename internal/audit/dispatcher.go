package audit

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

const (
	ActionAppointmentCreated     = "appointment_created"
	ActionAppointmentConflict    = "appointment_conflict"
	ActionAppointmentCanceled    = "appointment_canceled"
	ActionAppointmentRescheduled = "appointment_rescheduled"
	ActionAppointmentUpdated     = "appointment_updated"
	ActionAppointmentDeleted     = "appointment_deleted"
	ActionAppointmentPaid        = "appointment_paid"
	ActionAppointmentExpired     = "appointment_expired"
	ActionWeeklyRulesReplaced    = "weekly_rules_replaced"
	ActionExceptionCreated       = "schedule_exception_created"
	ActionExceptionDeleted       = "schedule_exception_deleted"
)

type Event struct {
	ProfessionalID uint
	ActorID        *uint
	Action         string
	Entity         string
	EntityID       *uint
	Metadata       any
}

// Dispatcher grava auditoria em background. Fila cheia descarta o evento:
// auditoria nunca quebra a API.
type Dispatcher struct {
	sink  Sink
	log   *zap.Logger
	queue chan Event
	wg    sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(sink Sink, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}

	d := &Dispatcher{
		sink:  sink,
		log:   log,
		queue: make(chan Event, 100),
	}

	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for ev := range d.queue {
		if err := d.sink.Log(context.Background(), ev); err != nil {
			d.log.Warn("audit error",
				zap.String("action", ev.Action),
				zap.Uint("professional_id", ev.ProfessionalID),
				zap.Error(err),
			)
		}
	}
}

// Dispatch aceita receptor nil para use cases montados sem auditoria.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.Warn("audit closed, dropping event", zap.String("action", ev.Action))
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close drena a fila e espera o worker terminar.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	d.wg.Wait()
}

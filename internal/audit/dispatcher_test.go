package audit

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memorySink struct {
	mu     sync.Mutex
	events []Event
	fail   bool
}

func (s *memorySink) Log(_ context.Context, ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("db down")
	}
	s.events = append(s.events, ev)
	return nil
}

func TestDispatcher_DeliversInOrder(t *testing.T) {
	sink := &memorySink{}
	d := NewDispatcher(sink, nil)

	d.Dispatch(Event{ProfessionalID: 1, Action: ActionAppointmentCreated})
	d.Dispatch(Event{ProfessionalID: 1, Action: ActionAppointmentCanceled})
	d.Close()

	require.Len(t, sink.events, 2)
	assert.Equal(t, ActionAppointmentCreated, sink.events[0].Action)
	assert.Equal(t, ActionAppointmentCanceled, sink.events[1].Action)
}

func TestDispatcher_SinkErrorDoesNotStopWorker(t *testing.T) {
	sink := &memorySink{fail: true}
	d := NewDispatcher(sink, nil)

	d.Dispatch(Event{Action: ActionAppointmentPaid})
	d.Close()

	assert.Empty(t, sink.events)
}

func TestDispatcher_NilIsNoop(t *testing.T) {
	var d *Dispatcher
	assert.NotPanics(t, func() {
		d.Dispatch(Event{Action: ActionAppointmentCreated})
		d.Close()
	})
}

func TestDispatcher_DispatchAfterClose(t *testing.T) {
	sink := &memorySink{}
	d := NewDispatcher(sink, nil)
	d.Close()

	assert.NotPanics(t, func() {
		d.Dispatch(Event{Action: ActionAppointmentCreated})
		d.Close()
	})
	assert.Empty(t, sink.events)
}

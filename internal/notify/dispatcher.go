package notify

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/pro-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/pro-scheduler/internal/models"
)

// Publisher leva o evento adiante: fila AMQP ou entrega direta.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Dispatcher implementa o Notifier dos use cases. A publicação acontece numa
// goroutine própria; falhas só vão para o log.
type Dispatcher struct {
	publisher Publisher
	log       *zap.Logger
	queue     chan Event
	wg        sync.WaitGroup

	// closed protege o envio na fila depois do Close
	mu     sync.RWMutex
	closed bool

	now func() time.Time
}

func NewDispatcher(publisher Publisher, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}

	d := &Dispatcher{
		publisher: publisher,
		log:       log,
		queue:     make(chan Event, 256),
		now:       time.Now,
	}

	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := d.publisher.Publish(ctx, ev)
		cancel()

		if err != nil {
			d.log.Warn("notification publish failed",
				zap.Uint("appointment_id", ev.AppointmentID),
				zap.String("status", ev.Status),
				zap.Error(err),
			)
		}
	}
}

func (d *Dispatcher) AppointmentChanged(_ context.Context, ap models.Appointment) {
	ev := EventFrom(ap, d.now())

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.Warn("notifier closed, dropping event", zap.Uint("appointment_id", ap.ID))
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.log.Warn("notification queue full, dropping event", zap.Uint("appointment_id", ap.ID))
	}
}

// Close drena a fila pendente. Eventos que chegam depois são descartados.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	d.wg.Wait()
}

var _ domain.Notifier = (*Dispatcher)(nil)

// DirectPublisher entrega na hora, sem fila. Usado quando AMQP_URL não está definido.
type DirectPublisher struct {
	deliverer *Deliverer
}

func NewDirectPublisher(deliverer *Deliverer) *DirectPublisher {
	return &DirectPublisher{deliverer: deliverer}
}

func (p *DirectPublisher) Publish(ctx context.Context, ev Event) error {
	err := p.deliverer.Deliver(ctx, ev)
	if errors.Is(err, ErrNoChat) {
		return nil
	}
	return err
}

// LogPublisher só registra o evento. Sem Telegram nem fila configurados.
type LogPublisher struct {
	log *zap.Logger
}

func NewLogPublisher(log *zap.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(_ context.Context, ev Event) error {
	p.log.Info("appointment changed",
		zap.Uint("appointment_id", ev.AppointmentID),
		zap.Uint("professional_id", ev.ProfessionalID),
		zap.String("kind", string(KindOf(ev))),
	)
	return nil
}

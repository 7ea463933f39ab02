package notify

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/pro-scheduler/internal/models"
)

func sampleEvent() Event {
	return Event{
		AppointmentID:  7,
		ProfessionalID: 1,
		Status:         "pending",
		PaymentStatus:  "pending",
		ClientName:     "Maria",
		ClientPhone:    "5511999990000",
		ServiceName:    "Corte",
		StartTime:      time.Date(2030, 3, 11, 13, 0, 0, 0, time.UTC),
	}
}

func TestKindOf(t *testing.T) {
	ev := sampleEvent()
	assert.Equal(t, KindCreated, KindOf(ev))

	ev.Status = "rescheduled"
	assert.Equal(t, KindRescheduled, KindOf(ev))

	ev.Status = "confirmed"
	assert.Equal(t, KindConfirmed, KindOf(ev))

	ev.PaymentStatus = "paid"
	assert.Equal(t, KindPaid, KindOf(ev))

	ev.Status = "canceled"
	assert.Equal(t, KindCanceled, KindOf(ev))
}

func TestRender(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	text := Render(sampleEvent(), loc)
	assert.Equal(t,
		"📅 Novo agendamento\n\nCliente: Maria (5511999990000)\nServiço: Corte\nData: 11/03/2030 às 10:00",
		text,
	)

	ev := sampleEvent()
	ev.PaymentStatus = "paid"
	ev.PaymentMethod = "pix_online"
	ev.ClientPhone = ""
	text = Render(ev, loc)
	assert.True(t, strings.HasPrefix(text, "💰 Pagamento recebido"))
	assert.Contains(t, text, "Cliente: Maria\n")
	assert.Contains(t, text, "Forma de pagamento: Pix online")
}

func TestEventFrom(t *testing.T) {
	ap := models.Appointment{
		ID:             3,
		ProfessionalID: 1,
		Status:         "confirmed",
		PaymentStatus:  "paid",
		Client:         models.Client{Name: "Ana", Phone: "5511988887777"},
		Service:        models.Service{Name: "Barba"},
	}
	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	ev := EventFrom(ap, now)
	assert.Equal(t, uint(3), ev.AppointmentID)
	assert.Equal(t, "Ana", ev.ClientName)
	assert.Equal(t, "Barba", ev.ServiceName)
	assert.Equal(t, now, ev.OccurredAt)
}

// -------- deliverer / consumer --------

type stubProfessionals map[uint]*models.Professional

func (s stubProfessionals) GetProfessional(_ context.Context, id uint) (*models.Professional, error) {
	if p, ok := s[id]; ok {
		return p, nil
	}
	return nil, errors.New("not found")
}

type recordingSender struct {
	mu   sync.Mutex
	fail bool
	sent map[int64][]string
}

func (s *recordingSender) Send(_ context.Context, chatID int64, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("telegram down")
	}
	if s.sent == nil {
		s.sent = map[int64][]string{}
	}
	s.sent[chatID] = append(s.sent[chatID], text)
	return nil
}

func (s *recordingSender) total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, v := range s.sent {
		n += len(v)
	}
	return n
}

func chat(id int64) *int64 { return &id }

func TestDeliverer(t *testing.T) {
	sender := &recordingSender{}
	d := NewDeliverer(stubProfessionals{
		1: {ID: 1, Timezone: "America/Sao_Paulo", TelegramChatID: chat(42)},
		2: {ID: 2},
	}, sender, nil)

	require.NoError(t, d.Deliver(context.Background(), sampleEvent()))
	require.Len(t, sender.sent[42], 1)
	assert.Contains(t, sender.sent[42][0], "10:00")

	ev := sampleEvent()
	ev.ProfessionalID = 2
	assert.ErrorIs(t, d.Deliver(context.Background(), ev), ErrNoChat)

	ev.ProfessionalID = 3
	assert.Error(t, d.Deliver(context.Background(), ev))
}

type fakeAck struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (a *fakeAck) Ack(bool) error { a.acked = true; return nil }
func (a *fakeAck) Nack(_ bool, requeue bool) error {
	a.nacked, a.requeue = true, requeue
	return nil
}

func TestConsumerProcess(t *testing.T) {
	sender := &recordingSender{}
	profs := stubProfessionals{
		1: {ID: 1, TelegramChatID: chat(42)},
		2: {ID: 2},
	}
	c := NewConsumer(NewDeliverer(profs, sender, nil), nil)
	ctx := context.Background()

	body, err := json.Marshal(sampleEvent())
	require.NoError(t, err)

	ack := &fakeAck{}
	c.process(ctx, body, false, ack)
	assert.True(t, ack.acked)
	assert.Equal(t, 1, sender.total())

	ack = &fakeAck{}
	c.process(ctx, []byte("{"), false, ack)
	assert.True(t, ack.nacked)
	assert.False(t, ack.requeue)

	noChat := sampleEvent()
	noChat.ProfessionalID = 2
	body, _ = json.Marshal(noChat)
	ack = &fakeAck{}
	c.process(ctx, body, false, ack)
	assert.True(t, ack.acked)

	sender.fail = true
	body, _ = json.Marshal(sampleEvent())
	ack = &fakeAck{}
	c.process(ctx, body, false, ack)
	assert.True(t, ack.nacked)
	assert.True(t, ack.requeue)

	ack = &fakeAck{}
	c.process(ctx, body, true, ack)
	assert.True(t, ack.nacked)
	assert.False(t, ack.requeue)
}

type chanPublisher struct {
	ch chan Event
}

func (p chanPublisher) Publish(_ context.Context, ev Event) error {
	p.ch <- ev
	return nil
}

func TestDispatcher(t *testing.T) {
	pub := chanPublisher{ch: make(chan Event, 4)}
	d := NewDispatcher(pub, nil)

	d.AppointmentChanged(context.Background(), models.Appointment{ID: 9, ProfessionalID: 1, Status: "canceled"})
	d.Close()

	select {
	case ev := <-pub.ch:
		assert.Equal(t, uint(9), ev.AppointmentID)
		assert.Equal(t, KindCanceled, KindOf(ev))
	default:
		t.Fatal("evento não publicado")
	}
}

func TestDispatcher_EventsAfterCloseAreDropped(t *testing.T) {
	pub := chanPublisher{ch: make(chan Event, 64)}
	d := NewDispatcher(pub, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
			for j := 0; j < 4; j++ {
				d.AppointmentChanged(context.Background(), models.Appointment{ID: id, ProfessionalID: 1, Status: "pending"})
			}
		}(uint(i + 1))
	}

	d.Close()
	wg.Wait()

	assert.NotPanics(t, func() {
		d.AppointmentChanged(context.Background(), models.Appointment{ID: 99, ProfessionalID: 1, Status: "canceled"})
		d.Close()
	})

	close(pub.ch)
	for ev := range pub.ch {
		assert.NotEqual(t, uint(99), ev.AppointmentID)
	}
}

func TestDirectPublisher_IgnoresMissingChat(t *testing.T) {
	sender := &recordingSender{}
	p := NewDirectPublisher(NewDeliverer(stubProfessionals{1: {ID: 1}}, sender, nil))

	assert.NoError(t, p.Publish(context.Background(), sampleEvent()))
	assert.Zero(t, sender.total())
}

package appointment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/pro-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/pro-scheduler/internal/models"
)

const (
	profID    uint = 1
	serviceID uint = 10
)

func saoPaulo(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	return loc
}

// fixedNow: terça, 05/03/2030 08:00 em São Paulo.
func fixedNow(t *testing.T) func() time.Time {
	now := time.Date(2030, 3, 5, 8, 0, 0, 0, saoPaulo(t))
	return func() time.Time { return now }
}

func strp(s string) *string { return &s }
func intp(i int) *int       { return &i }

// seededRepo: profissional com expediente segunda 09:00-12:00 e serviço de 30 min.
func seededRepo(t *testing.T) *fakeRepo {
	t.Helper()
	r := newFakeRepo()

	r.professionals[profID] = &models.Professional{
		ID:           profID,
		Name:         "João",
		BusinessName: "Studio João",
		Email:        "joao@example.com",
		City:         "São Paulo",
		Timezone:     "America/Sao_Paulo",
	}
	r.services[serviceID] = &models.Service{
		ID:             serviceID,
		ProfessionalID: profID,
		Name:           "Corte",
		Price:          decimal.RequireFromString("20.00"),
		DurationMin:    30,
		Active:         true,
	}
	r.rules = []models.WeeklyRule{
		{ID: 1, ProfessionalID: profID, Weekday: int(time.Monday), StartTime: "09:00", EndTime: "12:00"},
	}
	return r
}

// addAppointment grava direto no fake, sem validação.
func addAppointment(r *fakeRepo, start time.Time, status domain.Status) *models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap := &models.Appointment{
		ID:             r.id(),
		ProfessionalID: profID,
		ServiceID:      serviceID,
		StartTime:      start,
		Status:         string(status),
		PaymentStatus:  string(domain.PaymentPending),
		PaymentAmount:  decimal.RequireFromString("20.00"),
		CreatedAt:      start.Add(-48 * time.Hour),
	}
	r.appointments[ap.ID] = ap
	return ap
}

// -------- collaborators --------

type fakeGateway struct {
	mu       sync.Mutex
	fail     bool
	requests []domain.ChargeRequest
	payments map[string]*domain.PaymentInfo
}

func (g *fakeGateway) CreatePixCharge(_ context.Context, req domain.ChargeRequest) (*domain.Charge, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.requests = append(g.requests, req)
	if g.fail {
		return nil, errors.New("gateway timeout")
	}
	return &domain.Charge{ID: "987654", EncodedImage: "iVBORw0KGgo=", Payload: "000201-gateway"}, nil
}

func (g *fakeGateway) GetPayment(_ context.Context, id string) (*domain.PaymentInfo, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.fail {
		return nil, errors.New("gateway timeout")
	}
	p, ok := g.payments[id]
	if !ok {
		return nil, errors.New("payment not found")
	}
	return p, nil
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []models.Appointment
}

func (n *recordingNotifier) AppointmentChanged(_ context.Context, ap models.Appointment) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, ap)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

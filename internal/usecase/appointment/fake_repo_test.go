package appointment

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/pro-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/pro-scheduler/internal/httperr"
	"github.com/BruksfildServices01/pro-scheduler/internal/models"
)

// fakeRepo guarda tudo em memória. WithinTx serializa as transações,
// como o advisory lock faz no Postgres.
type fakeRepo struct {
	txMu sync.Mutex
	mu   sync.Mutex

	professionals map[uint]*models.Professional
	services      map[uint]*models.Service
	clients       map[uint]*models.Client
	appointments  map[uint]*models.Appointment
	rules         []models.WeeklyRule
	exceptions    []models.ScheduleException
	pixConfigs    map[uint]*models.PixConfig

	nextID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		professionals: map[uint]*models.Professional{},
		services:      map[uint]*models.Service{},
		clients:       map[uint]*models.Client{},
		appointments:  map[uint]*models.Appointment{},
		pixConfigs:    map[uint]*models.PixConfig{},
		nextID:        100,
	}
}

func (r *fakeRepo) id() uint {
	r.nextID++
	return r.nextID
}

func (r *fakeRepo) withService(ap models.Appointment) models.Appointment {
	if svc, ok := r.services[ap.ServiceID]; ok {
		ap.Service = *svc
	}
	if c, ok := r.clients[ap.ClientID]; ok {
		ap.Client = *c
	}
	return ap
}

// -------- tx --------

func (r *fakeRepo) WithinTx(ctx context.Context, fn func(ctx context.Context, tx domain.Repository) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()
	return fn(ctx, r)
}

func (r *fakeRepo) LockProfessional(context.Context, uint) error { return nil }

// -------- calendar.Store --------

func (r *fakeRepo) GetWeeklyRule(_ context.Context, professionalID uint, weekday int) (*models.WeeklyRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rule := range r.rules {
		if rule.ProfessionalID == professionalID && rule.Weekday == weekday {
			out := rule
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) ListWeeklyRules(_ context.Context, professionalID uint) ([]models.WeeklyRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.WeeklyRule
	for _, rule := range r.rules {
		if rule.ProfessionalID == professionalID {
			out = append(out, rule)
		}
	}
	return out, nil
}

func (r *fakeRepo) ReplaceWeeklyRules(_ context.Context, professionalID uint, rules []models.WeeklyRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.rules[:0]
	for _, rule := range r.rules {
		if rule.ProfessionalID != professionalID {
			kept = append(kept, rule)
		}
	}
	r.rules = append(kept, rules...)
	return nil
}

func (r *fakeRepo) GetException(_ context.Context, professionalID uint, date string) (*models.ScheduleException, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.exceptions) - 1; i >= 0; i-- {
		ex := r.exceptions[i]
		if ex.ProfessionalID == professionalID && ex.Date == date {
			return &ex, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) ListExceptions(_ context.Context, professionalID uint, from, to string) ([]models.ScheduleException, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ScheduleException
	for i := len(r.exceptions) - 1; i >= 0; i-- {
		ex := r.exceptions[i]
		if ex.ProfessionalID != professionalID {
			continue
		}
		if (from != "" && ex.Date < from) || (to != "" && ex.Date > to) {
			continue
		}
		out = append(out, ex)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (r *fakeRepo) CreateException(_ context.Context, ex *models.ScheduleException) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ex.ID = r.id()
	r.exceptions = append(r.exceptions, *ex)
	return nil
}

func (r *fakeRepo) GetExceptionByID(_ context.Context, id uint) (*models.ScheduleException, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ex := range r.exceptions {
		if ex.ID == id {
			return &ex, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeRepo) DeleteException(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.exceptions[:0]
	for _, ex := range r.exceptions {
		if ex.ID != id {
			kept = append(kept, ex)
		}
	}
	r.exceptions = kept
	return nil
}

// -------- professional / service / client --------

func (r *fakeRepo) GetProfessional(_ context.Context, id uint) (*models.Professional, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.professionals[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *p
	return &out, nil
}

func (r *fakeRepo) GetService(_ context.Context, professionalID, serviceID uint) (*models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.services[serviceID]
	if !ok || s.ProfessionalID != professionalID {
		return nil, domain.ErrNotFound
	}
	out := *s
	return &out, nil
}

func (r *fakeRepo) ListActiveServices(_ context.Context, professionalID uint) ([]models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Service
	for _, s := range r.services {
		if s.ProfessionalID == professionalID && s.Active {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeRepo) UpsertClientByEmail(_ context.Context, professionalID uint, name, email, phone string) (*models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, c := range r.clients {
		if c.ProfessionalID == professionalID && c.Email == email {
			if name != "" {
				c.Name = name
			}
			if phone != "" {
				c.Phone = phone
			}
			out := *c
			return &out, nil
		}
	}
	c := &models.Client{ID: r.id(), ProfessionalID: professionalID, Name: name, Email: email, Phone: phone}
	r.clients[c.ID] = c
	out := *c
	return &out, nil
}

func (r *fakeRepo) GetClient(_ context.Context, professionalID, clientID uint) (*models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clients[clientID]
	if !ok || c.ProfessionalID != professionalID {
		return nil, domain.ErrNotFound
	}
	out := *c
	return &out, nil
}

func (r *fakeRepo) GetPixConfig(_ context.Context, professionalID uint) (*models.PixConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.pixConfigs[professionalID]; ok {
		out := *c
		return &out, nil
	}
	return nil, nil
}

// -------- appointments --------

func (r *fakeRepo) CountAppointments(_ context.Context, professionalID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, ap := range r.appointments {
		if ap.ProfessionalID == professionalID {
			n++
		}
	}
	return n, nil
}

// CreateAppointment imita o índice único parcial de início ativo.
func (r *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, other := range r.appointments {
		if other.ProfessionalID == ap.ProfessionalID &&
			other.StartTime.Equal(ap.StartTime) &&
			domain.Status(other.Status).Blocks() {
			return httperr.SlotConflictErr("time_conflict")
		}
	}
	ap.ID = r.id()
	ap.CreatedAt = time.Now()
	stored := *ap
	r.appointments[ap.ID] = &stored
	return nil
}

func (r *fakeRepo) ListBlockingAppointments(_ context.Context, professionalID uint, start, end time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.ProfessionalID != professionalID || !domain.Status(ap.Status).Blocks() {
			continue
		}
		full := r.withService(*ap)
		if full.StartTime.Before(end) && full.EndTime().After(start) {
			out = append(out, full)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *fakeRepo) GetAppointment(_ context.Context, professionalID, appointmentID uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.appointments[appointmentID]
	if !ok || ap.ProfessionalID != professionalID {
		return nil, domain.ErrNotFound
	}
	out := r.withService(*ap)
	return &out, nil
}

func (r *fakeRepo) GetAppointmentByID(_ context.Context, appointmentID uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.appointments[appointmentID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := r.withService(*ap)
	return &out, nil
}

func (r *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.appointments[ap.ID]; !ok {
		return domain.ErrNotFound
	}
	stored := *ap
	stored.Client = models.Client{}
	stored.Service = models.Service{}
	r.appointments[ap.ID] = &stored
	return nil
}

func (r *fakeRepo) DeleteAppointment(_ context.Context, professionalID, appointmentID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.appointments[appointmentID]
	if !ok || ap.ProfessionalID != professionalID {
		return domain.ErrNotFound
	}
	delete(r.appointments, appointmentID)
	return nil
}

func (r *fakeRepo) CancelUnpaidBefore(_ context.Context, cutoff, now time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, ap := range r.appointments {
		unpaid := ap.PaymentStatus == string(domain.PaymentPending) ||
			ap.PaymentStatus == string(domain.PaymentAwaitingPayment)
		if ap.Status == string(domain.StatusPending) && unpaid && ap.CreatedAt.Before(cutoff) {
			ap.Status = string(domain.StatusCanceled)
			t := now
			ap.CanceledAt = &t
			out = append(out, r.withService(*ap))
		}
	}
	return out, nil
}

func (r *fakeRepo) ListAppointments(_ context.Context, professionalID uint, f domain.ListFilter) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.ProfessionalID != professionalID {
			continue
		}
		if f.From != nil && ap.StartTime.Before(*f.From) {
			continue
		}
		if f.To != nil && !ap.StartTime.Before(*f.To) {
			continue
		}
		if f.ClientID != 0 && ap.ClientID != f.ClientID {
			continue
		}
		if f.ServiceID != 0 && ap.ServiceID != f.ServiceID {
			continue
		}
		if f.Status != "" && ap.Status != f.Status {
			continue
		}
		if f.PaymentStatus != "" && ap.PaymentStatus != f.PaymentStatus {
			continue
		}
		out = append(out, r.withService(*ap))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

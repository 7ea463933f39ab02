package appointment

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/pro-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/pro-scheduler/internal/domain/identity"
	domain "github.com/BruksfildServices01/pro-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/pro-scheduler/internal/dto"
	"github.com/BruksfildServices01/pro-scheduler/internal/models"
)

type FinanceSummary struct {
	WeekTotal    decimal.Decimal            `json:"week_total"`
	MonthTotal   decimal.Decimal            `json:"month_total"`
	ByMethod     map[string]decimal.Decimal `json:"by_method"`
	PendingTotal decimal.Decimal            `json:"pending_total"`
	PendingCount int                        `json:"pending_count"`
}

// GetFinanceSummary soma recebimentos da semana (segunda a domingo) e do mês
// corrente, pelo horário do atendimento.
type GetFinanceSummary struct {
	repo domain.Repository
	now  func() time.Time
}

func NewGetFinanceSummary(repo domain.Repository) *GetFinanceSummary {
	return &GetFinanceSummary{repo: repo, now: time.Now}
}

func (uc *GetFinanceSummary) Execute(
	ctx context.Context,
	who identity.Identity,
) (*FinanceSummary, error) {

	_, loc, err := loadProfessional(ctx, uc.repo, who.ProfessionalID)
	if err != nil {
		return nil, err
	}

	today := calendar.DayStart(uc.now(), loc)
	offset := (int(today.Weekday()) + 6) % 7
	weekStart := today.AddDate(0, 0, -offset)
	weekEnd := weekStart.AddDate(0, 0, 7)
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, loc)
	monthEnd := monthStart.AddDate(0, 1, 0)

	from, to := monthStart, monthEnd
	if weekStart.Before(from) {
		from = weekStart
	}
	if weekEnd.After(to) {
		to = weekEnd
	}

	paid, err := uc.repo.ListAppointments(ctx, who.ProfessionalID, domain.ListFilter{
		From:          &from,
		To:            &to,
		PaymentStatus: string(domain.PaymentPaid),
	})
	if err != nil {
		return nil, err
	}

	out := &FinanceSummary{
		WeekTotal:    decimal.Zero,
		MonthTotal:   decimal.Zero,
		ByMethod:     map[string]decimal.Decimal{},
		PendingTotal: decimal.Zero,
	}

	for _, ap := range paid {
		inWeek := !ap.StartTime.Before(weekStart) && ap.StartTime.Before(weekEnd)
		inMonth := !ap.StartTime.Before(monthStart) && ap.StartTime.Before(monthEnd)

		if inWeek {
			out.WeekTotal = out.WeekTotal.Add(ap.PaymentAmount)
		}
		if inMonth {
			out.MonthTotal = out.MonthTotal.Add(ap.PaymentAmount)
			method := ap.PaymentMethod
			if method == "" {
				method = "unknown"
			}
			out.ByMethod[method] = out.ByMethod[method].Add(ap.PaymentAmount)
		}
	}

	pending, err := uc.pending(ctx, who)
	if err != nil {
		return nil, err
	}
	for _, p := range pending {
		out.PendingTotal = out.PendingTotal.Add(p.PaymentAmount)
	}
	out.PendingCount = len(pending)

	return out, nil
}

// ListPendingPayments: agendamentos ativos ainda sem pagamento.
type ListPendingPayments struct {
	summary *GetFinanceSummary
}

func NewListPendingPayments(repo domain.Repository) *ListPendingPayments {
	return &ListPendingPayments{summary: NewGetFinanceSummary(repo)}
}

func (uc *ListPendingPayments) Execute(
	ctx context.Context,
	who identity.Identity,
) ([]dto.AppointmentListDTO, error) {

	_, loc, err := loadProfessional(ctx, uc.summary.repo, who.ProfessionalID)
	if err != nil {
		return nil, err
	}

	pending, err := uc.summary.pending(ctx, who)
	if err != nil {
		return nil, err
	}
	return dto.AppointmentList(pending, loc), nil
}

func (uc *GetFinanceSummary) pending(
	ctx context.Context,
	who identity.Identity,
) ([]models.Appointment, error) {

	var out []models.Appointment
	for _, ps := range []domain.PaymentStatus{domain.PaymentPending, domain.PaymentAwaitingPayment} {
		aps, err := uc.repo.ListAppointments(ctx, who.ProfessionalID, domain.ListFilter{
			PaymentStatus: string(ps),
		})
		if err != nil {
			return nil, err
		}
		for _, ap := range aps {
			if domain.Status(ap.Status) != domain.StatusCanceled {
				out = append(out, ap)
			}
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out, nil
}

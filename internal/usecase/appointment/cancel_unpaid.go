package appointment

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/pro-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/pro-scheduler/internal/domain/appointment"
)

// CancelUnpaid é a varredura periódica: pendentes sem pagamento há mais de ttl
// são cancelados. Rodar de novo não muda nada já cancelado.
type CancelUnpaid struct {
	repo     domain.Repository
	notifier domain.Notifier
	audit    *audit.Dispatcher
	log      *zap.Logger
	ttl      time.Duration
	now      func() time.Time
}

func NewCancelUnpaid(
	repo domain.Repository,
	notifier domain.Notifier,
	audit *audit.Dispatcher,
	log *zap.Logger,
	ttl time.Duration,
) *CancelUnpaid {
	if log == nil {
		log = zap.NewNop()
	}
	return &CancelUnpaid{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
		log:      log,
		ttl:      ttl,
		now:      time.Now,
	}
}

func (uc *CancelUnpaid) Execute(ctx context.Context) (int, error) {
	now := uc.now()

	canceled, err := uc.repo.CancelUnpaidBefore(ctx, now.Add(-uc.ttl), now)
	if err != nil {
		return 0, err
	}

	for i := range canceled {
		ap := &canceled[i]

		uc.audit.Dispatch(audit.Event{
			ProfessionalID: ap.ProfessionalID,
			Action:         audit.ActionAppointmentExpired,
			Entity:         "appointment",
			EntityID:       &ap.ID,
		})

		notify(ctx, uc.notifier, ap)
	}

	if len(canceled) > 0 {
		uc.log.Info("unpaid bookings canceled", zap.Int("count", len(canceled)))
	}

	return len(canceled), nil
}

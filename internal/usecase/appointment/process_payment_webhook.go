package appointment

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/pro-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/pro-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/pro-scheduler/internal/httperr"
	"github.com/BruksfildServices01/pro-scheduler/internal/models"
)

type WebhookResult struct {
	Processed     bool   `json:"processed"`
	Reason        string `json:"reason,omitempty"`
	AppointmentID uint   `json:"appointment_id,omitempty"`
}

// ProcessPaymentWebhook concilia a notificação do gateway com o agendamento
// apontado pela referência externa. Entregas repetidas são esperadas.
type ProcessPaymentWebhook struct {
	repo     domain.Repository
	gateway  domain.PaymentGateway
	notifier domain.Notifier
	audit    *audit.Dispatcher
	log      *zap.Logger
	now      func() time.Time
}

func NewProcessPaymentWebhook(
	repo domain.Repository,
	gateway domain.PaymentGateway,
	notifier domain.Notifier,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *ProcessPaymentWebhook {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProcessPaymentWebhook{
		repo:     repo,
		gateway:  gateway,
		notifier: notifier,
		audit:    audit,
		log:      log,
		now:      time.Now,
	}
}

func (uc *ProcessPaymentWebhook) Execute(
	ctx context.Context,
	paymentID string,
) (*WebhookResult, error) {

	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return nil, httperr.ValidationErr("invalid_request")
	}

	if uc.gateway == nil {
		return &WebhookResult{Reason: "gateway_disabled"}, nil
	}

	info, err := uc.gateway.GetPayment(ctx, paymentID)
	if err != nil {
		uc.log.Warn("webhook payment lookup", zap.String("payment_id", paymentID), zap.Error(err))
		return nil, httperr.GatewayFailureErr("payment_gateway_failed")
	}

	if !info.Approved() {
		return &WebhookResult{Reason: "not_approved"}, nil
	}

	ref, err := strconv.ParseUint(strings.TrimSpace(info.ExternalReference), 10, 64)
	if err != nil || ref == 0 {
		return &WebhookResult{Reason: "unknown_reference"}, nil
	}

	var paid *models.Appointment

	err = uc.repo.WithinTx(ctx, func(ctx context.Context, tx domain.Repository) error {
		ap, err := tx.GetAppointmentByID(ctx, uint(ref))
		if err != nil {
			return err
		}

		// reentregas simultâneas passam uma de cada vez
		if err := tx.LockProfessional(ctx, ap.ProfessionalID); err != nil {
			return err
		}
		if ap, err = tx.GetAppointmentByID(ctx, ap.ID); err != nil {
			return err
		}

		if err := domain.ApplyApprovedPayment(ap, info.ID, uc.now()); err != nil {
			return err
		}
		if err := tx.UpdateAppointment(ctx, ap); err != nil {
			return err
		}

		paid = ap
		return nil
	})

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return &WebhookResult{Reason: "unknown_reference"}, nil
	case domain.IsAlreadyPaid(err):
		return nil, httperr.AlreadyProcessedErr("already_processed")
	case err != nil:
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ProfessionalID: paid.ProfessionalID,
		Action:         audit.ActionAppointmentPaid,
		Entity:         "appointment",
		EntityID:       &paid.ID,
		Metadata:       map[string]any{"method": paid.PaymentMethod, "external_id": info.ID},
	})

	notify(ctx, uc.notifier, paid)

	return &WebhookResult{Processed: true, AppointmentID: paid.ID}, nil
}

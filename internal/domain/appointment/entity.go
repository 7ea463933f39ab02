package appointment

import (
	"time"

	"github.com/BruksfildServices01/pro-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCanceled)
	ap.CanceledAt = &now
	return nil
}

// MarkPaid dá baixa manual: pagamento quitado e agendamento confirmado.
func MarkPaid(ap *models.Appointment, method PaymentMethod, now time.Time) error {
	if err := CanMarkPaid(Status(ap.Status), PaymentStatus(ap.PaymentStatus)); err != nil {
		return err
	}

	ap.PaymentStatus = string(PaymentPaid)
	ap.PaymentMethod = string(method)
	ap.Status = string(StatusConfirmed)
	ap.PaidAt = &now
	return nil
}

// ApplyApprovedPayment registra o pagamento confirmado pelo gateway.
// O status do agendamento não muda.
func ApplyApprovedPayment(ap *models.Appointment, externalID string, now time.Time) error {
	if PaymentStatus(ap.PaymentStatus) == PaymentPaid {
		return errAlreadyPaid
	}

	ap.PaymentStatus = string(PaymentPaid)
	ap.PaymentMethod = string(MethodPixOnline)
	ap.PaymentExternalID = externalID
	ap.PaidAt = &now
	return nil
}

package appointment

import "github.com/BruksfildServices01/pro-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending     Status = "pending"
	StatusConfirmed   Status = "confirmed"
	StatusRescheduled Status = "rescheduled"
	StatusCanceled    Status = "canceled"
)

// BlockingStatuses ocupam o horário em todos os caminhos (grade, mês, reserva, remarcação).
var BlockingStatuses = []Status{StatusPending, StatusConfirmed, StatusRescheduled}

func BlockingStatusStrings() []string {
	out := make([]string, 0, len(BlockingStatuses))
	for _, s := range BlockingStatuses {
		out = append(out, string(s))
	}
	return out
}

func (s Status) Blocks() bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusRescheduled
}

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusRescheduled, StatusCanceled:
		return Status(s), nil
	}
	return "", httperr.ValidationErr("invalid_status")
}

// ===============================
// Payment
// ===============================

type PaymentStatus string

const (
	PaymentPending         PaymentStatus = "pending"
	PaymentAwaitingPayment PaymentStatus = "awaiting_payment"
	PaymentPaid            PaymentStatus = "paid"
)

type PaymentOption string

const (
	PaymentOnline   PaymentOption = "online"
	PaymentInPerson PaymentOption = "in_person"
)

func ParsePaymentOption(s string) (PaymentOption, error) {
	switch PaymentOption(s) {
	case PaymentOnline, PaymentInPerson:
		return PaymentOption(s), nil
	case "", "presencial":
		return PaymentInPerson, nil
	}
	return "", httperr.ValidationErr("invalid_payment_method")
}

// InitialPaymentStatus deriva o status de pagamento da opção escolhida na reserva.
func (o PaymentOption) InitialPaymentStatus() PaymentStatus {
	if o == PaymentOnline {
		return PaymentAwaitingPayment
	}
	return PaymentPending
}

type PaymentMethod string

const (
	MethodCash        PaymentMethod = "cash"
	MethodCard        PaymentMethod = "card"
	MethodPixInPerson PaymentMethod = "pix_in_person"
	MethodPixOnline   PaymentMethod = "pix_online"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case MethodCash, MethodCard, MethodPixInPerson, MethodPixOnline:
		return PaymentMethod(s), nil
	}
	return "", httperr.ValidationErr("invalid_payment_method")
}

// ===============================
// Validations
// ===============================

// CanCancel define se um agendamento pode ser cancelado
func CanCancel(current Status) error {
	if current == StatusCanceled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanMarkPaid impede baixa em agendamento cancelado ou já pago.
func CanMarkPaid(current Status, payment PaymentStatus) error {
	if current == StatusCanceled {
		return httperr.ErrBusiness("invalid_state")
	}
	if payment == PaymentPaid {
		return httperr.AlreadyProcessedErr("already_processed")
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}

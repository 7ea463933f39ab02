package appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/pro-scheduler/internal/models"
)

// Locker serializa reservas concorrentes de uma mesma chave (profissional + dia).
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

func LockKey(professionalID uint, day string) string {
	return fmt.Sprintf("booking:%d:%s", professionalID, day)
}

// ChargeRequest é o pedido de cobrança Pix enviado ao gateway.
type ChargeRequest struct {
	Amount            decimal.Decimal
	Description       string
	PayerName         string
	PayerEmail        string
	ExternalReference string
}

// Charge é a resposta normalizada do gateway.
type Charge struct {
	ID           string
	EncodedImage string
	Payload      string
}

type PaymentInfo struct {
	ID                string
	Status            string
	ExternalReference string
}

func (p PaymentInfo) Approved() bool {
	return p.Status == "approved"
}

type PaymentGateway interface {
	CreatePixCharge(ctx context.Context, req ChargeRequest) (*Charge, error)
	GetPayment(ctx context.Context, id string) (*PaymentInfo, error)
}

// Notifier recebe mudanças de agendamento; entrega fora da transação e sem retorno.
type Notifier interface {
	AppointmentChanged(ctx context.Context, ap models.Appointment)
}

// ErrLockTimeout indica que outra reserva segurou a chave além do prazo de espera.
var ErrLockTimeout = errors.New("booking lock not acquired")

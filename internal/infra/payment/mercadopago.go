package payment

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	mppayment "github.com/mercadopago/sdk-go/pkg/payment"

	domain "github.com/BruksfildServices01/pro-scheduler/internal/domain/appointment"
)

// paymentAPI é o recorte do client do SDK que usamos.
type paymentAPI interface {
	Create(ctx context.Context, request mppayment.Request) (*mppayment.Response, error)
	Get(ctx context.Context, id int) (*mppayment.Response, error)
}

// MercadoPago gera cobranças Pix e consulta pagamentos para o webhook.
type MercadoPago struct {
	client          paymentAPI
	notificationURL string
}

func NewMercadoPago(accessToken, notificationURL string) (*MercadoPago, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}
	return &MercadoPago{
		client:          mppayment.NewClient(cfg),
		notificationURL: notificationURL,
	}, nil
}

func (m *MercadoPago) CreatePixCharge(ctx context.Context, req domain.ChargeRequest) (*domain.Charge, error) {
	first, last := splitName(req.PayerName)

	resp, err := m.client.Create(ctx, mppayment.Request{
		TransactionAmount: req.Amount.InexactFloat64(),
		Description:       req.Description,
		PaymentMethodID:   "pix",
		ExternalReference: req.ExternalReference,
		NotificationURL:   m.notificationURL,
		Payer: &mppayment.PayerRequest{
			Email:     req.PayerEmail,
			FirstName: first,
			LastName:  last,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create pix charge: %w", err)
	}

	return &domain.Charge{
		ID:           strconv.Itoa(resp.ID),
		EncodedImage: resp.PointOfInteraction.TransactionData.QRCodeBase64,
		Payload:      resp.PointOfInteraction.TransactionData.QRCode,
	}, nil
}

func (m *MercadoPago) GetPayment(ctx context.Context, id string) (*domain.PaymentInfo, error) {
	n, err := strconv.Atoi(strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("invalid payment id %q", id)
	}

	resp, err := m.client.Get(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("get payment %d: %w", n, err)
	}

	return &domain.PaymentInfo{
		ID:                strconv.Itoa(resp.ID),
		Status:            resp.Status,
		ExternalReference: resp.ExternalReference,
	}, nil
}

func splitName(full string) (string, string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "Cliente", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}

var _ domain.PaymentGateway = (*MercadoPago)(nil)

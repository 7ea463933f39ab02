package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/pro-scheduler/internal/httperr"
	"github.com/BruksfildServices01/pro-scheduler/internal/infra/payment"
	"github.com/BruksfildServices01/pro-scheduler/internal/usecase/appointment"
)

type paymentWebhook interface {
	Execute(ctx context.Context, paymentID string) (*appointment.WebhookResult, error)
}

// WebhookHandler recebe as notificações do Mercado Pago. Tudo que não for
// assinatura ou payload inválido responde 200 para não disparar reenvios.
type WebhookHandler struct {
	process paymentWebhook
	secret  string
	log     *zap.Logger
}

func NewWebhookHandler(process paymentWebhook, secret string, log *zap.Logger) *WebhookHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &WebhookHandler{process: process, secret: secret, log: log}
}

type mercadoPagoNotification struct {
	Type   string `json:"type"`
	Action string `json:"action"`
	Data   struct {
		ID string `json:"id"`
	} `json:"data"`
}

// paymentRef extrai o tipo e o id do pagamento da query (data.id / id) ou do corpo.
func paymentRef(c *gin.Context) (kind, id string) {
	kind = c.Query("type")
	if kind == "" {
		kind = c.Query("topic")
	}
	id = c.Query("data.id")
	if id == "" {
		id = c.Query("id")
	}

	var body mercadoPagoNotification
	if err := c.ShouldBindJSON(&body); err == nil {
		if kind == "" {
			kind = body.Type
		}
		if id == "" {
			id = body.Data.ID
		}
	}

	return strings.TrimSpace(kind), strings.TrimSpace(id)
}

func (h *WebhookHandler) MercadoPago(c *gin.Context) {
	kind, id := paymentRef(c)

	if !payment.VerifySignature(h.secret, c.GetHeader("x-signature"), c.GetHeader("x-request-id"), id) {
		httperr.Unauthorized(c, "invalid_signature", "Assinatura inválida.")
		return
	}

	if kind != "" && kind != "payment" {
		c.JSON(http.StatusOK, appointment.WebhookResult{Reason: "ignored_topic"})
		return
	}
	if id == "" {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	result, err := h.process.Execute(c.Request.Context(), id)
	if err != nil {
		switch httperr.KindOf(err) {
		case httperr.KindAlreadyProcessed:
			c.JSON(http.StatusOK, appointment.WebhookResult{Reason: "already_processed"})
		case httperr.KindUnknown:
			h.log.Error("payment webhook failed", zap.String("payment_id", id), zap.Error(err))
			httperr.Respond(c, err)
		default:
			httperr.Respond(c, err)
		}
		return
	}

	h.log.Info("payment webhook",
		zap.String("payment_id", id),
		zap.Bool("processed", result.Processed),
		zap.String("reason", result.Reason),
	)

	c.JSON(http.StatusOK, result)
}

package notify

import (
	"fmt"
	"strings"
	"time"
)

// Kind classifica o evento para escolher o texto.
type Kind string

const (
	KindCreated     Kind = "created"
	KindConfirmed   Kind = "confirmed"
	KindRescheduled Kind = "rescheduled"
	KindCanceled    Kind = "canceled"
	KindPaid        Kind = "paid"
)

// KindOf: cancelamento vence pagamento; pagamento vence o status.
func KindOf(ev Event) Kind {
	switch {
	case ev.Status == "canceled":
		return KindCanceled
	case ev.PaymentStatus == "paid":
		return KindPaid
	case ev.Status == "rescheduled":
		return KindRescheduled
	case ev.Status == "confirmed":
		return KindConfirmed
	default:
		return KindCreated
	}
}

var titles = map[Kind]string{
	KindCreated:     "📅 Novo agendamento",
	KindConfirmed:   "✅ Agendamento confirmado",
	KindRescheduled: "🔁 Agendamento remarcado",
	KindCanceled:    "❌ Agendamento cancelado",
	KindPaid:        "💰 Pagamento recebido",
}

var methodLabels = map[string]string{
	"cash":          "dinheiro",
	"card":          "cartão",
	"pix_in_person": "Pix presencial",
	"pix_online":    "Pix online",
}

// Render monta o texto enviado ao profissional, com data no fuso dele.
func Render(ev Event, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}

	kind := KindOf(ev)
	start := ev.StartTime.In(loc)

	var b strings.Builder
	b.WriteString(titles[kind])
	b.WriteString("\n\n")

	client := ev.ClientName
	if client == "" {
		client = "Cliente"
	}
	if ev.ClientPhone != "" {
		client += " (" + ev.ClientPhone + ")"
	}
	fmt.Fprintf(&b, "Cliente: %s\n", client)

	if ev.ServiceName != "" {
		fmt.Fprintf(&b, "Serviço: %s\n", ev.ServiceName)
	}
	fmt.Fprintf(&b, "Data: %s às %s\n", start.Format("02/01/2006"), start.Format("15:04"))

	if kind == KindPaid {
		if label, ok := methodLabels[ev.PaymentMethod]; ok {
			fmt.Fprintf(&b, "Forma de pagamento: %s\n", label)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

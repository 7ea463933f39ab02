package notify

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/pro-scheduler/internal/models"
	"github.com/BruksfildServices01/pro-scheduler/internal/timezone"
)

// Sender entrega um texto num chat. TelegramSender é a implementação real.
type Sender interface {
	Send(ctx context.Context, chatID int64, text string) error
}

type professionalLookup interface {
	GetProfessional(ctx context.Context, id uint) (*models.Professional, error)
}

// Deliverer transforma o evento em mensagem e entrega no chat do profissional.
type Deliverer struct {
	professionals professionalLookup
	sender        Sender
	log           *zap.Logger
}

func NewDeliverer(professionals professionalLookup, sender Sender, log *zap.Logger) *Deliverer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Deliverer{professionals: professionals, sender: sender, log: log}
}

// ErrNoChat: profissional sem chat vinculado, nada a entregar.
var ErrNoChat = errors.New("notify: professional has no chat")

func (d *Deliverer) Deliver(ctx context.Context, ev Event) error {
	prof, err := d.professionals.GetProfessional(ctx, ev.ProfessionalID)
	if err != nil {
		return fmt.Errorf("load professional %d: %w", ev.ProfessionalID, err)
	}
	if prof.TelegramChatID == nil || *prof.TelegramChatID == 0 {
		return ErrNoChat
	}

	text := Render(ev, timezone.Location(prof.Timezone))
	if err := d.sender.Send(ctx, *prof.TelegramChatID, text); err != nil {
		return fmt.Errorf("send to chat: %w", err)
	}

	d.log.Debug("notification delivered",
		zap.Uint("appointment_id", ev.AppointmentID),
		zap.String("kind", string(KindOf(ev))),
	)
	return nil
}

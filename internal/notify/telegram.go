package notify

import (
	"context"

	"github.com/go-telegram/bot"
)

type TelegramSender struct {
	bot *bot.Bot
}

// NewTelegramSender não chama getMe: o token só é validado no primeiro envio.
func NewTelegramSender(token string) (*TelegramSender, error) {
	b, err := bot.New(token, bot.WithSkipGetMe())
	if err != nil {
		return nil, err
	}
	return &TelegramSender{bot: b}, nil
}

func (s *TelegramSender) Send(ctx context.Context, chatID int64, text string) error {
	_, err := s.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	return err
}

var _ Sender = (*TelegramSender)(nil)

package notify

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
)

// Telegram posts to one chat. The bot connects on first use.
type Telegram struct {
	Token  string
	ChatID int64

	mu  sync.Mutex
	bot *tgbotapi.BotAPI
}

func (t *Telegram) ID() string {
	return "telegram"
}

func (t *Telegram) connect() (*tgbotapi.BotAPI, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.bot == nil {
		bot, err := tgbotapi.NewBotAPI(t.Token)
		if err != nil {
			return nil, errors.Wrap(err, "telegram")
		}
		t.bot = bot
	}
	return t.bot, nil
}

func (t *Telegram) Send(ctx context.Context, msg Message, _ []string) error {
	bot, err := t.connect()
	if err != nil {
		return err
	}
	_, err = bot.Send(tgbotapi.NewMessage(t.ChatID, msg.Class.Subject()+": "+msg.Body))
	return errors.Wrap(err, "telegram")
}

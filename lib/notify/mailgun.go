package notify

import (
	"context"

	mailgun "github.com/mailgun/mailgun-go/v3"
	"github.com/pkg/errors"
)

// Mailgun sends through the Mailgun HTTP API.
type Mailgun struct {
	From string
	mg   *mailgun.MailgunImpl
}

func NewMailgun(domain, apiKey, from string) *Mailgun {
	return &Mailgun{From: from, mg: mailgun.NewMailgun(domain, apiKey)}
}

func (m *Mailgun) ID() string {
	return "mailgun"
}

func (m *Mailgun) Send(ctx context.Context, msg Message, to []string) error {
	message := m.mg.NewMessage(m.From, msg.Class.Subject(), msg.Body, to...)
	resp, id, err := m.mg.Send(ctx, message)
	if err != nil {
		return errors.Wrap(err, "mailgun")
	}
	if id == "" {
		return errors.Errorf("mailgun: invalid id: %s", resp)
	}
	return nil
}

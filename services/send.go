package services

import (
	"github.com/pkg/errors"

	"github.com/basement-tech/Monitoring-zimKnives/config"
	"github.com/basement-tech/Monitoring-zimKnives/lib/notify"
)

// NewDispatcher builds the notification channel from configuration: the
// configured mail method plus one sender per extra target.
func NewDispatcher(cfg *config.Config) (*notify.Dispatcher, error) {
	d := &notify.Dispatcher{
		Alarms:        cfg.Notify.Alarm,
		Notifications: cfg.Notify.Notifications,
	}
	switch cfg.Email.Method {
	case "mail", "":
		d.Mail = &notify.Command{Path: cfg.Email.Command}
	case "smtp":
		d.Mail = &notify.SMTP{Server: cfg.Email.Server, From: cfg.Email.From}
	case "mailgun":
		mg := cfg.Email.Mailgun
		d.Mail = notify.NewMailgun(mg.Domain, mg.APIKey, cfg.Email.From)
	default:
		return nil, errors.Errorf("unknown email method: %s", cfg.Email.Method)
	}

	for _, target := range cfg.Notify.Targets {
		switch target {
		case "telegram":
			d.Targets = append(d.Targets, &notify.Telegram{Token: cfg.Telegram.Token, ChatID: cfg.Telegram.ChatID})
		case "pushbullet":
			d.Targets = append(d.Targets, notify.NewPushbullet(cfg.Pushbullet.Token))
		case "mastodon":
			m := cfg.Mastodon
			d.Targets = append(d.Targets, notify.NewMastodon(m.Server, m.ClientID, m.ClientSecret, m.AccessToken))
		case "sms":
			d.Targets = append(d.Targets, &notify.SMS{Device: cfg.SMS.Device, Telephone: cfg.SMS.Telephone})
		default:
			return nil, errors.Errorf("unknown notification target: %s", target)
		}
	}
	return d, nil
}

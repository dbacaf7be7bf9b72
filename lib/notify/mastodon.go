package notify

import (
	"context"

	"github.com/mattn/go-mastodon"
	"github.com/pkg/errors"

	"github.com/basement-tech/Monitoring-zimKnives/logger"
)

// Mastodon posts a private toot.
type Mastodon struct {
	client *mastodon.Client
}

func NewMastodon(server, clientID, clientSecret, accessToken string) *Mastodon {
	return &Mastodon{client: mastodon.NewClient(&mastodon.Config{
		Server:       server,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		AccessToken:  accessToken,
	})}
}

func (m *Mastodon) ID() string {
	return "mastodon"
}

func (m *Mastodon) Send(ctx context.Context, msg Message, _ []string) error {
	status, err := m.client.PostStatus(ctx, &mastodon.Toot{
		Status:     msg.Class.Subject() + ": " + msg.Body,
		Visibility: "private",
	})
	if err != nil {
		return errors.Wrap(err, "mastodon")
	}
	logger.Debugf("Sent: %s", status.URL)
	return nil
}

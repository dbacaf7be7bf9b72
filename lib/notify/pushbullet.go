package notify

import (
	"context"

	"github.com/mitsuse/pushbullet-go"
	"github.com/mitsuse/pushbullet-go/requests"
	"github.com/pkg/errors"
)

// Pushbullet pushes a note to the account's devices.
type Pushbullet struct {
	pb *pushbullet.Pushbullet
}

func NewPushbullet(token string) *Pushbullet {
	return &Pushbullet{pb: pushbullet.New(token)}
}

func (p *Pushbullet) ID() string {
	return "pushbullet"
}

func (p *Pushbullet) Send(ctx context.Context, msg Message, _ []string) error {
	n := requests.NewNote()
	n.Title = msg.Class.Subject()
	n.Body = msg.Body
	_, err := p.pb.PostPushesNote(n)
	return errors.Wrap(err, "pushbullet")
}

package notify

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/barnybug/gogsmmodem"
	"github.com/pkg/errors"
	"github.com/tarm/serial"
)

// SMS texts one telephone through a GSM modem. Device may be a glob; the
// modem is opened on first use.
type SMS struct {
	Device    string
	Telephone string

	mu    sync.Mutex
	modem *gogsmmodem.Modem
}

func (s *SMS) ID() string {
	return "sms"
}

func (s *SMS) open() (*gogsmmodem.Modem, error) {
	if s.modem != nil {
		return s.modem, nil
	}
	matches, _ := filepath.Glob(s.Device)
	if len(matches) == 0 {
		return nil, errors.Errorf("sms: device not found: %s", s.Device)
	}
	modem, err := gogsmmodem.Open(&serial.Config{Name: matches[0], Baud: 115200}, false)
	if err != nil {
		return nil, errors.Wrap(err, "sms")
	}
	s.modem = modem
	return modem, nil
}

func (s *SMS) Send(ctx context.Context, msg Message, _ []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	modem, err := s.open()
	if err != nil {
		return err
	}
	return errors.Wrap(modem.SendMessage(s.Telephone, msg.Body), "sms")
}

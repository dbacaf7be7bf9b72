package notify

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"
	"os/exec"
	"strings"

	"github.com/pkg/errors"

	"github.com/basement-tech/Monitoring-zimKnives/logger"
)

// Command mails through the local mail(1) relay: one invocation per
// address, the body on stdin.
type Command struct {
	Path string
}

func (c *Command) ID() string {
	return "mail"
}

func (c *Command) Send(ctx context.Context, msg Message, to []string) error {
	path := c.Path
	if path == "" {
		path = "mail"
	}
	var failed []string
	for _, addr := range to {
		logger.Infof("Sending %s message to: %s", msg.Class, addr)
		cmd := exec.CommandContext(ctx, path, "-s"+msg.Class.Subject(), addr)
		cmd.Stdin = strings.NewReader(msg.Body)
		out, err := cmd.CombinedOutput()
		if err != nil {
			logger.Errorf("output from mail attempt, output = %q; err = %v", out, err)
			failed = append(failed, addr)
			continue
		}
		if len(out) > 0 {
			logger.Debugf("output from mail attempt: %q", out)
		}
	}
	if len(failed) > 0 {
		return errors.Errorf("mail to %s failed", strings.Join(failed, ", "))
	}
	return nil
}

// SMTP sends one message to all addresses through a relay.
type SMTP struct {
	Server string
	From   string
}

func (s *SMTP) ID() string {
	return "smtp: " + s.Server
}

func (s *SMTP) Send(ctx context.Context, msg Message, to []string) error {
	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", s.From)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n\r\n", msg.Class.Subject())
	b.WriteString(msg.Body)
	b.WriteString("\r\n")
	err := smtp.SendMail(s.Server, nil, s.From, to, b.Bytes())
	return errors.Wrap(err, "smtp")
}

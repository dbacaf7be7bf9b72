package notify

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterfaces(t *testing.T) {
	var _ Sender = (*Command)(nil)
	var _ Sender = (*SMTP)(nil)
	var _ Sender = (*Mailgun)(nil)
	var _ Sender = (*Telegram)(nil)
	var _ Sender = (*Pushbullet)(nil)
	var _ Sender = (*Mastodon)(nil)
	var _ Sender = (*SMS)(nil)
	var _ Sender = (*Mock)(nil)
}

func TestSubjects(t *testing.T) {
	assert.Equal(t, "Alarm", Alarm.Subject())
	assert.Equal(t, "Notification", Notification.Subject())
}

func TestDispatcherAddressLists(t *testing.T) {
	mail := &Mock{Name: "mail"}
	extra := &Mock{Name: "telegram"}
	d := &Dispatcher{
		Mail:          mail,
		Alarms:        []string{"alarm@example.com"},
		Notifications: []string{"a@example.com", "b@example.com"},
		Targets:       []Sender{extra},
	}
	d.Alarm("Motion detected at bench")
	d.Notify("T:72 H:40 G_CO:0 G_PR:0")
	d.Wait()

	sent := mail.Sent()
	require.Len(t, sent, 2)
	for _, s := range sent {
		if s.Class == Alarm {
			assert.Equal(t, []string{"alarm@example.com"}, s.To)
			assert.Equal(t, "Motion detected at bench", s.Body)
		} else {
			assert.Equal(t, []string{"a@example.com", "b@example.com"}, s.To)
		}
	}
	assert.Len(t, extra.Sent(), 2)
}

func TestDispatcherEmptyList(t *testing.T) {
	mail := &Mock{}
	d := &Dispatcher{Mail: mail, Alarms: []string{"x@example.com"}}
	d.Notify("status")
	d.Wait()
	assert.Empty(t, mail.Sent())
}

func TestDispatcherFailureNotRetried(t *testing.T) {
	mail := &Mock{Err: errors.New("relay down")}
	d := &Dispatcher{Mail: mail, Alarms: []string{"x@example.com"}}
	d.Alarm("LIMIT\nToo hot")
	d.Wait()
	assert.Len(t, mail.Sent(), 1)
}

// fakeMail writes a script standing in for mail(1) that records its
// arguments and stdin.
func fakeMail(t *testing.T, exit int) (string, string) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	script := filepath.Join(dir, "mail")
	body := "#!/bin/sh\necho \"$@\" >> " + out + "\ncat >> " + out + "\necho >> " + out + "\nexit " + string(rune('0'+exit)) + "\n"
	require.NoError(t, os.WriteFile(script, []byte(body), 0o755))
	return script, out
}

func TestCommand(t *testing.T) {
	script, out := fakeMail(t, 0)
	c := &Command{Path: script}
	err := c.Send(context.Background(), Message{Alarm, "Motion detected at bench"}, []string{"a@example.com", "b@example.com"})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "-sAlarm a@example.com\nMotion detected at bench\n-sAlarm b@example.com\nMotion detected at bench\n", string(data))
}

func TestCommandFailure(t *testing.T) {
	script, _ := fakeMail(t, 1)
	c := &Command{Path: script}
	err := c.Send(context.Background(), Message{Notification, "x"}, []string{"a@example.com"})
	assert.Error(t, err)
}

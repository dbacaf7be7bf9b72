// Package notify delivers alarm and notification messages to people.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/VictoriaMetrics/metrics"

	"github.com/basement-tech/Monitoring-zimKnives/logger"
)

// Class of a message. Classes differ only in subject and address list.
type Class int

const (
	Notification Class = iota
	Alarm
)

// Subject line for the class.
func (c Class) Subject() string {
	if c == Alarm {
		return "Alarm"
	}
	return "Notification"
}

func (c Class) String() string {
	if c == Alarm {
		return "alarm"
	}
	return "notification"
}

type Message struct {
	Class Class
	Body  string
}

// Sender delivers one message. Address-based senders deliver to each
// address in to; the others ignore it.
type Sender interface {
	ID() string
	Send(ctx context.Context, msg Message, to []string) error
}

var (
	alarmsSent        = metrics.NewCounter(`zkmonitor_messages_sent_total{class="alarm"}`)
	notificationsSent = metrics.NewCounter(`zkmonitor_messages_sent_total{class="notification"}`)
	sendFailures      = metrics.NewCounter("zkmonitor_send_failures_total")
)

// SendTimeout bounds one delivery attempt.
const SendTimeout = 30 * time.Second

// Dispatcher fans messages out to the mail sender, with the address list of
// the message's class, and to every extra target. Sends run in the
// background; failures are logged and never retried.
type Dispatcher struct {
	Mail          Sender
	Alarms        []string
	Notifications []string
	Targets       []Sender

	wg sync.WaitGroup
}

func (d *Dispatcher) Alarm(body string) {
	alarmsSent.Inc()
	d.Send(Message{Class: Alarm, Body: body})
}

func (d *Dispatcher) Notify(body string) {
	notificationsSent.Inc()
	d.Send(Message{Class: Notification, Body: body})
}

// Send dispatches msg without waiting for delivery.
func (d *Dispatcher) Send(msg Message) {
	logger.Infof("Begin sending %s messages", msg.Class)
	if d.Mail != nil {
		to := d.Notifications
		if msg.Class == Alarm {
			to = d.Alarms
		}
		if len(to) > 0 {
			d.deliver(d.Mail, msg, to)
		}
	}
	for _, t := range d.Targets {
		d.deliver(t, msg, nil)
	}
}

func (d *Dispatcher) deliver(s Sender, msg Message, to []string) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), SendTimeout)
		defer cancel()
		if err := s.Send(ctx, msg, to); err != nil {
			sendFailures.Inc()
			logger.Errorf("%s: sending %s failed: %v", s.ID(), msg.Class, err)
		}
	}()
}

// Wait blocks until every dispatched send has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

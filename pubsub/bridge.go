package pubsub

import (
	"strings"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/VictoriaMetrics/metrics"
	"github.com/pkg/errors"

	"github.com/basement-tech/Monitoring-zimKnives/logger"
	"github.com/basement-tech/Monitoring-zimKnives/params"
)

var (
	messagesReceived  = metrics.NewCounter("zkmonitor_messages_received_total")
	messagesUnknown   = metrics.NewCounter("zkmonitor_messages_unknown_topic_total")
	coercionFailures  = metrics.NewCounter("zkmonitor_coercion_failures_total")
	reconnectAttempts = metrics.NewCounter("zkmonitor_reconnect_attempts_total")
)

// Bridge applies inbound broker messages to the registry and republishes
// registry state. It owns the broker connection.
type Bridge struct {
	registry *params.Registry
	status   atomic.Int32

	mu     sync.Mutex
	client Client
}

func NewBridge(registry *params.Registry) *Bridge {
	return &Bridge{registry: registry}
}

// Attach hands the broker connection to the bridge. The client must deliver
// its callbacks to this bridge.
func (b *Bridge) Attach(client Client) {
	b.mu.Lock()
	b.client = client
	b.mu.Unlock()
}

func (b *Bridge) conn() Client {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.client
}

func (b *Bridge) Status() Status {
	return Status(b.status.Load())
}

func (b *Bridge) OnConnect() {
	logger.Info("Broker connected")
	b.status.Store(int32(Connected))
}

func (b *Bridge) OnConnectionLost(err error) {
	logger.Warnf("Broker connection lost: %v", err)
	b.status.Store(int32(Errored))
}

// HandleMessage resolves the parameter for topic and applies payload to it.
// Failures are logged and leave the parameter value as it was.
func (b *Bridge) HandleMessage(topic string, payload []byte) {
	messagesReceived.Inc()
	p := b.registry.Lookup(topic)
	if p == nil {
		messagesUnknown.Inc()
		logger.Infof("Received data for unknown topic %s", topic)
		return
	}

	text, when := string(payload), ""
	if p.Structured {
		env, err := DecodeEnvelope(payload)
		if err != nil {
			// still an update: the engine sees the event with the old value
			p.MarkEvent()
			coercionFailures.Inc()
			logger.Errorf("%s: %v", p.Label, err)
			return
		}
		text, when = env.Value, env.Tstamp
	}

	v, err := p.Receive(text, when)
	if err != nil {
		coercionFailures.Inc()
		logger.Errorf("Received bad value on %s: %v", topic, err)
		return
	}
	logger.Debugf("Received %s = %s", p.Label, v)
}

// Connect makes the initial connection. A refused connection is not an
// error: the main loop retries through Check.
func (b *Bridge) Connect() error {
	c := b.conn()
	if c == nil {
		return errors.New("no broker client attached")
	}
	err := c.Connect()
	if err == nil {
		b.status.Store(int32(Connected))
		return nil
	}
	b.status.Store(int32(Errored))
	if IsRefused(err) {
		logger.Warnf("Broker refused connection, retrying: %v", err)
		return nil
	}
	return errors.Wrap(err, "broker connect")
}

// Check reconnects when the connection is not up. Called every tick.
func (b *Bridge) Check() {
	if b.Status() == Connected {
		return
	}
	c := b.conn()
	if c == nil {
		return
	}
	reconnectAttempts.Inc()
	logger.Debug("Broker not connected, reconnecting")
	err := c.Reconnect()
	switch {
	case err == nil:
		b.status.Store(int32(Connected))
		logger.Info("Broker reconnected")
	case IsRefused(err):
		logger.Debugf("Broker connection refused: %v", err)
	default:
		logger.Errorf("Broker reconnect: %v", err)
	}
}

// Subscribe implements params.Subscriber.
func (b *Bridge) Subscribe(topic string) error {
	c := b.conn()
	if c == nil {
		return errors.New("no broker client attached")
	}
	return c.Subscribe(topic)
}

// Publish implements params.Publisher. Publishing while disconnected is
// dropped silently, the next tick republishes.
func (b *Bridge) Publish(topic, payload string) error {
	c := b.conn()
	if c == nil || b.Status() != Connected {
		return nil
	}
	return c.Publish(topic, payload)
}

// Close disconnects cleanly.
func (b *Bridge) Close() {
	if c := b.conn(); c != nil {
		c.Disconnect()
	}
	b.status.Store(int32(Disconnected))
}

// IsRefused reports whether err is a refused TCP connection.
func IsRefused(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}

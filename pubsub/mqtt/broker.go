// Package mqtt is the paho-backed broker client.
package mqtt

import (
	"fmt"
	"os"
	"sync"
	"time"

	MQTT "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/basement-tech/Monitoring-zimKnives/pubsub"
)

// Options for connecting to the broker.
type Options struct {
	Broker   string
	ClientID string
	User     string
	Password string
	QoS      byte
}

// Client implements pubsub.Client. Reconnection is left to the caller;
// topics subscribed once are subscribed again on every reconnect.
type Client struct {
	broker string
	qos    byte
	client MQTT.Client

	mu     sync.Mutex
	topics []string
}

const waitTimeout = 5 * time.Second

func clientID(id string) string {
	if id != "" {
		return id
	}
	hostname, _ := os.Hostname()
	return fmt.Sprintf("zkmonitor/%s-%s", hostname, uuid.NewString()[:8])
}

// NewClient creates a client delivering callbacks to h. It does not connect.
func NewClient(o Options, h pubsub.Handler) *Client {
	opts := MQTT.NewClientOptions()
	opts.AddBroker(o.Broker)
	opts.SetClientID(clientID(o.ClientID))
	opts.SetUsername(o.User)
	opts.SetPassword(o.Password)
	opts.SetCleanSession(true)
	opts.SetAutoReconnect(false)
	opts.SetConnectRetry(false)
	opts.SetConnectTimeout(waitTimeout)
	opts.SetDefaultPublishHandler(func(_ MQTT.Client, msg MQTT.Message) {
		h.HandleMessage(msg.Topic(), msg.Payload())
	})
	c := &Client{broker: o.Broker, qos: o.QoS}
	opts.SetOnConnectHandler(func(client MQTT.Client) {
		for _, topic := range c.subscribed() {
			client.Subscribe(topic, c.qos, nil)
		}
		h.OnConnect()
	})
	opts.SetConnectionLostHandler(func(_ MQTT.Client, err error) {
		h.OnConnectionLost(err)
	})
	c.client = MQTT.NewClient(opts)
	return c
}

func (c *Client) ID() string {
	return "mqtt: " + c.broker
}

func (c *Client) Connect() error {
	t := c.client.Connect()
	if !t.WaitTimeout(waitTimeout) {
		return errors.Errorf("%s: connect timed out", c.broker)
	}
	return errors.Wrap(t.Error(), c.broker)
}

// Reconnect is Connect on a dropped session.
func (c *Client) Reconnect() error {
	if c.client.IsConnected() {
		return nil
	}
	return c.Connect()
}

func (c *Client) Disconnect() {
	c.client.Disconnect(250)
}

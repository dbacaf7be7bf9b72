// Package dummy is an in-memory broker client for tests.
package dummy

import (
	"sync"

	"github.com/basement-tech/Monitoring-zimKnives/pubsub"
)

// Client records what is sent to it. ConnectErr, when set, is returned by
// Connect and Reconnect.
type Client struct {
	Handler    pubsub.Handler
	ConnectErr error

	mu            sync.Mutex
	Connects      int
	Disconnects   int
	Subscriptions []string
	Published     []Message
}

type Message struct {
	Topic   string
	Payload string
}

func (c *Client) Connect() error {
	c.mu.Lock()
	c.Connects++
	err := c.ConnectErr
	c.mu.Unlock()
	if err == nil && c.Handler != nil {
		c.Handler.OnConnect()
	}
	return err
}

func (c *Client) Reconnect() error {
	return c.Connect()
}

func (c *Client) Disconnect() {
	c.mu.Lock()
	c.Disconnects++
	c.mu.Unlock()
}

func (c *Client) Subscribe(topic string) error {
	c.mu.Lock()
	c.Subscriptions = append(c.Subscriptions, topic)
	c.mu.Unlock()
	return nil
}

func (c *Client) Publish(topic string, payload string) error {
	c.mu.Lock()
	c.Published = append(c.Published, Message{topic, payload})
	c.mu.Unlock()
	return nil
}

// Deliver injects an inbound message as the broker would.
func (c *Client) Deliver(topic string, payload string) {
	c.Handler.HandleMessage(topic, []byte(payload))
}

// Drop simulates an unexpected disconnect.
func (c *Client) Drop(err error) {
	c.Handler.OnConnectionLost(err)
}

// Last returns the last payload published on topic.
func (c *Client) Last(topic string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := len(c.Published) - 1; i >= 0; i-- {
		if c.Published[i].Topic == topic {
			return c.Published[i].Payload, true
		}
	}
	return "", false
}

// Reset forgets published messages.
func (c *Client) Reset() {
	c.mu.Lock()
	c.Published = nil
	c.mu.Unlock()
}

package mqtt

import (
	"github.com/pkg/errors"
)

// Subscribe routes topic to the default publish handler. The topic is
// remembered even if the subscribe fails, and retried on reconnect.
func (c *Client) Subscribe(topic string) error {
	c.mu.Lock()
	c.topics = append(c.topics, topic)
	c.mu.Unlock()

	// nil = all messages go to the default handler
	t := c.client.Subscribe(topic, c.qos, nil)
	if !t.WaitTimeout(waitTimeout) {
		return errors.Errorf("subscribe %s: timed out", topic)
	}
	return errors.Wrapf(t.Error(), "subscribe %s", topic)
}

func (c *Client) subscribed() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.topics...)
}

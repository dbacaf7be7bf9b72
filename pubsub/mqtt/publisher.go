package mqtt

// Publish queues payload without waiting for delivery.
func (c *Client) Publish(topic string, payload string) error {
	t := c.client.Publish(topic, c.qos, false, payload)
	select {
	case <-t.Done():
		return t.Error()
	default:
		return nil
	}
}

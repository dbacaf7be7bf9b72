// Package pubsub bridges the broker connection and the parameter registry.
package pubsub

// Client is the broker connection owned by the Bridge.
type Client interface {
	Connect() error
	Reconnect() error
	Disconnect()
	Subscribe(topic string) error
	// Publish is fire-and-forget: it must not block the caller on network
	// I/O.
	Publish(topic string, payload string) error
}

// Handler receives callbacks from the client's own goroutine.
type Handler interface {
	HandleMessage(topic string, payload []byte)
	OnConnect()
	OnConnectionLost(err error)
}

// Status of the broker connection.
type Status int32

const (
	Disconnected Status = iota
	Connected
	// Errored is a disconnect the client did not ask for.
	Errored
)

func (s Status) String() string {
	switch s {
	case Connected:
		return "connected"
	case Errored:
		return "errored"
	}
	return "disconnected"
}

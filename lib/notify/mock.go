package notify

import (
	"context"
	"sync"
)

// Mock records messages instead of sending them.
type Mock struct {
	Name string
	Err  error

	mu   sync.Mutex
	sent []Sent
}

type Sent struct {
	Message
	To []string
}

func (m *Mock) ID() string {
	if m.Name == "" {
		return "mock"
	}
	return m.Name
}

func (m *Mock) Send(ctx context.Context, msg Message, to []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, Sent{msg, to})
	return m.Err
}

func (m *Mock) Sent() []Sent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Sent(nil), m.sent...)
}

// Bodies of messages of class c, in send order.
func (m *Mock) Bodies(c Class) []string {
	var bodies []string
	for _, s := range m.Sent() {
		if s.Class == c {
			bodies = append(bodies, s.Body)
		}
	}
	return bodies
}

package gpio

import (
	"sync"

	"github.com/pkg/errors"
)

// Mock is an in-memory driver. SetLevel on an edge pin runs its handler
// synchronously, as the interrupt would.
type Mock struct {
	mu       sync.Mutex
	levels   map[int]bool
	outputs  map[int]bool
	handlers map[int]func()
	Writes   map[int][]bool
	Closed   bool
}

func NewMock() *Mock {
	return &Mock{
		levels:   map[int]bool{},
		outputs:  map[int]bool{},
		handlers: map[int]func(){},
		Writes:   map[int][]bool{},
	}
}

func (m *Mock) Input(pin int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.levels[pin]; !ok {
		m.levels[pin] = false
	}
	return nil
}

func (m *Mock) Output(pin int, initial bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outputs[pin] = true
	m.levels[pin] = initial
	m.Writes[pin] = append(m.Writes[pin], initial)
	return nil
}

func (m *Mock) Read(pin int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	lvl, ok := m.levels[pin]
	if !ok {
		return false, errors.Wrapf(ErrUnknownPin, "pin %d", pin)
	}
	return lvl, nil
}

func (m *Mock) Write(pin int, lvl bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.outputs[pin] {
		return errors.Wrapf(ErrUnknownPin, "output pin %d", pin)
	}
	m.levels[pin] = lvl
	m.Writes[pin] = append(m.Writes[pin], lvl)
	return nil
}

func (m *Mock) OnEdge(pin int, fn func()) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.levels[pin]; !ok {
		m.levels[pin] = false
	}
	m.handlers[pin] = fn
	return nil
}

func (m *Mock) Close() error {
	m.mu.Lock()
	m.Closed = true
	m.mu.Unlock()
	return nil
}

// SetLevel drives an input pin from outside.
func (m *Mock) SetLevel(pin int, lvl bool) {
	m.mu.Lock()
	changed := m.levels[pin] != lvl
	m.levels[pin] = lvl
	fn := m.handlers[pin]
	m.mu.Unlock()
	if changed && fn != nil {
		fn()
	}
}

// Bounce reports an edge without a level change.
func (m *Mock) Bounce(pin int) {
	m.mu.Lock()
	fn := m.handlers[pin]
	m.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Level of a pin, inputs and outputs alike.
func (m *Mock) Level(pin int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.levels[pin]
}

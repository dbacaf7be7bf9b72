package params

import (
	"sync"

	"github.com/pkg/errors"
)

// Direction says whether a value is sourced locally and published, or
// received from the broker.
type Direction int

const (
	Publish Direction = iota + 1
	Subscribe
)

func (d Direction) String() string {
	if d == Subscribe {
		return "sub"
	}
	return "pub"
}

// IO is the physical binding of a parameter.
type IO int

const (
	Unbound IO = iota
	In
	Out
)

// Acquirer reads a locally hosted value that is not on a GPIO pin.
type Acquirer func() (Value, error)

// Parameter is a named, typed value bridging physical I/O and the broker.
// Descriptive fields are fixed at construction; value, previous, timestamp
// and event are guarded by the parameter's own lock.
type Parameter struct {
	Label     string
	Units     string
	Topic     string
	Direction Direction
	// Structured payloads carry {"<name>": {"value": .., "tstamp": ..}}.
	Structured bool
	Pin        int
	IO         IO
	// Interrupt marks an input maintained by an edge callback rather
	// than polled each tick.
	Interrupt bool
	Acquire   Acquirer

	kind Kind

	mu       sync.Mutex
	value    Value
	previous Value
	when     string
	event    bool
}

var ErrKindMismatch = errors.New("value kind does not match parameter")

// New creates a parameter whose kind is fixed by initial.
func New(label string, initial Value, units string, dir Direction, topic string) *Parameter {
	return &Parameter{
		Label:     label,
		Units:     units,
		Topic:     topic,
		Direction: dir,
		kind:      kindOf(initial),
		value:     initial,
		previous:  initial,
		when:      "00:00:00",
	}
}

// BindPin attaches the parameter to a GPIO pin.
func (p *Parameter) BindPin(pin int, io IO) *Parameter {
	p.Pin = pin
	p.IO = io
	return p
}

func kindOf(v Value) Kind {
	if v == nil {
		return KindNone
	}
	return v.Kind()
}

// Kind is fixed at construction.
func (p *Parameter) Kind() Kind {
	return p.kind
}

func (p *Parameter) Value() Value {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}

func (p *Parameter) Previous() Value {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.previous
}

func (p *Parameter) When() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.when
}

func (p *Parameter) SetWhen(when string) {
	p.mu.Lock()
	p.when = when
	p.mu.Unlock()
}

// Bool reports the value of a boolean parameter, false for any other kind.
func (p *Parameter) Bool() bool {
	b, _ := p.Value().(Bool)
	return bool(b)
}

// Set overwrites the value without touching previous.
func (p *Parameter) Set(v Value) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if v == nil || v.Kind() != p.kind {
		return errors.Wrapf(ErrKindMismatch, "%s is %s", p.Label, p.kind)
	}
	p.value = v
	return nil
}

// Update shifts the current value into previous and stores v.
func (p *Parameter) Update(v Value) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if v == nil || v.Kind() != p.kind {
		return errors.Wrapf(ErrKindMismatch, "%s is %s", p.Label, p.kind)
	}
	p.previous = p.value
	p.value = v
	return nil
}

// Change is Update applied only when v differs from the current value.
// Returns whether the value changed; an event is raised on change.
func (p *Parameter) Change(v Value) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if v == nil || v.Kind() != p.kind {
		return false, errors.Wrapf(ErrKindMismatch, "%s is %s", p.Label, p.kind)
	}
	if v == p.value {
		return false, nil
	}
	p.previous = p.value
	p.value = v
	p.event = true
	return true, nil
}

// Transition is Change without raising an event, for inputs the engine
// reads by level.
func (p *Parameter) Transition(v Value) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if v == nil || v.Kind() != p.kind {
		return false, errors.Wrapf(ErrKindMismatch, "%s is %s", p.Label, p.kind)
	}
	if v == p.value {
		return false, nil
	}
	p.previous = p.value
	p.value = v
	return true, nil
}

func (p *Parameter) Event() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.event
}

// MarkEvent flags an unconsumed update. Repeated marks collapse into one.
func (p *Parameter) MarkEvent() {
	p.mu.Lock()
	p.event = true
	p.mu.Unlock()
}

// ConsumeEvent clears the event flag, returning the current value and
// whether an event was pending.
func (p *Parameter) ConsumeEvent() (Value, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	pending := p.event
	p.event = false
	return p.value, pending
}

// Receive applies an inbound broker update as one critical section. The
// event is raised before coercion and stays raised if coercion fails, in
// which case value and previous are left untouched.
func (p *Parameter) Receive(text, when string) (Value, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.event = true
	if when != "" {
		p.when = when
	}
	v, err := Coerce(p.kind, text)
	if err != nil {
		return nil, errors.Wrap(err, p.Label)
	}
	p.previous = p.value
	p.value = v
	return v, nil
}

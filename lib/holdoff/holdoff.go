// Package holdoff provides a one-shot, cancelable delayed callback used to
// gate repeated alarm actions.
package holdoff

import (
	"sync/atomic"
	"time"
)

type State int32

const (
	Idle State = iota
	Armed
	Fired
	Cancelled
)

func (s State) String() string {
	switch s {
	case Armed:
		return "armed"
	case Fired:
		return "fired"
	case Cancelled:
		return "cancelled"
	}
	return "idle"
}

// Timer runs fn once after its interval unless cancelled first. Firing and
// cancelling race through a single compare-and-swap out of Armed, so exactly
// one of them takes effect. A Timer is never re-armed; start a new one.
type Timer struct {
	state    atomic.Int32
	interval time.Duration
	timer    *time.Timer
}

// Start arms a new timer. fn runs on its own goroutine and must be short.
func Start(interval time.Duration, fn func()) *Timer {
	t := &Timer{interval: interval}
	t.state.Store(int32(Armed))
	t.timer = time.AfterFunc(interval, func() {
		if t.state.CompareAndSwap(int32(Armed), int32(Fired)) {
			fn()
		}
	})
	return t
}

// Cancel disarms the timer. Reports false when it already fired or was
// cancelled. Safe on a nil Timer.
func (t *Timer) Cancel() bool {
	if t == nil {
		return false
	}
	if !t.state.CompareAndSwap(int32(Armed), int32(Cancelled)) {
		return false
	}
	t.timer.Stop()
	return true
}

func (t *Timer) State() State {
	if t == nil {
		return Idle
	}
	return State(t.state.Load())
}

// Active is true while the timer is armed.
func (t *Timer) Active() bool {
	return t.State() == Armed
}

func (t *Timer) Interval() time.Duration {
	return t.interval
}

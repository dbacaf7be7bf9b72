package gpio

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/stianeikeland/go-rpio/v4"
)

// PollInterval for edge detection on the rpio driver.
const PollInterval = 10 * time.Millisecond

// Rpio drives pins through /dev/gpiomem. The hardware edge-detect latch is
// polled from a goroutine per edge pin.
type Rpio struct {
	mu   sync.Mutex
	pins map[int]rpio.Mode
	stop chan struct{}
	wg   sync.WaitGroup
}

func OpenRpio() (*Rpio, error) {
	if err := rpio.Open(); err != nil {
		return nil, errors.Wrap(err, "couldn't open /dev/gpiomem")
	}
	return &Rpio{pins: map[int]rpio.Mode{}, stop: make(chan struct{})}, nil
}

func (d *Rpio) configured(pin int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.pins[pin]; !ok {
		return errors.Wrapf(ErrUnknownPin, "pin %d", pin)
	}
	return nil
}

func (d *Rpio) Input(pin int) error {
	p := rpio.Pin(pin)
	p.Input()
	p.PullOff()
	d.mu.Lock()
	d.pins[pin] = rpio.Input
	d.mu.Unlock()
	return nil
}

func (d *Rpio) Output(pin int, initial bool) error {
	p := rpio.Pin(pin)
	p.Output()
	p.Write(state(initial))
	d.mu.Lock()
	d.pins[pin] = rpio.Output
	d.mu.Unlock()
	return nil
}

func (d *Rpio) Read(pin int) (bool, error) {
	if err := d.configured(pin); err != nil {
		return false, err
	}
	return rpio.Pin(pin).Read() == rpio.High, nil
}

func (d *Rpio) Write(pin int, lvl bool) error {
	if err := d.configured(pin); err != nil {
		return err
	}
	rpio.Pin(pin).Write(state(lvl))
	return nil
}

func (d *Rpio) OnEdge(pin int, fn func()) error {
	if err := d.Input(pin); err != nil {
		return err
	}
	p := rpio.Pin(pin)
	p.Detect(rpio.AnyEdge)
	d.wg.Add(1)
	go d.edgeListener(p, fn)
	return nil
}

func (d *Rpio) edgeListener(p rpio.Pin, fn func()) {
	defer d.wg.Done()
	ticker := time.NewTicker(PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-d.stop:
			p.Detect(rpio.NoEdge)
			return
		case <-ticker.C:
			if p.EdgeDetected() {
				fn()
			}
		}
	}
}

func (d *Rpio) Close() error {
	close(d.stop)
	d.wg.Wait()
	return errors.Wrap(rpio.Close(), "close /dev/gpiomem")
}

func state(b bool) rpio.State {
	if b {
		return rpio.High
	}
	return rpio.Low
}

//go:build linux

package gpio

import (
	"sync"

	"github.com/pkg/errors"
	gpiod "github.com/warthog618/go-gpiocdev"
)

// Cdev drives pins through the Linux GPIO character device. Edges are
// delivered by the kernel, not polled.
type Cdev struct {
	mu    sync.Mutex
	chip  *gpiod.Chip
	lines map[int]*gpiod.Line
}

func OpenCdev(chip string) (*Cdev, error) {
	if chip == "" {
		chip = "gpiochip0"
	}
	c, err := gpiod.NewChip(chip)
	if err != nil {
		return nil, errors.Wrapf(err, "open chip %s", chip)
	}
	return &Cdev{chip: c, lines: map[int]*gpiod.Line{}}, nil
}

// request replaces any line already held for pin.
func (d *Cdev) request(pin int, opts ...gpiod.LineReqOption) error {
	for _, l := range d.release(pin) {
		l.Close()
	}
	l, err := d.chip.RequestLine(pin, opts...)
	if err != nil {
		return errors.Wrapf(err, "request pin %d", pin)
	}
	d.mu.Lock()
	d.lines[pin] = l
	d.mu.Unlock()
	return nil
}

// release forgets the lines held for pins, or every line when none are
// named, and hands them back for closing. Closing a line waits for its
// edge handler, which may be blocked on d.mu, so callers close them
// without the lock held.
func (d *Cdev) release(pins ...int) []*gpiod.Line {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []*gpiod.Line
	if len(pins) == 0 {
		for pin, l := range d.lines {
			out = append(out, l)
			delete(d.lines, pin)
		}
		return out
	}
	for _, pin := range pins {
		if l, ok := d.lines[pin]; ok {
			out = append(out, l)
			delete(d.lines, pin)
		}
	}
	return out
}

func (d *Cdev) line(pin int) (*gpiod.Line, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	l, ok := d.lines[pin]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownPin, "pin %d", pin)
	}
	return l, nil
}

func (d *Cdev) Input(pin int) error {
	return d.request(pin, gpiod.AsInput)
}

func (d *Cdev) Output(pin int, initial bool) error {
	return d.request(pin, gpiod.AsOutput(level(initial)))
}

func (d *Cdev) OnEdge(pin int, fn func()) error {
	return d.request(pin,
		gpiod.AsInput,
		gpiod.WithBothEdges,
		gpiod.WithEventHandler(func(gpiod.LineEvent) { fn() }))
}

func (d *Cdev) Read(pin int) (bool, error) {
	l, err := d.line(pin)
	if err != nil {
		return false, err
	}
	v, err := l.Value()
	if err != nil {
		return false, errors.Wrapf(err, "read pin %d", pin)
	}
	return v != 0, nil
}

func (d *Cdev) Write(pin int, lvl bool) error {
	l, err := d.line(pin)
	if err != nil {
		return err
	}
	return errors.Wrapf(l.SetValue(level(lvl)), "write pin %d", pin)
}

func (d *Cdev) Close() error {
	var first error
	for _, l := range d.release() {
		if err := l.Close(); err != nil && first == nil {
			first = errors.Wrapf(err, "close line %d", l.Offset())
		}
	}
	if d.chip == nil {
		return first
	}
	if err := d.chip.Close(); err != nil && first == nil {
		first = errors.Wrap(err, "close chip")
	}
	return first
}

func level(b bool) int {
	if b {
		return 1
	}
	return 0
}

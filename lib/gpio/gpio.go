// Package gpio drives the board's digital pins. Pins are BCM line offsets.
package gpio

import (
	"github.com/pkg/errors"
)

// Driver is the physical pin backend.
type Driver interface {
	Input(pin int) error
	// Output configures pin as an output driven to initial.
	Output(pin int, initial bool) error
	Read(pin int) (bool, error)
	Write(pin int, level bool) error
	// OnEdge configures pin as an input and calls fn on rising and falling
	// edges, from the driver's own goroutine. Edges may be reported more
	// than once: callers must read the level themselves.
	OnEdge(pin int, fn func()) error
	Close() error
}

var ErrUnknownPin = errors.New("pin not configured")

// Open returns the named driver: "cdev" (GPIO character device, chip names
// the device e.g. gpiochip0), "rpio" (/dev/gpiomem) or "mock".
func Open(driver, chip string) (Driver, error) {
	switch driver {
	case "cdev", "":
		d, err := OpenCdev(chip)
		if err != nil {
			return nil, err
		}
		return d, nil
	case "rpio":
		d, err := OpenRpio()
		if err != nil {
			return nil, err
		}
		return d, nil
	case "mock":
		return NewMock(), nil
	}
	return nil, errors.Errorf("unknown gpio driver: %s", driver)
}

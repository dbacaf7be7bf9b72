//go:build !linux

package gpio

import "github.com/pkg/errors"

// Cdev is only available on Linux.
type Cdev struct{ Mock }

func OpenCdev(chip string) (*Cdev, error) {
	return nil, errors.New("gpio character device requires linux")
}

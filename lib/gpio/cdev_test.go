//go:build linux

package gpio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	gpiod "github.com/warthog618/go-gpiocdev"
)

func TestCdevRelease(t *testing.T) {
	d := &Cdev{lines: map[int]*gpiod.Line{4: nil, 17: nil, 26: nil}}

	assert.Len(t, d.release(17), 1)
	assert.Len(t, d.release(17), 0)

	// every line handed back with the lock free, so an edge handler
	// reading a pin can finish while the lines are closed
	assert.Len(t, d.release(), 2)
	assert.Empty(t, d.lines)
	assert.True(t, d.mu.TryLock())
	d.mu.Unlock()

	_, err := d.Read(4)
	assert.ErrorIs(t, err, ErrUnknownPin)
}

func TestCdevCloseEmpty(t *testing.T) {
	d := &Cdev{lines: map[int]*gpiod.Line{}}
	assert.NoError(t, d.Close())
	assert.True(t, d.mu.TryLock())
}

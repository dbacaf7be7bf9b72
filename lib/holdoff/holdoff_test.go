package holdoff

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCancelBeforeFire(t *testing.T) {
	var fired atomic.Int32
	h := Start(50*time.Millisecond, func() { fired.Add(1) })
	assert.True(t, h.Active())
	assert.True(t, h.Cancel())
	assert.False(t, h.Cancel())
	assert.Equal(t, Cancelled, h.State())

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}

func TestFiresOnce(t *testing.T) {
	done := make(chan struct{}, 2)
	h := Start(10*time.Millisecond, func() { done <- struct{}{} })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}
	assert.Equal(t, Fired, h.State())
	assert.False(t, h.Active())
	assert.False(t, h.Cancel())

	select {
	case <-done:
		t.Fatal("timer fired twice")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestNilTimer(t *testing.T) {
	var h *Timer
	assert.False(t, h.Cancel())
	assert.False(t, h.Active())
	assert.Equal(t, Idle, h.State())
}

func TestFireCancelRace(t *testing.T) {
	for i := 0; i < 200; i++ {
		var fired atomic.Int32
		h := Start(time.Millisecond, func() { fired.Add(1) })
		var cancelled bool
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			time.Sleep(time.Millisecond)
			cancelled = h.Cancel()
		}()
		wg.Wait()
		time.Sleep(5 * time.Millisecond)
		if cancelled {
			assert.Equal(t, int32(0), fired.Load())
			assert.Equal(t, Cancelled, h.State())
		} else {
			assert.Equal(t, int32(1), fired.Load())
			assert.Equal(t, Fired, h.State())
		}
	}
}

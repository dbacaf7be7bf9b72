package params

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParameterUpdate(t *testing.T) {
	p := New("temp", Float(72.0), "F", Publish, "zk-env/temp")
	assert.Equal(t, "00:00:00", p.When())

	assert.NoError(t, p.Update(Float(73.5)))
	assert.Equal(t, Float(73.5), p.Value())
	assert.Equal(t, Float(72.0), p.Previous())
	assert.False(t, p.Event())

	assert.ErrorIs(t, p.Update(Int(1)), ErrKindMismatch)
	assert.ErrorIs(t, p.Set(nil), ErrKindMismatch)
	assert.Equal(t, Float(73.5), p.Value())
}

func TestParameterSetKeepsPrevious(t *testing.T) {
	p := New("light", Bool(false), "", Publish, "zk-env/light")
	assert.NoError(t, p.Set(Bool(true)))
	assert.Equal(t, Bool(true), p.Value())
	assert.Equal(t, Bool(false), p.Previous())
}

func TestParameterChange(t *testing.T) {
	p := New("keysw", Bool(false), "", Publish, "zk-env/keysw")

	changed, err := p.Change(Bool(false))
	assert.NoError(t, err)
	assert.False(t, changed)
	assert.False(t, p.Event())

	changed, err = p.Change(Bool(true))
	assert.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, p.Event())
	assert.Equal(t, Bool(false), p.Previous())
}

func TestTransition(t *testing.T) {
	p := New("motion", Bool(false), "", Publish, "zk-env/motion")
	changed, err := p.Transition(Bool(true))
	assert.NoError(t, err)
	assert.True(t, changed)
	assert.False(t, p.Event())

	changed, _ = p.Transition(Bool(true))
	assert.False(t, changed)
	assert.Equal(t, Bool(false), p.Previous())
}

func TestConsumeEvent(t *testing.T) {
	p := New("motion", Bool(false), "", Publish, "zk-env/motion")
	p.MarkEvent()
	p.MarkEvent()

	v, pending := p.ConsumeEvent()
	assert.True(t, pending)
	assert.Equal(t, Bool(false), v)

	_, pending = p.ConsumeEvent()
	assert.False(t, pending)
}

func TestReceive(t *testing.T) {
	p := New("o_light", Bool(false), "", Subscribe, "zk-env/o_light")

	v, err := p.Receive("True", "")
	assert.NoError(t, err)
	assert.Equal(t, Bool(true), v)
	assert.True(t, p.Bool())
	assert.Equal(t, "00:00:00", p.When())

	p.ConsumeEvent()
	_, err = p.Receive("yes", "12:00:00")
	assert.Error(t, err)
	// failed coercion keeps the value but still raises the event
	assert.True(t, p.Bool())
	assert.True(t, p.Event())
	assert.Equal(t, "12:00:00", p.When())
}

func TestConcurrentReceive(t *testing.T) {
	p := New("temp", Float(0), "F", Subscribe, "zk-env/temp")
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = p.Receive("1.5", "")
		}()
		go func() {
			defer wg.Done()
			p.ConsumeEvent()
		}()
	}
	wg.Wait()
	assert.Equal(t, Float(1.5), p.Value())
}

func TestKindDuringReceive(t *testing.T) {
	p := New("temp", Float(0), "F", Subscribe, "zk-env/temp")
	r, err := NewRegistry([]*Parameter{p}...)
	require.NoError(t, err)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = p.Receive("2.5", "12:00:00")
		}()
		go func() {
			defer wg.Done()
			assert.Equal(t, KindFloat, p.Kind())
			assert.Equal(t, KindFloat, r.Kind("zk-env/temp"))
		}()
	}
	wg.Wait()
	assert.ErrorIs(t, p.Set(Int(1)), ErrKindMismatch)
}

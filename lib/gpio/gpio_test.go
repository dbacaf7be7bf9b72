package gpio

import (
	"testing"

	"github.com/stianeikeland/go-rpio/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterfaces(t *testing.T) {
	var _ Driver = (*Mock)(nil)
	var _ Driver = (*Rpio)(nil)
	var _ Driver = (*Cdev)(nil)
}

func TestRpioConfigured(t *testing.T) {
	d := &Rpio{pins: map[int]rpio.Mode{26: rpio.Output, 4: rpio.Input}}
	assert.NoError(t, d.configured(26))
	assert.NoError(t, d.configured(4))
	_, err := d.Read(17)
	assert.ErrorIs(t, err, ErrUnknownPin)
	assert.ErrorIs(t, d.Write(17, true), ErrUnknownPin)
}

func TestOpenUnknown(t *testing.T) {
	_, err := Open("parallel-port", "")
	assert.Error(t, err)

	d, err := Open("mock", "")
	require.NoError(t, err)
	assert.IsType(t, &Mock{}, d)
}

func TestMockOutput(t *testing.T) {
	m := NewMock()
	assert.ErrorIs(t, m.Write(26, true), ErrUnknownPin)

	require.NoError(t, m.Output(26, false))
	require.NoError(t, m.Write(26, true))
	assert.True(t, m.Level(26))
	assert.Equal(t, []bool{false, true}, m.Writes[26])
}

func TestMockInput(t *testing.T) {
	m := NewMock()
	_, err := m.Read(5)
	assert.ErrorIs(t, err, ErrUnknownPin)

	require.NoError(t, m.Input(5))
	m.SetLevel(5, true)
	lvl, err := m.Read(5)
	require.NoError(t, err)
	assert.True(t, lvl)
}

func TestMockEdges(t *testing.T) {
	m := NewMock()
	calls := 0
	require.NoError(t, m.OnEdge(4, func() { calls++ }))
	m.SetLevel(4, true)
	m.SetLevel(4, true)
	m.Bounce(4)
	m.SetLevel(4, false)
	assert.Equal(t, 3, calls)
	assert.NoError(t, m.Close())
	assert.True(t, m.Closed)
}

package pubsub

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ExampleDecodeEnvelope() {
	env, _ := DecodeEnvelope([]byte(`{"temp": {"value": 72.50, "location": "bench", "tstamp": "12:00:05"}}`))
	fmt.Println(env.Name, env.Value, env.Location, env.Tstamp)
	// Output:
	// temp 72.50 bench 12:00:05
}

func TestDecodeEnvelopeScalars(t *testing.T) {
	env, err := DecodeEnvelope([]byte(`{"o_light": {"value": true, "tstamp": "t"}}`))
	assert.NoError(t, err)
	assert.Equal(t, "True", env.Value)

	env, err = DecodeEnvelope([]byte(`{"o_light": {"value": false, "tstamp": ""}}`))
	assert.NoError(t, err)
	assert.Equal(t, "False", env.Value)
	assert.Equal(t, "", env.Tstamp)

	env, err = DecodeEnvelope([]byte(`{"note": {"value": "door \"open\"", "tstamp": "t"}}`))
	assert.NoError(t, err)
	assert.Equal(t, `door "open"`, env.Value)

	env, err = DecodeEnvelope([]byte(`{"count": {"value": -3, "tstamp": "t"}}`))
	assert.NoError(t, err)
	assert.Equal(t, "-3", env.Value)
}

func TestDecodeEnvelopeBad(t *testing.T) {
	for _, payload := range []string{
		`{`,
		`72.5`,
		`{}`,
		`{"a": {"value": 1}, "b": {"value": 2}}`,
		`{"a": 1}`,
		`{"a": {"tstamp": "t"}}`,
		`{"a": {"value": null, "tstamp": "t"}}`,
		`{"a": {"value": {"x": 1}, "tstamp": "t"}}`,
		`{"a": {"value": [1], "tstamp": "t"}}`,
		`{"a": {"value": 5}}`,
		`{"a": {"value": 5, "tstamp": null}}`,
		`{"a": {"value": true, "location": "bench"}}`,
	} {
		_, err := DecodeEnvelope([]byte(payload))
		assert.ErrorIs(t, err, ErrEnvelope, payload)
	}
}

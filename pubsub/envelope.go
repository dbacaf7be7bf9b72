package pubsub

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

// Envelope is the structured payload sent by remote sensor units:
//
//	{"temp": {"value": 72.5, "location": "bench", "tstamp": "12:00:05"}}
type Envelope struct {
	Name     string
	Value    string
	Location string
	Tstamp   string
}

type envelopeBody struct {
	Value    json.RawMessage `json:"value"`
	Location string          `json:"location"`
	Tstamp   *string         `json:"tstamp"`
}

var ErrEnvelope = errors.New("malformed envelope")

// DecodeEnvelope extracts the value and timestamp from the single object of
// a structured payload. Numbers keep their literal text, JSON booleans
// become "True"/"False".
func DecodeEnvelope(payload []byte) (*Envelope, error) {
	var outer map[string]json.RawMessage
	if err := json.Unmarshal(payload, &outer); err != nil {
		return nil, errors.Wrap(ErrEnvelope, err.Error())
	}
	if len(outer) != 1 {
		return nil, errors.Wrapf(ErrEnvelope, "expected one object, got %d", len(outer))
	}
	env := &Envelope{}
	var raw json.RawMessage
	for env.Name, raw = range outer {
	}
	var body envelopeBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, errors.Wrapf(ErrEnvelope, "%s: %v", env.Name, err)
	}
	if body.Tstamp == nil {
		return nil, errors.Wrapf(ErrEnvelope, "%s: missing tstamp", env.Name)
	}
	value, err := scalarText(body.Value)
	if err != nil {
		return nil, errors.Wrapf(ErrEnvelope, "%s: %v", env.Name, err)
	}
	env.Value = value
	env.Location = body.Location
	env.Tstamp = *body.Tstamp
	return env, nil
}

func scalarText(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", errors.New("missing value")
	}
	switch raw[0] {
	case '"':
		var s string
		err := json.Unmarshal(raw, &s)
		return s, err
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return "", err
		}
		if b {
			return "True", nil
		}
		return "False", nil
	case '{', '[':
		return "", errors.New("value is not a scalar")
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", err
	}
	return n.String(), nil
}

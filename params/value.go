package params

import (
	"strconv"

	"github.com/pkg/errors"
)

// Kind is the fixed type tag of a parameter's value.
type Kind int

const (
	KindNone Kind = iota
	KindBool
	KindFloat
	KindInt
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindFloat:
		return "float"
	case KindInt:
		return "int"
	case KindText:
		return "text"
	}
	return "none"
}

// Value is one of Bool, Float, Int or Text.
type Value interface {
	Kind() Kind
	// String is the wire representation published to the broker.
	String() string
	isValue()
}

type Bool bool
type Float float64
type Int int64
type Text string

func (Bool) Kind() Kind  { return KindBool }
func (Float) Kind() Kind { return KindFloat }
func (Int) Kind() Kind   { return KindInt }
func (Text) Kind() Kind  { return KindText }

func (v Bool) String() string {
	if v {
		return "True"
	}
	return "False"
}

func (v Float) String() string { return strconv.FormatFloat(float64(v), 'f', -1, 64) }
func (v Int) String() string   { return strconv.FormatInt(int64(v), 10) }
func (v Text) String() string  { return string(v) }

func (Bool) isValue()  {}
func (Float) isValue() {}
func (Int) isValue()   {}
func (Text) isValue()  {}

var ErrBadBool = errors.New(`boolean must be "True" or "False"`)

// Coerce converts inbound text to a value of the given kind.
func Coerce(kind Kind, text string) (Value, error) {
	switch kind {
	case KindBool:
		switch text {
		case "True":
			return Bool(true), nil
		case "False":
			return Bool(false), nil
		}
		return nil, errors.Wrapf(ErrBadBool, "got %q", text)
	case KindFloat:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "parse float %q", text)
		}
		return Float(f), nil
	case KindInt:
		i, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "parse int %q", text)
		}
		return Int(i), nil
	case KindText:
		return Text(text), nil
	}
	return nil, errors.Errorf("cannot coerce to kind %s", kind)
}

// Number returns a numeric view of v for threshold comparisons.
func Number(v Value) (float64, bool) {
	switch v := v.(type) {
	case Float:
		return float64(v), true
	case Int:
		return float64(v), true
	}
	return 0, false
}

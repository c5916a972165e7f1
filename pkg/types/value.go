package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Kind identifies which variant a Value holds.
type Kind int

// Value kinds. KindNull doubles as the absent sentinel.
const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindDate
)

// DateLayout is the layout used to stringify KindDate values.
const DateLayout = "2006-01-02"

var kindNames = map[Kind]string{
	KindNull:   "null",
	KindString: "string",
	KindNumber: "number",
	KindBool:   "bool",
	KindDate:   "date",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Value is a closed variant over the field types a Record can hold:
// null, string, number, bool and date. The zero Value is null.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	t    time.Time
}

// Null is the absent/null value.
var Null = Value{}

// NewString returns a string value.
func NewString(s string) Value {
	return Value{kind: KindString, str: s}
}

// NewNumber returns a numeric value.
func NewNumber(n float64) Value {
	return Value{kind: KindNumber, num: n}
}

// NewInt returns a numeric value from an integer.
func NewInt(n int64) Value {
	return Value{kind: KindNumber, num: float64(n)}
}

// NewBool returns a boolean value.
func NewBool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// NewDate returns a date value truncated to the calendar day in UTC.
func NewDate(t time.Time) Value {
	y, m, d := t.Date()
	return Value{kind: KindDate, t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null or absent.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Number returns the numeric payload and whether v is a number.
func (v Value) Number() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// Bool returns the boolean payload and whether v is a bool.
func (v Value) Bool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// Time returns the date payload and whether v is a date.
func (v Value) Time() (time.Time, bool) {
	return v.t, v.kind == KindDate
}

// String returns the canonical text form of v. It is what search, filters
// and string comparison operate on. Null stringifies to "".
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindDate:
		return v.t.Format(DateLayout)
	default:
		return ""
	}
}

// Equal reports whether two values hold the same variant and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindNumber:
		return v.num == o.num
	case KindBool:
		return v.b == o.b
	case KindDate:
		return v.t.Equal(o.t)
	default:
		return true
	}
}

// MarshalJSON encodes the variant as the matching JSON scalar. Dates are
// encoded as strings in DateLayout.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.b)
	case KindDate:
		return json.Marshal(v.t.Format(DateLayout))
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes a JSON scalar into the matching variant. Arrays and
// objects are rejected with ErrInvalidData.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	val, err := FromAny(raw)
	if err != nil {
		return err
	}
	*v = val
	return nil
}

// FromAny converts a decoded JSON or YAML scalar into a Value.
func FromAny(raw any) (Value, error) {
	switch x := raw.(type) {
	case nil:
		return Null, nil
	case string:
		return NewString(x), nil
	case float64:
		return NewNumber(x), nil
	case float32:
		return NewNumber(float64(x)), nil
	case int:
		return NewInt(int64(x)), nil
	case int64:
		return NewInt(x), nil
	case bool:
		return NewBool(x), nil
	case time.Time:
		return NewDate(x), nil
	default:
		return Null, fmt.Errorf("%w: unsupported field type %T", ErrInvalidData, raw)
	}
}

// ParseValue interprets command-line text. Valid JSON scalars keep their
// type (numbers, booleans, quoted strings, null); anything else is taken as
// a raw string.
func ParseValue(text string) Value {
	var raw any
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return NewString(text)
	}
	v, err := FromAny(raw)
	if err != nil {
		return NewString(text)
	}
	return v
}

package sqlutil

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Kind identifies which variant a Value holds.
type Kind uint8

// Supported value kinds.
const (
	KindNull Kind = iota
	KindInt
	KindFloat
	KindString
	KindBool
	KindBytes
	KindTime
	KindUUID
)

var kindNames = [...]string{
	KindNull:   "null",
	KindInt:    "int",
	KindFloat:  "float",
	KindString: "string",
	KindBool:   "bool",
	KindBytes:  "bytes",
	KindTime:   "time",
	KindUUID:   "uuid",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Value is a positional statement parameter. It holds exactly one of the
// scalar kinds supported by database drivers and is built with one of the
// constructors below. The zero Value is SQL NULL.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
	b    bool
	bs   []byte
	t    time.Time
	u    uuid.UUID
}

// Null returns a SQL NULL value.
func Null() Value { return Value{kind: KindNull} }

// Int returns an integer value.
func Int(v int64) Value { return Value{kind: KindInt, i: v} }

// Float returns a floating point value.
func Float(v float64) Value { return Value{kind: KindFloat, f: v} }

// String returns a string value.
func String(v string) Value { return Value{kind: KindString, s: v} }

// Bool returns a boolean value.
func Bool(v bool) Value { return Value{kind: KindBool, b: v} }

// Bytes returns a byte sequence value. A nil slice is bound as NULL.
func Bytes(v []byte) Value {
	if v == nil {
		return Null()
	}
	return Value{kind: KindBytes, bs: v}
}

// Time returns a date/time value.
func Time(v time.Time) Value { return Value{kind: KindTime, t: v} }

// UUID returns a UUID value. How it reaches the driver depends on the Binder dialect.
func UUID(v uuid.UUID) Value { return Value{kind: KindUUID, u: v} }

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is SQL NULL.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Value implements driver.Valuer, so a Value can also be passed directly to
// database/sql calls. UUIDs are rendered in canonical string form.
func (v Value) Value() (driver.Value, error) {
	switch v.kind {
	case KindNull:
		return nil, nil
	case KindInt:
		return v.i, nil
	case KindFloat:
		return v.f, nil
	case KindString:
		return v.s, nil
	case KindBool:
		return v.b, nil
	case KindBytes:
		return v.bs, nil
	case KindTime:
		return v.t, nil
	case KindUUID:
		return v.u.String(), nil
	default:
		return nil, fmt.Errorf("unsupported value kind %s", v.kind)
	}
}

func (v Value) GoString() string {
	dv, err := v.Value()
	if err != nil {
		return fmt.Sprintf("sqlutil.Value{%s}", v.kind)
	}
	return fmt.Sprintf("sqlutil.Value{%s: %v}", v.kind, dv)
}

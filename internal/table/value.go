package table

import (
	"strconv"
	"time"
)

// Kind identifies the type of a scalar cell value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindDate
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	default:
		return "null"
	}
}

// Value is a single scalar cell: a string, a number, a date, or Null.
// The zero Value is Null.
type Value struct {
	kind Kind
	str  string
	num  float64
	date time.Time
}

// Null returns the missing-value marker.
func Null() Value { return Value{} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number returns a numeric value.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// Date returns a date value.
func Date(t time.Time) Value { return Value{kind: KindDate, date: t} }

// Kind reports the value's kind.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is the missing marker.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Time returns the date and true when the value is a date.
func (v Value) Time() (time.Time, bool) {
	return v.date, v.kind == KindDate
}

// Float returns the number and true when the value is numeric.
func (v Value) Float() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// String returns the canonical string form of the value.
//   - Null   -> ""
//   - Number -> shortest decimal, no exponent ("20250715", "1.5")
//   - Date   -> "2006-01-02", or "2006-01-02 15:04:05" when a time part is set
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindDate:
		if v.date.Hour() == 0 && v.date.Minute() == 0 && v.date.Second() == 0 {
			return v.date.Format("2006-01-02")
		}
		return v.date.Format("2006-01-02 15:04:05")
	default:
		return ""
	}
}

// MarshalYAML renders the value as its canonical string, or null.
func (v Value) MarshalYAML() (any, error) {
	switch v.kind {
	case KindNull:
		return nil, nil
	case KindNumber:
		return v.num, nil
	default:
		return v.String(), nil
	}
}

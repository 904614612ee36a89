package lang

//go:generate go tool stringer --linecomment --type Kind --output value_string.go

import (
	"strconv"
	"time"

	"github.com/goodsign/monday"

	"github.com/ardnew/fddl/site"
)

// Kind identifies the variant held by a [Value].
type Kind int

const (
	KindNull     Kind = iota // null
	KindString               // string
	KindInt                  // int
	KindBool                 // bool
	KindSequence             // sequence
	KindMapping              // mapping
	KindDate                 // date
)

// Value is any datum the template language can manipulate.
//
// The zero Value is null.
type Value struct {
	kind Kind
	str  string
	num  int
	seq  []Value
	dict map[string]Value
	date time.Time
}

// Null returns the null value.
func Null() Value { return Value{} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Int returns an integer value.
func Int(n int) Value { return Value{kind: KindInt, num: n} }

// Bool returns a boolean value.
func Bool(b bool) Value {
	v := Value{kind: KindBool}
	if b {
		v.num = 1
	}

	return v
}

// Sequence returns an ordered sequence of values.
func Sequence(items ...Value) Value { return Value{kind: KindSequence, seq: items} }

// Strings returns a sequence of string values.
func Strings(items []string) Value {
	seq := make([]Value, len(items))
	for i, s := range items {
		seq[i] = String(s)
	}

	return Sequence(seq...)
}

// Mapping returns a keyed mapping of values.
func Mapping(m map[string]Value) Value { return Value{kind: KindMapping, dict: m} }

// Date returns a date value.
func Date(t time.Time) Value { return Value{kind: KindDate, date: t} }

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// String returns the canonical text form of v.
// Collections are never interpolated and render as the empty string.
func (v Value) String() string { return v.text(site.DefaultLocale) }

func (v Value) text(locale monday.Locale) string {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return strconv.Itoa(v.num)
	case KindBool:
		return strconv.FormatBool(v.num != 0)
	case KindDate:
		return site.FormatDate(v.date, locale)
	default:
		return ""
	}
}

// Truthy reports whether v satisfies a conditional block.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindString:
		return v.str != ""
	case KindInt, KindBool:
		return v.num != 0
	case KindSequence:
		return len(v.seq) > 0
	case KindMapping:
		return len(v.dict) > 0
	case KindDate:
		return true
	default:
		return false
	}
}

// Items returns the elements of a sequence. The second result is false if v is
// not a sequence.
func (v Value) Items() ([]Value, bool) {
	if v.kind != KindSequence {
		return nil, false
	}

	return v.seq, true
}

// Lookup returns the value stored under key in a mapping. The second result is
// false if v is not a mapping or key is absent.
func (v Value) Lookup(key string) (Value, bool) {
	if v.kind != KindMapping {
		return Value{}, false
	}

	val, ok := v.dict[key]

	return val, ok
}

// Time returns the instant held by a date value.
func (v Value) Time() (time.Time, bool) {
	if v.kind != KindDate {
		return time.Time{}, false
	}

	return v.date, true
}

// Native converts v to plain Go values: string, int, bool, []any,
// map[string]any, time.Time or nil.
func (v Value) Native() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return v.num
	case KindBool:
		return v.num != 0
	case KindDate:
		return v.date
	case KindSequence:
		out := make([]any, len(v.seq))
		for i, item := range v.seq {
			out[i] = item.Native()
		}

		return out
	case KindMapping:
		out := make(map[string]any, len(v.dict))
		for k, item := range v.dict {
			out[k] = item.Native()
		}

		return out
	default:
		return nil
	}
}

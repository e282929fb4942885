package toon

import (
	"math"
)

// Kind identifies the variant held by a [Value].
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindSequence
	KindMapping
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

type numberKind uint8

const (
	numInt numberKind = iota
	numUint
	numFloat
)

// Value is the JSON-shaped data model the encoder operates on. The zero
// Value is null. Values are immutable once built.
type Value struct {
	kind Kind

	boolVal bool
	numKind numberKind
	intVal  int64
	uintVal uint64
	fltVal  float64
	strVal  string

	items  []Value
	fields []Field
}

// Field is one key/value pair of a mapping.
type Field struct {
	Key   string
	Value Value
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, boolVal: b} }

// Int returns an integral number.
func Int(i int64) Value { return Value{kind: KindNumber, numKind: numInt, intVal: i} }

// Uint returns an integral number that may exceed the int64 range.
func Uint(u uint64) Value { return Value{kind: KindNumber, numKind: numUint, uintVal: u} }

// Float returns a number. NaN and infinities become null and negative zero
// becomes the integer 0, so a number in the model is always finite.
func Float(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Null()
	}
	if f == 0 {
		return Int(0)
	}
	return Value{kind: KindNumber, numKind: numFloat, fltVal: f}
}

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, strVal: s} }

// Sequence returns an ordered list of values.
func Sequence(items ...Value) Value {
	return Value{kind: KindSequence, items: items}
}

// Mapping returns an ordered mapping. Keys must be unique; duplicates are
// not detected.
func Mapping(fields ...Field) Value {
	return Value{kind: KindMapping, fields: fields}
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsScalar reports whether v is null, a boolean, a number, or a string.
func (v Value) IsScalar() bool {
	switch v.kind {
	case KindNull, KindBool, KindNumber, KindString:
		return true
	default:
		return false
	}
}

// Bool returns the boolean held by v, or false.
func (v Value) Bool() bool { return v.boolVal }

// Str returns the string held by v, or "".
func (v Value) Str() string { return v.strVal }

// Float64 returns the number held by v as a float64, or 0.
func (v Value) Float64() float64 {
	if v.kind != KindNumber {
		return 0
	}
	switch v.numKind {
	case numInt:
		return float64(v.intVal)
	case numUint:
		return float64(v.uintVal)
	default:
		return v.fltVal
	}
}

// Items returns the elements of a sequence. The slice must not be modified.
func (v Value) Items() []Value { return v.items }

// Fields returns the pairs of a mapping in order. The slice must not be
// modified.
func (v Value) Fields() []Field { return v.fields }

// Len returns the number of elements of a sequence or pairs of a mapping.
func (v Value) Len() int {
	switch v.kind {
	case KindSequence:
		return len(v.items)
	case KindMapping:
		return len(v.fields)
	default:
		return 0
	}
}

// Get returns the value stored under key in a mapping.
func (v Value) Get(key string) (Value, bool) {
	for _, f := range v.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

// keys returns the mapping keys in order.
func (v Value) keys() []string {
	out := make([]string, len(v.fields))
	for i, f := range v.fields {
		out[i] = f.Key
	}
	return out
}

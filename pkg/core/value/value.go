package value

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrIndexOutOfRange = errors.New("value: index out of range")

// Type represents the tag in the Value tagged union.
type Type uint8

const (
	TypeInt Type = iota
	TypeText
	TypeArray
)

func (t Type) String() string {
	switch t {
	case TypeInt:
		return "integer"
	case TypeText:
		return "string"
	case TypeArray:
		return "array"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// Value is a tagged union over Int, Text and *Array.
// The interface is sealed: only this package provides variants.
type Value interface {
	Type() Type
	String() string
	sealed()
}

// Int is a 64-bit integer value.
type Int int64

// Text is a string value.
type Text string

// Array is a fixed-length sequence of values. Elements are mutable, the length is not.
type Array struct {
	elems []Value
}

func (Int) Type() Type    { return TypeInt }
func (Text) Type() Type   { return TypeText }
func (*Array) Type() Type { return TypeArray }

func (Int) sealed()    {}
func (Text) sealed()   {}
func (*Array) sealed() {}

func (v Int) String() string  { return strconv.FormatInt(int64(v), 10) }
func (v Text) String() string { return string(v) }

// String renders the array as "[e0, e1, ...]".
func (a *Array) String() string {
	return a.format(0)
}

func (a *Array) format(depth int) string {
	if depth > 10 {
		return "[...]"
	}
	parts := make([]string, len(a.elems))
	for i, el := range a.elems {
		if nested, ok := el.(*Array); ok {
			parts[i] = nested.format(depth + 1)
			continue
		}
		parts[i] = el.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// NewArray allocates an array of n elements, each Int(0).
// A negative n yields an empty array.
func NewArray(n int) *Array {
	if n < 0 {
		n = 0
	}
	elems := make([]Value, n)
	for i := range elems {
		elems[i] = Int(0)
	}
	return &Array{elems: elems}
}

// ArrayOf builds an array holding the given elements.
func ArrayOf(elems ...Value) *Array {
	cp := make([]Value, len(elems))
	copy(cp, elems)
	return &Array{elems: cp}
}

// Len returns the fixed length of the array.
func (a *Array) Len() int {
	return len(a.elems)
}

// InBounds reports whether i is a valid element index.
func (a *Array) InBounds(i int64) bool {
	return i >= 0 && i < int64(len(a.elems))
}

// At returns the element at index i.
func (a *Array) At(i int64) (Value, error) {
	if !a.InBounds(i) {
		return nil, fmt.Errorf("%w: %d (length %d)", ErrIndexOutOfRange, i, len(a.elems))
	}
	return a.elems[i], nil
}

// Set overwrites the element at index i.
func (a *Array) Set(i int64, v Value) error {
	if !a.InBounds(i) {
		return fmt.Errorf("%w: %d (length %d)", ErrIndexOutOfRange, i, len(a.elems))
	}
	a.elems[i] = v
	return nil
}

// Elements returns a copy of the array's elements.
func (a *Array) Elements() []Value {
	cp := make([]Value, len(a.elems))
	copy(cp, a.elems)
	return cp
}

// Zero is the default produced by every recovered lookup failure.
func Zero() Value {
	return Int(0)
}

// Coerce converts a raw input line into a value: an integer when the
// trimmed line parses as one, the raw text otherwise.
func Coerce(line string) Value {
	if n, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64); err == nil {
		return Int(n)
	}
	return Text(line)
}

// AsInt returns the integer held by v, if any.
func AsInt(v Value) (int64, bool) {
	switch x := v.(type) {
	case Int:
		return int64(x), true
	case Text, *Array:
		return 0, false
	default:
		panic(fmt.Sprintf("value: unhandled variant %T", v))
	}
}

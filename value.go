package main

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Value is any runtime value: Char, Integer, Float, Str, Array, or *Block.
type Value interface {
	fmt.Stringer
	fmt.GoStringer
	value()
}

// Char is a single code point.
type Char rune

// Integer is a signed 64-bit integer.
type Integer int64

// Float is a 64-bit float.
type Float float64

// Str is immutable text.
type Str string

// Array is an ordered, heterogeneous sequence of values.
//
// Arrays are never modified in place once they have become a Value: any
// operation that changes one builds a new backing slice. That lets stacks,
// variable slots, and nested arrays share storage without copying.
type Array []Value

// Block is a stored list of operators. Blocks are shared by pointer; running
// one never re-parses its source.
type Block struct {
	ops []Operator
}

func (Char) value()    {}
func (Integer) value() {}
func (Float) value()   {}
func (Str) value()     {}
func (Array) value()   {}
func (*Block) value()  {}

func boolValue(b bool) Value {
	if b {
		return Integer(1)
	}
	return Integer(0)
}

func truthy(v Value) bool {
	switch v := v.(type) {
	case Char:
		return v != 0
	case Integer:
		return v != 0
	case Float:
		return v != 0
	case Str:
		return len(v) != 0
	case Array:
		return len(v) != 0
	default:
		return true
	}
}

// Display forms, as printed by the p operator and shown for final stacks.

func (c Char) String() string    { return "c(" + string(c) + ")" }
func (i Integer) String() string { return "i(" + strconv.FormatInt(int64(i), 10) + ")" }
func (f Float) String() string   { return "f(" + formatFloat(float64(f)) + ")" }
func (s Str) String() string     { return "s(" + string(s) + ")" }

func (a Array) String() string {
	var sb strings.Builder
	sb.WriteString("a([")
	for i, v := range a {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(v.String())
	}
	sb.WriteString("])")
	return sb.String()
}

func (b *Block) String() string {
	var sb strings.Builder
	sb.WriteString("b([")
	for i, op := range b.ops {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(op.token)
	}
	sb.WriteString("])")
	return sb.String()
}

// Debug forms, used by error messages and the Array to Str cast.

func (c Char) GoString() string    { return "Char(" + strconv.QuoteRune(rune(c)) + ")" }
func (i Integer) GoString() string { return "Integer(" + strconv.FormatInt(int64(i), 10) + ")" }
func (f Float) GoString() string   { return "Float(" + formatFloat(float64(f)) + ")" }
func (s Str) GoString() string     { return "Str(" + strconv.Quote(string(s)) + ")" }

func (a Array) GoString() string {
	var sb strings.Builder
	sb.WriteString("Array(")
	writeDebugList(&sb, a)
	sb.WriteString(")")
	return sb.String()
}

func (b *Block) GoString() string {
	var sb strings.Builder
	sb.WriteString("Block([")
	for i, op := range b.ops {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(op.token)
	}
	sb.WriteString("])")
	return sb.String()
}

func writeDebugList(w io.StringWriter, vals []Value) {
	w.WriteString("[")
	for i, v := range vals {
		if i > 0 {
			w.WriteString(", ")
		}
		w.WriteString(v.GoString())
	}
	w.WriteString("]")
}

// formatFloat never uses an exponent, and drops the fraction of integral
// values.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FormatValues renders a whole stack, bottom first, in display form.
func FormatValues(vals []Value) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range vals {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(v.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

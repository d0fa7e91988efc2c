package main

import (
	"math"
	"strings"
	"unicode/utf8"
)

// numeric applies an arithmetic operator to a pair of numbers: Integer pairs
// use checked arithmetic, any Float promotes the pair to Float. The ok result
// is false if either operand is not a number.
func numeric(op string, a, b Value) (_ Value, ok bool, _ error) {
	switch a := a.(type) {
	case Integer:
		switch b := b.(type) {
		case Integer:
			r, valid := intOps[op](int64(a), int64(b))
			if !valid {
				return nil, true, opError(op, a, b)
			}
			return Integer(r), true, nil
		case Float:
			return Float(floatOps[op](float64(a), float64(b))), true, nil
		}
	case Float:
		switch b := b.(type) {
		case Integer:
			return Float(floatOps[op](float64(a), float64(b))), true, nil
		case Float:
			return Float(floatOps[op](float64(a), float64(b))), true, nil
		}
	}
	return nil, false, nil
}

var intOps = map[string]func(a, b int64) (int64, bool){
	"add": func(a, b int64) (int64, bool) {
		r := a + b
		return r, (r > a) == (b > 0)
	},
	"sub": func(a, b int64) (int64, bool) {
		r := a - b
		return r, (r < a) == (b > 0)
	},
	"mul": func(a, b int64) (int64, bool) {
		if a == 0 || b == 0 {
			return 0, true
		}
		r := a * b
		if r/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
			return 0, false
		}
		return r, true
	},
	"div": func(a, b int64) (int64, bool) {
		if b == 0 || (a == math.MinInt64 && b == -1) {
			return 0, false
		}
		return a / b, true
	},
	"rem": func(a, b int64) (int64, bool) {
		if b == 0 || (a == math.MinInt64 && b == -1) {
			return 0, false
		}
		return a % b, true
	},
}

var floatOps = map[string]func(a, b float64) float64{
	"add": func(a, b float64) float64 { return a + b },
	"sub": func(a, b float64) float64 { return a - b },
	"mul": func(a, b float64) float64 { return a * b },
	"div": func(a, b float64) float64 { return a / b },
	"rem": math.Mod,
}

// shiftChar moves a char by n code units, wrapping within a byte.
func shiftChar(c Char, n Integer) Char {
	return Char(byte(c) + byte(n))
}

func add(a, b Value) (Value, error) {
	if r, ok, err := numeric("add", a, b); ok {
		return r, err
	}
	switch a := a.(type) {
	case Char:
		switch b := b.(type) {
		case Integer:
			return shiftChar(a, b), nil
		case Str:
			return Str(rune(a)) + b, nil
		}
	case Str:
		s, err := toStr(b)
		if err != nil {
			return nil, err
		}
		return a + s, nil
	case Array:
		if b, ok := b.(Array); ok {
			r := make(Array, 0, len(a)+len(b))
			return append(append(r, a...), b...), nil
		}
		return append(a[:len(a):len(a)], b), nil
	}
	if b, ok := b.(Array); ok {
		r := make(Array, 0, len(b)+1)
		return append(append(r, a), b...), nil
	}
	return nil, opError("add", a, b)
}

func sub(a, b Value) (Value, error) {
	if r, ok, err := numeric("sub", a, b); ok {
		return r, err
	}
	if c, ok := a.(Char); ok {
		if n, ok := b.(Integer); ok {
			return shiftChar(c, -n), nil
		}
	}
	return nil, opError("sub", a, b)
}

// maxLength bounds the elements of a built Array and the bytes of a built Str.
const maxLength = 1 << 24

func mul(a, b Value) (Value, error) {
	if r, ok, err := numeric("mul", a, b); ok {
		return r, err
	}
	if n, ok := b.(Integer); ok {
		if n < 0 {
			n = 0
		}
		switch a := a.(type) {
		case Array:
			if len(a) == 0 {
				return Array{}, nil
			}
			if int64(n) > maxLength/int64(len(a)) {
				return nil, opError("mul", a, b)
			}
			r := make(Array, 0, len(a)*int(n))
			for i := Integer(0); i < n; i++ {
				r = append(r, a...)
			}
			return r, nil
		case Str:
			if len(a) > 0 && int64(n) > maxLength/int64(len(a)) {
				return nil, opError("mul", a, b)
			}
			return Str(strings.Repeat(string(a), int(n))), nil
		}
	}
	return nil, opError("mul", a, b)
}

func div(a, b Value) (Value, error) {
	if r, ok, err := numeric("div", a, b); ok {
		return r, err
	}
	if s, ok := a.(Str); ok {
		if delim, ok := b.(Str); ok {
			parts := strings.Split(string(s), string(delim))
			r := make(Array, len(parts))
			for i, part := range parts {
				r[i] = Str(part)
			}
			return r, nil
		}
	}
	return nil, opError("div", a, b)
}

func rem(a, b Value) (Value, error) {
	if r, ok, err := numeric("rem", a, b); ok {
		return r, err
	}
	return nil, opError("rem", a, b)
}

func bitwise(op string, f func(a, b int64) int64) func(a, b Value) (Value, error) {
	return func(a, b Value) (Value, error) {
		if x, ok := a.(Integer); ok {
			if y, ok := b.(Integer); ok {
				return Integer(f(int64(x), int64(y))), nil
			}
		}
		return nil, opError(op, a, b)
	}
}

var (
	bitand = bitwise("bitand", func(a, b int64) int64 { return a & b })
	bitor  = bitwise("bitor", func(a, b int64) int64 { return a | b })
	bitxor = bitwise("bitxor", func(a, b int64) int64 { return a ^ b })
)

// and and or short circuit on the first operand's truth, returning one of
// the operands as is.
func and(a, b Value) Value {
	if truthy(a) {
		return b
	}
	return a
}

func or(a, b Value) Value {
	if truthy(a) {
		return a
	}
	return b
}

func minValue(a, b Value) Value {
	if less(a, b) {
		return a
	}
	return b
}

func maxValue(a, b Value) Value {
	if less(b, a) {
		return a
	}
	return b
}

// pow raises integers, or finds a substring or char in a Str, giving its
// code point offset or -1.
func pow(a, b Value) (Value, error) {
	switch a := a.(type) {
	case Integer:
		if e, ok := b.(Integer); ok {
			switch {
			case e < 0:
				return nil, opError("pow_negative_exponent", a, b)
			case e > math.MaxUint32:
				return nil, opError("pow_too_large", a, b)
			}
			r, ok := checkedPow(int64(a), uint64(e))
			if !ok {
				return nil, opError("pow", a, b)
			}
			return Integer(r), nil
		}
	case Str:
		switch b := b.(type) {
		case Str:
			return runeOffset(a, strings.Index(string(a), string(b))), nil
		case Char:
			return runeOffset(a, strings.IndexRune(string(a), rune(b))), nil
		}
	}
	return nil, opError("pow_find", a, b)
}

func runeOffset(s Str, i int) Integer {
	if i < 0 {
		return -1
	}
	return Integer(utf8.RuneCountInString(string(s[:i])))
}

// checkedPow squares and multiplies with overflow checks. A base square
// that overflows while exponent bits remain means the result overflows too.
func checkedPow(base int64, exp uint64) (int64, bool) {
	mulInt := intOps["mul"]
	r := int64(1)
	for {
		var ok bool
		if exp&1 == 1 {
			if r, ok = mulInt(r, base); !ok {
				return 0, false
			}
		}
		if exp >>= 1; exp == 0 {
			return r, true
		}
		if base, ok = mulInt(base, base); !ok {
			return 0, false
		}
	}
}

package main

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"
)

type unaryOp struct {
	f    unaryFunc
	peek bool
}

func transform(f func(x Value) (Value, error)) unaryOp {
	return unaryOp{f: func(_ context.Context, _ *VM, x Value) (Value, error) { return f(x) }}
}

var unaryOps = map[string]unaryOp{
	"_": {peek: true, f: func(_ context.Context, _ *VM, x Value) (Value, error) { return x, nil }},
	"p": {peek: true, f: printValue},
	"~": {f: spread},
	",": {f: count},

	"!": transform(func(x Value) (Value, error) { return boolValue(!truthy(x)), nil }),
	"c": transform(toChar),
	"f": transform(toFloat),
	"i": transform(toInt),
	"s": transform(func(x Value) (Value, error) {
		s, err := toStr(x)
		if err != nil {
			return nil, err
		}
		return s, nil
	}),

	"S/": transform(func(x Value) (Value, error) {
		if s, ok := x.(Str); ok {
			return strArray(strings.Fields(string(s))), nil
		}
		return nil, opError("split_whitespace", x)
	}),
	"N/": transform(func(x Value) (Value, error) {
		if s, ok := x.(Str); ok {
			return strArray(strings.Split(string(s), "\n")), nil
		}
		return nil, opError("split_newline", x)
	}),
}

func strArray(parts []string) Array {
	r := make(Array, len(parts))
	for i, part := range parts {
		r[i] = Str(part)
	}
	return r
}

func printValue(_ context.Context, vm *VM, x Value) (Value, error) {
	if _, err := fmt.Fprintln(vm.out, x); err != nil {
		return nil, err
	}
	return nil, nil
}

// spread complements an Integer, pushes each element of an Array, or runs a
// Block in place.
func spread(ctx context.Context, vm *VM, x Value) (Value, error) {
	switch x := x.(type) {
	case Integer:
		return ^x, nil
	case Array:
		vm.push(x...)
		return nil, nil
	case *Block:
		return nil, vm.runBlock(ctx, x)
	}
	return nil, opError("bit_not_or_spread", x)
}

// count makes a range from an Integer, measures an Array or Str, or filters
// the value below a Block.
func count(ctx context.Context, vm *VM, x Value) (Value, error) {
	switch x := x.(type) {
	case Integer:
		if x < 0 {
			return Array{}, nil
		}
		if x > maxLength {
			return nil, opError("length_range", x)
		}
		r := make(Array, x)
		for i := range r {
			r[i] = Integer(i)
		}
		return r, nil
	case Array:
		return Integer(len(x)), nil
	case Str:
		return Integer(utf8.RuneCountInString(string(x))), nil
	case *Block:
		y, err := vm.pop()
		if err != nil {
			return nil, err
		}
		switch y := y.(type) {
		case Array:
			return vm.filterArray(ctx, y, x)
		case Str:
			return vm.filterStr(ctx, y, x)
		}
		return nil, opError("filter", y)
	}
	return nil, opError("length_range", x)
}

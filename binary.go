package main

import (
	"context"
	"unicode/utf8"
)

func plain(f func(a, b Value) (Value, error)) binaryFunc {
	return func(_ context.Context, _ *VM, a, b Value) (Value, error) { return f(a, b) }
}

func total(f func(a, b Value) Value) binaryFunc {
	return func(_ context.Context, _ *VM, a, b Value) (Value, error) { return f(a, b), nil }
}

var binaryOps = map[string]binaryFunc{
	"+": plain(add),
	"-": plain(sub),
	"*": foldOrMul,
	"/": plain(div),
	"%": mapOrRem,
	"&": plain(bitand),
	"|": plain(bitor),
	"^": plain(bitxor),
	"#": plain(pow),

	"e&": total(and),
	"e|": total(or),
	"e<": total(minValue),
	"e>": total(maxValue),

	">": plain(greater),
	"<": plain(lesser),
	"=": plain(equals),
}

func foldOrMul(ctx context.Context, vm *VM, a, b Value) (Value, error) {
	if arr, ok := a.(Array); ok {
		if blk, ok := b.(*Block); ok {
			return vm.fold(ctx, arr, blk)
		}
	}
	return mul(a, b)
}

func mapOrRem(ctx context.Context, vm *VM, a, b Value) (Value, error) {
	if blk, ok := b.(*Block); ok {
		switch a := a.(type) {
		case Array:
			return vm.mapArray(ctx, a, blk)
		case Str:
			return vm.mapStr(ctx, a, blk)
		}
	}
	return rem(a, b)
}

// greater keeps the last n elements or chars, or compares.
func greater(a, b Value) (Value, error) {
	if n, ok := b.(Integer); ok {
		switch a := a.(type) {
		case Array:
			if n < 0 || int64(n) > int64(len(a)) {
				return nil, opError("slice_beginning", a, b)
			}
			return a[len(a)-int(n):], nil
		case Str:
			count := utf8.RuneCountInString(string(a))
			if n < 0 || int64(n) > int64(count) {
				return nil, opError("str_beginning", a, b)
			}
			return a[runeIndex(a, count-int(n)):], nil
		}
	}
	c, ok := compare(a, b)
	return boolValue(ok && c > 0), nil
}

// lesser keeps the first n elements or chars, or compares.
func lesser(a, b Value) (Value, error) {
	if n, ok := b.(Integer); ok {
		switch a := a.(type) {
		case Array:
			if n < 0 || int64(n) > int64(len(a)) {
				return nil, opError("slice_end", a, b)
			}
			return a[:n:n], nil
		case Str:
			if n < 0 || int64(n) > int64(utf8.RuneCountInString(string(a))) {
				return nil, opError("str_end", a, b)
			}
			return a[:runeIndex(a, int(n))], nil
		}
	}
	c, ok := compare(a, b)
	return boolValue(ok && c < 0), nil
}

// equals indexes an Array or Str, or tests equality.
func equals(a, b Value) (Value, error) {
	if n, ok := b.(Integer); ok {
		switch a := a.(type) {
		case Array:
			if n < 0 || int64(n) >= int64(len(a)) {
				return nil, opError("index", a, b)
			}
			return a[n], nil
		case Str:
			if n >= 0 {
				for _, r := range string(a) {
					if n == 0 {
						return Char(r), nil
					}
					n--
				}
			}
			return nil, opError("index", a, b)
		}
	}
	return boolValue(equal(a, b)), nil
}

// runeIndex returns the byte offset of the n-th code point of s, or len(s).
func runeIndex(s Str, n int) int {
	for i := range string(s) {
		if n == 0 {
			return i
		}
		n--
	}
	return len(s)
}

package main

import (
	"context"
	"strconv"
)

func pushValue(v Value) stackFunc {
	return func(_ context.Context, vm *VM) error {
		vm.push(v)
		return nil
	}
}

// parseLiteral recognizes, in order: a lowercase letter char, an integer, a
// float, an array literal, a string, and a block.
func parseLiteral(tok string) (stackFunc, bool) {
	if len(tok) == 1 && tok[0] >= 'a' && tok[0] <= 'z' {
		if _, isOp := nullaryOps[tok]; !isOp {
			return pushValue(Char(tok[0])), true
		}
	}
	if n, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return pushValue(Integer(n)), true
	}
	if f, err := strconv.ParseFloat(tok, 64); err == nil {
		return pushValue(Float(f)), true
	}
	if body, ok := unwrap(tok, '[', ']'); ok {
		elems, ok := resolveAll(body)
		if !ok {
			return nil, false
		}
		return func(ctx context.Context, vm *VM) error {
			arr, err := vm.evalElements(ctx, elems)
			if err == nil {
				vm.push(arr)
			}
			return err
		}, true
	}
	if s, ok := unwrap(tok, '"', '"'); ok {
		return pushValue(Str(s)), true
	}
	if body, ok := unwrap(tok, '{', '}'); ok {
		ops, ok := resolveAll(body)
		if !ok {
			return nil, false
		}
		return pushValue(&Block{ops: ops}), true
	}
	return nil, false
}

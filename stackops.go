package main

import (
	"context"
	"strconv"
	"strings"
)

var simpleStackOps = map[string]stackFunc{
	";": func(_ context.Context, vm *VM) error {
		_, err := vm.pop()
		return err
	},
	`\`: func(_ context.Context, vm *VM) error { return vm.rotate(2) },
	"@": func(_ context.Context, vm *VM) error { return vm.rotate(3) },
	"(": func(_ context.Context, vm *VM) error { return vm.unshift() },
	")": func(_ context.Context, vm *VM) error { return vm.unpush() },
	"w": func(ctx context.Context, vm *VM) error {
		x, err := vm.pop()
		if err != nil {
			return err
		}
		blk, ok := x.(*Block)
		if !ok {
			return opError("while", x)
		}
		return vm.while(ctx, blk)
	},
	"$": func(ctx context.Context, vm *VM) error {
		x, err := vm.pop()
		if err != nil {
			return err
		}
		switch x := x.(type) {
		case Integer:
			return vm.pick(int64(x))
		case *Block:
			y, err := vm.pop()
			if err != nil {
				return err
			}
			arr, ok := y.(Array)
			if !ok {
				return opError("index_sort", y, x)
			}
			sorted, err := vm.sortBy(ctx, arr, x)
			if err != nil {
				return err
			}
			vm.push(sorted)
			return nil
		}
		return opError("index_sort", x)
	},
}

// parseStackOp recognizes stack manipulation tokens, variable access, and
// finally literals.
func parseStackOp(tok string) (stackFunc, bool) {
	if f, ok := simpleStackOps[tok]; ok {
		return f, true
	}

	if v, ok := varName(tok); ok {
		return func(_ context.Context, vm *VM) error {
			vm.push(vm.vars[v])
			return nil
		}, true
	}
	if strings.HasPrefix(tok, ":") {
		if v, ok := varName(tok[1:]); ok {
			return func(_ context.Context, vm *VM) error {
				x, err := vm.top()
				if err == nil {
					vm.vars[v] = x
				}
				return err
			}, true
		}
	}

	if strings.HasSuffix(tok, "$") {
		if n, err := strconv.ParseInt(tok[:len(tok)-1], 10, 64); err == nil && n >= 0 {
			return func(_ context.Context, vm *VM) error {
				return vm.pick(n)
			}, true
		}
	}

	return parseLiteral(tok)
}

func varName(tok string) (int, bool) {
	if len(tok) == 1 && tok[0] >= 'A' && tok[0] <= 'Z' {
		return int(tok[0] - 'A'), true
	}
	return 0, false
}

// rotate moves the value n below the top up to the top.
func (vm *VM) rotate(n int) error {
	if len(vm.stack) < n {
		return errStackEmpty
	}
	s := vm.stack[len(vm.stack)-n:]
	first := s[0]
	copy(s, s[1:])
	s[n-1] = first
	return nil
}

// pick copies the value n places below the top.
func (vm *VM) pick(n int64) error {
	if n < 0 || n >= int64(len(vm.stack)) {
		return boundsError(n, len(vm.stack))
	}
	vm.push(vm.stack[len(vm.stack)-1-int(n)])
	return nil
}

// unshift splits an Array top into its tail and then its head, or
// decrements.
func (vm *VM) unshift() error {
	x, err := vm.pop()
	if err != nil {
		return err
	}
	if arr, ok := x.(Array); ok {
		if len(arr) == 0 {
			return opError("remove_head", arr)
		}
		vm.push(arr[1:], arr[0])
		return nil
	}
	r, err := sub(x, Integer(1))
	if err != nil {
		return err
	}
	vm.push(r)
	return nil
}

// unpush splits an Array top into its init and then its last element, or
// increments.
func (vm *VM) unpush() error {
	x, err := vm.pop()
	if err != nil {
		return err
	}
	if arr, ok := x.(Array); ok {
		if len(arr) == 0 {
			return opError("remove_last", arr)
		}
		n := len(arr) - 1
		vm.push(arr[:n:n], arr[n])
		return nil
	}
	r, err := add(x, Integer(1))
	if err != nil {
		return err
	}
	vm.push(r)
	return nil
}

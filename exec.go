package main

import (
	"context"
	"fmt"
	"sort"
)

// execute runs each token of src in turn, stopping at the first error.
// Tokens are resolved as they are reached, so earlier tokens take effect
// even when a later one is malformed.
func (vm *VM) execute(ctx context.Context, src string) error {
	for ts := scanTokens(src); ; {
		tok, ok := ts.next()
		if !ok {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		op, err := resolve(tok)
		if err != nil {
			return err
		}
		if err := vm.apply(ctx, op); err != nil {
			return err
		}
	}
}

// runBlock runs a block's operators against the current frame.
func (vm *VM) runBlock(ctx context.Context, blk *Block) error {
	if vm.maxDepth > 0 && vm.depth >= vm.maxDepth {
		return depthError(vm.maxDepth)
	}
	vm.depth++
	defer func() { vm.depth-- }()
	if vm.logfn != nil {
		defer vm.withLogPrefix("\t")()
	}
	for _, op := range blk.ops {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := vm.apply(ctx, op); err != nil {
			return err
		}
	}
	return nil
}

func (vm *VM) apply(ctx context.Context, op Operator) error {
	if vm.logfn != nil {
		vm.logf(">", "%v apply `%v`", FormatValues(vm.stack), op.token)
	}

	switch op.kind {
	case BinaryOp:
		var ab [2]Value
		if err := vm.popN(ab[:]); err != nil {
			return err
		}
		r, err := op.binary(ctx, vm, ab[0], ab[1])
		if err != nil {
			return err
		}
		vm.push(r)

	case UnaryOp:
		var x Value
		var err error
		if op.peek {
			x, err = vm.top()
		} else {
			x, err = vm.pop()
		}
		if err != nil {
			return err
		}
		r, err := op.unary(ctx, vm, x)
		if err != nil {
			return err
		}
		if r != nil {
			vm.push(r)
		}

	case StackOp:
		return op.stack(ctx, vm)

	case TernaryOp:
		var abc [3]Value
		if err := vm.popN(abc[:]); err != nil {
			return err
		}
		vm.push(op.ternary(abc[0], abc[1], abc[2]))

	case NullaryOp:
		r, err := op.nullary(vm)
		if err != nil {
			return err
		}
		vm.push(r)

	default:
		panic(fmt.Sprintf("invalid operator %q kind %v", op.token, op.kind))
	}
	return nil
}

// calculate runs a block against a fresh frame seeded with vals, collapsing
// whatever it leaves into one value.
func (vm *VM) calculate(ctx context.Context, blk *Block, vals ...Value) (r Value, err error) {
	err = vm.withFrame(func() error {
		vm.push(vals...)
		if err := vm.runBlock(ctx, blk); err != nil {
			return err
		}
		r, err = vm.collapse()
		return err
	})
	return r, err
}

// evalElements builds an array literal, running each element operator as its
// own program against a fresh frame.
func (vm *VM) evalElements(ctx context.Context, elems []Operator) (Array, error) {
	arr := make(Array, 0, len(elems))
	for _, op := range elems {
		if err := vm.withFrame(func() error {
			if err := vm.apply(ctx, op); err != nil {
				return err
			}
			v, err := vm.pop()
			if err == nil {
				arr = append(arr, v)
			}
			return err
		}); err != nil {
			return nil, err
		}
	}
	return arr, nil
}

// fold combines an array's elements left to right, running the block on the
// accumulator and the next element.
func (vm *VM) fold(ctx context.Context, arr Array, blk *Block) (Value, error) {
	if len(arr) == 0 {
		return nil, errFoldingEmptyArray
	}
	acc := arr[0]
	for _, v := range arr[1:] {
		var err error
		if acc, err = vm.calculate(ctx, blk, acc, v); err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func (vm *VM) mapArray(ctx context.Context, arr Array, blk *Block) (Value, error) {
	r := make(Array, len(arr))
	for i, v := range arr {
		var err error
		if r[i], err = vm.calculate(ctx, blk, v); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// mapStr maps each char through the block, which must yield a single Char.
func (vm *VM) mapStr(ctx context.Context, s Str, blk *Block) (Value, error) {
	r := make([]rune, 0, len(s))
	for _, c := range string(s) {
		v, err := vm.calculate(ctx, blk, Char(c))
		if err != nil {
			return nil, err
		}
		rc, ok := v.(Char)
		if !ok {
			return nil, castError(v, "Char")
		}
		r = append(r, rune(rc))
	}
	return Str(r), nil
}

func (vm *VM) filterArray(ctx context.Context, arr Array, blk *Block) (Value, error) {
	r := make(Array, 0, len(arr))
	for _, v := range arr {
		keep, err := vm.calculate(ctx, blk, v)
		if err != nil {
			return nil, err
		}
		if truthy(keep) {
			r = append(r, v)
		}
	}
	return r, nil
}

func (vm *VM) filterStr(ctx context.Context, s Str, blk *Block) (Value, error) {
	r := make([]rune, 0, len(s))
	for _, c := range string(s) {
		keep, err := vm.calculate(ctx, blk, Char(c))
		if err != nil {
			return nil, err
		}
		if truthy(keep) {
			r = append(r, c)
		}
	}
	return Str(r), nil
}

type keyed struct {
	vals Array
	keys Array
}

func (kd keyed) Len() int           { return len(kd.vals) }
func (kd keyed) Less(i, j int) bool { return keyCmp(kd.keys[i], kd.keys[j]) < 0 }
func (kd keyed) Swap(i, j int) {
	kd.vals[i], kd.vals[j] = kd.vals[j], kd.vals[i]
	kd.keys[i], kd.keys[j] = kd.keys[j], kd.keys[i]
}

// sortBy stably sorts a copy of arr by the key the block computes for each
// element.
func (vm *VM) sortBy(ctx context.Context, arr Array, blk *Block) (Array, error) {
	kd := keyed{
		vals: append(make(Array, 0, len(arr)), arr...),
		keys: make(Array, len(arr)),
	}
	for i, v := range arr {
		var err error
		if kd.keys[i], err = vm.calculate(ctx, blk, v); err != nil {
			return nil, err
		}
	}
	sort.Stable(kd)
	return kd.vals, nil
}

// while runs the block in place for as long as the top is truthy.
func (vm *VM) while(ctx context.Context, blk *Block) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		x, err := vm.top()
		if err != nil {
			return err
		}
		if !truthy(x) {
			return nil
		}
		if err := vm.runBlock(ctx, blk); err != nil {
			return err
		}
	}
}

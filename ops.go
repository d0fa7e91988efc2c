package main

import (
	"context"
	"fmt"
)

// OpKind tags an Operator with the shape of its stack effect.
type OpKind uint8

// Operator kinds, in resolution order.
const (
	BinaryOp OpKind = iota + 1
	UnaryOp
	StackOp
	TernaryOp
	NullaryOp
)

var opKindNames = [...]string{"", "binary", "unary", "stack", "ternary", "nullary"}

func (k OpKind) String() string {
	if int(k) < len(opKindNames) {
		return opKindNames[k]
	}
	return fmt.Sprintf("OpKind(%d)", uint8(k))
}

type (
	// binaryFunc combines the second from top (a) with the top (b).
	binaryFunc func(ctx context.Context, vm *VM, a, b Value) (Value, error)

	// unaryFunc transforms the top; a nil result pushes nothing.
	unaryFunc func(ctx context.Context, vm *VM, x Value) (Value, error)

	// stackFunc manipulates the stack directly.
	stackFunc func(ctx context.Context, vm *VM) error

	// ternaryFunc chooses among three operands, bottom first.
	ternaryFunc func(a, b, c Value) Value

	// nullaryFunc produces a value from nothing on the stack.
	nullaryFunc func(vm *VM) (Value, error)
)

// Operator is a resolved token. Exactly one of the functions is set,
// according to kind.
type Operator struct {
	kind  OpKind
	token string

	binary  binaryFunc
	unary   unaryFunc
	peek    bool // unary operand is read, not popped
	stack   stackFunc
	ternary ternaryFunc
	nullary nullaryFunc
}

// Kind returns the operator's kind.
func (op Operator) Kind() OpKind { return op.kind }

func (op Operator) String() string { return op.token }

// resolve classifies a token, trying each operator kind in order.
func resolve(tok string) (Operator, error) {
	if f, ok := binaryOps[tok]; ok {
		return Operator{kind: BinaryOp, token: tok, binary: f}, nil
	}
	if u, ok := unaryOps[tok]; ok {
		return Operator{kind: UnaryOp, token: tok, unary: u.f, peek: u.peek}, nil
	}
	if f, ok := parseStackOp(tok); ok {
		return Operator{kind: StackOp, token: tok, stack: f}, nil
	}
	if f, ok := ternaryOps[tok]; ok {
		return Operator{kind: TernaryOp, token: tok, ternary: f}, nil
	}
	if f, ok := nullaryOps[tok]; ok {
		return Operator{kind: NullaryOp, token: tok, nullary: f}, nil
	}
	return Operator{}, &SyntaxError{Token: tok}
}

// resolveAll resolves every token within a group body.
func resolveAll(body string) ([]Operator, bool) {
	var ops []Operator
	for ts := scanTokens(body); ; {
		tok, ok := ts.next()
		if !ok {
			return ops, true
		}
		op, err := resolve(tok)
		if err != nil {
			return nil, false
		}
		ops = append(ops, op)
	}
}

var ternaryOps = map[string]ternaryFunc{
	"?": func(cond, then, els Value) Value {
		if truthy(cond) {
			return then
		}
		return els
	},
}

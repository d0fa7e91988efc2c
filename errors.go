package main

import (
	"fmt"
	"strings"
)

// SyntaxError reports a token that names no operator and no literal.
type SyntaxError struct {
	Token string
}

func (err *SyntaxError) Error() string { return fmt.Sprintf("syntax error: %q", err.Token) }

// Errno classifies a RuntimeError.
type Errno int

// List of runtime failures.
const (
	StackEmpty = Errno(iota + 1)
	InputFailure
	InvalidOperation
	InvalidCast
	OutOfBounds
	FoldingEmptyArray
	TooDeep
)

var strErrno = []string{
	"",
	"stack empty",
	"input failure",
	"invalid operation",
	"invalid cast",
	"out of bounds",
	"folding empty array",
	"nesting too deep",
}

func (e Errno) Error() string {
	if int(e) < len(strErrno) {
		return strErrno[e]
	}
	return fmt.Sprintf("errno %d", int(e))
}

// RuntimeError describes a failure while running an operator. Which fields
// are set depends on Errno.
type RuntimeError struct {
	Errno

	Operands []Value // InvalidOperation
	Op       string  // InvalidOperation

	Value  Value  // InvalidCast
	Target string // InvalidCast

	Index int64 // OutOfBounds
	Size  int   // OutOfBounds, TooDeep

	Err error // InputFailure
}

func (err *RuntimeError) Error() string {
	var sb strings.Builder
	sb.WriteString(err.Errno.Error())
	switch err.Errno {
	case InputFailure:
		fmt.Fprintf(&sb, ": %v", err.Err)
	case InvalidOperation:
		fmt.Fprintf(&sb, " %v on ", err.Op)
		writeDebugList(&sb, err.Operands)
	case InvalidCast:
		fmt.Fprintf(&sb, " of %#v to %v", err.Value, err.Target)
	case OutOfBounds:
		fmt.Fprintf(&sb, ": index %v with size %v", err.Index, err.Size)
	case TooDeep:
		fmt.Fprintf(&sb, ": limit %v", err.Size)
	}
	return sb.String()
}

func (err *RuntimeError) Unwrap() error { return err.Err }

// Is matches an Errno target, so that errors.Is(err, StackEmpty) works.
func (err *RuntimeError) Is(target error) bool {
	errno, ok := target.(Errno)
	return ok && errno == err.Errno
}

var (
	errStackEmpty        = &RuntimeError{Errno: StackEmpty}
	errFoldingEmptyArray = &RuntimeError{Errno: FoldingEmptyArray}
)

func opError(op string, operands ...Value) error {
	return &RuntimeError{Errno: InvalidOperation, Op: op, Operands: operands}
}

func castError(val Value, target string) error {
	return &RuntimeError{Errno: InvalidCast, Value: val, Target: target}
}

func boundsError(index int64, size int) error {
	return &RuntimeError{Errno: OutOfBounds, Index: index, Size: size}
}

func inputError(err error) error {
	return &RuntimeError{Errno: InputFailure, Err: err}
}

func depthError(limit int) error {
	return &RuntimeError{Errno: TooDeep, Size: limit}
}

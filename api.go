package main

import (
	"context"
	"io"

	"github.com/jcorbin/stackgolf/internal/panicerr"
)

// New creates a VM with seeded variables and an empty stack.
func New(opts ...VMOption) *VM {
	var vm VM
	vm.initVars()
	defaultOptions.apply(&vm)
	VMOptions(opts...).apply(&vm)
	return &vm
}

// Exec runs program text against the VM's current stack. The first error
// stops execution, leaving the stack as it was when the failing operator
// ran.
func (vm *VM) Exec(ctx context.Context, src string) error {
	err := vm.execute(ctx, src)
	if ferr := vm.flushOutput(); err == nil {
		err = ferr
	}
	return err
}

// RunWithInput runs program text on a fresh VM reading from in, returning
// its final stack bottom first.
func RunWithInput(ctx context.Context, src string, in io.Reader, opts ...VMOption) (_ []Value, rerr error) {
	vm := New(WithInput(in), VMOptions(opts...))
	defer func() {
		if cerr := vm.Close(); rerr == nil {
			rerr = cerr
		}
	}()
	if err := panicerr.Recover("stackgolf", func() error {
		return vm.Exec(ctx, src)
	}); err != nil {
		return nil, err
	}
	return vm.Values(), nil
}

func WithInput(r io.Reader) VMOption  { return withInput(r) }
func WithOutput(w io.Writer) VMOption { return withOutput(w) }
func WithTee(w io.Writer) VMOption    { return withTee(w) }
func WithMaxDepth(limit int) VMOption { return withMaxDepth(limit) }

func WithLogf(logfn func(mess string, args ...interface{})) VMOption  { return withLogfn(logfn) }
func WithDiagf(diagf func(mess string, args ...interface{})) VMOption { return withDiagf(diagf) }

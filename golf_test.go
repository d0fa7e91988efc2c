package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jcorbin/stackgolf/internal/logio"
	"github.com/jcorbin/stackgolf/internal/panicerr"
)

type progTestCases []progTestCase

func (pts progTestCases) run(t *testing.T) {
	{
		var exclusive []progTestCase
		for _, pt := range pts {
			if pt.exclusive {
				exclusive = append(exclusive, pt)
			}
		}
		if len(exclusive) > 0 {
			pts = exclusive
		}
	}
	for _, pt := range pts {
		if !t.Run(pt.name, pt.run) {
			return
		}
	}
}

func progTest(name string) (pt progTestCase) {
	pt.name = name
	return pt
}

type optFunc func(vm *VM)

func (f optFunc) apply(vm *VM) { f(vm) }

type progTestCase struct {
	name    string
	source  string
	opts    []interface{}
	expect  []func(t *testing.T, vm *VM)
	timeout time.Duration
	wantErr error
	wantTok string

	exclusive bool
}

func (pt progTestCase) apply(wraps ...func(progTestCase) progTestCase) progTestCase {
	for _, wrap := range wraps {
		pt = wrap(pt)
	}
	return pt
}

func (pt progTestCase) exclusiveTest() progTestCase {
	pt.exclusive = true
	return pt
}

func (pt progTestCase) withSource(src string) progTestCase {
	pt.source = src
	return pt
}

func (pt progTestCase) withOptions(opts ...VMOption) progTestCase {
	for _, opt := range opts {
		pt.opts = append(pt.opts, opt)
	}
	return pt
}

func (pt progTestCase) withInput(input string) progTestCase {
	pt.opts = append(pt.opts, WithInput(strings.NewReader(input)))
	return pt
}

func (pt progTestCase) withStack(values ...Value) progTestCase {
	pt.opts = append(pt.opts, optFunc(func(vm *VM) {
		vm.push(values...)
	}))
	return pt
}

func (pt progTestCase) withVar(name byte, val Value) progTestCase {
	pt.opts = append(pt.opts, optFunc(func(vm *VM) {
		vm.vars[name-'A'] = val
	}))
	return pt
}

func (pt progTestCase) withTimeout(timeout time.Duration) progTestCase {
	pt.timeout = timeout
	return pt
}

func (pt progTestCase) expectError(err error) progTestCase {
	pt.wantErr = err
	return pt
}

func (pt progTestCase) expectSyntaxError(tok string) progTestCase {
	pt.wantTok = tok
	return pt
}

func (pt progTestCase) expectStack(values ...Value) progTestCase {
	pt.expect = append(pt.expect, func(t *testing.T, vm *VM) {
		if values == nil {
			values = []Value{}
		}
		assert.Equal(t, values, vm.Values(), "expected stack values")
	})
	return pt
}

func (pt progTestCase) expectTop(values ...Value) progTestCase {
	pt.expect = append(pt.expect, func(t *testing.T, vm *VM) {
		stack := vm.Values()
		if assert.True(t, len(stack) >= len(values), "expected at least %v stack values", len(values)) {
			assert.Equal(t, values, stack[len(stack)-len(values):], "expected top stack values")
		}
	})
	return pt
}

func (pt progTestCase) expectVar(name byte, val Value) progTestCase {
	pt.expect = append(pt.expect, func(t *testing.T, vm *VM) {
		assert.Equal(t, val, vm.Var(name), "expected variable %c", name)
	})
	return pt
}

func (pt progTestCase) expectOutput(output string) progTestCase {
	var out strings.Builder
	pt.opts = append(pt.opts, WithOutput(&out))
	pt.expect = append(pt.expect, func(t *testing.T, vm *VM) {
		assert.Equal(t, output, out.String(), "expected output")
	})
	return pt
}

func (pt progTestCase) expectDisplay(display string) progTestCase {
	pt.expect = append(pt.expect, func(t *testing.T, vm *VM) {
		assert.Equal(t, display, FormatValues(vm.stack), "expected stack display")
	})
	return pt
}

func (pt progTestCase) expectDump(dump string) progTestCase {
	pt.expect = append(pt.expect, func(t *testing.T, vm *VM) {
		var out strings.Builder
		vmDumper{vm: vm, out: &out}.dump()
		assert.Equal(t, dump, out.String(), "expected dump")
	})
	return pt
}

func (pt progTestCase) withTestDump() progTestCase {
	pt.expect = append(pt.expect, pt.dumpToTest)
	return pt
}

func (pt progTestCase) withTestOutput() progTestCase {
	pt.opts = append(pt.opts, func(t *testing.T) VMOption {
		return WithTee(&logio.Writer{Logf: t.Logf, Prefix: "out: "})
	})
	return pt
}

func (pt progTestCase) run(t *testing.T) {
	defer func(then time.Time) {
		label := "PASS"
		if t.Failed() {
			label = "FAIL"
		}
		t.Logf("%v\t%v\t%v", label, t.Name(), time.Since(then))
	}(time.Now())

	if testFails(func(t *testing.T) {
		pt.runProgTest(context.Background(), t, pt.buildVM(t))
	}) {
		vm := pt.buildVM(t)
		WithLogf(t.Logf).apply(vm)
		pt.runProgTest(context.Background(), t, vm)
	}
}

func (pt progTestCase) runProgTest(ctx context.Context, t *testing.T, vm *VM) {
	const defaultTimeout = time.Second
	timeout := pt.timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	defer func() {
		if t.Failed() {
			pt.dumpToTest(t, vm)
		}
	}()

	err := pt.runProg(ctx, vm)
	switch {
	case pt.wantTok != "":
		var syntax *SyntaxError
		if assert.True(t, errors.As(err, &syntax), "expected syntax error, got: %+v", err) {
			assert.Equal(t, pt.wantTok, syntax.Token, "expected syntax error token")
		}
	case pt.wantErr != nil:
		assert.True(t, errors.Is(err, pt.wantErr), "expected error: %v\ngot: %+v", pt.wantErr, err)
	default:
		assert.NoError(t, err, "unexpected program error")
	}

	if !t.Failed() {
		for _, expect := range pt.expect {
			expect(t, vm)
		}
	}
}

func (pt progTestCase) runProg(ctx context.Context, vm *VM) (rerr error) {
	defer func() {
		if err := vm.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("vm.Close failed: %w", err)
		}
	}()
	return panicerr.Recover("progTestCase", func() error {
		return vm.Exec(ctx, pt.source)
	})
}

func (pt progTestCase) buildVM(t *testing.T) *VM {
	var opt VMOption
	for _, o := range pt.opts {
		switch impl := o.(type) {
		case func(t *testing.T) VMOption:
			opt = VMOptions(opt, impl(t))
		case VMOption:
			opt = VMOptions(opt, impl)
		default:
			t.Logf("unsupported progTestCase opt type %T", o)
			t.FailNow()
		}
	}
	return New(WithDiagf(t.Logf), opt)
}

func (pt progTestCase) dumpToTest(t *testing.T, vm *VM) {
	lw := logio.Writer{Logf: t.Logf}
	defer lw.Close()
	vmDumper{vm: vm, out: &lw}.dump()
}

//// utilities

func testFails(fn func(t *testing.T)) bool {
	var fakeT testing.T
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn(&fakeT)
	}()
	<-done
	return fakeT.Failed()
}

func lines(parts ...string) string {
	return strings.Join(parts, "\n") + "\n"
}

func ints(ns ...int64) Array {
	arr := make(Array, len(ns))
	for i, n := range ns {
		arr[i] = Integer(n)
	}
	return arr
}

func chars(s string) []Value {
	var vals []Value
	for _, r := range s {
		vals = append(vals, Char(r))
	}
	return vals
}

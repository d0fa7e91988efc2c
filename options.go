package main

import (
	"bufio"
	"io"
	"strings"

	"github.com/jcorbin/stackgolf/internal/flushio"
	"github.com/jcorbin/stackgolf/internal/logio"
)

// VMOption customizes a VM created by New.
type VMOption interface{ apply(vm *VM) }

const defaultMaxDepth = 10000

var defaultOptions = VMOptions(
	withInput(strings.NewReader("")),
	withOutput(io.Discard),
	withDiagf(stderrLog.Leveledf("ERROR")),
	withMaxDepth(defaultMaxDepth),
)

var stderrLog logio.Logger

// VMOptions combines any number of options into one, applied in order.
func VMOptions(opts ...VMOption) VMOption {
	var all options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil:
		case options:
			all = append(all, impl...)
		default:
			all = append(all, opt)
		}
	}
	if len(all) == 1 {
		return all[0]
	}
	return all
}

type options []VMOption

func (opts options) apply(vm *VM) {
	for _, opt := range opts {
		opt.apply(vm)
	}
}

type withLogfn func(mess string, args ...interface{})
type withDiagf func(mess string, args ...interface{})

func (logfn withLogfn) apply(vm *VM) { vm.logfn = logfn }
func (diagf withDiagf) apply(vm *VM) { vm.diagf = diagf }

type inputOption struct{ io.Reader }
type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type maxDepthOption int

func withInput(r io.Reader) inputOption     { return inputOption{r} }
func withOutput(w io.Writer) outputOption   { return outputOption{w} }
func withTee(w io.Writer) teeOption         { return teeOption{w} }
func withMaxDepth(limit int) maxDepthOption { return maxDepthOption(limit) }

// A *bufio.Reader is used as is, so that its owner may share buffered input
// with the VM.
func (i inputOption) apply(vm *VM) {
	if br, ok := i.Reader.(*bufio.Reader); ok {
		vm.in = br
	} else {
		vm.in = bufio.NewReader(i.Reader)
	}
}

func (o outputOption) apply(vm *VM) {
	if vm.out != nil {
		vm.out.Flush()
	}
	vm.out = flushio.NewWriteFlusher(o.Writer)
}

func (o teeOption) apply(vm *VM) {
	vm.out = flushio.WriteFlushers(vm.out, flushio.NewWriteFlusher(o.Writer))
}

func (lim maxDepthOption) apply(vm *VM) {
	vm.maxDepth = int(lim)
}

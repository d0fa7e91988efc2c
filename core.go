package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jcorbin/stackgolf/internal/flushio"
)

// core is the state shared by every frame of one machine: variable slots,
// the input stream, output, and logging.
type core struct {
	logging

	vars [26]Value

	in  *bufio.Reader
	out flushio.WriteFlusher

	diagf    func(mess string, args ...interface{})
	maxDepth int
	depth    int

	closers []io.Closer
}

func (core *core) initVars() {
	for i := range core.vars {
		core.vars[i] = Integer(0)
	}
	for i, n := 0, Integer(10); i < 6; i, n = i+1, n+1 {
		core.vars[i] = n // A-F
	}
	core.vars['N'-'A'] = Char('\n')
	core.vars['S'-'A'] = Char(' ')
	core.vars['X'-'A'] = Integer(0)
	core.vars['Y'-'A'] = Integer(1)
	core.vars['Z'-'A'] = Integer(2)
}

// Var returns the named variable slot's value; name must be a letter A-Z.
func (core *core) Var(name byte) Value {
	return core.vars[name-'A']
}

func (core *core) flushOutput() error {
	if core.out == nil {
		return nil
	}
	return core.out.Flush()
}

// Close flushes output and closes any resources acquired through options.
func (core *core) Close() (err error) {
	err = core.flushOutput()
	for i := len(core.closers) - 1; i >= 0; i-- {
		if cerr := core.closers[i].Close(); err == nil {
			err = cerr
		}
	}
	core.closers = nil
	return err
}

type logging struct {
	logfn func(mess string, args ...interface{})

	markWidth int
}

func (log *logging) withLogPrefix(prefix string) func() {
	logfn := log.logfn
	log.logfn = func(mess string, args ...interface{}) {
		logfn(prefix+mess, args...)
	}
	return func() {
		log.logfn = logfn
	}
}

func (log *logging) logf(mark, mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if n := log.markWidth - len(mark); n > 0 {
		for _, r := range mark {
			mark = strings.Repeat(string(r), n) + mark
			break
		}
	} else if n < 0 {
		log.markWidth = len(mark)
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.logfn("%v %v", mark, mess)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/peterh/liner"

	"github.com/jcorbin/stackgolf/internal/fileinput"
)

// Session is a persistent interpreter that is fed one line at a time; an
// error aborts only the line that raised it.
type Session struct {
	*VM

	// Timeout limits each line's run when positive.
	Timeout time.Duration
}

// NewSession creates a session around a new VM.
func NewSession(opts ...VMOption) *Session {
	return &Session{VM: New(opts...)}
}

// FeedLine runs line against the session stack, reporting any error through
// the diagnostic function. The error is returned for callers that track
// failures, but the session remains usable.
func (sess *Session) FeedLine(ctx context.Context, line string) error {
	if sess.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, sess.Timeout)
		defer cancel()
	}
	err := sess.Exec(ctx, line)
	if err != nil && sess.diagf != nil {
		sess.diagf("%v", err)
	}
	return err
}

// printStack writes the current stack in display form.
func (sess *Session) printStack(w io.Writer) error {
	_, err := fmt.Fprintln(w, FormatValues(sess.stack))
	return err
}

// command handles a session command line, returning false for :quit.
func (sess *Session) command(w io.Writer, cmd string) (more bool, err error) {
	switch cmd {
	case ":quit", ":q":
		return false, nil
	case ":stack":
		return true, sess.printStack(w)
	}
	return true, fmt.Errorf("unknown session command %q", cmd)
}

// isCommand distinguishes session commands from program lines; variable
// stores like :A are program text.
func isCommand(line string) bool {
	switch strings.TrimSpace(line) {
	case ":quit", ":q", ":stack":
		return true
	}
	return false
}

// RunLines feeds every line from in, then prints the final stack to out. Each
// diagnostic names the location of the failing line.
func (sess *Session) RunLines(ctx context.Context, in *fileinput.Input, out io.Writer) error {
	diagf := sess.diagf
	defer func() { sess.diagf = diagf }()
	sess.diagf = func(mess string, args ...interface{}) {
		if diagf != nil {
			diagf("%v: %v", in.Loc, fmt.Sprintf(mess, args...))
		}
	}

	for {
		line, err := in.ReadLine()
		if err == io.EOF {
			break
		} else if err != nil {
			return err
		}
		if isCommand(line) {
			if more, err := sess.command(out, strings.TrimSpace(line)); err != nil {
				return err
			} else if !more {
				break
			}
			continue
		}
		if err := sess.FeedLine(ctx, line); err != nil && ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return sess.printStack(out)
}

// Interact runs a line editing prompt until end of input or :quit, then
// prints the final stack. History is loaded from and saved to histPath when
// it is not empty.
func (sess *Session) Interact(ctx context.Context, histPath string, out io.Writer) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	for {
		line, err := ln.Prompt("> ")
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		} else if err == io.EOF {
			fmt.Fprintln(out)
			break
		} else if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)

		if isCommand(line) {
			more, err := sess.command(out, strings.TrimSpace(line))
			if err != nil {
				return err
			}
			if !more {
				break
			}
			continue
		}
		if err := sess.FeedLine(ctx, line); err != nil && ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return sess.printStack(out)
}

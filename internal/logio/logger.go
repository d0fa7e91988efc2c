// Package logio provides line oriented logging helpers.
package logio

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"
)

// Logger writes leveled "LEVEL: message" lines to an output stream, standard
// error by default. It is safe for concurrent use.
type Logger struct {
	mu       sync.Mutex
	output   io.Writer
	buf      bytes.Buffer
	exitCode int
}

// SetOutput sets the logger's output stream.
func (log *Logger) SetOutput(out io.Writer) {
	log.mu.Lock()
	defer log.mu.Unlock()
	log.output = out
}

// ExitCode returns a code to pass to os.Exit, facilitating "exit non-zero if
// any error log" semantics.
func (log *Logger) ExitCode() int {
	log.mu.Lock()
	defer log.mu.Unlock()
	return log.exitCode
}

// Leveledf returns a typical printf-style formatting function that logs
// messages with the given level.
func (log *Logger) Leveledf(level string) func(mess string, args ...interface{}) {
	if level == "ERROR" {
		return log.Errorf
	}
	return func(mess string, args ...interface{}) { log.Printf(level, mess, args...) }
}

// ErrorIf logs any non-nil error through Errorf.
func (log *Logger) ErrorIf(err error) {
	if err != nil {
		log.Errorf("%v", err)
	}
}

// Errorf is like Printf("ERROR", ...) but additionally retains state so
// that ExitCode() will return non-zero.
func (log *Logger) Errorf(mess string, args ...interface{}) {
	log.mu.Lock()
	defer log.mu.Unlock()
	log.printf("ERROR", mess, args...)
	if log.exitCode == 0 {
		log.exitCode = 1
	}
}

// Printf prints a line to the output stream like "level: message...\n".
// Output failures mark the logger with exit code 2.
func (log *Logger) Printf(level, mess string, args ...interface{}) {
	log.mu.Lock()
	defer log.mu.Unlock()
	log.printf(level, mess, args...)
}

func (log *Logger) printf(level, mess string, args ...interface{}) {
	if level != "" {
		log.buf.WriteString(level)
		log.buf.WriteString(": ")
	}
	if len(args) > 0 {
		fmt.Fprintf(&log.buf, mess, args...)
	} else {
		log.buf.WriteString(mess)
	}
	if b := log.buf.Bytes(); len(b) > 0 && b[len(b)-1] != '\n' {
		log.buf.WriteByte('\n')
	}
	out := log.output
	if out == nil {
		out = os.Stderr
	}
	if _, err := log.buf.WriteTo(out); err != nil {
		log.buf.Reset()
		log.exitCode = 2
	}
}

// Package flushio provides buffered writers that must be flushed explicitly,
// so that output may be held back until a program needs input or ends.
package flushio

import (
	"bufio"
	"io"
)

// WriteFlusher is a flush-able io.Writer.
type WriteFlusher interface {
	io.Writer
	Flush() error
}

// NewWriteFlusher returns w itself if it already flushes, a no-op flushing
// wrapper around in-memory buffers and io.Discard, or else a bufio.Writer.
func NewWriteFlusher(w io.Writer) WriteFlusher {
	switch impl := w.(type) {
	case WriteFlusher:
		return impl
	case buffer:
		return nopFlusher{w}
	}
	if w == io.Discard {
		return nopFlusher{w}
	}
	return bufio.NewWriter(w)
}

// buffer matches in memory buffers like bytes.Buffer and strings.Builder.
type buffer interface {
	io.Writer
	Len() int
	Grow(n int)
	Reset()
}

type nopFlusher struct{ io.Writer }

func (nf nopFlusher) Flush() error { return nil }

// WriteFlushers combines any number of WriteFlusher-s into a single one that
// will write into and flush all of them.
func WriteFlushers(wfs ...WriteFlusher) WriteFlusher {
	var all multi
	for _, one := range wfs {
		if many, ok := one.(multi); ok {
			all = append(all, many...)
		} else if one != nil {
			all = append(all, one)
		}
	}
	switch len(all) {
	case 0:
		return nil
	case 1:
		return all[0]
	}
	return all
}

type multi []WriteFlusher

func (wfs multi) Write(p []byte) (n int, err error) {
	for _, wf := range wfs {
		n, err = wf.Write(p)
		if err != nil {
			return n, err
		}
		if n != len(p) {
			return n, io.ErrShortWrite
		}
	}
	return len(p), nil
}

func (wfs multi) Flush() (err error) {
	for _, wf := range wfs {
		if ferr := wf.Flush(); err == nil {
			err = ferr
		}
	}
	return err
}

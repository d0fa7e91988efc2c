// Package fileinput reads lines sequentially through a queue of named input
// streams, tracking the location of each line for diagnostics.
package fileinput

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Location names a line in an Input stream.
type Location struct {
	Name string
	Line int
}

func (loc Location) String() string { return fmt.Sprintf("%v:%v", loc.Name, loc.Line) }

// Input reads lines from each reader in Queue in turn. Loc is the location
// of the line last returned by ReadLine.
type Input struct {
	Queue []io.Reader
	Loc   Location

	br *bufio.Reader
}

// ReadLine returns the next line without its line ending, moving on to the
// next queued stream at the end of each one. It returns io.EOF once every
// stream is exhausted.
func (in *Input) ReadLine() (string, error) {
	for {
		if in.br == nil && !in.nextIn() {
			return "", io.EOF
		}
		line, err := in.br.ReadString('\n')
		if line != "" {
			in.Loc.Line++
			line = strings.TrimSuffix(line, "\n")
			return strings.TrimSuffix(line, "\r"), nil
		}
		if err != nil && err != io.EOF {
			return "", err
		}
		in.close()
	}
}

func (in *Input) nextIn() bool {
	if len(in.Queue) == 0 {
		return false
	}
	r := in.Queue[0]
	in.Queue = in.Queue[1:]
	if br, ok := r.(*bufio.Reader); ok {
		in.br = br
	} else if nr, ok := r.(named); ok {
		if br, ok := nr.Reader.(*bufio.Reader); ok {
			in.br = br
		} else {
			in.br = bufio.NewReader(nr)
		}
	} else {
		in.br = bufio.NewReader(r)
	}
	in.Loc = Location{Name: nameOf(r)}
	return true
}

func (in *Input) close() {
	in.br = nil
}

// Named attaches a name to a reader; a named *bufio.Reader is still read
// directly, so that its buffer may be shared with other readers.
func Named(name string, r io.Reader) io.Reader { return named{name, r} }

type named struct {
	name string
	io.Reader
}

func (nr named) Name() string { return nr.name }

func nameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", obj)
}

package main

import (
	"errors"
	"io"
	"strings"
	"unicode/utf8"
)

var errInvalidUTF8 = errors.New("stream did not contain valid UTF-8")

var nullaryOps = map[string]nullaryFunc{
	"t": func(vm *VM) (Value, error) {
		if err := vm.flushOutput(); err != nil {
			return nil, err
		}
		b, err := io.ReadAll(vm.in)
		if err != nil {
			return nil, inputError(err)
		}
		if !utf8.Valid(b) {
			return nil, inputError(errInvalidUTF8)
		}
		return Str(b), nil
	},
	"l": func(vm *VM) (Value, error) {
		if err := vm.flushOutput(); err != nil {
			return nil, err
		}
		line, err := vm.in.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, inputError(err)
		}
		if !utf8.ValidString(line) {
			return nil, inputError(errInvalidUTF8)
		}
		return Str(strings.TrimSuffix(line, "\n")), nil
	},
}

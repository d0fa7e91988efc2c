package main

import (
	"fmt"
	"io"
	"strings"
)

// vmDumper writes a readable picture of a VM's state: the current stack,
// any suspended frames, and the variables that no longer hold their seed.
type vmDumper struct {
	vm  *VM
	out io.Writer

	allVars bool
}

func (dump vmDumper) dump() {
	fmt.Fprintf(dump.out, "# VM Dump\n")
	fmt.Fprintf(dump.out, "  depth: %v/%v\n", dump.vm.depth, dump.vm.maxDepth)
	dump.dumpStack()
	dump.dumpFrames()
	dump.dumpVars()
}

func (dump vmDumper) dumpStack() {
	fmt.Fprintf(dump.out, "  stack: %v\n", FormatValues(dump.vm.stack))
}

func (dump vmDumper) dumpFrames() {
	for i := len(dump.vm.frames) - 1; i >= 0; i-- {
		fmt.Fprintf(dump.out, "  frame[%v]: %v\n", i, FormatValues(dump.vm.frames[i]))
	}
}

func (dump vmDumper) dumpVars() {
	var seed core
	seed.initVars()

	var buf strings.Builder
	for i, val := range dump.vm.vars {
		if !dump.allVars && equal(val, seed.vars[i]) {
			continue
		}
		if buf.Len() == 0 {
			buf.WriteString("  vars:")
		}
		fmt.Fprintf(&buf, " %c=%#v", 'A'+i, val)
	}
	if buf.Len() > 0 {
		buf.WriteByte('\n')
		io.WriteString(dump.out, buf.String())
	}
}

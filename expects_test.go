package main

import "time"

// @generated from golf_test.go

//go:generate go run scripts/gen_expects.go -- golf_test.go expects_test.go

func withProgSource(src string) func(progTestCase) progTestCase {
	return func(pt progTestCase) progTestCase {
		return pt.withSource(src)
	}
}

func withProgOptions(opts ...VMOption) func(progTestCase) progTestCase {
	return func(pt progTestCase) progTestCase {
		return pt.withOptions(opts...)
	}
}

func withProgInput(input string) func(progTestCase) progTestCase {
	return func(pt progTestCase) progTestCase {
		return pt.withInput(input)
	}
}

func withProgStack(values ...Value) func(progTestCase) progTestCase {
	return func(pt progTestCase) progTestCase {
		return pt.withStack(values...)
	}
}

func withProgVar(name byte, val Value) func(progTestCase) progTestCase {
	return func(pt progTestCase) progTestCase {
		return pt.withVar(name, val)
	}
}

func withProgTimeout(timeout time.Duration) func(progTestCase) progTestCase {
	return func(pt progTestCase) progTestCase {
		return pt.withTimeout(timeout)
	}
}

func expectProgError(err error) func(progTestCase) progTestCase {
	return func(pt progTestCase) progTestCase {
		return pt.expectError(err)
	}
}

func expectProgSyntaxError(tok string) func(progTestCase) progTestCase {
	return func(pt progTestCase) progTestCase {
		return pt.expectSyntaxError(tok)
	}
}

func expectProgStack(values ...Value) func(progTestCase) progTestCase {
	return func(pt progTestCase) progTestCase {
		return pt.expectStack(values...)
	}
}

func expectProgTop(values ...Value) func(progTestCase) progTestCase {
	return func(pt progTestCase) progTestCase {
		return pt.expectTop(values...)
	}
}

func expectProgVar(name byte, val Value) func(progTestCase) progTestCase {
	return func(pt progTestCase) progTestCase {
		return pt.expectVar(name, val)
	}
}

func expectProgOutput(output string) func(progTestCase) progTestCase {
	return func(pt progTestCase) progTestCase {
		return pt.expectOutput(output)
	}
}

func expectProgDisplay(display string) func(progTestCase) progTestCase {
	return func(pt progTestCase) progTestCase {
		return pt.expectDisplay(display)
	}
}

func expectProgDump(dump string) func(progTestCase) progTestCase {
	return func(pt progTestCase) progTestCase {
		return pt.expectDump(dump)
	}
}

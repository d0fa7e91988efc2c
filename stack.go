package main

// VM is a stack machine. Its value stack is the innermost frame; block
// application suspends the caller's frame on an explicit frame stack and
// runs against a fresh one, while variables and input stay shared.
type VM struct {
	core

	stack  []Value
	frames [][]Value
	spare  [][]Value
}

func (vm *VM) push(vals ...Value) {
	vm.stack = append(vm.stack, vals...)
}

func (vm *VM) pop() (Value, error) {
	i := len(vm.stack) - 1
	if i < 0 {
		return nil, errStackEmpty
	}
	val := vm.stack[i]
	vm.stack[i] = nil
	vm.stack = vm.stack[:i]
	return val, nil
}

func (vm *VM) top() (Value, error) {
	if i := len(vm.stack) - 1; i >= 0 {
		return vm.stack[i], nil
	}
	return nil, errStackEmpty
}

// popN pops n values, returned bottom first, or none if fewer remain.
func (vm *VM) popN(vals []Value) error {
	n := len(vm.stack) - len(vals)
	if n < 0 {
		return errStackEmpty
	}
	copy(vals, vm.stack[n:])
	for i := n; i < len(vm.stack); i++ {
		vm.stack[i] = nil
	}
	vm.stack = vm.stack[:n]
	return nil
}

func (vm *VM) pushFrame() {
	vm.frames = append(vm.frames, vm.stack)
	if i := len(vm.spare) - 1; i >= 0 {
		vm.stack = vm.spare[i]
		vm.spare[i] = nil
		vm.spare = vm.spare[:i]
	} else {
		vm.stack = nil
	}
}

func (vm *VM) popFrame() {
	done := vm.stack
	for i := range done {
		done[i] = nil
	}
	if cap(done) > 0 {
		vm.spare = append(vm.spare, done[:0])
	}
	i := len(vm.frames) - 1
	vm.stack = vm.frames[i]
	vm.frames[i] = nil
	vm.frames = vm.frames[:i]
}

// withFrame runs f against a fresh, empty frame, restoring the caller's frame
// afterwards whatever f leaves behind.
func (vm *VM) withFrame(f func() error) error {
	vm.pushFrame()
	defer vm.popFrame()
	return f()
}

// collapse takes the current frame's values as one: a lone value as is,
// several packed into an Array.
func (vm *VM) collapse() (Value, error) {
	switch len(vm.stack) {
	case 0:
		return nil, errStackEmpty
	case 1:
		return vm.pop()
	}
	arr := append(make(Array, 0, len(vm.stack)), vm.stack...)
	vm.stack = vm.stack[:0]
	return arr, nil
}

// Values returns a copy of the current stack, bottom first.
func (vm *VM) Values() []Value {
	return append(make([]Value, 0, len(vm.stack)), vm.stack...)
}

package vm

import "io"

// Option is a configuration function for a Virtual Machine.
type Option func(vm *VirtualMachine, maxDepth *int)

// WithStdout sets the writer that receives printed return values.
func WithStdout(w io.Writer) Option {
	return func(vm *VirtualMachine, _ *int) {
		vm.stdout = w
	}
}

// WithStderr sets the writer that receives runtime error reports.
func WithStderr(w io.Writer) Option {
	return func(vm *VirtualMachine, _ *int) {
		vm.stderr = w
	}
}

// WithObserver sets an observer to monitor VM execution.
func WithObserver(observer Observer) Option {
	return func(vm *VirtualMachine, _ *int) {
		vm.observer = observer
	}
}

// WithMaxStackDepth sets the operand stack capacity. Values below one are
// ignored.
func WithMaxStackDepth(depth int) Option {
	return func(_ *VirtualMachine, maxDepth *int) {
		if depth > 0 {
			*maxDepth = depth
		}
	}
}

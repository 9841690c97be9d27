package glox

import (
	"io"
	"os"

	"github.com/deepnoodle-ai/glox/compiler"
	"github.com/deepnoodle-ai/glox/dis"
	"github.com/deepnoodle-ai/glox/vm"
)

// Option configures a glox compilation or execution.
type Option func(*options)

type options struct {
	stdout        io.Writer
	stderr        io.Writer
	observer      vm.Observer
	name          string
	maxStackDepth int
	color         bool
}

func collectOptions(opts ...Option) *options {
	o := &options{
		stdout: os.Stdout,
		stderr: os.Stderr,
		name:   "code",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

func (o *options) compilerOpts() []compiler.Option {
	return []compiler.Option{compiler.WithErrorWriter(o.stderr)}
}

func (o *options) vmOpts() []vm.Option {
	opts := []vm.Option{
		vm.WithStdout(o.stdout),
		vm.WithStderr(o.stderr),
	}
	if o.observer != nil {
		opts = append(opts, vm.WithObserver(o.observer))
	}
	if o.maxStackDepth > 0 {
		opts = append(opts, vm.WithMaxStackDepth(o.maxStackDepth))
	}
	return opts
}

func (o *options) disOpts() []dis.PrintOption {
	return []dis.PrintOption{dis.WithColor(o.color)}
}

// WithStdout sets the writer that receives printed results and disassembly.
// Defaults to os.Stdout.
func WithStdout(w io.Writer) Option {
	return func(o *options) {
		o.stdout = w
	}
}

// WithStderr sets the writer that receives compile diagnostics and runtime
// error reports. Defaults to os.Stderr.
func WithStderr(w io.Writer) Option {
	return func(o *options) {
		o.stderr = w
	}
}

// WithObserver sets an observer for VM execution events.
func WithObserver(observer vm.Observer) Option {
	return func(o *options) {
		o.observer = observer
	}
}

// WithName sets the name printed in the disassembly header.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithMaxStackDepth overrides vm.DefaultMaxStackDepth.
func WithMaxStackDepth(depth int) Option {
	return func(o *options) {
		o.maxStackDepth = depth
	}
}

// WithColor enables colored disassembly output.
func WithColor(enabled bool) Option {
	return func(o *options) {
		o.color = enabled
	}
}

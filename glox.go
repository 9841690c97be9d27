// Package glox compiles and runs single expressions of a small dynamically
// typed language on a stack-based bytecode virtual machine.
//
//	result, err := glox.Interpret("1 + 2 * 3")
//
// prints 7 to standard output and returns ResultOK.
package glox

import (
	"fmt"

	"github.com/deepnoodle-ai/glox/bytecode"
	"github.com/deepnoodle-ai/glox/compiler"
	"github.com/deepnoodle-ai/glox/dis"
	"github.com/deepnoodle-ai/glox/object"
	"github.com/deepnoodle-ai/glox/vm"
)

// Result classifies the outcome of Interpret.
type Result int

const (
	ResultOK Result = iota
	ResultCompileError
	ResultRuntimeError
)

func (r Result) String() string {
	switch r {
	case ResultOK:
		return "ok"
	case ResultCompileError:
		return "compile error"
	case ResultRuntimeError:
		return "runtime error"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

// Compile compiles source into a chunk. The first diagnostic is written to
// the configured stderr and returned as a *errz.CompileError, in which case
// the chunk must not be run.
func Compile(source string, opts ...Option) (*bytecode.Chunk, error) {
	o := collectOptions(opts...)
	chunk, err := compiler.Compile(source, o.compilerOpts()...)
	if err != nil {
		return nil, err
	}
	return chunk, nil
}

// Run executes a compiled chunk and returns the value it printed.
func Run(chunk *bytecode.Chunk, opts ...Option) (object.Value, error) {
	o := collectOptions(opts...)
	return vm.Run(chunk, o.vmOpts()...)
}

// Interpret compiles and runs source. A chunk that failed to compile is
// never executed.
func Interpret(source string, opts ...Option) (Result, error) {
	chunk, err := Compile(source, opts...)
	if err != nil {
		return ResultCompileError, err
	}
	if _, err := Run(chunk, opts...); err != nil {
		return ResultRuntimeError, err
	}
	return ResultOK, nil
}

// Disassemble compiles source and writes its disassembly to the configured
// stdout under the name given by WithName.
func Disassemble(source string, opts ...Option) error {
	o := collectOptions(opts...)
	chunk, err := compiler.Compile(source, o.compilerOpts()...)
	if err != nil {
		return err
	}
	return dis.DisassembleChunk(chunk, o.name, o.stdout, o.disOpts()...)
}

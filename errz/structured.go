// Package errz defines the structured errors produced while compiling and
// running programs.
package errz

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind represents the category of an error.
type ErrorKind int

const (
	// ErrSyntax indicates a lexical or parsing error.
	ErrSyntax ErrorKind = iota
	// ErrType indicates an operand of the wrong type.
	ErrType
	// ErrRuntime indicates a general runtime error, such as a malformed chunk
	// or a stack fault.
	ErrRuntime
)

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrSyntax:
		return "syntax error"
	case ErrType:
		return "type error"
	case ErrRuntime:
		return "runtime error"
	default:
		return "error"
	}
}

// ErrMalformedChunk is wrapped by every error caused by bytecode that could
// not have been produced by the compiler.
var ErrMalformedChunk = errors.New("malformed chunk")

// CompileError describes the first diagnostic reported while compiling.
type CompileError struct {
	Line    int
	Where   string // " at end", " at 'x'", or empty for lexical errors
	Message string
}

// Error renders the diagnostic in the same form it is written to the
// compiler's error stream.
func (e *CompileError) Error() string {
	return fmt.Sprintf("[line %d] Error%s: %s", e.Line, e.Where, e.Message)
}

// Kind always returns ErrSyntax.
func (e *CompileError) Kind() ErrorKind {
	return ErrSyntax
}

// RuntimeError is raised by the virtual machine. Line is taken from the
// chunk's line table at the failing instruction.
type RuntimeError struct {
	kind    ErrorKind
	Message string
	Line    int
	Cause   error
}

// NewRuntimeError creates a RuntimeError of the given kind.
func NewRuntimeError(kind ErrorKind, line int, message string) *RuntimeError {
	return &RuntimeError{kind: kind, Message: message, Line: line}
}

// NewRuntimeErrorf creates a RuntimeError with a formatted message.
func NewRuntimeErrorf(kind ErrorKind, line int, format string, args ...any) *RuntimeError {
	return NewRuntimeError(kind, line, fmt.Sprintf(format, args...))
}

// Error renders the message followed by the script line trailer.
func (e *RuntimeError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	fmt.Fprintf(&b, "\n[line %d] in script.", e.Line)
	return b.String()
}

// Kind returns the category of the error.
func (e *RuntimeError) Kind() ErrorKind {
	return e.kind
}

// WithCause wraps the error with a cause.
func (e *RuntimeError) WithCause(cause error) *RuntimeError {
	e.Cause = cause
	return e
}

// Unwrap returns the underlying cause of the error.
func (e *RuntimeError) Unwrap() error {
	return e.Cause
}

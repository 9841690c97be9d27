package errz

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompileErrorFormatting(t *testing.T) {
	tests := []struct {
		err      *CompileError
		expected string
	}{
		{&CompileError{Line: 1, Where: " at end", Message: "Expect expression."},
			"[line 1] Error at end: Expect expression."},
		{&CompileError{Line: 3, Where: " at ')'", Message: "Expect expression."},
			"[line 3] Error at ')': Expect expression."},
		{&CompileError{Line: 2, Message: "Unterminated string."},
			"[line 2] Error: Unterminated string."},
	}
	for _, tt := range tests {
		require.Equal(t, tt.expected, tt.err.Error())
		require.Equal(t, ErrSyntax, tt.err.Kind())
	}
}

func TestRuntimeErrorFormatting(t *testing.T) {
	err := NewRuntimeError(ErrType, 4, "Operands must be numbers.")
	require.Equal(t, "Operands must be numbers.\n[line 4] in script.", err.Error())
	require.Equal(t, ErrType, err.Kind())
	require.Equal(t, "type error", err.Kind().String())
}

func TestRuntimeErrorCause(t *testing.T) {
	cause := fmt.Errorf("%w: constant index 3 out of range", ErrMalformedChunk)
	err := NewRuntimeErrorf(ErrRuntime, 1, "bad chunk: %v", cause).WithCause(cause)
	require.True(t, errors.Is(err, ErrMalformedChunk))

	var rerr *RuntimeError
	require.True(t, errors.As(error(err), &rerr))
	require.Equal(t, 1, rerr.Line)
}

func TestErrorKindString(t *testing.T) {
	require.Equal(t, "syntax error", ErrSyntax.String())
	require.Equal(t, "runtime error", ErrRuntime.String())
	require.Equal(t, "error", ErrorKind(42).String())
}

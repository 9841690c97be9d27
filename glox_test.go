package glox

import (
	"bytes"
	"errors"
	"testing"

	"github.com/deepnoodle-ai/glox/errz"
	"github.com/deepnoodle-ai/glox/object"
	"github.com/deepnoodle-ai/glox/vm"
	"github.com/stretchr/testify/require"
)

type countingObserver struct {
	vm.NoOpObserver
	steps int
}

func (c *countingObserver) OnStep(vm.StepEvent) bool {
	c.steps++
	return true
}

func interpret(source string, opts ...Option) (Result, string, string, error) {
	var stdout, stderr bytes.Buffer
	opts = append([]Option{WithStdout(&stdout), WithStderr(&stderr)}, opts...)
	result, err := Interpret(source, opts...)
	return result, stdout.String(), stderr.String(), err
}

func TestInterpret(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2", "3\n"},
		{"(1 + 2) * 3 - 4 / 2", "7\n"},
		{"-(-5)", "5\n"},
		{"10 / 2", "5\n"},
		{"!(1 >= 2)", "true\n"},
		{"nil", "nil\n"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, stdout, stderr, err := interpret(tt.input)
			require.Nil(t, err)
			require.Equal(t, ResultOK, result)
			require.Equal(t, tt.expected, stdout)
			require.Empty(t, stderr)
		})
	}
}

func TestInterpretCompileError(t *testing.T) {
	observer := &countingObserver{}
	result, stdout, stderr, err := interpret(`"abc`, WithObserver(observer))
	require.Equal(t, ResultCompileError, result)
	var cerr *errz.CompileError
	require.True(t, errors.As(err, &cerr))
	require.Equal(t, "Unterminated string.", cerr.Message)
	require.Equal(t, "[line 1] Error: Unterminated string.\n", stderr)
	require.Empty(t, stdout)
	require.Equal(t, 0, observer.steps)
}

func TestInterpretNeverRunsBrokenChunk(t *testing.T) {
	// The chunk for "1 + 2" is complete before the error and must not run.
	observer := &countingObserver{}
	result, stdout, stderr, err := interpret("1 + 2 )", WithObserver(observer))
	require.Equal(t, ResultCompileError, result)
	require.NotNil(t, err)
	require.Equal(t, "[line 1] Error at ')': Expect end of expression.\n", stderr)
	require.Empty(t, stdout)
	require.Equal(t, 0, observer.steps)
}

func TestInterpretRuntimeError(t *testing.T) {
	result, stdout, stderr, err := interpret("true + 1")
	require.Equal(t, ResultRuntimeError, result)
	var rerr *errz.RuntimeError
	require.True(t, errors.As(err, &rerr))
	require.Equal(t, "Operands must be numbers.\n[line 1] in script.\n", stderr)
	require.Empty(t, stdout)
}

func TestInterpretStackDepth(t *testing.T) {
	result, _, _, err := interpret("1 + (2 + (3 + 4))", WithMaxStackDepth(3))
	require.Equal(t, ResultRuntimeError, result)
	require.Contains(t, err.Error(), "Stack overflow.")

	result, stdout, _, err := interpret("1 + (2 + (3 + 4))", WithMaxStackDepth(4))
	require.Nil(t, err)
	require.Equal(t, ResultOK, result)
	require.Equal(t, "10\n", stdout)
}

func TestCompileAndRun(t *testing.T) {
	var stdout bytes.Buffer
	chunk, err := Compile("3 * 4", WithStderr(&bytes.Buffer{}))
	require.Nil(t, err)
	require.Equal(t, 4, chunk.InstructionCount())

	value, err := Run(chunk, WithStdout(&stdout))
	require.Nil(t, err)
	require.Equal(t, object.NewNumber(12), value)
	require.Equal(t, "12\n", stdout.String())

	chunk, err = Compile("3 *", WithStderr(&bytes.Buffer{}))
	require.Nil(t, chunk)
	require.NotNil(t, err)
}

func TestDisassemble(t *testing.T) {
	var stdout bytes.Buffer
	err := Disassemble("-1 == 2", WithStdout(&stdout), WithName("expr"))
	require.Nil(t, err)
	require.Equal(t, `== expr ==
0000    1 LOAD_CONST          0 '1'
0001    | UNARY_NEGATIVE
0002    | LOAD_CONST          1 '2'
0003    | COMPARE_EQUAL
0004    | RETURN_VALUE
`, stdout.String())

	var stderr bytes.Buffer
	err = Disassemble("@", WithStdout(&stdout), WithStderr(&stderr))
	require.NotNil(t, err)
	require.Equal(t, "[line 1] Error: Unexpected character.\n", stderr.String())
}

func TestResultString(t *testing.T) {
	require.Equal(t, "ok", ResultOK.String())
	require.Equal(t, "compile error", ResultCompileError.String())
	require.Equal(t, "runtime error", ResultRuntimeError.String())
	require.Equal(t, "Result(9)", Result(9).String())
}

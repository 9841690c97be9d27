package op

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetInfo(t *testing.T) {
	info := GetInfo(LoadConst)
	require.Equal(t, "LOAD_CONST", info.Name)
	require.Equal(t, 1, info.OperandCount)
	require.Equal(t, LoadConst, info.Code)
	require.True(t, info.Valid())
}

func TestGetInfoAllOpcodes(t *testing.T) {
	tests := []struct {
		code     Code
		name     string
		operands int
		pops     int
		pushes   int
	}{
		{ReturnValue, "RETURN_VALUE", 0, 1, 0},
		{LoadConst, "LOAD_CONST", 1, 0, 1},
		{UnaryNegative, "UNARY_NEGATIVE", 0, 1, 1},
		{UnaryNot, "UNARY_NOT", 0, 1, 1},
		{BinaryAdd, "BINARY_ADD", 0, 2, 1},
		{BinarySubtract, "BINARY_SUBTRACT", 0, 2, 1},
		{BinaryMultiply, "BINARY_MULTIPLY", 0, 2, 1},
		{BinaryDivide, "BINARY_DIVIDE", 0, 2, 1},
		{CompareEqual, "COMPARE_EQUAL", 0, 2, 1},
		{CompareGreater, "COMPARE_GREATER", 0, 2, 1},
		{CompareLess, "COMPARE_LESS", 0, 2, 1},
		{Nil, "NIL", 0, 0, 1},
		{False, "FALSE", 0, 0, 1},
		{True, "TRUE", 0, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := GetInfo(tt.code)
			require.Equal(t, tt.code, info.Code)
			require.Equal(t, tt.name, info.Name)
			require.Equal(t, tt.operands, info.OperandCount)
			require.Equal(t, tt.pops, info.Pops)
			require.Equal(t, tt.pushes, info.Pushes)
			require.Equal(t, tt.name, tt.code.String())
		})
	}
}

func TestUnknownOpcode(t *testing.T) {
	require.False(t, GetInfo(Invalid).Valid())
	require.False(t, GetInfo(Code(255)).Valid())
	require.Equal(t, "UNKNOWN", Code(200).String())
}

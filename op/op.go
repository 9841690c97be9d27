// Package op defines opcodes used by the compiler and virtual machine.
package op

// Code is an integer opcode that indicates an operation to execute.
type Code uint8

const (
	Invalid Code = 0

	// Execution
	ReturnValue Code = 4

	// Load
	LoadConst Code = 24

	// Unary operations
	UnaryNegative Code = 42
	UnaryNot      Code = 43

	// Arithmetic
	BinaryAdd      Code = 50
	BinarySubtract Code = 51
	BinaryMultiply Code = 52
	BinaryDivide   Code = 53

	// Comparison
	CompareEqual   Code = 60
	CompareGreater Code = 61
	CompareLess    Code = 62

	// Push constants
	Nil   Code = 80
	False Code = 81
	True  Code = 82
)

// Info contains information about an opcode. Pops and Pushes describe the
// fixed effect the instruction has on the operand stack.
type Info struct {
	Code         Code
	Name         string
	OperandCount int
	Pops         int
	Pushes       int
}

// Valid reports whether the info describes a defined opcode.
func (i Info) Valid() bool {
	return i.Name != ""
}

var infos [256]Info

func init() {
	type opInfo struct {
		op     Code
		name   string
		count  int
		pops   int
		pushes int
	}
	ops := []opInfo{
		{BinaryAdd, "BINARY_ADD", 0, 2, 1},
		{BinaryDivide, "BINARY_DIVIDE", 0, 2, 1},
		{BinaryMultiply, "BINARY_MULTIPLY", 0, 2, 1},
		{BinarySubtract, "BINARY_SUBTRACT", 0, 2, 1},
		{CompareEqual, "COMPARE_EQUAL", 0, 2, 1},
		{CompareGreater, "COMPARE_GREATER", 0, 2, 1},
		{CompareLess, "COMPARE_LESS", 0, 2, 1},
		{False, "FALSE", 0, 0, 1},
		{LoadConst, "LOAD_CONST", 1, 0, 1},
		{Nil, "NIL", 0, 0, 1},
		{ReturnValue, "RETURN_VALUE", 0, 1, 0},
		{True, "TRUE", 0, 0, 1},
		{UnaryNegative, "UNARY_NEGATIVE", 0, 1, 1},
		{UnaryNot, "UNARY_NOT", 0, 1, 1},
	}
	for _, o := range ops {
		infos[o.op] = Info{
			Name:         o.name,
			Code:         o.op,
			OperandCount: o.count,
			Pops:         o.pops,
			Pushes:       o.pushes,
		}
	}
}

// GetInfo returns information about the given opcode. The returned Info is
// not Valid for undefined opcodes.
func GetInfo(op Code) Info {
	return infos[op]
}

// String returns the opcode mnemonic.
func (c Code) String() string {
	if info := infos[c]; info.Valid() {
		return info.Name
	}
	return "UNKNOWN"
}

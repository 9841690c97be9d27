package bytecode

import (
	"fmt"

	"github.com/deepnoodle-ai/glox/errz"
	"github.com/deepnoodle-ai/glox/object"
	"github.com/deepnoodle-ai/glox/op"
)

// Instruction is one decoded bytecode operation. Operand is only meaningful
// for opcodes whose info declares an operand; it is zero otherwise.
type Instruction struct {
	Op      op.Code
	Operand int
}

// String returns the mnemonic, followed by the operand when there is one.
func (i Instruction) String() string {
	if op.GetInfo(i.Op).OperandCount > 0 {
		return fmt.Sprintf("%s %d", i.Op, i.Operand)
	}
	return i.Op.String()
}

// Chunk is an append-only container of instructions, their source lines,
// and a constant pool.
type Chunk struct {
	code      []Instruction
	lines     []int
	constants []object.Value
}

// New returns an empty Chunk.
func New() *Chunk {
	return &Chunk{}
}

// Write appends an instruction attributed to the given source line.
func (c *Chunk) Write(instr Instruction, line int) {
	c.code = append(c.code, instr)
	c.lines = append(c.lines, line)
}

// WriteOp appends an instruction that takes no operand.
func (c *Chunk) WriteOp(code op.Code, line int) {
	c.Write(Instruction{Op: code}, line)
}

// AddConstant appends a value to the constant pool and returns its index.
// Equal values are never merged; each call gets a fresh slot.
func (c *Chunk) AddConstant(value object.Value) int {
	c.constants = append(c.constants, value)
	return len(c.constants) - 1
}

// InstructionCount returns the number of instructions in the chunk.
func (c *Chunk) InstructionCount() int {
	return len(c.code)
}

// Instruction returns the instruction at the given index.
func (c *Chunk) Instruction(index int) Instruction {
	return c.code[index]
}

// Instructions returns a copy of the instruction list.
func (c *Chunk) Instructions() []Instruction {
	result := make([]Instruction, len(c.code))
	copy(result, c.code)
	return result
}

// LineAt returns the source line of the instruction at the given index, or
// 0 if the index is out of range.
func (c *Chunk) LineAt(index int) int {
	if index < 0 || index >= len(c.lines) {
		return 0
	}
	return c.lines[index]
}

// ConstantCount returns the size of the constant pool.
func (c *Chunk) ConstantCount() int {
	return len(c.constants)
}

// Constant returns the constant at the given pool index.
func (c *Chunk) Constant(index int) object.Value {
	return c.constants[index]
}

// Validate checks the structural invariants of the chunk. Chunks produced by
// the compiler always pass; decoded or hand-built chunks may not.
func (c *Chunk) Validate() error {
	if len(c.code) != len(c.lines) {
		return fmt.Errorf("%w: %d instructions but %d lines",
			errz.ErrMalformedChunk, len(c.code), len(c.lines))
	}
	for i, instr := range c.code {
		info := op.GetInfo(instr.Op)
		if !info.Valid() {
			return fmt.Errorf("%w: unknown opcode %d at offset %d",
				errz.ErrMalformedChunk, instr.Op, i)
		}
		if info.OperandCount == 0 && instr.Operand != 0 {
			return fmt.Errorf("%w: unexpected operand for %s at offset %d",
				errz.ErrMalformedChunk, info.Name, i)
		}
		if instr.Op == op.LoadConst && (instr.Operand < 0 || instr.Operand >= len(c.constants)) {
			return fmt.Errorf("%w: constant index %d out of range at offset %d",
				errz.ErrMalformedChunk, instr.Operand, i)
		}
	}
	return nil
}

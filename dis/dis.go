// Package dis supports analysis of bytecode by disassembling it. This works
// with the opcodes defined in the `op` package and the Chunk type from the
// `bytecode` package.
package dis

import (
	"fmt"
	"io"

	"github.com/deepnoodle-ai/glox/bytecode"
	"github.com/deepnoodle-ai/glox/object"
	"github.com/deepnoodle-ai/glox/op"
	"github.com/fatih/color"
)

// Instruction represents a single bytecode instruction and its operands.
type Instruction struct {
	Offset   int           `json:"offset"`
	Line     int           `json:"line"`
	SameLine bool          `json:"same_line"` // line equals the previous instruction's line
	Name     string        `json:"name"`
	Opcode   op.Code       `json:"opcode"`
	Operands []int         `json:"operands,omitempty"`
	Constant *object.Value `json:"constant,omitempty"`
}

// Disassemble returns a parsed representation of the given chunk. It fails
// if an instruction uses an unknown opcode or references a constant that is
// not in the pool.
func Disassemble(chunk *bytecode.Chunk) ([]Instruction, error) {
	instructions := make([]Instruction, 0, chunk.InstructionCount())
	for offset := 0; offset < chunk.InstructionCount(); offset++ {
		instr := chunk.Instruction(offset)
		info := op.GetInfo(instr.Op)
		if !info.Valid() {
			return nil, fmt.Errorf("unknown opcode %d at offset %d", instr.Op, offset)
		}
		line := chunk.LineAt(offset)
		result := Instruction{
			Offset:   offset,
			Line:     line,
			SameLine: offset > 0 && line == chunk.LineAt(offset-1),
			Name:     info.Name,
			Opcode:   instr.Op,
		}
		if info.OperandCount > 0 {
			result.Operands = []int{instr.Operand}
		}
		if instr.Op == op.LoadConst {
			constant, err := getConstantValue(chunk, instr.Operand)
			if err != nil {
				return nil, err
			}
			result.Constant = &constant
		}
		instructions = append(instructions, result)
	}
	return instructions, nil
}

// PrintOption configures Print.
type PrintOption func(*printer)

type printer struct {
	color bool
}

// WithColor enables or disables ANSI colors for mnemonics and constants.
// Colors are off by default.
func WithColor(enabled bool) PrintOption {
	return func(p *printer) {
		p.color = enabled
	}
}

func (p *printer) paint(attr color.Attribute, s string) string {
	if !p.color {
		return s
	}
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(s)
}

// Print a string representation of the given instructions to the given
// writer, preceded by a "== name ==" header. Each row holds the 4-digit
// offset, the source line (or "|" when unchanged), the mnemonic, and for
// LOAD_CONST the pool index and the quoted constant.
func Print(instructions []Instruction, name string, writer io.Writer, opts ...PrintOption) {
	p := &printer{}
	for _, opt := range opts {
		opt(p)
	}
	fmt.Fprintf(writer, "== %s ==\n", name)
	for _, instr := range instructions {
		fmt.Fprintf(writer, "%04d ", instr.Offset)
		if instr.SameLine {
			fmt.Fprint(writer, "   | ")
		} else {
			fmt.Fprintf(writer, "%4d ", instr.Line)
		}
		if instr.Constant == nil {
			fmt.Fprintln(writer, p.paint(color.Bold, instr.Name))
			continue
		}
		fmt.Fprintf(writer, "%s %4d '%s'\n",
			p.paint(color.Bold, fmt.Sprintf("%-16s", instr.Name)),
			instr.Operands[0],
			p.paint(color.FgYellow, instr.Constant.String()))
	}
}

// DisassembleChunk disassembles the chunk and prints it to the writer.
func DisassembleChunk(chunk *bytecode.Chunk, name string, writer io.Writer, opts ...PrintOption) error {
	instructions, err := Disassemble(chunk)
	if err != nil {
		return err
	}
	Print(instructions, name, writer, opts...)
	return nil
}

func getConstantValue(chunk *bytecode.Chunk, index int) (object.Value, error) {
	if index < 0 || chunk.ConstantCount() <= index {
		return object.Nil, fmt.Errorf("constant index out of range: %d", index)
	}
	return chunk.Constant(index), nil
}

// Package bytecode defines the Chunk, the unit of compiled code executed by
// the virtual machine.
//
// A Chunk holds three parallel pieces of data:
//
//   - an ordered list of instructions, each an opcode with an optional operand
//   - a line table with exactly one source line per instruction
//   - a constant pool of values referenced by LOAD_CONST operands
//
// The compiler is the only writer of a Chunk. Once compilation finishes the
// chunk is treated as read-only by the disassembler and the virtual machine.
// Chunks can be saved and restored with Marshal and Unmarshal.
package bytecode

package vm

import (
	"github.com/deepnoodle-ai/glox/object"
	"github.com/deepnoodle-ai/glox/op"
)

// StepEvent contains information about an instruction about to execute.
type StepEvent struct {
	IP         int     // Index of the instruction about to run
	Opcode     op.Code // The opcode about to be executed
	OpcodeName string  // Human-readable opcode name
	Line       int     // Source line of the instruction
	StackDepth int     // Number of values on the operand stack
}

// ReturnEvent contains information about a RETURN_VALUE instruction.
type ReturnEvent struct {
	Value object.Value // The value about to be printed
	Line  int          // Source line of the return instruction
}

// Observer receives callbacks during VM execution. Returning false from
// any callback stops execution with ErrHaltedByObserver.
type Observer interface {
	OnStep(event StepEvent) bool
	OnReturn(event ReturnEvent) bool
}

// NoOpObserver is an observer that does nothing. It can be embedded
// to implement only the callbacks you need.
type NoOpObserver struct{}

func (NoOpObserver) OnStep(StepEvent) bool     { return true }
func (NoOpObserver) OnReturn(ReturnEvent) bool { return true }

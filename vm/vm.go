// Package vm provides a VirtualMachine that executes compiled bytecode.
package vm

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/deepnoodle-ai/glox/bytecode"
	"github.com/deepnoodle-ai/glox/errz"
	"github.com/deepnoodle-ai/glox/object"
	"github.com/deepnoodle-ai/glox/op"
)

const (
	// DefaultMaxStackDepth is the operand stack capacity used unless
	// WithMaxStackDepth says otherwise.
	DefaultMaxStackDepth = 256
)

// ErrHaltedByObserver is returned when an observer callback asks the VM to
// stop.
var ErrHaltedByObserver = errors.New("execution halted by observer")

// VirtualMachine executes a single Chunk. It owns its operand stack and is
// not safe for concurrent use.
type VirtualMachine struct {
	ip    int // index of the next instruction to execute
	sp    int // number of values on the stack
	chunk *bytecode.Chunk
	stack []object.Value

	result    object.Value
	hasResult bool

	stdout   io.Writer
	stderr   io.Writer
	observer Observer
}

// New creates a new Virtual Machine for the given chunk.
func New(chunk *bytecode.Chunk, options ...Option) *VirtualMachine {
	vm := &VirtualMachine{
		chunk:  chunk,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	maxDepth := DefaultMaxStackDepth
	for _, opt := range options {
		opt(vm, &maxDepth)
	}
	vm.stack = make([]object.Value, maxDepth)
	return vm
}

// Run executes the chunk from its first instruction until a RETURN_VALUE
// instruction prints the result. On failure the returned error is a
// *errz.RuntimeError, which is also written to the VM's stderr writer.
func (vm *VirtualMachine) Run() error {
	vm.ip = 0
	vm.sp = 0
	vm.result = object.Nil
	vm.hasResult = false
	if err := vm.eval(); err != nil {
		var rerr *errz.RuntimeError
		if errors.As(err, &rerr) {
			fmt.Fprintln(vm.stderr, rerr.Error())
		}
		return err
	}
	return nil
}

// Result returns the value printed by the last successful Run. The bool is
// false if no RETURN_VALUE instruction has executed.
func (vm *VirtualMachine) Result() (object.Value, bool) {
	return vm.result, vm.hasResult
}

// StackDepth returns the number of values currently on the operand stack.
func (vm *VirtualMachine) StackDepth() int {
	return vm.sp
}

// GetIP returns the index of the next instruction to execute.
func (vm *VirtualMachine) GetIP() int {
	return vm.ip
}

func (vm *VirtualMachine) eval() error {
	count := vm.chunk.InstructionCount()

	// Run to the end of the chunk. Every valid chunk returns before then.
	for vm.ip < count {
		instr := vm.chunk.Instruction(vm.ip)

		if vm.observer != nil {
			event := StepEvent{
				IP:         vm.ip,
				Opcode:     instr.Op,
				OpcodeName: instr.Op.String(),
				Line:       vm.chunk.LineAt(vm.ip),
				StackDepth: vm.sp,
			}
			if !vm.observer.OnStep(event) {
				return ErrHaltedByObserver
			}
		}

		// Advance the instruction pointer before executing, so error
		// reporting uses ip-1 as the current instruction.
		vm.ip++

		var err error
		switch instr.Op {
		case op.LoadConst:
			if instr.Operand < 0 || instr.Operand >= vm.chunk.ConstantCount() {
				return vm.malformed("constant index %d out of range", instr.Operand)
			}
			err = vm.push(vm.chunk.Constant(instr.Operand))
		case op.Nil:
			err = vm.push(object.Nil)
		case op.True:
			err = vm.push(object.True)
		case op.False:
			err = vm.push(object.False)
		case op.UnaryNegative:
			err = vm.negate()
		case op.UnaryNot:
			var value object.Value
			if value, err = vm.pop(); err == nil {
				err = vm.push(object.NewBool(value.IsFalsy()))
			}
		case op.CompareEqual:
			err = vm.equal()
		case op.BinaryAdd, op.BinarySubtract, op.BinaryMultiply, op.BinaryDivide,
			op.CompareGreater, op.CompareLess:
			err = vm.binaryOp(instr.Op)
		case op.ReturnValue:
			return vm.returnValue()
		default:
			return vm.malformed("unknown opcode %d", instr.Op)
		}
		if err != nil {
			return err
		}
	}
	return vm.malformed("Missing return instruction.")
}

func (vm *VirtualMachine) negate() error {
	value, err := vm.peek(0)
	if err != nil {
		return err
	}
	n, ok := value.AsNumber()
	if !ok {
		return vm.typeError("Operand must be a number.")
	}
	vm.stack[vm.sp-1] = object.NewNumber(-n)
	return nil
}

func (vm *VirtualMachine) equal() error {
	b, err := vm.pop()
	if err != nil {
		return err
	}
	a, err := vm.pop()
	if err != nil {
		return err
	}
	return vm.push(object.NewBool(a.Equals(b)))
}

// binaryOp checks both operands in place before consuming them, so a type
// error leaves the stack untouched. The right operand is on top.
func (vm *VirtualMachine) binaryOp(code op.Code) error {
	right, err := vm.peek(0)
	if err != nil {
		return err
	}
	left, err := vm.peek(1)
	if err != nil {
		return err
	}
	b, bok := right.AsNumber()
	a, aok := left.AsNumber()
	if !aok || !bok {
		return vm.typeError("Operands must be numbers.")
	}
	vm.sp -= 2

	var result object.Value
	switch code {
	case op.BinaryAdd:
		result = object.NewNumber(a + b)
	case op.BinarySubtract:
		result = object.NewNumber(a - b)
	case op.BinaryMultiply:
		result = object.NewNumber(a * b)
	case op.BinaryDivide:
		result = object.NewNumber(a / b)
	case op.CompareGreater:
		result = object.NewBool(a > b)
	case op.CompareLess:
		result = object.NewBool(a < b)
	default:
		panic(fmt.Sprintf("vm: %s is not a binary operator", code))
	}
	return vm.push(result)
}

func (vm *VirtualMachine) returnValue() error {
	value, err := vm.pop()
	if err != nil {
		return err
	}
	if vm.observer != nil {
		event := ReturnEvent{
			Value: value,
			Line:  vm.currentLine(),
		}
		if !vm.observer.OnReturn(event) {
			return ErrHaltedByObserver
		}
	}
	vm.result = value
	vm.hasResult = true
	fmt.Fprintln(vm.stdout, value.String())
	return nil
}

func (vm *VirtualMachine) push(value object.Value) error {
	if vm.sp >= len(vm.stack) {
		return vm.evalError("Stack overflow.")
	}
	vm.stack[vm.sp] = value
	vm.sp++
	return nil
}

func (vm *VirtualMachine) pop() (object.Value, error) {
	if vm.sp == 0 {
		return object.Nil, vm.malformed("Stack underflow.")
	}
	vm.sp--
	value := vm.stack[vm.sp]
	vm.stack[vm.sp] = object.Nil
	return value, nil
}

func (vm *VirtualMachine) peek(distance int) (object.Value, error) {
	if distance >= vm.sp {
		return object.Nil, vm.malformed("Stack underflow.")
	}
	return vm.stack[vm.sp-1-distance], nil
}

// currentLine returns the source line of the executing instruction.
func (vm *VirtualMachine) currentLine() int {
	return vm.chunk.LineAt(vm.ip - 1)
}

// runtimeError creates a RuntimeError attributed to the current instruction.
func (vm *VirtualMachine) runtimeError(kind errz.ErrorKind, format string, args ...any) *errz.RuntimeError {
	return errz.NewRuntimeErrorf(kind, vm.currentLine(), format, args...)
}

// typeError creates a type error at the current instruction.
func (vm *VirtualMachine) typeError(format string, args ...any) *errz.RuntimeError {
	return vm.runtimeError(errz.ErrType, format, args...)
}

// evalError creates a general runtime error at the current instruction.
func (vm *VirtualMachine) evalError(format string, args ...any) *errz.RuntimeError {
	return vm.runtimeError(errz.ErrRuntime, format, args...)
}

// malformed creates a runtime error for bytecode the compiler cannot
// produce. It wraps errz.ErrMalformedChunk.
func (vm *VirtualMachine) malformed(format string, args ...any) *errz.RuntimeError {
	return vm.evalError(format, args...).WithCause(errz.ErrMalformedChunk)
}

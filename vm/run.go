package vm

import (
	"github.com/deepnoodle-ai/glox/bytecode"
	"github.com/deepnoodle-ai/glox/object"
)

// Run executes a chunk on a new VirtualMachine and returns the value its
// RETURN_VALUE instruction printed.
func Run(chunk *bytecode.Chunk, options ...Option) (object.Value, error) {
	machine := New(chunk, options...)
	if err := machine.Run(); err != nil {
		return object.Nil, err
	}
	result, _ := machine.Result()
	return result, nil
}

package bytecode

import (
	"fmt"

	"github.com/deepnoodle-ai/glox/object"
	"github.com/deepnoodle-ai/glox/op"
	"github.com/fxamacker/cbor/v2"
)

// FormatVersion is the current encoding version. Increment when making
// incompatible changes to the serialized form.
const FormatVersion uint16 = 1

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("bytecode: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Serialization types

type chunkState struct {
	Version   uint16           `cbor:"version"`
	Code      []instructionDef `cbor:"code"`
	Lines     []int            `cbor:"lines"`
	Constants []constantDef    `cbor:"constants"`
}

type instructionDef struct {
	Op      uint8 `cbor:"op"`
	Operand int   `cbor:"operand,omitempty"`
}

type constantDef struct {
	Type   string  `cbor:"type"`
	Bool   bool    `cbor:"bool,omitempty"`
	Number float64 `cbor:"number"`
}

// Marshal converts a Chunk into its CBOR representation. The encoding is
// canonical, so equal chunks always produce identical bytes.
func Marshal(chunk *Chunk) ([]byte, error) {
	state := chunkState{
		Version:   FormatVersion,
		Code:      make([]instructionDef, 0, len(chunk.code)),
		Lines:     append([]int{}, chunk.lines...),
		Constants: make([]constantDef, 0, len(chunk.constants)),
	}
	for _, instr := range chunk.code {
		state.Code = append(state.Code, instructionDef{
			Op:      uint8(instr.Op),
			Operand: instr.Operand,
		})
	}
	for _, value := range chunk.constants {
		def := constantDef{Type: value.Type().String()}
		switch value.Type() {
		case object.BOOL:
			def.Bool, _ = value.AsBool()
		case object.NUMBER:
			def.Number, _ = value.AsNumber()
		}
		state.Constants = append(state.Constants, def)
	}
	return cborEncMode.Marshal(state)
}

// Unmarshal converts a CBOR representation into a Chunk. The decoded chunk
// is validated before it is returned.
func Unmarshal(data []byte) (*Chunk, error) {
	var state chunkState
	if err := cbor.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("bytecode: unmarshal chunk: %w", err)
	}
	if state.Version != FormatVersion {
		return nil, fmt.Errorf("bytecode: unsupported format version %d (expected %d)",
			state.Version, FormatVersion)
	}
	chunk := &Chunk{
		code:      make([]Instruction, 0, len(state.Code)),
		lines:     append([]int{}, state.Lines...),
		constants: make([]object.Value, 0, len(state.Constants)),
	}
	for _, def := range state.Code {
		chunk.code = append(chunk.code, Instruction{
			Op:      op.Code(def.Op),
			Operand: def.Operand,
		})
	}
	for i, def := range state.Constants {
		switch def.Type {
		case object.NIL.String():
			chunk.constants = append(chunk.constants, object.Nil)
		case object.BOOL.String():
			chunk.constants = append(chunk.constants, object.NewBool(def.Bool))
		case object.NUMBER.String():
			chunk.constants = append(chunk.constants, object.NewNumber(def.Number))
		default:
			return nil, fmt.Errorf("bytecode: unknown constant type %q at index %d", def.Type, i)
		}
	}
	if err := chunk.Validate(); err != nil {
		return nil, err
	}
	return chunk, nil
}

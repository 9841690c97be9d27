package vm

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/deepnoodle-ai/glox/compiler"
	"github.com/deepnoodle-ai/glox/object"
	"github.com/deepnoodle-ai/glox/op"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	NoOpObserver
	steps    []StepEvent
	returns  []ReturnEvent
	stopAt   int
	stopping bool
}

func (r *recordingObserver) OnStep(event StepEvent) bool {
	r.steps = append(r.steps, event)
	if r.stopping && event.IP == r.stopAt {
		return false
	}
	return true
}

func (r *recordingObserver) OnReturn(event ReturnEvent) bool {
	r.returns = append(r.returns, event)
	return true
}

func TestObserverSteps(t *testing.T) {
	chunk, err := compiler.Compile("1 +\n2")
	require.Nil(t, err)
	observer := &recordingObserver{}
	result := runChunk(t, chunk, WithObserver(observer))
	require.Nil(t, result.err)

	require.Len(t, observer.steps, 4)
	require.Equal(t, StepEvent{IP: 0, Opcode: op.LoadConst, OpcodeName: "LOAD_CONST", Line: 1, StackDepth: 0}, observer.steps[0])
	require.Equal(t, StepEvent{IP: 1, Opcode: op.LoadConst, OpcodeName: "LOAD_CONST", Line: 2, StackDepth: 1}, observer.steps[1])
	require.Equal(t, StepEvent{IP: 2, Opcode: op.BinaryAdd, OpcodeName: "BINARY_ADD", Line: 2, StackDepth: 2}, observer.steps[2])
	require.Equal(t, StepEvent{IP: 3, Opcode: op.ReturnValue, OpcodeName: "RETURN_VALUE", Line: 2, StackDepth: 1}, observer.steps[3])

	require.Equal(t, []ReturnEvent{{Value: object.NewNumber(3), Line: 2}}, observer.returns)
}

func TestObserverHalts(t *testing.T) {
	chunk, err := compiler.Compile("1 + 2")
	require.Nil(t, err)
	observer := &recordingObserver{stopping: true, stopAt: 2}
	result := runChunk(t, chunk, WithObserver(observer))
	require.True(t, errors.Is(result.err, ErrHaltedByObserver))
	require.Empty(t, result.stdout)
	require.Empty(t, result.stderr)
	require.Len(t, observer.steps, 3)
}

func TestTraceObserver(t *testing.T) {
	chunk, err := compiler.Compile("-4")
	require.Nil(t, err)
	var logs bytes.Buffer
	logger := zerolog.New(&logs).Level(zerolog.DebugLevel)
	result := runChunk(t, chunk, WithObserver(NewTraceObserver(logger)))
	require.Nil(t, result.err)
	require.Equal(t, "-4\n", result.stdout)

	lines := strings.Split(strings.TrimSpace(logs.String()), "\n")
	require.Len(t, lines, 4)

	var first map[string]any
	require.Nil(t, json.Unmarshal([]byte(lines[0]), &first))
	require.Equal(t, "step", first["message"])
	require.Equal(t, "LOAD_CONST", first["op"])
	require.Equal(t, float64(0), first["ip"])

	var last map[string]any
	require.Nil(t, json.Unmarshal([]byte(lines[3]), &last))
	require.Equal(t, "return", last["message"])
	require.Equal(t, "-4", last["value"])
}

func TestTraceObserverDisabledLevel(t *testing.T) {
	chunk, err := compiler.Compile("1")
	require.Nil(t, err)
	var logs bytes.Buffer
	logger := zerolog.New(&logs).Level(zerolog.InfoLevel)
	result := runChunk(t, chunk, WithObserver(NewTraceObserver(logger)))
	require.Nil(t, result.err)
	require.Empty(t, logs.String())
}

package vm

import "github.com/rs/zerolog"

// TraceObserver logs every executed instruction at debug level.
type TraceObserver struct {
	logger zerolog.Logger
}

// NewTraceObserver returns an observer that writes a structured trace of
// execution to the given logger.
func NewTraceObserver(logger zerolog.Logger) *TraceObserver {
	return &TraceObserver{logger: logger}
}

func (t *TraceObserver) OnStep(event StepEvent) bool {
	t.logger.Debug().
		Int("ip", event.IP).
		Str("op", event.OpcodeName).
		Int("line", event.Line).
		Int("stack", event.StackDepth).
		Msg("step")
	return true
}

func (t *TraceObserver) OnReturn(event ReturnEvent) bool {
	t.logger.Debug().
		Str("value", event.Value.String()).
		Int("line", event.Line).
		Msg("return")
	return true
}

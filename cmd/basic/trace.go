package main

import (
	"github.com/rs/zerolog"

	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/interpreter"
)

// tracer logs each line as execution enters it, and every GOSUB and
// RETURN.
type tracer struct {
	interpreter.NoOpObserver
	log zerolog.Logger
}

func newTracer(logger zerolog.Logger) *tracer {
	return &tracer{log: logger.Level(zerolog.DebugLevel)}
}

func (t *tracer) Config() interpreter.ObserverConfig {
	return interpreter.NewObserverConfig(interpreter.StepOnLine)
}

func (t *tracer) OnStep(event interpreter.StepEvent) bool {
	t.log.Debug().
		Int("line", event.Line).
		Int("gosubs", event.GosubDepth).
		Int("loops", event.LoopDepth).
		Msg(event.Stmt.String())
	return true
}

func (t *tracer) OnGosub(event interpreter.GosubEvent) bool {
	t.log.Debug().Int("from", event.From).Int("depth", event.Depth).Msgf("GOSUB %d", event.Target)
	return true
}

func (t *tracer) OnReturn(event interpreter.ReturnEvent) bool {
	t.log.Debug().Int("from", event.From).Int("depth", event.Depth).Msgf("RETURN to %d", event.To)
	return true
}

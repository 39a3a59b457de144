package interpreter

import (
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/ast"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/errors"
)

// StepMode controls when OnStep callbacks are triggered.
type StepMode uint8

const (
	// StepAll calls OnStep before every statement.
	// Use for: statement tracing, single-step debuggers.
	StepAll StepMode = iota

	// StepNone never calls OnStep.
	// Use for: observers that only need GOSUB/RETURN events.
	StepNone

	// StepSampled calls OnStep every N statements.
	// Use for: statistical profiling of long running programs.
	StepSampled

	// StepOnLine calls OnStep when execution enters a different line.
	// Use for: coverage tools, line breakpoints.
	StepOnLine
)

// ObserverConfig specifies what events an observer wants to receive.
// Use NewObserverConfig() to create configs with safe defaults.
type ObserverConfig struct {
	// StepMode controls OnStep callback frequency.
	StepMode StepMode

	// SampleInterval is the number of statements between OnStep calls
	// when StepMode is StepSampled. Values <= 0 are treated as 1.
	SampleInterval int

	// ObserveGosubs enables OnGosub callbacks.
	ObserveGosubs bool

	// ObserveReturns enables OnReturn callbacks.
	ObserveReturns bool
}

// NewObserverConfig creates a config with safe defaults.
// ObserveGosubs and ObserveReturns default to true.
func NewObserverConfig(mode StepMode) ObserverConfig {
	return ObserverConfig{
		StepMode:       mode,
		SampleInterval: 100,
		ObserveGosubs:  true,
		ObserveReturns: true,
	}
}

// NormalizeConfig validates and clamps config values.
func NormalizeConfig(cfg ObserverConfig) ObserverConfig {
	if cfg.StepMode == StepSampled && cfg.SampleInterval <= 0 {
		cfg.SampleInterval = 1
	}
	return cfg
}

// Observer receives execution events. It can be used for tracing,
// debugging, line coverage or profiling without changing the interpreter.
//
// Implementations can embed NoOpObserver and override only the methods
// they need. Methods are called synchronously from the step loop.
type Observer interface {
	// Config returns the observer's configuration.
	// Called once when the run starts.
	Config() ObserverConfig

	// OnStep is called before a statement executes, as selected by the
	// StepMode. Returns false to halt execution.
	OnStep(event StepEvent) bool

	// OnGosub is called when GOSUB transfers control.
	// Returns false to halt execution.
	OnGosub(event GosubEvent) bool

	// OnReturn is called when RETURN resumes after a GOSUB.
	// Returns false to halt execution.
	OnReturn(event ReturnEvent) bool
}

// StepEvent describes the statement about to execute.
type StepEvent struct {
	// Line is the BASIC line number.
	Line int

	// Statement is the index of the statement within the line.
	Statement int

	// Stmt is the statement itself.
	Stmt ast.Stmt

	// Location is the source location of the statement.
	Location errors.SourceLocation

	// GosubDepth is the number of active GOSUBs.
	GosubDepth int

	// LoopDepth is the number of active FOR loops.
	LoopDepth int
}

// GosubEvent describes a subroutine call.
type GosubEvent struct {
	// From is the line holding the GOSUB.
	From int

	// Target is the first line of the subroutine.
	Target int

	// Depth is the GOSUB stack depth after the call.
	Depth int
}

// ReturnEvent describes a return from a subroutine.
type ReturnEvent struct {
	// From is the line holding the RETURN.
	From int

	// To is the line execution resumes on.
	To int

	// Depth is the GOSUB stack depth after returning.
	Depth int
}

// NoOpObserver is an Observer implementation that does nothing.
// Embed this in your observer to provide default implementations
// for methods you don't need.
//
// NoOpObserver uses StepAll with GOSUB and RETURN events enabled.
// Override Config() to use a different mode.
type NoOpObserver struct{}

func (NoOpObserver) Config() ObserverConfig {
	return NewObserverConfig(StepAll)
}

func (NoOpObserver) OnStep(StepEvent) bool     { return true }
func (NoOpObserver) OnGosub(GosubEvent) bool   { return true }
func (NoOpObserver) OnReturn(ReturnEvent) bool { return true }

var _ Observer = NoOpObserver{}

// observerState tracks the step mode bookkeeping for one run.
type observerState struct {
	observer Observer
	config   ObserverConfig
	count    int
	lastLine int
}

func newObserverState(o Observer) *observerState {
	if o == nil {
		return nil
	}
	return &observerState{
		observer: o,
		config:   NormalizeConfig(o.Config()),
		lastLine: -1,
	}
}

// step reports false if the observer asked to halt.
func (s *observerState) step(event StepEvent) bool {
	if s == nil {
		return true
	}
	switch s.config.StepMode {
	case StepNone:
		return true
	case StepSampled:
		s.count++
		if s.count < s.config.SampleInterval {
			return true
		}
		s.count = 0
	case StepOnLine:
		if event.Line == s.lastLine {
			return true
		}
		s.lastLine = event.Line
	}
	return s.observer.OnStep(event)
}

func (s *observerState) gosub(event GosubEvent) bool {
	if s == nil || !s.config.ObserveGosubs {
		return true
	}
	return s.observer.OnGosub(event)
}

func (s *observerState) ret(event ReturnEvent) bool {
	if s == nil || !s.config.ObserveReturns {
		return true
	}
	return s.observer.OnReturn(event)
}

// Package interpreter executes parsed BASIC programs.
//
// An Interpreter owns all state of a run: variables, the DATA cursor, the
// GOSUB and FOR stacks and user functions. It talks to the outside world
// only through a system.Context. Statements execute one at a time; each
// produces a signal that tells the step loop where to go next. Stop
// requests and context cancellation are honored between statements.
package interpreter

import (
	"context"
	goerrors "errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog"

	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/ast"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/data"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/errors"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/errz"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/object"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/parser"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/system"
)

// DefaultMaxStackDepth is the default limit on active GOSUBs, FOR loops and
// nested FN calls.
const DefaultMaxStackDepth = 1024

var (
	// ErrAlreadyRunning is returned when a run or step is started while
	// another one is in progress on the same Interpreter.
	ErrAlreadyRunning = goerrors.New("interpreter is already running")

	// ErrNoProgram is returned by Step before a program is loaded.
	ErrNoProgram = goerrors.New("no program loaded")

	// ErrCannotContinue is returned by Continue when the last run ended or
	// faulted rather than being halted.
	ErrCannotContinue = goerrors.New("can't continue")
)

// State is the lifecycle state of an Interpreter.
type State int

const (
	Idle State = iota
	Running
	Stopped
	Faulted
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	case Faulted:
		return "faulted"
	default:
		return "unknown"
	}
}

// StopReason explains why a run stopped without a fault.
type StopReason int

const (
	StopNone      StopReason = iota
	StopEnd                  // END, or execution ran past the last line
	StopStatement            // a STOP statement
	StopRequested            // Stop was called
	StopObserver             // an observer returned false
)

func (r StopReason) String() string {
	switch r {
	case StopNone:
		return "none"
	case StopEnd:
		return "end"
	case StopStatement:
		return "stop statement"
	case StopRequested:
		return "stop requested"
	case StopObserver:
		return "observer"
	default:
		return "unknown"
	}
}

// gosubFrame is an active GOSUB. FOR loops opened after it are dropped
// when it returns.
type gosubFrame struct {
	ret   position
	loops int
}

type forFrame struct {
	name   string
	limit  float64
	step   float64
	resume position
}

// Interpreter runs BASIC programs against a system.Context.
type Interpreter struct {
	sys      system.Context
	memory   system.Memory
	logger   zerolog.Logger
	observer Observer
	filename string
	width    int
	maxDepth int
	seed     int64
	seeded   bool

	busy          atomic.Bool
	stopRequested atomic.Bool
	current       atomic.Int64

	mu        sync.Mutex
	state     State
	fault     *errz.Fault
	reason    StopReason
	sessionID uuid.UUID

	// Session state, owned by the goroutine running the program.
	lines   []*ast.Line
	index   map[int]int
	pos     position
	vars    *object.Variables
	data    *data.Manager
	gosubs  []gosubFrame
	loops   []forFrame
	fns     map[string]*ast.DefFn
	fnDepth int
	rng     *rand.Rand
	lastRnd float64
	obs     *observerState
	printer *lineWriter
}

// New returns an Interpreter that displays output and reads input through
// sys. If sys also implements system.Memory it backs PEEK, POKE and CALL.
func New(sys system.Context, opts ...Option) *Interpreter {
	in := &Interpreter{
		sys:      sys,
		logger:   zerolog.Nop(),
		width:    system.DefaultWidth,
		maxDepth: DefaultMaxStackDepth,
		vars:     object.NewVariables(),
		data:     data.NewManager(),
		fns:      map[string]*ast.DefFn{},
	}
	if memory, ok := sys.(system.Memory); ok {
		in.memory = memory
	}
	for _, opt := range opts {
		opt(in)
	}
	in.current.Store(-1)
	return in
}

// Run parses source and executes the resulting program. Parse errors are
// returned before anything executes.
func (in *Interpreter) Run(ctx context.Context, source string) error {
	program, err := parser.Parse(ctx, source, parser.WithFilename(in.filename))
	if err != nil {
		return err
	}
	return in.Execute(ctx, program)
}

// Execute runs program from its lowest line until it ends, stops or
// faults. A runtime fault is returned as an *errz.Fault. Ending, a STOP
// statement and a Stop request all return nil; StopReason tells them apart.
func (in *Interpreter) Execute(ctx context.Context, program *ast.Program) (err error) {
	if !in.busy.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer in.busy.Store(false)
	defer in.recoverPanic(nil, &err)

	in.load(program)
	for {
		done, err := in.step(ctx)
		if done {
			return err
		}
	}
}

// Load begins a session for program without executing anything. Use Step
// to execute it one statement at a time.
func (in *Interpreter) Load(program *ast.Program) error {
	if !in.busy.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer in.busy.Store(false)
	in.load(program)
	return nil
}

// Step executes the next statement of the loaded program. It reports true
// once the program has ended, stopped or faulted; the fault, if any, is
// returned as the error.
func (in *Interpreter) Step(ctx context.Context) (done bool, err error) {
	if !in.busy.CompareAndSwap(false, true) {
		return false, ErrAlreadyRunning
	}
	defer in.busy.Store(false)
	defer in.recoverPanic(&done, &err)

	switch in.State() {
	case Idle:
		return true, ErrNoProgram
	case Stopped:
		return true, nil
	case Faulted:
		return true, in.Fault()
	}
	return in.step(ctx)
}

// Continue resumes a program halted by STOP, a Stop request or an
// observer, keeping its variables and stacks. After STOP execution resumes
// with the statement that follows it.
func (in *Interpreter) Continue(ctx context.Context) (err error) {
	if !in.busy.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer in.busy.Store(false)
	defer in.recoverPanic(nil, &err)

	in.mu.Lock()
	if in.state != Stopped || in.reason == StopEnd || in.reason == StopNone {
		in.mu.Unlock()
		return ErrCannotContinue
	}
	reason := in.reason
	in.state = Running
	in.reason = StopNone
	in.mu.Unlock()

	if reason == StopStatement {
		in.pos.stmt++
		in.settle()
		in.setCurrent()
	}
	in.logger.Debug().Str("session", in.SessionID().String()).Int("line", in.lineNumber()).Msg("continuing")
	for {
		done, err := in.step(ctx)
		if done {
			return err
		}
	}
}

// Discontinue makes a halted program impossible to continue, as when the
// program it was running has been edited. Variables are kept.
func (in *Interpreter) Discontinue() {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.state == Stopped && in.reason != StopEnd {
		in.reason = StopEnd
		in.current.Store(-1)
	}
}

// Immediate executes a line typed without a line number, as at the
// prompt. It sees the variables, functions and DATA position left by the
// last run, and a halted program can still be continued afterwards. Line
// numbers named by GOTO or GOSUB do not exist while it runs. Faults are
// reported without a line number.
func (in *Interpreter) Immediate(ctx context.Context, line *ast.Line) (err error) {
	if !in.busy.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer in.busy.Store(false)

	lines, index, pos := in.lines, in.index, in.pos
	gosubs, loops := in.gosubs, in.loops
	in.mu.Lock()
	state, reason, fault := in.state, in.reason, in.fault
	in.state = Running
	in.mu.Unlock()
	defer func() {
		in.lines, in.index, in.pos = lines, index, pos
		in.gosubs, in.loops = gosubs, loops
		in.mu.Lock()
		in.state, in.reason, in.fault = state, reason, fault
		in.mu.Unlock()
		in.setCurrent()
		var f *errz.Fault
		if goerrors.As(err, &f) {
			f.Line = -1
		}
	}()
	defer in.recoverPanic(nil, &err)

	if in.rng == nil {
		in.reseed()
	}
	in.stopRequested.Store(false)
	in.lines = []*ast.Line{line}
	in.index = map[int]int{line.Number: 0}
	in.pos = position{}
	in.gosubs, in.loops = nil, nil
	in.settle()
	if in.pos.line >= len(in.lines) {
		return nil
	}
	for {
		done, err := in.step(ctx)
		if done {
			return err
		}
	}
}

// Stop asks a running program to stop before its next statement. It is
// safe to call from any goroutine.
func (in *Interpreter) Stop() {
	in.stopRequested.Store(true)
	in.logger.Debug().Str("session", in.SessionID().String()).Msg("stop requested")
}

// State returns the lifecycle state.
func (in *Interpreter) State() State {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.state
}

// Fault returns the fault that ended the last run, or nil.
func (in *Interpreter) Fault() *errz.Fault {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.fault
}

// StopReason returns why the last run stopped.
func (in *Interpreter) StopReason() StopReason {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.reason
}

// SessionID identifies the current or most recent run.
func (in *Interpreter) SessionID() uuid.UUID {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.sessionID
}

// CurrentLine returns the line number of the next statement to execute,
// or -1 if there is none.
func (in *Interpreter) CurrentLine() int {
	return int(in.current.Load())
}

// Variables returns the variables of the current or most recent run. It
// must not be used while a program is executing on another goroutine.
func (in *Interpreter) Variables() *object.Variables {
	return in.vars
}

func (in *Interpreter) load(program *ast.Program) {
	if program == nil {
		program = ast.NewProgram()
	}
	in.lines = program.Lines()
	in.index = make(map[int]int, len(in.lines))
	for i, line := range in.lines {
		in.index[line.Number] = i
	}
	in.vars = object.NewVariables()
	in.data = data.NewManager()
	in.data.Load(program)
	in.gosubs = nil
	in.loops = nil
	clear(in.fns)
	in.fnDepth = 0
	in.reseed()
	in.obs = newObserverState(in.observer)
	in.stopRequested.Store(false)

	id, err := uuid.NewV4()
	if err != nil {
		id = uuid.Nil
	}
	in.mu.Lock()
	in.state = Running
	in.fault = nil
	in.reason = StopNone
	in.sessionID = id
	in.mu.Unlock()

	in.pos = position{}
	in.settle()
	in.setCurrent()
	in.logger.Debug().
		Str("session", id.String()).
		Int("lines", len(in.lines)).
		Int("data", in.data.Len()).
		Msg("program loaded")
}

func (in *Interpreter) reseed() {
	seed := in.seed
	if !in.seeded {
		seed = time.Now().UnixNano()
	}
	in.rng = rand.New(rand.NewPCG(uint64(seed), 0))
	in.lastRnd = 0
}

// step executes one statement. It reports true when the run is over.
func (in *Interpreter) step(ctx context.Context) (bool, error) {
	if in.stopRequested.Swap(false) {
		return in.apply(halt(StopRequested))
	}
	if err := ctx.Err(); err != nil {
		return in.apply(raise(errz.New(errz.Cancelled, "execution cancelled").WithCause(err)))
	}
	if in.pos.line >= len(in.lines) {
		return in.apply(halt(StopEnd))
	}
	line := in.lines[in.pos.line]
	stmt := line.Stmts[in.pos.stmt]
	event := StepEvent{
		Line:       line.Number,
		Statement:  in.pos.stmt,
		Stmt:       stmt,
		Location:   in.location(line, in.pos.stmt),
		GosubDepth: len(in.gosubs),
		LoopDepth:  len(in.loops),
	}
	if !in.obs.step(event) {
		return in.apply(halt(StopObserver))
	}
	return in.apply(in.exec(ctx, stmt))
}

// apply moves the program position as the signal directs.
func (in *Interpreter) apply(sig signal) (bool, error) {
	switch sig.kind {
	case sigContinue:
		in.pos.stmt++
	case sigJump:
		target, ok := in.index[sig.line]
		if !ok {
			return in.apply(raise(errz.New(errz.UndefinedLine, "line %d does not exist", sig.line)))
		}
		if !sig.gosub {
			in.pos = position{line: target}
			break
		}
		if len(in.gosubs) >= in.maxDepth {
			return in.apply(raise(errz.New(errz.OutOfMemory, "too many nested GOSUBs")))
		}
		from := in.lines[in.pos.line].Number
		in.gosubs = append(in.gosubs, gosubFrame{
			ret:   position{line: in.pos.line, stmt: in.pos.stmt + 1},
			loops: len(in.loops),
		})
		in.pos = position{line: target}
		if !in.obs.gosub(GosubEvent{From: from, Target: sig.line, Depth: len(in.gosubs)}) {
			return in.apply(halt(StopObserver))
		}
	case sigReturn:
		if len(in.gosubs) == 0 {
			return in.apply(raise(errz.New(errz.ReturnWithoutGosub, "RETURN without an active GOSUB")))
		}
		from := in.lines[in.pos.line].Number
		in.pos = in.popGosub()
		in.settle()
		event := ReturnEvent{From: from, To: in.lineNumber(), Depth: len(in.gosubs)}
		if !in.obs.ret(event) {
			return in.apply(halt(StopObserver))
		}
	case sigLoopContinue:
		in.pos = sig.resume
	case sigSkipLine:
		in.pos = position{line: in.pos.line + 1}
	case sigHalt:
		in.finish(sig.reason)
		return true, nil
	case sigRaise:
		return true, in.fail(sig.fault)
	}
	in.settle()
	in.setCurrent()
	if in.pos.line >= len(in.lines) {
		in.finish(StopEnd)
		return true, nil
	}
	return false, nil
}

// popGosub removes the innermost GOSUB along with any FOR loops opened
// inside it, and returns where it was called from.
func (in *Interpreter) popGosub() position {
	frame := in.gosubs[len(in.gosubs)-1]
	in.gosubs = in.gosubs[:len(in.gosubs)-1]
	if frame.loops < len(in.loops) {
		in.loops = in.loops[:frame.loops]
	}
	return frame.ret
}

// loopBase is the index of the first FOR loop visible to the current
// subroutine. NEXT and FOR never reach loops opened by a caller.
func (in *Interpreter) loopBase() int {
	if len(in.gosubs) == 0 {
		return 0
	}
	return in.gosubs[len(in.gosubs)-1].loops
}

// settle moves past the end of lines and skips lines with no statements.
func (in *Interpreter) settle() {
	for in.pos.line < len(in.lines) && in.pos.stmt >= len(in.lines[in.pos.line].Stmts) {
		in.pos = position{line: in.pos.line + 1}
	}
}

func (in *Interpreter) lineNumber() int {
	if in.pos.line < len(in.lines) {
		return in.lines[in.pos.line].Number
	}
	return -1
}

func (in *Interpreter) setCurrent() {
	in.current.Store(int64(in.lineNumber()))
}

func (in *Interpreter) finish(reason StopReason) {
	in.mu.Lock()
	in.state = Stopped
	in.reason = reason
	id := in.sessionID
	in.mu.Unlock()
	in.logger.Debug().
		Str("session", id.String()).
		Stringer("reason", reason).
		Int("line", in.lineNumber()).
		Msg("program stopped")
}

func (in *Interpreter) fail(fault *errz.Fault) error {
	in.locate(fault)
	in.mu.Lock()
	in.state = Faulted
	in.fault = fault
	id := in.sessionID
	in.mu.Unlock()
	in.logger.Debug().
		Str("session", id.String()).
		Stringer("kind", fault.Kind).
		Int("line", fault.Line).
		Msg(fault.Message)
	return fault
}

// locate records where a fault happened, unless it already knows.
func (in *Interpreter) locate(fault *errz.Fault) {
	if fault.Line >= 0 {
		return
	}
	if in.pos.line < len(in.lines) {
		line := in.lines[in.pos.line]
		fault.Line = line.Number
		fault.Statement = in.pos.stmt
		fault.Location = in.location(line, in.pos.stmt)
	}
	fault.Stack = in.stackTrace()
}

func (in *Interpreter) location(line *ast.Line, stmt int) errors.SourceLocation {
	pos := line.NumberPos
	if stmt >= 0 && stmt < len(line.Stmts) {
		pos = line.Stmts[stmt].Pos()
	}
	filename := in.filename
	if pos.File != "" {
		filename = pos.File
	}
	return errors.SourceLocation{
		Filename: filename,
		Line:     pos.LineNumber(),
		Column:   pos.ColumnNumber(),
		Source:   line.Text,
	}
}

// stackTrace lists the active GOSUB statements, innermost first.
func (in *Interpreter) stackTrace() []errors.StackFrame {
	var frames []errors.StackFrame
	for i := len(in.gosubs) - 1; i >= 0; i-- {
		ret := in.gosubs[i].ret
		line := in.lines[ret.line]
		frames = append(frames, errors.StackFrame{
			Function: fmt.Sprintf("GOSUB in line %d", line.Number),
			Location: in.location(line, ret.stmt-1),
		})
	}
	return frames
}

// recoverPanic turns a panic escaping a host callback into a fault.
func (in *Interpreter) recoverPanic(done *bool, err *error) {
	r := recover()
	if r == nil {
		return
	}
	fault := errz.New(errz.HostIO, "panic: %v", r)
	if cause, ok := r.(error); ok {
		fault.WithCause(cause)
	}
	*err = in.fail(fault)
	if done != nil {
		*done = true
	}
}

// asFault returns err as a fault. Errors that are not faults came from the
// host and are reported as HostIO faults.
func asFault(err error) *errz.Fault {
	var fault *errz.Fault
	if goerrors.As(err, &fault) {
		return fault
	}
	return errz.New(errz.HostIO, "%v", err).WithCause(err)
}

// hostError wraps an error returned by a blocking host call. Calls that
// failed because ctx was cancelled become Cancelled faults.
func hostError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return errz.New(errz.Cancelled, "execution cancelled").WithCause(ctxErr)
	}
	return errz.New(errz.HostIO, "%v", err).WithCause(err)
}

package basic

import (
	"context"
	goerrors "errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/ast"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/interpreter"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/parser"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/syntax"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/system"
)

// ErrUnknownCommand is returned by Session.Command for words it does not
// handle.
var ErrUnknownCommand = goerrors.New("unknown command")

// Session is the prompt of an interactive interpreter. It keeps a program
// that is edited one numbered line at a time, and an interpreter whose
// variables survive between runs and immediate statements, so that a
// program halted by STOP or Ctrl-C can be inspected and continued.
type Session struct {
	mu      sync.Mutex
	sys     system.Context
	cfg     *config
	program *ast.Program
	interp  *interpreter.Interpreter
}

// NewSession returns a session with an empty program.
func NewSession(sys system.Context, opts ...Option) *Session {
	cfg := newConfig(opts...)
	return &Session{
		sys:     sys,
		cfg:     cfg,
		program: ast.NewProgram(),
		interp:  interpreter.New(sys, cfg.interpreterOpts()...),
	}
}

// Enter handles one line typed at the prompt. A line that starts with a
// line number is stored in the program, replacing any line with the same
// number; a bare line number deletes that line. A line starting with a
// command word (RUN, LIST, NEW, CONT, DEL, RENUM) runs the command.
// Anything else is executed immediately.
func (s *Session) Enter(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if unicode.IsDigit(rune(text[0])) {
		return s.edit(ctx, text)
	}
	word, args, _ := strings.Cut(text, " ")
	err := s.Command(ctx, strings.ToUpper(word), strings.TrimSpace(args))
	if !goerrors.Is(err, ErrUnknownCommand) {
		return err
	}
	return s.Immediate(ctx, text)
}

func (s *Session) edit(ctx context.Context, text string) error {
	digits := strings.IndexFunc(text, func(r rune) bool { return !unicode.IsDigit(r) })
	if digits < 0 {
		number, err := strconv.Atoi(text)
		if err != nil {
			return err
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		s.program.Remove(number)
		s.interp.Discontinue()
		return nil
	}
	parsed, err := parser.Parse(ctx, text, s.cfg.parserOpts()...)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, line := range parsed.Lines() {
		s.program.Add(line)
	}
	s.interp.Discontinue()
	return nil
}

// Command runs a prompt command. It returns ErrUnknownCommand when word is
// not one.
func (s *Session) Command(ctx context.Context, word, args string) error {
	switch word {
	case "RUN":
		return s.Run(ctx)
	case "CONT":
		return s.Continue(ctx)
	case "NEW":
		s.New()
		return nil
	case "LIST":
		first, last, err := lineRange(args)
		if err != nil {
			return err
		}
		return s.List(first, last)
	case "DEL":
		first, last, err := lineRange(args)
		if err != nil || args == "" {
			return fmt.Errorf("DEL needs a line range: %q", args)
		}
		s.Delete(first, last)
		return nil
	case "RENUM":
		start, step := 10, 10
		if args != "" {
			fields := strings.Split(args, ",")
			var err error
			if start, err = strconv.Atoi(strings.TrimSpace(fields[0])); err != nil {
				return fmt.Errorf("RENUM: bad start %q", fields[0])
			}
			if len(fields) > 1 {
				if step, err = strconv.Atoi(strings.TrimSpace(fields[1])); err != nil {
					return fmt.Errorf("RENUM: bad step %q", fields[1])
				}
			}
		}
		return s.Renumber(start, step)
	}
	return ErrUnknownCommand
}

// lineRange parses "", "10", "10-50", "-50", "10-" and "10,50".
func lineRange(args string) (int, int, error) {
	first, last := 0, ast.MaxLineNumber
	args = strings.ReplaceAll(args, " ", "")
	if args == "" {
		return first, last, nil
	}
	lo, hi, isRange := strings.Cut(args, "-")
	if !isRange {
		lo, hi, isRange = strings.Cut(args, ",")
	}
	var err error
	if lo != "" {
		if first, err = strconv.Atoi(lo); err != nil {
			return 0, 0, fmt.Errorf("bad line number %q", lo)
		}
	}
	switch {
	case !isRange:
		last = first
	case hi != "":
		if last, err = strconv.Atoi(hi); err != nil {
			return 0, 0, fmt.Errorf("bad line number %q", hi)
		}
	}
	return first, last, nil
}

// Run runs the program from its first line with fresh variables.
func (s *Session) Run(ctx context.Context) error {
	return s.interp.Execute(ctx, s.Program())
}

// Continue resumes a program halted by STOP or Stop. Editing the program
// after it halted makes it impossible to continue.
func (s *Session) Continue(ctx context.Context) error {
	return s.interp.Continue(ctx)
}

// Immediate executes statements typed without a line number.
func (s *Session) Immediate(ctx context.Context, text string) error {
	parsed, err := parser.Parse(ctx, "0 "+text)
	if err != nil {
		return err
	}
	line, _ := parsed.Get(0)
	return s.interp.Immediate(ctx, line)
}

// Stop asks a running program or immediate statement to stop.
func (s *Session) Stop() {
	s.interp.Stop()
}

// Interpreter returns the interpreter used for runs, for inspecting its
// state after a program stops.
func (s *Session) Interpreter() *interpreter.Interpreter {
	return s.interp
}

// New discards the program.
func (s *Session) New() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.program = ast.NewProgram()
	s.interp.Discontinue()
}

// List writes the lines numbered first to last.
func (s *Session) List(first, last int) error {
	s.mu.Lock()
	lines := s.program.Range(first, last)
	s.mu.Unlock()
	for _, line := range lines {
		if err := s.sys.WriteLine(line.String()); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the lines numbered first to last.
func (s *Session) Delete(first, last int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, line := range s.program.Range(first, last) {
		s.program.Remove(line.Number)
	}
	s.interp.Discontinue()
}

// Renumber renumbers the program from start by step.
func (s *Session) Renumber(start, step int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	renumbered, err := syntax.Renumber(start, step).Transform(s.program)
	if err != nil {
		return err
	}
	s.program = renumbered
	s.interp.Discontinue()
	return nil
}

// Load replaces the program with source.
func (s *Session) Load(source string) error {
	program, err := compile(context.Background(), source, s.cfg)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.program = program.tree
	s.interp.Discontinue()
	return nil
}

// Source returns the program listing, suitable for saving and loading.
func (s *Session) Source() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.program.String()
}

// Program returns a copy of the program that later edits do not affect.
func (s *Session) Program() *ast.Program {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.program.Clone()
}

// Check runs the static checks over the program.
func (s *Session) Check() error {
	return syntax.Check(s.Program())
}

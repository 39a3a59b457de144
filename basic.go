// Package basic runs Applesoft-compatible BASIC programs.
//
// A program is compiled (parsed, optionally transformed and checked) once
// and then run against a system.Context, which supplies the screen and
// keyboard:
//
//	program, err := basic.Compile(source, basic.WithFilename("hello.bas"))
//	if err != nil {
//		return err
//	}
//	result, err := basic.Run(ctx, program, console.NewTerminal())
//
// For an interactive prompt, where lines are entered, listed and run one at
// a time, use a Session.
package basic

import (
	"context"

	"github.com/gofrs/uuid"

	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/interpreter"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/object"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/parser"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/syntax"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/system"
)

// Version is the current version of the interpreter.
const Version = "1.0.0"

// Result describes how a run ended.
type Result struct {
	// SessionID identifies the run in log output.
	SessionID uuid.UUID

	// Reason is why the program stopped.
	Reason interpreter.StopReason

	// Line is the line that was executing when the program stopped, or -1
	// when it ran off the end.
	Line int

	// Variables holds the program's variables as they were at the end.
	Variables *object.Variables
}

// Compile parses source into a Program. Transformers given with
// WithTransformer are applied in order, and with WithChecks the static
// checks must all pass.
func Compile(source string, opts ...Option) (*Program, error) {
	cfg := newConfig(opts...)
	return compile(context.Background(), source, cfg)
}

func compile(ctx context.Context, source string, cfg *config) (*Program, error) {
	tree, err := parser.Parse(ctx, source, cfg.parserOpts()...)
	if err != nil {
		return nil, err
	}
	for _, t := range cfg.transformers {
		if tree, err = t.Transform(tree); err != nil {
			return nil, err
		}
	}
	if cfg.check {
		if err := syntax.Check(tree, cfg.validators...); err != nil {
			return nil, err
		}
	}
	return &Program{tree: tree, source: source, filename: cfg.filename}, nil
}

// Run executes a compiled program with fresh variables. A runtime fault is
// returned as an *errz.Fault together with the result.
func Run(ctx context.Context, program *Program, sys system.Context, opts ...Option) (*Result, error) {
	cfg := newConfig(opts...)
	if cfg.filename == "" {
		cfg.filename = program.filename
	}
	in := interpreter.New(sys, cfg.interpreterOpts()...)
	err := in.Execute(ctx, program.tree)
	return resultOf(in), err
}

// Eval is a convenience function that compiles and runs source code.
// It is equivalent to Compile() followed by Run().
func Eval(ctx context.Context, source string, sys system.Context, opts ...Option) (*Result, error) {
	cfg := newConfig(opts...)
	program, err := compile(ctx, source, cfg)
	if err != nil {
		return nil, err
	}
	return Run(ctx, program, sys, opts...)
}

func resultOf(in *interpreter.Interpreter) *Result {
	return &Result{
		SessionID: in.SessionID(),
		Reason:    in.StopReason(),
		Line:      in.CurrentLine(),
		Variables: in.Variables(),
	}
}

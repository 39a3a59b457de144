// Package syntax holds static checks and rewrites that operate on a parsed
// program without running it.
package syntax

import (
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/ast"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/errors"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/token"
)

// Validator inspects a program and reports problems.
// Validators should not modify the program.
type Validator interface {
	// Validate checks the program and returns every problem it finds.
	Validate(program *ast.Program) []*errors.CheckError
}

// ValidatorFunc is an adapter to use a function as a Validator.
type ValidatorFunc func(*ast.Program) []*errors.CheckError

// Validate implements the Validator interface.
func (f ValidatorFunc) Validate(p *ast.Program) []*errors.CheckError {
	return f(p)
}

// newCheckError builds a CheckError located at pos within line.
func newCheckError(code errors.ErrorCode, line *ast.Line, pos token.Position, message string) *errors.CheckError {
	err := &errors.CheckError{
		Code:       code,
		Message:    message,
		Filename:   pos.File,
		Line:       pos.LineNumber(),
		Column:     pos.ColumnNumber(),
		SourceLine: line.Text,
	}
	// Lines built in memory have no source text; point at the listing.
	if err.SourceLine == "" {
		err.SourceLine = line.String()
		err.Column = 0
	}
	return err
}

package basic

import (
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/ast"
)

// Program is a parsed BASIC program ready to run.
// Running a Program does not modify it, so it may be run any number of
// times, including from several goroutines with separate Interpreters.
type Program struct {
	tree *ast.Program

	// Metadata
	source   string
	filename string
}

// Source returns the original source code that was compiled.
func (p *Program) Source() string {
	return p.source
}

// Filename returns the filename associated with this program, if any.
func (p *Program) Filename() string {
	return p.filename
}

// AST returns the syntax tree. Callers must not modify it.
func (p *Program) AST() *ast.Program {
	return p.tree
}

// Len returns the number of lines.
func (p *Program) Len() int {
	return p.tree.Len()
}

// Listing returns the program as LIST would show it.
func (p *Program) Listing() string {
	return p.tree.String()
}

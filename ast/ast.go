// Package ast defines the abstract syntax tree representation of BASIC
// programs.
package ast

import (
	"strconv"
	"strings"

	"github.com/google/btree"

	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/token"
)

// MaxLineNumber is the largest line number a program may use.
const MaxLineNumber = 63999

// Node represents a portion of the syntax tree. All nodes have position
// information indicating where they appear in the source code.
type Node interface {
	// Pos returns the position of the first character belonging to the node.
	Pos() token.Position

	// End returns the position of the first character immediately after the node.
	End() token.Position

	// String returns a human friendly representation of the Node. This should
	// be similar to the original source code, but not necessarily identical.
	String() string
}

// Stmt represents a statement node. Statements cause side effects but
// do not evaluate to a value.
type Stmt interface {
	Node
	stmtNode()
}

// Expr represents an expression node. Expressions evaluate to a value
// and may be embedded within other expressions.
type Expr interface {
	Node
	exprNode()
}

// Line is one numbered program line holding one or more statements.
type Line struct {
	NumberPos token.Position // position of the line number
	Number    int            // line number
	Stmts     []Stmt         // statements in source order
	Text      string         // source text of the physical line, if known
}

func (l *Line) Pos() token.Position { return l.NumberPos }

func (l *Line) End() token.Position {
	if len(l.Stmts) > 0 {
		return l.Stmts[len(l.Stmts)-1].End()
	}
	return l.NumberPos.Advance(len(strconv.Itoa(l.Number)))
}

func (l *Line) String() string {
	var out strings.Builder
	out.WriteString(strconv.Itoa(l.Number))
	out.WriteString(" ")
	for i, stmt := range l.Stmts {
		if i > 0 {
			// Statements that follow an IF ... THEN continue the same clause.
			if ifStmt, ok := l.Stmts[i-1].(*If); ok && !ifStmt.HasTarget {
				out.WriteString(" ")
			} else {
				out.WriteString(": ")
			}
		}
		out.WriteString(stmt.String())
	}
	return out.String()
}

// Program is an ordered collection of numbered lines. Lines may be added in
// any order; adding a line whose number already exists replaces it.
type Program struct {
	lines *btree.BTreeG[*Line]
}

func lessLine(a, b *Line) bool { return a.Number < b.Number }

// NewProgram returns an empty program.
func NewProgram() *Program {
	return &Program{lines: btree.NewG(8, lessLine)}
}

// Add inserts the line, replacing any existing line with the same number.
// It returns the replaced line, if there was one.
func (p *Program) Add(line *Line) (*Line, bool) {
	return p.lines.ReplaceOrInsert(line)
}

// Remove deletes the line with the given number.
func (p *Program) Remove(number int) bool {
	_, ok := p.lines.Delete(&Line{Number: number})
	return ok
}

// Get returns the line with the given number.
func (p *Program) Get(number int) (*Line, bool) {
	return p.lines.Get(&Line{Number: number})
}

// Len returns the number of lines in the program.
func (p *Program) Len() int {
	return p.lines.Len()
}

// Lines returns all lines in ascending line number order.
func (p *Program) Lines() []*Line {
	lines := make([]*Line, 0, p.lines.Len())
	p.lines.Ascend(func(l *Line) bool {
		lines = append(lines, l)
		return true
	})
	return lines
}

// Range returns the lines numbered from first to last inclusive.
func (p *Program) Range(first, last int) []*Line {
	var lines []*Line
	p.lines.AscendGreaterOrEqual(&Line{Number: first}, func(l *Line) bool {
		if l.Number > last {
			return false
		}
		lines = append(lines, l)
		return true
	})
	return lines
}

// Clone returns a copy of the program that may be edited independently. The
// lines themselves are shared.
func (p *Program) Clone() *Program {
	return &Program{lines: p.lines.Clone()}
}

func (p *Program) Pos() token.Position {
	if first, ok := p.lines.Min(); ok {
		return first.Pos()
	}
	return token.NoPos
}

func (p *Program) End() token.Position {
	if last, ok := p.lines.Max(); ok {
		return last.End()
	}
	return token.NoPos
}

// String returns the program listing, one line per row.
func (p *Program) String() string {
	var out strings.Builder
	p.lines.Ascend(func(l *Line) bool {
		out.WriteString(l.String())
		out.WriteString("\n")
		return true
	})
	return out.String()
}

package ast

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/token"
)

func num(v float64, lit string) *Number {
	return &Number{Literal: lit, Value: v}
}

func TestLineString(t *testing.T) {
	line := &Line{
		Number: 10,
		Stmts: []Stmt{
			&Let{
				Target: &Ident{Name: "A"},
				Value: &Infix{
					X:  num(1, "1"),
					Op: "+",
					Y:  &Paren{X: &Infix{X: num(2, "2"), Op: "*", Y: num(3, "3")}},
				},
			},
			&Print{Items: []PrintItem{
				{Expr: &String{Literal: `"X="`, Value: "X="}, Sep: SepSemicolon},
				{Expr: &Ident{Name: "A"}, Sep: SepComma},
			}},
			&Keyword{Tok: token.END},
		},
	}
	require.Equal(t, `10 A = 1 + (2 * 3): PRINT "X=";A,: END`, line.String())
}

func TestIfLineString(t *testing.T) {
	line := &Line{
		Number: 20,
		Stmts: []Stmt{
			&If{Cond: &Infix{X: &Ident{Name: "A"}, Op: ">", Y: num(1, "1")}, Keyword: "THEN"},
			&Print{Items: []PrintItem{{Expr: &Ident{Name: "A"}}}},
			&Goto{Target: 100},
		},
	}
	require.Equal(t, "20 IF A > 1 THEN PRINT A: GOTO 100", line.String())

	jump := &Line{Number: 30, Stmts: []Stmt{
		&If{Cond: &Ident{Name: "X"}, Keyword: "THEN", HasTarget: true, Target: 10},
	}}
	require.Equal(t, "30 IF X THEN 10", jump.String())
}

func TestProgramOrdering(t *testing.T) {
	p := NewProgram()
	p.Add(&Line{Number: 30, Stmts: []Stmt{&Keyword{Tok: token.END}}})
	p.Add(&Line{Number: 10, Stmts: []Stmt{&Rem{Text: " FIRST"}}})
	p.Add(&Line{Number: 20, Stmts: []Stmt{&Keyword{Tok: token.HOME}}})

	var numbers []int
	for _, l := range p.Lines() {
		numbers = append(numbers, l.Number)
	}
	require.Equal(t, []int{10, 20, 30}, numbers)
	require.Equal(t, 3, p.Len())
	require.Equal(t, "10 REM FIRST\n20 HOME\n30 END\n", p.String())
}

func TestProgramReplaceAndRemove(t *testing.T) {
	p := NewProgram()
	_, replaced := p.Add(&Line{Number: 10, Stmts: []Stmt{&Keyword{Tok: token.HOME}}})
	require.False(t, replaced)
	old, replaced := p.Add(&Line{Number: 10, Stmts: []Stmt{&Keyword{Tok: token.END}}})
	require.True(t, replaced)
	require.Equal(t, "10 HOME", old.String())

	line, ok := p.Get(10)
	require.True(t, ok)
	require.Equal(t, "10 END", line.String())

	_, ok = p.Get(20)
	require.False(t, ok)

	require.True(t, p.Remove(10))
	require.False(t, p.Remove(10))
	require.Equal(t, 0, p.Len())
}

func TestProgramRange(t *testing.T) {
	p := NewProgram()
	for _, n := range []int{5, 10, 15, 20, 25} {
		p.Add(&Line{Number: n, Stmts: []Stmt{&Keyword{Tok: token.END}}})
	}
	var numbers []int
	for _, l := range p.Range(10, 20) {
		numbers = append(numbers, l.Number)
	}
	require.Equal(t, []int{10, 15, 20}, numbers)
}

func TestProgramClone(t *testing.T) {
	p := NewProgram()
	p.Add(&Line{Number: 10, Stmts: []Stmt{&Keyword{Tok: token.END}}})
	c := p.Clone()
	c.Add(&Line{Number: 20, Stmts: []Stmt{&Keyword{Tok: token.END}}})
	require.Equal(t, 1, p.Len())
	require.Equal(t, 2, c.Len())
}

func TestPrintNewline(t *testing.T) {
	require.True(t, (&Print{}).Newline())
	require.True(t, (&Print{Items: []PrintItem{{Expr: num(1, "1")}}}).Newline())
	require.False(t, (&Print{Items: []PrintItem{{Expr: num(1, "1"), Sep: SepSemicolon}}}).Newline())
	require.False(t, (&Print{Items: []PrintItem{{Sep: SepComma}}}).Newline())
}

func TestIdentSuffixes(t *testing.T) {
	require.True(t, (&Ident{Name: "A$"}).IsString())
	require.False(t, (&Ident{Name: "A$"}).IsInteger())
	require.True(t, (&Ident{Name: "I%"}).IsInteger())
	require.False(t, (&Ident{Name: "X"}).IsString())
}

func TestPositions(t *testing.T) {
	start := token.Position{Line: 0, Column: 3}
	g := &Goto{GotoPos: start, Target: 100, LinePos: start.Advance(5)}
	require.Equal(t, start, g.Pos())
	require.Equal(t, 11, g.End().Column)

	x := &Infix{
		X:  &Ident{NamePos: token.Position{Column: 6}, Name: "AB"},
		Op: "+",
		Y:  &Number{ValuePos: token.Position{Column: 11}, Literal: "12"},
	}
	require.Equal(t, 6, x.Pos().Column)
	require.Equal(t, 13, x.End().Column)
}

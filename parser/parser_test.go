package parser

import (
	"context"
	goerrors "errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/ast"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/errors"
)

func parseLine(t *testing.T, src string) *ast.Line {
	t.Helper()
	program, err := Parse(context.Background(), src)
	require.NoError(t, err, src)
	lines := program.Lines()
	require.Len(t, lines, 1, src)
	return lines[0]
}

// sexpr renders an expression fully parenthesized so tests can check the
// shape of the tree.
func sexpr(e ast.Expr) string {
	switch x := e.(type) {
	case *ast.Infix:
		return "(" + sexpr(x.X) + " " + x.Op + " " + sexpr(x.Y) + ")"
	case *ast.Prefix:
		return "(" + x.Op + " " + sexpr(x.X) + ")"
	case *ast.Paren:
		return sexpr(x.X)
	default:
		return e.String()
	}
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1+2*3", "(1 + (2 * 3))"},
		{"1*2+3", "((1 * 2) + 3)"},
		{"1-2-3", "((1 - 2) - 3)"},
		{"8/4/2", "((8 / 4) / 2)"},
		{"2^3^2", "(2 ^ (3 ^ 2))"},
		{"-2^2", "(- (2 ^ 2))"},
		{"-A*B", "((- A) * B)"},
		{"2*-3", "(2 * (- 3))"},
		{"(1+2)*3", "((1 + 2) * 3)"},
		{"A<B+1", "(A < (B + 1))"},
		{"NOT A=B", "((NOT A) = B)"},
		{"A=1 OR B=2 AND C=3", "((A = 1) OR ((B = 2) AND (C = 3)))"},
		{"A$+B$", "(A$ + B$)"},
		{"A><B", "(A <> B)"},
		{"A=<B", "(A <= B)"},
	}
	for _, tt := range tests {
		line := parseLine(t, "10 X="+tt.input)
		let, ok := line.Stmts[0].(*ast.Let)
		require.True(t, ok, tt.input)
		require.Equal(t, tt.expected, sexpr(let.Value), tt.input)
	}
}

func TestStatementListing(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"10 LET A=1", "10 LET A = 1"},
		{"10 A=1+2*3", "10 A = 1 + 2 * 3"},
		{`10 PRINT "HI";A$,B`, `10 PRINT "HI";A$,B`},
		{"10 ?", "10 PRINT"},
		{`10 PRINT TAB(5);"X";SPC(2)`, `10 PRINT TAB(5);"X";SPC(2)`},
		{`10 INPUT "NAME";N$`, `10 INPUT "NAME";N$`},
		{"10 INPUT A,B(2)", "10 INPUT A,B(2)"},
		{"10 GET K$", "10 GET K$"},
		{"10 IF A>1 THEN 100", "10 IF A > 1 THEN 100"},
		{"10 IF A GOTO 100", "10 IF A GOTO 100"},
		{`10 IF A=1 THEN PRINT "Y":GOTO 20`, `10 IF A = 1 THEN PRINT "Y": GOTO 20`},
		{"10 ON X GOSUB 100,200", "10 ON X GOSUB 100,200"},
		{"10 FOR I=1 TO 10 STEP -1", "10 FOR I = 1 TO 10 STEP -1"},
		{"10 NEXT I,J", "10 NEXT I,J"},
		{"10 DIM A(10),B$(2,3)", "10 DIM A(10),B$(2,3)"},
		{`10 DATA 1,"TWO",THREE`, `10 DATA 1,"TWO",THREE`},
		{"10 READ A,B$", "10 READ A,B$"},
		{"10 RESTORE 100", "10 RESTORE 100"},
		{"10 REM HELLO", "10 REM HELLO"},
		{"10 HTAB 5:VTAB 10", "10 HTAB 5: VTAB 10"},
		{"10 DEF FN F(X)=X*2", "10 DEF FN F(X) = X * 2"},
		{"10 PRINT FN F(3)", "10 PRINT FN F(3)"},
		{"10 POKE 768,0:CALL 768", "10 POKE 768,0: CALL 768"},
		{"10 HOME:NORMAL:INVERSE:FLASH:RETURN:POP:STOP:END:CLEAR",
			"10 HOME: NORMAL: INVERSE: FLASH: RETURN: POP: STOP: END: CLEAR"},
		{"10 PRINT LEFT$(A$,2);MID$(A$,2,1)", "10 PRINT LEFT$(A$,2);MID$(A$,2,1)"},
		{"10 X=NOT A AND B OR C", "10 X = NOT A AND B OR C"},
		{"10 PRINT (1+2)*3", "10 PRINT (1 + 2) * 3"},
		{"10 FORI=1TO3:PRINTI:NEXTI", "10 FOR I = 1 TO 3: PRINT I: NEXT I"},
		{"10 print a:: print b", "10 PRINT A: PRINT B"},
	}
	for _, tt := range tests {
		line := parseLine(t, tt.input)
		require.Equal(t, tt.expected, line.String(), tt.input)
	}
}

func TestParseIsDeterministic(t *testing.T) {
	src := `10 REM COUNT
20 FOR I = 1 TO 3: PRINT I;" ";: NEXT
30 IF X > 2 THEN PRINT "BIG": GOTO 50
40 GOSUB 100
50 END
100 DATA 1,2,"THREE"
110 RETURN
`
	a, err := Parse(context.Background(), src)
	require.NoError(t, err)
	b, err := Parse(context.Background(), src)
	require.NoError(t, err)
	require.Equal(t, a.String(), b.String())

	// A listing parses back to the same program.
	c, err := Parse(context.Background(), a.String())
	require.NoError(t, err)
	require.Equal(t, a.String(), c.String())
}

func TestLinesAreOrderedAndReplaced(t *testing.T) {
	program, err := Parse(context.Background(), "20 PRINT 2\n10 PRINT 1\n20 PRINT 3\n")
	require.NoError(t, err)
	require.Equal(t, "10 PRINT 1\n20 PRINT 3\n", program.String())
}

func TestLineText(t *testing.T) {
	program, err := Parse(context.Background(), "10 PRINT 1\n\n  20 PRINT   2\n")
	require.NoError(t, err)
	line, ok := program.Get(20)
	require.True(t, ok)
	require.Equal(t, "  20 PRINT   2", line.Text)
	require.Equal(t, 3, line.NumberPos.LineNumber())
}

func TestFlatIf(t *testing.T) {
	line := parseLine(t, "10 IF A THEN PRINT 1: PRINT 2")
	require.Len(t, line.Stmts, 3)
	ifStmt, ok := line.Stmts[0].(*ast.If)
	require.True(t, ok)
	require.False(t, ifStmt.HasTarget)

	line = parseLine(t, "10 IF A THEN 200")
	require.Len(t, line.Stmts, 1)
	ifStmt = line.Stmts[0].(*ast.If)
	require.True(t, ifStmt.HasTarget)
	require.Equal(t, 200, ifStmt.Target)
}

func TestDataItems(t *testing.T) {
	line := parseLine(t, `10 DATA 1, "A:B", XYZ ,  -2.5E3,"",`)
	data := line.Stmts[0].(*ast.Data)
	require.Equal(t, []ast.DataItem{
		{Value: "1"},
		{Value: "A:B", Quoted: true},
		{Value: "XYZ"},
		{Value: "-2.5E3"},
		{Value: "", Quoted: true},
		{Value: ""},
	}, data.Items)

	line = parseLine(t, "10 DATA")
	require.Empty(t, line.Stmts[0].(*ast.Data).Items)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input  string
		code   errors.ErrorCode
		line   int
		column int
		msg    string
	}{
		{"PRINT 1", errors.E1011, 1, 1, `missing line number (found "PRINT")`},
		{"70000 PRINT", errors.E1012, 1, 1, "line number 70000 out of range (0-63999)"},
		{"10 PRINT (1+2", errors.E1007, 1, 10, `unbalanced parentheses (missing ")")`},
		{"10 PRINT 1+2)", errors.E1007, 1, 13, `unbalanced parentheses (unexpected ")")`},
		{"10 X=1+", errors.E1004, 1, 8, "missing expression before end of file"},
		{"10 GOTO", errors.E1001, 1, 8, "expected line number after GOTO (found end of file)"},
		{"10 GOTO 100000", errors.E1012, 1, 9, "invalid line number 100000"},
		{"10 FOR A$=1 TO 2", errors.E1005, 1, 8, "FOR variable A$ must be numeric"},
		{"10 X=LEFT$(A$)", errors.E1003, 1, 6, "wrong number of arguments to LEFT$ (got 1)"},
		{"10", errors.E1003, 1, 1, "line 10 has no statements"},
		{"10 IF X THEN", errors.E1004, 1, 13, "missing statement after THEN"},
		{"10 GOTO 10 20", errors.E1001, 1, 12, `unexpected "20" following statement`},
		{"10 PRINT 1\n20 PRINT (", errors.E1004, 2, 11, "missing expression before end of file"},
	}
	for _, tt := range tests {
		_, err := Parse(context.Background(), tt.input)
		require.Error(t, err, tt.input)
		var synErr *SyntaxError
		require.True(t, goerrors.As(err, &synErr), "%s: %T", tt.input, err)
		require.Equal(t, tt.code, synErr.Code(), tt.input)
		require.Equal(t, tt.msg, synErr.Message(), tt.input)
		require.Equal(t, tt.line, synErr.Line(), tt.input)
		require.Equal(t, tt.column, synErr.Column(), tt.input)
	}
}

func TestUnknownStatementHint(t *testing.T) {
	_, err := Parse(context.Background(), "10 PRNT 5", WithFilename("hello.bas"))
	var synErr *SyntaxError
	require.True(t, goerrors.As(err, &synErr))
	require.Equal(t, errors.E1010, synErr.Code())
	require.Equal(t, `unknown statement "PRNT"`, synErr.Message())
	require.Equal(t, "Did you mean 'PRINT'?", synErr.Hint())
	require.Equal(t, "hello.bas", synErr.File())
	require.Equal(t, "10 PRNT 5", synErr.SourceCode())

	msg := synErr.FriendlyErrorMessage()
	require.Contains(t, msg, "syntax error[E1010]: unknown statement \"PRNT\"")
	require.Contains(t, msg, "--> hello.bas:1:4")
	require.Contains(t, msg, "^^^^")
	require.Contains(t, msg, "hint: Did you mean 'PRINT'?")
}

func TestLexicalError(t *testing.T) {
	_, err := Parse(context.Background(), "10 PRINT 1\n20 PRINT \"OOPS")
	var lexErr *LexicalError
	require.True(t, goerrors.As(err, &lexErr), "%T", err)
	require.Equal(t, errors.E1002, lexErr.Code())
	require.Equal(t, "unterminated string literal", lexErr.Message())
	require.Equal(t, 2, lexErr.Line())
	require.Equal(t, 10, lexErr.Column())
	require.Equal(t, `20 PRINT "OOPS`, lexErr.SourceCode())
	require.Equal(t, "lexical error: unterminated string literal (2:10)", lexErr.Error())

	_, err = Parse(context.Background(), "10 X=1E+")
	require.True(t, goerrors.As(err, &lexErr))
	require.Equal(t, errors.E1008, lexErr.Code())
}

func TestParseCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Parse(ctx, "10 END")
	require.ErrorIs(t, err, context.Canceled)
}

func TestMaxDepth(t *testing.T) {
	src := "10 X="
	for i := 0; i < 20; i++ {
		src += "("
	}
	src += "1"
	for i := 0; i < 20; i++ {
		src += ")"
	}
	_, err := Parse(context.Background(), src, WithMaxDepth(10))
	var synErr *SyntaxError
	require.True(t, goerrors.As(err, &synErr))
	require.Equal(t, errors.E1009, synErr.Code())

	_, err = Parse(context.Background(), src)
	require.NoError(t, err)
}

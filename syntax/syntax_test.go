package syntax

import (
	"context"
	goerrors "errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/ast"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/errors"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/parser"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	program, err := parser.Parse(context.Background(), src)
	require.NoError(t, err)
	return program
}

func codes(problems []*errors.CheckError) []errors.ErrorCode {
	var out []errors.ErrorCode
	for _, p := range problems {
		out = append(out, p.Code)
	}
	return out
}

func TestCheckCleanProgram(t *testing.T) {
	program := parse(t, `10 DEF FN A(X) = X * 2
20 FOR I = 1 TO 3: GOSUB 100: NEXT I
30 ON I GOTO 40,50
40 RESTORE 100
50 IF FN A(I) > 4 THEN 10
60 END
100 DATA 1: RETURN
`)
	require.NoError(t, Check(program))
	require.Nil(t, Problems(nil))
}

func TestCheckUndefinedLines(t *testing.T) {
	program := parse(t, `10 GOTO 100
20 GOSUB 30
30 IF A THEN 5
40 ON X GOTO 10,99
50 RESTORE 77
`)
	err := Check(program)
	require.Error(t, err)
	problems := Problems(err)
	require.Equal(t, []errors.ErrorCode{errors.E2001, errors.E2001, errors.E2001, errors.E2001}, codes(problems))

	first := problems[0]
	require.Equal(t, "GOTO 100: line 100 does not exist", first.Message)
	require.Equal(t, 1, first.Line)
	require.Equal(t, 9, first.Column)
	require.Equal(t, "10 GOTO 100", first.SourceLine)
	require.Equal(t, "10", first.Suggestions[0].Value)

	require.Equal(t, "THEN 5: line 5 does not exist", problems[1].Message)
	require.Equal(t, "ON GOTO 99: line 99 does not exist", problems[2].Message)
	require.Equal(t, "RESTORE 77: line 77 does not exist", problems[3].Message)
	require.Equal(t, 5, problems[3].Line)
}

func TestCheckNextWithoutFor(t *testing.T) {
	tests := []struct {
		src  string
		want int
	}{
		{"10 FOR I = 1 TO 2\n20 NEXT J\n", 1},
		{"10 NEXT\n", 1},
		{"10 FOR I = 1 TO 2: NEXT\n", 0},
		{"10 FOR I = 1 TO 2: FOR J = 1 TO 2: NEXT J, I, K\n", 1},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			problems := NextWithoutFor(parse(t, tt.src))
			require.Len(t, problems, tt.want)
			for _, p := range problems {
				require.Equal(t, errors.E2002, p.Code)
			}
		})
	}
}

func TestCheckUndefinedFunctions(t *testing.T) {
	program := parse(t, `10 DEF FN A(X) = X + 1
20 PRINT FN A(1) + FN B(2)
`)
	problems := UndefinedFunctions(program)
	require.Len(t, problems, 1)
	require.Equal(t, errors.E2003, problems[0].Code)
	require.Equal(t, "FN B is never defined", problems[0].Message)
	require.Equal(t, "A", problems[0].Suggestions[0].Value)
}

func TestCheckAggregatesAllProblems(t *testing.T) {
	program := parse(t, "10 GOTO 20\n30 NEXT Q: PRINT FN Z(1)\n")
	err := Check(program)
	require.Equal(t, []errors.ErrorCode{errors.E2001, errors.E2002, errors.E2003}, codes(Problems(err)))

	var ce *errors.CheckError
	require.True(t, goerrors.As(err, &ce))
	require.Contains(t, err.Error(), "3 errors occurred")
}

func TestCheckFormattedOutput(t *testing.T) {
	problems := Problems(Check(parse(t, "10 GOTO 100\n")))
	require.Len(t, problems, 1)
	text := problems[0].FriendlyErrorMessage()
	require.Contains(t, text, "E2001")
	require.Contains(t, text, "10 GOTO 100")
	require.Contains(t, text, "Did you mean '10'?")
}

func TestValidatorFunc(t *testing.T) {
	called := false
	validator := ValidatorFunc(func(p *ast.Program) []*errors.CheckError {
		called = true
		if p.Len() > 1 {
			return []*errors.CheckError{{Message: "one line only"}}
		}
		return nil
	})

	require.NoError(t, Check(parse(t, "10 END\n"), validator))
	require.True(t, called)

	err := Check(parse(t, "10 END\n20 END\n"), validator)
	require.Len(t, Problems(err), 1)
	require.Contains(t, err.Error(), "one line only")
}

func TestTransformerFunc(t *testing.T) {
	called := false
	transformer := TransformerFunc(func(p *ast.Program) (*ast.Program, error) {
		called = true
		return p, nil
	})
	program := parse(t, "10 END\n")
	result, err := transformer.Transform(program)
	require.NoError(t, err)
	require.True(t, called)
	require.Same(t, program, result)
}

func TestTransformerReturnsError(t *testing.T) {
	transformer := TransformerFunc(func(p *ast.Program) (*ast.Program, error) {
		return nil, goerrors.New("transform failed")
	})
	_, err := transformer.Transform(parse(t, "10 END\n"))
	require.EqualError(t, err, "transform failed")
}

func TestRenumber(t *testing.T) {
	program := parse(t, `5 GOTO 7
7 GOSUB 9: ON A GOTO 5,7,1000
9 IF A THEN 5
11 RESTORE 9: END
`)
	result, err := Renumber(100, 10).Transform(program)
	require.NoError(t, err)
	require.Equal(t, `100 GOTO 110
110 GOSUB 120: ON A GOTO 100,110,1000
120 IF A THEN 100
130 RESTORE 120: END
`, result.String())

	line, ok := result.Get(120)
	require.True(t, ok)
	require.Equal(t, "120 IF A THEN 100", line.Text)

	// The missing target is still reported after renumbering.
	require.Equal(t, []errors.ErrorCode{errors.E2001}, codes(Problems(Check(result))))
}

func TestRenumberRejectsBadRange(t *testing.T) {
	_, err := Renumber(10, 0).Transform(parse(t, "10 END\n"))
	require.Error(t, err)

	_, err = Renumber(63990, 10).Transform(parse(t, "10 END\n20 END\n"))
	require.Error(t, err)
}

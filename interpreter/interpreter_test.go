package interpreter

import (
	"context"
	goerrors "errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/ast"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/errz"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/object"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/parser"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/system"
)

func run(t *testing.T, src string, input ...string) (*Interpreter, *system.Buffer, error) {
	t.Helper()
	buf := system.NewBuffer(input...)
	in := New(buf, WithRandSeed(1))
	err := in.Run(context.Background(), src)
	return in, buf, err
}

func runOK(t *testing.T, src string, input ...string) (*Interpreter, *system.Buffer) {
	t.Helper()
	in, buf, err := run(t, src, input...)
	require.NoError(t, err)
	return in, buf
}

func requireFault(t *testing.T, err error, kind errz.Kind, line int) *errz.Fault {
	t.Helper()
	var fault *errz.Fault
	require.True(t, goerrors.As(err, &fault), "expected *errz.Fault, got %T: %v", err, err)
	require.Equal(t, kind, fault.Kind, fault.Message)
	require.Equal(t, line, fault.Line)
	return fault
}

func TestForLoopScenario(t *testing.T) {
	in, buf := runOK(t, `10 FOR I=1 TO 3
20 PRINT I
30 NEXT I
`)
	require.Equal(t, 3, buf.Count("WriteLine"))
	require.Equal(t, "1\n2\n3\n", buf.Output())
	require.Equal(t, object.NewNumber(4), in.Variables().Get("I"))
	require.Equal(t, Stopped, in.State())
	require.Equal(t, StopEnd, in.StopReason())
	require.Nil(t, in.Fault())
}

func TestDivisionByZeroScenario(t *testing.T) {
	in, buf, err := run(t, `5 PRINT "BEFORE"
10 X=5/0
20 PRINT "AFTER"
`)
	fault := requireFault(t, err, errz.DivisionByZero, 10)
	require.Equal(t, "BEFORE\n", buf.Output())
	require.Equal(t, Faulted, in.State())
	require.Same(t, fault, in.Fault())
	require.Equal(t, "?DIVISION BY ZERO ERROR IN 10", fault.LegacyMessage())
	require.Equal(t, 0, fault.Statement)
	require.Equal(t, 2, fault.Location.Line)
	require.Equal(t, "10 X=5/0", fault.Location.Source)
}

func TestTypeMismatchScenario(t *testing.T) {
	_, buf, err := run(t, `10 PRINT "A"+1`)
	requireFault(t, err, errz.TypeMismatch, 10)
	require.Equal(t, "", buf.Output())
}

func TestFaultStatementIndex(t *testing.T) {
	_, _, err := run(t, `10 A=1: B=2: C=A/0`)
	fault := requireFault(t, err, errz.DivisionByZero, 10)
	require.Equal(t, 2, fault.Statement)
	require.Equal(t, 14, fault.Location.Column)
}

func TestParseErrorsStopBeforeExecution(t *testing.T) {
	_, buf, err := run(t, "10 PRINT \"A\"\n20 PRINT (\n")
	var syntaxErr *parser.SyntaxError
	require.True(t, goerrors.As(err, &syntaxErr), "got %T", err)
	require.Equal(t, "", buf.Output())
}

func TestGoto(t *testing.T) {
	_, buf := runOK(t, `10 GOTO 30
20 PRINT "SKIPPED"
30 PRINT "HERE"
`)
	require.Equal(t, "HERE\n", buf.Output())

	_, _, err := run(t, `10 GOTO 50`)
	fault := requireFault(t, err, errz.UndefinedLine, 10)
	require.Equal(t, "?UNDEF'D STATEMENT ERROR IN 10", fault.LegacyMessage())
}

func TestGosubReturn(t *testing.T) {
	_, buf := runOK(t, `10 GOSUB 100: PRINT "AFTER"
20 GOSUB 100
30 END
100 PRINT "SUB"
110 RETURN
`)
	require.Equal(t, "SUB\nAFTER\nSUB\n", buf.Output())
}

func TestNestedGosub(t *testing.T) {
	_, buf := runOK(t, `10 GOSUB 100
20 PRINT "DONE"
30 END
100 PRINT "A";
110 GOSUB 200
120 PRINT "C";
130 RETURN
200 PRINT "B";
210 RETURN
`)
	require.Equal(t, "ABCDONE\n", buf.Output())
}

func TestReturnWithoutGosub(t *testing.T) {
	_, _, err := run(t, `10 PRINT "X"
20 RETURN
`)
	requireFault(t, err, errz.ReturnWithoutGosub, 20)
}

func TestPop(t *testing.T) {
	_, buf := runOK(t, `10 GOSUB 100
20 PRINT "NOT REACHED"
100 POP
110 PRINT "POPPED"
`)
	require.Equal(t, "POPPED\n", buf.Output())

	_, _, err := run(t, `10 GOSUB 100
100 POP: RETURN
`)
	requireFault(t, err, errz.ReturnWithoutGosub, 100)
}

func TestReturnDropsLoopsOpenedInSubroutine(t *testing.T) {
	_, buf := runOK(t, `10 FOR I=1 TO 3
20 GOSUB 100
25 PRINT I
30 NEXT
40 END
100 FOR J=1 TO 5
110 RETURN
`)
	require.Equal(t, "1\n2\n3\n", buf.Output())

	in, buf := runOK(t, `10 FOR I=1 TO 2
20 GOSUB 100
30 NEXT
40 PRINT "DONE": END
100 FOR J=1 TO 5: POP
110 GOTO 30
`)
	require.Equal(t, "DONE\n", buf.Output())
	require.Equal(t, object.NewNumber(3), in.Variables().Get("I"))
}

func TestNextCannotReachCallerLoop(t *testing.T) {
	_, _, err := run(t, `10 FOR I=1 TO 3
20 GOSUB 100
30 NEXT I
100 NEXT I
`)
	requireFault(t, err, errz.NextWithoutFor, 100)
}

func TestFaultStackTrace(t *testing.T) {
	_, _, err := run(t, `10 GOSUB 100
100 X=1/0
`)
	fault := requireFault(t, err, errz.DivisionByZero, 100)
	require.Len(t, fault.Stack, 1)
	require.Equal(t, 1, fault.Stack[0].Location.Line)
}

func TestGosubDepthLimit(t *testing.T) {
	buf := system.NewBuffer()
	in := New(buf, WithMaxStackDepth(8))
	err := in.Run(context.Background(), `10 GOSUB 10`)
	requireFault(t, err, errz.OutOfMemory, 10)
}

func TestForIterationCounts(t *testing.T) {
	tests := []struct {
		loop string
		want string
	}{
		{"FOR I=1 TO 5", "5"},
		{"FOR I=1 TO 10 STEP 2", "5"},
		{"FOR I=10 TO 1 STEP -1", "10"},
		{"FOR I=1 TO 1", "1"},
		{"FOR I=5 TO 1", "0"},
		{"FOR I=1 TO 2 STEP .5", "3"},
	}
	for _, tt := range tests {
		t.Run(tt.loop, func(t *testing.T) {
			_, buf := runOK(t, "10 "+tt.loop+": C=C+1: NEXT I\n20 PRINT C\n")
			require.Equal(t, tt.want+"\n", buf.Output())
		})
	}
}

func TestForSkipsBodyWhenAlreadyPastLimit(t *testing.T) {
	in, buf := runOK(t, `10 FOR I=5 TO 1
20 PRINT "BODY"
30 FOR J=1 TO 2
40 NEXT J
50 NEXT I
60 PRINT "DONE"
`)
	require.Equal(t, "DONE\n", buf.Output())
	require.Equal(t, object.NewNumber(5), in.Variables().Get("I"))
}

func TestNestedLoops(t *testing.T) {
	_, buf := runOK(t, `10 FOR I=1 TO 3: FOR J=1 TO 2: C=C+1: NEXT J,I
20 PRINT C;I;J
`)
	require.Equal(t, "643\n", buf.Output())
}

func TestNextWithoutVariable(t *testing.T) {
	_, buf := runOK(t, `10 FOR I=3 TO 1 STEP -1: PRINT I;: NEXT
20 PRINT
`)
	require.Equal(t, "321\n", buf.Output())
}

func TestNextWithoutFor(t *testing.T) {
	_, _, err := run(t, `10 NEXT`)
	requireFault(t, err, errz.NextWithoutFor, 10)

	_, _, err = run(t, `10 FOR I=1 TO 2
20 NEXT J
`)
	requireFault(t, err, errz.NextWithoutFor, 20)
}

func TestForReentryDiscardsInnerLoops(t *testing.T) {
	// Jumping back to the FOR restarts the loop instead of stacking frames.
	_, buf := runOK(t, `10 N=N+1
20 FOR I=1 TO 2
30 FOR J=1 TO 2
40 IF N<3 THEN 10
50 NEXT J
60 NEXT I
70 PRINT N
`)
	require.Equal(t, "3\n", buf.Output())
}

func TestIfIsFlat(t *testing.T) {
	_, buf := runOK(t, `10 IF 1 THEN PRINT "A": PRINT "B"
20 IF 0 THEN PRINT "C": PRINT "D"
30 PRINT "E"
`)
	require.Equal(t, "A\nB\nE\n", buf.Output())
}

func TestIfThenLine(t *testing.T) {
	_, buf := runOK(t, `10 X=0
20 IF X=0 THEN 40
30 PRINT "NO"
40 IF X=1 GOTO 60
50 PRINT "YES"
60 END
`)
	require.Equal(t, "YES\n", buf.Output())
}

func TestStringCondition(t *testing.T) {
	_, buf := runOK(t, `10 A$="X"
20 IF A$ THEN PRINT "SET"
30 IF B$ THEN PRINT "EMPTY"
40 IF A$="X" AND NOT (B$<>"") THEN PRINT "BOTH"
`)
	require.Equal(t, "SET\nBOTH\n", buf.Output())
}

func TestOnGotoGosub(t *testing.T) {
	src := `10 ON X GOTO 100,200
20 PRINT "NONE": END
100 PRINT "ONE": END
200 PRINT "TWO": END
`
	for x, want := range map[string]string{"0": "NONE\n", "1": "ONE\n", "2": "TWO\n", "3": "NONE\n"} {
		_, buf := runOK(t, "5 X="+x+"\n"+src)
		require.Equal(t, want, buf.Output(), "X=%s", x)
	}

	_, buf := runOK(t, `10 ON 2 GOSUB 100,200: PRINT "BACK"
20 END
100 PRINT "ONE": RETURN
200 PRINT "TWO": RETURN
`)
	require.Equal(t, "TWO\nBACK\n", buf.Output())

	_, _, err := run(t, `10 ON -1 GOTO 100`)
	requireFault(t, err, errz.IllegalQuantity, 10)
}

func TestDataReadRestore(t *testing.T) {
	_, buf := runOK(t, `10 DATA 1,2,3
20 READ A,B
30 RESTORE
40 READ C
50 PRINT A;B;C
60 DATA "HI",4
70 RESTORE 60
80 READ S$,D
90 PRINT S$;D
`)
	require.Equal(t, "121\nHI4\n", buf.Output())
}

func TestReadConversions(t *testing.T) {
	_, buf := runOK(t, `10 READ A$,B,C
20 PRINT A$;"/";B;"/";C
30 DATA 1.50,"2",
`)
	require.Equal(t, "1.50/2/0\n", buf.Output())

	_, _, err := run(t, `10 READ A
20 DATA HELLO
`)
	requireFault(t, err, errz.TypeMismatch, 10)
}

func TestOutOfData(t *testing.T) {
	_, _, err := run(t, `10 DATA 1
20 READ A,B
`)
	fault := requireFault(t, err, errz.OutOfData, 20)
	require.Equal(t, "?OUT OF DATA ERROR IN 20", fault.LegacyMessage())
}

func TestVariables(t *testing.T) {
	in, buf := runOK(t, `10 A%=3.7: B%=-3.7: C=2.5: N$="X"
20 PRINT A%;" ";B%;" ";C;" ";N$
`)
	require.Equal(t, "3 -3 2.5 X\n", buf.Output())
	require.Equal(t, []string{"A%", "B%", "C", "N$"}, in.Variables().Names())

	_, _, err := run(t, `10 A$=1`)
	requireFault(t, err, errz.TypeMismatch, 10)

	_, _, err = run(t, `10 A%=40000`)
	requireFault(t, err, errz.IllegalQuantity, 10)
}

func TestLongVariableNames(t *testing.T) {
	_, buf := runOK(t, `10 COUNT = 5: PRINT CO
20 FOR INDEX = 1 TO 2: NEXT IN
30 PRINT INDEX; IN
40 DEF FN DOUBLE(X) = X * 2: PRINT FN DO(4)
`)
	require.Equal(t, "5\n33\n8\n", buf.Output())
}

func TestArrays(t *testing.T) {
	_, buf := runOK(t, `10 DIM A(5),B$(2,2)
20 A(5)=7: B$(2,1)="Z"
30 C(10)=1
40 PRINT A(5);B$(2,1);C(10);A(0)
50 A=99: PRINT A;A(5)
`)
	require.Equal(t, "7Z10\n997\n", buf.Output())

	_, _, err := run(t, `10 DIM A(5): A(6)=1`)
	requireFault(t, err, errz.BadSubscript, 10)

	_, _, err = run(t, `10 X=A(11)`)
	requireFault(t, err, errz.BadSubscript, 10)

	_, _, err = run(t, `10 DIM A(5): DIM A(5)`)
	requireFault(t, err, errz.RedimensionedArray, 10)

	_, _, err = run(t, `10 X=A(-1)`)
	requireFault(t, err, errz.IllegalQuantity, 10)
}

func TestDefFn(t *testing.T) {
	_, buf := runOK(t, `10 DEF FN F(X) = X*X+1
20 X=3
30 PRINT FN F(4);" ";X;" ";FN F(FN F(1))
`)
	require.Equal(t, "17 3 5\n", buf.Output())

	_, _, err := run(t, `10 PRINT FN G(1)`)
	requireFault(t, err, errz.UndefinedFunction, 10)

	buf = system.NewBuffer()
	in := New(buf, WithMaxStackDepth(16))
	err = in.Run(context.Background(), `10 DEF FN R(X) = FN R(X)
20 PRINT FN R(1)
`)
	requireFault(t, err, errz.OutOfMemory, 20)
}

func TestNumericLimits(t *testing.T) {
	_, _, err := run(t, `10 PRINT 1E38*10`)
	requireFault(t, err, errz.Overflow, 10)

	_, _, err = run(t, `10 A$="X"
20 FOR I=1 TO 300: A$=A$+"X": NEXT
`)
	requireFault(t, err, errz.StringTooLong, 20)
}

func TestClear(t *testing.T) {
	_, buf := runOK(t, `10 A=5: DIM B(3): CLEAR: PRINT A: DIM B(3)`)
	require.Equal(t, "0\n", buf.Output())
}

func TestEndAndStop(t *testing.T) {
	in, buf := runOK(t, `10 PRINT "A"
20 END
30 PRINT "B"
`)
	require.Equal(t, "A\n", buf.Output())
	require.Equal(t, StopEnd, in.StopReason())
	require.Equal(t, 20, in.CurrentLine())

	in, buf = runOK(t, `10 PRINT "A"
20 STOP
30 PRINT "B"
`)
	require.Equal(t, "A\n", buf.Output())
	require.Equal(t, Stopped, in.State())
	require.Equal(t, StopStatement, in.StopReason())
	require.Equal(t, 20, in.CurrentLine())
}

func TestContinue(t *testing.T) {
	in, buf := runOK(t, `10 A = 1: PRINT "A": STOP: PRINT A
20 A = A + 1: PRINT A
`)
	require.Equal(t, "A\n", buf.Output())
	require.Equal(t, StopStatement, in.StopReason())

	require.NoError(t, in.Continue(context.Background()))
	require.Equal(t, "A\n1\n2\n", buf.Output())
	require.Equal(t, StopEnd, in.StopReason())
	require.ErrorIs(t, in.Continue(context.Background()), ErrCannotContinue)

	in, _, err := run(t, `10 PRINT 1/0`)
	require.Error(t, err)
	require.ErrorIs(t, in.Continue(context.Background()), ErrCannotContinue)
}

func TestDiscontinue(t *testing.T) {
	in, _ := runOK(t, "10 A = 3: STOP\n20 PRINT A\n")
	require.Equal(t, 10, in.CurrentLine())

	in.Discontinue()
	require.Equal(t, StopEnd, in.StopReason())
	require.Equal(t, -1, in.CurrentLine())
	require.ErrorIs(t, in.Continue(context.Background()), ErrCannotContinue)
	require.Equal(t, object.NewNumber(3), in.Variables().Get("A"))

	in, _, err := run(t, "10 PRINT 1/0")
	require.Error(t, err)
	in.Discontinue()
	require.Equal(t, Faulted, in.State())
}

func immediateLine(t *testing.T, text string) *ast.Line {
	t.Helper()
	program, err := parser.Parse(context.Background(), "0 "+text)
	require.NoError(t, err)
	line, ok := program.Get(0)
	require.True(t, ok)
	return line
}

func TestImmediate(t *testing.T) {
	ctx := context.Background()
	in, buf := runOK(t, "10 A = 5: STOP\n20 PRINT A\n")

	require.NoError(t, in.Immediate(ctx, immediateLine(t, "PRINT A * 2: A = 7")))
	require.Equal(t, "10\n", buf.Output())
	require.Equal(t, StopStatement, in.StopReason())

	require.NoError(t, in.Continue(ctx))
	require.Equal(t, "10\n7\n", buf.Output())

	err := in.Immediate(ctx, immediateLine(t, "GOTO 20"))
	fault := requireFault(t, err, errz.UndefinedLine, -1)
	require.Equal(t, "?UNDEF'D STATEMENT ERROR", fault.LegacyMessage())
	require.Equal(t, Stopped, in.State())
}

func TestImmediateWithoutProgram(t *testing.T) {
	buf := system.NewBuffer()
	in := New(buf)
	require.NoError(t, in.Immediate(context.Background(), immediateLine(t, "FOR I = 1 TO 3: PRINT I;: NEXT: PRINT RND(1) < 1")))
	require.Equal(t, "1231\n", buf.Output())
}

func TestEmptyProgram(t *testing.T) {
	in, buf := runOK(t, "")
	require.Equal(t, "", buf.Output())
	require.Equal(t, Stopped, in.State())
	require.Equal(t, -1, in.CurrentLine())
}

func TestRunsAreIndependent(t *testing.T) {
	buf := system.NewBuffer()
	in := New(buf)
	require.NoError(t, in.Run(context.Background(), `10 A=A+1: PRINT A`))
	first := in.SessionID()
	require.NoError(t, in.Run(context.Background(), `10 A=A+1: PRINT A`))
	require.Equal(t, "1\n1\n", buf.Output())
	require.NotEqual(t, first, in.SessionID())
}

func TestInput(t *testing.T) {
	_, buf := runOK(t, `10 INPUT "AGE";A
20 PRINT A*2
`, "42")
	require.Equal(t, "AGE42\n84\n", buf.Output())

	_, buf = runOK(t, `10 INPUT N$,A
20 PRINT N$;"=";A
`, `"SMITH, J", 7`)
	require.Equal(t, "?\"SMITH, J\", 7\nSMITH, J=7\n", buf.Output())
}

func TestInputReprompts(t *testing.T) {
	_, buf := runOK(t, `10 INPUT A
20 PRINT A
`, "X", "5")
	require.Equal(t, "?X\n?REENTER\n?5\n5\n", buf.Output())

	_, buf = runOK(t, `10 INPUT A,B
20 PRINT A+B
`, "1", "2")
	require.Equal(t, "?1\n??2\n3\n", buf.Output())

	_, buf = runOK(t, `10 INPUT A
20 PRINT A
`, "1,2")
	require.Equal(t, "?1,2\n?EXTRA IGNORED\n1\n", buf.Output())

	_, buf = runOK(t, `10 INPUT A
20 PRINT A
`, "")
	require.Equal(t, "?\n0\n", buf.Output())
}

func TestInputEndOfInput(t *testing.T) {
	_, _, err := run(t, `10 INPUT A`)
	fault := requireFault(t, err, errz.HostIO, 10)
	require.ErrorIs(t, fault, io.EOF)
}

func TestGet(t *testing.T) {
	buf := system.NewBuffer()
	buf.QueueKeys("Y7Q")
	in := New(buf)
	err := in.Run(context.Background(), `10 GET A$: GET N
20 PRINT A$;N
30 GET M
`)
	requireFault(t, err, errz.Syntax, 30)
	require.Equal(t, "Y7\n", buf.Output())
}

func TestScreenStatements(t *testing.T) {
	_, buf := runOK(t, `10 HOME: HTAB 5: VTAB 3: INVERSE: PRINT "X";: NORMAL: FLASH`)
	require.Equal(t, 1, buf.Count("ClearScreen"))
	require.Equal(t, 5, buf.CursorColumn())
	require.Equal(t, 2, buf.CursorRow())
	require.Equal(t, system.Flash, buf.TextMode())

	_, _, err := run(t, `10 VTAB 25`)
	requireFault(t, err, errz.IllegalQuantity, 10)
}

func TestMemory(t *testing.T) {
	buf := system.NewBuffer()
	ram := system.NewRAM()
	in := New(buf, WithMemory(ram))
	require.NoError(t, in.Run(context.Background(), `10 POKE 768,42
20 PRINT PEEK(768)
30 CALL -151
`))
	require.Equal(t, "42\n", buf.Output())
	require.Equal(t, []int{65385}, ram.Calls)

	// Without memory PEEK reads zero and POKE and CALL do nothing.
	_, buf = runOK(t, `10 POKE 768,42: CALL 768: PRINT PEEK(768)`)
	require.Equal(t, "0\n", buf.Output())

	_, _, err := run(t, `10 POKE 768,256`)
	requireFault(t, err, errz.IllegalQuantity, 10)
}

func TestMemoryCallFailure(t *testing.T) {
	ram := system.NewRAM()
	ram.OnCall = func(ctx context.Context, addr int) error {
		return goerrors.New("crashed")
	}
	in := New(system.NewBuffer(), WithMemory(ram))
	err := in.Run(context.Background(), `10 CALL 768`)
	fault := requireFault(t, err, errz.HostIO, 10)
	require.Contains(t, fault.Message, "crashed")
}

func TestContextCancellation(t *testing.T) {
	in := New(system.NewBuffer())
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := in.Run(ctx, `10 GOTO 10`)
	requireFault(t, err, errz.Cancelled, 10)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Equal(t, Faulted, in.State())
}

func TestStopFromAnotherGoroutine(t *testing.T) {
	in := New(system.NewBuffer())
	done := make(chan error, 1)
	go func() {
		done <- in.Run(context.Background(), `10 GOTO 10`)
	}()
	require.Eventually(t, func() bool { return in.State() == Running }, time.Second, time.Millisecond)

	program, err := parser.Parse(context.Background(), `10 END`)
	require.NoError(t, err)
	require.ErrorIs(t, in.Execute(context.Background(), program), ErrAlreadyRunning)
	require.ErrorIs(t, in.Load(program), ErrAlreadyRunning)

	in.Stop()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("program did not stop")
	}
	require.Equal(t, Stopped, in.State())
	require.Equal(t, StopRequested, in.StopReason())
}

func TestStep(t *testing.T) {
	buf := system.NewBuffer()
	in := New(buf)
	ctx := context.Background()

	_, err := in.Step(ctx)
	require.ErrorIs(t, err, ErrNoProgram)
	require.Equal(t, Idle, in.State())

	program, err := parser.Parse(ctx, `10 A=1: PRINT "ONE"
20 A=A+1
30 PRINT A
`)
	require.NoError(t, err)
	require.NoError(t, in.Load(program))
	require.Equal(t, Running, in.State())
	require.Equal(t, 10, in.CurrentLine())

	done, err := in.Step(ctx)
	require.NoError(t, err)
	require.False(t, done)
	require.Equal(t, 10, in.CurrentLine())

	done, err = in.Step(ctx)
	require.NoError(t, err)
	require.False(t, done)
	require.Equal(t, 20, in.CurrentLine())
	require.Equal(t, "ONE\n", buf.Output())

	done, err = in.Step(ctx)
	require.NoError(t, err)
	require.False(t, done)

	done, err = in.Step(ctx)
	require.NoError(t, err)
	require.True(t, done)
	require.Equal(t, "ONE\n2\n", buf.Output())
	require.Equal(t, Stopped, in.State())
	require.Equal(t, -1, in.CurrentLine())

	done, err = in.Step(ctx)
	require.NoError(t, err)
	require.True(t, done)
}

func TestStepStopAndFault(t *testing.T) {
	ctx := context.Background()
	in := New(system.NewBuffer())
	program, err := parser.Parse(ctx, `10 PRINT 1
20 PRINT 1/0
`)
	require.NoError(t, err)

	require.NoError(t, in.Load(program))
	_, err = in.Step(ctx)
	require.NoError(t, err)
	in.Stop()
	done, err := in.Step(ctx)
	require.NoError(t, err)
	require.True(t, done)
	require.Equal(t, StopRequested, in.StopReason())

	require.NoError(t, in.Load(program))
	_, err = in.Step(ctx)
	require.NoError(t, err)
	done, err = in.Step(ctx)
	require.True(t, done)
	requireFault(t, err, errz.DivisionByZero, 20)

	// A faulted session keeps reporting its fault.
	done, err = in.Step(ctx)
	require.True(t, done)
	requireFault(t, err, errz.DivisionByZero, 20)
}

func TestRandSeed(t *testing.T) {
	src := `10 PRINT RND(1);" ";RND(1);" ";RND(0)`
	_, first := runOK(t, src)
	_, second := runOK(t, src)
	require.Equal(t, first.Output(), second.Output())

	_, buf := runOK(t, `10 A=RND(-3): B=RND(1): C=RND(-3): D=RND(1)
20 PRINT A=C;B=D;RND(0)=D
30 X=RND(1): PRINT X>=0 AND X<1
`)
	require.Equal(t, "111\n1\n", buf.Output())
}

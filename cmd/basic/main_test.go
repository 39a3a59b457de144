package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	basic "github.com/Bad-Mango-Solutions/back-pocket-basic-sub009"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/errz"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/interpreter"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/parser"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/system"
)

func init() {
	color.NoColor = true
}

func writeProgram(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prog.bas")
	require.NoError(t, os.WriteFile(path, []byte(source), 0o644))
	return path
}

func TestReplLoop(t *testing.T) {
	buf := system.NewBuffer(
		`10 PRINT "HI"`,
		"20 STOP",
		"30 PRINT 1/0",
		"RUN",
		"CONT",
		"PRINT 2",
		"PRINT (",
		"QUIT",
		"PRINT 3",
	)
	r := newRepl(buf, zerolog.Nop())
	require.NoError(t, r.loop(context.Background()))

	out := buf.Output()
	require.Contains(t, out, "HI\nBREAK IN 20\n")
	require.Contains(t, out, "?DIVISION BY ZERO ERROR IN 30\n")
	require.Contains(t, out, "]PRINT 2\n2\n")
	require.Contains(t, out, "]PRINT (\n?SYNTAX ERROR\n")
	require.NotContains(t, out, "PRINT 3")
}

func TestReplLoadSave(t *testing.T) {
	dir := t.TempDir()
	saved := filepath.Join(dir, "saved.bas")

	buf := system.NewBuffer("20 PRINT 2", "10 PRINT 1", `SAVE "`+saved+`"`, "NEW", "LOAD "+saved, "RUN")
	r := newRepl(buf, zerolog.Nop())
	require.NoError(t, r.loop(context.Background()))

	data, err := os.ReadFile(saved)
	require.NoError(t, err)
	require.Equal(t, "10 PRINT 1\n20 PRINT 2\n", string(data))
	require.True(t, strings.HasSuffix(buf.Output(), "]RUN\n1\n2\n]"))
}

func TestReplMissingFile(t *testing.T) {
	buf := system.NewBuffer("LOAD " + filepath.Join(t.TempDir(), "nope.bas"))
	require.NoError(t, newRepl(buf, zerolog.Nop()).loop(context.Background()))
	require.Contains(t, buf.Output(), "?FILE NOT FOUND ERROR\n")
}

func TestReplCannotContinue(t *testing.T) {
	buf := system.NewBuffer("CONT")
	require.NoError(t, newRepl(buf, zerolog.Nop()).loop(context.Background()))
	require.Contains(t, buf.Output(), "?CAN'T CONTINUE ERROR\n")
}

func TestFileArg(t *testing.T) {
	path, err := fileArg(` "game.bas" `)
	require.NoError(t, err)
	require.Equal(t, "game.bas", path)

	_, err = fileArg(`""`)
	require.Error(t, err)
}

func TestReportStop(t *testing.T) {
	buf := system.NewBuffer()
	buf.Write("PARTIAL")
	fault := errz.New(errz.OutOfData, "")
	fault.Line = 40
	require.ErrorIs(t, reportStop(buf, &basic.Result{}, fault), errFaulted)
	require.Equal(t, "PARTIAL\n?OUT OF DATA ERROR IN 40\n", buf.Output())

	buf = system.NewBuffer()
	require.NoError(t, reportStop(buf, &basic.Result{Reason: interpreter.StopStatement, Line: 70}, nil))
	require.Equal(t, "BREAK IN 70\n", buf.Output())

	buf = system.NewBuffer()
	require.NoError(t, reportStop(buf, &basic.Result{Reason: interpreter.StopEnd, Line: -1}, nil))
	require.Empty(t, buf.Output())
}

func TestNodeToJSON(t *testing.T) {
	program, err := parser.Parse(context.Background(), "10 A = 1 + 2\n")
	require.NoError(t, err)

	root := nodeToJSON(program)
	require.Equal(t, "Program", root.Type)
	require.Len(t, root.Children, 1)

	line := root.Children[0]
	require.Equal(t, "Line", line.Type)
	require.Equal(t, 10, line.Value)
	require.Len(t, line.Children, 1)

	let := line.Children[0]
	require.Equal(t, "Let", let.Type)
	require.Len(t, let.Children, 2)
	require.Equal(t, "A", let.Children[0].Value)
	require.Equal(t, "+", let.Children[1].Value)

	var out bytes.Buffer
	printAST(&out, root, 0)
	require.True(t, strings.HasPrefix(out.String(), "Program\n  Line 10\n    Let "))
}

func TestCheckFile(t *testing.T) {
	report, err := checkFile(writeProgram(t, "10 GOTO 20\n20 END\n"))
	require.NoError(t, err)
	require.Empty(t, report)

	report, err = checkFile(writeProgram(t, "10 GOTO 30\n20 NEXT I\n"))
	require.NoError(t, err)
	require.Contains(t, report, "line 30 does not exist")
	require.Contains(t, report, "NEXT I without FOR")

	report, err = checkFile(writeProgram(t, "10 PRINT (\n"))
	require.NoError(t, err)
	require.NotEmpty(t, report)
}

func TestTracer(t *testing.T) {
	var logs bytes.Buffer
	logger := zerolog.New(&logs).Level(zerolog.WarnLevel)
	_, err := basic.Eval(context.Background(), "10 GOSUB 30\n20 END\n30 RETURN\n", system.NewBuffer(),
		basic.WithObserver(newTracer(logger)))
	require.NoError(t, err)

	var messages []string
	for _, line := range strings.Split(strings.TrimSpace(logs.String()), "\n") {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		messages = append(messages, entry["message"].(string))
	}
	require.Equal(t, "GOSUB 30", messages[0])
	require.Contains(t, messages, "RETURN")
	require.Contains(t, messages, "END")
	require.Equal(t, 2, strings.Count(strings.Join(messages, "|"), "GOSUB 30"))
}

func TestCommands(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"version"}, version + "\n"},
		{[]string{"docs", "GOSUB"}, `"keyword": "GOSUB"`},
		{[]string{"docs", "--category", "errors"}, `"category": "errors"`},
		{[]string{"run", writeProgram(t, "10 PRINT 6 * 7\n")}, "42\n"},
		{[]string{"ast", "--json", writeProgram(t, "10 END\n")}, `"type": "Keyword"`},
		{[]string{"tokens", writeProgram(t, "10 END\n")}, `"END"`},
		{[]string{"test", "../../testing/testdata"}, "5 passed"},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetArgs(tt.args)
		require.NoError(t, rootCmd.Execute(), tt.args)
		require.Contains(t, out.String(), tt.want, tt.args)
	}
}

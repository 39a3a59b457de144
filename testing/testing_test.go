package testing

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	stdt "testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStatus_String(t *stdt.T) {
	require.Equal(t, "PASS", StatusPassed.String())
	require.Equal(t, "FAIL", StatusFailed.String())
	require.Equal(t, "SKIP", StatusSkipped.String())
	require.Equal(t, "ERROR", StatusError.String())
}

func TestTestdata(t *stdt.T) {
	summary, err := Run(context.Background(), &Config{Patterns: []string{"testdata"}})
	require.NoError(t, err)
	require.Len(t, summary.Results, 5)
	for _, r := range summary.Results {
		require.Equal(t, StatusPassed, r.Status, "%s: %v\n%s", r.Name, r.Error, r.Diff)
	}
	require.True(t, summary.Success())
}

func TestDiscoverTestFiles(t *stdt.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	for _, name := range []string{"a_test.bas", "b.bas", "sub/c_test.bas", "d_test.out"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	files, err := DiscoverTestFiles([]string{dir})
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "a_test.bas")}, files)

	files, err = DiscoverTestFiles([]string{dir + "/..."})
	require.NoError(t, err)
	require.Len(t, files, 2)

	files, err = DiscoverTestFiles([]string{filepath.Join(dir, "*_test.bas"), filepath.Join(dir, "a_test.bas")})
	require.NoError(t, err)
	require.Len(t, files, 1)

	_, err = DiscoverTestFiles([]string{filepath.Join(dir, "missing")})
	require.ErrorContains(t, err, "path not found")
}

func writeTest(t *stdt.T, dir, name, source, want string) string {
	t.Helper()
	path := filepath.Join(dir, name+".bas")
	require.NoError(t, os.WriteFile(path, []byte(source), 0o644))
	if want != "" {
		require.NoError(t, os.WriteFile(companion(path, ".out"), []byte(want), 0o644))
	}
	return path
}

func TestRunOutcomes(t *stdt.T) {
	dir := t.TempDir()
	writeTest(t, dir, "pass_test", "10 PRINT 1+1\n", "2\n")
	writeTest(t, dir, "fail_test", "10 PRINT 3\n", "2\n")
	writeTest(t, dir, "nowant_test", "10 PRINT 1\n", "")
	writeTest(t, dir, "broken_test", "10 PRINT (\n", "x\n")

	summary, err := Run(context.Background(), &Config{Patterns: []string{dir}})
	require.NoError(t, err)
	byName := map[string]*TestResult{}
	for _, r := range summary.Results {
		byName[r.Name] = r
	}
	require.Equal(t, StatusPassed, byName["pass_test"].Status)
	require.Equal(t, StatusFailed, byName["fail_test"].Status)
	require.Contains(t, byName["fail_test"].Diff, "-2")
	require.Contains(t, byName["fail_test"].Diff, "+3")
	require.Equal(t, StatusSkipped, byName["nowant_test"].Status)
	require.Equal(t, StatusError, byName["broken_test"].Status)

	require.Equal(t, 1, summary.Passed)
	require.Equal(t, 1, summary.Failed)
	require.Equal(t, 1, summary.Skipped)
	require.Equal(t, 1, summary.Errors)
	require.False(t, summary.Success())
}

func TestRunPattern(t *stdt.T) {
	dir := t.TempDir()
	writeTest(t, dir, "one_test", "10 PRINT 1\n", "1\n")
	writeTest(t, dir, "two_test", "10 PRINT 2\n", "2\n")

	summary, err := Run(context.Background(), &Config{Patterns: []string{dir}, RunPattern: "^two"})
	require.NoError(t, err)
	require.Len(t, summary.Results, 1)
	require.Equal(t, "two_test", summary.Results[0].Name)

	_, err = Run(context.Background(), &Config{Patterns: []string{dir}, RunPattern: "("})
	require.ErrorContains(t, err, "invalid run pattern")
}

func TestRunUpdate(t *stdt.T) {
	dir := t.TempDir()
	path := writeTest(t, dir, "new_test", "10 PRINT \"FRESH\"\n", "")

	summary, err := Run(context.Background(), &Config{Patterns: []string{dir}, Update: true})
	require.NoError(t, err)
	require.True(t, summary.Results[0].Updated)

	data, err := os.ReadFile(companion(path, ".out"))
	require.NoError(t, err)
	require.Equal(t, "FRESH\n", string(data))
}

func TestRunTimeout(t *stdt.T) {
	dir := t.TempDir()
	writeTest(t, dir, "loop_test", "10 GOTO 10\n", "never\n")

	summary, err := Run(context.Background(), &Config{Patterns: []string{dir}, Timeout: 50 * time.Millisecond})
	require.NoError(t, err)
	require.Equal(t, StatusFailed, summary.Results[0].Status)
	require.Contains(t, summary.Results[0].Got, "BREAK IN 10")
}

func TestOutput(t *stdt.T) {
	var buf bytes.Buffer
	out := NewOutput(OutputConfig{Writer: &buf})
	summary := &Summary{Results: []*TestResult{
		{Name: "good_test", Status: StatusPassed},
		{Name: "bad_test", Status: StatusFailed, Diff: "--- bad_test.out\n+++ output\n-2\n+3\n"},
	}}
	summary.ComputeTotals()
	out.PrintResults(summary)

	text := buf.String()
	require.Contains(t, text, "=== RUN   good_test\n--- PASS: good_test")
	require.Contains(t, text, "--- FAIL: bad_test")
	require.Contains(t, text, "    -2\n    +3\n")
	require.True(t, strings.HasSuffix(text, "\nFAIL\n1 passed, 1 failed\n"))
}

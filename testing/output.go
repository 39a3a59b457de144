package testing

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// OutputConfig configures output formatting.
type OutputConfig struct {
	// Writer is where output is written.
	Writer io.Writer

	// Verbose prints the output of passing tests too.
	Verbose bool

	// UseColor enables ANSI color codes.
	UseColor bool
}

// Output handles formatting and printing test results.
type Output struct {
	w       io.Writer
	verbose bool
	green   *color.Color
	red     *color.Color
	yellow  *color.Color
}

// NewOutput creates a new Output formatter.
func NewOutput(cfg OutputConfig) *Output {
	o := &Output{
		w:       cfg.Writer,
		verbose: cfg.Verbose,
		green:   color.New(color.FgGreen),
		red:     color.New(color.FgRed),
		yellow:  color.New(color.FgYellow),
	}
	for _, c := range []*color.Color{o.green, o.red, o.yellow} {
		if cfg.UseColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return o
}

// StartTest prints the "=== RUN" line for a test.
func (o *Output) StartTest(name string) {
	fmt.Fprintf(o.w, "=== RUN   %s\n", name)
}

// EndTest prints the result line for a test (--- PASS, --- FAIL, etc.).
func (o *Output) EndTest(result *TestResult) {
	var statusStr string
	switch result.Status {
	case StatusPassed:
		statusStr = o.green.Sprint("--- PASS:")
	case StatusFailed:
		statusStr = o.red.Sprint("--- FAIL:")
	case StatusSkipped:
		statusStr = o.yellow.Sprint("--- SKIP:")
	case StatusError:
		statusStr = o.red.Sprint("--- ERROR:")
	default:
		statusStr = fmt.Sprintf("--- %s:", result.Status)
	}
	fmt.Fprintf(o.w, "%s %s (%.3fs)\n", statusStr, result.Name, result.Duration.Seconds())

	if result.Updated {
		fmt.Fprintf(o.w, "    updated %s\n", companion(result.Filename, ".out"))
	}
	if result.Error != nil {
		fmt.Fprintf(o.w, "    %s\n", indent(result.Error.Error()))
	}
	if result.Diff != "" {
		o.printDiff(result.Diff)
	}
	if o.verbose && result.Status == StatusPassed {
		fmt.Fprintf(o.w, "    %s\n", indent(strings.TrimSuffix(result.Got, "\n")))
	}
}

func (o *Output) printDiff(diff string) {
	for _, line := range strings.Split(strings.TrimSuffix(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++"):
			line = o.red.Sprint(line)
		case strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---"):
			line = o.green.Sprint(line)
		}
		fmt.Fprintf(o.w, "    %s\n", line)
	}
}

func indent(s string) string {
	return strings.ReplaceAll(s, "\n", "\n    ")
}

// Summary prints the final summary line.
func (o *Output) Summary(summary *Summary) {
	fmt.Fprintln(o.w)

	if summary.Success() {
		fmt.Fprintln(o.w, o.green.Sprint("PASS"))
	} else {
		fmt.Fprintln(o.w, o.red.Sprint("FAIL"))
	}

	parts := []string{}
	if summary.Passed > 0 {
		parts = append(parts, o.green.Sprintf("%d passed", summary.Passed))
	}
	if summary.Failed > 0 {
		parts = append(parts, o.red.Sprintf("%d failed", summary.Failed))
	}
	if summary.Skipped > 0 {
		parts = append(parts, o.yellow.Sprintf("%d skipped", summary.Skipped))
	}
	if summary.Errors > 0 {
		parts = append(parts, o.red.Sprintf("%d errors", summary.Errors))
	}
	if len(parts) > 0 {
		fmt.Fprintln(o.w, strings.Join(parts, ", "))
	}
}

// PrintResults prints all results in Go test style.
func (o *Output) PrintResults(summary *Summary) {
	for _, result := range summary.Results {
		o.StartTest(result.Name)
		o.EndTest(result)
	}
	o.Summary(summary)
}

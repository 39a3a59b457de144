package testing

import (
	"context"
	goerrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/pmezard/go-difflib/difflib"

	basic "github.com/Bad-Mango-Solutions/back-pocket-basic-sub009"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/errz"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/interpreter"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/system"
)

// DefaultTimeout bounds each program so that an endless loop fails its
// test instead of hanging the run.
const DefaultTimeout = 10 * time.Second

// Config holds configuration for running tests.
type Config struct {
	// Patterns specifies files or directories to search for tests.
	// Default is current directory.
	Patterns []string

	// RunPattern filters tests to run by name regex.
	RunPattern string

	// Verbose prints the output of passing tests too.
	Verbose bool

	// Update rewrites each .out file with the output the program produced.
	Update bool

	// Timeout bounds each program. Zero means DefaultTimeout.
	Timeout time.Duration

	// Options are passed to every run. A fixed RND seed is always added
	// first so that output is repeatable.
	Options []basic.Option
}

// DiscoverTestFiles finds all *_test.bas files matching the given patterns.
// If no patterns are provided, searches the current directory.
func DiscoverTestFiles(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	var files []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		// Glob pattern
		if strings.Contains(pattern, "*") {
			matches, err := filepath.Glob(pattern)
			if err != nil {
				return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
			}
			for _, m := range matches {
				if isTestFile(m) && !seen[m] {
					files = append(files, m)
					seen[m] = true
				}
			}
			continue
		}

		// Handle "..." suffix for recursive search
		recursive := false
		searchDir := pattern
		if strings.HasSuffix(pattern, "/...") || strings.HasSuffix(pattern, "...") {
			recursive = true
			searchDir = strings.TrimSuffix(strings.TrimSuffix(pattern, "..."), "/")
			if searchDir == "" {
				searchDir = "."
			}
		}

		// Check if it's a directory
		info, err := os.Stat(searchDir)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("path not found: %s", searchDir)
			}
			return nil, err
		}

		if info.IsDir() {
			if recursive {
				err = filepath.Walk(searchDir, func(path string, info os.FileInfo, err error) error {
					if err != nil {
						return err
					}
					if !info.IsDir() && isTestFile(path) && !seen[path] {
						files = append(files, path)
						seen[path] = true
					}
					return nil
				})
				if err != nil {
					return nil, err
				}
			} else {
				entries, err := os.ReadDir(searchDir)
				if err != nil {
					return nil, err
				}
				for _, e := range entries {
					if !e.IsDir() && isTestFile(e.Name()) {
						path := filepath.Join(searchDir, e.Name())
						if !seen[path] {
							files = append(files, path)
							seen[path] = true
						}
					}
				}
			}
		} else {
			// It's a file
			if isTestFile(pattern) && !seen[pattern] {
				files = append(files, pattern)
				seen[pattern] = true
			}
		}
	}

	return files, nil
}

// isTestFile returns true if the filename matches *_test.bas.
func isTestFile(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), "_test.bas")
}

// companion returns path with its .bas extension replaced by ext.
func companion(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// Run executes tests according to the given configuration.
func Run(ctx context.Context, cfg *Config) (*Summary, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	files, err := DiscoverTestFiles(cfg.Patterns)
	if err != nil {
		return nil, err
	}

	var runRe *regexp.Regexp
	if cfg.RunPattern != "" {
		runRe, err = regexp.Compile(cfg.RunPattern)
		if err != nil {
			return nil, fmt.Errorf("invalid run pattern: %w", err)
		}
	}

	summary := &Summary{}
	start := time.Now()
	for _, file := range files {
		name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		if runRe != nil && !runRe.MatchString(name) {
			continue
		}
		summary.Results = append(summary.Results, runTestFile(ctx, cfg, name, file))
	}
	summary.Duration = time.Since(start)
	summary.ComputeTotals()
	return summary, nil
}

// runTestFile runs one program with the lines of its .in file as keyboard
// input and compares the screen output with its .out file.
func runTestFile(ctx context.Context, cfg *Config, name, filename string) *TestResult {
	result := &TestResult{Name: name, Filename: filename}
	start := time.Now()
	defer func() { result.Duration = time.Since(start) }()

	source, err := os.ReadFile(filename)
	if err != nil {
		result.Status, result.Error = StatusError, err
		return result
	}
	var input []string
	if data, err := os.ReadFile(companion(filename, ".in")); err == nil {
		input = strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	}

	opts := append([]basic.Option{basic.WithRandSeed(1), basic.WithFilename(filename)}, cfg.Options...)
	program, err := basic.Compile(string(source), opts...)
	if err != nil {
		result.Status, result.Error = StatusError, err
		return result
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	screen := system.NewBuffer(input...)
	res, err := basic.Run(runCtx, program, screen, opts...)
	if err := writeStop(screen, res, err); err != nil {
		result.Status, result.Error = StatusError, err
		return result
	}
	result.Got = screen.Output()

	outFile := companion(filename, ".out")
	if cfg.Update {
		if err := os.WriteFile(outFile, []byte(result.Got), 0o644); err != nil {
			result.Status, result.Error = StatusError, err
			return result
		}
		result.Want, result.Updated, result.Status = result.Got, true, StatusPassed
		return result
	}
	want, err := os.ReadFile(outFile)
	if goerrors.Is(err, os.ErrNotExist) {
		result.Status, result.Error = StatusSkipped, fmt.Errorf("no %s", filepath.Base(outFile))
		return result
	} else if err != nil {
		result.Status, result.Error = StatusError, err
		return result
	}
	result.Want = string(want)
	if result.Got == result.Want {
		result.Status = StatusPassed
		return result
	}
	result.Status = StatusFailed
	result.Diff, _ = difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(result.Want),
		B:        difflib.SplitLines(result.Got),
		FromFile: filepath.Base(outFile),
		ToFile:   "output",
		Context:  2,
	})
	return result
}

// writeStop appends the message the prompt shows when a program faults or
// stops, so that expected output can cover error paths. Other errors are
// returned.
func writeStop(screen system.Context, res *basic.Result, err error) error {
	var message string
	var fault *errz.Fault
	switch {
	case goerrors.As(err, &fault):
		message = fault.LegacyMessage()
	case err != nil:
		return err
	case res.Reason == interpreter.StopStatement:
		message = fmt.Sprintf("BREAK IN %d", res.Line)
	default:
		return nil
	}
	if screen.CursorColumn() > 0 {
		screen.WriteLine("")
	}
	return screen.WriteLine(message)
}

package testing

import "time"

// Status represents the outcome of a test.
type Status int

const (
	StatusPassed Status = iota
	StatusFailed
	StatusSkipped
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusPassed:
		return "PASS"
	case StatusFailed:
		return "FAIL"
	case StatusSkipped:
		return "SKIP"
	case StatusError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// TestResult is the outcome of running one program against its expected
// output.
type TestResult struct {
	Name     string
	Filename string
	Status   Status
	Duration time.Duration
	Error    error  // set when the program could not be read or parsed
	Got      string // screen output of the run
	Want     string // contents of the .out file
	Diff     string // unified diff of Want and Got when they differ
	Updated  bool   // the .out file was rewritten with Got
}

// Summary aggregates the results of a test run.
type Summary struct {
	Results  []*TestResult
	Duration time.Duration
	Passed   int
	Failed   int
	Skipped  int
	Errors   int
}

// ComputeTotals counts the results by status.
func (s *Summary) ComputeTotals() {
	s.Passed, s.Failed, s.Skipped, s.Errors = 0, 0, 0, 0
	for _, r := range s.Results {
		switch r.Status {
		case StatusPassed:
			s.Passed++
		case StatusFailed:
			s.Failed++
		case StatusSkipped:
			s.Skipped++
		case StatusError:
			s.Errors++
		}
	}
}

// Success reports whether no test failed or errored.
func (s *Summary) Success() bool {
	return s.Failed == 0 && s.Errors == 0
}

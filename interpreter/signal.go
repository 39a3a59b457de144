package interpreter

import (
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/errz"
)

// signalKind tells the step loop what to do after a statement.
type signalKind int

const (
	sigContinue     signalKind = iota // move to the next statement
	sigJump                           // go to the first statement of a line
	sigReturn                         // resume after the most recent GOSUB
	sigLoopContinue                   // resume the body of a FOR loop
	sigSkipLine                       // abandon the rest of the line
	sigHalt                           // end the run without a fault
	sigRaise                          // end the run with a fault
)

// signal is the outcome of executing one statement. Statements never panic
// or unwind to change control flow; they return a signal instead.
type signal struct {
	kind   signalKind
	line   int         // target line number of a jump
	gosub  bool        // push the return position before jumping
	resume position    // where a loop continues
	reason StopReason  // why a halt happened
	fault  *errz.Fault // set for sigRaise
}

var proceed = signal{kind: sigContinue}

func jumpTo(line int) signal {
	return signal{kind: sigJump, line: line}
}

func gosubTo(line int) signal {
	return signal{kind: sigJump, line: line, gosub: true}
}

func halt(reason StopReason) signal {
	return signal{kind: sigHalt, reason: reason}
}

// raise converts an error into a fault signal.
func raise(err error) signal {
	return signal{kind: sigRaise, fault: asFault(err)}
}

// position addresses a statement: an index into the program's lines and an
// index into that line's statements.
type position struct {
	line int
	stmt int
}

// Package errz defines Fault, the structured runtime error raised while a
// BASIC program executes.
package errz

import (
	"fmt"

	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/errors"
)

// Kind represents the category of a runtime fault.
type Kind int

const (
	UndefinedLine Kind = iota
	ReturnWithoutGosub
	NextWithoutFor
	TypeMismatch
	DivisionByZero
	BadSubscript
	OutOfData
	RedimensionedArray
	IllegalQuantity
	Overflow
	StringTooLong
	UndefinedFunction
	OutOfMemory
	Syntax
	Cancelled
	HostIO
)

var kindInfo = map[Kind]struct {
	name   string
	legacy string
	code   errors.ErrorCode
}{
	UndefinedLine:      {"undefined line", "UNDEF'D STATEMENT", errors.E3004},
	ReturnWithoutGosub: {"RETURN without GOSUB", "RETURN WITHOUT GOSUB", errors.E3005},
	NextWithoutFor:     {"NEXT without FOR", "NEXT WITHOUT FOR", errors.E3009},
	TypeMismatch:       {"type mismatch", "TYPE MISMATCH", errors.E3001},
	DivisionByZero:     {"division by zero", "DIVISION BY ZERO", errors.E3002},
	BadSubscript:       {"bad subscript", "BAD SUBSCRIPT", errors.E3003},
	OutOfData:          {"out of data", "OUT OF DATA", errors.E3008},
	RedimensionedArray: {"redimensioned array", "REDIM'D ARRAY", errors.E3010},
	IllegalQuantity:    {"illegal quantity", "ILLEGAL QUANTITY", errors.E3007},
	Overflow:           {"overflow", "OVERFLOW", errors.E3011},
	StringTooLong:      {"string too long", "STRING TOO LONG", errors.E3012},
	UndefinedFunction:  {"undefined function", "UNDEF'D FUNCTION", errors.E3013},
	OutOfMemory:        {"out of memory", "OUT OF MEMORY", errors.E3006},
	Syntax:             {"syntax error", "SYNTAX", errors.E3014},
	Cancelled:          {"cancelled", "BREAK", errors.E3015},
	HostIO:             {"host I/O error", "I/O", errors.E3016},
}

// String returns a lower case description of the kind.
func (k Kind) String() string {
	if info, ok := kindInfo[k]; ok {
		return info.name
	}
	return "runtime error"
}

// Legacy returns the classic upper case error name, e.g. "TYPE MISMATCH".
func (k Kind) Legacy() string {
	if info, ok := kindInfo[k]; ok {
		return info.legacy
	}
	return "SYNTAX"
}

// Code returns the error code for the kind.
func (k Kind) Code() errors.ErrorCode {
	return kindInfo[k].code
}

// Fault is a runtime error with the BASIC line where it happened, the
// source location of the failing statement and the active GOSUB frames.
type Fault struct {
	Kind      Kind
	Message   string
	Line      int // BASIC line number, or -1 when unknown
	Statement int // index of the statement within the line
	Location  errors.SourceLocation
	Stack     []errors.StackFrame
	Cause     error
}

// New creates a Fault of the given kind. The message defaults to the kind's
// description.
func New(kind Kind, format string, args ...any) *Fault {
	msg := kind.String()
	if format != "" {
		msg = fmt.Sprintf(format, args...)
	}
	return &Fault{Kind: kind, Message: msg, Line: -1}
}

// Error implements the error interface.
func (e *Fault) Error() string {
	if e.Line < 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s (line %d)", e.Kind, e.Message, e.Line)
}

// Unwrap returns the underlying cause of the fault.
func (e *Fault) Unwrap() error {
	return e.Cause
}

// WithCause wraps the fault with a cause.
func (e *Fault) WithCause(cause error) *Fault {
	e.Cause = cause
	return e
}

// LegacyMessage renders the fault the way the original machine printed it,
// for example "?DIVISION BY ZERO ERROR IN 10". A cancelled run is reported
// as "BREAK IN 10".
func (e *Fault) LegacyMessage() string {
	var msg string
	if e.Kind == Cancelled {
		msg = "BREAK"
	} else {
		msg = "?" + e.Kind.Legacy() + " ERROR"
	}
	if e.Line >= 0 {
		msg += fmt.Sprintf(" IN %d", e.Line)
	}
	return msg
}

// ToFormatted converts the fault for display by errors.Formatter.
func (e *Fault) ToFormatted() *errors.FormattedError {
	fe := &errors.FormattedError{
		Code:     e.Kind.Code(),
		Kind:     "runtime error",
		Message:  e.Message,
		Filename: e.Location.Filename,
		Line:     e.Location.Line,
		Column:   e.Location.Column,
		Stack:    e.Stack,
	}
	if e.Location.Source != "" {
		fe.SourceLines = []errors.SourceLineEntry{
			{Number: e.Location.Line, Text: e.Location.Source, IsMain: true},
		}
	}
	if e.Line >= 0 {
		fe.Note = e.LegacyMessage()
	}
	return fe
}

// FriendlyErrorMessage returns a human-friendly error message with the
// source snippet and GOSUB stack.
func (e *Fault) FriendlyErrorMessage() string {
	return errors.NewFormatter(false).Format(e.ToFormatted())
}

package parser

import (
	"fmt"

	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/errors"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/token"
)

// ErrorOpts is a struct that holds a variety of error data.
// All fields are optional, although one of `Cause` or `Message`
// are recommended. If `Cause` is set, it is used for Error().
type ErrorOpts struct {
	ErrType       string
	Code          errors.ErrorCode
	Message       string
	Hint          string
	Cause         error
	File          string
	StartPosition token.Position
	EndPosition   token.Position
	SourceCode    string
}

// NewParserError returns a new BaseParserError populated with
// the given error data.
func NewParserError(opts ErrorOpts) *BaseParserError {
	return &BaseParserError{
		errType:       opts.ErrType,
		code:          opts.Code,
		message:       opts.Message,
		hint:          opts.Hint,
		cause:         opts.Cause,
		file:          opts.File,
		startPosition: opts.StartPosition,
		endPosition:   opts.EndPosition,
		sourceCode:    opts.SourceCode,
	}
}

// ParserError is an interface that all parser errors implement.
type ParserError interface {
	Type() string
	Code() errors.ErrorCode
	Message() string
	Hint() string
	Cause() error
	File() string
	Line() int
	Column() int
	StartPosition() token.Position
	EndPosition() token.Position
	SourceCode() string
	Error() string
	errors.FriendlyError
	errors.FormattableError
}

// BaseParserError is the simplest implementation of ParserError.
type BaseParserError struct {
	// Type of the error, e.g. "syntax error"
	errType string
	// Error code, e.g. E1010
	code errors.ErrorCode
	// The error message
	message string
	// Optional "Did you mean" hint
	hint string
	// The wrapped error
	cause error
	// File where the error occurred
	file string
	// Start position of the error in the input string
	startPosition token.Position
	// End position of the error in the input string
	endPosition token.Position
	// Relevant line of source code text
	sourceCode string
}

func (e *BaseParserError) Error() string {
	var msg string
	if e.cause != nil {
		msg = e.cause.Error()
	} else {
		msg = fmt.Sprintf("%s (%d:%d)", e.message, e.Line(), e.Column())
	}
	if e.errType != "" {
		msg = fmt.Sprintf("%s: %s", e.errType, msg)
	}
	return msg
}

func (e *BaseParserError) FriendlyErrorMessage() string {
	return errors.NewFormatter(false).Format(e.ToFormatted())
}

// ToFormatted converts the parser error to a FormattedError for display.
func (e *BaseParserError) ToFormatted() *errors.FormattedError {
	start := e.startPosition
	endColumn := e.endPosition.ColumnNumber() - 1
	if e.endPosition.Line != start.Line || endColumn < start.ColumnNumber() {
		endColumn = start.ColumnNumber()
	}
	return &errors.FormattedError{
		Code:      e.code,
		Kind:      e.errType,
		Message:   e.message,
		Filename:  e.file,
		Line:      start.LineNumber(),
		Column:    start.ColumnNumber(),
		EndColumn: endColumn,
		Hint:      e.hint,
		SourceLines: []errors.SourceLineEntry{
			{Number: start.LineNumber(), Text: e.sourceCode, IsMain: true},
		},
	}
}

func (e *BaseParserError) Cause() error {
	return e.cause
}

func (e *BaseParserError) Code() errors.ErrorCode {
	return e.code
}

func (e *BaseParserError) Message() string {
	return e.message
}

func (e *BaseParserError) Hint() string {
	return e.hint
}

// Line returns the 1-based physical source line of the error.
func (e *BaseParserError) Line() int {
	return e.startPosition.LineNumber()
}

// Column returns the 1-based column of the error.
func (e *BaseParserError) Column() int {
	return e.startPosition.ColumnNumber()
}

func (e *BaseParserError) StartPosition() token.Position {
	return e.startPosition
}

func (e *BaseParserError) EndPosition() token.Position {
	return e.endPosition
}

func (e *BaseParserError) File() string {
	return e.file
}

func (e *BaseParserError) SourceCode() string {
	return e.sourceCode
}

func (e *BaseParserError) Unwrap() error {
	return e.cause
}

func (e *BaseParserError) Type() string {
	return e.errType
}

// NewSyntaxError returns a new SyntaxError populated with the given error data.
func NewSyntaxError(opts ErrorOpts) *SyntaxError {
	opts.ErrType = "syntax error"
	return &SyntaxError{BaseParserError: NewParserError(opts)}
}

// SyntaxError is a violation of the grammar, such as a missing operand or an
// unknown statement.
type SyntaxError struct {
	*BaseParserError
}

// NewLexicalError returns a new LexicalError populated with the given error
// data.
func NewLexicalError(opts ErrorOpts) *LexicalError {
	opts.ErrType = "lexical error"
	return &LexicalError{BaseParserError: NewParserError(opts)}
}

// LexicalError is a fault found while tokenizing, such as an unterminated
// string literal.
type LexicalError struct {
	*BaseParserError
}

func tokenTypeDescription(t token.Type) string {
	switch t {
	case token.EOF:
		return "end of file"
	case token.IDENT:
		return "variable name"
	case token.NEWLINE:
		return "end of line"
	case token.NUMBER:
		return "number"
	case token.STRING:
		return "string"
	default:
		return fmt.Sprintf("%q", string(t))
	}
}

func tokenDescription(t token.Token) string {
	switch t.Type {
	case token.EOF:
		return "end of file"
	case token.NEWLINE:
		return "end of line"
	default:
		if t.Literal == "" {
			return string(t.Type)
		}
		return fmt.Sprintf("%q", t.Literal)
	}
}

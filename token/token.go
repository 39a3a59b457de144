// Package token defines language keywords and tokens used when lexing BASIC
// source code.
package token

import "strings"

// Type describes the type of a token as a string.
type Type string

// Position points to a particular location in an input string.
type Position struct {
	Char      int    // byte offset within the input
	LineStart int    // byte offset of the start of the current line
	Line      int    // 0-indexed physical line number
	Column    int    // 0-indexed column number
	File      string // filename
}

// LineNumber returns the 1-indexed line number for this position in the input.
func (p Position) LineNumber() int {
	return p.Line + 1
}

// ColumnNumber returns the 1-indexed column number for this position in the input.
func (p Position) ColumnNumber() int {
	return p.Column + 1
}

// Advance returns a new Position advanced by n bytes. It assumes the advance
// does not cross a line boundary.
func (p Position) Advance(n int) Position {
	return Position{
		Char:      p.Char + n,
		LineStart: p.LineStart,
		Line:      p.Line,
		Column:    p.Column + n,
		File:      p.File,
	}
}

// IsValid returns true if this position has been set.
func (p Position) IsValid() bool {
	return p.File != "" || p.Line > 0 || p.Column > 0 || p.Char > 0
}

// NoPos is the zero value Position, representing an invalid/unset position.
var NoPos = Position{}

// Token represents one token lexed from the input source code.
type Token struct {
	Type    Type
	Literal string
	// Value holds the decoded literal for NUMBER and LINENUM tokens (a
	// float64 or int) and the unquoted text for STRING tokens.
	Value         any
	StartPosition Position
	EndPosition   Position
}

// Token types
const (
	ASTERISK  Type = "*"
	CARET     Type = "^"
	COLON     Type = ":"
	COMMA     Type = ","
	EOF       Type = "EOF"
	EQ        Type = "="
	GT        Type = ">"
	GT_EQUALS Type = ">="
	IDENT     Type = "IDENT"
	ILLEGAL   Type = "ILLEGAL"
	LINENUM   Type = "LINENUM"
	LPAREN    Type = "("
	LT        Type = "<"
	LT_EQUALS Type = "<="
	MINUS     Type = "-"
	NEWLINE   Type = "EOL"
	NOT_EQ    Type = "<>"
	NUMBER    Type = "NUMBER"
	PLUS      Type = "+"
	RPAREN    Type = ")"
	SEMICOLON Type = ";"
	SLASH     Type = "/"
	STRING    Type = "STRING"

	// Raw text captured after REM and DATA.
	REMARK   Type = "REMARK"
	DATATEXT Type = "DATATEXT"

	// Built-in function names such as LEFT$ or SQR.
	BUILTIN Type = "BUILTIN"

	// Statement keywords
	CALL    Type = "CALL"
	CLEAR   Type = "CLEAR"
	DATA    Type = "DATA"
	DEF     Type = "DEF"
	DIM     Type = "DIM"
	END     Type = "END"
	FLASH   Type = "FLASH"
	FOR     Type = "FOR"
	GET     Type = "GET"
	GOSUB   Type = "GOSUB"
	GOTO    Type = "GOTO"
	HOME    Type = "HOME"
	HTAB    Type = "HTAB"
	IF      Type = "IF"
	INPUT   Type = "INPUT"
	INVERSE Type = "INVERSE"
	LET     Type = "LET"
	NEXT    Type = "NEXT"
	NORMAL  Type = "NORMAL"
	ON      Type = "ON"
	POKE    Type = "POKE"
	POP     Type = "POP"
	PRINT   Type = "PRINT"
	READ    Type = "READ"
	REM     Type = "REM"
	RESTORE Type = "RESTORE"
	RETURN  Type = "RETURN"
	STOP    Type = "STOP"
	VTAB    Type = "VTAB"

	// Other keywords
	AND  Type = "AND"
	FN   Type = "FN"
	NOT  Type = "NOT"
	OR   Type = "OR"
	SPC  Type = "SPC("
	STEP Type = "STEP"
	TAB  Type = "TAB("
	THEN Type = "THEN"
	TO   Type = "TO"
)

// Reserved keywords. TAB and SPC are only keywords when immediately followed
// by an opening parenthesis, which the lexer handles.
var keywords = map[string]Type{
	"AND":     AND,
	"CALL":    CALL,
	"CLEAR":   CLEAR,
	"DATA":    DATA,
	"DEF":     DEF,
	"DIM":     DIM,
	"END":     END,
	"FLASH":   FLASH,
	"FN":      FN,
	"FOR":     FOR,
	"GET":     GET,
	"GOSUB":   GOSUB,
	"GOTO":    GOTO,
	"HOME":    HOME,
	"HTAB":    HTAB,
	"IF":      IF,
	"INPUT":   INPUT,
	"INVERSE": INVERSE,
	"LET":     LET,
	"NEXT":    NEXT,
	"NORMAL":  NORMAL,
	"NOT":     NOT,
	"ON":      ON,
	"OR":      OR,
	"POKE":    POKE,
	"POP":     POP,
	"PRINT":   PRINT,
	"READ":    READ,
	"REM":     REM,
	"RESTORE": RESTORE,
	"RETURN":  RETURN,
	"STEP":    STEP,
	"STOP":    STOP,
	"THEN":    THEN,
	"TO":      TO,
	"VTAB":    VTAB,
}

// statementKeywords may begin a statement.
var statementKeywords = map[Type]bool{
	CALL: true, CLEAR: true, DATA: true, DEF: true, DIM: true, END: true,
	FLASH: true, FOR: true, GET: true, GOSUB: true, GOTO: true, HOME: true,
	HTAB: true, IF: true, INPUT: true, INVERSE: true, LET: true, NEXT: true,
	NORMAL: true, ON: true, POKE: true, POP: true, PRINT: true, READ: true,
	REM: true, RESTORE: true, RETURN: true, STOP: true, VTAB: true,
}

// builtins lists the reserved names of built-in functions.
var builtins = map[string]bool{
	"ABS": true, "ASC": true, "ATN": true, "CHR$": true, "COS": true,
	"EXP": true, "INT": true, "LEFT$": true, "LEN": true, "LOG": true,
	"MID$": true, "PEEK": true, "POS": true, "RIGHT$": true, "RND": true,
	"SGN": true, "SIN": true, "SQR": true, "STR$": true, "TAN": true,
	"VAL": true,
}

// LookupIdentifier determines whether the given word is a keyword, a built-in
// function name or a plain identifier. Lookups are case-insensitive.
func LookupIdentifier(identifier string) Type {
	word := strings.ToUpper(identifier)
	if tok, ok := keywords[word]; ok {
		return tok
	}
	if builtins[word] {
		return BUILTIN
	}
	return IDENT
}

// IsStatementKeyword returns true if the token type may start a statement.
func IsStatementKeyword(t Type) bool {
	return statementKeywords[t]
}

// IsBuiltin returns true if the name is a built-in function name.
func IsBuiltin(name string) bool {
	return builtins[strings.ToUpper(name)]
}

// Keywords returns all reserved statement and operator keywords.
func Keywords() []string {
	names := make([]string, 0, len(keywords))
	for k := range keywords {
		names = append(names, k)
	}
	return names
}

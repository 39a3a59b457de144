// Package lexer converts BASIC program text into a sequence of tokens.
//
// A Lexer is created with New and tokens are pulled one at a time with Next.
// Tokenize is a convenience that lexes the whole input eagerly. Lexing is
// deterministic: lexing the same input twice yields the same tokens.
package lexer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/token"
)

// Error is a lexical fault such as an unterminated string literal or a
// malformed number. Lexing cannot continue past an Error.
type Error struct {
	Message  string
	Position token.Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%d:%d)", e.Message, e.Position.LineNumber(), e.Position.ColumnNumber())
}

// Lexer holds the state for tokenizing one input string.
type Lexer struct {
	input     string
	pos       int
	line      int
	lineStart int
	filename  string

	// atLineStart is true when the next token begins a physical line, which
	// is where a line number is expected.
	atLineStart bool

	// stmtStart is true when the next token begins a statement. Crunched
	// statement keywords ("PRINTX") are only split off in this position.
	stmtStart bool

	// raw is REMARK or DATATEXT when the rest of the statement must be
	// captured verbatim.
	raw token.Type

	err error
}

// New returns a Lexer for the given input.
func New(input string) *Lexer {
	return &Lexer{input: input, atLineStart: true, stmtStart: true}
}

// Tokenize lexes the entire input and returns all tokens, ending with EOF.
func Tokenize(input string) ([]token.Token, error) {
	l := New(input)
	var tokens []token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens, nil
		}
	}
}

// SetFilename sets the filename reported in token positions.
func (l *Lexer) SetFilename(filename string) {
	l.filename = filename
}

// Filename returns the filename associated with this Lexer.
func (l *Lexer) Filename() string {
	return l.filename
}

// GetLineText returns the full physical source line containing the token.
func (l *Lexer) GetLineText(tok token.Token) string {
	start := tok.StartPosition.LineStart
	if start > len(l.input) {
		return ""
	}
	end := strings.IndexByte(l.input[start:], '\n')
	if end < 0 {
		return strings.TrimRight(l.input[start:], "\r")
	}
	return strings.TrimRight(l.input[start:start+end], "\r")
}

// Next returns the next token from the input. Once an error is returned, every
// following call returns the same error.
func (l *Lexer) Next() (token.Token, error) {
	if l.err != nil {
		return token.Token{Type: token.ILLEGAL, StartPosition: l.position(), EndPosition: l.position()}, l.err
	}
	tok, err := l.next()
	if err != nil {
		l.err = err
	}
	return tok, err
}

func (l *Lexer) next() (token.Token, error) {
	if l.raw != "" {
		return l.readRaw(), nil
	}
	l.skipWhitespace()
	if l.pos >= len(l.input) {
		pos := l.position()
		return token.Token{Type: token.EOF, StartPosition: pos, EndPosition: pos}, nil
	}
	ch := l.input[l.pos]
	if ch == '\n' {
		tok := l.emit(token.NEWLINE, l.pos, l.pos+1)
		l.pos++
		l.line++
		l.lineStart = l.pos
		l.atLineStart = true
		l.stmtStart = true
		return tok, nil
	}
	if l.atLineStart {
		l.atLineStart = false
		if isDigit(ch) {
			return l.readLineNumber()
		}
	}
	switch {
	case isDigit(ch) || ch == '.':
		l.stmtStart = false
		return l.readNumber()
	case ch == '"':
		l.stmtStart = false
		return l.readString()
	case isLetter(ch):
		return l.readWord()
	}
	start := l.pos
	l.pos++
	var typ token.Type
	switch ch {
	case '+':
		typ = token.PLUS
	case '-':
		typ = token.MINUS
	case '*':
		typ = token.ASTERISK
	case '/':
		typ = token.SLASH
	case '^':
		typ = token.CARET
	case '(':
		typ = token.LPAREN
	case ')':
		typ = token.RPAREN
	case ',':
		typ = token.COMMA
	case ';':
		typ = token.SEMICOLON
	case ':':
		tok := l.emit(token.COLON, start, l.pos)
		l.stmtStart = true
		return tok, nil
	case '?':
		tok := l.emit(token.PRINT, start, l.pos)
		tok.Literal = "PRINT"
		l.stmtStart = false
		return tok, nil
	case '<':
		typ = token.LT
		if l.peekIs('>') {
			typ = token.NOT_EQ
		} else if l.peekIs('=') {
			typ = token.LT_EQUALS
		}
	case '>':
		typ = token.GT
		if l.peekIs('=') {
			typ = token.GT_EQUALS
		} else if l.peekIs('<') {
			typ = token.NOT_EQ
		}
	case '=':
		typ = token.EQ
		if l.peekIs('<') {
			typ = token.LT_EQUALS
		} else if l.peekIs('>') {
			typ = token.GT_EQUALS
		}
	default:
		return token.Token{}, &Error{
			Message:  fmt.Sprintf("unexpected character %q", ch),
			Position: l.positionAt(start),
		}
	}
	if typ == token.NOT_EQ || typ == token.LT_EQUALS || typ == token.GT_EQUALS {
		l.pos++
	}
	l.stmtStart = false
	return l.emit(typ, start, l.pos), nil
}

func (l *Lexer) peekIs(ch byte) bool {
	return l.pos < len(l.input) && l.input[l.pos] == ch
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case ' ', '\t', '\r':
			l.pos++
		default:
			return
		}
	}
}

func (l *Lexer) readLineNumber() (token.Token, error) {
	start := l.pos
	for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
		l.pos++
	}
	tok := l.emit(token.LINENUM, start, l.pos)
	n, err := strconv.Atoi(tok.Literal)
	if err != nil {
		return token.Token{}, &Error{Message: fmt.Sprintf("invalid line number %q", tok.Literal), Position: tok.StartPosition}
	}
	tok.Value = n
	l.stmtStart = true
	return tok, nil
}

// readNumber reads integer, decimal and exponent forms: 12, 1.5, .5, 1E3,
// 2.5E-4.
func (l *Lexer) readNumber() (token.Token, error) {
	start := l.pos
	digits := 0
	for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
		l.pos++
		digits++
	}
	if l.peekIs('.') {
		l.pos++
		for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
			l.pos++
			digits++
		}
	}
	if digits == 0 {
		return token.Token{}, &Error{Message: "malformed number literal", Position: l.positionAt(start)}
	}
	if l.peekIs('E') || l.peekIs('e') {
		l.pos++
		if l.peekIs('+') || l.peekIs('-') {
			l.pos++
		}
		expDigits := 0
		for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
			l.pos++
			expDigits++
		}
		if expDigits == 0 {
			return token.Token{}, &Error{
				Message:  fmt.Sprintf("malformed number literal %q", l.input[start:l.pos]),
				Position: l.positionAt(start),
			}
		}
	}
	tok := l.emit(token.NUMBER, start, l.pos)
	value, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		return token.Token{}, &Error{
			Message:  fmt.Sprintf("malformed number literal %q", tok.Literal),
			Position: tok.StartPosition,
		}
	}
	tok.Value = value
	return tok, nil
}

// readString reads a quoted string. There is no escape processing; the
// string ends at the next double quote.
func (l *Lexer) readString() (token.Token, error) {
	start := l.pos
	l.pos++
	for {
		if l.pos >= len(l.input) || l.input[l.pos] == '\n' {
			return token.Token{}, &Error{Message: "unterminated string literal", Position: l.positionAt(start)}
		}
		if l.input[l.pos] == '"' {
			break
		}
		l.pos++
	}
	l.pos++
	tok := l.emit(token.STRING, start, l.pos)
	tok.Value = l.input[start+1 : l.pos-1]
	return tok, nil
}

// digitKeywords are split from a directly following digit: GOTO100, THEN20,
// TO3STEP2.
var digitKeywords = []string{"GOSUB", "GOTO", "THEN", "STEP", "AND", "TO", "OR"}

func (l *Lexer) readWord() (token.Token, error) {
	start := l.pos
	for l.pos < len(l.input) && (isLetter(l.input[l.pos]) || isDigit(l.input[l.pos])) {
		l.pos++
	}
	word := strings.ToUpper(l.input[start:l.pos])

	// Built-in string functions carry their $ suffix: LEFT$, CHR$.
	if l.peekIs('$') && token.IsBuiltin(word+"$") {
		l.pos++
		return l.keyword(token.BUILTIN, word+"$", start), nil
	}
	if (word == "TAB" || word == "SPC") && l.peekIs('(') {
		l.pos++
		typ := token.Type(token.TAB)
		if word == "SPC" {
			typ = token.SPC
		}
		return l.keyword(typ, word+"(", start), nil
	}
	if typ := token.LookupIdentifier(word); typ != token.IDENT {
		return l.keyword(typ, word, start), nil
	}
	if kw, typ, ok := l.splitKeyword(word); ok {
		l.pos = start + len(kw)
		return l.keyword(typ, kw, start), nil
	}
	if l.peekIs('$') || l.peekIs('%') {
		word += string(l.input[l.pos])
		l.pos++
	}
	l.stmtStart = false
	tok := l.emit(token.IDENT, start, l.pos)
	tok.Literal = word
	return tok, nil
}

// splitKeyword finds a keyword at the front of a crunched word such as
// "PRINTX" or "GOTO100".
func (l *Lexer) splitKeyword(word string) (string, token.Type, bool) {
	for _, kw := range digitKeywords {
		if strings.HasPrefix(word, kw) && len(word) > len(kw) {
			rest := word[len(kw):]
			if isDigit(rest[0]) {
				return kw, token.LookupIdentifier(kw), true
			}
			if kw == "THEN" && l.startsStatement(rest) {
				return kw, token.THEN, true
			}
		}
	}
	if strings.HasPrefix(word, "FN") && len(word) > 2 && isLetter(word[2]) {
		return "FN", token.FN, true
	}
	if !l.stmtStart {
		return "", "", false
	}
	var best string
	for _, kw := range token.Keywords() {
		typ := token.LookupIdentifier(kw)
		if !token.IsStatementKeyword(typ) || len(kw) >= len(word) || !strings.HasPrefix(word, kw) {
			continue
		}
		if len(kw) > len(best) {
			best = kw
		}
	}
	if best == "" {
		return "", "", false
	}
	// "ONE=1" is an assignment, but "FORI=1" and "IFX=1" are not.
	if l.nextSignificant() == '=' && best != "FOR" && best != "IF" {
		return "", "", false
	}
	return best, token.LookupIdentifier(best), true
}

func (l *Lexer) startsStatement(rest string) bool {
	for _, kw := range token.Keywords() {
		if strings.HasPrefix(rest, kw) && token.IsStatementKeyword(token.LookupIdentifier(kw)) {
			return true
		}
	}
	return false
}

func (l *Lexer) nextSignificant() byte {
	for i := l.pos; i < len(l.input); i++ {
		if c := l.input[i]; c != ' ' && c != '\t' && c != '$' && c != '%' {
			return c
		}
	}
	return 0
}

func (l *Lexer) keyword(typ token.Type, literal string, start int) token.Token {
	tok := l.emit(typ, start, l.pos)
	tok.Literal = literal
	switch typ {
	case token.REM:
		l.raw = token.REMARK
	case token.DATA:
		l.raw = token.DATATEXT
	}
	l.stmtStart = typ == token.THEN
	return tok
}

// readRaw captures the rest of a REM (to end of line) or DATA statement (to
// the next colon outside quotes).
func (l *Lexer) readRaw() token.Token {
	typ := l.raw
	l.raw = ""
	start := l.pos
	inQuote := false
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if c == '\n' {
			break
		}
		if typ == token.DATATEXT {
			if c == '"' {
				inQuote = !inQuote
			} else if c == ':' && !inQuote {
				break
			}
		}
		l.pos++
	}
	tok := l.emit(typ, start, l.pos)
	tok.Literal = strings.TrimRight(tok.Literal, "\r")
	tok.Value = tok.Literal
	return tok
}

func (l *Lexer) emit(typ token.Type, start, end int) token.Token {
	return token.Token{
		Type:          typ,
		Literal:       l.input[start:end],
		StartPosition: l.positionAt(start),
		EndPosition:   l.positionAt(end),
	}
}

func (l *Lexer) position() token.Position {
	return l.positionAt(l.pos)
}

func (l *Lexer) positionAt(offset int) token.Position {
	return token.Position{
		Char:      offset,
		LineStart: l.lineStart,
		Line:      l.line,
		Column:    offset - l.lineStart,
		File:      l.filename,
	}
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isLetter(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

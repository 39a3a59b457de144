// Package parser is used to generate the abstract syntax tree (AST) for a
// BASIC program.
//
// A parser is created by calling New() with a lexer as input. The parser should
// then be used only once, by calling parser.Parse() to produce the AST. Parsing
// stops at the first error, which is returned as a *SyntaxError or a
// *LexicalError.
package parser

import (
	"context"
	goerrors "errors"
	"fmt"
	"strings"

	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/ast"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/errors"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/lexer"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/token"
)

type (
	prefixParseFn func() ast.Expr
	infixParseFn  func(ast.Expr) ast.Expr
)

// Parse the provided input as BASIC source code and return the AST. This is
// shorthand way to create a Lexer and Parser and then call Parse on that.
func Parse(ctx context.Context, input string, options ...Option) (*ast.Program, error) {
	// Resolve the filename first so that errors in the first tokens carry it.
	var probe Parser
	for _, opt := range options {
		opt(&probe)
	}
	l := lexer.New(input)
	if probe.filename != "" {
		l.SetFilename(probe.filename)
	}
	return New(l, options...).Parse(ctx)
}

// Option is a configuration function for a Parser.
type Option func(*Parser)

// WithFilename sets the file name reported in errors.
func WithFilename(filename string) Option {
	return func(p *Parser) {
		p.filename = filename
	}
}

// WithMaxDepth sets the maximum expression nesting depth for the parser.
// This prevents stack overflow on deeply nested input.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		p.maxDepth = depth
	}
}

// DefaultMaxDepth is the default maximum nesting depth for parsing.
const DefaultMaxDepth = 200

// Parser object
type Parser struct {
	// the Context supplied in the Parse() call
	ctx context.Context

	// l is our lexer
	l *lexer.Lexer

	// prevToken holds the previous token, which we already processed.
	prevToken token.Token

	// curToken holds the current token from the lexer.
	curToken token.Token

	// peekToken holds the next token from the lexer.
	peekToken token.Token

	// err is the first error encountered. Parsing stops once it is set.
	err ParserError

	// prefixParseFns holds a map of parsing methods for
	// prefix-based syntax.
	prefixParseFns map[token.Type]prefixParseFn

	// infixParseFns holds a map of parsing methods for
	// infix-based syntax.
	infixParseFns map[token.Type]infixParseFn

	// The filename of the input
	filename string

	// Current recursion depth
	depth int

	// Maximum allowed recursion depth
	maxDepth int
}

// New returns a Parser for the program provided by the given Lexer.
func New(l *lexer.Lexer, options ...Option) *Parser {
	p := &Parser{
		l:              l,
		prefixParseFns: map[token.Type]prefixParseFn{},
		infixParseFns:  map[token.Type]infixParseFn{},
		maxDepth:       DefaultMaxDepth,
	}
	for _, opt := range options {
		opt(p)
	}
	if p.filename != "" && l.Filename() == "" {
		l.SetFilename(p.filename)
	}

	// Prime the token pump
	p.nextToken() // makes curToken=<empty>, peekToken=token[0]
	p.nextToken() // makes curToken=token[0], peekToken=token[1]

	p.registerPrefix(token.BUILTIN, p.parseCall)
	p.registerPrefix(token.FN, p.parseFnCall)
	p.registerPrefix(token.IDENT, p.parseVariable)
	p.registerPrefix(token.LPAREN, p.parseGroupedExpr)
	p.registerPrefix(token.MINUS, p.parsePrefixExpr)
	p.registerPrefix(token.NOT, p.parsePrefixExpr)
	p.registerPrefix(token.NUMBER, p.parseNumber)
	p.registerPrefix(token.PLUS, p.parsePrefixExpr)
	p.registerPrefix(token.STRING, p.parseString)

	for _, t := range []token.Type{
		token.AND, token.ASTERISK, token.CARET, token.EQ, token.GT,
		token.GT_EQUALS, token.LT, token.LT_EQUALS, token.MINUS,
		token.NOT_EQ, token.OR, token.PLUS, token.SLASH,
	} {
		p.registerInfix(t, p.parseInfixExpr)
	}
	return p
}

// nextToken moves to the next token from the lexer, updating all of
// prevToken, curToken, and peekToken.
func (p *Parser) nextToken() {
	p.prevToken = p.curToken
	p.curToken = p.peekToken
	tok, err := p.l.Next()
	if err == nil {
		p.peekToken = tok
		return
	}
	// The lexer cannot continue. Record the error and present EOF from here
	// on so that every parsing loop terminates.
	opts := ErrorOpts{
		Code:          errors.E1003,
		Message:       err.Error(),
		Cause:         err,
		File:          p.l.Filename(),
		StartPosition: tok.StartPosition,
		EndPosition:   tok.EndPosition,
	}
	var lexErr *lexer.Error
	if goerrors.As(err, &lexErr) {
		opts.Message = lexErr.Message
		opts.StartPosition = lexErr.Position
		opts.EndPosition = lexErr.Position.Advance(1)
		switch {
		case strings.HasPrefix(lexErr.Message, "unterminated string"):
			opts.Code = errors.E1002
		case strings.HasPrefix(lexErr.Message, "malformed number"):
			opts.Code = errors.E1008
		}
	}
	opts.SourceCode = p.l.GetLineText(token.Token{StartPosition: opts.StartPosition})
	p.setError(NewLexicalError(opts))
	p.peekToken = token.Token{Type: token.EOF, StartPosition: opts.StartPosition, EndPosition: opts.StartPosition}
}

// Parse the program that is provided via the lexer. It returns the program
// or the first error encountered.
func (p *Parser) Parse(ctx context.Context) (*ast.Program, error) {
	p.ctx = ctx
	program := ast.NewProgram()
	for p.err == nil && !p.curTokenIs(token.EOF) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if p.curTokenIs(token.NEWLINE) {
			p.nextToken()
			continue
		}
		line := p.parseLine()
		if p.err != nil {
			break
		}
		program.Add(line)
		p.nextToken()
	}
	if p.err != nil {
		return nil, p.err
	}
	return program, nil
}

// registerPrefix registers a function for handling a prefix-based expression.
func (p *Parser) registerPrefix(tokenType token.Type, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

// registerInfix registers a function for handling an infix-based expression.
func (p *Parser) registerInfix(tokenType token.Type, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}

// setError records err unless an earlier error was already recorded.
func (p *Parser) setError(err ParserError) {
	if p.err == nil {
		p.err = err
	}
}

func (p *Parser) setTokenError(code errors.ErrorCode, t token.Token, msg string, args ...any) {
	p.setError(NewSyntaxError(ErrorOpts{
		Code:          code,
		Message:       fmt.Sprintf(msg, args...),
		File:          p.l.Filename(),
		StartPosition: t.StartPosition,
		EndPosition:   t.EndPosition,
		SourceCode:    p.l.GetLineText(t),
	}))
}

func (p *Parser) noPrefixParseFnError(t token.Token) {
	switch t.Type {
	case token.NEWLINE, token.EOF, token.COLON:
		p.setTokenError(errors.E1004, t, "missing expression before %s", tokenDescription(t))
	case token.RPAREN:
		p.setTokenError(errors.E1007, t, "unbalanced parentheses (unexpected %q)", ")")
	case token.TAB, token.SPC:
		p.setTokenError(errors.E1003, t, "%s is only allowed in PRINT", t.Literal)
	default:
		p.setTokenError(errors.E1001, t, "invalid syntax (unexpected %s)", tokenDescription(t))
	}
}

// peekError raises an error if the next token is not the expected type.
func (p *Parser) peekError(context string, expected token.Type, got token.Token) {
	code := errors.E1001
	if expected == token.RPAREN {
		code = errors.E1007
	}
	p.setTokenError(code, got, "unexpected %s while parsing %s (expected %s)",
		tokenDescription(got), context, tokenTypeDescription(expected))
}

// curTokenIs returns true if the current token has the given type.
func (p *Parser) curTokenIs(t token.Type) bool {
	return p.curToken.Type == t
}

// peekTokenIs returns true if the next token has the given type.
func (p *Parser) peekTokenIs(t token.Type) bool {
	return p.peekToken.Type == t
}

// expectPeek validates if the next token is of the given type, and advances if
// it is. If it's a different type, then an error is stored.
func (p *Parser) expectPeek(context string, t token.Type) bool {
	if p.err != nil {
		return false
	}
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(context, t, p.peekToken)
	return false
}

// peekPrecedence returns the precedence of the next token.
func (p *Parser) peekPrecedence() int {
	if p, ok := precedences[p.peekToken.Type]; ok {
		return p
	}
	return LOWEST
}

// currentPrecedence returns the precedence of the current token.
func (p *Parser) currentPrecedence() int {
	if p, ok := precedences[p.curToken.Type]; ok {
		return p
	}
	return LOWEST
}

func isLineEnd(t token.Type) bool {
	return t == token.NEWLINE || t == token.EOF
}

// peekEndsStatement reports whether the next token ends the current
// statement.
func (p *Parser) peekEndsStatement() bool {
	return p.peekTokenIs(token.COLON) || isLineEnd(p.peekToken.Type)
}

// parseLine parses one numbered line. On return curToken is the NEWLINE or
// EOF that ends the line.
func (p *Parser) parseLine() *ast.Line {
	if !p.curTokenIs(token.LINENUM) {
		p.setTokenError(errors.E1011, p.curToken, "missing line number (found %s)", tokenDescription(p.curToken))
		return nil
	}
	numTok := p.curToken
	number, _ := numTok.Value.(int)
	if number > ast.MaxLineNumber {
		p.setTokenError(errors.E1012, numTok, "line number %d out of range (0-%d)", number, ast.MaxLineNumber)
		return nil
	}
	line := &ast.Line{
		NumberPos: numTok.StartPosition,
		Number:    number,
		Text:      p.l.GetLineText(numTok),
	}
	p.nextToken()
	p.skipColons()
	if isLineEnd(p.curToken.Type) {
		p.setTokenError(errors.E1003, numTok, "line %d has no statements", number)
		return nil
	}
	for {
		stmt := p.parseStatement()
		if p.err != nil {
			return nil
		}
		line.Stmts = append(line.Stmts, stmt)
		p.nextToken()

		// The statements after THEN belong to the IF clause and follow it
		// directly, without a colon.
		if ifStmt, ok := stmt.(*ast.If); ok && !ifStmt.HasTarget {
			p.skipColons()
			if isLineEnd(p.curToken.Type) {
				p.setTokenError(errors.E1004, p.curToken, "missing statement after THEN")
				return nil
			}
			continue
		}
		if isLineEnd(p.curToken.Type) {
			return line
		}
		if !p.curTokenIs(token.COLON) {
			p.setTokenError(errors.E1001, p.curToken, "unexpected %s following statement", tokenDescription(p.curToken))
			return nil
		}
		p.skipColons()
		if isLineEnd(p.curToken.Type) {
			return line
		}
	}
}

func (p *Parser) skipColons() {
	for p.err == nil && p.curTokenIs(token.COLON) {
		p.nextToken()
	}
}

package parser

import (
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/ast"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/errors"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/token"
)

// builtinArity holds the minimum and maximum argument counts of each
// built-in function.
var builtinArity = map[string][2]int{
	"LEFT$":  {2, 2},
	"RIGHT$": {2, 2},
	"MID$":   {2, 3},
}

func arity(name string) (int, int) {
	if a, ok := builtinArity[name]; ok {
		return a[0], a[1]
	}
	return 1, 1
}

func (p *Parser) parseExpression(precedence int) ast.Expr {
	if p.err != nil {
		return nil
	}
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > p.maxDepth {
		p.setTokenError(errors.E1009, p.curToken, "maximum nesting depth exceeded")
		return nil
	}
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken)
		return nil
	}
	left := prefix()
	if left == nil || p.err != nil {
		return nil
	}
	for precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		if left = infix(left); left == nil || p.err != nil {
			return nil
		}
	}
	return left
}

func (p *Parser) parseNumber() ast.Expr {
	value, _ := p.curToken.Value.(float64)
	return &ast.Number{
		ValuePos: p.curToken.StartPosition,
		Literal:  p.curToken.Literal,
		Value:    value,
	}
}

func (p *Parser) parseString() ast.Expr {
	return p.newString(p.curToken)
}

func (p *Parser) newString(tok token.Token) *ast.String {
	value, _ := tok.Value.(string)
	return &ast.String{ValuePos: tok.StartPosition, Literal: tok.Literal, Value: value}
}

// newIdent creates a new Ident node from a token.
func (p *Parser) newIdent(tok token.Token) *ast.Ident {
	return &ast.Ident{NamePos: tok.StartPosition, Name: tok.Literal}
}

// parseVariable parses a scalar variable or an array element reference.
func (p *Parser) parseVariable() ast.Expr {
	ident := p.newIdent(p.curToken)
	if !p.peekTokenIs(token.LPAREN) {
		return ident
	}
	p.nextToken()
	index := p.parseIndex(ident)
	if index == nil {
		return nil
	}
	return index
}

// parseIndex parses the subscripts of an array reference. curToken is the
// opening parenthesis.
func (p *Parser) parseIndex(name *ast.Ident) *ast.Index {
	index := &ast.Index{Name: name, Lparen: p.curToken.StartPosition}
	index.Indexes = p.parseExprList("subscript")
	if p.err != nil {
		return nil
	}
	if len(index.Indexes) == 0 {
		p.setTokenError(errors.E1004, p.curToken, "missing subscript for %s", name.Name)
		return nil
	}
	index.Rparen = p.curToken.StartPosition
	return index
}

// parseExprList parses comma separated expressions up to a closing
// parenthesis. curToken is the opening parenthesis on entry and the closing
// parenthesis on return.
func (p *Parser) parseExprList(context string) []ast.Expr {
	var list []ast.Expr
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return list
	}
	p.nextToken()
	if expr := p.parseExpression(LOWEST); expr != nil {
		list = append(list, expr)
	}
	for p.err == nil && p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		if expr := p.parseExpression(LOWEST); expr != nil {
			list = append(list, expr)
		}
	}
	if !p.expectPeek(context, token.RPAREN) {
		return nil
	}
	return list
}

func (p *Parser) parseCall() ast.Expr {
	call := &ast.Call{NamePos: p.curToken.StartPosition, Name: p.curToken.Literal}
	nameTok := p.curToken
	if !p.expectPeek(call.Name+" arguments", token.LPAREN) {
		return nil
	}
	call.Lparen = p.curToken.StartPosition
	call.Args = p.parseExprList(call.Name + " arguments")
	if p.err != nil {
		return nil
	}
	call.Rparen = p.curToken.StartPosition
	lo, hi := arity(call.Name)
	if n := len(call.Args); n < lo || n > hi {
		p.setTokenError(errors.E1003, nameTok, "wrong number of arguments to %s (got %d)", call.Name, n)
		return nil
	}
	return call
}

func (p *Parser) parseFnCall() ast.Expr {
	fn := &ast.FnCall{Fn: p.curToken.StartPosition}
	if !p.expectPeek("FN", token.IDENT) {
		return nil
	}
	fn.Name = p.curToken.Literal
	if !p.expectPeek("FN", token.LPAREN) {
		return nil
	}
	p.nextToken()
	fn.Arg = p.parseExpression(LOWEST)
	if fn.Arg == nil || !p.expectPeek("FN", token.RPAREN) {
		return nil
	}
	fn.Rparen = p.curToken.StartPosition
	return fn
}

func (p *Parser) parseGroupedExpr() ast.Expr {
	lparen := p.curToken
	p.nextToken()
	x := p.parseExpression(LOWEST)
	if x == nil {
		return nil
	}
	if !p.peekTokenIs(token.RPAREN) {
		p.setTokenError(errors.E1007, lparen, "unbalanced parentheses (missing %q)", ")")
		return nil
	}
	p.nextToken()
	return &ast.Paren{Lparen: lparen.StartPosition, X: x, Rparen: p.curToken.StartPosition}
}

func (p *Parser) parsePrefixExpr() ast.Expr {
	opPos := p.curToken.StartPosition
	op := operators[p.curToken.Type]
	p.nextToken()
	right := p.parseExpression(PREFIX)
	if right == nil {
		return nil
	}
	return &ast.Prefix{OpPos: opPos, Op: op, X: right}
}

func (p *Parser) parseInfixExpr(left ast.Expr) ast.Expr {
	opPos := p.curToken.StartPosition
	op := operators[p.curToken.Type]
	precedence := p.currentPrecedence()
	// Exponentiation is right-associative: 2^3^2 = 2^(3^2)
	if p.curTokenIs(token.CARET) {
		precedence--
	}
	p.nextToken()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	return &ast.Infix{X: left, OpPos: opPos, Op: op, Y: right}
}

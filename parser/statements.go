package parser

import (
	"strconv"
	"strings"

	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/ast"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/errors"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/token"
)

// parseStatement parses the statement starting at curToken. On return
// curToken is the last token of the statement.
func (p *Parser) parseStatement() ast.Stmt {
	switch p.curToken.Type {
	case token.LET:
		return p.parseLet()
	case token.IDENT:
		return p.parseImplicitLet()
	case token.PRINT:
		return p.parsePrint()
	case token.INPUT:
		return p.parseInput()
	case token.GET:
		return p.parseGet()
	case token.IF:
		return p.parseIf()
	case token.GOTO:
		return p.parseGoto()
	case token.GOSUB:
		return p.parseGosub()
	case token.ON:
		return p.parseOn()
	case token.FOR:
		return p.parseFor()
	case token.NEXT:
		return p.parseNext()
	case token.DIM:
		return p.parseDim()
	case token.DATA:
		return p.parseData()
	case token.READ:
		return p.parseRead()
	case token.RESTORE:
		return p.parseRestore()
	case token.REM:
		return p.parseRem()
	case token.HTAB, token.VTAB:
		return p.parseTab()
	case token.DEF:
		return p.parseDefFn()
	case token.POKE:
		return p.parsePoke()
	case token.CALL:
		return p.parseCallStmt()
	case token.RETURN, token.POP, token.END, token.STOP, token.HOME,
		token.CLEAR, token.NORMAL, token.INVERSE, token.FLASH:
		return &ast.Keyword{KeywordPos: p.curToken.StartPosition, Tok: p.curToken.Type}
	}
	p.setTokenError(errors.E1010, p.curToken, "expected statement (found %s)", tokenDescription(p.curToken))
	return nil
}

// statementNames lists the statement keywords offered as suggestions.
func statementNames() []string {
	var names []string
	for _, kw := range token.Keywords() {
		if token.IsStatementKeyword(token.LookupIdentifier(kw)) {
			names = append(names, kw)
		}
	}
	return names
}

func (p *Parser) parseLet() ast.Stmt {
	letPos := p.curToken.StartPosition
	if !p.expectPeek("LET", token.IDENT) {
		return nil
	}
	stmt := p.parseAssignment(letPos)
	if stmt == nil {
		return nil
	}
	stmt.Explicit = true
	return stmt
}

func (p *Parser) parseImplicitLet() ast.Stmt {
	if !p.peekTokenIs(token.EQ) && !p.peekTokenIs(token.LPAREN) {
		name := p.curToken.Literal
		p.setError(NewSyntaxError(ErrorOpts{
			Code:          errors.E1010,
			Message:       "unknown statement " + strconv.Quote(name),
			Hint:          errors.FormatSuggestions(errors.SuggestSimilar(name, statementNames())),
			File:          p.l.Filename(),
			StartPosition: p.curToken.StartPosition,
			EndPosition:   p.curToken.EndPosition,
			SourceCode:    p.l.GetLineText(p.curToken),
		}))
		return nil
	}
	stmt := p.parseAssignment(p.curToken.StartPosition)
	if stmt == nil {
		return nil
	}
	return stmt
}

// parseAssignment parses "target = value" with curToken on the target name.
func (p *Parser) parseAssignment(pos token.Position) *ast.Let {
	target := p.parseTarget()
	if target == nil || !p.expectPeek("assignment", token.EQ) {
		return nil
	}
	p.nextToken()
	value := p.parseExpression(LOWEST)
	if value == nil {
		return nil
	}
	return &ast.Let{LetPos: pos, Target: target, Value: value}
}

// parseTarget parses an assignable variable or array element. curToken is
// the variable name.
func (p *Parser) parseTarget() ast.Expr {
	if !p.curTokenIs(token.IDENT) {
		p.setTokenError(errors.E1005, p.curToken, "expected variable (found %s)", tokenDescription(p.curToken))
		return nil
	}
	return p.parseVariable()
}

// parseTargetList parses one or more comma separated targets, starting with
// the token after curToken.
func (p *Parser) parseTargetList(context string) []ast.Expr {
	var targets []ast.Expr
	for {
		if !p.expectPeek(context, token.IDENT) {
			return nil
		}
		target := p.parseTarget()
		if target == nil {
			return nil
		}
		targets = append(targets, target)
		if !p.peekTokenIs(token.COMMA) {
			return targets
		}
		p.nextToken()
	}
}

func (p *Parser) parsePrint() ast.Stmt {
	stmt := &ast.Print{PrintPos: p.curToken.StartPosition}
	for !p.peekEndsStatement() {
		p.nextToken()
		var item ast.PrintItem
		switch p.curToken.Type {
		case token.SEMICOLON:
			item.Sep = ast.SepSemicolon
		case token.COMMA:
			item.Sep = ast.SepComma
		default:
			if item.Expr = p.parsePrintExpr(); item.Expr == nil {
				return nil
			}
			switch {
			case p.peekTokenIs(token.SEMICOLON):
				p.nextToken()
				item.Sep = ast.SepSemicolon
			case p.peekTokenIs(token.COMMA):
				p.nextToken()
				item.Sep = ast.SepComma
			}
		}
		stmt.Items = append(stmt.Items, item)
	}
	stmt.EndPos = p.curToken.EndPosition
	return stmt
}

func (p *Parser) parsePrintExpr() ast.Expr {
	if !p.curTokenIs(token.TAB) && !p.curTokenIs(token.SPC) {
		return p.parseExpression(LOWEST)
	}
	fn := &ast.PrintFunc{
		FuncPos: p.curToken.StartPosition,
		Name:    strings.TrimSuffix(p.curToken.Literal, "("),
	}
	p.nextToken()
	if fn.X = p.parseExpression(LOWEST); fn.X == nil {
		return nil
	}
	if !p.peekTokenIs(token.RPAREN) {
		p.setTokenError(errors.E1007, p.peekToken, "unbalanced parentheses (missing %q)", ")")
		return nil
	}
	p.nextToken()
	fn.Rparen = p.curToken.StartPosition
	return fn
}

func (p *Parser) parseInput() ast.Stmt {
	stmt := &ast.Input{InputPos: p.curToken.StartPosition}
	if p.peekTokenIs(token.STRING) {
		p.nextToken()
		stmt.Prompt = p.newString(p.curToken)
		if !p.expectPeek("INPUT prompt", token.SEMICOLON) {
			return nil
		}
	}
	if stmt.Vars = p.parseTargetList("INPUT"); stmt.Vars == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseGet() ast.Stmt {
	stmt := &ast.Get{GetPos: p.curToken.StartPosition}
	if !p.expectPeek("GET", token.IDENT) {
		return nil
	}
	if stmt.Var = p.parseTarget(); stmt.Var == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseIf() ast.Stmt {
	stmt := &ast.If{IfPos: p.curToken.StartPosition}
	p.nextToken()
	if stmt.Cond = p.parseExpression(LOWEST); stmt.Cond == nil {
		return nil
	}
	switch {
	case p.peekTokenIs(token.THEN):
		p.nextToken()
		stmt.Keyword = "THEN"
		if !p.peekTokenIs(token.NUMBER) {
			return stmt
		}
	case p.peekTokenIs(token.GOTO):
		p.nextToken()
		stmt.Keyword = "GOTO"
	default:
		p.peekError("IF", token.THEN, p.peekToken)
		return nil
	}
	target, pos, ok := p.parseLineRef(stmt.Keyword)
	if !ok {
		return nil
	}
	stmt.HasTarget, stmt.Target, stmt.TargetPos = true, target, pos
	return stmt
}

// parseLineRef parses the line number following curToken.
func (p *Parser) parseLineRef(context string) (int, token.Position, bool) {
	if !p.peekTokenIs(token.NUMBER) {
		p.setTokenError(errors.E1001, p.peekToken, "expected line number after %s (found %s)",
			context, tokenDescription(p.peekToken))
		return 0, token.NoPos, false
	}
	p.nextToken()
	lit := p.curToken.Literal
	n, err := strconv.Atoi(lit)
	if err != nil || n < 0 || n > ast.MaxLineNumber {
		p.setTokenError(errors.E1012, p.curToken, "invalid line number %s", lit)
		return 0, token.NoPos, false
	}
	return n, p.curToken.StartPosition, true
}

func (p *Parser) parseGoto() ast.Stmt {
	pos := p.curToken.StartPosition
	target, linePos, ok := p.parseLineRef("GOTO")
	if !ok {
		return nil
	}
	return &ast.Goto{GotoPos: pos, Target: target, LinePos: linePos}
}

func (p *Parser) parseGosub() ast.Stmt {
	pos := p.curToken.StartPosition
	target, linePos, ok := p.parseLineRef("GOSUB")
	if !ok {
		return nil
	}
	return &ast.Gosub{GosubPos: pos, Target: target, LinePos: linePos}
}

func (p *Parser) parseOn() ast.Stmt {
	stmt := &ast.On{OnPos: p.curToken.StartPosition}
	p.nextToken()
	if stmt.X = p.parseExpression(LOWEST); stmt.X == nil {
		return nil
	}
	switch {
	case p.peekTokenIs(token.GOTO):
	case p.peekTokenIs(token.GOSUB):
		stmt.Gosub = true
	default:
		p.peekError("ON", token.GOTO, p.peekToken)
		return nil
	}
	p.nextToken()
	context := p.curToken.Literal
	for {
		target, _, ok := p.parseLineRef(context)
		if !ok {
			return nil
		}
		stmt.Targets = append(stmt.Targets, target)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	stmt.EndPos = p.curToken.EndPosition
	return stmt
}

func (p *Parser) parseFor() ast.Stmt {
	stmt := &ast.For{ForPos: p.curToken.StartPosition}
	if !p.expectPeek("FOR", token.IDENT) {
		return nil
	}
	stmt.Var = p.newIdent(p.curToken)
	if stmt.Var.IsString() {
		p.setTokenError(errors.E1005, p.curToken, "FOR variable %s must be numeric", stmt.Var.Name)
		return nil
	}
	if !p.expectPeek("FOR", token.EQ) {
		return nil
	}
	p.nextToken()
	if stmt.Start = p.parseExpression(LOWEST); stmt.Start == nil {
		return nil
	}
	if !p.expectPeek("FOR", token.TO) {
		return nil
	}
	p.nextToken()
	if stmt.Limit = p.parseExpression(LOWEST); stmt.Limit == nil {
		return nil
	}
	if p.peekTokenIs(token.STEP) {
		p.nextToken()
		p.nextToken()
		if stmt.Step = p.parseExpression(LOWEST); stmt.Step == nil {
			return nil
		}
	}
	return stmt
}

func (p *Parser) parseNext() ast.Stmt {
	stmt := &ast.Next{NextPos: p.curToken.StartPosition}
	if !p.peekTokenIs(token.IDENT) {
		return stmt
	}
	for {
		if !p.expectPeek("NEXT", token.IDENT) {
			return nil
		}
		stmt.Vars = append(stmt.Vars, p.newIdent(p.curToken))
		if !p.peekTokenIs(token.COMMA) {
			return stmt
		}
		p.nextToken()
	}
}

func (p *Parser) parseDim() ast.Stmt {
	stmt := &ast.Dim{DimPos: p.curToken.StartPosition}
	for {
		if !p.expectPeek("DIM", token.IDENT) {
			return nil
		}
		name := p.newIdent(p.curToken)
		if !p.expectPeek("DIM", token.LPAREN) {
			return nil
		}
		index := p.parseIndex(name)
		if index == nil {
			return nil
		}
		stmt.Arrays = append(stmt.Arrays, index)
		if !p.peekTokenIs(token.COMMA) {
			return stmt
		}
		p.nextToken()
	}
}

func (p *Parser) parseData() ast.Stmt {
	stmt := &ast.Data{DataPos: p.curToken.StartPosition}
	if !p.expectPeek("DATA", token.DATATEXT) {
		return nil
	}
	stmt.Raw = p.curToken.Literal
	stmt.Items = ast.SplitItems(stmt.Raw)
	return stmt
}

func (p *Parser) parseRead() ast.Stmt {
	stmt := &ast.Read{ReadPos: p.curToken.StartPosition}
	if stmt.Vars = p.parseTargetList("READ"); stmt.Vars == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseRestore() ast.Stmt {
	stmt := &ast.Restore{RestorePos: p.curToken.StartPosition}
	if !p.peekTokenIs(token.NUMBER) {
		return stmt
	}
	target, pos, ok := p.parseLineRef("RESTORE")
	if !ok {
		return nil
	}
	stmt.HasTarget, stmt.Target, stmt.LinePos = true, target, pos
	return stmt
}

func (p *Parser) parseRem() ast.Stmt {
	stmt := &ast.Rem{RemPos: p.curToken.StartPosition}
	if !p.expectPeek("REM", token.REMARK) {
		return nil
	}
	stmt.Text = p.curToken.Literal
	return stmt
}

func (p *Parser) parseTab() ast.Stmt {
	stmt := &ast.Tab{TabPos: p.curToken.StartPosition, Vertical: p.curTokenIs(token.VTAB)}
	p.nextToken()
	if stmt.X = p.parseExpression(LOWEST); stmt.X == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseDefFn() ast.Stmt {
	stmt := &ast.DefFn{DefPos: p.curToken.StartPosition}
	if !p.expectPeek("DEF", token.FN) || !p.expectPeek("DEF FN", token.IDENT) {
		return nil
	}
	stmt.Name = p.curToken.Literal
	if strings.HasSuffix(stmt.Name, "$") {
		p.setTokenError(errors.E1005, p.curToken, "function %s must be numeric", stmt.Name)
		return nil
	}
	if !p.expectPeek("DEF FN", token.LPAREN) || !p.expectPeek("DEF FN", token.IDENT) {
		return nil
	}
	stmt.Param = p.newIdent(p.curToken)
	if !p.expectPeek("DEF FN", token.RPAREN) || !p.expectPeek("DEF FN", token.EQ) {
		return nil
	}
	p.nextToken()
	if stmt.Body = p.parseExpression(LOWEST); stmt.Body == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parsePoke() ast.Stmt {
	stmt := &ast.Poke{PokePos: p.curToken.StartPosition}
	p.nextToken()
	if stmt.Addr = p.parseExpression(LOWEST); stmt.Addr == nil {
		return nil
	}
	if !p.expectPeek("POKE", token.COMMA) {
		return nil
	}
	p.nextToken()
	if stmt.Value = p.parseExpression(LOWEST); stmt.Value == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseCallStmt() ast.Stmt {
	stmt := &ast.CallStmt{CallPos: p.curToken.StartPosition}
	p.nextToken()
	if stmt.Addr = p.parseExpression(LOWEST); stmt.Addr == nil {
		return nil
	}
	return stmt
}

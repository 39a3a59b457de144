package ast

import (
	"strings"

	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/token"
)

// Number is an expression node that holds a numeric literal.
type Number struct {
	ValuePos token.Position // position of the literal
	Literal  string         // the literal text (e.g., "42", "2.5E-4")
	Value    float64        // the parsed value
}

func (x *Number) exprNode() {}

func (x *Number) Pos() token.Position { return x.ValuePos }
func (x *Number) End() token.Position { return x.ValuePos.Advance(len(x.Literal)) }

func (x *Number) String() string { return x.Literal }

// String is an expression node that holds a quoted string literal.
type String struct {
	ValuePos token.Position // position of the opening quote
	Literal  string         // the literal text including quotes
	Value    string         // the unquoted value
}

func (x *String) exprNode() {}

func (x *String) Pos() token.Position { return x.ValuePos }
func (x *String) End() token.Position { return x.ValuePos.Advance(len(x.Literal)) }

func (x *String) String() string { return x.Literal }

// Ident is an expression node that refers to a scalar variable by name. The
// name is upper case and includes any type suffix.
type Ident struct {
	NamePos token.Position // position of identifier
	Name    string         // identifier name, e.g. "A", "N$", "I%"
}

func (x *Ident) exprNode() {}

func (x *Ident) Pos() token.Position { return x.NamePos }
func (x *Ident) End() token.Position { return x.NamePos.Advance(len(x.Name)) }

func (x *Ident) String() string { return x.Name }

// IsString reports whether the variable holds strings.
func (x *Ident) IsString() bool { return strings.HasSuffix(x.Name, "$") }

// IsInteger reports whether the variable holds integers.
func (x *Ident) IsInteger() bool { return strings.HasSuffix(x.Name, "%") }

// Index is an expression node that refers to an array element, such as
// A(1, 2).
type Index struct {
	Name    *Ident         // array name
	Lparen  token.Position // position of "("
	Indexes []Expr         // subscripts
	Rparen  token.Position // position of ")"
}

func (x *Index) exprNode() {}

func (x *Index) Pos() token.Position { return x.Name.Pos() }
func (x *Index) End() token.Position { return x.Rparen.Advance(1) }

func (x *Index) String() string {
	return x.Name.String() + "(" + joinExprs(x.Indexes, ",") + ")"
}

// Prefix is an operator expression where the operator precedes the operand.
// Examples include "-X" and "NOT A".
type Prefix struct {
	OpPos token.Position // position of operator
	Op    string         // operator: "-", "+", "NOT"
	X     Expr           // operand
}

func (x *Prefix) exprNode() {}

func (x *Prefix) Pos() token.Position { return x.OpPos }
func (x *Prefix) End() token.Position { return x.X.End() }

func (x *Prefix) String() string {
	if x.Op == "NOT" {
		return "NOT " + x.X.String()
	}
	return x.Op + x.X.String()
}

// Infix is an operator expression where the operator is between the operands.
// Examples include "X + Y" and "A$ <> B$".
type Infix struct {
	X     Expr           // left operand
	OpPos token.Position // position of operator
	Op    string         // operator: "+", "-", "*", "/", "^", "=", "<>", "AND", ...
	Y     Expr           // right operand
}

func (x *Infix) exprNode() {}

func (x *Infix) Pos() token.Position { return x.X.Pos() }
func (x *Infix) End() token.Position { return x.Y.End() }

func (x *Infix) String() string {
	return x.X.String() + " " + x.Op + " " + x.Y.String()
}

// Paren is a parenthesized expression. It is kept in the tree so that
// program listings reproduce the source grouping.
type Paren struct {
	Lparen token.Position // position of "("
	X      Expr           // inner expression
	Rparen token.Position // position of ")"
}

func (x *Paren) exprNode() {}

func (x *Paren) Pos() token.Position { return x.Lparen }
func (x *Paren) End() token.Position { return x.Rparen.Advance(1) }

func (x *Paren) String() string { return "(" + x.X.String() + ")" }

// Call is a call to a built-in function such as LEFT$(A$, 2) or RND(1).
type Call struct {
	NamePos token.Position // position of the function name
	Name    string         // function name, e.g. "LEFT$"
	Lparen  token.Position // position of "("
	Args    []Expr         // arguments
	Rparen  token.Position // position of ")"
}

func (x *Call) exprNode() {}

func (x *Call) Pos() token.Position { return x.NamePos }
func (x *Call) End() token.Position { return x.Rparen.Advance(1) }

func (x *Call) String() string {
	return x.Name + "(" + joinExprs(x.Args, ",") + ")"
}

// FnCall is a call to a user function defined with DEF FN, such as FN F(X).
type FnCall struct {
	Fn     token.Position // position of "FN"
	Name   string         // function name
	Arg    Expr           // argument
	Rparen token.Position // position of ")"
}

func (x *FnCall) exprNode() {}

func (x *FnCall) Pos() token.Position { return x.Fn }
func (x *FnCall) End() token.Position { return x.Rparen.Advance(1) }

func (x *FnCall) String() string {
	return "FN " + x.Name + "(" + x.Arg.String() + ")"
}

// PrintFunc is TAB(n) or SPC(n). These only appear as PRINT items.
type PrintFunc struct {
	FuncPos token.Position // position of "TAB(" or "SPC("
	Name    string         // "TAB" or "SPC"
	X       Expr           // argument
	Rparen  token.Position // position of ")"
}

func (x *PrintFunc) exprNode() {}

func (x *PrintFunc) Pos() token.Position { return x.FuncPos }
func (x *PrintFunc) End() token.Position { return x.Rparen.Advance(1) }

func (x *PrintFunc) String() string { return x.Name + "(" + x.X.String() + ")" }

func joinExprs(exprs []Expr, sep string) string {
	parts := make([]string, 0, len(exprs))
	for _, e := range exprs {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, sep)
}

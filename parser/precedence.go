package parser

import "github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/token"

// Precedence order for operators
const (
	_ int = iota
	LOWEST
	OR          // OR
	AND         // AND
	LESSGREATER // = <> < > <= >=
	SUM         // + or -
	PRODUCT     // * or /
	PREFIX      // -X, +X or NOT X
	POWER       // ^
)

// Precedences for each token type
var precedences = map[token.Type]int{
	token.OR:        OR,
	token.AND:       AND,
	token.EQ:        LESSGREATER,
	token.NOT_EQ:    LESSGREATER,
	token.LT:        LESSGREATER,
	token.LT_EQUALS: LESSGREATER,
	token.GT:        LESSGREATER,
	token.GT_EQUALS: LESSGREATER,
	token.PLUS:      SUM,
	token.MINUS:     SUM,
	token.ASTERISK:  PRODUCT,
	token.SLASH:     PRODUCT,
	token.CARET:     POWER,
}

// operators maps operator tokens to the canonical operator text stored in
// the AST. "><", "=<" and "=>" are spelled as "<>", "<=" and ">=".
var operators = map[token.Type]string{
	token.OR:        "OR",
	token.AND:       "AND",
	token.NOT:       "NOT",
	token.EQ:        "=",
	token.NOT_EQ:    "<>",
	token.LT:        "<",
	token.LT_EQUALS: "<=",
	token.GT:        ">",
	token.GT_EQUALS: ">=",
	token.PLUS:      "+",
	token.MINUS:     "-",
	token.ASTERISK:  "*",
	token.SLASH:     "/",
	token.CARET:     "^",
}

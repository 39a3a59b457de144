// Package op defines the operators used in BASIC expressions.
package op

// BinaryOpType describes a type of binary operation, as in an operation that
// takes two operands. For example, addition, subtraction, multiplication, etc.
type BinaryOpType uint16

const (
	Add      BinaryOpType = 1
	Subtract BinaryOpType = 2
	Multiply BinaryOpType = 3
	Divide   BinaryOpType = 4
	Power    BinaryOpType = 5
	And      BinaryOpType = 6
	Or       BinaryOpType = 7
)

// String returns a string representation of the binary operation.
// For example "+" for addition.
func (bop BinaryOpType) String() string {
	switch bop {
	case Add:
		return "+"
	case Subtract:
		return "-"
	case Multiply:
		return "*"
	case Divide:
		return "/"
	case Power:
		return "^"
	case And:
		return "AND"
	case Or:
		return "OR"
	default:
		return ""
	}
}

// CompareOpType describes a type of comparison operation. For example, less
// than, greater than, equal, etc.
type CompareOpType uint16

const (
	LessThan           CompareOpType = 1
	LessThanOrEqual    CompareOpType = 2
	Equal              CompareOpType = 3
	NotEqual           CompareOpType = 4
	GreaterThan        CompareOpType = 5
	GreaterThanOrEqual CompareOpType = 6
)

// String returns a string representation of the comparison operation.
// For example "<" for less than.
func (cop CompareOpType) String() string {
	switch cop {
	case LessThan:
		return "<"
	case LessThanOrEqual:
		return "<="
	case Equal:
		return "="
	case NotEqual:
		return "<>"
	case GreaterThan:
		return ">"
	case GreaterThanOrEqual:
		return ">="
	default:
		return ""
	}
}

// UnaryOpType describes an operation on a single operand.
type UnaryOpType uint16

const (
	Negate UnaryOpType = 1
	Plus   UnaryOpType = 2
	Not    UnaryOpType = 3
)

// String returns a string representation of the unary operation.
func (uop UnaryOpType) String() string {
	switch uop {
	case Negate:
		return "-"
	case Plus:
		return "+"
	case Not:
		return "NOT"
	default:
		return ""
	}
}

// Kind classifies an operator spelling.
type Kind int

const (
	Invalid Kind = iota
	Binary
	Comparison
)

// Info describes an infix operator as it is spelled in source.
type Info struct {
	Kind    Kind
	Binary  BinaryOpType
	Compare CompareOpType
}

var infix = map[string]Info{
	"+":   {Kind: Binary, Binary: Add},
	"-":   {Kind: Binary, Binary: Subtract},
	"*":   {Kind: Binary, Binary: Multiply},
	"/":   {Kind: Binary, Binary: Divide},
	"^":   {Kind: Binary, Binary: Power},
	"AND": {Kind: Binary, Binary: And},
	"OR":  {Kind: Binary, Binary: Or},
	"<":   {Kind: Comparison, Compare: LessThan},
	"<=":  {Kind: Comparison, Compare: LessThanOrEqual},
	"=":   {Kind: Comparison, Compare: Equal},
	"<>":  {Kind: Comparison, Compare: NotEqual},
	">":   {Kind: Comparison, Compare: GreaterThan},
	">=":  {Kind: Comparison, Compare: GreaterThanOrEqual},
}

// GetInfo returns information about the infix operator with the given
// canonical spelling. The Kind is Invalid for unknown operators.
func GetInfo(operator string) Info {
	return infix[operator]
}

// LookupUnary returns the unary operation with the given spelling.
func LookupUnary(operator string) (UnaryOpType, bool) {
	switch operator {
	case "-":
		return Negate, true
	case "+":
		return Plus, true
	case "NOT":
		return Not, true
	}
	return 0, false
}

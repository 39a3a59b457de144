package object

import (
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/errz"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/op"
)

// Compare two objects using the given comparison operator. The result is
// True or False. Both objects must be of the same type.
func Compare(opType op.CompareOpType, a, b Object) (Object, error) {
	comparable, ok := a.(Comparable)
	if !ok {
		return nil, errz.New(errz.TypeMismatch, "expected a comparable object (got %s)", a.Type())
	}
	value, err := comparable.Compare(b)
	if err != nil {
		return nil, err
	}

	switch opType {
	case op.Equal:
		return NewBool(value == 0), nil
	case op.NotEqual:
		return NewBool(value != 0), nil
	case op.LessThan:
		return NewBool(value < 0), nil
	case op.LessThanOrEqual:
		return NewBool(value <= 0), nil
	case op.GreaterThan:
		return NewBool(value > 0), nil
	case op.GreaterThanOrEqual:
		return NewBool(value >= 0), nil
	default:
		return nil, errz.New(errz.Syntax, "unknown comparison operator: %d", opType)
	}
}

// BinaryOp performs a binary operation on two objects, given an operator.
func BinaryOp(opType op.BinaryOpType, a, b Object) (Object, error) {
	return a.RunOperation(opType, b)
}

// UnaryOp applies a unary operator. All unary operators require a number.
func UnaryOp(opType op.UnaryOpType, a Object) (Object, error) {
	n, ok := a.(*Number)
	if !ok {
		return nil, errz.New(errz.TypeMismatch, "unsupported operation for %s: %v", a.Type(), opType)
	}
	switch opType {
	case op.Negate:
		return NewNumber(-n.value), nil
	case op.Plus:
		return n, nil
	case op.Not:
		return NewBool(n.value == 0), nil
	default:
		return nil, errz.New(errz.Syntax, "unknown unary operator: %d", opType)
	}
}

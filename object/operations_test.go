package object

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/errz"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/op"
)

func TestCompareNumbers(t *testing.T) {
	tests := []struct {
		op       op.CompareOpType
		a, b     float64
		expected Object
	}{
		{op.Equal, 1, 1, True},
		{op.Equal, 1, 2, False},
		{op.NotEqual, 1, 2, True},
		{op.LessThan, 1, 2, True},
		{op.LessThanOrEqual, 2, 2, True},
		{op.GreaterThan, 1, 2, False},
		{op.GreaterThanOrEqual, 3, 2, True},
	}
	for _, tt := range tests {
		result, err := Compare(tt.op, NewNumber(tt.a), NewNumber(tt.b))
		require.NoError(t, err)
		require.Equal(t, tt.expected, result, "%v %v %v", tt.a, tt.op, tt.b)
	}
}

func TestCompareStrings(t *testing.T) {
	result, err := Compare(op.LessThan, NewString("APPLE"), NewString("BANANA"))
	require.NoError(t, err)
	require.Equal(t, True, result)

	result, err = Compare(op.Equal, NewString("A"), NewString("A"))
	require.NoError(t, err)
	require.Equal(t, True, result)

	result, err = Compare(op.GreaterThan, NewString("A"), NewString("AB"))
	require.NoError(t, err)
	require.Equal(t, False, result)
}

func TestCompareMixedTypes(t *testing.T) {
	_, err := Compare(op.Equal, NewString("1"), NewNumber(1))
	requireKind(t, err, errz.TypeMismatch)

	_, err = Compare(op.LessThan, NewNumber(1), NewString("1"))
	requireKind(t, err, errz.TypeMismatch)
}

func TestCompareUnknownOperator(t *testing.T) {
	_, err := Compare(op.CompareOpType(222), NewNumber(1), NewNumber(2))
	require.EqualError(t, err, "syntax error: unknown comparison operator: 222")
}

func TestStringConcatenation(t *testing.T) {
	result, err := BinaryOp(op.Add, NewString("AB"), NewString("CD"))
	require.NoError(t, err)
	require.Equal(t, NewString("ABCD"), result)

	_, err = BinaryOp(op.Add, NewString("A"), NewNumber(1))
	requireKind(t, err, errz.TypeMismatch)

	_, err = BinaryOp(op.Subtract, NewString("A"), NewString("B"))
	requireKind(t, err, errz.TypeMismatch)

	long := NewString(strings.Repeat("X", 200))
	_, err = BinaryOp(op.Add, long, long)
	requireKind(t, err, errz.StringTooLong)
}

func TestUnaryOp(t *testing.T) {
	result, err := UnaryOp(op.Negate, NewNumber(2))
	require.NoError(t, err)
	require.Equal(t, NewNumber(-2), result)

	result, err = UnaryOp(op.Not, NewNumber(0))
	require.NoError(t, err)
	require.Equal(t, True, result)

	result, err = UnaryOp(op.Not, NewNumber(7))
	require.NoError(t, err)
	require.Equal(t, False, result)

	_, err = UnaryOp(op.Negate, NewString("A"))
	requireKind(t, err, errz.TypeMismatch)
}

func TestPrintableValue(t *testing.T) {
	require.Equal(t, ".5", PrintableValue(NewNumber(0.5)))
	require.Equal(t, "HI", PrintableValue(NewString("HI")))
	require.Equal(t, `"HI"`, NewString("HI").Inspect())
}

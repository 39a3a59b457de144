package object

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/errz"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/op"
)

const (
	// MaxValue is the largest magnitude a number may hold.
	MaxValue = 1.70141183e38

	// MinValue is the smallest non-zero magnitude. Smaller results become 0.
	MinValue = 2.9387359e-39

	// MaxInteger is the largest magnitude an integer (%) variable may hold.
	MaxInteger = 32767

	// SignificantDigits is the number of digits numbers are printed with.
	SignificantDigits = 9
)

// Number wraps float64 and implements Object.
type Number struct {
	value float64
}

// NewNumber returns a Number holding value.
func NewNumber(value float64) *Number {
	return &Number{value: value}
}

// NewCheckedNumber returns a Number holding value, or an OVERFLOW fault if
// the value is out of range. Values too small to represent become 0.
func NewCheckedNumber(value float64) (*Number, error) {
	value, err := CheckNumber(value)
	if err != nil {
		return nil, err
	}
	return NewNumber(value), nil
}

// CheckNumber validates the magnitude of value.
func CheckNumber(value float64) (float64, error) {
	abs := math.Abs(value)
	if math.IsNaN(value) || abs > MaxValue {
		return 0, errz.New(errz.Overflow, "")
	}
	if abs < MinValue {
		return 0, nil
	}
	return value, nil
}

func (n *Number) Type() Type {
	return NUMBER
}

func (n *Number) Value() float64 {
	return n.value
}

func (n *Number) Inspect() string {
	return FormatNumber(n.value)
}

func (n *Number) Interface() interface{} {
	return n.value
}

func (n *Number) String() string {
	return n.Inspect()
}

func (n *Number) Compare(other Object) (int, error) {
	o, ok := other.(*Number)
	if !ok {
		return 0, errz.New(errz.TypeMismatch, "unable to compare number and %s", other.Type())
	}
	switch {
	case n.value == o.value:
		return 0, nil
	case n.value > o.value:
		return 1, nil
	default:
		return -1, nil
	}
}

func (n *Number) Equals(other Object) bool {
	o, ok := other.(*Number)
	return ok && n.value == o.value
}

func (n *Number) IsTruthy() bool {
	return n.value != 0
}

func (n *Number) RunOperation(opType op.BinaryOpType, right Object) (Object, error) {
	r, ok := right.(*Number)
	if !ok {
		return nil, errz.New(errz.TypeMismatch, "unsupported operation for number: %v on type %s", opType, right.Type())
	}
	a, b := n.value, r.value
	var result float64
	switch opType {
	case op.Add:
		result = a + b
	case op.Subtract:
		result = a - b
	case op.Multiply:
		result = a * b
	case op.Divide:
		if b == 0 {
			return nil, errz.New(errz.DivisionByZero, "")
		}
		result = a / b
	case op.Power:
		if a == 0 && b < 0 {
			return nil, errz.New(errz.DivisionByZero, "")
		}
		if a < 0 && b != math.Trunc(b) {
			return nil, errz.New(errz.IllegalQuantity, "negative number raised to a fractional power")
		}
		result = math.Pow(a, b)
	case op.And:
		return NewBool(a != 0 && b != 0), nil
	case op.Or:
		return NewBool(a != 0 || b != 0), nil
	default:
		return nil, errz.New(errz.TypeMismatch, "unsupported operation for number: %v", opType)
	}
	return NewCheckedNumber(result)
}

// FormatNumber renders a number the way PRINT shows it: at most nine
// significant digits, no leading zero before the decimal point and
// scientific notation for magnitudes of at least 1E9 or below .01.
func FormatNumber(f float64) string {
	if f == 0 {
		return "0"
	}
	sign := ""
	if f < 0 {
		sign = "-"
		f = -f
	}
	mant, expText, _ := strings.Cut(strconv.FormatFloat(f, 'e', SignificantDigits-1, 64), "e")
	exp, _ := strconv.Atoi(expText)
	digits := strings.TrimRight(strings.Replace(mant, ".", "", 1), "0")

	if exp >= SignificantDigits || exp < -2 {
		out := digits[:1]
		if len(digits) > 1 {
			out += "." + digits[1:]
		}
		expSign := "+"
		if exp < 0 {
			expSign = "-"
			exp = -exp
		}
		return fmt.Sprintf("%s%sE%s%02d", sign, out, expSign, exp)
	}
	if exp < 0 {
		return sign + "." + strings.Repeat("0", -exp-1) + digits
	}
	if len(digits) <= exp+1 {
		return sign + digits + strings.Repeat("0", exp+1-len(digits))
	}
	return sign + digits[:exp+1] + "." + digits[exp+1:]
}

// scanNumber returns the length of the numeric literal at the start of s,
// which must not contain spaces. A trailing "E" without exponent digits is
// not part of the literal.
func scanNumber(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0
	}
	if i < len(s) && (s[i] == 'E' || s[i] == 'e') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		expStart := j
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if j > expStart {
			i = j
		}
	}
	return i
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// ParseNumber converts the leading numeric part of s the way VAL does.
// Spaces are ignored and text without a leading number yields 0. Values out
// of range come back as infinities; see CheckNumber.
func ParseNumber(s string) float64 {
	s = strings.ReplaceAll(s, " ", "")
	n := scanNumber(s)
	if n == 0 {
		return 0
	}
	f, _ := strconv.ParseFloat(s[:n], 64)
	return f
}

// ParseStrict converts s to a number only if all of s, apart from spaces,
// is a numeric literal. Empty text is 0. It is used for INPUT, GET and READ,
// where stray characters are an error.
func ParseStrict(s string) (float64, bool) {
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0, true
	}
	n := scanNumber(s)
	if n == 0 || n != len(s) {
		return 0, false
	}
	f, _ := strconv.ParseFloat(s, 64)
	return f, true
}

// Truncate rounds toward zero.
func Truncate(f float64) float64 {
	return math.Trunc(f)
}

// ToInteger truncates f and checks it fits an integer (%) variable.
func ToInteger(f float64) (float64, error) {
	f = Truncate(f)
	if f < -MaxInteger || f > MaxInteger {
		return 0, errz.New(errz.IllegalQuantity, "%s is out of integer range", FormatNumber(f))
	}
	return f, nil
}

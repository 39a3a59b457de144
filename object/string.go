package object

import (
	"strconv"
	"strings"

	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/errz"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/op"
)

// MaxStringLength is the longest string a program may build.
const MaxStringLength = 255

var emptyString = NewString("")

type String struct {
	value string
}

// NewString returns a String holding value.
func NewString(value string) *String {
	return &String{value: value}
}

// NewCheckedString returns a String holding value, or a STRING TOO LONG
// fault if value exceeds MaxStringLength.
func NewCheckedString(value string) (*String, error) {
	if len(value) > MaxStringLength {
		return nil, errz.New(errz.StringTooLong, "string of length %d exceeds %d", len(value), MaxStringLength)
	}
	return NewString(value), nil
}

func (s *String) Type() Type {
	return STRING
}

func (s *String) Value() string {
	return s.value
}

func (s *String) Inspect() string {
	return strconv.Quote(s.value)
}

func (s *String) Interface() interface{} {
	return s.value
}

func (s *String) String() string {
	return s.value
}

func (s *String) Compare(other Object) (int, error) {
	o, ok := other.(*String)
	if !ok {
		return 0, errz.New(errz.TypeMismatch, "unable to compare string and %s", other.Type())
	}
	return strings.Compare(s.value, o.value), nil
}

func (s *String) Equals(other Object) bool {
	o, ok := other.(*String)
	return ok && s.value == o.value
}

func (s *String) IsTruthy() bool {
	return s.value != ""
}

func (s *String) RunOperation(opType op.BinaryOpType, right Object) (Object, error) {
	r, ok := right.(*String)
	if !ok || opType != op.Add {
		return nil, errz.New(errz.TypeMismatch, "unsupported operation for string: %v on type %s", opType, right.Type())
	}
	return NewCheckedString(s.value + r.value)
}

// IsStringName reports whether a variable name holds strings.
func IsStringName(name string) bool {
	return strings.HasSuffix(name, "$")
}

// IsIntegerName reports whether a variable name holds integers.
func IsIntegerName(name string) bool {
	return strings.HasSuffix(name, "%")
}

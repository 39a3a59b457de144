// Package object provides the values a BASIC program computes with.
//
// A value is either a *object.Number or a *object.String. Values are
// immutable, so they may be shared freely. Callers usually type switch on
// the concrete type:
//
//	switch obj := obj.(type) {
//	case *object.Number:
//		// do something with obj.Value()
//	case *object.String:
//		// do something with obj.Value()
//	}
//
// Variables and arrays are stored in a Variables table, which creates them
// lazily on first reference.
package object

import (
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/op"
)

// Type of an object as a string.
type Type string

// Type constants
const (
	NUMBER Type = "number"
	STRING Type = "string"
)

// Boolean results of comparisons and logical operators.
var (
	True  = NewNumber(1)
	False = NewNumber(0)
)

// Object is the interface that all BASIC values implement.
type Object interface {
	// Type of the object.
	Type() Type

	// Inspect returns a string representation of the given object.
	Inspect() string

	// Interface converts the given object to a native Go value.
	Interface() interface{}

	// Returns true if the given object is equal to this object.
	Equals(other Object) bool

	// IsTruthy returns true if the object is considered "truthy".
	IsTruthy() bool

	// RunOperation runs an operation on this object with the given
	// right-hand side object.
	RunOperation(opType op.BinaryOpType, right Object) (Object, error)
}

// Comparable is an interface used to compare two objects.
//
//	-1 if this < other
//	 0 if this == other
//	 1 if this > other
type Comparable interface {
	Compare(other Object) (int, error)
}

// NewBool returns True or False.
func NewBool(value bool) *Number {
	if value {
		return True
	}
	return False
}

// Zero returns the value an unassigned variable of the given name holds:
// the empty string for names ending in "$" and 0 otherwise.
func Zero(name string) Object {
	if IsStringName(name) {
		return emptyString
	}
	return False
}

// PrintableValue returns the text PRINT shows for an object.
func PrintableValue(obj Object) string {
	switch obj := obj.(type) {
	case *Number:
		return FormatNumber(obj.value)
	case *String:
		return obj.value
	default:
		return obj.Inspect()
	}
}

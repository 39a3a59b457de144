package object

import (
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/errz"
)

// *****************************************************************************
// Type assertion helpers
// *****************************************************************************

func AsNumber(obj Object) (float64, error) {
	n, ok := obj.(*Number)
	if !ok {
		return 0, errz.New(errz.TypeMismatch, "expected a number (%s given)", obj.Type())
	}
	return n.value, nil
}

func AsString(obj Object) (string, error) {
	s, ok := obj.(*String)
	if !ok {
		return "", errz.New(errz.TypeMismatch, "expected a string (%s given)", obj.Type())
	}
	return s.value, nil
}

// AsInt truncates a number and checks it lies within [lo, hi]. Values out of
// range are an ILLEGAL QUANTITY fault.
func AsInt(obj Object, lo, hi int) (int, error) {
	f, err := AsNumber(obj)
	if err != nil {
		return 0, err
	}
	f = Truncate(f)
	if f < float64(lo) || f > float64(hi) {
		return 0, errz.New(errz.IllegalQuantity, "%s is out of range %d-%d", FormatNumber(f), lo, hi)
	}
	return int(f), nil
}

// Coerce prepares a value for storage in the named variable. String
// variables accept strings only, other variables accept numbers only, and
// integer variables truncate toward zero.
func Coerce(name string, value Object) (Object, error) {
	switch value := value.(type) {
	case *String:
		if !IsStringName(name) {
			return nil, errz.New(errz.TypeMismatch, "cannot assign a string to %s", name)
		}
		return value, nil
	case *Number:
		if IsStringName(name) {
			return nil, errz.New(errz.TypeMismatch, "cannot assign a number to %s", name)
		}
		if IsIntegerName(name) {
			f, err := ToInteger(value.value)
			if err != nil {
				return nil, err
			}
			return NewNumber(f), nil
		}
		return value, nil
	default:
		return nil, errz.New(errz.TypeMismatch, "cannot assign %s to %s", value.Type(), name)
	}
}

package object

import (
	"slices"

	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/errz"
)

const (
	// DefaultBound is the upper bound of each dimension of an array that is
	// used without a DIM statement.
	DefaultBound = 10

	// MaxArrayElements limits the total size of one array.
	MaxArrayElements = 1 << 18
)

// Array is a BASIC array with one or more dimensions. Every dimension is
// indexed from 0 to its upper bound inclusive.
type Array struct {
	name   string
	bounds []int
	values []Object
}

// NewArray creates an array whose elements hold the zero value for name.
func NewArray(name string, bounds []int) (*Array, error) {
	if len(bounds) == 0 {
		return nil, errz.New(errz.BadSubscript, "array %s needs at least one dimension", name)
	}
	total := 1
	for _, b := range bounds {
		if b < 0 {
			return nil, errz.New(errz.IllegalQuantity, "negative bound %d for array %s", b, name)
		}
		total *= b + 1
		if total > MaxArrayElements {
			return nil, errz.New(errz.OutOfMemory, "array %s is too large", name)
		}
	}
	values := make([]Object, total)
	zero := Zero(name)
	for i := range values {
		values[i] = zero
	}
	return &Array{name: name, bounds: slices.Clone(bounds), values: values}, nil
}

// Name of the array, including any type suffix.
func (a *Array) Name() string {
	return a.name
}

// Bounds returns the upper bound of each dimension.
func (a *Array) Bounds() []int {
	return slices.Clone(a.bounds)
}

// Len returns the total number of elements.
func (a *Array) Len() int {
	return len(a.values)
}

func (a *Array) offset(subscripts []int) (int, error) {
	if len(subscripts) != len(a.bounds) {
		return 0, errz.New(errz.BadSubscript, "%s has %d dimensions (got %d subscripts)",
			a.name, len(a.bounds), len(subscripts))
	}
	off := 0
	for i, s := range subscripts {
		if s < 0 || s > a.bounds[i] {
			return 0, errz.New(errz.BadSubscript, "subscript %d of %s out of range 0-%d", s, a.name, a.bounds[i])
		}
		off = off*(a.bounds[i]+1) + s
	}
	return off, nil
}

// Get returns the element at the given subscripts.
func (a *Array) Get(subscripts []int) (Object, error) {
	off, err := a.offset(subscripts)
	if err != nil {
		return nil, err
	}
	return a.values[off], nil
}

// Set stores value at the given subscripts, converting it as for a scalar
// variable of the same name.
func (a *Array) Set(subscripts []int, value Object) error {
	off, err := a.offset(subscripts)
	if err != nil {
		return err
	}
	value, err = Coerce(a.name, value)
	if err != nil {
		return err
	}
	a.values[off] = value
	return nil
}

package object

import (
	"iter"
	"maps"
	"slices"
	"strings"

	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/errz"
)

// Variables holds the scalar variables and arrays of one program run.
// Scalars and arrays live in separate namespaces, so A and A(1) are
// unrelated. Names are case-insensitive and only their first two
// characters and type suffix count, so COUNT and CO are one variable.
type Variables struct {
	scalars map[string]Object
	arrays  map[string]*Array
}

// NewVariables returns an empty variable table.
func NewVariables() *Variables {
	return &Variables{
		scalars: map[string]Object{},
		arrays:  map[string]*Array{},
	}
}

// significantChars is how many leading characters of a name identify it.
const significantChars = 2

// CanonicalName returns the form of name under which it is stored: upper
// case, cut to its significant characters, type suffix kept.
func CanonicalName(name string) string {
	name = strings.ToUpper(name)
	base, suffix := name, ""
	if n := len(name); n > 0 && (name[n-1] == '$' || name[n-1] == '%') {
		base, suffix = name[:n-1], name[n-1:]
	}
	if len(base) > significantChars {
		base = base[:significantChars]
	}
	return base + suffix
}

func normalize(name string) string {
	return CanonicalName(name)
}

// Get returns the value of a scalar variable. Unassigned variables hold 0
// or the empty string.
func (v *Variables) Get(name string) Object {
	name = normalize(name)
	if value, ok := v.scalars[name]; ok {
		return value
	}
	return Zero(name)
}

// Set assigns a scalar variable.
func (v *Variables) Set(name string, value Object) error {
	name = normalize(name)
	value, err := Coerce(name, value)
	if err != nil {
		return err
	}
	v.scalars[name] = value
	return nil
}

// Dim creates an array with the given upper bounds. Declaring an array
// that already exists, including one created implicitly, is a fault.
func (v *Variables) Dim(name string, bounds []int) error {
	name = normalize(name)
	if _, ok := v.arrays[name]; ok {
		return errz.New(errz.RedimensionedArray, "array %s already dimensioned", name)
	}
	array, err := NewArray(name, bounds)
	if err != nil {
		return err
	}
	v.arrays[name] = array
	return nil
}

// array returns the named array, creating it with DefaultBound in each of
// the referenced dimensions if it does not exist.
func (v *Variables) array(name string, dims int) (*Array, error) {
	if array, ok := v.arrays[name]; ok {
		return array, nil
	}
	bounds := make([]int, dims)
	for i := range bounds {
		bounds[i] = DefaultBound
	}
	array, err := NewArray(name, bounds)
	if err != nil {
		return nil, err
	}
	v.arrays[name] = array
	return array, nil
}

// Element returns an array element.
func (v *Variables) Element(name string, subscripts []int) (Object, error) {
	array, err := v.array(normalize(name), len(subscripts))
	if err != nil {
		return nil, err
	}
	return array.Get(subscripts)
}

// SetElement assigns an array element.
func (v *Variables) SetElement(name string, subscripts []int, value Object) error {
	array, err := v.array(normalize(name), len(subscripts))
	if err != nil {
		return err
	}
	return array.Set(subscripts, value)
}

// Array returns the named array if it exists.
func (v *Variables) Array(name string) (*Array, bool) {
	array, ok := v.arrays[normalize(name)]
	return array, ok
}

// Names returns the names of assigned scalar variables in sorted order.
func (v *Variables) Names() []string {
	return slices.Sorted(maps.Keys(v.scalars))
}

// ArrayNames returns the names of existing arrays in sorted order.
func (v *Variables) ArrayNames() []string {
	return slices.Sorted(maps.Keys(v.arrays))
}

// All iterates over the assigned scalar variables in name order.
func (v *Variables) All() iter.Seq2[string, Object] {
	return func(yield func(string, Object) bool) {
		for _, name := range v.Names() {
			if !yield(name, v.scalars[name]) {
				return
			}
		}
	}
}

// Len returns the number of assigned scalars plus the number of arrays.
func (v *Variables) Len() int {
	return len(v.scalars) + len(v.arrays)
}

// Clear removes all variables and arrays.
func (v *Variables) Clear() {
	clear(v.scalars)
	clear(v.arrays)
}

package object

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/errz"
)

func TestVariableDefaults(t *testing.T) {
	vars := NewVariables()
	require.Equal(t, NewNumber(0), vars.Get("A"))
	require.Equal(t, NewString(""), vars.Get("A$"))
	require.Equal(t, NewNumber(0), vars.Get("I%"))
	require.Empty(t, vars.Names())
}

func TestVariableAssignment(t *testing.T) {
	vars := NewVariables()
	require.NoError(t, vars.Set("a", NewNumber(1.5)))
	require.Equal(t, NewNumber(1.5), vars.Get("A"))

	require.NoError(t, vars.Set("N$", NewString("HI")))
	require.Equal(t, NewString("HI"), vars.Get("n$"))

	require.NoError(t, vars.Set("I%", NewNumber(-3.9)))
	require.Equal(t, NewNumber(-3), vars.Get("I%"))

	requireKind(t, vars.Set("B", NewString("X")), errz.TypeMismatch)
	requireKind(t, vars.Set("B$", NewNumber(1)), errz.TypeMismatch)
	requireKind(t, vars.Set("J%", NewNumber(40000)), errz.IllegalQuantity)

	require.Equal(t, []string{"A", "I%", "N$"}, vars.Names())
}

func TestScalarAndArrayNamespacesAreDistinct(t *testing.T) {
	vars := NewVariables()
	require.NoError(t, vars.Set("A", NewNumber(5)))
	require.NoError(t, vars.SetElement("A", []int{1}, NewNumber(7)))

	require.Equal(t, NewNumber(5), vars.Get("A"))
	elem, err := vars.Element("A", []int{1})
	require.NoError(t, err)
	require.Equal(t, NewNumber(7), elem)
}

func TestImplicitArrays(t *testing.T) {
	vars := NewVariables()
	elem, err := vars.Element("B$", []int{10})
	require.NoError(t, err)
	require.Equal(t, NewString(""), elem)

	array, ok := vars.Array("B$")
	require.True(t, ok)
	require.Equal(t, []int{10}, array.Bounds())
	require.Equal(t, 11, array.Len())

	_, err = vars.Element("B$", []int{11})
	requireKind(t, err, errz.BadSubscript)

	_, err = vars.Element("B$", []int{1, 1})
	requireKind(t, err, errz.BadSubscript)

	_, err = vars.Element("B$", []int{-1})
	requireKind(t, err, errz.BadSubscript)

	// Dimensioning an array that already exists implicitly is an error.
	requireKind(t, vars.Dim("B$", []int{20}), errz.RedimensionedArray)
}

func TestDim(t *testing.T) {
	vars := NewVariables()
	require.NoError(t, vars.Dim("M", []int{2, 3}))
	require.NoError(t, vars.SetElement("M", []int{2, 3}, NewNumber(9)))
	require.NoError(t, vars.SetElement("M", []int{0, 1}, NewNumber(1)))

	elem, err := vars.Element("M", []int{2, 3})
	require.NoError(t, err)
	require.Equal(t, NewNumber(9), elem)

	elem, err = vars.Element("M", []int{1, 0})
	require.NoError(t, err)
	require.Equal(t, NewNumber(0), elem)

	_, err = vars.Element("M", []int{3, 0})
	requireKind(t, err, errz.BadSubscript)

	requireKind(t, vars.Dim("M", []int{5}), errz.RedimensionedArray)
	requireKind(t, vars.Dim("N", []int{-1}), errz.IllegalQuantity)
	requireKind(t, vars.Dim("BIG", []int{1000, 1000}), errz.OutOfMemory)
	requireKind(t, vars.SetElement("M", []int{0, 0}, NewString("X")), errz.TypeMismatch)

	require.Equal(t, []string{"M"}, vars.ArrayNames())
}

func TestIntegerArrayTruncates(t *testing.T) {
	vars := NewVariables()
	require.NoError(t, vars.SetElement("C%", []int{2}, NewNumber(2.9)))
	elem, err := vars.Element("C%", []int{2})
	require.NoError(t, err)
	require.Equal(t, NewNumber(2), elem)
}

func TestVariablesAllAndClear(t *testing.T) {
	vars := NewVariables()
	require.NoError(t, vars.Set("Z", NewNumber(26)))
	require.NoError(t, vars.Set("A", NewNumber(1)))
	require.NoError(t, vars.Dim("X", []int{3}))

	var names []string
	for name := range vars.All() {
		names = append(names, name)
	}
	require.Equal(t, []string{"A", "Z"}, names)
	require.Equal(t, 3, vars.Len())

	vars.Clear()
	require.Equal(t, 0, vars.Len())
	require.Equal(t, NewNumber(0), vars.Get("Z"))
	_, ok := vars.Array("X")
	require.False(t, ok)
}

func TestAsInt(t *testing.T) {
	n, err := AsInt(NewNumber(3.9), 0, 255)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	_, err = AsInt(NewNumber(256), 0, 255)
	requireKind(t, err, errz.IllegalQuantity)

	_, err = AsInt(NewString("3"), 0, 255)
	requireKind(t, err, errz.TypeMismatch)
}

func TestOnlyTwoCharactersAreSignificant(t *testing.T) {
	require.Equal(t, "CO", CanonicalName("count"))
	require.Equal(t, "CO$", CanonicalName("COLOR$"))
	require.Equal(t, "A1%", CanonicalName("A1B%"))
	require.Equal(t, "X", CanonicalName("X"))

	vars := NewVariables()
	require.NoError(t, vars.Set("COUNT", NewNumber(3)))
	require.Equal(t, NewNumber(3), vars.Get("CO"))
	require.Equal(t, NewNumber(3), vars.Get("COLUMN"))
	require.Equal(t, NewNumber(0), vars.Get("C"))
	require.Equal(t, NewString(""), vars.Get("COUNT$"))

	require.NoError(t, vars.Dim("SCORES", []int{4}))
	_, ok := vars.Array("SC")
	require.True(t, ok)
	requireKind(t, vars.Dim("SCALE", []int{2}), errz.RedimensionedArray)
	require.Equal(t, []string{"CO"}, vars.Names())
}

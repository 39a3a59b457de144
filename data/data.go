// Package data implements the DATA/READ/RESTORE value queue.
//
// All DATA statements of a program are gathered once, in line order, into a
// single list of values. READ consumes values through a cursor and RESTORE
// moves the cursor back.
package data

import (
	"sort"

	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/ast"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/errz"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/object"
)

// Manager holds the DATA values of a program and the read cursor.
type Manager struct {
	values []object.Object
	cursor int

	// texts holds the source text of each value gathered by Load. It is
	// empty for values given to Initialize.
	texts []string

	// lines and starts map each line holding DATA to the index of its first
	// value. lines is sorted.
	lines  []int
	starts []int
}

// NewManager returns an empty Manager.
func NewManager() *Manager {
	return &Manager{}
}

// Initialize replaces the values and resets the cursor.
func (m *Manager) Initialize(values []object.Object) {
	m.values = values
	m.texts = nil
	m.lines, m.starts = nil, nil
	m.cursor = 0
}

// Load gathers the DATA values of a program and resets the cursor.
func (m *Manager) Load(program *ast.Program) {
	m.values, m.texts, m.lines, m.starts = nil, nil, nil, nil
	for _, line := range program.Lines() {
		first := true
		for _, stmt := range line.Stmts {
			d, ok := stmt.(*ast.Data)
			if !ok {
				continue
			}
			if first {
				m.lines = append(m.lines, line.Number)
				m.starts = append(m.starts, len(m.values))
				first = false
			}
			for _, item := range d.Items {
				m.values = append(m.values, Value(item))
				m.texts = append(m.texts, item.Value)
			}
		}
	}
	m.cursor = 0
}

// Value converts one DATA item. Unquoted numeric items become numbers and
// everything else is a string.
func Value(item ast.DataItem) object.Object {
	if !item.Quoted {
		if f, ok := object.ParseStrict(item.Value); ok && item.Value != "" {
			return object.NewNumber(f)
		}
	}
	return object.NewString(item.Value)
}

// Read returns the next value and advances the cursor.
func (m *Manager) Read() (object.Object, error) {
	if m.cursor >= len(m.values) {
		return nil, errz.New(errz.OutOfData, "")
	}
	value := m.values[m.cursor]
	m.cursor++
	return value, nil
}

// ReadInto returns the next value converted for the named variable and
// advances the cursor. A string variable receives a numeric item exactly
// as it was written in the DATA statement.
func (m *Manager) ReadInto(name string) (object.Object, error) {
	i := m.cursor
	value, err := m.Read()
	if err != nil {
		return nil, err
	}
	if _, ok := value.(*object.Number); ok && object.IsStringName(name) && i < len(m.texts) {
		return object.NewString(m.texts[i]), nil
	}
	return Convert(value, name)
}

// Restore moves the cursor back to the first value.
func (m *Manager) Restore() {
	m.cursor = 0
}

// RestoreToPosition moves the cursor to the value at index i. A position
// outside the list resets the cursor to the first value.
func (m *Manager) RestoreToPosition(i int) {
	if i < 0 || i >= len(m.values) {
		m.cursor = 0
		return
	}
	m.cursor = i
}

// RestoreToLine moves the cursor to the first value on or after the given
// line. If no DATA follows the line, the next READ is out of data.
func (m *Manager) RestoreToLine(line int) {
	i := sort.SearchInts(m.lines, line)
	if i == len(m.lines) {
		m.cursor = len(m.values)
		return
	}
	m.cursor = m.starts[i]
}

// Clear removes all values.
func (m *Manager) Clear() {
	m.values, m.texts, m.lines, m.starts = nil, nil, nil, nil
	m.cursor = 0
}

// Position returns the index of the next value to be read.
func (m *Manager) Position() int {
	return m.cursor
}

// Len returns the number of values.
func (m *Manager) Len() int {
	return len(m.values)
}

// Convert prepares a DATA value for the named variable. A number read into
// a string variable becomes its printed form. A string read into a numeric
// variable must hold a number.
func Convert(value object.Object, name string) (object.Object, error) {
	switch v := value.(type) {
	case *object.Number:
		if object.IsStringName(name) {
			return object.NewString(object.FormatNumber(v.Value())), nil
		}
	case *object.String:
		if !object.IsStringName(name) {
			f, ok := object.ParseStrict(v.Value())
			if !ok {
				return nil, errz.New(errz.TypeMismatch, "cannot read %q into %s", v.Value(), name)
			}
			return object.NewNumber(f), nil
		}
	}
	return value, nil
}

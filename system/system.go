// Package system defines the boundary between the interpreter and the
// machine it runs on.
//
// The interpreter never touches a terminal directly. Everything it shows or
// reads goes through a Context supplied by the host: an emulator, a real
// terminal (see package console) or the in-memory Buffer used by tests.
package system

import "context"

// TextMode selects how characters are displayed.
type TextMode int

const (
	Normal TextMode = iota
	Inverse
	Flash
)

func (m TextMode) String() string {
	switch m {
	case Normal:
		return "NORMAL"
	case Inverse:
		return "INVERSE"
	case Flash:
		return "FLASH"
	default:
		return "UNKNOWN"
	}
}

// Context is the display and keyboard of the machine.
//
// Cursor positions passed to SetCursorPosition are 1-based, as HTAB and VTAB
// use them. CursorColumn and CursorRow report 0-based positions.
type Context interface {
	// Write displays text at the cursor.
	Write(text string) error

	// WriteLine displays text followed by a carriage return.
	WriteLine(text string) error

	// ReadLine displays the prompt and waits for a line of input.
	ReadLine(ctx context.Context, prompt string) (string, error)

	// ReadChar waits for a single key press.
	ReadChar(ctx context.Context) (rune, error)

	// ClearScreen clears the display and homes the cursor.
	ClearScreen() error

	// SetCursorPosition moves the cursor to the 1-based column and row.
	SetCursorPosition(col, row int) error

	// CursorColumn returns the 0-based cursor column.
	CursorColumn() int

	// CursorRow returns the 0-based cursor row.
	CursorRow() int

	// SetTextMode changes how subsequent characters are displayed.
	SetTextMode(mode TextMode) error

	// Beep sounds the bell. It never fails.
	Beep()
}

// Memory is implemented by hosts that emulate the machine's address space.
// PEEK, POKE and CALL use it when the Context also implements Memory and do
// nothing otherwise.
type Memory interface {
	Peek(addr int) (byte, error)
	Poke(addr int, value byte) error
	Call(ctx context.Context, addr int) error
}

const (
	// DefaultWidth is the number of columns of the text screen.
	DefaultWidth = 40

	// DefaultHeight is the number of rows of the text screen.
	DefaultHeight = 24

	// MemorySize is the size of the address space.
	MemorySize = 65536
)

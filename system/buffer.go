package system

import (
	"context"
	"io"
	"strings"
)

// Event records one call made to a Buffer.
type Event struct {
	Op   string // method name, e.g. "WriteLine"
	Text string // text argument or prompt, if any
}

// Buffer is an in-memory Context. It records every call, keeps a transcript
// of the screen output and serves input from queues. Reads from an empty
// queue fail with io.EOF.
type Buffer struct {
	width  int
	height int

	out    strings.Builder
	events []Event
	input  []string
	keys   []rune

	col  int
	row  int
	mode TextMode

	beeps int
}

// NewBuffer returns a 40x24 Buffer that answers ReadLine with the given
// lines in order.
func NewBuffer(input ...string) *Buffer {
	return &Buffer{
		width:  DefaultWidth,
		height: DefaultHeight,
		input:  input,
	}
}

// SetSize changes the screen dimensions.
func (b *Buffer) SetSize(width, height int) {
	b.width, b.height = width, height
}

// QueueInput appends lines to be returned by ReadLine.
func (b *Buffer) QueueInput(lines ...string) {
	b.input = append(b.input, lines...)
}

// QueueKeys appends key presses to be returned by ReadChar.
func (b *Buffer) QueueKeys(keys string) {
	b.keys = append(b.keys, []rune(keys)...)
}

// Output returns everything displayed so far, including prompts and echoed
// input.
func (b *Buffer) Output() string {
	return b.out.String()
}

// Events returns the calls made so far.
func (b *Buffer) Events() []Event {
	return b.events
}

// Count returns how many times the named method was called.
func (b *Buffer) Count(op string) int {
	n := 0
	for _, e := range b.events {
		if e.Op == op {
			n++
		}
	}
	return n
}

// Beeps returns the number of Beep calls.
func (b *Buffer) Beeps() int {
	return b.beeps
}

// TextMode returns the current text mode.
func (b *Buffer) TextMode() TextMode {
	return b.mode
}

func (b *Buffer) record(op, text string) {
	b.events = append(b.events, Event{Op: op, Text: text})
}

func (b *Buffer) display(text string) {
	b.out.WriteString(text)
	for _, r := range text {
		if r == '\n' || r == '\r' {
			b.newline()
			continue
		}
		b.col++
		if b.col >= b.width {
			b.newline()
		}
	}
}

func (b *Buffer) newline() {
	b.col = 0
	if b.row < b.height-1 {
		b.row++
	}
}

func (b *Buffer) Write(text string) error {
	b.record("Write", text)
	b.display(text)
	return nil
}

func (b *Buffer) WriteLine(text string) error {
	b.record("WriteLine", text)
	b.display(text + "\n")
	return nil
}

func (b *Buffer) ReadLine(ctx context.Context, prompt string) (string, error) {
	b.record("ReadLine", prompt)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	b.display(prompt)
	if len(b.input) == 0 {
		return "", io.EOF
	}
	line := b.input[0]
	b.input = b.input[1:]
	b.display(line + "\n")
	return line, nil
}

func (b *Buffer) ReadChar(ctx context.Context) (rune, error) {
	b.record("ReadChar", "")
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(b.keys) == 0 {
		return 0, io.EOF
	}
	r := b.keys[0]
	b.keys = b.keys[1:]
	return r, nil
}

func (b *Buffer) ClearScreen() error {
	b.record("ClearScreen", "")
	b.col, b.row = 0, 0
	return nil
}

func (b *Buffer) SetCursorPosition(col, row int) error {
	b.record("SetCursorPosition", "")
	b.col = min(max(col-1, 0), b.width-1)
	b.row = min(max(row-1, 0), b.height-1)
	return nil
}

func (b *Buffer) CursorColumn() int {
	return b.col
}

func (b *Buffer) CursorRow() int {
	return b.row
}

func (b *Buffer) SetTextMode(mode TextMode) error {
	b.record("SetTextMode", mode.String())
	b.mode = mode
	return nil
}

func (b *Buffer) Beep() {
	b.record("Beep", "")
	b.beeps++
}

var _ Context = (*Buffer)(nil)

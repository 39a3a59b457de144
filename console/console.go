// Package console implements system.Context on a terminal.
//
// Output goes to an io.Writer, normally the colorable standard output of
// github.com/fatih/color. INVERSE and FLASH text is rendered with reverse
// video and blinking attributes. Lines are read with a LineReader, which is
// a *liner.State on an interactive terminal, and single keys for GET come
// from the keyboard in raw mode.
package console

import (
	goerrors "errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/system"
)

// ErrInterrupted is returned by reads when the user presses Ctrl-C.
var ErrInterrupted = goerrors.New("interrupted")

// Console is a terminal host. It tracks the cursor itself, since a terminal
// cannot be asked where the cursor is without a round trip.
type Console struct {
	mu      sync.Mutex
	out     io.Writer
	lines   LineReader
	keys    KeyReader
	width   int
	height  int
	col     int
	row     int
	text    strings.Builder // text written since the last newline
	mode    system.TextMode
	redraw  bool
	pending *pendingLine
	ansi    bool
	colored bool
	inverse *color.Color
	flash   *color.Color
}

var _ system.Context = (*Console)(nil)

// New returns a console. Without options it writes to color.Output and
// reads lines and keys from standard input without a terminal.
func New(opts ...Option) *Console {
	c := &Console{
		out:     color.Output,
		width:   system.DefaultWidth,
		height:  system.DefaultHeight,
		colored: true,
		inverse: color.New(color.ReverseVideo),
		flash:   color.New(color.BlinkSlow),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.lines == nil || c.keys == nil {
		stream := NewStreamInput(stdin(), c.out)
		if c.lines == nil {
			c.lines = stream
		}
		if c.keys == nil {
			c.keys = stream
		}
	}
	if c.colored {
		c.inverse.EnableColor()
		c.flash.EnableColor()
	} else {
		c.inverse.DisableColor()
		c.flash.DisableColor()
	}
	return c
}

// Close releases the line reader and restores the terminal.
func (c *Console) Close() error {
	if closer, ok := c.lines.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// advance moves the tracked cursor over text. Must hold c.mu.
func (c *Console) advance(text string) {
	for _, r := range text {
		switch r {
		case '\n', '\r':
			c.newline()
		case '\a':
		default:
			c.text.WriteRune(r)
			c.col++
			if c.col >= c.width {
				c.newline()
			}
		}
	}
}

func (c *Console) newline() {
	c.col = 0
	c.text.Reset()
	if c.row < c.height-1 {
		c.row++
	}
}

func (c *Console) paint(text string) string {
	switch c.mode {
	case system.Inverse:
		return c.inverse.Sprint(text)
	case system.Flash:
		return c.flash.Sprint(text)
	default:
		return text
	}
}

func (c *Console) write(text string) error {
	if text == "" {
		return nil
	}
	// Colors are applied per line so that attributes never span a newline.
	parts := strings.SplitAfter(text, "\n")
	var b strings.Builder
	for _, part := range parts {
		body := strings.TrimSuffix(part, "\n")
		b.WriteString(c.paint(body))
		if len(body) < len(part) {
			b.WriteString("\n")
		}
	}
	if _, err := io.WriteString(c.out, b.String()); err != nil {
		return err
	}
	c.advance(text)
	return nil
}

func (c *Console) Write(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.write(text)
}

func (c *Console) WriteLine(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.write(text + "\n")
}

func (c *Console) ClearScreen() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.col, c.row = 0, 0
	c.text.Reset()
	if !c.ansi {
		return nil
	}
	_, err := io.WriteString(c.out, "\x1b[2J\x1b[H")
	return err
}

// SetCursorPosition moves the cursor. Without ANSI control sequences only
// rightward moves on the current row can be shown, as spaces.
func (c *Console) SetCursorPosition(col, row int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	col = max(1, min(col, c.width))
	row = max(1, min(row, c.height))
	if c.ansi {
		if _, err := fmt.Fprintf(c.out, "\x1b[%d;%dH", row, col); err != nil {
			return err
		}
		c.col, c.row = col-1, row-1
		c.text.Reset()
		return nil
	}
	if row-1 != c.row {
		c.text.Reset()
	} else if pad := col - 1 - c.col; pad > 0 {
		spaces := strings.Repeat(" ", pad)
		if _, err := io.WriteString(c.out, spaces); err != nil {
			return err
		}
		c.text.WriteString(spaces)
	}
	c.col, c.row = col-1, row-1
	return nil
}

func (c *Console) CursorColumn() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.col
}

func (c *Console) CursorRow() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.row
}

func (c *Console) SetTextMode(mode system.TextMode) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = mode
	return nil
}

func (c *Console) Beep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = io.WriteString(c.out, "\a")
}

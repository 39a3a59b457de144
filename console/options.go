package console

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
)

// Option configures a Console.
type Option func(*Console)

// WithOutput sets where text is written.
func WithOutput(w io.Writer) Option {
	return func(c *Console) {
		c.out = w
	}
}

// WithLineReader sets the source of INPUT lines.
func WithLineReader(r LineReader) Option {
	return func(c *Console) {
		c.lines = r
		c.redraw = false
	}
}

// WithLiner reads lines with an editing terminal line reader.
func WithLiner(l *liner.State) Option {
	return func(c *Console) {
		c.lines = l
		c.redraw = true
	}
}

// WithKeyReader sets the source of GET keys.
func WithKeyReader(r KeyReader) Option {
	return func(c *Console) {
		c.keys = r
	}
}

// WithSize sets the screen size in columns and rows.
func WithSize(width, height int) Option {
	return func(c *Console) {
		if width > 0 {
			c.width = width
		}
		if height > 0 {
			c.height = height
		}
	}
}

// WithColor enables or disables INVERSE and FLASH rendering.
func WithColor(enabled bool) Option {
	return func(c *Console) {
		c.colored = enabled
	}
}

// WithANSI enables cursor control sequences for HOME, HTAB and VTAB.
func WithANSI(enabled bool) Option {
	return func(c *Console) {
		c.ansi = enabled
	}
}

func stdin() io.Reader { return os.Stdin }

// IsTerminal reports whether f is a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// NewTerminal returns a console on the process's standard streams. When
// standard input is a terminal, lines are edited with liner and GET reads
// the keyboard directly. Later options override the detected ones.
func NewTerminal(opts ...Option) *Console {
	ansi := IsTerminal(os.Stdout)
	base := []Option{
		WithOutput(color.Output),
		WithANSI(ansi),
		WithColor(ansi && !color.NoColor),
	}
	if IsTerminal(os.Stdin) {
		l := liner.NewLiner()
		l.SetCtrlCAborts(true)
		base = append(base, WithLiner(l), WithKeyReader(KeyboardReader{}))
	}
	return New(append(base, opts...)...)
}

// History returns the liner in use, if any, so callers can load and save
// line history.
func (c *Console) History() (*liner.State, bool) {
	l, ok := c.lines.(*liner.State)
	return l, ok
}

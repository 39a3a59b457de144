package console

import (
	"bufio"
	"context"
	goerrors "errors"
	"io"
	"strings"
	"sync"

	"github.com/peterh/liner"
)

// LineReader reads one line of input after showing a prompt.
// *liner.State implements it.
type LineReader interface {
	Prompt(prompt string) (string, error)
}

// KeyReader waits for one key press.
type KeyReader interface {
	ReadKey(ctx context.Context) (rune, error)
}

// KeyReaderFunc is an adapter to use a function as a KeyReader.
type KeyReaderFunc func(ctx context.Context) (rune, error)

// ReadKey implements the KeyReader interface.
func (f KeyReaderFunc) ReadKey(ctx context.Context) (rune, error) {
	return f(ctx)
}

// pendingLine is a read started by ReadLine that has not been collected.
type pendingLine struct {
	prompt string
	done   chan lineResult
}

type lineResult struct {
	line string
	err  error
}

// ReadLine shows the prompt and reads a line. If ctx is cancelled first,
// ctx.Err() is returned and the read stays pending: the next call collects
// its line instead of prompting again, since the LineReader is still
// waiting for it.
func (c *Console) ReadLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	c.mu.Lock()
	read := c.pending
	if read == nil {
		shown := prompt
		if c.redraw {
			// liner redraws the whole row, so it must repeat what is already there.
			shown = c.text.String() + prompt
		}
		read = &pendingLine{prompt: prompt, done: make(chan lineResult, 1)}
		c.pending = read
		go func() {
			line, err := c.lines.Prompt(shown)
			read.done <- lineResult{line, err}
		}()
	}
	c.mu.Unlock()

	var res lineResult
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res = <-read.done:
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = nil
	if goerrors.Is(res.err, liner.ErrPromptAborted) {
		return "", ErrInterrupted
	}
	if res.err != nil {
		return "", res.err
	}
	c.advance(read.prompt + res.line + "\n")
	return res.line, nil
}

// ReadChar waits for a key. Return is reported as '\r'.
func (c *Console) ReadChar(ctx context.Context) (rune, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return c.keys.ReadKey(ctx)
}

// StreamInput reads lines and keys from a plain stream such as a pipe. It
// echoes what it reads so a transcript looks like a terminal session.
type StreamInput struct {
	mu  sync.Mutex
	r   *bufio.Reader
	out io.Writer
}

// NewStreamInput returns a StreamInput reading from r. Prompts and echoed
// input are written to out, which may be nil.
func NewStreamInput(r io.Reader, out io.Writer) *StreamInput {
	if out == nil {
		out = io.Discard
	}
	return &StreamInput{r: bufio.NewReader(r), out: out}
}

func (s *StreamInput) Prompt(prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := io.WriteString(s.out, prompt); err != nil {
		return "", err
	}
	line, err := s.r.ReadString('\n')
	if err != nil && (!goerrors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	line = strings.TrimRight(line, "\r\n")
	if _, err := io.WriteString(s.out, line+"\n"); err != nil {
		return "", err
	}
	return line, nil
}

func (s *StreamInput) ReadKey(ctx context.Context) (rune, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r, _, err := s.r.ReadRune()
	if err != nil {
		return 0, err
	}
	if r == '\n' {
		r = '\r'
	}
	return r, nil
}

package console

import (
	"context"
	"sync/atomic"

	"atomicgo.dev/keyboard"
	"atomicgo.dev/keyboard/keys"
)

// KeyboardReader reads single key presses from the terminal in raw mode.
type KeyboardReader struct{}

func (KeyboardReader) ReadKey(ctx context.Context) (rune, error) {
	type result struct {
		r   rune
		err error
	}
	done := make(chan result, 1)
	var abandoned atomic.Bool
	go func() {
		var res result
		err := keyboard.Listen(func(key keys.Key) (bool, error) {
			if abandoned.Load() {
				return true, nil
			}
			r, ok, err := keyRune(key)
			if err != nil {
				res.err = err
				return true, nil
			}
			if !ok {
				return false, nil
			}
			res.r = r
			return true, nil
		})
		if err != nil && res.err == nil {
			res.err = err
		}
		done <- res
	}()
	select {
	case res := <-done:
		return res.r, res.err
	case <-ctx.Done():
		// The listener exits on the next key press.
		abandoned.Store(true)
		return 0, ctx.Err()
	}
}

// keyRune maps a key press to the character an Apple keyboard would send.
// Keys with no such character are ignored.
func keyRune(key keys.Key) (rune, bool, error) {
	switch key.Code {
	case keys.CtrlC:
		return 0, false, ErrInterrupted
	case keys.Enter:
		return '\r', true, nil
	case keys.Space:
		return ' ', true, nil
	case keys.Tab:
		return '\t', true, nil
	case keys.Escape:
		return 27, true, nil
	case keys.Backspace, keys.Left:
		return 8, true, nil
	case keys.Right:
		return 21, true, nil
	case keys.Up:
		return 11, true, nil
	case keys.Down:
		return 10, true, nil
	}
	if len(key.Runes) > 0 {
		return key.Runes[0], true, nil
	}
	return 0, false, nil
}

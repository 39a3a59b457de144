package interpreter

import (
	"github.com/rs/zerolog"

	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/system"
)

// Option is a configuration function for an Interpreter.
type Option func(*Interpreter)

// WithLogger sets the logger used for session and diagnostic events.
// The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(in *Interpreter) {
		in.logger = logger
	}
}

// WithObserver sets an observer for execution events.
// Returning false from any observer method halts execution.
func WithObserver(observer Observer) Option {
	return func(in *Interpreter) {
		in.observer = observer
	}
}

// WithRandSeed makes RND deterministic. Each run starts from the seed.
func WithRandSeed(seed int64) Option {
	return func(in *Interpreter) {
		in.seed = seed
		in.seeded = true
	}
}

// WithWidth sets the screen width used for PRINT comma zones and TAB.
func WithWidth(width int) Option {
	return func(in *Interpreter) {
		if width > 0 {
			in.width = width
		}
	}
}

// WithMaxStackDepth limits the number of active GOSUBs, FOR loops and
// nested FN calls. Exceeding it is an OUT OF MEMORY fault.
func WithMaxStackDepth(depth int) Option {
	return func(in *Interpreter) {
		if depth > 0 {
			in.maxDepth = depth
		}
	}
}

// WithMemory sets the address space used by PEEK, POKE and CALL. By default
// the system context is used if it implements system.Memory.
func WithMemory(memory system.Memory) Option {
	return func(in *Interpreter) {
		in.memory = memory
	}
}

// WithFilename sets the filename reported in fault locations and passed to
// the parser by Run.
func WithFilename(filename string) Option {
	return func(in *Interpreter) {
		in.filename = filename
	}
}

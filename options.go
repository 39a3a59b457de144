package basic

import (
	"github.com/rs/zerolog"

	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/interpreter"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/parser"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/syntax"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/system"
)

// Option configures compilation and execution.
type Option func(*config)

type config struct {
	filename     string
	logger       *zerolog.Logger
	observer     interpreter.Observer
	seed         int64
	seeded       bool
	width        int
	maxDepth     int
	memory       system.Memory
	check        bool
	validators   []syntax.Validator
	transformers []syntax.Transformer
}

func newConfig(opts ...Option) *config {
	cfg := &config{}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

func (cfg *config) parserOpts() []parser.Option {
	var opts []parser.Option
	if cfg.filename != "" {
		opts = append(opts, parser.WithFilename(cfg.filename))
	}
	return opts
}

func (cfg *config) interpreterOpts() []interpreter.Option {
	var opts []interpreter.Option
	if cfg.filename != "" {
		opts = append(opts, interpreter.WithFilename(cfg.filename))
	}
	if cfg.logger != nil {
		opts = append(opts, interpreter.WithLogger(*cfg.logger))
	}
	if cfg.observer != nil {
		opts = append(opts, interpreter.WithObserver(cfg.observer))
	}
	if cfg.seeded {
		opts = append(opts, interpreter.WithRandSeed(cfg.seed))
	}
	if cfg.width > 0 {
		opts = append(opts, interpreter.WithWidth(cfg.width))
	}
	if cfg.maxDepth > 0 {
		opts = append(opts, interpreter.WithMaxStackDepth(cfg.maxDepth))
	}
	if cfg.memory != nil {
		opts = append(opts, interpreter.WithMemory(cfg.memory))
	}
	return opts
}

// WithFilename sets the filename for the source code being run.
// This is used for error messages and fault locations.
func WithFilename(filename string) Option {
	return func(cfg *config) {
		cfg.filename = filename
	}
}

// WithLogger sets the logger for interpreter session events.
func WithLogger(logger zerolog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = &logger
	}
}

// WithObserver sets an observer for execution events. This enables
// tracers, debuggers and line coverage tools.
func WithObserver(observer interpreter.Observer) Option {
	return func(cfg *config) {
		cfg.observer = observer
	}
}

// WithRandSeed makes RND deterministic.
func WithRandSeed(seed int64) Option {
	return func(cfg *config) {
		cfg.seed = seed
		cfg.seeded = true
	}
}

// WithWidth sets the screen width used by PRINT.
func WithWidth(width int) Option {
	return func(cfg *config) {
		cfg.width = width
	}
}

// WithMaxStackDepth limits nested GOSUBs, FOR loops and FN calls.
func WithMaxStackDepth(depth int) Option {
	return func(cfg *config) {
		cfg.maxDepth = depth
	}
}

// WithMemory backs PEEK, POKE and CALL with the given address space.
func WithMemory(memory system.Memory) Option {
	return func(cfg *config) {
		cfg.memory = memory
	}
}

// WithChecks makes Compile run static checks and fail on any problem.
// Without validators the default checks are used.
func WithChecks(validators ...syntax.Validator) Option {
	return func(cfg *config) {
		cfg.check = true
		cfg.validators = append(cfg.validators, validators...)
	}
}

// WithTransformer adds a transformer applied by Compile after parsing.
// Transformers run in the order given.
func WithTransformer(t syntax.Transformer) Option {
	return func(cfg *config) {
		cfg.transformers = append(cfg.transformers, t)
	}
}

package main

import (
	"context"
	goerrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	basic "github.com/Bad-Mango-Solutions/back-pocket-basic-sub009"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/console"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/errz"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/interpreter"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/system"
)

const prompt = "]"

// repl reads lines at the prompt and hands them to a session. LOAD, SAVE
// and QUIT touch the host and are handled here rather than by the session.
type repl struct {
	screen  system.Context
	session *basic.Session
	logger  zerolog.Logger
	history func(line string)
}

func runRepl(ctx context.Context) error {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	term := console.NewTerminal(console.WithSize(viper.GetInt("width"), 0))
	defer term.Close()

	r := newRepl(term, logger)
	if l, ok := term.History(); ok {
		path := historyPath()
		loadHistory(path, l)
		defer saveHistory(path, l)
		r.history = func(line string) { l.AppendHistory(line) }
	}
	term.WriteLine("APPLESOFT BASIC " + version)
	return r.loop(ctx)
}

func newRepl(screen system.Context, logger zerolog.Logger) *repl {
	return &repl{
		screen:  screen,
		session: basic.NewSession(screen, programOptions(logger)...),
		logger:  logger,
		history: func(string) {},
	}
}

func (r *repl) loop(ctx context.Context) error {
	for {
		line, err := r.screen.ReadLine(ctx, prompt)
		switch {
		case goerrors.Is(err, io.EOF):
			return nil
		case goerrors.Is(err, console.ErrInterrupted):
			continue
		case err != nil:
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		r.history(line)
		quit, err := r.handle(ctx, line)
		if err != nil {
			r.report(err)
		}
		if quit {
			return nil
		}
	}
}

// handle runs one line and reports whether the user asked to quit.
func (r *repl) handle(ctx context.Context, line string) (bool, error) {
	word, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	switch strings.ToUpper(word) {
	case "QUIT", "BYE":
		return true, nil
	case "LOAD":
		return false, r.load(arg)
	case "SAVE":
		return false, r.save(arg)
	}

	ctx, cancel := interruptible(ctx)
	defer cancel()
	err := r.session.Enter(ctx, line)
	in := r.session.Interpreter()
	switch strings.ToUpper(word) {
	case "RUN", "CONT":
		result := &basic.Result{Reason: in.StopReason(), Line: in.CurrentLine()}
		return false, reportStop(r.screen, result, err)
	}
	return false, err
}

func (r *repl) load(arg string) error {
	path, err := fileArg(arg)
	if err != nil {
		return err
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := r.session.Load(string(source)); err != nil {
		return err
	}
	r.logger.Info().Str("file", path).Msg("program loaded")
	return nil
}

func (r *repl) save(arg string) error {
	path, err := fileArg(arg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(r.session.Source()), 0o644); err != nil {
		return err
	}
	r.logger.Info().Str("file", path).Msg("program saved")
	return nil
}

// fileArg unquotes a LOAD or SAVE file name and expands a leading ~.
func fileArg(arg string) (string, error) {
	name := strings.Trim(strings.TrimSpace(arg), `"`)
	if name == "" {
		return "", goerrors.New("missing file name")
	}
	return homedir.Expand(name)
}

// report shows an error the way the machine would, with the detailed
// report on stderr in verbose mode.
func (r *repl) report(err error) {
	if goerrors.Is(err, errFaulted) {
		return
	}
	var fault *errz.Fault
	switch {
	case goerrors.As(err, &fault):
		r.screen.WriteLine(fault.LegacyMessage())
	case goerrors.Is(err, interpreter.ErrCannotContinue):
		r.screen.WriteLine("?CAN'T CONTINUE ERROR")
	case goerrors.Is(err, fs.ErrNotExist):
		r.screen.WriteLine("?FILE NOT FOUND ERROR")
	case goerrors.As(err, new(*fs.PathError)):
		r.screen.WriteLine("?I/O ERROR")
	default:
		r.screen.WriteLine("?SYNTAX ERROR")
		r.logger.Debug().Err(err).Msg("rejected line")
	}
	if viper.GetBool("verbose") {
		fmt.Fprintln(os.Stderr, formatError(err))
	}
}

func historyPath() string {
	home, err := homedir.Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".basic_history")
}

type historyStore interface {
	ReadHistory(r io.Reader) (int, error)
	WriteHistory(w io.Writer) (int, error)
}

func loadHistory(path string, h historyStore) {
	if path == "" {
		return
	}
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()
	h.ReadHistory(f)
}

func saveHistory(path string, h historyStore) {
	if path == "" {
		return
	}
	f, err := os.Create(path)
	if err != nil {
		return
	}
	defer f.Close()
	h.WriteHistory(f)
}

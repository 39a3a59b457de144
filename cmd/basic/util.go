package main

import (
	"context"
	"encoding/json"
	goerrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/fatih/color"
	"github.com/hokaccha/go-prettyjson"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	basic "github.com/Bad-Mango-Solutions/back-pocket-basic-sub009"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/errors"
)

func fatal(msg interface{}) {
	var s string
	switch msg := msg.(type) {
	case string:
		s = msg
	case error:
		s = msg.Error()
	default:
		s = fmt.Sprintf("%v", msg)
	}
	fmt.Fprintf(os.Stderr, "%s\n", red(s))
	os.Exit(1)
}

func isTerminalIO() bool {
	stdin := os.Stdin.Fd()
	stdout := os.Stdout.Fd()
	inTerm := isatty.IsTerminal(stdin) || isatty.IsCygwinTerminal(stdin)
	outTerm := isatty.IsTerminal(stdout) || isatty.IsCygwinTerminal(stdout)
	return inTerm && outTerm
}

// Reads global flags from Viper and adjusts the environment accordingly.
func processGlobalFlags() {
	if viper.GetBool("no-color") {
		color.NoColor = true
	}
}

func printJSON(w io.Writer, v any) error {
	var (
		data []byte
		err  error
	)
	if color.NoColor {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = prettyjson.Marshal(v)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// newLogger returns a console logger on w at the configured level.
func newLogger(w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(viper.GetString("log-level"))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q", viper.GetString("log-level"))
	}
	out := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    color.NoColor,
		TimeFormat: time.TimeOnly,
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}

// programOptions turns the global flags into run options.
func programOptions(logger zerolog.Logger) []basic.Option {
	opts := []basic.Option{
		basic.WithLogger(logger),
		basic.WithWidth(viper.GetInt("width")),
	}
	if seed := viper.GetInt64("seed"); seed != 0 {
		opts = append(opts, basic.WithRandSeed(seed))
	}
	if viper.GetBool("trace") {
		opts = append(opts, basic.WithObserver(newTracer(logger)))
	}
	return opts
}

// interruptible returns a context cancelled by Ctrl-C or by the configured
// timeout, whichever comes first.
func interruptible(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt)
	timeout := viper.GetDuration("timeout")
	if timeout <= 0 {
		return ctx, stop
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	return ctx, func() {
		cancel()
		stop()
	}
}

// formatError renders err with source context when it carries any.
func formatError(err error) string {
	formatter := errors.NewFormatter(!color.NoColor)
	var formattable errors.FormattableError
	if goerrors.As(err, &formattable) {
		return formatter.Format(formattable.ToFormatted())
	}
	return err.Error()
}

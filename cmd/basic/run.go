package main

import (
	"context"
	goerrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	basic "github.com/Bad-Mango-Solutions/back-pocket-basic-sub009"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/console"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/errz"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/interpreter"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/system"
)

// errFaulted is returned once a program fault has been reported, so main
// only has to set the exit status.
var errFaulted = goerrors.New("program faulted")

var runCmd = &cobra.Command{
	Use:   "run FILE",
	Short: "Run a BASIC program",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFile(cmd.Context(), args[0], cmd.OutOrStdout())
	},
}

func runFile(ctx context.Context, path string, out io.Writer) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return runSource(ctx, string(source), path, out)
}

func runSource(ctx context.Context, source, filename string, out io.Writer) error {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	opts := append(programOptions(logger), basic.WithFilename(filename))
	program, err := basic.Compile(source, opts...)
	if err != nil {
		return goerrors.New(formatError(err))
	}

	term := console.NewTerminal(console.WithOutput(out), console.WithSize(viper.GetInt("width"), 0))
	defer term.Close()

	ctx, cancel := interruptible(ctx)
	defer cancel()
	result, err := basic.Run(ctx, program, term, opts...)
	logger.Debug().
		Str("session", result.SessionID.String()).
		Stringer("reason", result.Reason).
		Int("line", result.Line).
		Msg("program finished")
	return reportStop(term, result, err)
}

// reportStop prints how a run ended the way the prompt would: a fault as
// "?KIND ERROR IN n" and a STOP as "BREAK IN n".
func reportStop(screen system.Context, result *basic.Result, err error) error {
	var fault *errz.Fault
	if goerrors.As(err, &fault) {
		if screen.CursorColumn() > 0 {
			screen.WriteLine("")
		}
		screen.WriteLine(fault.LegacyMessage())
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, formatError(fault))
		}
		return errFaulted
	}
	if err != nil {
		return err
	}
	if result.Reason == interpreter.StopStatement {
		if screen.CursorColumn() > 0 {
			screen.WriteLine("")
		}
		return screen.WriteLine(fmt.Sprintf("BREAK IN %d", result.Line))
	}
	return nil
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/errors"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/parser"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/syntax"
)

var checkCmd = &cobra.Command{
	Use:   "check FILE...",
	Short: "Check programs for undefined lines, unmatched NEXTs and undefined functions",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := 0
		for _, path := range args {
			report, err := checkFile(path)
			if err != nil {
				return err
			}
			if report != "" {
				failed++
				fmt.Fprintln(cmd.OutOrStdout(), report)
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d programs have problems", failed, len(args))
		}
		return nil
	},
}

// checkFile parses and checks one program and returns a report of its
// problems, or "" when there are none.
func checkFile(path string) (string, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	formatter := errors.NewFormatter(!color.NoColor)
	program, err := parser.Parse(context.Background(), string(source), parser.WithFilename(path))
	if err != nil {
		return formatError(err), nil
	}
	problems := syntax.Problems(syntax.Check(program))
	if len(problems) == 0 {
		return "", nil
	}
	formatted := make([]*errors.FormattedError, 0, len(problems))
	for _, p := range problems {
		formatted = append(formatted, p.ToFormatted())
	}
	return formatter.FormatMultiple(formatted), nil
}

package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	basic "github.com/Bad-Mango-Solutions/back-pocket-basic-sub009"
	bastest "github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/testing"
)

var testCmd = &cobra.Command{
	Use:   "test [path...]",
	Short: "Run *_test.bas programs and compare their output with .out files",
	Long: `Run *_test.bas programs and compare their output with .out files.

Each program runs with the lines of its .in file, if any, as keyboard input
and a fixed RND seed. A path ending in /... is searched recursively.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		run, _ := cmd.Flags().GetString("run")
		update, _ := cmd.Flags().GetBool("update")
		summary, err := bastest.Run(cmd.Context(), &bastest.Config{
			Patterns:   args,
			RunPattern: run,
			Update:     update,
			Timeout:    viper.GetDuration("timeout"),
			Options:    []basic.Option{basic.WithWidth(viper.GetInt("width"))},
		})
		if err != nil {
			return err
		}
		out := bastest.NewOutput(bastest.OutputConfig{
			Writer:   cmd.OutOrStdout(),
			Verbose:  viper.GetBool("verbose"),
			UseColor: !color.NoColor,
		})
		out.PrintResults(summary)
		if !summary.Success() {
			return errFaulted
		}
		if len(summary.Results) == 0 {
			fmt.Fprintln(os.Stderr, "no test programs found")
		}
		return nil
	},
}

func init() {
	testCmd.Flags().String("run", "", "Run only tests whose name matches this regular expression")
	testCmd.Flags().Bool("update", false, "Rewrite .out files with the current output")
	rootCmd.AddCommand(testCmd)
}

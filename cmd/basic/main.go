package main

import (
	goerrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	basic "github.com/Bad-Mango-Solutions/back-pocket-basic-sub009"
)

var (
	version = basic.Version
	commit  = "none"
	date    = "unknown"
)

var (
	cfgFile string
	red     = color.New(color.FgRed).SprintFunc()
)

var rootCmd = &cobra.Command{
	Use:   "basic [file]",
	Short: "Run Applesoft BASIC programs",
	Long: `Run Applesoft BASIC programs.

With a file argument the program is run and the command exits. Without one,
an interactive prompt is started when the terminal is interactive, and a
program is otherwise read from standard input.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		processGlobalFlags()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return runFile(cmd.Context(), args[0], cmd.OutOrStdout())
		}
		if viper.GetBool("no-repl") || !isTerminalIO() {
			source, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}
			return runSource(cmd.Context(), string(source), "<stdin>", cmd.OutOrStdout())
		}
		return runRepl(cmd.Context())
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.basic.yaml)")
	pf.Bool("no-color", false, "Disable colored output")
	pf.String("log-level", "warn", "Log level: trace, debug, info, warn or error")
	pf.Int("width", 40, "Screen width in columns")
	pf.Duration("timeout", 0, "Stop programs that run longer than this")
	pf.Int64("seed", 0, "Seed for RND, for repeatable runs (0 picks one at random)")
	pf.Bool("trace", false, "Log each line as it runs")
	pf.BoolP("verbose", "v", false, "Show detailed error reports")
	viper.BindPFlags(pf)

	rootCmd.Flags().Bool("no-repl", false, "Never start the interactive prompt")
	viper.BindPFlag("no-repl", rootCmd.Flags().Lookup("no-repl"))

	rootCmd.AddCommand(runCmd, astCmd, tokensCmd, checkCmd, docsCmd, versionCmd)
}

// initConfig reads the config file and BASIC_* environment variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if home, err := homedir.Dir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".basic")
		viper.SetConfigType("yaml")
	}
	viper.SetEnvPrefix("basic")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !goerrors.As(err, &notFound) {
			fatal(fmt.Errorf("reading config: %w", err))
		}
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if viper.GetBool("verbose") {
			return printJSON(out, map[string]string{
				"version": version,
				"commit":  commit,
				"date":    date,
			})
		}
		fmt.Fprintln(out, version)
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if goerrors.Is(err, errFaulted) {
			os.Exit(1)
		}
		fatal(err)
	}
}

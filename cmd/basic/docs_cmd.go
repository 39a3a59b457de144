package main

import (
	"github.com/spf13/cobra"

	basic "github.com/Bad-Mango-Solutions/back-pocket-basic-sub009"
)

var docsCmd = &cobra.Command{
	Use:   "docs [topic]",
	Short: "Show the language reference",
	Long: `Show the language reference as JSON.

Without arguments a quick reference is printed. A topic names a statement,
function or error, for example "GOSUB", "MID$" or "OUT OF DATA".`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts []basic.DocsOption
		category, _ := cmd.Flags().GetString("category")
		all, _ := cmd.Flags().GetBool("all")
		switch {
		case all:
			opts = append(opts, basic.DocsAll())
		case category != "":
			opts = append(opts, basic.DocsCategory(category))
		case len(args) == 1:
			opts = append(opts, basic.DocsTopic(args[0]))
		}
		return printJSON(cmd.OutOrStdout(), basic.Docs(opts...).Data())
	},
}

func init() {
	docsCmd.Flags().String("category", "", "Show one category: statements, functions or errors")
	docsCmd.Flags().Bool("all", false, "Show the complete reference")
}

package cli_cmds

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ZanzyTHEbar/firedragon-ledger/internal"
	"github.com/ZanzyTHEbar/firedragon-ledger/internal/cli"
)

// NewHelp creates a help command listing the ledger commands
func NewHelp(params *cli.CmdParams) *cobra.Command {
	var showAll bool

	helpCmd := &cobra.Command{
		Use:     "detailed_help",
		Aliases: []string{"h"},
		Short:   "Display detailed help for the ledger",
		Long:    `Display detailed help for the ledger including the command hierarchy and usage examples.`,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			if showAll {
				fmt.Fprintln(out, "Ledger - Complete Command Reference")
				fmt.Fprintln(out, "===================================")
				fmt.Fprintln(out, "\nAvailable Commands:")

				for _, c := range params.Palette {
					printCommandTree(cmd, c, "- ")
				}
				return
			}

			fmt.Fprintln(out, "Ledger")
			fmt.Fprintln(out, "======")
			fmt.Fprintln(out, "\nMain Commands:")
			fmt.Fprintln(out, "  transactions  List a month, a date range or everything until a date")
			fmt.Fprintln(out, "  search        Search transactions by text")
			fmt.Fprintln(out, "  delete        Delete a transaction, an account's transactions or everything")
			fmt.Fprintln(out, "  accounts      List and delete accounts")
			fmt.Fprintln(out, "\nExamples:")
			fmt.Fprintf(out, "  %s transactions --account 1 --month 10 --year 2018 --rest\n", internal.DefaultAppName)
			fmt.Fprintf(out, "  %s transactions range --from 2018-01-01 --to 2018-12-31 --repeating none\n", internal.DefaultAppName)
			fmt.Fprintf(out, "  %s search groceries --fields name,tags\n", internal.DefaultAppName)
			fmt.Fprintf(out, "\nUse '%s [command] --help' for more information about a command.\n", internal.DefaultAppName)
			fmt.Fprintf(out, "Use '%s detailed_help --all' to see all available commands.\n", internal.DefaultAppName)
		},
	}

	helpCmd.Flags().BoolVarP(&showAll, "all", "a", false, "Show all commands")

	return helpCmd
}

func printCommandTree(cmd, c *cobra.Command, indent string) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s%s: %s\n", indent, c.Use, c.Short)
	for _, sub := range c.Commands() {
		printCommandTree(cmd, sub, "  "+indent)
	}
}

package cli_cmds

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ZanzyTHEbar/firedragon-ledger/internal/cli"
)

// NewAccounts creates the accounts command and its subcommands
func NewAccounts(params *cli.CmdParams) *cobra.Command {
	accountsCmd := &cobra.Command{
		Use:     "accounts",
		Aliases: []string{"account"},
		Short:   "Manage accounts",
	}

	accountsCmd.AddCommand(newAccountsListCmd(params), newAccountsDeleteCmd(params))
	return accountsCmd
}

func newAccountsListCmd(params *cli.CmdParams) *cobra.Command {
	var includeAll bool

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := params.App(cmd.Context())
			if err != nil {
				return err
			}
			accounts, err := app.Accounts.ListAccounts(cmd.Context(), includeAll)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tTYPE")
			for _, account := range accounts {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", account.ID, account.Name, account.Type)
			}
			return tw.Flush()
		},
	}

	listCmd.Flags().BoolVar(&includeAll, "all", false, "Include the all accounts entry")
	return listCmd
}

func newAccountsDeleteCmd(params *cli.CmdParams) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <account-id>",
		Short: "Delete an account with its transactions and the transfers into it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid account ID %q", args[0])
			}

			app, err := params.App(cmd.Context())
			if err != nil {
				return err
			}
			if err := app.Accounts.DeleteAccount(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted account %d\n", id)
			return nil
		},
	}
}

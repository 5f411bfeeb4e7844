package cli_cmds

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ZanzyTHEbar/firedragon-ledger/internal/cli"
)

// NewDelete creates the delete command. It removes one transaction, every
// transaction of an account or, with --all --yes, the whole ledger.
func NewDelete(params *cli.CmdParams) *cobra.Command {
	var (
		accountID int64
		all       bool
		yes       bool
	)

	deleteCmd := &cobra.Command{
		Use:   "delete [transaction-id]",
		Short: "Delete transactions",
		Long: `Delete a single transaction by ID, every transaction of an account with --account,
or every transaction in the ledger with --all --yes.
Deleting a repeating transaction deletes the whole series.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			byAccount := cmd.Flags().Changed("account")
			modes := 0
			for _, set := range []bool{len(args) == 1, byAccount, all} {
				if set {
					modes++
				}
			}
			if modes != 1 {
				return errors.New("give exactly one of a transaction ID, --account or --all")
			}

			app, err := params.App(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			switch {
			case all:
				if !yes {
					return errors.New("refusing to delete the whole ledger without --yes")
				}
				if err := app.Transactions.DeleteAll(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(out, "Deleted every transaction")

			case byAccount:
				account, err := app.Accounts.ResolveAccount(cmd.Context(), accountID)
				if err != nil {
					return err
				}
				if err := app.Transactions.DeleteTransactionsForAccount(cmd.Context(), account); err != nil {
					return err
				}
				fmt.Fprintf(out, "Deleted the transactions of %s\n", account.Name)

			default:
				id, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid transaction ID %q", args[0])
				}
				if err := app.Transactions.DeleteTransaction(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(out, "Deleted transaction %d\n", id)
			}
			return nil
		},
	}

	deleteCmd.Flags().Int64Var(&accountID, "account", 0, "Delete every transaction of this account")
	deleteCmd.Flags().BoolVar(&all, "all", false, "Delete every transaction")
	deleteCmd.Flags().BoolVar(&yes, "yes", false, "Confirm --all")

	return deleteCmd
}

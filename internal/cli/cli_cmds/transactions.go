package cli_cmds

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ZanzyTHEbar/firedragon-ledger/domain/models"
	"github.com/ZanzyTHEbar/firedragon-ledger/domain/usecases"
	"github.com/ZanzyTHEbar/firedragon-ledger/internal/cli"
)

const dateLayout = "2006-01-02"

// NewTransactions creates the transactions command. Without a subcommand it
// lists one month of an account, optionally with the carry-over entry.
func NewTransactions(params *cli.CmdParams) *cobra.Command {
	var (
		accountID int64
		filters   filterFlags
		month     int
		year      int
		withRest  bool
	)

	now := time.Now()

	transactionsCmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"tx", "ls"},
		Short:   "List the transactions of a month",
		Long: `List the transactions of one month for an account. Account 0 stands for all accounts.
With --rest the balance carried over from before the month is shown as a last entry.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := params.App(cmd.Context())
			if err != nil {
				return err
			}
			account, err := app.Accounts.ResolveAccount(cmd.Context(), accountID)
			if err != nil {
				return err
			}
			cfg, err := filters.configuration()
			if err != nil {
				return err
			}

			summary, err := app.Transactions.GetPeriodSummary(cmd.Context(), account, month, year, withRest, cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s, %s\n\n", account.Name, summary.Period)
			if err := cli.PrintEntries(out, summary.Entries); err != nil {
				return err
			}
			fmt.Fprintln(out)
			cli.PrintTotals(out, summary.Totals)
			return nil
		},
	}

	transactionsCmd.PersistentFlags().Int64VarP(&accountID, "account", "a", usecases.AllAccountsID, "Account ID (0 for all accounts)")
	filters.register(transactionsCmd.PersistentFlags())

	transactionsCmd.Flags().IntVarP(&month, "month", "m", int(now.Month()), "Month (1-12)")
	transactionsCmd.Flags().IntVarP(&year, "year", "y", now.Year(), "Year")
	transactionsCmd.Flags().BoolVarP(&withRest, "rest", "r", false, "Append the carry-over entry")

	transactionsCmd.AddCommand(
		newRangeCmd(params, &accountID, &filters),
		newUntilCmd(params, &accountID, &filters),
	)

	return transactionsCmd
}

func newRangeCmd(params *cli.CmdParams, accountID *int64, filters *filterFlags) *cobra.Command {
	var from, to string

	rangeCmd := &cobra.Command{
		Use:   "range",
		Short: "List the transactions between two dates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseDate("from", from)
			if err != nil {
				return err
			}
			end, err := parseDate("to", to)
			if err != nil {
				return err
			}
			return listRange(cmd, params, *accountID, filters, start, end)
		},
	}

	rangeCmd.Flags().StringVar(&from, "from", "", "First day, YYYY-MM-DD")
	rangeCmd.Flags().StringVar(&to, "to", "", "Last day, YYYY-MM-DD")
	_ = rangeCmd.MarkFlagRequired("from")
	_ = rangeCmd.MarkFlagRequired("to")

	return rangeCmd
}

func newUntilCmd(params *cli.CmdParams, accountID *int64, filters *filterFlags) *cobra.Command {
	var date string

	untilCmd := &cobra.Command{
		Use:   "until",
		Short: "List every transaction up to a date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			end, err := parseDate("date", date)
			if err != nil {
				return err
			}
			return listRange(cmd, params, *accountID, filters, models.LedgerEpoch, end)
		},
	}

	untilCmd.Flags().StringVar(&date, "date", time.Now().Format(dateLayout), "Last day, YYYY-MM-DD")

	return untilCmd
}

func listRange(cmd *cobra.Command, params *cli.CmdParams, accountID int64, filters *filterFlags, start, end time.Time) error {
	app, err := params.App(cmd.Context())
	if err != nil {
		return err
	}
	account, err := app.Accounts.ResolveAccount(cmd.Context(), accountID)
	if err != nil {
		return err
	}
	cfg, err := filters.configuration()
	if err != nil {
		return err
	}

	transactions, err := app.Transactions.GetTransactionsForAccountInRange(cmd.Context(), account, start, end, cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := cli.PrintTransactions(out, transactions); err != nil {
		return err
	}
	fmt.Fprintln(out)
	cli.PrintTotals(out, usecases.ComputeTotals(entriesOf(transactions)))
	return nil
}

func entriesOf(transactions []*models.Transaction) []models.Entry {
	entries := make([]models.Entry, 0, len(transactions))
	for _, tx := range transactions {
		entries = append(entries, tx)
	}
	return entries
}

func parseDate(flag, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s: expected YYYY-MM-DD, got %q", flag, value)
	}
	return t, nil
}

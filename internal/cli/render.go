package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/ZanzyTHEbar/firedragon-ledger/domain/models"
	"github.com/ZanzyTHEbar/firedragon-ledger/domain/usecases"
)

// FormatAmount renders an amount in minor units with two decimals
func FormatAmount(amount int64) string {
	return decimal.New(amount, -2).StringFixed(2)
}

// PrintEntries writes entries as an aligned table
func PrintEntries(w io.Writer, entries []models.Entry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "ID\tDATE\tAMOUNT\tNAME\tCATEGORY\tACCOUNT\tTAGS\t")

	for _, entry := range entries {
		id, account := "-", ""
		if tx, ok := entry.Stored(); ok {
			id = fmt.Sprintf("%d", tx.ID)
			account = accountLabel(tx)
		}

		category := ""
		if c := entry.EntryCategory(); c != nil {
			category = c.Name
		}

		tags := make([]string, 0, len(entry.EntryTags()))
		for _, tag := range entry.EntryTags() {
			tags = append(tags, tag.Name)
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			id,
			entry.EntryDate().Format("2006-01-02"),
			FormatAmount(entry.EntryAmount()),
			entry.EntryName(),
			category,
			account,
			strings.Join(tags, ","),
		)
	}
	return tw.Flush()
}

// PrintTransactions writes stored transactions as an aligned table
func PrintTransactions(w io.Writer, transactions []*models.Transaction) error {
	entries := make([]models.Entry, 0, len(transactions))
	for _, tx := range transactions {
		entries = append(entries, tx)
	}
	return PrintEntries(w, entries)
}

// PrintTotals writes the income, expenditure and balance lines
func PrintTotals(w io.Writer, totals usecases.Totals) {
	fmt.Fprintf(w, "Income:      %s\n", FormatAmount(totals.Income))
	fmt.Fprintf(w, "Expenditure: %s\n", FormatAmount(totals.Expenditure))
	fmt.Fprintf(w, "Balance:     %s\n", FormatAmount(totals.Balance()))
}

func accountLabel(tx *models.Transaction) string {
	if tx.Account == nil {
		return ""
	}
	if tx.TransferAccount != nil {
		return tx.Account.Name + " -> " + tx.TransferAccount.Name
	}
	return tx.Account.Name
}

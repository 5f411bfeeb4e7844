package cli_cmds

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ZanzyTHEbar/firedragon-ledger/domain/filter"
	"github.com/ZanzyTHEbar/firedragon-ledger/internal/cli"
)

// NewSearch creates the search command
func NewSearch(params *cli.CmdParams) *cobra.Command {
	var (
		fields []string
		page   int
	)

	searchCmd := &cobra.Command{
		Use:   "search [query...]",
		Short: "Search transactions by text",
		Long: `Search transactions whose name, description, category or tags contain the query.
An empty query lists every transaction.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			toggles, err := parseFields(fields)
			if err != nil {
				return err
			}
			search, err := filter.NewSearch(strings.Join(args, " "), toggles, page)
			if err != nil {
				return err
			}

			app, err := params.App(cmd.Context())
			if err != nil {
				return err
			}
			result, err := app.Transactions.Search(cmd.Context(), search)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if err := cli.PrintTransactions(out, result.Items); err != nil {
				return err
			}
			fmt.Fprintf(out, "\nPage %d of %d (%d results)\n", result.Number+1, max(result.TotalPages(), 1), result.TotalItems)
			return nil
		},
	}

	searchCmd.Flags().StringSliceVarP(&fields, "fields", "f", []string{"name", "description", "category", "tags"}, "Fields to search: name, description, category, tags")
	searchCmd.Flags().IntVarP(&page, "page", "p", 0, "Zero-based result page")

	return searchCmd
}

func parseFields(fields []string) (filter.SearchToggles, error) {
	var toggles filter.SearchToggles
	for _, field := range fields {
		switch strings.ToLower(strings.TrimSpace(field)) {
		case "name":
			toggles.Name = true
		case "description":
			toggles.Description = true
		case "category":
			toggles.Category = true
		case "tags", "tag":
			toggles.Tags = true
		case "":
		default:
			return filter.SearchToggles{}, fmt.Errorf("unknown search field %q", field)
		}
	}
	return toggles, nil
}

package cli_cmds

import (
	"github.com/spf13/cobra"

	"github.com/ZanzyTHEbar/firedragon-ledger/internal/cli"
)

func GeneratePalette(params *cli.CmdParams) []*cobra.Command {
	// Ledger commands
	transactionsCmd := NewTransactions(params)
	searchCmd := NewSearch(params)
	deleteCmd := NewDelete(params)
	accountsCmd := NewAccounts(params)

	// Utility commands
	migrateCmd := NewMigrate(params)
	configCmd := NewConfig(params)

	// Global commands
	helpCmd := NewHelp(params)
	versionCmd := NewVersion(params)

	return []*cobra.Command{
		transactionsCmd,
		searchCmd,
		deleteCmd,
		accountsCmd,
		migrateCmd,
		configCmd,
		helpCmd,
		versionCmd,
	}
}

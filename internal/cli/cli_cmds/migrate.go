package cli_cmds

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/ZanzyTHEbar/firedragon-ledger/adapters/repositories/sqlite"
	"github.com/ZanzyTHEbar/firedragon-ledger/internal"
	"github.com/ZanzyTHEbar/firedragon-ledger/internal/cli"
)

// NewMigrate creates the migrate command. It works on the database file
// directly and never starts the event publisher.
func NewMigrate(params *cli.CmdParams) *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			db, err := sqlite.Open(params.Config.Database.Path)
			if err != nil {
				return err
			}
			defer func() { err = multierr.Append(err, db.Close()) }()

			if err := db.Migrate(); err != nil {
				return err
			}
			params.Logger.Info(internal.ComponentStorage, "Migrated %s", db.Path())
			return printSchemaVersion(cmd, db.Path())
		},
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			db, err := sqlite.Open(params.Config.Database.Path)
			if err != nil {
				return err
			}
			defer func() { err = multierr.Append(err, db.Close()) }()

			return printSchemaVersion(cmd, db.Path())
		},
	})

	return migrateCmd
}

func printSchemaVersion(cmd *cobra.Command, path string) error {
	version, dirty, err := sqlite.SchemaVersion(sqlite.DSN(path))
	if err != nil {
		return err
	}
	state := "clean"
	if dirty {
		state = "dirty"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Schema version %d (%s)\n", version, state)
	return nil
}

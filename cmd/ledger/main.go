package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/multierr"

	"github.com/ZanzyTHEbar/firedragon-ledger/internal"
	"github.com/ZanzyTHEbar/firedragon-ledger/internal/cli"
	"github.com/ZanzyTHEbar/firedragon-ledger/internal/cli/cli_cmds"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) (err error) {
	// Config and logger are loaded by the root command once flags are parsed
	rootParams := &cli.CmdParams{
		Use:   internal.DefaultAppName,
		Alias: "ledger",
		Short: "Personal finance ledger",
		Long:  "Personal finance ledger - list, search and delete transactions with per-month carry-over",
	}

	// Generate command palette
	rootParams.Palette = cli_cmds.GeneratePalette(rootParams)

	// Create root command
	rootCmd := cli.NewRootCMD(rootParams)

	// The post-run hook does not run when a command fails
	defer func() {
		err = multierr.Append(err, rootParams.Close())
		if rootParams.Logger != nil {
			err = multierr.Append(err, rootParams.Logger.Close())
		}
	}()

	if err := rootCmd.Root.ExecuteContext(ctx); err != nil {
		return fmt.Errorf("error executing root command: %w", err)
	}
	return nil
}

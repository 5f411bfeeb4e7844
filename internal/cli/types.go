package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ZanzyTHEbar/firedragon-ledger/internal"
)

// AppOpener wires the ledger for the loaded configuration
type AppOpener func(ctx context.Context, cfg *internal.Config, logger *internal.Logger) (*App, error)

// CmdParams holds all dependencies needed by command handlers
type CmdParams struct {
	Config  *internal.Config
	Logger  *internal.Logger
	Palette []*cobra.Command
	Use     string
	Alias   string
	Short   string
	Long    string

	// Open defaults to OpenApp
	Open AppOpener
	app  *App
}

// load reads the configuration unless it was injected already
func (p *CmdParams) load(configFile string) error {
	if p.Config != nil {
		if p.Logger == nil {
			p.Logger = internal.GetLogger()
		}
		return nil
	}

	cfg, logger, err := internal.Init(configFile)
	if err != nil {
		return err
	}
	p.Config, p.Logger = cfg, logger
	return nil
}

// App opens the ledger on first use and hands out the same instance afterwards
func (p *CmdParams) App(ctx context.Context) (*App, error) {
	if p.app != nil {
		return p.app, nil
	}
	if p.Config == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}

	open := p.Open
	if open == nil {
		open = OpenApp
	}
	app, err := open(ctx, p.Config, p.Logger)
	if err != nil {
		return nil, err
	}
	p.app = app
	return app, nil
}

// Close releases the ledger if a command opened it
func (p *CmdParams) Close() error {
	if p.app == nil {
		return nil
	}
	err := p.app.Close()
	p.app = nil
	return err
}

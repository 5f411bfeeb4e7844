package cli

import (
	"context"
	"fmt"

	"go.uber.org/multierr"

	"github.com/ZanzyTHEbar/firedragon-ledger/adapters/repositories/sqlite"
	"github.com/ZanzyTHEbar/firedragon-ledger/domain/repositories"
	"github.com/ZanzyTHEbar/firedragon-ledger/domain/usecases"
	"github.com/ZanzyTHEbar/firedragon-ledger/interfaces"
	"github.com/ZanzyTHEbar/firedragon-ledger/internal"
	"github.com/ZanzyTHEbar/firedragon-ledger/internal/nats_common"
	"github.com/ZanzyTHEbar/firedragon-ledger/services"
)

// App is the wired ledger the commands work on
type App struct {
	Repositories repositories.Repositories
	Transactions *usecases.TransactionService
	Accounts     *usecases.AccountService

	closers []func() error
}

// NewApp wires the services over repos. uow and publisher may be nil.
func NewApp(cfg *internal.Config, logger *internal.Logger, repos repositories.Repositories, uow repositories.UnitOfWork, publisher interfaces.EventPublisher) *App {
	opts := []usecases.ServiceOption{
		usecases.WithSettings(usecases.SettingsFromConfig(cfg)),
		usecases.WithLogger(logger),
	}
	if uow != nil {
		opts = append(opts, usecases.WithUnitOfWork(uow))
	}
	if publisher != nil {
		opts = append(opts, usecases.WithPublisher(publisher))
	}

	return &App{
		Repositories: repos,
		Transactions: usecases.NewTransactionService(repos, opts...),
		Accounts:     usecases.NewAccountService(repos, opts...),
	}
}

// OnClose registers fn to run when the app closes. Closers run in reverse order.
func (a *App) OnClose(fn func() error) {
	a.closers = append(a.closers, fn)
}

// Close runs every closer and reports all failures together
func (a *App) Close() error {
	var err error
	for i := len(a.closers) - 1; i >= 0; i-- {
		err = multierr.Append(err, a.closers[i]())
	}
	a.closers = nil
	return err
}

// OpenApp opens the SQLite ledger and, when enabled, the NATS publisher
func OpenApp(ctx context.Context, cfg *internal.Config, logger *internal.Logger) (*App, error) {
	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		return nil, err
	}
	if cfg.Database.MigrateOnStart {
		if err := db.Migrate(); err != nil {
			return nil, multierr.Append(fmt.Errorf("failed to migrate database: %w", err), db.Close())
		}
	}

	var publisher interfaces.EventPublisher
	var closePublisher func() error
	if cfg.NATS.Enabled {
		p, err := nats_common.NewPublisher(ctx, nats_common.NATSConfigFromConfig(cfg), logger)
		if err != nil {
			return nil, multierr.Append(fmt.Errorf("failed to start event publisher: %w", err), db.Close())
		}
		dispatcher, err := services.NewEventDispatcher(p, logger)
		if err != nil {
			return nil, multierr.Combine(err, p.Close(), db.Close())
		}
		publisher = dispatcher
		closePublisher = func() error {
			// Queued events go out before the connection drains
			return multierr.Append(dispatcher.Close(), p.Close())
		}
	}

	app := NewApp(cfg, logger, db.Repositories(), db, publisher)
	app.OnClose(db.Close)
	if closePublisher != nil {
		app.OnClose(closePublisher)
	}

	logger.Debug(internal.ComponentStorage, "Opened ledger at %s", db.Path())
	return app, nil
}

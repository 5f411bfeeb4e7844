package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ZanzyTHEbar/firedragon-ledger/domain/filter"
	"github.com/ZanzyTHEbar/firedragon-ledger/domain/models"
	"github.com/ZanzyTHEbar/firedragon-ledger/domain/repositories"
	"github.com/ZanzyTHEbar/firedragon-ledger/domain/specifications"
	"github.com/ZanzyTHEbar/firedragon-ledger/interfaces"
	"github.com/ZanzyTHEbar/firedragon-ledger/internal"
)

const eventSource = "ledger"

// Settings are the user facing knobs of the ledger services
type Settings struct {
	RestLabel        string
	AllAccountsLabel string
	StrictDelete     bool
	ItemsPerPage     int
}

// DefaultSettings mirrors the configuration defaults
func DefaultSettings() Settings {
	return Settings{
		RestLabel:        "Rest",
		AllAccountsLabel: "All accounts",
		StrictDelete:     true,
		ItemsPerPage:     10,
	}
}

// SettingsFromConfig extracts the service settings from the loaded configuration
func SettingsFromConfig(cfg *internal.Config) Settings {
	return Settings{
		RestLabel:        cfg.Ledger.RestLabel,
		AllAccountsLabel: cfg.Ledger.AllAccountsLabel,
		StrictDelete:     cfg.Ledger.StrictDelete,
		ItemsPerPage:     cfg.Search.ItemsPerPage,
	}
}

// ServiceOption configures the ledger services
type ServiceOption func(*serviceDeps)

type serviceDeps struct {
	uow       repositories.UnitOfWork
	publisher interfaces.EventPublisher
	logger    *internal.Logger
	settings  Settings
}

// WithUnitOfWork makes multi-step deletions atomic
func WithUnitOfWork(uow repositories.UnitOfWork) ServiceOption {
	return func(d *serviceDeps) { d.uow = uow }
}

// WithPublisher announces completed deletions
func WithPublisher(publisher interfaces.EventPublisher) ServiceOption {
	return func(d *serviceDeps) { d.publisher = publisher }
}

func WithLogger(logger *internal.Logger) ServiceOption {
	return func(d *serviceDeps) { d.logger = logger }
}

func WithSettings(settings Settings) ServiceOption {
	return func(d *serviceDeps) { d.settings = settings }
}

func newServiceDeps(opts []ServiceOption) serviceDeps {
	deps := serviceDeps{
		publisher: interfaces.NopPublisher{},
		settings:  DefaultSettings(),
	}
	for _, opt := range opts {
		opt(&deps)
	}
	if deps.logger == nil {
		deps.logger = internal.GetLogger()
	}
	if deps.settings.ItemsPerPage <= 0 {
		deps.settings.ItemsPerPage = DefaultSettings().ItemsPerPage
	}
	return deps
}

func (d serviceDeps) log(component internal.Component, usecase string) zerolog.Logger {
	return d.logger.Component(component).With().Str("usecase", usecase).Logger()
}

// publish hands events to the publisher. Delivery failures never undo a
// committed deletion, so they are only logged.
func (d serviceDeps) publish(ctx context.Context, events []*interfaces.Event) {
	logger := d.logger.Component(internal.ComponentNATS)
	for _, event := range events {
		if err := d.publisher.Publish(ctx, event); err != nil {
			logger.Warn().Err(err).
				Str("eventType", string(event.Type)).
				Str("eventId", event.ID).
				Msg("Failed to publish event")
		}
	}
}

// PeriodSummary is a period listing together with its totals
type PeriodSummary struct {
	Period  models.Period
	Entries []models.Entry
	Totals  Totals
	// Rest is the carry-over into the period. It is zero when not requested.
	Rest int64
}

// TransactionService answers the ledger queries and applies the deletion policy
type TransactionService struct {
	repos repositories.Repositories
	deps  serviceDeps
	rest  restCalculator
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(repos repositories.Repositories, opts ...ServiceOption) *TransactionService {
	return &TransactionService{
		repos: repos,
		deps:  newServiceDeps(opts),
		rest:  restCalculator{transactions: repos.Transactions},
	}
}

// Settings returns the settings the service runs with
func (s *TransactionService) Settings() Settings {
	return s.deps.settings
}

// AllAccounts returns the synthetic account standing for every account
func (s *TransactionService) AllAccounts() *models.Account {
	return models.NewAllAccount(s.deps.settings.AllAccountsLabel)
}

// GetTransactionsForAccountInRange lists the transactions of account between
// start and end, both days inclusive, newest first.
func (s *TransactionService) GetTransactionsForAccountInRange(ctx context.Context, account *models.Account, start, end time.Time, cfg filter.Configuration) ([]*models.Transaction, error) {
	logger := s.deps.log(internal.ComponentTransaction, "GetTransactionsForAccountInRange")

	if specifications.TransfersDegraded(account, cfg) {
		logger.Debug().Str("filter", cfg.String()).Msg("Transfers are not shown without a concrete account")
	}

	p := specifications.ForAccountInRange(start, end, account, cfg)
	logger.Debug().Stringer("predicate", p).Msg("Listing transactions")

	transactions, err := s.repos.Transactions.FindAll(ctx, p, specifications.TransactionOrdering)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list transactions")
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, nil
}

// GetTransactionsForAccountUntilDate lists everything from the ledger epoch up to end
func (s *TransactionService) GetTransactionsForAccountUntilDate(ctx context.Context, account *models.Account, end time.Time, cfg filter.Configuration) ([]*models.Transaction, error) {
	return s.GetTransactionsForAccountInRange(ctx, account, models.LedgerEpoch, end, cfg)
}

// GetTransactionsForPeriod lists one month of account. With includeRest the
// carry-over from before the month is appended as a synthetic last entry.
func (s *TransactionService) GetTransactionsForPeriod(ctx context.Context, account *models.Account, month, year int, includeRest bool, cfg filter.Configuration) ([]models.Entry, error) {
	summary, err := s.GetPeriodSummary(ctx, account, month, year, includeRest, cfg)
	if err != nil {
		return nil, err
	}
	return summary.Entries, nil
}

// GetPeriodSummary is GetTransactionsForPeriod plus the totals of the listing
func (s *TransactionService) GetPeriodSummary(ctx context.Context, account *models.Account, month, year int, includeRest bool, cfg filter.Configuration) (*PeriodSummary, error) {
	period, err := models.NewPeriod(month, year)
	if err != nil {
		return nil, err
	}

	transactions, err := s.GetTransactionsForAccountInRange(ctx, account, period.Start(), period.End(), cfg)
	if err != nil {
		return nil, err
	}

	summary := &PeriodSummary{
		Period:  period,
		Entries: make([]models.Entry, 0, len(transactions)+1),
	}
	for _, tx := range transactions {
		summary.Entries = append(summary.Entries, tx)
	}

	if includeRest {
		rest, err := s.ComputeRest(ctx, account, period.Start())
		if err != nil {
			return nil, err
		}
		summary.Rest = rest
		summary.Entries = append(summary.Entries, models.NewRestTransaction(rest, period.Start(), s.deps.settings.RestLabel))
	}

	summary.Totals = ComputeTotals(summary.Entries)
	return summary, nil
}

// ComputeRest returns the balance of account strictly before cutoff. For the
// synthetic ALL account transfers cancel out and only plain rows count.
func (s *TransactionService) ComputeRest(ctx context.Context, account *models.Account, cutoff time.Time) (int64, error) {
	logger := s.deps.log(internal.ComponentTransaction, "ComputeRest")

	rest, err := s.rest.compute(ctx, account, cutoff)
	if err != nil {
		logger.Error().Err(err).Time("cutoff", cutoff).Msg("Failed to compute carry-over")
		var id int64
		if account != nil {
			id = account.ID
		}
		return 0, &models.AccountError{ID: id, Op: "compute rest of", Err: err}
	}

	logger.Debug().Time("cutoff", cutoff).Int64("rest", rest).Msg("Computed carry-over")
	return rest, nil
}

// Search returns one page of the transactions matching search. A blank query
// is replaced by the default search, which lists everything.
func (s *TransactionService) Search(ctx context.Context, search filter.Search) (*repositories.Page[*models.Transaction], error) {
	logger := s.deps.log(internal.ComponentSearch, "Search")

	if search.IsEmptySearch() {
		search = filter.DefaultSearch.WithPage(search.Page())
	}

	page, err := repositories.NewPageRequest(search.Page(), s.deps.settings.ItemsPerPage)
	if err != nil {
		return nil, err
	}

	p := specifications.ForSearch(search)
	logger.Debug().Str("search", search.String()).Stringer("predicate", p).Msg("Searching transactions")

	result, err := s.repos.Transactions.FindPage(ctx, p, specifications.TransactionOrdering, page)
	if err != nil {
		logger.Error().Err(err).Msg("Search failed")
		return nil, fmt.Errorf("failed to search transactions: %w", err)
	}
	return result, nil
}

// IsDeletable reports whether the deletion policy allows deleting id
func (s *TransactionService) IsDeletable(ctx context.Context, id int64) (bool, error) {
	tx, err := s.repos.Transactions.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return !tx.Category.IsRest(), nil
}

// DeleteTransaction deletes one stored transaction. Deleting a repeating
// transaction deletes its whole recurrence.
func (s *TransactionService) DeleteTransaction(ctx context.Context, id int64) error {
	logger := s.deps.log(internal.ComponentTransaction, "DeleteTransaction").With().Int64("transactionId", id).Logger()

	events, err := s.runDeletion(ctx, logger, func(ctx context.Context, d *deleter) error {
		return d.deleteOne(ctx, id, false)
	})
	if err != nil {
		logger.Warn().Err(err).Msg("Transaction not deleted")
		return err
	}

	s.deps.publish(ctx, events)
	return nil
}

// DeleteTransactionsForAccount deletes every transaction of account and every
// transfer into it. The synthetic ALL account is refused.
func (s *TransactionService) DeleteTransactionsForAccount(ctx context.Context, account *models.Account) error {
	logger := s.deps.log(internal.ComponentTransaction, "DeleteTransactionsForAccount")

	events, err := s.runDeletion(ctx, logger, func(ctx context.Context, d *deleter) error {
		return d.deleteForAccount(ctx, account)
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to delete transactions of account")
		return err
	}

	s.deps.publish(ctx, events)
	return nil
}

// DeleteAll empties the ledger of transactions and recurrences
func (s *TransactionService) DeleteAll(ctx context.Context) error {
	logger := s.deps.log(internal.ComponentTransaction, "DeleteAll")

	var deleted int
	events, err := s.runDeletion(ctx, logger, func(ctx context.Context, d *deleter) error {
		n, err := d.deleteMatching(ctx, specifications.Everything())
		deleted = n
		return err
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to reset ledger")
		return fmt.Errorf("failed to delete all transactions: %w", err)
	}

	logger.Info().Int("deleted", deleted).Msg("Ledger reset")
	s.deps.publish(ctx, append(events, interfaces.NewEvent(interfaces.EventTypeLedgerReset, eventSource).
		WithData("deleted", deleted)))
	return nil
}

// runDeletion runs fn inside the unit of work when one is configured. The
// per-row events are discarded when the work is rolled back.
func (s *TransactionService) runDeletion(ctx context.Context, logger zerolog.Logger, fn func(context.Context, *deleter) error) ([]*interfaces.Event, error) {
	return runDeletion(ctx, s.repos, s.deps, logger, func(ctx context.Context, d *deleter, _ repositories.Repositories) error {
		return fn(ctx, d)
	})
}

func runDeletion(ctx context.Context, repos repositories.Repositories, deps serviceDeps, logger zerolog.Logger, fn func(context.Context, *deleter, repositories.Repositories) error) ([]*interfaces.Event, error) {
	build := func(r repositories.Repositories) *deleter {
		return &deleter{
			transactions: r.Transactions,
			options:      r.RepeatingOptions,
			strict:       deps.settings.StrictDelete,
			logger:       logger,
		}
	}

	if deps.uow == nil {
		d := build(repos)
		if err := fn(ctx, d, repos); err != nil {
			return nil, err
		}
		return d.events, nil
	}

	var events []*interfaces.Event
	err := deps.uow.RunInTransaction(ctx, func(ctx context.Context, txRepos repositories.Repositories) error {
		d := build(txRepos)
		if err := fn(ctx, d, txRepos); err != nil {
			return err
		}
		events = d.events
		return nil
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

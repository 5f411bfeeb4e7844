package usecases

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/firedragon-ledger/domain/models"
	"github.com/ZanzyTHEbar/firedragon-ledger/domain/repositories"
	"github.com/ZanzyTHEbar/firedragon-ledger/interfaces"
	"github.com/ZanzyTHEbar/firedragon-ledger/internal"
)

// AllAccountsID selects the synthetic ALL account wherever an account ID is expected
const AllAccountsID int64 = 0

// AccountService manages accounts and their lifecycle
type AccountService struct {
	repos repositories.Repositories
	deps  serviceDeps
}

// NewAccountService creates a new AccountService
func NewAccountService(repos repositories.Repositories, opts ...ServiceOption) *AccountService {
	return &AccountService{
		repos: repos,
		deps:  newServiceDeps(opts),
	}
}

// ResolveAccount loads an account by ID. AllAccountsID yields the synthetic ALL account.
func (s *AccountService) ResolveAccount(ctx context.Context, id int64) (*models.Account, error) {
	if id == AllAccountsID {
		return models.NewAllAccount(s.deps.settings.AllAccountsLabel), nil
	}
	account, err := s.repos.Accounts.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve account: %w", err)
	}
	return account, nil
}

// ListAccounts returns the real accounts, preceded by the ALL account when includeAll is set
func (s *AccountService) ListAccounts(ctx context.Context, includeAll bool) ([]*models.Account, error) {
	accounts, err := s.repos.Accounts.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if !includeAll {
		return accounts, nil
	}
	return append([]*models.Account{models.NewAllAccount(s.deps.settings.AllAccountsLabel)}, accounts...), nil
}

// DeleteAccount removes every transaction of the account, every transfer into
// it and finally the account itself. With a unit of work the steps commit together.
func (s *AccountService) DeleteAccount(ctx context.Context, id int64) error {
	logger := s.deps.log(internal.ComponentStorage, "DeleteAccount").With().Int64("accountId", id).Logger()

	if id == AllAccountsID {
		return &models.AccountError{ID: id, Op: "delete", Err: models.ErrSyntheticAccount}
	}

	events, err := runDeletion(ctx, s.repos, s.deps, logger, func(ctx context.Context, d *deleter, repos repositories.Repositories) error {
		account, err := repos.Accounts.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := d.deleteForAccount(ctx, account); err != nil {
			return err
		}
		if err := repos.Accounts.Delete(ctx, id); err != nil {
			return err
		}
		d.events = append(d.events, interfaces.NewEvent(interfaces.EventTypeAccountDeleted, eventSource).
			WithData("accountId", id).
			WithData("name", account.Name))
		return nil
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to delete account")
		return err
	}

	logger.Info().Msg("Account deleted")
	s.deps.publish(ctx, events)
	return nil
}

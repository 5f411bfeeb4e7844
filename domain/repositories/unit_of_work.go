package repositories

import (
	"context"
)

// Repositories bundles the repositories of one storage backend. Inside a unit
// of work they all share the same storage transaction.
type Repositories struct {
	Transactions     TransactionRepository
	Accounts         AccountRepository
	Categories       CategoryRepository
	Tags             TagRepository
	RepeatingOptions RepeatingOptionRepository
}

// UnitOfWork represents a transactional unit of work
type UnitOfWork interface {
	// RunInTransaction executes fn with repositories bound to one storage
	// transaction, committing when fn returns nil and rolling back otherwise
	RunInTransaction(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

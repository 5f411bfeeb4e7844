package repositories

import (
	"context"

	"github.com/ZanzyTHEbar/firedragon-ledger/domain/models"
	"github.com/ZanzyTHEbar/firedragon-ledger/domain/predicate"
)

// TransactionRepository is the query executor for stored transactions. It
// accepts predicate trees and lowers them to its own query language.
type TransactionRepository interface {
	// FindByID finds a transaction by ID, returning models.ErrTransactionNotFound when absent
	FindByID(ctx context.Context, id int64) (*models.Transaction, error)

	// FindAll returns every transaction matching p, sorted by order
	FindAll(ctx context.Context, p predicate.Predicate, order predicate.Ordering) ([]*models.Transaction, error)

	// FindPage returns one page of the transactions matching p, sorted by order
	FindPage(ctx context.Context, p predicate.Predicate, order predicate.Ordering, page PageRequest) (*Page[*models.Transaction], error)

	// SumAmount sums the amounts of the transactions matching p. ok is false
	// when nothing matched.
	SumAmount(ctx context.Context, p predicate.Predicate) (sum int64, ok bool, err error)

	// Create stores a new transaction and assigns its ID
	Create(ctx context.Context, transaction *models.Transaction) error

	// Delete deletes a transaction by ID
	Delete(ctx context.Context, id int64) error
}

package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/ZanzyTHEbar/firedragon-ledger/domain/models"
	"github.com/ZanzyTHEbar/firedragon-ledger/domain/predicate"
	"github.com/ZanzyTHEbar/firedragon-ledger/domain/repositories"
	"github.com/ZanzyTHEbar/firedragon-ledger/domain/specifications"
)

// TransactionRepository is an in-memory implementation of repositories.TransactionRepository
type TransactionRepository struct {
	store *Store
}

// FindByID finds a transaction by ID
func (r *TransactionRepository) FindByID(ctx context.Context, id int64) (*models.Transaction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	row, ok := r.store.data.transactions[id]
	if !ok {
		return nil, &models.TransactionError{ID: id, Op: "find", Err: models.ErrTransactionNotFound}
	}
	return r.store.hydrate(row), nil
}

// FindAll returns every transaction matching p, sorted by order
func (r *TransactionRepository) FindAll(ctx context.Context, p predicate.Predicate, order predicate.Ordering) ([]*models.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.match(p, order), nil
}

// FindPage returns one page of the transactions matching p
func (r *TransactionRepository) FindPage(ctx context.Context, p predicate.Predicate, order predicate.Ordering, page repositories.PageRequest) (*repositories.Page[*models.Transaction], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	matched := r.match(p, order)
	r.store.mu.RUnlock()

	from := min(page.Offset(), len(matched))
	to := from + min(max(page.Size, 0), len(matched)-from)

	return &repositories.Page[*models.Transaction]{
		Items:      matched[from:to],
		Number:     page.Number,
		Size:       page.Size,
		TotalItems: len(matched),
	}, nil
}

// SumAmount sums the amounts of the transactions matching p
func (r *TransactionRepository) SumAmount(ctx context.Context, p predicate.Predicate) (int64, bool, error) {
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var sum int64
	var matched bool
	for _, id := range sortedKeys(r.store.data.transactions) {
		tx := r.store.hydrate(r.store.data.transactions[id])
		if specifications.Matches(p, tx) {
			sum += tx.Amount
			matched = true
		}
	}
	return sum, matched, nil
}

// Create stores a new transaction and assigns its ID
func (r *TransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	if err := tx.Validate(); err != nil {
		return fmt.Errorf("invalid transaction: %w", err)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	row := transactionRow{
		amount:      tx.Amount,
		date:        models.TruncateDay(tx.Date),
		name:        tx.Name,
		description: tx.Description,
		accountID:   tx.Account.ID,
		categoryID:  tx.Category.ID,
		tagIDs:      models.TagIDs(tx.Tags),
	}

	if _, ok := r.store.data.accounts[row.accountID]; !ok {
		return &models.AccountError{ID: row.accountID, Op: "reference", Err: models.ErrAccountNotFound}
	}
	if _, ok := r.store.data.categories[row.categoryID]; !ok {
		return fmt.Errorf("category %d: %w", row.categoryID, models.ErrCategoryNotFound)
	}
	for _, id := range row.tagIDs {
		if _, ok := r.store.data.tags[id]; !ok {
			return fmt.Errorf("tag %d: %w", id, models.ErrTagNotFound)
		}
	}
	if tx.RepeatingOption != nil {
		row.optionID = tx.RepeatingOption.ID
		if _, ok := r.store.data.options[row.optionID]; !ok {
			return fmt.Errorf("repeating option %d: %w", row.optionID, models.ErrRepeatingOptionNotFound)
		}
	}
	if tx.TransferAccount != nil {
		row.transferAccount = tx.TransferAccount.ID
		if _, ok := r.store.data.accounts[row.transferAccount]; !ok {
			return &models.AccountError{ID: row.transferAccount, Op: "reference", Err: models.ErrAccountNotFound}
		}
	}

	row.id = r.store.assignID(tableTransactions)
	r.store.data.transactions[row.id] = row
	tx.ID = row.id

	return nil
}

// Delete deletes a transaction by ID
func (r *TransactionRepository) Delete(ctx context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.data.transactions[id]; !ok {
		return &models.TransactionError{ID: id, Op: "delete", Err: models.ErrTransactionNotFound}
	}
	r.store.touch()
	delete(r.store.data.transactions, id)
	return nil
}

// match must be called with mu held for reading
func (r *TransactionRepository) match(p predicate.Predicate, order predicate.Ordering) []*models.Transaction {
	matched := make([]*models.Transaction, 0)
	for _, id := range sortedKeys(r.store.data.transactions) {
		tx := r.store.hydrate(r.store.data.transactions[id])
		if specifications.Matches(p, tx) {
			matched = append(matched, tx)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return order.Less(specifications.TransactionRecord{Transaction: matched[i]},
			specifications.TransactionRecord{Transaction: matched[j]})
	})

	return slices.Clip(matched)
}

// Package memory is an in-process executor for ledger predicates. Rows are
// kept normalized like database tables and predicates run through
// predicate.Evaluate.
package memory

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/ZanzyTHEbar/firedragon-ledger/domain/models"
	"github.com/ZanzyTHEbar/firedragon-ledger/domain/repositories"
)

type transactionRow struct {
	id              int64
	amount          int64
	date            time.Time
	name            string
	description     string
	accountID       int64
	categoryID      int64
	tagIDs          []int64
	optionID        int64
	transferAccount int64
}

type table string

const (
	tableAccounts     table = "accounts"
	tableCategories   table = "categories"
	tableTags         table = "tags"
	tableOptions      table = "repeating_options"
	tableTransactions table = "transactions"
)

// ErrConflict is returned when a unit of work cannot commit because the store
// was written outside of it in the meantime
var ErrConflict = errors.New("memory store changed outside the unit of work")

type state struct {
	// version counts committed writes
	version      uint64
	sequences    map[table]int64
	accounts     map[int64]models.Account
	categories   map[int64]models.Category
	tags         map[int64]models.Tag
	options      map[int64]models.RepeatingOption
	transactions map[int64]transactionRow
}

func (s *state) clone() *state {
	return &state{
		version:      s.version,
		sequences:    maps.Clone(s.sequences),
		accounts:     maps.Clone(s.accounts),
		categories:   maps.Clone(s.categories),
		tags:         maps.Clone(s.tags),
		options:      maps.Clone(s.options),
		transactions: maps.Clone(s.transactions),
	}
}

// Store holds every table of the in-memory ledger
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	data *state
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		data: &state{
			sequences:    make(map[table]int64),
			accounts:     make(map[int64]models.Account),
			categories:   make(map[int64]models.Category),
			tags:         make(map[int64]models.Tag),
			options:      make(map[int64]models.RepeatingOption),
			transactions: make(map[int64]transactionRow),
		},
	}
}

// Repositories returns the repositories backed by the store
func (s *Store) Repositories() repositories.Repositories {
	return repositories.Repositories{
		Transactions:     &TransactionRepository{store: s},
		Accounts:         &AccountRepository{store: s},
		Categories:       &CategoryRepository{store: s},
		Tags:             &TagRepository{store: s},
		RepeatingOptions: &RepeatingOptionRepository{store: s},
	}
}

// RunInTransaction runs fn against a private copy of the store and swaps the
// copy in when fn succeeds, so readers never see uncommitted changes. Units of
// work are serialized. A write made through the store itself while fn runs
// fails the commit with ErrConflict.
func (s *Store) RunInTransaction(ctx context.Context, fn func(ctx context.Context, repos repositories.Repositories) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	baseVersion := s.data.version
	work := &Store{data: s.data.clone()}
	s.mu.RUnlock()

	if err := fn(ctx, work.Repositories()); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data.version != baseVersion {
		return ErrConflict
	}
	s.data = work.data
	return nil
}

// touch records a write, with mu held for writing
func (s *Store) touch() {
	s.data.version++
}

// assignID must be called with mu held for writing
func (s *Store) assignID(t table) int64 {
	s.touch()
	s.data.sequences[t]++
	return s.data.sequences[t]
}

// hydrate resolves a row into a transaction, with mu held for reading
func (s *Store) hydrate(row transactionRow) *models.Transaction {
	tx := &models.Transaction{
		ID:          row.id,
		Amount:      row.amount,
		Date:        row.date,
		Name:        row.name,
		Description: row.description,
		Tags:        make([]*models.Tag, 0, len(row.tagIDs)),
	}

	if account, ok := s.data.accounts[row.accountID]; ok {
		tx.Account = &account
	}
	if category, ok := s.data.categories[row.categoryID]; ok {
		tx.Category = &category
	}
	for _, id := range row.tagIDs {
		if tag, ok := s.data.tags[id]; ok {
			tx.Tags = append(tx.Tags, &tag)
		}
	}
	if option, ok := s.data.options[row.optionID]; ok {
		tx.RepeatingOption = &option
	}
	if account, ok := s.data.accounts[row.transferAccount]; ok {
		tx.TransferAccount = &account
	}

	return tx
}

func sortedKeys[V any](m map[int64]V) []int64 {
	return slices.Sorted(maps.Keys(m))
}

package models

import (
	"strings"
	"time"
)

// Entry is a row of a ledger listing. It is either a stored *Transaction or the
// synthetic *RestTransaction carrying the carry-over balance of earlier periods.
type Entry interface {
	EntryAmount() int64
	EntryDate() time.Time
	EntryName() string
	EntryCategory() *Category
	EntryTags() []*Tag

	// Stored returns the persisted transaction behind the entry, if any
	Stored() (*Transaction, bool)

	ledgerEntry()
}

// Transaction represents a stored money movement. Amounts are signed minor
// currency units: strictly positive is income, zero or negative is expenditure.
type Transaction struct {
	ID              int64            `json:"id"`
	Amount          int64            `json:"amount"`
	Date            time.Time        `json:"date"`
	Name            string           `json:"name"`
	Description     string           `json:"description,omitempty"`
	Account         *Account         `json:"account"`
	Category        *Category        `json:"category"`
	Tags            []*Tag           `json:"tags"`
	RepeatingOption *RepeatingOption `json:"repeatingOption,omitempty"`
	TransferAccount *Account         `json:"transferAccount,omitempty"`
}

// NewTransaction creates a new transaction. The date is truncated to the day.
func NewTransaction(amount int64, date time.Time, name string, account *Account, category *Category) *Transaction {
	return &Transaction{
		Amount:   amount,
		Date:     TruncateDay(date),
		Name:     strings.TrimSpace(name),
		Account:  account,
		Category: category,
		Tags:     []*Tag{},
	}
}

// IsTransfer reports whether the transaction moves money to another account
func (t *Transaction) IsTransfer() bool {
	return t.TransferAccount != nil
}

// IsRepeating reports whether the transaction belongs to a recurrence
func (t *Transaction) IsRepeating() bool {
	return t.RepeatingOption != nil
}

// IsIncome reports whether the amount is strictly positive
func (t *Transaction) IsIncome() bool {
	return t.Amount > 0
}

// HasTag reports whether a tag with the given ID is attached
func (t *Transaction) HasTag(id int64) bool {
	for _, tag := range t.Tags {
		if tag.ID == id {
			return true
		}
	}
	return false
}

// Validate checks if the transaction may be persisted
func (t *Transaction) Validate() error {
	if t.Name == "" {
		return ErrMissingTransactionName
	}

	if t.Date.IsZero() {
		return ErrMissingDate
	}

	if t.Account == nil {
		return ErrMissingAccount
	}
	if t.Account.IsAll() {
		return ErrSyntheticAccount
	}

	if t.Category == nil {
		return ErrMissingCategory
	}
	if t.Category.IsRest() {
		return ErrRestCategoryReserved
	}

	if t.TransferAccount != nil {
		if t.TransferAccount.IsAll() {
			return ErrSyntheticAccount
		}
		if t.TransferAccount.ID == t.Account.ID {
			return ErrSameAccount
		}
	}

	return nil
}

func (t *Transaction) EntryAmount() int64           { return t.Amount }
func (t *Transaction) EntryDate() time.Time         { return t.Date }
func (t *Transaction) EntryName() string            { return t.Name }
func (t *Transaction) EntryCategory() *Category     { return t.Category }
func (t *Transaction) EntryTags() []*Tag            { return t.Tags }
func (t *Transaction) Stored() (*Transaction, bool) { return t, true }
func (t *Transaction) ledgerEntry()                 {}

// RestTransaction is the synthetic carry-over entry of a period. It has no ID
// and no tags, and there is no way to hand it to a delete or update path.
type RestTransaction struct {
	Amount   int64     `json:"amount"`
	Date     time.Time `json:"date"`
	Name     string    `json:"name"`
	Category *Category `json:"category"`
}

// NewRestTransaction creates the carry-over entry dated on the first day of a period
func NewRestTransaction(amount int64, periodStart time.Time, label string) *RestTransaction {
	return &RestTransaction{
		Amount:   amount,
		Date:     TruncateDay(periodStart),
		Name:     label,
		Category: RestCategory(label),
	}
}

func (r *RestTransaction) EntryAmount() int64           { return r.Amount }
func (r *RestTransaction) EntryDate() time.Time         { return r.Date }
func (r *RestTransaction) EntryName() string            { return r.Name }
func (r *RestTransaction) EntryCategory() *Category     { return r.Category }
func (r *RestTransaction) EntryTags() []*Tag            { return []*Tag{} }
func (r *RestTransaction) Stored() (*Transaction, bool) { return nil, false }
func (r *RestTransaction) ledgerEntry()                 {}

// StoredTransactions filters the stored transactions out of a listing
func StoredTransactions(entries []Entry) []*Transaction {
	stored := make([]*Transaction, 0, len(entries))
	for _, entry := range entries {
		if tx, ok := entry.Stored(); ok {
			stored = append(stored, tx)
		}
	}
	return stored
}

// Package ledgertest provides the reference ledger shared by the query,
// storage and service tests.
package ledgertest

import (
	"context"
	"fmt"
	"time"

	"github.com/ZanzyTHEbar/firedragon-ledger/domain/models"
	"github.com/ZanzyTHEbar/firedragon-ledger/domain/repositories"
)

// Ledger is the reference data set:
//
//	Transaction1          2018-10-03   +200  account   Category1  tag MyAwesomeTag
//	Transaction2          2018-11-03   -525  account   xxx
//	Repeating             2018-03-13 -12300  account   Category1  tag TagMaster_2, repeating
//	TransferTransaction   2018-08-03   -500  account   xxx        transfer to Account2
type Ledger struct {
	Account   *models.Account
	Account2  *models.Account
	Category1 *models.Category
	Category2 *models.Category
	Tag1      *models.Tag
	Tag2      *models.Tag
	Option    *models.RepeatingOption

	Transaction1 *models.Transaction
	Transaction2 *models.Transaction
	Repeating    *models.Transaction
	Transfer     *models.Transaction
}

func newLedger() *Ledger {
	l := &Ledger{
		Account:   models.NewAccount("TestAccount"),
		Account2:  models.NewAccount("TestAccount2"),
		Category1: models.NewCategory("Category1", "#ff0000"),
		Category2: models.NewCategory("xxx", "#ff0000"),
		Tag1:      models.NewTag("MyAwesomeTag"),
		Tag2:      models.NewTag("TagMaster_2"),
	}

	repeatingDate := models.Day(2018, time.March, 13)
	l.Option = models.NewRepeatingOption(repeatingDate, models.RepeatingModifierDays, 10)
	l.Option.EndType = models.RepeatingEndAfterXTimes
	l.Option.EndValue = "2"

	l.Transaction1 = models.NewTransaction(200, models.Day(2018, time.October, 3), "Test", l.Account, l.Category1)
	l.Transaction1.Description = "Random Whatever"
	l.Transaction1.Tags = []*models.Tag{l.Tag1}

	l.Transaction2 = models.NewTransaction(-525, models.Day(2018, time.November, 3), "lalala", l.Account, l.Category2)

	l.Repeating = models.NewTransaction(-12300, repeatingDate, "Repeating", l.Account, l.Category1)
	l.Repeating.RepeatingOption = l.Option
	l.Repeating.Tags = []*models.Tag{l.Tag2}

	l.Transfer = models.NewTransaction(-500, models.Day(2018, time.August, 3), "TransferTransaction", l.Account, l.Category2)
	l.Transfer.TransferAccount = l.Account2

	return l
}

// Build returns the reference ledger with IDs assigned in creation order, as a
// fresh store would assign them.
func Build() *Ledger {
	l := newLedger()
	l.Account.ID, l.Account2.ID = 1, 2
	l.Category1.ID, l.Category2.ID = 1, 2
	l.Tag1.ID, l.Tag2.ID = 1, 2
	l.Option.ID = 1
	for i, tx := range l.Transactions() {
		tx.ID = int64(i + 1)
	}
	return l
}

// Seed stores the reference ledger through repos
func Seed(ctx context.Context, repos repositories.Repositories) (*Ledger, error) {
	l := newLedger()

	for _, account := range []*models.Account{l.Account, l.Account2} {
		if err := repos.Accounts.Create(ctx, account); err != nil {
			return nil, fmt.Errorf("seed account %s: %w", account.Name, err)
		}
	}
	for _, category := range []*models.Category{l.Category1, l.Category2} {
		if err := repos.Categories.Create(ctx, category); err != nil {
			return nil, fmt.Errorf("seed category %s: %w", category.Name, err)
		}
	}
	for _, tag := range []*models.Tag{l.Tag1, l.Tag2} {
		if err := repos.Tags.Create(ctx, tag); err != nil {
			return nil, fmt.Errorf("seed tag %s: %w", tag.Name, err)
		}
	}
	if err := repos.RepeatingOptions.Create(ctx, l.Option); err != nil {
		return nil, fmt.Errorf("seed repeating option: %w", err)
	}
	for _, tx := range l.Transactions() {
		if err := repos.Transactions.Create(ctx, tx); err != nil {
			return nil, fmt.Errorf("seed transaction %s: %w", tx.Name, err)
		}
	}

	return l, nil
}

// Transactions returns the stored transactions in creation order
func (l *Ledger) Transactions() []*models.Transaction {
	return []*models.Transaction{l.Transaction1, l.Transaction2, l.Repeating, l.Transfer}
}

// IDs returns the IDs of the transactions in order
func IDs(transactions []*models.Transaction) []int64 {
	ids := make([]int64, 0, len(transactions))
	for _, tx := range transactions {
		ids = append(ids, tx.ID)
	}
	return ids
}

// Contains reports whether a transaction with the ID of want is in transactions
func Contains(transactions []*models.Transaction, want *models.Transaction) bool {
	for _, tx := range transactions {
		if tx.ID == want.ID {
			return true
		}
	}
	return false
}

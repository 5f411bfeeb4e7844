package models

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNewTransaction(t *testing.T) {
	account := &Account{ID: 1, Name: "Default", Type: AccountTypeNormal}
	category := &Category{ID: 1, Name: "Food", Type: CategoryTypeCustom}
	date := time.Date(2018, time.October, 3, 17, 45, 0, 0, time.UTC)

	tx := NewTransaction(-1250, date, " Lunch ", account, category)

	if !tx.Date.Equal(Day(2018, time.October, 3)) {
		t.Errorf("Expected date to be truncated to the day, got %v", tx.Date)
	}
	if tx.Name != "Lunch" {
		t.Errorf("Expected name 'Lunch', got '%s'", tx.Name)
	}
	if tx.Tags == nil {
		t.Error("Expected tags to be an empty slice, got nil")
	}
	if tx.IsIncome() || tx.IsTransfer() || tx.IsRepeating() {
		t.Error("Expected a plain expenditure")
	}
}

func TestTransaction_Validate(t *testing.T) {
	account := &Account{ID: 1, Name: "Default", Type: AccountTypeNormal}
	other := &Account{ID: 2, Name: "Savings", Type: AccountTypeCustom}
	category := &Category{ID: 1, Name: "Food", Type: CategoryTypeCustom}
	date := Day(2018, time.October, 3)

	valid := func() *Transaction {
		return NewTransaction(200, date, "Test", account, category)
	}

	tests := []struct {
		name    string
		mutate  func(tx *Transaction)
		errType error
	}{
		{name: "Valid", mutate: func(tx *Transaction) {}},
		{name: "Valid Transfer", mutate: func(tx *Transaction) { tx.TransferAccount = other }},
		{name: "Missing Name", mutate: func(tx *Transaction) { tx.Name = "" }, errType: ErrMissingTransactionName},
		{name: "Missing Date", mutate: func(tx *Transaction) { tx.Date = time.Time{} }, errType: ErrMissingDate},
		{name: "Missing Account", mutate: func(tx *Transaction) { tx.Account = nil }, errType: ErrMissingAccount},
		{name: "ALL Account", mutate: func(tx *Transaction) { tx.Account = NewAllAccount("All") }, errType: ErrSyntheticAccount},
		{name: "Missing Category", mutate: func(tx *Transaction) { tx.Category = nil }, errType: ErrMissingCategory},
		{name: "Rest Category", mutate: func(tx *Transaction) { tx.Category = RestCategory("Rest") }, errType: ErrRestCategoryReserved},
		{name: "Transfer To Itself", mutate: func(tx *Transaction) { tx.TransferAccount = account }, errType: ErrSameAccount},
		{name: "Transfer To ALL", mutate: func(tx *Transaction) { tx.TransferAccount = NewAllAccount("All") }, errType: ErrSyntheticAccount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := valid()
			tt.mutate(tx)
			err := tx.Validate()
			if tt.errType == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.errType) {
				t.Errorf("Validate() error = %v, want %v", err, tt.errType)
			}
		})
	}
}

func TestEntryVariants(t *testing.T) {
	account := &Account{ID: 1, Name: "Default", Type: AccountTypeNormal}
	category := &Category{ID: 1, Name: "Food", Type: CategoryTypeCustom}
	stored := NewTransaction(200, Day(2018, time.October, 3), "Test", account, category)
	stored.ID = 7
	rest := NewRestTransaction(-300, Day(2018, time.October, 1), "Rest")

	entries := []Entry{stored, rest}

	if tx, ok := entries[0].Stored(); !ok || tx.ID != 7 {
		t.Errorf("Expected stored entry to expose transaction 7, got %v, %v", tx, ok)
	}
	if _, ok := entries[1].Stored(); ok {
		t.Error("Expected rest entry not to expose a stored transaction")
	}
	if !rest.EntryCategory().IsRest() {
		t.Error("Expected rest entry to carry the REST category")
	}
	if len(rest.EntryTags()) != 0 {
		t.Errorf("Expected rest entry to have no tags, got %d", len(rest.EntryTags()))
	}

	storedOnly := StoredTransactions(entries)
	if len(storedOnly) != 1 || storedOnly[0] != stored {
		t.Errorf("StoredTransactions() = %v, want only the stored transaction", storedOnly)
	}
}

func TestIllegalDelete(t *testing.T) {
	err := IllegalDelete(42, ErrTransactionNotFound)

	if !errors.Is(err, ErrIllegalDelete) {
		t.Error("Expected error to match ErrIllegalDelete")
	}
	if !errors.Is(err, ErrTransactionNotFound) {
		t.Error("Expected error to match its cause")
	}

	var txErr *TransactionError
	if !errors.As(err, &txErr) || txErr.ID != 42 {
		t.Fatalf("Expected a TransactionError for ID 42, got %v", err)
	}
	if !strings.Contains(err.Error(), "42") {
		t.Errorf("Expected error message to name the transaction ID, got %q", err.Error())
	}
}

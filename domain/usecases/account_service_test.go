package usecases

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/ZanzyTHEbar/firedragon-ledger/domain/models"
	"github.com/ZanzyTHEbar/firedragon-ledger/interfaces"
)

func TestDeleteAccount(t *testing.T) {
	f := newFixture(t, DefaultSettings())
	l := f.ledger
	accounts := NewAccountService(f.store.Repositories(), WithUnitOfWork(f.store), WithPublisher(f.publisher))

	if err := accounts.DeleteAccount(context.Background(), l.Account2.ID); err != nil {
		t.Fatalf("DeleteAccount() unexpected error: %v", err)
	}

	if _, err := f.store.Repositories().Accounts.FindByID(context.Background(), l.Account2.ID); !errors.Is(err, models.ErrAccountNotFound) {
		t.Errorf("Expected the account to be gone, got %v", err)
	}
	want := []int64{l.Transaction1.ID, l.Transaction2.ID, l.Repeating.ID}
	if got := f.remainingIDs(t); !slices.Equal(got, want) {
		t.Errorf("remaining = %v, want %v", got, want)
	}

	types := f.publisher.types()
	if !slices.Contains(types, interfaces.EventTypeAccountPurged) || !slices.Contains(types, interfaces.EventTypeAccountDeleted) {
		t.Errorf("events = %v", types)
	}
}

func TestDeleteAccount_Errors(t *testing.T) {
	tests := []struct {
		name    string
		id      int64
		wantErr error
	}{
		{name: "synthetic", id: AllAccountsID, wantErr: models.ErrSyntheticAccount},
		{name: "absent", id: 9, wantErr: models.ErrAccountNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, DefaultSettings())
			accounts := NewAccountService(f.store.Repositories(), WithUnitOfWork(f.store))

			err := accounts.DeleteAccount(context.Background(), tt.id)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("DeleteAccount() error = %v, want %v", err, tt.wantErr)
			}
			if got := f.remainingIDs(t); len(got) != 4 {
				t.Errorf("Expected the ledger untouched, got %v", got)
			}
		})
	}
}

func TestListAccounts(t *testing.T) {
	f := newFixture(t, DefaultSettings())
	accounts := NewAccountService(f.store.Repositories())

	got, err := accounts.ListAccounts(context.Background(), true)
	if err != nil {
		t.Fatalf("ListAccounts() unexpected error: %v", err)
	}
	if len(got) != 3 || !got[0].IsAll() {
		t.Fatalf("ListAccounts() = %v, want the ALL account first and two real ones", got)
	}
	if got[0].Name != "All accounts" {
		t.Errorf("ALL label = %q", got[0].Name)
	}

	all, err := accounts.ResolveAccount(context.Background(), AllAccountsID)
	if err != nil || !all.IsAll() {
		t.Errorf("ResolveAccount(AllAccountsID) = %v, %v", all, err)
	}
}

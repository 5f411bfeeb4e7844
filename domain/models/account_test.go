package models

import (
	"errors"
	"testing"
)

func TestNewAccount(t *testing.T) {
	account := NewAccount(" Savings ")

	if account.Name != "Savings" {
		t.Errorf("Expected account name to be 'Savings', but got '%s'", account.Name)
	}
	if account.Type != AccountTypeCustom {
		t.Errorf("Expected account type to be '%s', but got '%s'", AccountTypeCustom, account.Type)
	}
	if account.IsAll() {
		t.Error("Expected custom account not to be the ALL account")
	}
	if !NewAllAccount("All accounts").IsAll() {
		t.Error("Expected NewAllAccount to build the ALL account")
	}
}

func TestAccount_Validate(t *testing.T) {
	tests := []struct {
		name    string
		account *Account
		errType error
	}{
		{name: "Valid Normal Account", account: &Account{ID: 1, Name: "Default", Type: AccountTypeNormal}},
		{name: "Valid Custom Account", account: &Account{ID: 2, Name: "Cash", Type: AccountTypeCustom}},
		{name: "Missing Name", account: &Account{ID: 3, Type: AccountTypeCustom}, errType: ErrMissingAccountName},
		{name: "Synthetic Account", account: NewAllAccount("All"), errType: ErrSyntheticAccount},
		{name: "Invalid Type", account: &Account{ID: 4, Name: "Broken", Type: "bank"}, errType: ErrInvalidAccountType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.account.Validate()
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

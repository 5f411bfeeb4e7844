package models

import (
	"strings"
	"time"
)

// AccountType defines the type of account
type AccountType string

const (
	// AccountTypeNormal represents the default account created on first start
	AccountTypeNormal AccountType = "NORMAL"

	// AccountTypeCustom represents a user created account
	AccountTypeCustom AccountType = "CUSTOM"

	// AccountTypeAll represents the synthetic union of every real account.
	// It never owns stored transactions.
	AccountTypeAll AccountType = "ALL"
)

// Account represents a ledger account
type Account struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	Type      AccountType `json:"type"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// NewAccount creates a new custom account. The ID is assigned by storage.
func NewAccount(name string) *Account {
	now := time.Now()
	return &Account{
		Name:      strings.TrimSpace(name),
		Type:      AccountTypeCustom,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewAllAccount creates the synthetic pseudo-account used for the "all accounts" view
func NewAllAccount(label string) *Account {
	return &Account{
		Name: label,
		Type: AccountTypeAll,
	}
}

// IsAll reports whether the account is the synthetic ALL account
func (a *Account) IsAll() bool {
	return a != nil && a.Type == AccountTypeAll
}

// Validate checks if the account is valid
func (a *Account) Validate() error {
	if a.Name == "" {
		return ErrMissingAccountName
	}

	switch a.Type {
	case AccountTypeNormal, AccountTypeCustom:
		return nil
	case AccountTypeAll:
		return ErrSyntheticAccount
	default:
		return ErrInvalidAccountType
	}
}

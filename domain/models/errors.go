package models

import (
	"errors"
	"fmt"
)

// Domain error types
var (
	// Transaction errors
	// ErrMissingTransactionName is returned when a transaction has no name
	ErrMissingTransactionName = errors.New("transaction must have a name")

	// ErrMissingDate is returned when a transaction has no date
	ErrMissingDate = errors.New("transaction must have a date")

	// ErrMissingAccount is returned when a transaction has no account
	ErrMissingAccount = errors.New("transaction must have an account")

	// ErrMissingCategory is returned when a transaction has no category
	ErrMissingCategory = errors.New("transaction must have a category")

	// ErrRestCategoryReserved is returned when a stored transaction would carry the REST category
	ErrRestCategoryReserved = errors.New("category REST is reserved for carry-over entries")

	// ErrSameAccount is returned when a transfer has the same source and destination account
	ErrSameAccount = errors.New("transfer cannot have the same source and destination account")

	// ErrTransactionNotFound is returned when a transaction is not found
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrIllegalDelete is returned when a delete targets a carry-over entry or an absent transaction
	ErrIllegalDelete = errors.New("illegal delete")

	// ErrRepeatingOptionNotFound is returned when a recurrence definition is not found
	ErrRepeatingOptionNotFound = errors.New("repeating option not found")

	// Account errors
	// ErrMissingAccountName is returned when an account has no name
	ErrMissingAccountName = errors.New("account must have a name")

	// ErrInvalidAccountType is returned when an account has an invalid type
	ErrInvalidAccountType = errors.New("invalid account type")

	// ErrSyntheticAccount is returned when the ALL pseudo-account is used where a real account is required
	ErrSyntheticAccount = errors.New("the ALL account does not own transactions")

	// ErrAccountNotFound is returned when an account is not found
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountInUse is returned when deleting an account that transactions still reference
	ErrAccountInUse = errors.New("account is still referenced by transactions")

	// Category errors
	// ErrMissingCategoryName is returned when a category has no name
	ErrMissingCategoryName = errors.New("category must have a name")

	// ErrInvalidCategoryType is returned when a category has an invalid type
	ErrInvalidCategoryType = errors.New("invalid category type")

	// ErrCategoryNotFound is returned when a category is not found
	ErrCategoryNotFound = errors.New("category not found")

	// Tag errors
	// ErrMissingTagName is returned when a tag has no name
	ErrMissingTagName = errors.New("tag must have a name")

	// ErrTagNotFound is returned when a tag is not found
	ErrTagNotFound = errors.New("tag not found")

	// Query errors
	// ErrInvalidFilterState is returned when a filter or search cannot be constructed
	ErrInvalidFilterState = errors.New("invalid filter state")

	// ErrInvalidPeriod is returned for a month or year out of range
	ErrInvalidPeriod = errors.New("invalid period")

	// ErrInvalidPage is returned for a negative page index or a non-positive page size
	ErrInvalidPage = errors.New("invalid page request")
)

// TransactionError ties a failure to the transaction it concerns
type TransactionError struct {
	ID  int64
	Op  string
	Err error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("%s transaction %d: %v", e.Op, e.ID, e.Err)
}

func (e *TransactionError) Unwrap() error {
	return e.Err
}

// AccountError ties a failure to the account it concerns
type AccountError struct {
	ID  int64
	Op  string
	Err error
}

func (e *AccountError) Error() string {
	return fmt.Sprintf("%s account %d: %v", e.Op, e.ID, e.Err)
}

func (e *AccountError) Unwrap() error {
	return e.Err
}

// IllegalDelete builds the error reported for a delete that must not happen.
// Both ErrIllegalDelete and the cause match with errors.Is.
func IllegalDelete(id int64, cause error) error {
	return &TransactionError{
		ID:  id,
		Op:  "delete",
		Err: fmt.Errorf("%w: %w", ErrIllegalDelete, cause),
	}
}

// Package specifications translates filter value objects into predicate trees
// over the transaction set. Nothing in here touches storage.
package specifications

import (
	"time"

	"github.com/ZanzyTHEbar/firedragon-ledger/domain/filter"
	"github.com/ZanzyTHEbar/firedragon-ledger/domain/models"
	"github.com/ZanzyTHEbar/firedragon-ledger/domain/predicate"
)

// TransactionOrdering is the listing order for every query: most recent
// first, ties broken by ID so that pages stay stable.
var TransactionOrdering = predicate.Ordering{
	{Field: predicate.FieldDate, Direction: predicate.Desc},
	{Field: predicate.FieldID, Direction: predicate.Asc},
}

// IsAccountScoped reports whether the account narrows a query. A nil account
// and the synthetic ALL account both mean every account.
func IsAccountScoped(account *models.Account) bool {
	return account != nil && !account.IsAll()
}

// TransfersDegraded reports whether the transfer toggle is ignored because the
// query is not scoped to a concrete account.
func TransfersDegraded(account *models.Account, cfg filter.Configuration) bool {
	return cfg.IncludeTransfer() && !IsAccountScoped(account)
}

// ForAccountInRange builds the predicate for a listing of account between
// start and end, both inclusive:
//
//	date AND (main OR transferAccount == account)
//
// The back-reference disjunct only exists when transfers are enabled and the
// query is scoped to a concrete account. It pulls in incoming transfers, whose
// owning account is the source.
func ForAccountInRange(start, end time.Time, account *models.Account, cfg filter.Configuration) predicate.Predicate {
	scoped := IsAccountScoped(account)
	includeTransfer := cfg.IncludeTransfer() && scoped

	var main []predicate.Predicate
	if scoped {
		main = append(main, predicate.Eq(predicate.FieldAccount, account.ID))
	}

	switch {
	case cfg.IncludeIncome() && !cfg.IncludeExpenditure():
		main = append(main, predicate.Greater(predicate.FieldAmount, 0))
	case !cfg.IncludeIncome() && cfg.IncludeExpenditure():
		main = append(main, predicate.LessOrEqual(predicate.FieldAmount, 0))
	case !cfg.IncludeIncome() && !cfg.IncludeExpenditure():
		// Only transfers may remain: outgoing ones here, incoming ones via the back-reference.
		if includeTransfer {
			main = append(main, predicate.NotNull(predicate.FieldTransferAccount))
		} else {
			main = append(main, predicate.False())
		}
	}

	switch cfg.Repeating() {
	case filter.OnlyRepeating:
		main = append(main, predicate.NotNull(predicate.FieldRepeatingOption))
	case filter.OnlyNonRepeating:
		main = append(main, predicate.IsNull(predicate.FieldRepeatingOption))
	}

	if !includeTransfer {
		main = append(main, predicate.IsNull(predicate.FieldTransferAccount))
	}

	if cfg.HasCategoryConstraint() {
		main = append(main, predicate.In(predicate.FieldCategory, cfg.CategoryIDs()...))
	}

	if cfg.HasTagConstraint() {
		main = append(main, predicate.JoinAny(predicate.RelationTags,
			predicate.In(predicate.FieldTagID, cfg.TagIDs()...)))
	}

	if cfg.Name() != "" {
		main = append(main, predicate.Contains(predicate.FieldName, cfg.Name()))
	}

	date := predicate.Between(predicate.FieldDate, start, end)

	if includeTransfer {
		backReference := predicate.Eq(predicate.FieldTransferAccount, account.ID)
		return predicate.And(date, predicate.Or(predicate.And(main...), backReference))
	}
	return predicate.And(date, predicate.And(main...))
}

// ForSearch builds the free-text predicate: an OR over the enabled toggles.
// With no toggle enabled it matches nothing, whatever the query.
func ForSearch(search filter.Search) predicate.Predicate {
	query := search.Query()

	var clauses []predicate.Predicate
	if search.SearchName() {
		clauses = append(clauses, predicate.Contains(predicate.FieldName, query))
	}
	if search.SearchDescription() {
		clauses = append(clauses, predicate.Contains(predicate.FieldDescription, query))
	}
	if search.SearchCategory() {
		clauses = append(clauses, predicate.Contains(predicate.FieldCategoryName, query))
	}
	if search.SearchTags() {
		clauses = append(clauses, predicate.JoinAny(predicate.RelationTags,
			predicate.Contains(predicate.FieldTagName, query)))
	}

	return predicate.Or(clauses...)
}

// OwnedBy matches the transactions whose owning account is account
func OwnedBy(account *models.Account) predicate.Predicate {
	return predicate.Eq(predicate.FieldAccount, account.ID)
}

// TransferredTo matches the transfers whose destination is account
func TransferredTo(account *models.Account) predicate.Predicate {
	return predicate.Eq(predicate.FieldTransferAccount, account.ID)
}

// RestScopes are the three sub-sums that make up the carry-over of an account
type RestScopes struct {
	Normal              predicate.Predicate
	TransferSource      predicate.Predicate
	TransferDestination predicate.Predicate
}

// ForRest builds the carry-over scopes for transactions strictly before cutoff.
// For the ALL account only the non-transfer sum applies: across the union of
// accounts every transfer leaves one account and enters another.
func ForRest(account *models.Account, cutoff time.Time) RestScopes {
	before := predicate.Less(predicate.FieldDate, cutoff)

	if !IsAccountScoped(account) {
		return RestScopes{
			Normal:              predicate.And(before, predicate.IsNull(predicate.FieldTransferAccount)),
			TransferSource:      predicate.False(),
			TransferDestination: predicate.False(),
		}
	}

	return RestScopes{
		Normal: predicate.And(before, OwnedBy(account),
			predicate.IsNull(predicate.FieldTransferAccount)),
		TransferSource: predicate.And(before, OwnedBy(account),
			predicate.NotNull(predicate.FieldTransferAccount)),
		TransferDestination: predicate.And(before, TransferredTo(account)),
	}
}

// Everything matches every stored transaction
func Everything() predicate.Predicate {
	return predicate.True()
}

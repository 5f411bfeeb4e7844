package specifications

import (
	"github.com/ZanzyTHEbar/firedragon-ledger/domain/models"
	"github.com/ZanzyTHEbar/firedragon-ledger/domain/predicate"
)

// TransactionRecord exposes a stored transaction to predicate.Evaluate
type TransactionRecord struct {
	Transaction *models.Transaction
}

// Value implements predicate.Record
func (r TransactionRecord) Value(field predicate.Field) (any, bool) {
	tx := r.Transaction
	switch field {
	case predicate.FieldID:
		return tx.ID, true
	case predicate.FieldAmount:
		return tx.Amount, true
	case predicate.FieldDate:
		return models.TruncateDay(tx.Date), true
	case predicate.FieldName:
		return tx.Name, true
	case predicate.FieldDescription:
		if tx.Description == "" {
			return nil, false
		}
		return tx.Description, true
	case predicate.FieldAccount:
		if tx.Account == nil {
			return nil, false
		}
		return tx.Account.ID, true
	case predicate.FieldCategory:
		if tx.Category == nil {
			return nil, false
		}
		return tx.Category.ID, true
	case predicate.FieldCategoryName:
		if tx.Category == nil {
			return nil, false
		}
		return tx.Category.Name, true
	case predicate.FieldRepeatingOption:
		if tx.RepeatingOption == nil {
			return nil, false
		}
		return tx.RepeatingOption.ID, true
	case predicate.FieldTransferAccount:
		if tx.TransferAccount == nil {
			return nil, false
		}
		return tx.TransferAccount.ID, true
	default:
		return nil, false
	}
}

// Related implements predicate.Record
func (r TransactionRecord) Related(relation predicate.Relation) []predicate.Record {
	if relation != predicate.RelationTags {
		return nil
	}
	records := make([]predicate.Record, 0, len(r.Transaction.Tags))
	for _, tag := range r.Transaction.Tags {
		records = append(records, tagRecord{tag: tag})
	}
	return records
}

type tagRecord struct {
	tag *models.Tag
}

func (r tagRecord) Value(field predicate.Field) (any, bool) {
	switch field {
	case predicate.FieldTagID:
		return r.tag.ID, true
	case predicate.FieldTagName:
		return r.tag.Name, true
	default:
		return nil, false
	}
}

func (r tagRecord) Related(predicate.Relation) []predicate.Record {
	return nil
}

// Matches evaluates p against a stored transaction
func Matches(p predicate.Predicate, tx *models.Transaction) bool {
	return predicate.Evaluate(p, TransactionRecord{Transaction: tx})
}

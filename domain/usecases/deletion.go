package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ZanzyTHEbar/firedragon-ledger/domain/models"
	"github.com/ZanzyTHEbar/firedragon-ledger/domain/predicate"
	"github.com/ZanzyTHEbar/firedragon-ledger/domain/repositories"
	"github.com/ZanzyTHEbar/firedragon-ledger/domain/specifications"
	"github.com/ZanzyTHEbar/firedragon-ledger/interfaces"
)

// deleter applies the deletion policy against one set of repositories. It
// records the events to publish once the surrounding unit of work commits.
type deleter struct {
	transactions repositories.TransactionRepository
	options      repositories.RepeatingOptionRepository
	strict       bool
	logger       zerolog.Logger
	events       []*interfaces.Event
}

// deleteOne deletes a stored transaction. Repeating transactions take their
// whole recurrence with them. When absentOK is set a missing row is skipped
// silently, which happens while cascading over rows an earlier recurrence
// delete already removed.
func (d *deleter) deleteOne(ctx context.Context, id int64, absentOK bool) error {
	tx, err := d.transactions.FindByID(ctx, id)
	if errors.Is(err, models.ErrTransactionNotFound) {
		if d.strict && !absentOK {
			return models.IllegalDelete(id, models.ErrTransactionNotFound)
		}
		d.logger.Debug().Int64("transactionId", id).Msg("Skipping already deleted transaction")
		return nil
	}
	if err != nil {
		return &models.TransactionError{ID: id, Op: "find", Err: err}
	}

	if tx.Category.IsRest() {
		if d.strict {
			return models.IllegalDelete(id, models.ErrRestCategoryReserved)
		}
		d.logger.Warn().Int64("transactionId", id).Msg("Refusing to delete a carry-over entry")
		return nil
	}

	if tx.IsRepeating() {
		optionID := tx.RepeatingOption.ID
		if err := d.options.Delete(ctx, optionID); err != nil {
			return &models.TransactionError{ID: id, Op: "delete recurrence of", Err: err}
		}
		d.logger.Debug().Int64("transactionId", id).Int64("repeatingOptionId", optionID).Msg("Deleted recurrence")
		d.events = append(d.events, interfaces.NewEvent(interfaces.EventTypeRepeatingDeleted, eventSource).
			WithData("transactionId", id).
			WithData("repeatingOptionId", optionID))
		return nil
	}

	if err := d.transactions.Delete(ctx, id); err != nil {
		return &models.TransactionError{ID: id, Op: "delete", Err: err}
	}
	d.logger.Debug().Int64("transactionId", id).Msg("Deleted transaction")
	d.events = append(d.events, interfaces.NewEvent(interfaces.EventTypeTransactionDeleted, eventSource).
		WithData("transactionId", id))
	return nil
}

// deleteMatching deletes every transaction matching p in listing order
func (d *deleter) deleteMatching(ctx context.Context, p predicate.Predicate) (int, error) {
	matched, err := d.transactions.FindAll(ctx, p, specifications.TransactionOrdering)
	if err != nil {
		return 0, err
	}

	for _, tx := range matched {
		if err := d.deleteOne(ctx, tx.ID, true); err != nil {
			return 0, err
		}
	}
	return len(matched), nil
}

// deleteForAccount deletes the transactions owned by account, then those
// transferring money into it
func (d *deleter) deleteForAccount(ctx context.Context, account *models.Account) error {
	if account == nil {
		return fmt.Errorf("delete transactions: %w", models.ErrMissingAccount)
	}
	if account.IsAll() {
		return &models.AccountError{ID: account.ID, Op: "delete transactions of", Err: models.ErrSyntheticAccount}
	}

	owned, err := d.deleteMatching(ctx, specifications.OwnedBy(account))
	if err != nil {
		return &models.AccountError{ID: account.ID, Op: "delete transactions of", Err: err}
	}

	incoming, err := d.deleteMatching(ctx, specifications.TransferredTo(account))
	if err != nil {
		return &models.AccountError{ID: account.ID, Op: "delete incoming transfers of", Err: err}
	}

	d.logger.Info().Int64("accountId", account.ID).Int("owned", owned).Int("incoming", incoming).
		Msg("Deleted transactions of account")
	d.events = append(d.events, interfaces.NewEvent(interfaces.EventTypeAccountPurged, eventSource).
		WithData("accountId", account.ID).
		WithData("owned", owned).
		WithData("incoming", incoming))
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, models.ErrTransactionNotFound) ||
		errors.Is(err, models.ErrAccountNotFound)
}

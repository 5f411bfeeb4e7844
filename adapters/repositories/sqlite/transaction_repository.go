package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pocketbase/dbx"

	"github.com/ZanzyTHEbar/firedragon-ledger/domain/models"
	"github.com/ZanzyTHEbar/firedragon-ledger/domain/predicate"
	"github.com/ZanzyTHEbar/firedragon-ledger/domain/repositories"
)

type transactionRow struct {
	ID                int64          `db:"id"`
	Amount            int64          `db:"amount"`
	Date              string         `db:"date"`
	Name              string         `db:"name"`
	Description       sql.NullString `db:"description"`
	AccountID         int64          `db:"account_id"`
	CategoryID        int64          `db:"category_id"`
	RepeatingOptionID sql.NullInt64  `db:"repeating_option_id"`
	TransferAccountID sql.NullInt64  `db:"transfer_account_id"`
}

type transactionTagRow struct {
	TransactionID int64  `db:"transaction_id"`
	ID            int64  `db:"id"`
	Name          string `db:"name"`
}

var transactionColumns = []string{
	"t.id AS id",
	"t.amount AS amount",
	"t.date AS date",
	"t.name AS name",
	"t.description AS description",
	"t.account_id AS account_id",
	"t.category_id AS category_id",
	"t.repeating_option_id AS repeating_option_id",
	"t.transfer_account_id AS transfer_account_id",
}

// TransactionRepository is a SQLite implementation of repositories.TransactionRepository
type TransactionRepository struct {
	db dbx.Builder
}

// selectMatching starts a query over the transactions matching p
func (r *TransactionRepository) selectMatching(ctx context.Context, p predicate.Predicate, cols ...string) (*dbx.SelectQuery, error) {
	where, err := lower(p)
	if err != nil {
		return nil, fmt.Errorf("failed to lower predicate %s: %w", p, err)
	}
	return r.db.Select(cols...).
		From("transactions t").
		InnerJoin("categories c", dbx.NewExp("c.id = t.category_id")).
		Where(where).
		WithContext(ctx), nil
}

// FindByID finds a transaction by ID
func (r *TransactionRepository) FindByID(ctx context.Context, id int64) (*models.Transaction, error) {
	found, err := r.FindAll(ctx, predicate.Eq(predicate.FieldID, id), nil)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, &models.TransactionError{ID: id, Op: "find", Err: models.ErrTransactionNotFound}
	}
	return found[0], nil
}

// FindAll returns every transaction matching p, sorted by order
func (r *TransactionRepository) FindAll(ctx context.Context, p predicate.Predicate, order predicate.Ordering) ([]*models.Transaction, error) {
	q, err := r.selectMatching(ctx, p, transactionColumns...)
	if err != nil {
		return nil, err
	}
	terms, err := orderBy(order)
	if err != nil {
		return nil, err
	}

	var rows []transactionRow
	if err := q.OrderBy(terms...).All(&rows); err != nil {
		return nil, fmt.Errorf("failed to find transactions: %w", err)
	}
	return r.hydrate(ctx, rows)
}

// FindPage returns one page of the transactions matching p
func (r *TransactionRepository) FindPage(ctx context.Context, p predicate.Predicate, order predicate.Ordering, page repositories.PageRequest) (*repositories.Page[*models.Transaction], error) {
	countQuery, err := r.selectMatching(ctx, p, "COUNT(*)")
	if err != nil {
		return nil, err
	}
	var total int
	if err := countQuery.Row(&total); err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}

	q, err := r.selectMatching(ctx, p, transactionColumns...)
	if err != nil {
		return nil, err
	}
	terms, err := orderBy(order)
	if err != nil {
		return nil, err
	}

	var rows []transactionRow
	err = q.OrderBy(terms...).
		Limit(int64(page.Size)).
		Offset(int64(page.Offset())).
		All(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to find transactions: %w", err)
	}

	items, err := r.hydrate(ctx, rows)
	if err != nil {
		return nil, err
	}

	return &repositories.Page[*models.Transaction]{
		Items:      items,
		Number:     page.Number,
		Size:       page.Size,
		TotalItems: total,
	}, nil
}

// SumAmount sums the amounts of the transactions matching p
func (r *TransactionRepository) SumAmount(ctx context.Context, p predicate.Predicate) (int64, bool, error) {
	q, err := r.selectMatching(ctx, p, "COALESCE(SUM(t.amount), 0)", "COUNT(t.id)")
	if err != nil {
		return 0, false, err
	}

	var sum int64
	var matched int
	if err := q.Row(&sum, &matched); err != nil {
		return 0, false, fmt.Errorf("failed to sum transactions: %w", err)
	}
	return sum, matched > 0, nil
}

// Create stores a transaction together with its tag links
func (r *TransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	if err := tx.Validate(); err != nil {
		return fmt.Errorf("invalid transaction: %w", err)
	}

	params := dbx.Params{
		"amount":              tx.Amount,
		"date":                models.TruncateDay(tx.Date).Format(dateLayout),
		"name":                tx.Name,
		"description":         sql.NullString{String: tx.Description, Valid: tx.Description != ""},
		"account_id":          tx.Account.ID,
		"category_id":         tx.Category.ID,
		"repeating_option_id": sql.NullInt64{},
		"transfer_account_id": sql.NullInt64{},
	}
	if tx.RepeatingOption != nil {
		params["repeating_option_id"] = sql.NullInt64{Int64: tx.RepeatingOption.ID, Valid: true}
	}
	if tx.TransferAccount != nil {
		params["transfer_account_id"] = sql.NullInt64{Int64: tx.TransferAccount.ID, Valid: true}
	}

	return atomically(ctx, r.db, func(b dbx.Builder) error {
		result, err := b.Insert("transactions", params).WithContext(ctx).Execute()
		if err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read transaction ID: %w", err)
		}

		for _, tag := range tx.Tags {
			_, err := b.Insert("transaction_tags", dbx.Params{
				"transaction_id": id,
				"tag_id":         tag.ID,
			}).WithContext(ctx).Execute()
			if err != nil {
				return fmt.Errorf("failed to link tag %d: %w", tag.ID, err)
			}
		}

		tx.ID = id
		return nil
	})
}

// Delete deletes a transaction by ID. Its tag links go with it.
func (r *TransactionRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Delete("transactions", dbx.HashExp{"id": id}).WithContext(ctx).Execute()
	if err != nil {
		return &models.TransactionError{ID: id, Op: "delete", Err: err}
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return &models.TransactionError{ID: id, Op: "delete", Err: models.ErrTransactionNotFound}
	}
	return nil
}

// hydrate resolves the referenced accounts, categories, options and tags of rows
func (r *TransactionRepository) hydrate(ctx context.Context, rows []transactionRow) ([]*models.Transaction, error) {
	transactions := make([]*models.Transaction, 0, len(rows))
	if len(rows) == 0 {
		return transactions, nil
	}

	var txIDs, accountIDs, categoryIDs, optionIDs []any
	for _, row := range rows {
		txIDs = append(txIDs, row.ID)
		accountIDs = append(accountIDs, row.AccountID)
		categoryIDs = append(categoryIDs, row.CategoryID)
		if row.TransferAccountID.Valid {
			accountIDs = append(accountIDs, row.TransferAccountID.Int64)
		}
		if row.RepeatingOptionID.Valid {
			optionIDs = append(optionIDs, row.RepeatingOptionID.Int64)
		}
	}

	accounts, err := loadByID[accountRow](ctx, r.db, "accounts", accountIDs, accountRow.model)
	if err != nil {
		return nil, err
	}
	categories, err := loadByID[categoryRow](ctx, r.db, "categories", categoryIDs, categoryRow.model)
	if err != nil {
		return nil, err
	}
	options, err := loadByID[repeatingOptionRow](ctx, r.db, "repeating_options", optionIDs, repeatingOptionRow.model)
	if err != nil {
		return nil, err
	}

	var tagRows []transactionTagRow
	err = r.db.Select("tt.transaction_id AS transaction_id", "tg.id AS id", "tg.name AS name").
		From("transaction_tags tt").
		InnerJoin("tags tg", dbx.NewExp("tg.id = tt.tag_id")).
		Where(dbx.In("tt.transaction_id", txIDs...)).
		OrderBy("tg.name ASC", "tg.id ASC").
		WithContext(ctx).
		All(&tagRows)
	if err != nil {
		return nil, fmt.Errorf("failed to load tags: %w", err)
	}
	tags := make(map[int64][]*models.Tag)
	for _, row := range tagRows {
		tags[row.TransactionID] = append(tags[row.TransactionID], &models.Tag{ID: row.ID, Name: row.Name})
	}

	for _, row := range rows {
		date, err := time.Parse(dateLayout, row.Date)
		if err != nil {
			return nil, fmt.Errorf("transaction %d has a malformed date %q: %w", row.ID, row.Date, err)
		}

		tx := &models.Transaction{
			ID:          row.ID,
			Amount:      row.Amount,
			Date:        date,
			Name:        row.Name,
			Description: row.Description.String,
			Account:     accounts[row.AccountID],
			Category:    categories[row.CategoryID],
			Tags:        tags[row.ID],
		}
		if tx.Tags == nil {
			tx.Tags = []*models.Tag{}
		}
		if row.RepeatingOptionID.Valid {
			tx.RepeatingOption = options[row.RepeatingOptionID.Int64]
		}
		if row.TransferAccountID.Valid {
			tx.TransferAccount = accounts[row.TransferAccountID.Int64]
		}
		transactions = append(transactions, tx)
	}

	return transactions, nil
}

// loadByID loads the rows of table with the given IDs, keyed by ID
func loadByID[R any, M any](ctx context.Context, b dbx.Builder, table string, ids []any, model func(R) (int64, *M, error)) (map[int64]*M, error) {
	result := make(map[int64]*M, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var rows []R
	if err := b.Select("*").From(table).Where(dbx.In("id", ids...)).WithContext(ctx).All(&rows); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", table, err)
	}
	for _, row := range rows {
		id, m, err := model(row)
		if err != nil {
			return nil, fmt.Errorf("malformed row in %s: %w", table, err)
		}
		result[id] = m
	}
	return result, nil
}

// isNoRows reports whether err means an empty result
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

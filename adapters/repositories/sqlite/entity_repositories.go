package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pocketbase/dbx"

	"github.com/ZanzyTHEbar/firedragon-ledger/domain/models"
)

type accountRow struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Type      string    `db:"type"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r accountRow) model() (int64, *models.Account, error) {
	return r.ID, &models.Account{
		ID:        r.ID,
		Name:      r.Name,
		Type:      models.AccountType(r.Type),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}, nil
}

type categoryRow struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Color     string    `db:"color"`
	Type      string    `db:"type"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r categoryRow) model() (int64, *models.Category, error) {
	return r.ID, &models.Category{
		ID:        r.ID,
		Name:      r.Name,
		Color:     r.Color,
		Type:      models.CategoryType(r.Type),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}, nil
}

type tagRow struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

type repeatingOptionRow struct {
	ID            int64          `db:"id"`
	StartDate     string         `db:"start_date"`
	ModifierType  string         `db:"modifier_type"`
	ModifierValue int            `db:"modifier_value"`
	EndType       string         `db:"end_type"`
	EndValue      sql.NullString `db:"end_value"`
}

func (r repeatingOptionRow) model() (int64, *models.RepeatingOption, error) {
	start, err := time.Parse(dateLayout, r.StartDate)
	if err != nil {
		return 0, nil, fmt.Errorf("repeating option %d start date %q: %w", r.ID, r.StartDate, err)
	}
	return r.ID, &models.RepeatingOption{
		ID:            r.ID,
		StartDate:     start,
		ModifierType:  models.RepeatingModifierType(r.ModifierType),
		ModifierValue: r.ModifierValue,
		EndType:       models.RepeatingEndType(r.EndType),
		EndValue:      r.EndValue.String,
	}, nil
}

// AccountRepository is a SQLite implementation of repositories.AccountRepository
type AccountRepository struct {
	db dbx.Builder
}

// FindByID finds an account by ID
func (r *AccountRepository) FindByID(ctx context.Context, id int64) (*models.Account, error) {
	var row accountRow
	err := r.db.Select("*").From("accounts").Where(dbx.HashExp{"id": id}).WithContext(ctx).One(&row)
	if isNoRows(err) {
		return nil, &models.AccountError{ID: id, Op: "find", Err: models.ErrAccountNotFound}
	}
	if err != nil {
		return nil, &models.AccountError{ID: id, Op: "find", Err: err}
	}
	_, account, _ := row.model()
	return account, nil
}

// FindAll returns every account ordered by name
func (r *AccountRepository) FindAll(ctx context.Context) ([]*models.Account, error) {
	var rows []accountRow
	if err := r.db.Select("*").From("accounts").OrderBy("name ASC", "id ASC").WithContext(ctx).All(&rows); err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	accounts := make([]*models.Account, 0, len(rows))
	for _, row := range rows {
		_, account, _ := row.model()
		accounts = append(accounts, account)
	}
	return accounts, nil
}

// Create creates a new account
func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	if err := account.Validate(); err != nil {
		return fmt.Errorf("invalid account: %w", err)
	}

	result, err := r.db.Insert("accounts", dbx.Params{
		"name":       account.Name,
		"type":       string(account.Type),
		"created_at": account.CreatedAt,
		"updated_at": account.UpdatedAt,
	}).WithContext(ctx).Execute()
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	account.ID, err = result.LastInsertId()
	return err
}

// Delete deletes an account that no transaction references anymore
func (r *AccountRepository) Delete(ctx context.Context, id int64) error {
	var references int
	err := r.db.Select("COUNT(*)").
		From("transactions").
		Where(dbx.Or(dbx.HashExp{"account_id": id}, dbx.HashExp{"transfer_account_id": id})).
		WithContext(ctx).
		Row(&references)
	if err != nil {
		return &models.AccountError{ID: id, Op: "delete", Err: err}
	}
	if references > 0 {
		return &models.AccountError{ID: id, Op: "delete", Err: models.ErrAccountInUse}
	}

	result, err := r.db.Delete("accounts", dbx.HashExp{"id": id}).WithContext(ctx).Execute()
	if err != nil {
		return &models.AccountError{ID: id, Op: "delete", Err: err}
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return &models.AccountError{ID: id, Op: "delete", Err: models.ErrAccountNotFound}
	}
	return nil
}

// CategoryRepository is a SQLite implementation of repositories.CategoryRepository
type CategoryRepository struct {
	db dbx.Builder
}

// FindByID finds a category by ID
func (r *CategoryRepository) FindByID(ctx context.Context, id int64) (*models.Category, error) {
	var row categoryRow
	err := r.db.Select("*").From("categories").Where(dbx.HashExp{"id": id}).WithContext(ctx).One(&row)
	if isNoRows(err) {
		return nil, fmt.Errorf("category %d: %w", id, models.ErrCategoryNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find category %d: %w", id, err)
	}
	_, category, _ := row.model()
	return category, nil
}

// FindAll returns every category ordered by name
func (r *CategoryRepository) FindAll(ctx context.Context) ([]*models.Category, error) {
	var rows []categoryRow
	if err := r.db.Select("*").From("categories").OrderBy("name ASC", "id ASC").WithContext(ctx).All(&rows); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	categories := make([]*models.Category, 0, len(rows))
	for _, row := range rows {
		_, category, _ := row.model()
		categories = append(categories, category)
	}
	return categories, nil
}

// Create creates a new category
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	if err := category.Validate(); err != nil {
		return fmt.Errorf("invalid category: %w", err)
	}

	result, err := r.db.Insert("categories", dbx.Params{
		"name":       category.Name,
		"color":      category.Color,
		"type":       string(category.Type),
		"created_at": category.CreatedAt,
		"updated_at": category.UpdatedAt,
	}).WithContext(ctx).Execute()
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	category.ID, err = result.LastInsertId()
	return err
}

// TagRepository is a SQLite implementation of repositories.TagRepository
type TagRepository struct {
	db dbx.Builder
}

// FindByID finds a tag by ID
func (r *TagRepository) FindByID(ctx context.Context, id int64) (*models.Tag, error) {
	var row tagRow
	err := r.db.Select("*").From("tags").Where(dbx.HashExp{"id": id}).WithContext(ctx).One(&row)
	if isNoRows(err) {
		return nil, fmt.Errorf("tag %d: %w", id, models.ErrTagNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find tag %d: %w", id, err)
	}
	return &models.Tag{ID: row.ID, Name: row.Name}, nil
}

// FindAll returns every tag ordered by name
func (r *TagRepository) FindAll(ctx context.Context) ([]*models.Tag, error) {
	var rows []tagRow
	if err := r.db.Select("*").From("tags").OrderBy("name ASC").WithContext(ctx).All(&rows); err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	tags := make([]*models.Tag, 0, len(rows))
	for _, row := range rows {
		tags = append(tags, &models.Tag{ID: row.ID, Name: row.Name})
	}
	return tags, nil
}

// Create creates a new tag
func (r *TagRepository) Create(ctx context.Context, tag *models.Tag) error {
	if err := tag.Validate(); err != nil {
		return fmt.Errorf("invalid tag: %w", err)
	}

	result, err := r.db.Insert("tags", dbx.Params{"name": tag.Name}).WithContext(ctx).Execute()
	if err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}

	tag.ID, err = result.LastInsertId()
	return err
}

// RepeatingOptionRepository is a SQLite implementation of repositories.RepeatingOptionRepository
type RepeatingOptionRepository struct {
	db dbx.Builder
}

// Create creates a new repeating option
func (r *RepeatingOptionRepository) Create(ctx context.Context, option *models.RepeatingOption) error {
	result, err := r.db.Insert("repeating_options", dbx.Params{
		"start_date":     models.TruncateDay(option.StartDate).Format(dateLayout),
		"modifier_type":  string(option.ModifierType),
		"modifier_value": option.ModifierValue,
		"end_type":       string(option.EndType),
		"end_value":      sql.NullString{String: option.EndValue, Valid: option.EndValue != ""},
	}).WithContext(ctx).Execute()
	if err != nil {
		return fmt.Errorf("failed to create repeating option: %w", err)
	}

	option.ID, err = result.LastInsertId()
	return err
}

// Delete deletes a repeating option. The foreign key cascade removes every
// transaction linked to it.
func (r *RepeatingOptionRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Delete("repeating_options", dbx.HashExp{"id": id}).WithContext(ctx).Execute()
	if err != nil {
		return fmt.Errorf("failed to delete repeating option %d: %w", id, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("repeating option %d: %w", id, models.ErrRepeatingOptionNotFound)
	}
	return nil
}

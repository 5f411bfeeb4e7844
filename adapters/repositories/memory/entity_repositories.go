package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/ZanzyTHEbar/firedragon-ledger/domain/models"
)

// AccountRepository is an in-memory implementation of repositories.AccountRepository
type AccountRepository struct {
	store *Store
}

// FindByID finds an account by ID
func (r *AccountRepository) FindByID(ctx context.Context, id int64) (*models.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	account, ok := r.store.data.accounts[id]
	if !ok {
		return nil, &models.AccountError{ID: id, Op: "find", Err: models.ErrAccountNotFound}
	}
	return &account, nil
}

// FindAll returns every account ordered by name
func (r *AccountRepository) FindAll(ctx context.Context) ([]*models.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	accounts := make([]*models.Account, 0, len(r.store.data.accounts))
	for _, id := range sortedKeys(r.store.data.accounts) {
		account := r.store.data.accounts[id]
		accounts = append(accounts, &account)
	}
	slices.SortStableFunc(accounts, func(a, b *models.Account) int { return cmp.Compare(a.Name, b.Name) })
	return accounts, nil
}

// Create creates a new account
func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	if err := account.Validate(); err != nil {
		return fmt.Errorf("invalid account: %w", err)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	account.ID = r.store.assignID(tableAccounts)
	r.store.data.accounts[account.ID] = *account
	return nil
}

// Delete deletes an account that no transaction references anymore
func (r *AccountRepository) Delete(ctx context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.data.accounts[id]; !ok {
		return &models.AccountError{ID: id, Op: "delete", Err: models.ErrAccountNotFound}
	}
	for _, row := range r.store.data.transactions {
		if row.accountID == id || row.transferAccount == id {
			return &models.AccountError{ID: id, Op: "delete", Err: models.ErrAccountInUse}
		}
	}
	r.store.touch()
	delete(r.store.data.accounts, id)
	return nil
}

// CategoryRepository is an in-memory implementation of repositories.CategoryRepository
type CategoryRepository struct {
	store *Store
}

// FindByID finds a category by ID
func (r *CategoryRepository) FindByID(ctx context.Context, id int64) (*models.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	category, ok := r.store.data.categories[id]
	if !ok {
		return nil, fmt.Errorf("category %d: %w", id, models.ErrCategoryNotFound)
	}
	return &category, nil
}

// FindAll returns every category ordered by name
func (r *CategoryRepository) FindAll(ctx context.Context) ([]*models.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	categories := make([]*models.Category, 0, len(r.store.data.categories))
	for _, id := range sortedKeys(r.store.data.categories) {
		category := r.store.data.categories[id]
		categories = append(categories, &category)
	}
	slices.SortStableFunc(categories, func(a, b *models.Category) int { return cmp.Compare(a.Name, b.Name) })
	return categories, nil
}

// Create creates a new category
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	if err := category.Validate(); err != nil {
		return fmt.Errorf("invalid category: %w", err)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	category.ID = r.store.assignID(tableCategories)
	r.store.data.categories[category.ID] = *category
	return nil
}

// TagRepository is an in-memory implementation of repositories.TagRepository
type TagRepository struct {
	store *Store
}

// FindByID finds a tag by ID
func (r *TagRepository) FindByID(ctx context.Context, id int64) (*models.Tag, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	tag, ok := r.store.data.tags[id]
	if !ok {
		return nil, fmt.Errorf("tag %d: %w", id, models.ErrTagNotFound)
	}
	return &tag, nil
}

// FindAll returns every tag ordered by name
func (r *TagRepository) FindAll(ctx context.Context) ([]*models.Tag, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	tags := make([]*models.Tag, 0, len(r.store.data.tags))
	for _, id := range sortedKeys(r.store.data.tags) {
		tag := r.store.data.tags[id]
		tags = append(tags, &tag)
	}
	slices.SortStableFunc(tags, func(a, b *models.Tag) int { return cmp.Compare(a.Name, b.Name) })
	return tags, nil
}

// Create creates a new tag
func (r *TagRepository) Create(ctx context.Context, tag *models.Tag) error {
	if err := tag.Validate(); err != nil {
		return fmt.Errorf("invalid tag: %w", err)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	tag.ID = r.store.assignID(tableTags)
	r.store.data.tags[tag.ID] = *tag
	return nil
}

// RepeatingOptionRepository is an in-memory implementation of repositories.RepeatingOptionRepository
type RepeatingOptionRepository struct {
	store *Store
}

// Create creates a new repeating option
func (r *RepeatingOptionRepository) Create(ctx context.Context, option *models.RepeatingOption) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	option.ID = r.store.assignID(tableOptions)
	r.store.data.options[option.ID] = *option
	return nil
}

// Delete deletes a repeating option and every transaction linked to it
func (r *RepeatingOptionRepository) Delete(ctx context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.data.options[id]; !ok {
		return fmt.Errorf("repeating option %d: %w", id, models.ErrRepeatingOptionNotFound)
	}

	r.store.touch()
	for txID, row := range r.store.data.transactions {
		if row.optionID == id {
			delete(r.store.data.transactions, txID)
		}
	}
	delete(r.store.data.options, id)
	return nil
}

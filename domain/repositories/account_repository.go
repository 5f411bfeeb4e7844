package repositories

import (
	"context"

	"github.com/ZanzyTHEbar/firedragon-ledger/domain/models"
)

// AccountRepository defines the interface for account data access
type AccountRepository interface {
	// FindByID finds an account by ID
	FindByID(ctx context.Context, id int64) (*models.Account, error)

	// FindAll returns every real account ordered by name
	FindAll(ctx context.Context) ([]*models.Account, error)

	// Create creates a new account
	Create(ctx context.Context, account *models.Account) error

	// Delete deletes an account by ID. Its transactions must be gone already.
	Delete(ctx context.Context, id int64) error
}

// TagRepository defines the interface for tag data access
type TagRepository interface {
	// FindByID finds a tag by ID
	FindByID(ctx context.Context, id int64) (*models.Tag, error)

	// FindAll returns every tag ordered by name
	FindAll(ctx context.Context) ([]*models.Tag, error)

	// Create creates a new tag
	Create(ctx context.Context, tag *models.Tag) error
}

// RepeatingOptionRepository defines the interface for recurrence definitions
type RepeatingOptionRepository interface {
	// Create creates a new repeating option
	Create(ctx context.Context, option *models.RepeatingOption) error

	// Delete deletes a repeating option together with every transaction linked to it
	Delete(ctx context.Context, id int64) error
}

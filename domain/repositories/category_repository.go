package repositories

import (
	"context"

	"github.com/ZanzyTHEbar/firedragon-ledger/domain/models"
)

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	// FindByID finds a category by ID
	FindByID(ctx context.Context, id int64) (*models.Category, error)

	// FindAll returns every category ordered by name
	FindAll(ctx context.Context) ([]*models.Category, error)

	// Create creates a new category
	Create(ctx context.Context, category *models.Category) error
}

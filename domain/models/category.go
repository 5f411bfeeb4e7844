package models

import (
	"strings"
	"time"
)

// CategoryType defines the type of category
type CategoryType string

const (
	// CategoryTypeNone is the fallback "uncategorized" marker
	CategoryTypeNone CategoryType = "NONE"

	// CategoryTypeRest is reserved for the synthetic carry-over entry
	CategoryTypeRest CategoryType = "REST"

	// CategoryTypeCustom represents a user created category
	CategoryTypeCustom CategoryType = "CUSTOM"
)

// Category represents a transaction category
type Category struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	Color     string       `json:"color"`
	Type      CategoryType `json:"type"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// NewCategory creates a new custom category
func NewCategory(name, color string) *Category {
	now := time.Now()
	return &Category{
		Name:      strings.TrimSpace(name),
		Color:     color,
		Type:      CategoryTypeCustom,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewNoneCategory creates the fallback category assigned to uncategorized transactions
func NewNoneCategory(label string) *Category {
	category := NewCategory(label, "#FFFFFF")
	category.Type = CategoryTypeNone
	return category
}

// RestCategory returns the in-memory category attached to carry-over entries.
// It carries no ID and is never persisted.
func RestCategory(label string) *Category {
	return &Category{
		Name:  label,
		Color: "#FFFF00",
		Type:  CategoryTypeRest,
	}
}

// IsRest reports whether the category marks a synthetic carry-over entry
func (c *Category) IsRest() bool {
	return c != nil && c.Type == CategoryTypeRest
}

// Validate checks if the category is valid
func (c *Category) Validate() error {
	if c.Name == "" {
		return ErrMissingCategoryName
	}

	if c.Type != CategoryTypeNone &&
		c.Type != CategoryTypeRest &&
		c.Type != CategoryTypeCustom {
		return ErrInvalidCategoryType
	}

	return nil
}

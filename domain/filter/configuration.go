// Package filter contains the immutable query value objects: the structured
// filter configuration and the free-text search.
package filter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ZanzyTHEbar/firedragon-ledger/domain/models"
)

// RepeatingFilter constrains whether transactions linked to a recurrence are listed
type RepeatingFilter int

const (
	// RepeatingAny places no constraint on the repeating status
	RepeatingAny RepeatingFilter = iota
	// OnlyRepeating keeps transactions linked to a recurrence
	OnlyRepeating
	// OnlyNonRepeating keeps transactions without a recurrence
	OnlyNonRepeating
)

func (r RepeatingFilter) String() string {
	switch r {
	case RepeatingAny:
		return "any"
	case OnlyRepeating:
		return "only-repeating"
	case OnlyNonRepeating:
		return "only-non-repeating"
	default:
		return fmt.Sprintf("RepeatingFilter(%d)", int(r))
	}
}

// ParseRepeatingFilter parses the String form of a RepeatingFilter. The short
// forms only and none are accepted as well.
func ParseRepeatingFilter(s string) (RepeatingFilter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any":
		return RepeatingAny, nil
	case "only-repeating", "repeating", "only":
		return OnlyRepeating, nil
	case "only-non-repeating", "non-repeating", "none":
		return OnlyNonRepeating, nil
	default:
		return RepeatingAny, fmt.Errorf("repeating filter %q: %w", s, models.ErrInvalidFilterState)
	}
}

// Configuration is the structured multi-dimensional transaction filter.
// Values are immutable; use NewConfiguration to build one.
type Configuration struct {
	includeIncome      bool
	includeExpenditure bool
	includeTransfer    bool
	repeating          RepeatingFilter
	categoryIDs        []int64
	tagIDs             []int64
	name               string
}

// Default constrains nothing
var Default = Configuration{
	includeIncome:      true,
	includeExpenditure: true,
	includeTransfer:    true,
	repeating:          RepeatingAny,
}

// Option customizes a Configuration under construction
type Option func(*Configuration)

// WithIncome toggles transactions with a strictly positive amount
func WithIncome(include bool) Option {
	return func(c *Configuration) { c.includeIncome = include }
}

// WithExpenditure toggles transactions with a zero or negative amount
func WithExpenditure(include bool) Option {
	return func(c *Configuration) { c.includeExpenditure = include }
}

// WithTransfer toggles transfers, including incoming transfers of the scoped account
func WithTransfer(include bool) Option {
	return func(c *Configuration) { c.includeTransfer = include }
}

// WithRepeating sets the repeating constraint
func WithRepeating(r RepeatingFilter) Option {
	return func(c *Configuration) { c.repeating = r }
}

// WithCategories restricts results to the given category IDs. Passing no IDs
// yields an empty set, which matches nothing.
func WithCategories(ids ...int64) Option {
	return func(c *Configuration) { c.categoryIDs = normalizeIDs(ids) }
}

// WithTags restricts results to transactions carrying at least one of the tag IDs.
// Passing no IDs yields an empty set, which matches nothing.
func WithTags(ids ...int64) Option {
	return func(c *Configuration) { c.tagIDs = normalizeIDs(ids) }
}

// WithName restricts results to names containing the substring, ignoring case
func WithName(name string) Option {
	return func(c *Configuration) { c.name = strings.TrimSpace(name) }
}

// NewConfiguration builds a configuration starting from Default
func NewConfiguration(opts ...Option) (Configuration, error) {
	c := Default
	for _, opt := range opts {
		opt(&c)
	}

	if err := c.validate(); err != nil {
		return Configuration{}, err
	}
	return c, nil
}

func (c Configuration) validate() error {
	if c.repeating < RepeatingAny || c.repeating > OnlyNonRepeating {
		return fmt.Errorf("repeating filter %d: %w", int(c.repeating), models.ErrInvalidFilterState)
	}
	for _, id := range c.categoryIDs {
		if id < 0 {
			return fmt.Errorf("category ID %d: %w", id, models.ErrInvalidFilterState)
		}
	}
	for _, id := range c.tagIDs {
		if id < 0 {
			return fmt.Errorf("tag ID %d: %w", id, models.ErrInvalidFilterState)
		}
	}
	return nil
}

func (c Configuration) IncludeIncome() bool        { return c.includeIncome }
func (c Configuration) IncludeExpenditure() bool   { return c.includeExpenditure }
func (c Configuration) IncludeTransfer() bool      { return c.includeTransfer }
func (c Configuration) Repeating() RepeatingFilter { return c.repeating }
func (c Configuration) Name() string               { return c.name }

// CategoryIDs returns a copy of the category set; nil means no category constraint
func (c Configuration) CategoryIDs() []int64 { return slices.Clone(c.categoryIDs) }

// TagIDs returns a copy of the tag set; nil means no tag constraint
func (c Configuration) TagIDs() []int64 { return slices.Clone(c.tagIDs) }

// HasCategoryConstraint reports whether a category set was given
func (c Configuration) HasCategoryConstraint() bool { return c.categoryIDs != nil }

// HasTagConstraint reports whether a tag set was given
func (c Configuration) HasTagConstraint() bool { return c.tagIDs != nil }

// IsDefault reports whether the configuration constrains nothing
func (c Configuration) IsDefault() bool {
	return c.includeIncome && c.includeExpenditure && c.includeTransfer &&
		c.repeating == RepeatingAny && c.categoryIDs == nil && c.tagIDs == nil && c.name == ""
}

func (c Configuration) String() string {
	return fmt.Sprintf("income=%t expenditure=%t transfer=%t repeating=%s categories=%v tags=%v name=%q",
		c.includeIncome, c.includeExpenditure, c.includeTransfer, c.repeating, c.categoryIDs, c.tagIDs, c.name)
}

// normalizeIDs sorts and deduplicates a set, keeping an empty set non-nil
func normalizeIDs(ids []int64) []int64 {
	out := make([]int64, len(ids))
	copy(out, ids)
	slices.Sort(out)
	return slices.Compact(out)
}

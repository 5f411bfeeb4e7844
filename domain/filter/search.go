package filter

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/firedragon-ledger/domain/models"
)

// Search is the free-text filter. Every enabled toggle contributes one
// case-insensitive "contains" clause and a row matches if any clause does.
type Search struct {
	query             string
	searchName        bool
	searchDescription bool
	searchCategory    bool
	searchTags        bool
	page              int
}

// DefaultSearch searches every field with an empty query, which matches everything
var DefaultSearch = Search{
	searchName:        true,
	searchDescription: true,
	searchCategory:    true,
	searchTags:        true,
}

// SearchToggles selects the fields a query runs against
type SearchToggles struct {
	Name        bool
	Description bool
	Category    bool
	Tags        bool
}

// AllFields enables every toggle
var AllFields = SearchToggles{Name: true, Description: true, Category: true, Tags: true}

// NewSearch validates and builds a search. The page index is zero-based.
func NewSearch(query string, toggles SearchToggles, page int) (Search, error) {
	if page < 0 {
		return Search{}, fmt.Errorf("search page %d: %w", page, models.ErrInvalidFilterState)
	}

	return Search{
		query:             query,
		searchName:        toggles.Name,
		searchDescription: toggles.Description,
		searchCategory:    toggles.Category,
		searchTags:        toggles.Tags,
		page:              page,
	}, nil
}

func (s Search) Query() string           { return s.query }
func (s Search) SearchName() bool        { return s.searchName }
func (s Search) SearchDescription() bool { return s.searchDescription }
func (s Search) SearchCategory() bool    { return s.searchCategory }
func (s Search) SearchTags() bool        { return s.searchTags }
func (s Search) Page() int               { return s.page }

// IsEmptySearch reports whether the query is empty or blank
func (s Search) IsEmptySearch() bool {
	return strings.TrimSpace(s.query) == ""
}

// HasToggles reports whether at least one field is searched
func (s Search) HasToggles() bool {
	return s.searchName || s.searchDescription || s.searchCategory || s.searchTags
}

// WithPage returns a copy of the search pointing at another page
func (s Search) WithPage(page int) Search {
	if page < 0 {
		page = 0
	}
	s.page = page
	return s
}

func (s Search) String() string {
	return fmt.Sprintf("query=%q name=%t description=%t category=%t tags=%t page=%d",
		s.query, s.searchName, s.searchDescription, s.searchCategory, s.searchTags, s.page)
}

package filter

import (
	"errors"
	"testing"

	"github.com/ZanzyTHEbar/firedragon-ledger/domain/models"
)

func TestDefaultConfiguration(t *testing.T) {
	c, err := NewConfiguration()
	if err != nil {
		t.Fatalf("NewConfiguration() unexpected error: %v", err)
	}
	if !c.IsDefault() {
		t.Errorf("Expected configuration without options to equal Default, got %s", c)
	}
	if c.HasCategoryConstraint() || c.HasTagConstraint() {
		t.Error("Expected Default to carry no category or tag constraint")
	}
	if c.CategoryIDs() != nil {
		t.Errorf("Expected nil category set, got %v", c.CategoryIDs())
	}
}

func TestNewConfiguration(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		check   func(t *testing.T, c Configuration)
		wantErr error
	}{
		{
			name: "Income Only",
			opts: []Option{WithExpenditure(false)},
			check: func(t *testing.T, c Configuration) {
				if !c.IncludeIncome() || c.IncludeExpenditure() {
					t.Errorf("unexpected toggles: %s", c)
				}
			},
		},
		{
			name: "Category Set Is Normalized",
			opts: []Option{WithCategories(3, 1, 3)},
			check: func(t *testing.T, c Configuration) {
				ids := c.CategoryIDs()
				if len(ids) != 2 || ids[0] != 1 || ids[1] != 3 {
					t.Errorf("CategoryIDs() = %v, want [1 3]", ids)
				}
			},
		},
		{
			name: "Empty Tag Set Is A Constraint",
			opts: []Option{WithTags()},
			check: func(t *testing.T, c Configuration) {
				if !c.HasTagConstraint() {
					t.Error("Expected an explicitly empty tag set to be a constraint")
				}
				if len(c.TagIDs()) != 0 {
					t.Errorf("TagIDs() = %v, want empty", c.TagIDs())
				}
			},
		},
		{
			name: "Name Is Trimmed",
			opts: []Option{WithName("  rent ")},
			check: func(t *testing.T, c Configuration) {
				if c.Name() != "rent" {
					t.Errorf("Name() = %q, want %q", c.Name(), "rent")
				}
			},
		},
		{
			name:    "Negative Category",
			opts:    []Option{WithCategories(-1)},
			wantErr: models.ErrInvalidFilterState,
		},
		{
			name:    "Negative Tag",
			opts:    []Option{WithTags(2, -5)},
			wantErr: models.ErrInvalidFilterState,
		},
		{
			name:    "Unknown Repeating Value",
			opts:    []Option{WithRepeating(RepeatingFilter(7))},
			wantErr: models.ErrInvalidFilterState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewConfiguration(tt.opts...)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("NewConfiguration() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewConfiguration() unexpected error: %v", err)
			}
			tt.check(t, c)
		})
	}
}

func TestConfigurationIsImmutable(t *testing.T) {
	c, err := NewConfiguration(WithCategories(1, 2))
	if err != nil {
		t.Fatalf("NewConfiguration() unexpected error: %v", err)
	}

	ids := c.CategoryIDs()
	ids[0] = 99

	if c.CategoryIDs()[0] != 1 {
		t.Error("Expected mutation of the returned slice not to leak into the configuration")
	}
}

func TestParseRepeatingFilter(t *testing.T) {
	tests := []struct {
		in      string
		want    RepeatingFilter
		wantErr bool
	}{
		{in: "", want: RepeatingAny},
		{in: "any", want: RepeatingAny},
		{in: "only-repeating", want: OnlyRepeating},
		{in: "Non-Repeating", want: OnlyNonRepeating},
		{in: "only", want: OnlyRepeating},
		{in: " NONE ", want: OnlyNonRepeating},
		{in: "no", wantErr: true},
		{in: "sometimes", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRepeatingFilter(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRepeatingFilter(%q) error = %v", tt.in, err)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseRepeatingFilter(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestSearch(t *testing.T) {
	s, err := NewSearch("  ", SearchToggles{Name: true}, 2)
	if err != nil {
		t.Fatalf("NewSearch() unexpected error: %v", err)
	}
	if !s.IsEmptySearch() {
		t.Error("Expected a blank query to be an empty search")
	}
	if !s.HasToggles() || s.SearchDescription() {
		t.Errorf("unexpected toggles: %s", s)
	}

	if _, err := NewSearch("x", AllFields, -1); !errors.Is(err, models.ErrInvalidFilterState) {
		t.Errorf("NewSearch() with negative page error = %v, want ErrInvalidFilterState", err)
	}

	none, _ := NewSearch("egal", SearchToggles{}, 0)
	if none.HasToggles() {
		t.Error("Expected search without toggles to report HasToggles() == false")
	}

	moved := DefaultSearch.WithPage(3)
	if moved.Page() != 3 || DefaultSearch.Page() != 0 {
		t.Errorf("WithPage() must copy: moved=%d default=%d", moved.Page(), DefaultSearch.Page())
	}
	if !DefaultSearch.IsEmptySearch() || !DefaultSearch.SearchTags() {
		t.Error("Expected DefaultSearch to be empty with every toggle enabled")
	}
}

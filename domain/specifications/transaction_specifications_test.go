package specifications

import (
	"sort"
	"testing"
	"time"

	"github.com/ZanzyTHEbar/firedragon-ledger/domain/filter"
	"github.com/ZanzyTHEbar/firedragon-ledger/domain/models"
	"github.com/ZanzyTHEbar/firedragon-ledger/domain/predicate"
	"github.com/ZanzyTHEbar/firedragon-ledger/internal/ledgertest"
)

// run evaluates p over the reference ledger and sorts the matches
func run(l *ledgertest.Ledger, p predicate.Predicate) []*models.Transaction {
	var matched []*models.Transaction
	for _, tx := range l.Transactions() {
		if Matches(p, tx) {
			matched = append(matched, tx)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return TransactionOrdering.Less(TransactionRecord{matched[i]}, TransactionRecord{matched[j]})
	})
	return matched
}

func mustConfig(t *testing.T, opts ...filter.Option) filter.Configuration {
	t.Helper()
	cfg, err := filter.NewConfiguration(opts...)
	if err != nil {
		t.Fatalf("NewConfiguration() unexpected error: %v", err)
	}
	return cfg
}

func mustSearch(t *testing.T, query string, toggles filter.SearchToggles) filter.Search {
	t.Helper()
	s, err := filter.NewSearch(query, toggles, 0)
	if err != nil {
		t.Fatalf("NewSearch() unexpected error: %v", err)
	}
	return s
}

func TestForSearch(t *testing.T) {
	l := ledgertest.Build()

	tests := []struct {
		name    string
		search  filter.Search
		want    []*models.Transaction
		exclude []*models.Transaction
	}{
		{
			name:    "Only Name",
			search:  mustSearch(t, "Test", filter.SearchToggles{Name: true}),
			want:    []*models.Transaction{l.Transaction1},
			exclude: []*models.Transaction{l.Transaction2, l.Repeating, l.Transfer},
		},
		{
			name:    "Partial Name",
			search:  mustSearch(t, "es", filter.SearchToggles{Name: true}),
			want:    []*models.Transaction{l.Transaction1},
			exclude: []*models.Transaction{l.Transaction2, l.Repeating, l.Transfer},
		},
		{
			name:    "Ignore Case",
			search:  mustSearch(t, "tEST", filter.AllFields),
			want:    []*models.Transaction{l.Transaction1},
			exclude: []*models.Transaction{l.Transaction2, l.Repeating, l.Transfer},
		},
		{
			name:    "Description",
			search:  mustSearch(t, "What", filter.AllFields),
			want:    []*models.Transaction{l.Transaction1},
			exclude: []*models.Transaction{l.Transaction2, l.Repeating, l.Transfer},
		},
		{
			name:    "Only Category",
			search:  mustSearch(t, "xxx", filter.SearchToggles{Category: true}),
			want:    []*models.Transaction{l.Transaction2, l.Transfer},
			exclude: []*models.Transaction{l.Transaction1, l.Repeating},
		},
		{
			name:    "Only Tag",
			search:  mustSearch(t, "MyAwesomeTag", filter.SearchToggles{Tags: true}),
			want:    []*models.Transaction{l.Transaction1},
			exclude: []*models.Transaction{l.Transaction2, l.Repeating, l.Transfer},
		},
		{
			name:    "Partial Tag",
			search:  mustSearch(t, "Awesome", filter.SearchToggles{Tags: true}),
			want:    []*models.Transaction{l.Transaction1},
			exclude: []*models.Transaction{l.Transaction2, l.Repeating, l.Transfer},
		},
		{
			name:    "Mixed Fields",
			search:  mustSearch(t, "e", filter.AllFields),
			want:    []*models.Transaction{l.Transaction1, l.Repeating, l.Transfer},
			exclude: []*models.Transaction{l.Transaction2},
		},
		{
			name:    "Nothing Enabled",
			search:  mustSearch(t, "egal", filter.SearchToggles{}),
			exclude: l.Transactions(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := run(l, ForSearch(tt.search))
			for _, want := range tt.want {
				if !ledgertest.Contains(got, want) {
					t.Errorf("expected %q in results %v", want.Name, ledgertest.IDs(got))
				}
			}
			for _, unwanted := range tt.exclude {
				if ledgertest.Contains(got, unwanted) {
					t.Errorf("did not expect %q in results %v", unwanted.Name, ledgertest.IDs(got))
				}
			}
		})
	}
}

func TestForSearch_Order(t *testing.T) {
	l := ledgertest.Build()

	got := run(l, ForSearch(filter.DefaultSearch))
	want := []*models.Transaction{l.Transaction2, l.Transaction1, l.Transfer, l.Repeating}

	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", ledgertest.IDs(got), ledgertest.IDs(want))
	}
	for i := range want {
		if got[i].ID != want[i].ID {
			t.Errorf("position %d: got %q, want %q", i, got[i].Name, want[i].Name)
		}
	}
}

func TestForAccountInRange(t *testing.T) {
	l := ledgertest.Build()
	start := models.Day(2018, time.January, 1)
	end := models.Day(2018, time.December, 31)
	all := models.NewAllAccount("All accounts")

	tests := []struct {
		name    string
		account *models.Account
		start   time.Time
		end     time.Time
		cfg     filter.Configuration
		want    []*models.Transaction
	}{
		{
			name:    "Default Lists Everything Of Account",
			account: l.Account,
			cfg:     filter.Default,
			want:    []*models.Transaction{l.Transaction2, l.Transaction1, l.Transfer, l.Repeating},
		},
		{
			name:    "Narrow Window",
			account: l.Account,
			start:   models.Day(2018, time.October, 1),
			end:     models.Day(2018, time.October, 31),
			cfg:     filter.Default,
			want:    []*models.Transaction{l.Transaction1},
		},
		{
			name:    "Window Ends Inclusive",
			account: l.Account,
			start:   models.Day(2018, time.November, 3),
			end:     models.Day(2018, time.November, 3),
			cfg:     filter.Default,
			want:    []*models.Transaction{l.Transaction2},
		},
		{
			name:    "Income Only",
			account: l.Account,
			cfg:     mustConfig(t, filter.WithExpenditure(false), filter.WithTransfer(false)),
			want:    []*models.Transaction{l.Transaction1},
		},
		{
			name:    "Expenditure Only Without Transfers",
			account: l.Account,
			cfg:     mustConfig(t, filter.WithIncome(false), filter.WithTransfer(false)),
			want:    []*models.Transaction{l.Transaction2, l.Repeating},
		},
		{
			name:    "Incoming Transfer On Destination",
			account: l.Account2,
			cfg:     filter.Default,
			want:    []*models.Transaction{l.Transfer},
		},
		{
			name:    "Incoming Transfer Hidden When Disabled",
			account: l.Account2,
			cfg:     mustConfig(t, filter.WithTransfer(false)),
			want:    nil,
		},
		{
			name:    "Transfers Only",
			account: l.Account,
			cfg:     mustConfig(t, filter.WithIncome(false), filter.WithExpenditure(false)),
			want:    []*models.Transaction{l.Transfer},
		},
		{
			name:    "Nothing Enabled",
			account: l.Account,
			cfg:     mustConfig(t, filter.WithIncome(false), filter.WithExpenditure(false), filter.WithTransfer(false)),
			want:    nil,
		},
		{
			name:    "ALL Account Drops Transfers",
			account: all,
			cfg:     filter.Default,
			want:    []*models.Transaction{l.Transaction2, l.Transaction1, l.Repeating},
		},
		{
			name:    "Nil Account Behaves Like ALL",
			account: nil,
			cfg:     filter.Default,
			want:    []*models.Transaction{l.Transaction2, l.Transaction1, l.Repeating},
		},
		{
			name:    "Only Repeating",
			account: l.Account,
			cfg:     mustConfig(t, filter.WithRepeating(filter.OnlyRepeating)),
			want:    []*models.Transaction{l.Repeating},
		},
		{
			name:    "Only Non Repeating",
			account: l.Account,
			cfg:     mustConfig(t, filter.WithRepeating(filter.OnlyNonRepeating), filter.WithTransfer(false)),
			want:    []*models.Transaction{l.Transaction2, l.Transaction1},
		},
		{
			name:    "Category Set",
			account: l.Account,
			cfg:     mustConfig(t, filter.WithCategories(l.Category1.ID)),
			want:    []*models.Transaction{l.Transaction1, l.Repeating},
		},
		{
			name:    "Unknown Category Matches Nothing",
			account: l.Account,
			cfg:     mustConfig(t, filter.WithCategories(99), filter.WithTransfer(false)),
			want:    nil,
		},
		{
			name:    "Tags Are ORed",
			account: l.Account,
			cfg:     mustConfig(t, filter.WithTags(l.Tag1.ID, l.Tag2.ID)),
			want:    []*models.Transaction{l.Transaction1, l.Repeating},
		},
		{
			name:    "Empty Tag Set Matches Nothing",
			account: l.Account,
			cfg:     mustConfig(t, filter.WithTags(), filter.WithTransfer(false)),
			want:    nil,
		},
		{
			name:    "Name Substring",
			account: l.Account,
			cfg:     mustConfig(t, filter.WithName("LALA")),
			want:    []*models.Transaction{l.Transaction2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to := start, end
			if !tt.start.IsZero() {
				from, to = tt.start, tt.end
			}

			got := run(l, ForAccountInRange(from, to, tt.account, tt.cfg))

			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", ledgertest.IDs(got), ledgertest.IDs(tt.want))
			}
			for i := range tt.want {
				if got[i].ID != tt.want[i].ID {
					t.Errorf("position %d: got %q, want %q", i, got[i].Name, tt.want[i].Name)
				}
			}
			for _, tx := range got {
				if tx.Date.Before(from) || tx.Date.After(to) {
					t.Errorf("%q dated %v lies outside [%v, %v]", tx.Name, tx.Date, from, to)
				}
			}
		})
	}
}

func TestTransfersDegraded(t *testing.T) {
	l := ledgertest.Build()
	all := models.NewAllAccount("All accounts")

	if !TransfersDegraded(all, filter.Default) {
		t.Error("Expected transfers to be degraded for the ALL account")
	}
	if TransfersDegraded(l.Account, filter.Default) {
		t.Error("Expected transfers not to be degraded for a concrete account")
	}
	if TransfersDegraded(all, mustConfig(t, filter.WithTransfer(false))) {
		t.Error("Expected no degradation when transfers are disabled anyway")
	}
}

func TestForRest(t *testing.T) {
	l := ledgertest.Build()
	cutoff := models.Day(2018, time.October, 1)

	sum := func(p predicate.Predicate) int64 {
		var total int64
		for _, tx := range l.Transactions() {
			if Matches(p, tx) {
				total += tx.Amount
			}
		}
		return total
	}

	tests := []struct {
		name            string
		account         *models.Account
		wantNormal      int64
		wantSource      int64
		wantDestination int64
	}{
		{name: "Source Account", account: l.Account, wantNormal: -12300, wantSource: -500, wantDestination: 0},
		{name: "Destination Account", account: l.Account2, wantNormal: 0, wantSource: 0, wantDestination: -500},
		{name: "ALL Account", account: models.NewAllAccount("All"), wantNormal: -12300, wantSource: 0, wantDestination: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scopes := ForRest(tt.account, cutoff)
			if got := sum(scopes.Normal); got != tt.wantNormal {
				t.Errorf("normal sum = %d, want %d", got, tt.wantNormal)
			}
			if got := sum(scopes.TransferSource); got != tt.wantSource {
				t.Errorf("transfer source sum = %d, want %d", got, tt.wantSource)
			}
			if got := sum(scopes.TransferDestination); got != tt.wantDestination {
				t.Errorf("transfer destination sum = %d, want %d", got, tt.wantDestination)
			}
		})
	}
}

package cli_cmds

import (
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/ZanzyTHEbar/firedragon-ledger/adapters/repositories/memory"
	"github.com/ZanzyTHEbar/firedragon-ledger/domain/specifications"
	"github.com/ZanzyTHEbar/firedragon-ledger/internal"
	"github.com/ZanzyTHEbar/firedragon-ledger/internal/cli"
	"github.com/ZanzyTHEbar/firedragon-ledger/internal/ledgertest"
)

type testEnv struct {
	config *internal.Config
	logger *internal.Logger
	store  *memory.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg, err := internal.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() unexpected error: %v", err)
	}
	cfg.Database.Path = filepath.Join(t.TempDir(), "ledger.db")
	cfg.NATS.Enabled = false

	store := memory.NewStore()
	if _, err := ledgertest.Seed(context.Background(), store.Repositories()); err != nil {
		t.Fatalf("Seed() unexpected error: %v", err)
	}

	return &testEnv{
		config: cfg,
		logger: internal.NewLoggerWithWriter(io.Discard, internal.LogLevelError, nil),
		store:  store,
	}
}

// run executes args on a fresh command tree, as flags keep their values between executions
func (e *testEnv) run(args ...string) (string, error) {
	params := &cli.CmdParams{
		Config: e.config,
		Logger: e.logger,
		Use:    internal.DefaultAppName,
		Open: func(ctx context.Context, cfg *internal.Config, logger *internal.Logger) (*cli.App, error) {
			return cli.NewApp(cfg, logger, e.store.Repositories(), e.store, nil), nil
		},
	}
	params.Palette = GeneratePalette(params)
	defer params.Close()

	return cli.ExecuteCommand(cli.NewRoot(params), args...)
}

func (e *testEnv) remainingIDs(t *testing.T) []int64 {
	t.Helper()

	transactions, err := e.store.Repositories().Transactions.FindAll(context.Background(), specifications.Everything(), specifications.TransactionOrdering)
	if err != nil {
		t.Fatalf("FindAll() unexpected error: %v", err)
	}
	ids := ledgertest.IDs(transactions)
	slices.Sort(ids)
	return ids
}

func TestQueryCommands(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
		wantErr bool
	}{
		{
			name: "Month with carry-over",
			args: []string{"transactions", "--account", "1", "--month", "10", "--year", "2018", "--rest"},
			want: []string{"TestAccount, 2018-10", "Test", "Rest", "-128.00", "Income:      2.00", "Balance:     -126.00"},
		},
		{
			name:    "Month without carry-over",
			args:    []string{"transactions", "--account", "1", "--month", "11", "--year", "2018"},
			want:    []string{"lalala", "-5.25"},
			notWant: []string{"Rest"},
		},
		{
			name: "All accounts",
			args: []string{"transactions", "--month", "10", "--year", "2018", "--rest"},
			want: []string{"All accounts, 2018-10", "-123.00"},
		},
		{
			name:    "Range without repeating",
			args:    []string{"transactions", "range", "--account", "1", "--from", "2018-01-01", "--to", "2018-12-31", "--repeating", "none"},
			want:    []string{"Test", "lalala", "TransferTransaction", "TestAccount -> TestAccount2"},
			notWant: []string{"-123.00"},
		},
		{
			name:    "Range with only repeating",
			args:    []string{"transactions", "range", "--account", "1", "--from", "2018-01-01", "--to", "2018-12-31", "--repeating", "only"},
			want:    []string{"Repeating", "-123.00"},
			notWant: []string{"lalala", "TransferTransaction"},
		},
		{
			name:    "Range by category",
			args:    []string{"transactions", "range", "--account", "1", "--from", "2018-01-01", "--to", "2018-12-31", "--category", "1"},
			want:    []string{"Test", "Repeating"},
			notWant: []string{"lalala"},
		},
		{
			name:    "Until date",
			args:    []string{"transactions", "until", "--account", "1", "--date", "2018-09-01"},
			want:    []string{"TransferTransaction", "Repeating"},
			notWant: []string{"lalala"},
		},
		{
			name:    "Invalid repeating filter",
			args:    []string{"transactions", "--repeating", "sometimes"},
			wantErr: true,
		},
		{
			name:    "Invalid month",
			args:    []string{"transactions", "--month", "13"},
			wantErr: true,
		},
		{
			name:    "Invalid date",
			args:    []string{"transactions", "range", "--from", "03.10.2018", "--to", "2018-12-31"},
			wantErr: true,
		},
		{
			name:    "Unknown account",
			args:    []string{"transactions", "--account", "9"},
			wantErr: true,
		},
		{
			name:    "Search by name",
			args:    []string{"search", "test", "--fields", "name"},
			want:    []string{"Test", "Page 1 of 1 (1 results)"},
			notWant: []string{"lalala"},
		},
		{
			name: "Empty search lists everything",
			args: []string{"search"},
			want: []string{"Page 1 of 1 (4 results)"},
		},
		{
			name:    "Unknown search field",
			args:    []string{"search", "x", "--fields", "amount"},
			wantErr: true,
		},
		{
			name: "List accounts",
			args: []string{"accounts", "list", "--all"},
			want: []string{"All accounts", "TestAccount", "TestAccount2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			output, err := env.run(tt.args...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("run(%v) error = %v, wantErr %v\n%s", tt.args, err, tt.wantErr, output)
			}
			for _, want := range tt.want {
				if !strings.Contains(output, want) {
					t.Errorf("output does not contain %q:\n%s", want, output)
				}
			}
			for _, notWant := range tt.notWant {
				if strings.Contains(output, notWant) {
					t.Errorf("output contains %q:\n%s", notWant, output)
				}
			}
		})
	}
}

func TestDeleteCommands(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantIDs []int64
		wantErr bool
	}{
		{"Single transaction", []string{"delete", "1"}, []int64{2, 3, 4}, false},
		{"Repeating series", []string{"delete", "3"}, []int64{1, 2, 4}, false},
		{"Absent transaction", []string{"delete", "99"}, []int64{1, 2, 3, 4}, true},
		{"Transactions of an account", []string{"delete", "--account", "1"}, []int64{}, false},
		{"Transfers into an account", []string{"delete", "--account", "2"}, []int64{1, 2, 3}, false},
		{"All accounts", []string{"delete", "--account", "0"}, []int64{1, 2, 3, 4}, true},
		{"Everything unconfirmed", []string{"delete", "--all"}, []int64{1, 2, 3, 4}, true},
		{"Everything", []string{"delete", "--all", "--yes"}, []int64{}, false},
		{"Two modes", []string{"delete", "1", "--all", "--yes"}, []int64{1, 2, 3, 4}, true},
		{"No mode", []string{"delete"}, []int64{1, 2, 3, 4}, true},
		{"Account with its transactions", []string{"accounts", "delete", "2"}, []int64{1, 2, 3}, false},
		{"Synthetic account", []string{"accounts", "delete", "0"}, []int64{1, 2, 3, 4}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			output, err := env.run(tt.args...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("run(%v) error = %v, wantErr %v\n%s", tt.args, err, tt.wantErr, output)
			}
			if got := env.remainingIDs(t); !slices.Equal(got, tt.wantIDs) {
				t.Errorf("remaining IDs = %v, want %v", got, tt.wantIDs)
			}
		})
	}
}

func TestConfigCommand(t *testing.T) {
	env := newTestEnv(t)

	output, err := env.run("config", "get", "search.items_per_page")
	if err != nil {
		t.Fatalf("config get unexpected error: %v", err)
	}
	if strings.TrimSpace(output) != "search.items_per_page = 10" {
		t.Errorf("config get = %q", output)
	}

	if _, err := env.run("config", "get", "search.nothing"); err == nil {
		t.Error("config get of an unknown key should fail")
	}

	output, err = env.run("config", "list", "--format", "json")
	if err != nil {
		t.Fatalf("config list unexpected error: %v", err)
	}
	var settings map[string]interface{}
	if err := json.Unmarshal([]byte(output), &settings); err != nil {
		t.Fatalf("config list output is not JSON: %v\n%s", err, output)
	}
	if settings["database.path"] != env.config.Database.Path {
		t.Errorf("database.path = %v, want %s", settings["database.path"], env.config.Database.Path)
	}
}

func TestMigrateCommand(t *testing.T) {
	env := newTestEnv(t)

	output, err := env.run("migrate", "version")
	if err != nil {
		t.Fatalf("migrate version unexpected error: %v", err)
	}
	if !strings.Contains(output, "Schema version 0 (clean)") {
		t.Errorf("fresh database output = %q", output)
	}

	for i := 0; i < 2; i++ {
		output, err = env.run("migrate")
		if err != nil {
			t.Fatalf("migrate run %d unexpected error: %v", i+1, err)
		}
		if !strings.Contains(output, "Schema version 1 (clean)") {
			t.Errorf("migrate run %d output = %q", i+1, output)
		}
	}
}

func TestVersionAndHelp(t *testing.T) {
	env := newTestEnv(t)

	output, err := env.run("version")
	if err != nil {
		t.Fatalf("version unexpected error: %v", err)
	}
	if !strings.Contains(output, internal.Version) {
		t.Errorf("version output = %q", output)
	}

	output, err = env.run("detailed_help", "--all")
	if err != nil {
		t.Fatalf("detailed_help unexpected error: %v", err)
	}
	for _, want := range []string{"transactions", "  - range", "accounts", "  - delete <account-id>"} {
		if !strings.Contains(output, want) {
			t.Errorf("detailed_help output does not contain %q:\n%s", want, output)
		}
	}
}

// Package sqlite stores the ledger in a SQLite file. Predicates are lowered to
// dbx expressions and evaluated by the database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pocketbase/dbx"
	"github.com/rs/zerolog"

	"github.com/ZanzyTHEbar/firedragon-ledger/domain/repositories"
	"github.com/ZanzyTHEbar/firedragon-ledger/internal"
)

const driverName = "sqlite3"

// DSN builds the connection string for path. Foreign keys are enforced on
// every pooled connection.
func DSN(path string) string {
	return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
}

// Database is an open ledger database
type Database struct {
	db   *dbx.DB
	path string
}

// Open opens the database file at path, creating its directory when missing
func Open(path string) (*Database, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := dbx.Open(driverName, DSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.DB().Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Query logging stays off unless the Storage component is enabled
	if global := internal.GetLogger(); global.IsComponentEnabled(internal.ComponentStorage) {
		logger := global.Component(internal.ComponentStorage)
		db.QueryLogFunc = func(ctx context.Context, t time.Duration, sql string, rows *sql.Rows, err error) {
			logQuery(logger, t, sql, err)
		}
		db.ExecLogFunc = func(ctx context.Context, t time.Duration, sql string, result sql.Result, err error) {
			logQuery(logger, t, sql, err)
		}
	}

	return &Database{db: db, path: path}, nil
}

func logQuery(logger zerolog.Logger, t time.Duration, sql string, err error) {
	event := logger.Debug()
	if err != nil {
		event = logger.Warn().Err(err)
	}
	event.Dur("took", t).Str("sql", sql).Msg("Query")
}

// Path returns the database file
func (d *Database) Path() string {
	return d.path
}

// Migrate applies the pending schema migrations
func (d *Database) Migrate() error {
	return RunMigrations(DSN(d.path))
}

// Close closes the database
func (d *Database) Close() error {
	return d.db.Close()
}

// Repositories returns the repositories backed by the database
func (d *Database) Repositories() repositories.Repositories {
	return repositoriesFor(d.db)
}

// RunInTransaction runs fn in a database transaction. The transaction commits
// when fn returns nil and rolls back otherwise.
func (d *Database) RunInTransaction(ctx context.Context, fn func(ctx context.Context, repos repositories.Repositories) error) error {
	return d.db.TransactionalContext(ctx, nil, func(tx *dbx.Tx) error {
		return fn(ctx, repositoriesFor(tx))
	})
}

func repositoriesFor(b dbx.Builder) repositories.Repositories {
	return repositories.Repositories{
		Transactions:     &TransactionRepository{db: b},
		Accounts:         &AccountRepository{db: b},
		Categories:       &CategoryRepository{db: b},
		Tags:             &TagRepository{db: b},
		RepeatingOptions: &RepeatingOptionRepository{db: b},
	}
}

// atomically runs fn in a transaction unless b already is one
func atomically(ctx context.Context, b dbx.Builder, fn func(dbx.Builder) error) error {
	db, ok := b.(*dbx.DB)
	if !ok {
		return fn(b)
	}
	return db.TransactionalContext(ctx, nil, func(tx *dbx.Tx) error {
		return fn(tx)
	})
}

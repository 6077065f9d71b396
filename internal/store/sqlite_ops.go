// sqlite_ops.go provides SQLite connection management and low-level operations.
//
// Separated to isolate SQLite-specific concerns (pragmas, connection pooling,
// driver registration) from the entity and search code.
//
// Design: pragmas are passed in the DSN so every pooled connection gets them,
// not just the first one. WAL lets the HTTP server serve searches while a
// write is in flight; the busy timeout absorbs short write contention.

package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/sergi/go-diff/diffmatchpatch"

	// Register sqlite driver
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite with WAL mode for concurrent access.
type SQLiteStore struct {
	db  *sql.DB
	dmp *diffmatchpatch.DiffMatchPatch

	mu    sync.RWMutex
	fuzzy Fuzzy
}

// Compile-time interface compliance check.
var _ Store = (*SQLiteStore)(nil)

// pragmas applied to every connection.
var pragmas = []string{
	"journal_mode(WAL)",
	"busy_timeout(5000)",
	"synchronous(NORMAL)",
	"foreign_keys(1)",
}

// Open opens the SQLite database file at path and returns a configured
// SQLiteStore. The caller should call Close on the returned store.
func Open(path string) (*SQLiteStore, error) {
	params := make([]string, len(pragmas))
	for i, p := range pragmas {
		params[i] = "_pragma=" + p
	}
	db, err := sql.Open("sqlite", "file:"+path+"?"+strings.Join(params, "&"))
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0

	return &SQLiteStore{db: db, dmp: dmp, fuzzy: DefaultFuzzy}, nil
}

// Init creates tables, indexes and triggers if they don't exist. Safe to call
// multiple times.
func (s *SQLiteStore) Init() error {
	return execSchema(s.db)
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// DB exposes the underlying connection.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// SetFuzzy replaces the fuzzy expansion settings. Negative edit budgets are
// treated as 0 (exact matching) and MaxExpansions is at least 1, the
// unexpanded term itself.
func (s *SQLiteStore) SetFuzzy(f Fuzzy) {
	f.MaxEdits = max(0, f.MaxEdits)
	f.CompleteMaxEdits = max(0, f.CompleteMaxEdits)
	f.MaxExpansions = max(1, f.MaxExpansions)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.fuzzy = f
}

func (s *SQLiteStore) fuzzySettings() Fuzzy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fuzzy
}

// scanner abstracts sql.Row and sql.Rows, enabling a single scan function
// to handle both single-row and multi-row queries.
type scanner interface {
	Scan(dest ...any) error
}

// querier is satisfied by both *sql.DB and *sql.Tx so hydration helpers run
// inside or outside a transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Tx executes fn within a database transaction, handling Begin/Commit/Rollback.
// If fn returns an error the transaction is rolled back.
func (s *SQLiteStore) Tx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// FileID creates an attachment identifier of the form file_xxxxxxxxx
// (nine base36 characters from crypto/rand).
func FileID() (string, error) {
	b := make([]byte, 9)
	base := big.NewInt(int64(len(idAlphabet)))
	for i := range b {
		n, err := rand.Int(rand.Reader, base)
		if err != nil {
			return "", fmt.Errorf("generate file id: %w", err)
		}
		b[i] = idAlphabet[n.Int64()]
	}
	return "file_" + string(b), nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

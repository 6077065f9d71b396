// Package log provides centralised audit logging for stash operations.
// Logs are stored in ~/.stash/log/stash-log.db and record every CLI command,
// HTTP request handler and MCP tool invocation.
//
// # Fluent API
//
//	log.Event("note:show", "read").
//		Owner(owner).
//		Target(id).
//		Write(err)
//
//	log.Event("api:notes", "search").
//		Owner(owner).
//		Detail("query", q).
//		Detail("strategy", res.Plan.Strategy.String()).
//		Detail("count", len(res.Hits)).
//		Write(err)
//
// The source parameter follows the format "{surface}:{command}": "note:add"
// for CLI commands, "api:notes" for HTTP handlers, "mcp:{tool}" for MCP tools.
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source string // e.g., "note:add", "api:bookmarks", "mcp:stash_search_notes"
	Owner  string // whose records were touched
	Action string // verb: read, write, delete, search, complete, etc.
	Target string // id of the note or bookmark acted on, if any

	// Timing, unix milliseconds
	Start int64
	End   int64

	Success bool
	Error   string
	Detail  map[string]any
}

// Builder constructs a log entry using a fluent API.
// Create with [Event], chain methods to set fields, then call [Builder.Write].
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().UnixMilli(),
		},
	}
}

// Owner sets whose records the operation read or changed.
func (b *Builder) Owner(owner string) *Builder {
	b.entry.Owner = owner
	return b
}

// Target sets the id of the record acted on.
//
// Set it after the operation when the id is only known then (creates):
//
//	l := log.Event("note:add", "write").Owner(owner)
//	n, err := svc.CreateNote(ctx, owner, in, nil)
//	if err == nil {
//		l.Target(n.ID)
//	}
//	l.Write(err)
func (b *Builder) Target(id string) *Builder {
	b.entry.Target = id
	return b
}

// Detail adds a key-value pair to the entry's detail map. Use it for search
// queries, result counts and anything else that doesn't fit a column.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the log entry, deriving success/failure from err.
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().UnixMilli()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may choose to ignore them (best-effort logging).
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetInstance sets the instance identifier for subsequent log entries.
// The dir should be the absolute path to the stash data directory.
func SetInstance(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.instance = hash(dir)
	}
}

// Log writes an entry. Safe to call if logger not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}

// interfaces.go defines the storage abstraction for notes and bookmarks.
//
// The interfaces are granular so consumers depend only on what they use: the
// service layer writes through NoteWriter/BookmarkWriter, the search layer
// reads through the per-entity indexes returned by Notes() and Bookmarks().

package store

import (
	"context"
	"database/sql"

	"github.com/jpl-au/stash/internal/search"
)

// Users manages the owners records are scoped to.
type Users interface {
	AddUser(ctx context.Context, id string) error
	UserExists(ctx context.Context, id string) (bool, error)
	ListUsers(ctx context.Context) ([]string, error)
}

// NoteReader retrieves a single note.
type NoteReader interface {
	// Note returns owner's note id, or ErrNotFound.
	Note(ctx context.Context, owner, id string) (*Note, error)
}

// NoteWriter mutates notes. Every method is scoped by the note's owner.
type NoteWriter interface {
	// CreateNote assigns an id and timestamps to n and persists it.
	CreateNote(ctx context.Context, n *Note) error
	// UpdateNote replaces n's mutable fields and bumps UpdatedAt.
	UpdateNote(ctx context.Context, n *Note) error
	// DeleteNote removes the note and returns what was removed.
	DeleteNote(ctx context.Context, owner, id string) (*Note, error)
}

// BookmarkReader retrieves a single bookmark.
type BookmarkReader interface {
	Bookmark(ctx context.Context, owner, id string) (*Bookmark, error)
}

// BookmarkWriter mutates bookmarks.
type BookmarkWriter interface {
	CreateBookmark(ctx context.Context, b *Bookmark) error
	UpdateBookmark(ctx context.Context, b *Bookmark) error
	DeleteBookmark(ctx context.Context, owner, id string) (*Bookmark, error)
}

// Indexes exposes the per-entity retrieval engines.
type Indexes interface {
	Notes() *NoteIndex
	Bookmarks() *BookmarkIndex
}

// Maintainer handles database lifecycle.
type Maintainer interface {
	Init() error
	Close() error
	Checkpoint(ctx context.Context) error
	Tx(ctx context.Context, fn func(tx *sql.Tx) error) error
}

// Store combines all storage capabilities.
type Store interface {
	Users
	NoteReader
	NoteWriter
	BookmarkReader
	BookmarkWriter
	Indexes
	Maintainer
}

var (
	_ search.Source[Note]                  = (*NoteIndex)(nil)
	_ search.Completer[NoteSuggestion]     = (*NoteIndex)(nil)
	_ search.Source[Bookmark]              = (*BookmarkIndex)(nil)
	_ search.Completer[BookmarkSuggestion] = (*BookmarkIndex)(nil)
)

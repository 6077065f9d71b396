// Package service defines the shared interface for notes and bookmarks.
// The CLI, HTTP API and MCP server depend on this interface rather than the
// concrete implementation in package library, so each surface can be tested
// against a fake and every surface gets identical semantics.
package service

import (
	"context"
	"io"

	"github.com/jpl-au/stash/internal/search"
	"github.com/jpl-au/stash/internal/store"
)

// Service defines all note and bookmark operations. Every operation is
// scoped by owner; a record owned by someone else is reported as
// store.ErrNotFound.
//
// Example:
//
//	svc, err := library.New()
//	if err != nil {
//	    return err
//	}
//	defer svc.Close()
//	res, err := svc.SearchNotes(ctx, "alice", "trip plan", nil)
type Service interface {
	// Close releases database resources. Always defer this after New().
	Close() error

	// AddUser registers an owner. Returns store.ErrAlreadyExists for duplicates.
	AddUser(ctx context.Context, id string) error

	// UserExists reports whether id is a registered owner.
	UserExists(ctx context.Context, id string) (bool, error)

	// Users returns every registered owner.
	Users(ctx context.Context) ([]string, error)

	// CreateNote validates in and every upload, stores the uploads, then
	// persists the note. Nothing is uploaded if any upload is invalid.
	CreateNote(ctx context.Context, owner string, in NoteInput, uploads []Upload) (*store.Note, error)

	// Note returns a single note.
	Note(ctx context.Context, owner, id string) (*store.Note, error)

	// UpdateNote applies patch (nil fields are kept) and appends uploads to
	// the note's files.
	UpdateNote(ctx context.Context, owner, id string, patch NotePatch, uploads []Upload) (*store.Note, error)

	// DeleteNote removes a note and, best-effort, its attachment blobs.
	DeleteNote(ctx context.Context, owner, id string) (*store.Note, error)

	// DeleteNoteFile removes one attachment: the blob first, then the
	// descriptor. Concurrent edits of the same note can lose an update.
	DeleteNoteFile(ctx context.Context, owner, noteID, fileID string) (*store.Note, error)

	// SearchNotes runs the search pipeline over the owner's notes.
	SearchNotes(ctx context.Context, owner, q string, tags []string) (search.Result[store.Note], error)

	// CompleteNotes suggests notes whose title starts with prefix.
	CompleteNotes(ctx context.Context, owner, prefix string) ([]store.NoteSuggestion, error)

	// NoteTags returns the distinct tags used on the owner's notes.
	NoteTags(ctx context.Context, owner string) ([]string, error)

	// CreateBookmark validates the url and fills a blank title or
	// description from the page's metadata, then from defaults.
	CreateBookmark(ctx context.Context, owner string, in BookmarkInput) (*store.Bookmark, error)

	// Bookmark returns a single bookmark.
	Bookmark(ctx context.Context, owner, id string) (*store.Bookmark, error)

	// UpdateBookmark applies patch. A new url with a blank title or
	// description refetches metadata for the blank fields.
	UpdateBookmark(ctx context.Context, owner, id string, patch BookmarkPatch) (*store.Bookmark, error)

	// DeleteBookmark removes a bookmark.
	DeleteBookmark(ctx context.Context, owner, id string) (*store.Bookmark, error)

	// SearchBookmarks runs the search pipeline over the owner's bookmarks.
	SearchBookmarks(ctx context.Context, owner, q string, tags []string) (search.Result[store.Bookmark], error)

	// CompleteBookmarks suggests bookmarks whose url, title or description
	// has a word starting with prefix.
	CompleteBookmarks(ctx context.Context, owner, prefix string) ([]store.BookmarkSuggestion, error)

	// BookmarkTags returns the distinct tags used on the owner's bookmarks.
	BookmarkTags(ctx context.Context, owner string) ([]string, error)
}

// NoteInput is a new note.
type NoteInput struct {
	Title    string
	Content  string
	Tags     []string
	Favorite bool
}

// NotePatch changes an existing note. Nil fields are left unchanged.
type NotePatch struct {
	Title    *string
	Content  *string
	Tags     *[]string
	Favorite *bool
}

// BookmarkInput is a new bookmark.
type BookmarkInput struct {
	URL         string
	Title       string
	Description string
	Tags        []string
	Favorite    bool
}

// BookmarkPatch changes an existing bookmark. Nil fields are left unchanged,
// and so are blank title and description.
type BookmarkPatch struct {
	URL         *string
	Title       *string
	Description *string
	Tags        *[]string
	Favorite    *bool
}

// Upload is an attachment supplied with a note create or update.
type Upload struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// ScoredNote is a note search hit as surfaces render it. Score is omitted
// when the result was not ranked.
type ScoredNote struct {
	store.Note
	Score *float64 `json:"score,omitempty"`
}

// ScoredBookmark is a bookmark search hit as surfaces render it.
type ScoredBookmark struct {
	store.Bookmark
	Score *float64 `json:"score,omitempty"`
}

// NoteHits projects a note search result for output.
func NoteHits(res search.Result[store.Note]) []ScoredNote {
	out := make([]ScoredNote, len(res.Hits))
	for i, h := range res.Hits {
		out[i] = ScoredNote{Note: h.Record, Score: score(res.Ranked(), h.Score)}
	}
	return out
}

// BookmarkHits projects a bookmark search result for output.
func BookmarkHits(res search.Result[store.Bookmark]) []ScoredBookmark {
	out := make([]ScoredBookmark, len(res.Hits))
	for i, h := range res.Hits {
		out[i] = ScoredBookmark{Bookmark: h.Record, Score: score(res.Ranked(), h.Score)}
	}
	return out
}

func score(ranked bool, s float64) *float64 {
	if !ranked {
		return nil
	}
	return &s
}

// index.go adapts the store to the search package's Source and Completer
// interfaces, one adapter per entity.
//
// Ranked queries join the FTS5 index to the base table so the owner and tag
// conditions are applied in the same statement as the MATCH. Scores are the
// negated bm25 value, so higher is better.

package store

import (
	"context"
	"fmt"

	"github.com/jpl-au/stash/internal/search"
)

// NoteIndex is the note retrieval engine.
type NoteIndex struct{ s *SQLiteStore }

// BookmarkIndex is the bookmark retrieval engine.
type BookmarkIndex struct{ s *SQLiteStore }

// Notes returns the note retrieval engine.
func (s *SQLiteStore) Notes() *NoteIndex { return &NoteIndex{s: s} }

// Bookmarks returns the bookmark retrieval engine.
func (s *SQLiteStore) Bookmarks() *BookmarkIndex { return &BookmarkIndex{s: s} }

// List returns all of owner's notes in creation order.
func (x *NoteIndex) List(ctx context.Context, owner string) ([]Note, error) {
	return queryNotes(ctx, x.s.db,
		`SELECT `+noteColumns+` FROM notes n WHERE n.owner = ? ORDER BY n.seq`, owner)
}

// ListTagged returns owner's notes carrying every tag, in creation order.
func (x *NoteIndex) ListTagged(ctx context.Context, owner string, tags []string) ([]Note, error) {
	cond, args := noteTable.tagFilter("n", tags)
	query := `SELECT ` + noteColumns + ` FROM notes n WHERE n.owner = ?`
	if cond != "" {
		query += ` AND ` + cond
	}
	return queryNotes(ctx, x.s.db, query+` ORDER BY n.seq`, append([]any{owner}, args...)...)
}

// Tags returns the distinct tags on owner's notes.
func (x *NoteIndex) Tags(ctx context.Context, owner string) ([]string, error) {
	return x.s.listTags(ctx, noteTable, owner)
}

// Rank runs fuzzy full-text retrieval over q.Fields, keeping only notes that
// carry every tag in q.Tags. A positive q.Limit keeps only the best matches.
func (x *NoteIndex) Rank(ctx context.Context, owner string, q search.Query) ([]search.Hit[Note], error) {
	match, err := x.s.rankedMatch(ctx, noteTable, q.Text, q.Fields)
	if err != nil || match == "" {
		return []search.Hit[Note]{}, err
	}

	query := `SELECT ` + noteColumns + `, bm25(notes_fts)
		FROM notes_fts JOIN notes n ON n.seq = notes_fts.rowid
		WHERE notes_fts MATCH ? AND n.owner = ?`
	args := []any{match, owner}
	if cond, targs := noteTable.tagFilter("n", q.Tags); cond != "" {
		query += ` AND ` + cond
		args = append(args, targs...)
	}
	query += ` ORDER BY bm25(notes_fts), n.updated_at DESC, n.seq`
	if q.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, q.Limit)
	}

	rows, err := x.s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search notes: %w", err)
	}
	defer rows.Close()

	var notes []Note
	var scores []float64
	for rows.Next() {
		var rank float64
		n, err := scanNote(rows, &rank)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, n)
		scores = append(scores, -rank)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search notes: %w", err)
	}
	rows.Close()

	if err := hydrateNotes(ctx, x.s.db, notes); err != nil {
		return nil, err
	}
	hits := make([]search.Hit[Note], len(notes))
	for i := range notes {
		hits[i] = search.Hit[Note]{Record: notes[i], Score: scores[i]}
	}
	return hits, nil
}

// Complete matches q.Text as a word-aligned prefix of q.Fields.
func (x *NoteIndex) Complete(ctx context.Context, owner string, q search.Query) ([]NoteSuggestion, error) {
	match, err := x.s.prefixMatch(ctx, noteTable, q.Text, q.Fields)
	if err != nil || match == "" {
		return []NoteSuggestion{}, err
	}

	rows, err := x.s.db.QueryContext(ctx,
		`SELECT n.id, n.title, bm25(notes_fts)
		 FROM notes_fts JOIN notes n ON n.seq = notes_fts.rowid
		 WHERE notes_fts MATCH ? AND n.owner = ?
		 ORDER BY bm25(notes_fts), n.title`, match, owner)
	if err != nil {
		return nil, fmt.Errorf("complete notes: %w", err)
	}
	defer rows.Close()

	out := []NoteSuggestion{}
	for rows.Next() {
		var s NoteSuggestion
		var rank float64
		if err := rows.Scan(&s.ID, &s.Title, &rank); err != nil {
			return nil, fmt.Errorf("scan note suggestion: %w", err)
		}
		s.Score = -rank
		out = append(out, s)
	}
	return out, rows.Err()
}

// List returns all of owner's bookmarks in creation order.
func (x *BookmarkIndex) List(ctx context.Context, owner string) ([]Bookmark, error) {
	return queryBookmarks(ctx, x.s.db,
		`SELECT `+bookmarkColumns+` FROM bookmarks b WHERE b.owner = ? ORDER BY b.seq`, owner)
}

// ListTagged returns owner's bookmarks carrying every tag, in creation order.
func (x *BookmarkIndex) ListTagged(ctx context.Context, owner string, tags []string) ([]Bookmark, error) {
	cond, args := bookmarkTable.tagFilter("b", tags)
	query := `SELECT ` + bookmarkColumns + ` FROM bookmarks b WHERE b.owner = ?`
	if cond != "" {
		query += ` AND ` + cond
	}
	return queryBookmarks(ctx, x.s.db, query+` ORDER BY b.seq`, append([]any{owner}, args...)...)
}

// Tags returns the distinct tags on owner's bookmarks.
func (x *BookmarkIndex) Tags(ctx context.Context, owner string) ([]string, error) {
	return x.s.listTags(ctx, bookmarkTable, owner)
}

// Rank runs fuzzy full-text retrieval over q.Fields, keeping only bookmarks
// that carry every tag in q.Tags. A positive q.Limit keeps only the best
// matches.
func (x *BookmarkIndex) Rank(ctx context.Context, owner string, q search.Query) ([]search.Hit[Bookmark], error) {
	match, err := x.s.rankedMatch(ctx, bookmarkTable, q.Text, q.Fields)
	if err != nil || match == "" {
		return []search.Hit[Bookmark]{}, err
	}

	query := `SELECT ` + bookmarkColumns + `, bm25(bookmarks_fts)
		FROM bookmarks_fts JOIN bookmarks b ON b.seq = bookmarks_fts.rowid
		WHERE bookmarks_fts MATCH ? AND b.owner = ?`
	args := []any{match, owner}
	if cond, targs := bookmarkTable.tagFilter("b", q.Tags); cond != "" {
		query += ` AND ` + cond
		args = append(args, targs...)
	}
	query += ` ORDER BY bm25(bookmarks_fts), b.updated_at DESC, b.seq`
	if q.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, q.Limit)
	}

	rows, err := x.s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search bookmarks: %w", err)
	}
	defer rows.Close()

	var bookmarks []Bookmark
	var scores []float64
	for rows.Next() {
		var rank float64
		b, err := scanBookmark(rows, &rank)
		if err != nil {
			return nil, fmt.Errorf("scan bookmark: %w", err)
		}
		bookmarks = append(bookmarks, b)
		scores = append(scores, -rank)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search bookmarks: %w", err)
	}
	rows.Close()

	if err := hydrateBookmarks(ctx, x.s.db, bookmarks); err != nil {
		return nil, err
	}
	hits := make([]search.Hit[Bookmark], len(bookmarks))
	for i := range bookmarks {
		hits[i] = search.Hit[Bookmark]{Record: bookmarks[i], Score: scores[i]}
	}
	return hits, nil
}

// Complete matches q.Text as a word-aligned prefix of any of q.Fields.
func (x *BookmarkIndex) Complete(ctx context.Context, owner string, q search.Query) ([]BookmarkSuggestion, error) {
	match, err := x.s.prefixMatch(ctx, bookmarkTable, q.Text, q.Fields)
	if err != nil || match == "" {
		return []BookmarkSuggestion{}, err
	}

	rows, err := x.s.db.QueryContext(ctx,
		`SELECT b.id, b.url, b.title, b.description, bm25(bookmarks_fts)
		 FROM bookmarks_fts JOIN bookmarks b ON b.seq = bookmarks_fts.rowid
		 WHERE bookmarks_fts MATCH ? AND b.owner = ?
		 ORDER BY bm25(bookmarks_fts), b.title`, match, owner)
	if err != nil {
		return nil, fmt.Errorf("complete bookmarks: %w", err)
	}
	defer rows.Close()

	out := []BookmarkSuggestion{}
	for rows.Next() {
		var s BookmarkSuggestion
		var rank float64
		if err := rows.Scan(&s.ID, &s.URL, &s.Title, &s.Description, &rank); err != nil {
			return nil, fmt.Errorf("scan bookmark suggestion: %w", err)
		}
		s.Score = -rank
		out = append(out, s)
	}
	return out, rows.Err()
}

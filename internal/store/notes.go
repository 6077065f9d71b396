// notes.go implements owner-scoped note persistence.
//
// A note spans three tables (notes, note_tags, note_files). Writes touch all
// three inside one transaction; reads hydrate tags and files in two batched
// queries regardless of how many notes were selected.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const noteColumns = `n.seq, n.id, n.owner, n.title, n.content, n.favorite, n.created_at, n.updated_at`

// scanNote reads noteColumns followed by any extra destinations.
func scanNote(sc scanner, extra ...any) (Note, error) {
	var n Note
	var fav int
	var created, updated int64
	dest := append([]any{&n.seq, &n.ID, &n.Owner, &n.Title, &n.Content, &fav, &created, &updated}, extra...)
	if err := sc.Scan(dest...); err != nil {
		return n, err
	}
	n.Favorite = fav != 0
	n.CreatedAt = unixTime(created)
	n.UpdatedAt = unixTime(updated)
	return n, nil
}

// hydrateNotes fills Tags and Files for each note in place.
func hydrateNotes(ctx context.Context, q querier, notes []Note) error {
	seqs := make([]int64, len(notes))
	for i := range notes {
		seqs[i] = notes[i].seq
	}
	tags, err := loadTags(ctx, q, noteTable, seqs)
	if err != nil {
		return err
	}
	files, err := loadFiles(ctx, q, seqs)
	if err != nil {
		return err
	}
	for i := range notes {
		notes[i].Tags = nonNil(tags[notes[i].seq])
		notes[i].Files = nonNil(files[notes[i].seq])
	}
	return nil
}

// queryNotes runs a note query and hydrates the results.
func queryNotes(ctx context.Context, q querier, query string, args ...any) ([]Note, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()

	notes := []Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	rows.Close()

	if err := hydrateNotes(ctx, q, notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func noteByID(ctx context.Context, q querier, owner, id string) (*Note, error) {
	row := q.QueryRowContext(ctx,
		`SELECT `+noteColumns+` FROM notes n WHERE n.id = ? AND n.owner = ?`, id, owner)
	n, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("note %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scan note: %w", err)
	}
	notes := []Note{n}
	if err := hydrateNotes(ctx, q, notes); err != nil {
		return nil, err
	}
	return &notes[0], nil
}

// Note returns owner's note id.
func (s *SQLiteStore) Note(ctx context.Context, owner, id string) (*Note, error) {
	return noteByID(ctx, s.db, owner, id)
}

// CreateNote persists n, assigning ID, CreatedAt and UpdatedAt.
func (s *SQLiteStore) CreateNote(ctx context.Context, n *Note) error {
	now := time.Now().UTC()
	n.ID = uuid.NewString()
	n.CreatedAt, n.UpdatedAt = now, now
	n.Tags = nonNil(n.Tags)
	n.Files = nonNil(n.Files)

	return s.Tx(ctx, func(tx *sql.Tx) error {
		if err := requireOwner(ctx, tx, n.Owner); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx,
			`INSERT INTO notes (id, owner, title, content, favorite, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			n.ID, n.Owner, n.Title, n.Content, boolInt(n.Favorite), now.UnixNano(), now.UnixNano())
		if err != nil {
			return fmt.Errorf("insert note: %w", err)
		}
		if n.seq, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("insert note: %w", err)
		}
		if err := replaceTags(ctx, tx, noteTable, n.seq, n.Tags); err != nil {
			return err
		}
		return replaceFiles(ctx, tx, n.seq, n.Files)
	})
}

// UpdateNote replaces the title, content, tags, favorite flag and file list
// of the note identified by n.ID and n.Owner.
func (s *SQLiteStore) UpdateNote(ctx context.Context, n *Note) error {
	now := time.Now().UTC()
	n.Tags = nonNil(n.Tags)
	n.Files = nonNil(n.Files)

	return s.Tx(ctx, func(tx *sql.Tx) error {
		var seq, created int64
		err := tx.QueryRowContext(ctx,
			`SELECT seq, created_at FROM notes WHERE id = ? AND owner = ?`, n.ID, n.Owner).Scan(&seq, &created)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("note %s: %w", n.ID, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("lookup note: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE notes SET title = ?, content = ?, favorite = ?, updated_at = ? WHERE seq = ?`,
			n.Title, n.Content, boolInt(n.Favorite), now.UnixNano(), seq)
		if err != nil {
			return fmt.Errorf("update note: %w", err)
		}
		if err := replaceTags(ctx, tx, noteTable, seq, n.Tags); err != nil {
			return err
		}
		if err := replaceFiles(ctx, tx, seq, n.Files); err != nil {
			return err
		}
		n.seq = seq
		n.CreatedAt = unixTime(created)
		n.UpdatedAt = now
		return nil
	})
}

// DeleteNote removes owner's note id along with its tags and file
// descriptors, returning the removed note so callers can release blobs.
func (s *SQLiteStore) DeleteNote(ctx context.Context, owner, id string) (*Note, error) {
	var n *Note
	err := s.Tx(ctx, func(tx *sql.Tx) error {
		var err error
		if n, err = noteByID(ctx, tx, owner, id); err != nil {
			return err
		}
		for _, stmt := range []string{
			`DELETE FROM note_tags WHERE note_seq = ?`,
			`DELETE FROM note_files WHERE note_seq = ?`,
			`DELETE FROM notes WHERE seq = ?`,
		} {
			if _, err := tx.ExecContext(ctx, stmt, n.seq); err != nil {
				return fmt.Errorf("delete note: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return n, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

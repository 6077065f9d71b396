// bookmarks.go implements owner-scoped bookmark persistence. Same shape as
// notes.go without attachments.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const bookmarkColumns = `b.seq, b.id, b.owner, b.url, b.title, b.description, b.favorite, b.created_at, b.updated_at`

func scanBookmark(sc scanner, extra ...any) (Bookmark, error) {
	var b Bookmark
	var fav int
	var created, updated int64
	dest := append([]any{&b.seq, &b.ID, &b.Owner, &b.URL, &b.Title, &b.Description, &fav, &created, &updated}, extra...)
	if err := sc.Scan(dest...); err != nil {
		return b, err
	}
	b.Favorite = fav != 0
	b.CreatedAt = unixTime(created)
	b.UpdatedAt = unixTime(updated)
	return b, nil
}

func hydrateBookmarks(ctx context.Context, q querier, bookmarks []Bookmark) error {
	seqs := make([]int64, len(bookmarks))
	for i := range bookmarks {
		seqs[i] = bookmarks[i].seq
	}
	tags, err := loadTags(ctx, q, bookmarkTable, seqs)
	if err != nil {
		return err
	}
	for i := range bookmarks {
		bookmarks[i].Tags = nonNil(tags[bookmarks[i].seq])
	}
	return nil
}

func queryBookmarks(ctx context.Context, q querier, query string, args ...any) ([]Bookmark, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query bookmarks: %w", err)
	}
	defer rows.Close()

	bookmarks := []Bookmark{}
	for rows.Next() {
		b, err := scanBookmark(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bookmark: %w", err)
		}
		bookmarks = append(bookmarks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query bookmarks: %w", err)
	}
	rows.Close()

	if err := hydrateBookmarks(ctx, q, bookmarks); err != nil {
		return nil, err
	}
	return bookmarks, nil
}

func bookmarkByID(ctx context.Context, q querier, owner, id string) (*Bookmark, error) {
	row := q.QueryRowContext(ctx,
		`SELECT `+bookmarkColumns+` FROM bookmarks b WHERE b.id = ? AND b.owner = ?`, id, owner)
	b, err := scanBookmark(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("bookmark %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scan bookmark: %w", err)
	}
	bookmarks := []Bookmark{b}
	if err := hydrateBookmarks(ctx, q, bookmarks); err != nil {
		return nil, err
	}
	return &bookmarks[0], nil
}

// Bookmark returns owner's bookmark id.
func (s *SQLiteStore) Bookmark(ctx context.Context, owner, id string) (*Bookmark, error) {
	return bookmarkByID(ctx, s.db, owner, id)
}

// CreateBookmark persists b, assigning ID, CreatedAt and UpdatedAt.
func (s *SQLiteStore) CreateBookmark(ctx context.Context, b *Bookmark) error {
	now := time.Now().UTC()
	b.ID = uuid.NewString()
	b.CreatedAt, b.UpdatedAt = now, now
	b.Tags = nonNil(b.Tags)

	return s.Tx(ctx, func(tx *sql.Tx) error {
		if err := requireOwner(ctx, tx, b.Owner); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx,
			`INSERT INTO bookmarks (id, owner, url, title, description, favorite, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			b.ID, b.Owner, b.URL, b.Title, b.Description, boolInt(b.Favorite), now.UnixNano(), now.UnixNano())
		if err != nil {
			return fmt.Errorf("insert bookmark: %w", err)
		}
		if b.seq, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("insert bookmark: %w", err)
		}
		return replaceTags(ctx, tx, bookmarkTable, b.seq, b.Tags)
	})
}

// UpdateBookmark replaces the url, title, description, tags and favorite flag
// of the bookmark identified by b.ID and b.Owner.
func (s *SQLiteStore) UpdateBookmark(ctx context.Context, b *Bookmark) error {
	now := time.Now().UTC()
	b.Tags = nonNil(b.Tags)

	return s.Tx(ctx, func(tx *sql.Tx) error {
		var seq, created int64
		err := tx.QueryRowContext(ctx,
			`SELECT seq, created_at FROM bookmarks WHERE id = ? AND owner = ?`, b.ID, b.Owner).Scan(&seq, &created)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("bookmark %s: %w", b.ID, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("lookup bookmark: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE bookmarks SET url = ?, title = ?, description = ?, favorite = ?, updated_at = ? WHERE seq = ?`,
			b.URL, b.Title, b.Description, boolInt(b.Favorite), now.UnixNano(), seq)
		if err != nil {
			return fmt.Errorf("update bookmark: %w", err)
		}
		if err := replaceTags(ctx, tx, bookmarkTable, seq, b.Tags); err != nil {
			return err
		}
		b.seq = seq
		b.CreatedAt = unixTime(created)
		b.UpdatedAt = now
		return nil
	})
}

// DeleteBookmark removes owner's bookmark id and returns it.
func (s *SQLiteStore) DeleteBookmark(ctx context.Context, owner, id string) (*Bookmark, error) {
	var b *Bookmark
	err := s.Tx(ctx, func(tx *sql.Tx) error {
		var err error
		if b, err = bookmarkByID(ctx, tx, owner, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM bookmark_tags WHERE bookmark_seq = ?`, b.seq); err != nil {
			return fmt.Errorf("delete bookmark: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM bookmarks WHERE seq = ?`, b.seq); err != nil {
			return fmt.Errorf("delete bookmark: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// tags.go loads and writes the tag sets attached to notes and bookmarks.
//
// Tags live in per-entity join tables keyed by the row's seq. Tag order is
// insertion order (the join table's rowid); matching is exact and
// case-sensitive.

package store

import (
	"context"
	"fmt"
	"strings"
)

// loadTags returns the tags of every seq in seqs, keyed by seq.
func loadTags(ctx context.Context, q querier, t table, seqs []int64) (map[int64][]string, error) {
	out := make(map[int64][]string, len(seqs))
	err := inBatches(seqs, func(ph string, args []any) error {
		rows, err := q.QueryContext(ctx,
			fmt.Sprintf(`SELECT %s, tag FROM %s WHERE %s IN (%s) ORDER BY rowid`, t.fk, t.tags, t.fk, ph),
			args...)
		if err != nil {
			return fmt.Errorf("load %s tags: %w", t.name, err)
		}
		defer rows.Close()

		for rows.Next() {
			var seq int64
			var tag string
			if err := rows.Scan(&seq, &tag); err != nil {
				return fmt.Errorf("scan %s tag: %w", t.name, err)
			}
			out[seq] = append(out[seq], tag)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// replaceTags overwrites the tag set of seq.
func replaceTags(ctx context.Context, q querier, t table, seq int64, tags []string) error {
	if _, err := q.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`, t.tags, t.fk), seq); err != nil {
		return fmt.Errorf("clear %s tags: %w", t.name, err)
	}
	stmt := fmt.Sprintf(`INSERT OR IGNORE INTO %s (%s, tag) VALUES (?, ?)`, t.tags, t.fk)
	for _, tag := range tags {
		if _, err := q.ExecContext(ctx, stmt, seq, tag); err != nil {
			return fmt.Errorf("tag %s: %w", t.name, err)
		}
	}
	return nil
}

// listTags returns every distinct tag used by owner across t, sorted.
func (s *SQLiteStore) listTags(ctx context.Context, t table, owner string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT DISTINCT tg.tag FROM %s tg JOIN %s e ON e.seq = tg.%s WHERE e.owner = ? ORDER BY tg.tag`,
		t.tags, t.name, t.fk), owner)
	if err != nil {
		return nil, fmt.Errorf("list %s tags: %w", t.name, err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("scan %s tag: %w", t.name, err)
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// maxBatch bounds the placeholders in one IN clause, well under SQLite's
// host parameter limit.
const maxBatch = 500

// inBatches calls fn with placeholders and args for successive slices of
// seqs, at most maxBatch at a time.
func inBatches(seqs []int64, fn func(ph string, args []any) error) error {
	for len(seqs) > 0 {
		n := min(len(seqs), maxBatch)
		ph, args := inList(seqs[:n])
		if err := fn(ph, args); err != nil {
			return err
		}
		seqs = seqs[n:]
	}
	return nil
}

// inList renders placeholders and args for an IN clause.
func inList(seqs []int64) (string, []any) {
	args := make([]any, len(seqs))
	for i, s := range seqs {
		args[i] = s
	}
	return strings.TrimSuffix(strings.Repeat("?,", len(seqs)), ","), args
}

// files.go loads and writes note attachment descriptors.
//
// Descriptors are stored in note_files ordered by position. The attachment
// bytes live in object storage; this table only records where.

package store

import (
	"context"
	"database/sql"
	"fmt"
)

// loadFiles returns the attachment descriptors of every seq in seqs, keyed
// by seq and in attachment order.
func loadFiles(ctx context.Context, q querier, seqs []int64) (map[int64][]File, error) {
	out := make(map[int64][]File, len(seqs))
	err := inBatches(seqs, func(ph string, args []any) error {
		rows, err := q.QueryContext(ctx,
			`SELECT note_seq, id, storage_id, url, type, name, size FROM note_files
			 WHERE note_seq IN (`+ph+`) ORDER BY note_seq, position`, args...)
		if err != nil {
			return fmt.Errorf("load note files: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var seq int64
			var f File
			var name sql.NullString
			var size sql.NullInt64
			if err := rows.Scan(&seq, &f.ID, &f.StorageID, &f.URL, &f.Type, &name, &size); err != nil {
				return fmt.Errorf("scan note file: %w", err)
			}
			f.Name = name.String
			f.Size = size.Int64
			out[seq] = append(out[seq], f)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// replaceFiles overwrites the attachment list of seq, preserving order.
func replaceFiles(ctx context.Context, q querier, seq int64, files []File) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM note_files WHERE note_seq = ?`, seq); err != nil {
		return fmt.Errorf("clear note files: %w", err)
	}
	for i, f := range files {
		_, err := q.ExecContext(ctx,
			`INSERT INTO note_files (id, note_seq, position, storage_id, url, type, name, size)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			f.ID, seq, i, f.StorageID, f.URL, string(f.Type), nullString(f.Name), nullInt(f.Size))
		if err != nil {
			return fmt.Errorf("store note file %s: %w", f.ID, err)
		}
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(n int64) sql.NullInt64 {
	return sql.NullInt64{Int64: n, Valid: n != 0}
}

package store

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// AddUser registers an owner id. Returns ErrAlreadyExists for duplicates.
func (s *SQLiteStore) AddUser(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("add user: %w", ErrUnknownOwner)
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO users (id, created_at) VALUES (?, ?)`, id, time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("add user %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("user %s: %w", id, ErrAlreadyExists)
	}
	return nil
}

// UserExists reports whether id is a registered owner.
func (s *SQLiteStore) UserExists(ctx context.Context, id string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE id = ?`, id).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("lookup user %s: %w", id, err)
	}
	return n > 0, nil
}

// ListUsers returns all owner ids in creation order.
func (s *SQLiteStore) ListUsers(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// requireOwner fails with ErrUnknownOwner unless owner has a user row.
func requireOwner(ctx context.Context, q querier, owner string) error {
	var n int
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE id = ?`, owner).Scan(&n); err != nil {
		return fmt.Errorf("lookup owner: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrUnknownOwner, owner)
	}
	return nil
}

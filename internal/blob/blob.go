// Package blob stores note attachments outside the database.
//
// Two backends exist: Local writes under the data directory's files/ folder
// and is served by the HTTP layer; S3 uploads to a bucket (AWS or any
// S3-compatible endpoint) and returns the object's public URL.
package blob

import (
	"context"
	"errors"
	"io"
	"strings"
)

// ErrInvalidKey is returned for keys that could escape the storage root.
var ErrInvalidKey = errors.New("invalid blob key")

// Object identifies a stored blob.
type Object struct {
	Key string // backend identifier, used for Delete
	URL string // where clients fetch the blob
}

// Store persists and removes attachment blobs.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (Object, error)
	Delete(ctx context.Context, key string) error
}

// checkKey rejects keys that are empty, absolute or contain path traversal.
func checkKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return ErrInvalidKey
	}
	for _, part := range strings.Split(key, "/") {
		if part == "" || part == "." || part == ".." {
			return ErrInvalidKey
		}
	}
	return nil
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + key
}

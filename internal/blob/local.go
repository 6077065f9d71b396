package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultLocalURL is the path the HTTP server serves local blobs under.
const DefaultLocalURL = "/files"

// Local stores blobs as files under a root directory.
type Local struct {
	root    string
	baseURL string
}

var _ Store = (*Local)(nil)

// NewLocal returns a Local store rooted at root. Blob URLs are baseURL/key;
// an empty baseURL uses DefaultLocalURL.
func NewLocal(root, baseURL string) (*Local, error) {
	if baseURL == "" {
		baseURL = DefaultLocalURL
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("create blob directory: %w", err)
	}
	return &Local{root: root, baseURL: baseURL}, nil
}

// Root returns the directory blobs are written to.
func (l *Local) Root() string { return l.root }

// Put writes r to root/key atomically (temp file + rename).
func (l *Local) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (Object, error) {
	if err := checkKey(key); err != nil {
		return Object{}, err
	}
	if err := ctx.Err(); err != nil {
		return Object{}, err
	}

	dst := filepath.Join(l.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return Object{}, fmt.Errorf("create blob directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return Object{}, fmt.Errorf("create blob: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after rename

	n, err := io.Copy(tmp, r)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return Object{}, fmt.Errorf("write blob %s: %w", key, err)
	}
	if size >= 0 && n != size {
		return Object{}, fmt.Errorf("write blob %s: wrote %d of %d bytes", key, n, size)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return Object{}, fmt.Errorf("write blob %s: %w", key, err)
	}
	return Object{Key: key, URL: joinURL(l.baseURL, key)}, nil
}

// Delete removes root/key. Deleting a missing blob is not an error.
func (l *Local) Delete(ctx context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	err := os.Remove(filepath.Join(l.root, filepath.FromSlash(key)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete blob %s: %w", key, err)
	}
	return nil
}

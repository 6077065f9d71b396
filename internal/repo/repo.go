// Package repo provides data directory initialisation and discovery for stash.
//
// A stash data directory is a .stash directory holding the SQLite database
// (stash.db) and, for the local attachment backend, a files/ directory of
// uploaded blobs. This package handles:
//   - Initialising new data directories (creating .stash/, the database and files/)
//   - Discovering existing data directories by walking up the directory tree
//   - Controlling git visibility of attachments via .gitignore
//
// Discovery mirrors git: starting from the current directory, walk up until a
// .stash directory containing stash.db is found, or the filesystem root is
// reached.
package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jpl-au/stash/internal/store"
)

const (
	// Dir is the directory name for the stash data directory.
	Dir = ".stash"
	// DBFile is the database filename.
	DBFile = "stash.db"
	// FilesDir holds attachments written by the local blob backend.
	FilesDir = "files"
)

// ErrNotInitialised is returned when no stash data directory is found.
var ErrNotInitialised = errors.New("stash not initialised (run 'stash init')")

// Options control Init.
type Options struct {
	Force      bool   // reinitialise an existing database
	TrackFiles bool   // commit attachments instead of ignoring files/
	Dir        string // parent directory (empty for current directory)
}

// Init initialises a new stash data directory and returns its path.
//
// Init does not write config, following the git model: config is managed
// separately via "stash config".
func Init(opts Options) (string, error) {
	parent := opts.Dir
	if parent == "" {
		parent = "."
	}
	dir := filepath.Join(parent, Dir)
	dbPath := filepath.Join(dir, DBFile)

	if _, err := os.Stat(dbPath); err == nil {
		if !opts.Force {
			return "", fmt.Errorf("database %s already exists (use --force to reinitialise)", dbPath)
		}
		for _, p := range []string{dbPath, dbPath + "-wal", dbPath + "-shm"} {
			if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
				return "", fmt.Errorf("remove database: %w", err)
			}
		}
	}

	if err := os.MkdirAll(filepath.Join(dir, FilesDir), 0755); err != nil {
		return "", fmt.Errorf("create directory: %w", err)
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return "", fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	if err := s.Init(); err != nil {
		return "", fmt.Errorf("init store: %w", err)
	}

	if err := writeGitignore(dir); err != nil {
		return "", err
	}
	if opts.TrackFiles {
		err = TrackFiles(dir)
	} else {
		err = IgnoreFiles(dir)
	}
	if err != nil {
		return "", fmt.Errorf("update gitignore: %w", err)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return dir, nil
	}
	return abs, nil
}

// Discover walks up the directory tree looking for a stash database.
// Returns the full path to the database if found.
func Discover() (string, error) {
	dir, err := DiscoverDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DBFile), nil
}

// DiscoverDir finds the .stash directory containing a database, walking up
// the tree. Returns the absolute path to the .stash directory.
func DiscoverDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, Dir)
		if _, err := os.Stat(filepath.Join(candidate, DBFile)); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotInitialised
		}
		dir = parent
	}
}

// Files returns the attachment directory inside a data directory.
func Files(dir string) string {
	return filepath.Join(dir, FilesDir)
}

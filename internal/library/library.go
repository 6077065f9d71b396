// Package library implements service.Service on top of the SQLite store,
// the search composers and an attachment blob store.
//
// It owns everything between a surface (CLI, HTTP, MCP) and storage: input
// validation, tag normalisation, attachment upload and cleanup, bookmark
// metadata enrichment, and wiring each entity's index into its search
// composer.
package library

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jpl-au/stash/internal/blob"
	"github.com/jpl-au/stash/internal/config"
	"github.com/jpl-au/stash/internal/log"
	"github.com/jpl-au/stash/internal/metadata"
	"github.com/jpl-au/stash/internal/repo"
	"github.com/jpl-au/stash/internal/search"
	"github.com/jpl-au/stash/internal/service"
	"github.com/jpl-au/stash/internal/store"
	"github.com/jpl-au/stash/internal/validate"
)

// MetaFetcher looks up a page's title and description.
type MetaFetcher interface {
	Fetch(ctx context.Context, url string) (metadata.Meta, error)
}

// Options configure a Service built with NewWithStore.
type Options struct {
	Blobs       blob.Store  // attachment storage; required for uploads
	Metadata    MetaFetcher // nil disables bookmark enrichment
	MaxTitle    int
	MaxContent  int64
	MaxFileSize int64
}

// Service implements service.Service.
type Service struct {
	store     *store.SQLiteStore
	notes     *search.Composer[store.Note, store.NoteSuggestion]
	bookmarks *search.Composer[store.Bookmark, store.BookmarkSuggestion]
	blobs     blob.Store
	meta      MetaFetcher

	maxTitle    int
	maxContent  int64
	maxFileSize int64
}

var _ service.Service = (*Service)(nil)

// New opens the stash found by walking up from the working directory,
// configured from the loaded config. Returns repo.ErrNotInitialised if no
// stash is found.
func New() (*Service, error) {
	dbPath, err := repo.Discover()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return Open(context.Background(), dbPath, cfg)
}

// Open opens the database at dbPath and builds a Service from cfg.
func Open(ctx context.Context, dbPath string, cfg *config.Config) (*Service, error) {
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		s.Close()
		return nil, fmt.Errorf("init store: %w", err)
	}
	s.SetFuzzy(store.Fuzzy{
		MaxEdits:         cfg.MaxEdits(),
		MaxExpansions:    cfg.MaxExpansions(),
		CompleteMaxEdits: cfg.CompleteMaxEdits(),
	})

	blobs, err := OpenBlobs(ctx, filepath.Dir(dbPath), cfg)
	if err != nil {
		s.Close()
		return nil, err
	}

	var meta MetaFetcher
	if cfg.MetadataEnabled() {
		meta = metadata.New(cfg.MetadataTimeout())
	}

	return NewWithStore(s, Options{
		Blobs:       blobs,
		Metadata:    meta,
		MaxTitle:    cfg.MaxTitle(),
		MaxContent:  cfg.MaxContent(),
		MaxFileSize: cfg.MaxFileSize(),
	}), nil
}

// OpenBlobs builds the attachment store selected by cfg. The local backend
// writes under dir's files/ folder.
func OpenBlobs(ctx context.Context, dir string, cfg *config.Config) (blob.Store, error) {
	switch cfg.Backend() {
	case config.BackendS3:
		return blob.NewS3(ctx, blob.S3Options{
			Bucket:    cfg.Storage.Bucket,
			Region:    cfg.Storage.Region,
			Endpoint:  cfg.Storage.Endpoint,
			PublicURL: cfg.Storage.PublicURL,
			AccessKey: os.Getenv("STASH_STORAGE_ACCESS_KEY"),
			SecretKey: os.Getenv("STASH_STORAGE_SECRET_KEY"),
		})
	default:
		return blob.NewLocal(repo.Files(dir), cfg.Storage.PublicURL)
	}
}

// NewWithStore wraps an open store. The Service takes ownership of s.
func NewWithStore(s *store.SQLiteStore, opts Options) *Service {
	return &Service{
		store:       s,
		notes:       search.New[store.Note, store.NoteSuggestion](search.Notes, s.Notes(), s.Notes()),
		bookmarks:   search.New[store.Bookmark, store.BookmarkSuggestion](search.Bookmarks, s.Bookmarks(), s.Bookmarks()),
		blobs:       opts.Blobs,
		meta:        opts.Metadata,
		maxTitle:    opts.MaxTitle,
		maxContent:  opts.MaxContent,
		maxFileSize: opts.MaxFileSize,
	}
}

// Close checkpoints the WAL and closes the database connection.
func (s *Service) Close() error {
	if err := s.store.Checkpoint(context.Background()); err != nil {
		log.Event("library:close", "checkpoint").Write(err)
	}
	return s.store.Close()
}

// Blobs returns the attachment store.
func (s *Service) Blobs() blob.Store {
	return s.blobs
}

// AddUser registers an owner.
func (s *Service) AddUser(ctx context.Context, id string) error {
	if err := validate.ID(id); err != nil {
		return err
	}
	return s.store.AddUser(ctx, id)
}

// Users returns every registered owner.
func (s *Service) Users(ctx context.Context) ([]string, error) {
	return s.store.ListUsers(ctx)
}

// UserExists reports whether id is a registered owner.
func (s *Service) UserExists(ctx context.Context, id string) (bool, error) {
	return s.store.UserExists(ctx, id)
}

// requireOwner rejects a blank owner before any work is done.
func requireOwner(owner string) error {
	if strings.TrimSpace(owner) == "" {
		return search.ErrNoOwner
	}
	return nil
}

// parseTags normalises and validates tag input.
func parseTags(in []string) ([]string, error) {
	tags := search.ParseTags(in...)
	if err := validate.Tags(tags); err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []string{}
	}
	return tags, nil
}

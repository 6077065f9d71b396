// bookmarks.go implements bookmark operations.
//
// A bookmark always has a title and description. Blank ones are filled from
// the page's metadata when a fetcher is configured, then from fixed
// defaults. Fetch failures are logged and otherwise ignored: a slow or
// broken page never blocks saving the link.

package library

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/jpl-au/stash/internal/log"
	"github.com/jpl-au/stash/internal/metadata"
	"github.com/jpl-au/stash/internal/search"
	"github.com/jpl-au/stash/internal/service"
	"github.com/jpl-au/stash/internal/store"
	"github.com/jpl-au/stash/internal/validate"
)

// Defaults for bookmarks whose page offers no metadata.
const (
	DefaultBookmarkTitle       = "Untitled Bookmark"
	DefaultBookmarkDescription = "No description"
)

// CreateBookmark validates in, enriches blank fields and persists the bookmark.
func (s *Service) CreateBookmark(ctx context.Context, owner string, in service.BookmarkInput) (*store.Bookmark, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}
	url := strings.TrimSpace(in.URL)
	if err := validate.URL(url); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(in.Title)
	if title != "" {
		if err := validate.Title(title, s.maxTitle); err != nil {
			return nil, err
		}
	}
	tags, err := parseTags(in.Tags)
	if err != nil {
		return nil, err
	}

	desc := strings.TrimSpace(in.Description)
	if title == "" || desc == "" {
		m := s.fetchMeta(ctx, owner, url)
		title = first(title, s.clip(m.Title))
		desc = first(desc, m.Description)
	}

	b := &store.Bookmark{
		Owner:       owner,
		URL:         url,
		Title:       first(title, DefaultBookmarkTitle),
		Description: first(desc, DefaultBookmarkDescription),
		Tags:        tags,
		Favorite:    in.Favorite,
	}
	if err := s.store.CreateBookmark(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Bookmark returns owner's bookmark id.
func (s *Service) Bookmark(ctx context.Context, owner, id string) (*store.Bookmark, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}
	if err := validate.ID(id); err != nil {
		return nil, err
	}
	return s.store.Bookmark(ctx, owner, id)
}

// UpdateBookmark applies patch. Blank title and description leave the
// current values, unless a url is given and its page supplies new ones.
func (s *Service) UpdateBookmark(ctx context.Context, owner, id string, patch service.BookmarkPatch) (*store.Bookmark, error) {
	b, err := s.Bookmark(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	title := trimmed(patch.Title)
	if title != "" {
		if err := validate.Title(title, s.maxTitle); err != nil {
			return nil, err
		}
	}
	desc := trimmed(patch.Description)

	if patch.URL != nil {
		url := strings.TrimSpace(*patch.URL)
		if err := validate.URL(url); err != nil {
			return nil, err
		}
		b.URL = url
		if title == "" || desc == "" {
			m := s.fetchMeta(ctx, owner, url)
			title = first(title, s.clip(m.Title))
			desc = first(desc, m.Description)
		}
	}
	if title != "" {
		b.Title = title
	}
	if desc != "" {
		b.Description = desc
	}
	if patch.Tags != nil {
		if b.Tags, err = parseTags(*patch.Tags); err != nil {
			return nil, err
		}
	}
	if patch.Favorite != nil {
		b.Favorite = *patch.Favorite
	}

	if err := s.store.UpdateBookmark(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// DeleteBookmark removes owner's bookmark id.
func (s *Service) DeleteBookmark(ctx context.Context, owner, id string) (*store.Bookmark, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}
	if err := validate.ID(id); err != nil {
		return nil, err
	}
	return s.store.DeleteBookmark(ctx, owner, id)
}

// SearchBookmarks runs the search pipeline over owner's bookmarks.
func (s *Service) SearchBookmarks(ctx context.Context, owner, q string, tags []string) (search.Result[store.Bookmark], error) {
	return s.bookmarks.Search(ctx, owner, q, tags)
}

// CompleteBookmarks suggests owner's bookmarks by word prefix.
func (s *Service) CompleteBookmarks(ctx context.Context, owner, prefix string) ([]store.BookmarkSuggestion, error) {
	return s.bookmarks.Complete(ctx, owner, prefix)
}

// BookmarkTags returns the distinct tags on owner's bookmarks.
func (s *Service) BookmarkTags(ctx context.Context, owner string) ([]string, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}
	return s.store.Bookmarks().Tags(ctx, owner)
}

func (s *Service) fetchMeta(ctx context.Context, owner, url string) metadata.Meta {
	if s.meta == nil {
		return metadata.Meta{}
	}
	m, err := s.meta.Fetch(ctx, url)
	log.Event("metadata:fetch", "fetch").
		Owner(owner).
		Detail("url", url).
		Write(err)
	if err != nil {
		return metadata.Meta{}
	}
	return metadata.Meta{
		Title:       strings.TrimSpace(m.Title),
		Description: strings.TrimSpace(m.Description),
	}
}

// clip shortens a fetched title to the configured limit.
func (s *Service) clip(title string) string {
	if s.maxTitle <= 0 || utf8.RuneCountInString(title) <= s.maxTitle {
		return title
	}
	return strings.TrimSpace(string([]rune(title)[:s.maxTitle]))
}

func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func trimmed(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

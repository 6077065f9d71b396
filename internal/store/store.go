// Package store persists notes, bookmarks and their owners in SQLite and
// serves as the ranked/fuzzy/prefix retrieval engine behind the search
// package.
//
// Every read and write is scoped by owner. A record owned by someone else
// behaves exactly like a missing record (ErrNotFound).
package store

import "time"

// FileType classifies a note attachment.
type FileType string

const (
	FileImage    FileType = "IMAGE"
	FileAudio    FileType = "AUDIO"
	FileDocument FileType = "DOCUMENT"
)

// File describes an attachment held in external object storage. Note content
// references it as file:<ID>.
type File struct {
	ID        string   `json:"id"`
	StorageID string   `json:"storageId"`
	URL       string   `json:"url"`
	Type      FileType `json:"type"`
	Name      string   `json:"name,omitempty"`
	Size      int64    `json:"size,omitempty"`
}

// Note is a markdown note with tags and attachments.
type Note struct {
	ID        string    `json:"_id"`
	Owner     string    `json:"-"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	Favorite  bool      `json:"favorite"`
	Files     []File    `json:"files"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	seq int64
}

// Updated returns the last modification time.
func (n Note) Updated() time.Time { return n.UpdatedAt }

// File returns the attachment with the given id.
func (n *Note) File(id string) (File, bool) {
	for _, f := range n.Files {
		if f.ID == id {
			return f, true
		}
	}
	return File{}, false
}

// Bookmark is a saved url with optional title and description.
type Bookmark struct {
	ID          string    `json:"_id"`
	Owner       string    `json:"-"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	Favorite    bool      `json:"favorite"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	seq int64
}

// Updated returns the last modification time.
func (b Bookmark) Updated() time.Time { return b.UpdatedAt }

// NoteSuggestion is the minimal autocomplete projection of a note.
type NoteSuggestion struct {
	ID    string  `json:"_id"`
	Title string  `json:"title"`
	Score float64 `json:"score"`
}

// Rank returns the relevance score used to order suggestions.
func (s NoteSuggestion) Rank() float64 { return s.Score }

// Label returns the title, which breaks score ties.
func (s NoteSuggestion) Label() string { return s.Title }

// BookmarkSuggestion is the minimal autocomplete projection of a bookmark.
type BookmarkSuggestion struct {
	ID          string  `json:"_id"`
	URL         string  `json:"url"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Score       float64 `json:"score"`
}

// Rank returns the relevance score used to order suggestions.
func (s BookmarkSuggestion) Rank() float64 { return s.Score }

// Label returns the title, which breaks score ties.
func (s BookmarkSuggestion) Label() string { return s.Title }

// Fuzzy tunes term expansion for ranked and prefix retrieval.
type Fuzzy struct {
	MaxEdits         int // edit distance allowed for ranked terms
	MaxExpansions    int // variants considered per term (and phrases per prefix)
	CompleteMaxEdits int // edit distance allowed for autocomplete prefixes
}

// DefaultFuzzy mirrors the usual managed-search defaults: two edits and
// fifty expansions, with a tighter budget for type-ahead.
var DefaultFuzzy = Fuzzy{
	MaxEdits:         2,
	MaxExpansions:    50,
	CompleteMaxEdits: 1,
}

func unixTime(ns int64) time.Time {
	return time.Unix(0, ns).UTC()
}

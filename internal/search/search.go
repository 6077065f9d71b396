// Package search composes owner-scoped retrieval for notes and bookmarks.
//
// A request is reduced once to a Plan whose Strategy is one of Unranked,
// TagFilterOnly or Ranked. Each strategy has exactly one execution path in
// the Composer, and only the Ranked path reaches the ranked-retrieval engine.
// Autocomplete is a separate path that goes straight to the engine's prefix
// matcher.
//
// The package is generic over the record type so notes and bookmarks share
// one decision procedure. What differs per entity lives in an Entity value:
// which fields are searched, which fields autocomplete, and which field
// breaks autocomplete ties.
package search

import (
	"context"
	"errors"
	"time"
)

const (
	// MinQueryLength is the shortest trimmed query, in characters, that is
	// ranked. Anything shorter takes a fallback path.
	MinQueryLength = 2
	// Limit caps ranked results and autocomplete suggestions.
	Limit = 10
)

// ErrNoOwner is returned when a search is attempted without a resolved owner.
var ErrNoOwner = errors.New("owner not resolved")

// Entity describes how one record type is searched.
type Entity struct {
	Name           string   // singular name used in errors and logs
	Fields         []string // fields scored by ranked full-text search
	CompleteFields []string // fields matched by autocomplete prefixes
	Display        string   // field that breaks autocomplete score ties
}

// Notes are ranked on title and content and autocompleted on title.
var Notes = Entity{
	Name:           "note",
	Fields:         []string{"title", "content"},
	CompleteFields: []string{"title"},
	Display:        "title",
}

// Bookmarks are ranked and autocompleted on url, title and description.
var Bookmarks = Entity{
	Name:           "bookmark",
	Fields:         []string{"url", "title", "description"},
	CompleteFields: []string{"url", "title", "description"},
	Display:        "title",
}

// Record is a stored entity that can be ordered by recency.
type Record interface {
	Updated() time.Time
}

// Hit is a record annotated with its relevance score.
type Hit[T Record] struct {
	Record T
	Score  float64
}

// Suggestion is one autocomplete row. Label returns the Display field.
type Suggestion interface {
	Rank() float64
	Label() string
}

// Query is what the engine receives for ranked and prefix retrieval.
// Tags, when set, is a hard superset filter applied after matching.
type Query struct {
	Text   string
	Fields []string
	Tags   []string
	// Limit, when positive, lets an engine stop after that many best
	// matches. Callers still shape the result.
	Limit int
}

// Source is the persistent store seen from one entity type. Every method is
// scoped to owner; implementations must never return another owner's rows.
type Source[T Record] interface {
	// List returns every record of owner in storage order.
	List(ctx context.Context, owner string) ([]T, error)
	// ListTagged returns owner's records whose tags contain every tag.
	ListTagged(ctx context.Context, owner string, tags []string) ([]T, error)
	// Rank runs fuzzy full-text retrieval and returns scored matches.
	Rank(ctx context.Context, owner string, q Query) ([]Hit[T], error)
}

// Completer runs prefix retrieval for autocomplete.
type Completer[S Suggestion] interface {
	Complete(ctx context.Context, owner string, q Query) ([]S, error)
}

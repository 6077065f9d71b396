// plan.go decides the retrieval strategy for a search request.
//
// The decision is pure: it never touches the store, never fails on content,
// and is made once per request. The only failure is a missing owner.

package search

import (
	"strings"
	"unicode/utf8"
)

// Strategy selects one of the three retrieval paths.
type Strategy int

const (
	// Unranked lists every record of the owner. No cap.
	Unranked Strategy = iota
	// TagFilterOnly lists the owner's records carrying every requested tag. No cap.
	TagFilterOnly
	// Ranked runs fuzzy full-text retrieval, optionally post-filtered by tags.
	Ranked
)

func (s Strategy) String() string {
	switch s {
	case Unranked:
		return "unranked"
	case TagFilterOnly:
		return "tags"
	case Ranked:
		return "ranked"
	}
	return "unknown"
}

// Plan is a normalised search request.
type Plan struct {
	Strategy Strategy
	Owner    string
	Text     string   // trimmed; empty unless Strategy is Ranked
	Tags     []string // normalised; may be empty
}

// Compose normalises (owner, text, tags) into a Plan. Tags are expected to be
// normalised by ParseTags already; they are normalised again so direct
// callers get the same behaviour.
func Compose(owner, text string, tags []string) (Plan, error) {
	if strings.TrimSpace(owner) == "" {
		return Plan{}, ErrNoOwner
	}

	p := Plan{Owner: owner, Tags: ParseTags(tags...)}
	text = strings.TrimSpace(text)

	switch {
	case utf8.RuneCountInString(text) >= MinQueryLength:
		p.Strategy = Ranked
		p.Text = text
	case len(p.Tags) > 0:
		p.Strategy = TagFilterOnly
	default:
		p.Strategy = Unranked
	}
	return p, nil
}

// composer.go executes a Plan against an entity's Source.
//
// Each Strategy maps to one execution function. Engine failures propagate
// unchanged; a failed ranked search is never retried as a listing because
// that would silently change what the results mean.

package search

import (
	"context"
	"fmt"
	"strings"
)

// Result is the outcome of a search. Scores are meaningful only when Ranked.
type Result[T Record] struct {
	Plan Plan
	Hits []Hit[T]
}

// Ranked reports whether hits carry relevance scores.
func (r Result[T]) Ranked() bool {
	return r.Plan.Strategy == Ranked
}

// Records returns the hit records in order.
func (r Result[T]) Records() []T {
	out := make([]T, len(r.Hits))
	for i, h := range r.Hits {
		out[i] = h.Record
	}
	return out
}

// Composer runs searches and autocompletes for one entity type.
type Composer[T Record, S Suggestion] struct {
	entity    Entity
	source    Source[T]
	completer Completer[S]
	limit     int
}

// New creates a Composer for entity backed by src and c.
func New[T Record, S Suggestion](entity Entity, src Source[T], c Completer[S]) *Composer[T, S] {
	return &Composer[T, S]{
		entity:    entity,
		source:    src,
		completer: c,
		limit:     Limit,
	}
}

// Entity returns the entity this composer searches.
func (c *Composer[T, S]) Entity() Entity {
	return c.entity
}

// Search resolves (owner, text, tags) to a Plan and executes it.
func (c *Composer[T, S]) Search(ctx context.Context, owner, text string, tags []string) (Result[T], error) {
	p, err := Compose(owner, text, tags)
	if err != nil {
		return Result[T]{}, err
	}

	var hits []Hit[T]
	switch p.Strategy {
	case Unranked:
		hits, err = c.unranked(ctx, p)
	case TagFilterOnly:
		hits, err = c.tagged(ctx, p)
	case Ranked:
		hits, err = c.ranked(ctx, p)
	default:
		err = fmt.Errorf("unknown strategy %d", p.Strategy)
	}
	if err != nil {
		return Result[T]{Plan: p}, err
	}
	if hits == nil {
		hits = []Hit[T]{}
	}
	return Result[T]{Plan: p, Hits: hits}, nil
}

func (c *Composer[T, S]) unranked(ctx context.Context, p Plan) ([]Hit[T], error) {
	records, err := c.source.List(ctx, p.Owner)
	if err != nil {
		return nil, fmt.Errorf("list %ss: %w", c.entity.Name, err)
	}
	return Unscored(records), nil
}

func (c *Composer[T, S]) tagged(ctx context.Context, p Plan) ([]Hit[T], error) {
	records, err := c.source.ListTagged(ctx, p.Owner, p.Tags)
	if err != nil {
		return nil, fmt.Errorf("list %ss by tag: %w", c.entity.Name, err)
	}
	return Unscored(records), nil
}

func (c *Composer[T, S]) ranked(ctx context.Context, p Plan) ([]Hit[T], error) {
	hits, err := c.source.Rank(ctx, p.Owner, Query{
		Text:   p.Text,
		Fields: c.entity.Fields,
		Tags:   p.Tags,
		Limit:  c.limit,
	})
	if err != nil {
		return nil, fmt.Errorf("rank %ss: %w", c.entity.Name, err)
	}
	return ShapeHits(hits, c.limit), nil
}

// Complete returns up to Limit suggestions for prefix. An empty prefix
// returns an empty list without querying the engine.
func (c *Composer[T, S]) Complete(ctx context.Context, owner, prefix string) ([]S, error) {
	if strings.TrimSpace(owner) == "" {
		return nil, ErrNoOwner
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return []S{}, nil
	}

	s, err := c.completer.Complete(ctx, owner, Query{
		Text:   prefix,
		Fields: c.entity.CompleteFields,
	})
	if err != nil {
		return nil, fmt.Errorf("complete %ss: %w", c.entity.Name, err)
	}
	out := ShapeSuggestions(s, c.limit)
	if out == nil {
		out = []S{}
	}
	return out, nil
}

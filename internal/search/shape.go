// shape.go orders and caps retrieved rows into their response shape.

package search

import (
	"cmp"
	"slices"
)

// ShapeHits sorts ranked hits by score descending, then most recently
// updated first, and keeps at most limit (0 = no cap). Remaining ties keep
// engine order, so identical input always yields identical output.
func ShapeHits[T Record](hits []Hit[T], limit int) []Hit[T] {
	out := slices.Clone(hits)
	slices.SortStableFunc(out, func(a, b Hit[T]) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return b.Record.Updated().Compare(a.Record.Updated())
	})
	return capped(out, limit)
}

// ShapeSuggestions sorts suggestions by score descending, then by label
// ascending, and keeps at most limit (0 = no cap).
func ShapeSuggestions[S Suggestion](s []S, limit int) []S {
	out := slices.Clone(s)
	slices.SortStableFunc(out, func(a, b S) int {
		if c := cmp.Compare(b.Rank(), a.Rank()); c != 0 {
			return c
		}
		return cmp.Compare(a.Label(), b.Label())
	})
	return capped(out, limit)
}

func capped[E any](s []E, limit int) []E {
	if limit > 0 && len(s) > limit {
		return s[:limit]
	}
	return s
}

// Unscored wraps unranked records as hits with a zero score.
func Unscored[T Record](records []T) []Hit[T] {
	hits := make([]Hit[T], len(records))
	for i, r := range records {
		hits[i] = Hit[T]{Record: r}
	}
	return hits
}

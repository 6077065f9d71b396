// engine.go turns free text into FTS5 MATCH expressions with fuzzy tolerance.
//
// FTS5 only matches whole tokens and token prefixes. Typo tolerance comes from
// expanding each query term against the index vocabulary (the fts5vocab
// table) before the query runs: every indexed term within the edit budget of
// the query term joins an OR group. bm25 then scores the expanded query.
//
// Autocomplete builds phrase-prefix queries instead ("trip pl"*), so matches
// start at a word boundary and multi-word prefixes keep their order.

package store

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// table describes one entity's tables for the shared query builders.
type table struct {
	name    string   // base table
	fts     string   // FTS5 index
	vocab   string   // fts5vocab over fts
	tags    string   // tag join table
	fk      string   // tag table column referencing name.seq
	columns []string // indexed columns, in FTS order
}

var (
	noteTable = table{
		name:    "notes",
		fts:     "notes_fts",
		vocab:   "notes_vocab",
		tags:    "note_tags",
		fk:      "note_seq",
		columns: []string{"title", "content"},
	}
	bookmarkTable = table{
		name:    "bookmarks",
		fts:     "bookmarks_fts",
		vocab:   "bookmarks_vocab",
		tags:    "bookmark_tags",
		fk:      "bookmark_seq",
		columns: []string{"url", "title", "description"},
	}
)

// columnFilter renders an FTS5 column filter for fields. Unknown fields are
// rejected so entity configuration can never inject query syntax.
func (t table) columnFilter(fields []string) (string, error) {
	if len(fields) == 0 {
		fields = t.columns
	}
	for _, f := range fields {
		if !slices.Contains(t.columns, f) {
			return "", fmt.Errorf("%s: unknown search field %q", t.name, f)
		}
	}
	return "{" + strings.Join(fields, " ") + "}", nil
}

// tagFilter renders a superset condition for alias.seq: the row must carry
// every tag. tags must already be deduplicated.
func (t table) tagFilter(alias string, tags []string) (string, []any) {
	if len(tags) == 0 {
		return "", nil
	}
	ph := strings.Repeat("?,", len(tags))
	ph = ph[:len(ph)-1]
	args := make([]any, 0, len(tags)+1)
	for _, tag := range tags {
		args = append(args, tag)
	}
	args = append(args, len(tags))
	cond := fmt.Sprintf(`(SELECT COUNT(*) FROM %s tg WHERE tg.%s = %s.seq AND tg.tag IN (%s)) = ?`,
		t.tags, t.fk, alias, ph)
	return cond, args
}

// editBudget scales the edit allowance with term length so very short terms
// are matched exactly: 0 edits up to 2 characters, then one extra edit per
// character up to limit.
func editBudget(term string, limit int) int {
	return min(limit, max(0, utf8.RuneCountInString(term)-2))
}

// distance returns the Levenshtein distance of the minimal diff between a and b.
func distance(dmp *diffmatchpatch.DiffMatchPatch, a, b string) int {
	if a == b {
		return 0
	}
	return dmp.DiffLevenshtein(dmp.DiffMain(a, b, false))
}

// candidate is a vocabulary term considered for expansion.
type candidate struct {
	term string
	dist int
	docs int64
}

// rankCandidates orders closer terms first, then more common ones.
func rankCandidates(c []candidate, limit int) []string {
	slices.SortFunc(c, func(a, b candidate) int {
		if a.dist != b.dist {
			return a.dist - b.dist
		}
		if a.docs != b.docs {
			if a.docs > b.docs {
				return -1
			}
			return 1
		}
		return strings.Compare(a.term, b.term)
	})
	out := make([]string, 0, min(len(c), limit))
	for _, x := range c {
		if len(out) == limit {
			break
		}
		out = append(out, x.term)
	}
	return out
}

// expandTerm returns term plus indexed terms within edits of it, closest first.
func (s *SQLiteStore) expandTerm(ctx context.Context, t table, term string, edits, limit int) ([]string, error) {
	out := []string{term}
	if edits == 0 || limit <= 1 {
		return out, nil
	}
	n := utf8.RuneCountInString(term)
	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT term, doc FROM %s WHERE length(term) BETWEEN ? AND ?`, t.vocab),
		n-edits, n+edits)
	if err != nil {
		return nil, fmt.Errorf("read %s vocabulary: %w", t.name, err)
	}
	defer rows.Close()

	var cands []candidate
	for rows.Next() {
		var c candidate
		if err := rows.Scan(&c.term, &c.docs); err != nil {
			return nil, fmt.Errorf("scan %s vocabulary: %w", t.name, err)
		}
		if c.term == term {
			continue
		}
		if c.dist = distance(s.dmp, term, c.term); c.dist <= edits {
			cands = append(cands, c)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s vocabulary: %w", t.name, err)
	}
	return append(out, rankCandidates(cands, limit-1)...), nil
}

// expandPrefix returns prefix plus vocabulary prefixes within edits of it.
// A vocabulary term v contributes the prefix of v (of length len(prefix)±edits)
// closest to the typed prefix.
func (s *SQLiteStore) expandPrefix(ctx context.Context, t table, prefix string, edits, limit int) ([]string, error) {
	out := []string{prefix}
	n := utf8.RuneCountInString(prefix)
	if edits == 0 || limit <= 1 || n < 3 {
		return out, nil
	}
	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT term, doc FROM %s WHERE length(term) >= ?`, t.vocab), n-edits)
	if err != nil {
		return nil, fmt.Errorf("read %s vocabulary: %w", t.name, err)
	}
	defer rows.Close()

	best := make(map[string]candidate)
	for rows.Next() {
		var term string
		var docs int64
		if err := rows.Scan(&term, &docs); err != nil {
			return nil, fmt.Errorf("scan %s vocabulary: %w", t.name, err)
		}
		if strings.HasPrefix(term, prefix) {
			continue // already covered by the exact prefix
		}
		r := []rune(term)
		// Prefer the same length, then longer, then shorter.
		for _, k := range []int{n, n + 1, n - 1, n + 2, n - 2} {
			if k < 1 || k > len(r) || abs(k-n) > edits {
				continue
			}
			p := string(r[:k])
			d := distance(s.dmp, prefix, p)
			if d > edits {
				continue
			}
			if c, ok := best[p]; !ok || d < c.dist {
				best[p] = candidate{term: p, dist: d, docs: docs + c.docs}
			} else {
				c.docs += docs
				best[p] = c
			}
			break
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s vocabulary: %w", t.name, err)
	}

	cands := make([]candidate, 0, len(best))
	for _, c := range best {
		cands = append(cands, c)
	}
	return append(out, rankCandidates(cands, limit-1)...), nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// rankedMatch builds the MATCH expression for ranked retrieval: any expanded
// term in any of fields. Returns "" when text has no indexable tokens.
func (s *SQLiteStore) rankedMatch(ctx context.Context, t table, text string, fields []string) (string, error) {
	filter, err := t.columnFilter(fields)
	if err != nil {
		return "", err
	}
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return "", nil
	}

	f := s.fuzzySettings()
	var terms []string
	seen := make(map[string]bool)
	for _, tok := range tokens {
		exp, err := s.expandTerm(ctx, t, tok, editBudget(tok, f.MaxEdits), f.MaxExpansions)
		if err != nil {
			return "", err
		}
		for _, e := range exp {
			if !seen[e] {
				seen[e] = true
				terms = append(terms, quote(e))
			}
		}
	}
	return filter + " : (" + strings.Join(terms, " OR ") + ")", nil
}

// prefixMatch builds the MATCH expression for autocomplete: a phrase of the
// typed words whose last word is a prefix, with fuzzy variants of each word.
// The number of phrases is capped at MaxExpansions.
func (s *SQLiteStore) prefixMatch(ctx context.Context, t table, text string, fields []string) (string, error) {
	filter, err := t.columnFilter(fields)
	if err != nil {
		return "", err
	}
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return "", nil
	}

	f := s.fuzzySettings()
	alts := make([][]string, len(tokens))
	for i, tok := range tokens {
		var exp []string
		var err error
		if i == len(tokens)-1 {
			exp, err = s.expandPrefix(ctx, t, tok, f.CompleteMaxEdits, f.MaxExpansions)
		} else {
			exp, err = s.expandTerm(ctx, t, tok, editBudget(tok, f.CompleteMaxEdits), f.MaxExpansions)
		}
		if err != nil {
			return "", err
		}
		alts[i] = exp
	}

	phrases := combine(alts, f.MaxExpansions)
	parts := make([]string, len(phrases))
	for i, p := range phrases {
		parts[i] = quote(strings.Join(p, " ")) + "*"
	}
	return filter + " : (" + strings.Join(parts, " OR ") + ")", nil
}

// combine returns the cartesian product of alts in order, at most limit
// combinations. The first combination is always the unexpanded input.
func combine(alts [][]string, limit int) [][]string {
	out := [][]string{{}}
	for _, options := range alts {
		var next [][]string
		for _, prefix := range out {
			for _, o := range options {
				if limit > 0 && len(next) == limit {
					break
				}
				next = append(next, append(slices.Clone(prefix), o))
			}
		}
		out = next
	}
	return out
}

// Package format provides output formatting utilities for CLI display.
//
// Centralises formatting logic so that command implementations focus on
// business logic while this package handles presentation concerns like
// column alignment and truncation.
package format

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/jpl-au/stash/internal/markdown"
	"github.com/jpl-au/stash/internal/search"
	"github.com/jpl-au/stash/internal/store"
)

const dateLayout = "2006-01-02 15:04"

// humanSize formats a byte count as human-readable (e.g., "1.2K", "3.4M").
func humanSize(bytes int64) string {
	const (
		_        = iota
		KB int64 = 1 << (10 * iota)
		MB
		GB
	)
	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.1fG", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.1fM", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1fK", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}

// truncate shortens s to n characters, marking the cut with "...".
func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n-3]) + "..."
}

func star(fav bool) string {
	if fav {
		return "*"
	}
	return " "
}

func tagList(tags []string) string {
	if len(tags) == 0 {
		return "-"
	}
	return strings.Join(tags, ",")
}

// Notes prints one note per line: id, favourite marker, title.
func Notes(w io.Writer, notes []store.Note) error {
	for _, n := range notes {
		fmt.Fprintf(w, "%s %s %s\n", n.ID, star(n.Favorite), n.Title)
	}
	return nil
}

// NotesLong prints notes with update time, attachment count and tags.
func NotesLong(w io.Writer, notes []store.Note) error {
	if len(notes) == 0 {
		return nil
	}
	fmt.Fprintf(w, "%-36s  %-16s  %5s  %-30s  %s\n", "ID", "UPDATED", "FILES", "TITLE", "TAGS")
	for _, n := range notes {
		fmt.Fprintf(w, "%-36s  %-16s  %5d  %-30s  %s\n",
			n.ID, n.UpdatedAt.Local().Format(dateLayout), len(n.Files), truncate(n.Title, 30), tagList(n.Tags))
	}
	return nil
}

// Bookmarks prints one bookmark per line: id, favourite marker, title, url.
func Bookmarks(w io.Writer, bookmarks []store.Bookmark) error {
	for _, b := range bookmarks {
		fmt.Fprintf(w, "%s %s %s  <%s>\n", b.ID, star(b.Favorite), b.Title, b.URL)
	}
	return nil
}

// BookmarksLong prints bookmarks with update time, description and tags.
func BookmarksLong(w io.Writer, bookmarks []store.Bookmark) error {
	if len(bookmarks) == 0 {
		return nil
	}
	fmt.Fprintf(w, "%-36s  %-16s  %-30s  %-40s  %s\n", "ID", "UPDATED", "TITLE", "URL", "TAGS")
	for _, b := range bookmarks {
		fmt.Fprintf(w, "%-36s  %-16s  %-30s  %-40s  %s\n",
			b.ID, b.UpdatedAt.Local().Format(dateLayout), truncate(b.Title, 30), truncate(b.URL, 40), tagList(b.Tags))
		fmt.Fprintf(w, "%-36s  %-16s  %s\n", "", "", truncate(b.Description, 72))
	}
	return nil
}

// NoteHits prints note search results. Scores are shown only for ranked
// results; other strategies carry none.
func NoteHits(w io.Writer, res search.Result[store.Note]) error {
	return hits(w, res, func(n store.Note) string { return n.ID + "  " + n.Title })
}

// BookmarkHits prints bookmark search results.
func BookmarkHits(w io.Writer, res search.Result[store.Bookmark]) error {
	return hits(w, res, func(b store.Bookmark) string { return b.ID + "  " + b.Title + "  <" + b.URL + ">" })
}

func hits[T search.Record](w io.Writer, res search.Result[T], line func(T) string) error {
	for _, h := range res.Hits {
		if res.Ranked() {
			fmt.Fprintf(w, "%7.3f  %s\n", h.Score, line(h.Record))
			continue
		}
		fmt.Fprintln(w, line(h.Record))
	}
	return nil
}

// Suggestions prints autocomplete labels, one per line.
func Suggestions[S search.Suggestion](w io.Writer, s []S) error {
	for _, x := range s {
		fmt.Fprintln(w, x.Label())
	}
	return nil
}

// Files prints a note's attachments. Attachments referenced from the
// content are marked "inline"; references naming no attachment are listed
// as dangling.
func Files(w io.Writer, n *store.Note) error {
	refs := markdown.FileRefs(n.Content)
	ids := make([]string, len(n.Files))
	for i, f := range n.Files {
		ids[i] = f.ID
		where := "attached"
		if slices.Contains(refs, f.ID) {
			where = "inline"
		}
		fmt.Fprintf(w, "%s  %-8s  %6s  %-8s  %s\n", f.ID, f.Type, humanSize(f.Size), where, f.Name)
	}
	for _, ref := range markdown.Dangling(n.Content, ids) {
		fmt.Fprintf(w, "%s  dangling reference\n", ref)
	}
	return nil
}

// Tags prints tags one per line.
func Tags(w io.Writer, tags []string) error {
	for _, t := range tags {
		fmt.Fprintln(w, t)
	}
	return nil
}

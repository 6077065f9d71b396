// find.go implements "stash search".
//
// Design: The command only gathers the query and tags. Whether the result
// is ranked, tag-filtered or a plain listing is decided by the search
// pipeline, and the strategy is reported alongside the hits.

package search

import (
	"fmt"
	"strings"

	"github.com/jpl-au/stash/cmd"
	"github.com/jpl-au/stash/extension"
	"github.com/jpl-au/stash/internal/format"
	"github.com/jpl-au/stash/internal/log"
	"github.com/jpl-au/stash/internal/service"
	"github.com/spf13/cobra"
)

// searchResult is the JSON shape of a search.
type searchResult[T any] struct {
	Strategy string `json:"strategy"`
	Result   []T    `json:"result"`
}

func (e *Extension) newSearchCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "search",
		Short: "Search notes or bookmarks",
		Long: `Search notes or bookmarks.

A query of two or more characters is ranked by relevance and tolerates
typos. A shorter query with --tag lists records carrying every tag; with
neither, everything is listed in the order it was added.

  stash search notes trip plan
  stash search bookmarks -t go
  stash search notes recipie -t food`,
	}
	c.AddCommand(
		e.newSearchNotesCmd(),
		e.newSearchBookmarksCmd(),
	)
	return c
}

func (e *Extension) newSearchNotesCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "notes [query...]",
		Short: "Search notes",
		RunE:  e.runSearchNotes,
	}
	c.Flags().StringSliceP(extension.FlagTag, "t", nil, "Require tag (repeatable or comma-separated)")
	return c
}

func (e *Extension) newSearchBookmarksCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "bookmarks [query...]",
		Short: "Search bookmarks",
		RunE:  e.runSearchBookmarks,
	}
	c.Flags().StringSliceP(extension.FlagTag, "t", nil, "Require tag (repeatable or comma-separated)")
	return c
}

func (e *Extension) runSearchNotes(c *cobra.Command, args []string) error {
	q := strings.Join(args, " ")
	tags, _ := c.Flags().GetStringSlice(extension.FlagTag)

	res, err := e.svc.SearchNotes(c.Context(), cmd.Owner(), q, tags)
	log.Event("search:notes", "search").
		Owner(cmd.Owner()).
		Detail("query", q).
		Detail("strategy", res.Plan.Strategy.String()).
		Detail("count", len(res.Hits)).
		Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("search notes: %w", err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(searchResult[service.ScoredNote]{
			Strategy: res.Plan.Strategy.String(),
			Result:   service.NoteHits(res),
		})
	}
	return format.NoteHits(cmd.Out(), res)
}

func (e *Extension) runSearchBookmarks(c *cobra.Command, args []string) error {
	q := strings.Join(args, " ")
	tags, _ := c.Flags().GetStringSlice(extension.FlagTag)

	res, err := e.svc.SearchBookmarks(c.Context(), cmd.Owner(), q, tags)
	log.Event("search:bookmarks", "search").
		Owner(cmd.Owner()).
		Detail("query", q).
		Detail("strategy", res.Plan.Strategy.String()).
		Detail("count", len(res.Hits)).
		Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("search bookmarks: %w", err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(searchResult[service.ScoredBookmark]{
			Strategy: res.Plan.Strategy.String(),
			Result:   service.BookmarkHits(res),
		})
	}
	return format.BookmarkHits(cmd.Out(), res)
}

// ls.go implements "stash bookmark ls" and "stash bookmark tags".

package bookmarks

import (
	"fmt"

	"github.com/jpl-au/stash/cmd"
	"github.com/jpl-au/stash/extension"
	"github.com/jpl-au/stash/internal/format"
	"github.com/jpl-au/stash/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newLsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "ls",
		Short: "List bookmarks",
		Args:  cobra.NoArgs,
		RunE:  e.runLs,
	}
	c.Flags().BoolP(extension.FlagLong, "l", false, "Long format")
	c.Flags().StringSliceP(extension.FlagTag, "t", nil, "Only bookmarks with every tag")
	return c
}

func (e *Extension) runLs(c *cobra.Command, _ []string) error {
	long, _ := c.Flags().GetBool(extension.FlagLong)
	tags, _ := c.Flags().GetStringSlice(extension.FlagTag)

	res, err := e.svc.SearchBookmarks(c.Context(), cmd.Owner(), "", tags)
	log.Event("bookmark:ls", "list").Owner(cmd.Owner()).Detail("tags", tags).Detail("count", len(res.Hits)).Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("bookmark ls: %w", err))
	}

	bookmarks := res.Records()
	if cmd.JSON() {
		return cmd.PrintJSON(bookmarks)
	}
	if long {
		return format.BookmarksLong(cmd.Out(), bookmarks)
	}
	return format.Bookmarks(cmd.Out(), bookmarks)
}

func (e *Extension) newTagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List tags used on bookmarks",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			tags, err := e.svc.BookmarkTags(c.Context(), cmd.Owner())
			if err != nil {
				return cmd.PrintJSONError(fmt.Errorf("bookmark tags: %w", err))
			}
			if cmd.JSON() {
				return cmd.PrintJSON(tags)
			}
			return format.Tags(cmd.Out(), tags)
		},
	}
}

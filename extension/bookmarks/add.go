// add.go implements "stash bookmark add".

package bookmarks

import (
	"fmt"

	"github.com/jpl-au/stash/cmd"
	"github.com/jpl-au/stash/extension"
	"github.com/jpl-au/stash/internal/log"
	"github.com/jpl-au/stash/internal/service"
	"github.com/spf13/cobra"
)

func (e *Extension) newAddCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "add <url>",
		Short: "Save a bookmark",
		Long: `Save a bookmark. Without --title or --description the page is
fetched for them; whatever is still blank gets a placeholder.

  stash bookmark add https://go.dev/doc/effective_go -t go,reading`,
		Args: cobra.ExactArgs(1),
		RunE: e.runAdd,
	}
	c.Flags().String(extension.FlagTitle, "", "Title")
	c.Flags().String(extension.FlagDescription, "", "Description")
	c.Flags().StringSliceP(extension.FlagTag, "t", nil, "Tag (repeatable or comma-separated)")
	c.Flags().Bool(extension.FlagFavorite, false, "Mark as favourite")
	return c
}

func (e *Extension) runAdd(c *cobra.Command, args []string) error {
	title, _ := c.Flags().GetString(extension.FlagTitle)
	desc, _ := c.Flags().GetString(extension.FlagDescription)
	tags, _ := c.Flags().GetStringSlice(extension.FlagTag)
	fav, _ := c.Flags().GetBool(extension.FlagFavorite)

	b, err := e.svc.CreateBookmark(c.Context(), cmd.Owner(), service.BookmarkInput{
		URL:         args[0],
		Title:       title,
		Description: desc,
		Tags:        tags,
		Favorite:    fav,
	})

	l := log.Event("bookmark:add", "create").Owner(cmd.Owner()).Detail("url", args[0])
	if b != nil {
		l.Target(b.ID)
	}
	l.Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("bookmark add: %w", err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(b)
	}
	fmt.Fprintf(cmd.Out(), "Saved bookmark %s (%s)\n", b.ID, b.Title)
	return nil
}

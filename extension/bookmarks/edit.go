// edit.go implements "stash bookmark edit".
//
// Design: Only flags that were given change the bookmark. A new --url with
// no --title or --description refetches the page for whatever is blank.

package bookmarks

import (
	"errors"
	"fmt"

	"github.com/jpl-au/stash/cmd"
	"github.com/jpl-au/stash/extension"
	"github.com/jpl-au/stash/internal/log"
	"github.com/jpl-au/stash/internal/service"
	"github.com/spf13/cobra"
)

// ErrNothingToChange is returned when edit is given no changes.
var ErrNothingToChange = errors.New("nothing to change")

func (e *Extension) newEditCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a bookmark",
		Args:  cobra.ExactArgs(1),
		RunE:  e.runEdit,
	}
	c.Flags().String(extension.FlagURL, "", "New url")
	c.Flags().String(extension.FlagTitle, "", "New title")
	c.Flags().String(extension.FlagDescription, "", "New description")
	c.Flags().StringSliceP(extension.FlagTag, "t", nil, "Replace tags (repeatable or comma-separated)")
	c.Flags().Bool(extension.FlagFavorite, false, "Set favourite")
	return c
}

func (e *Extension) runEdit(c *cobra.Command, args []string) error {
	id := args[0]
	flags := c.Flags()

	var patch service.BookmarkPatch
	changed := false
	str := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		changed = true
		v, _ := flags.GetString(name)
		return &v
	}
	patch.URL = str(extension.FlagURL)
	patch.Title = str(extension.FlagTitle)
	patch.Description = str(extension.FlagDescription)
	if flags.Changed(extension.FlagTag) {
		v, _ := flags.GetStringSlice(extension.FlagTag)
		patch.Tags = &v
		changed = true
	}
	if flags.Changed(extension.FlagFavorite) {
		v, _ := flags.GetBool(extension.FlagFavorite)
		patch.Favorite = &v
		changed = true
	}
	if !changed {
		return cmd.PrintJSONError(fmt.Errorf("bookmark edit %q: %w", id, ErrNothingToChange))
	}

	b, err := e.svc.UpdateBookmark(c.Context(), cmd.Owner(), id, patch)
	log.Event("bookmark:edit", "update").Owner(cmd.Owner()).Target(id).Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("bookmark edit %q: %w", id, err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(b)
	}
	fmt.Fprintf(cmd.Out(), "Updated bookmark %s\n", b.ID)
	return nil
}

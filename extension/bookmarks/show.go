// show.go implements "stash bookmark show".

package bookmarks

import (
	"fmt"
	"strings"

	"github.com/jpl-au/stash/cmd"
	"github.com/jpl-au/stash/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a bookmark",
		Args:  cobra.ExactArgs(1),
		RunE:  e.runShow,
	}
}

func (e *Extension) runShow(c *cobra.Command, args []string) error {
	b, err := e.svc.Bookmark(c.Context(), cmd.Owner(), args[0])
	log.Event("bookmark:show", "read").Owner(cmd.Owner()).Target(args[0]).Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("bookmark show %q: %w", args[0], err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(b)
	}

	w := cmd.Out()
	fmt.Fprintf(w, "%s\n%s\n", b.Title, b.URL)
	if b.Description != "" {
		fmt.Fprintf(w, "\n%s\n", b.Description)
	}
	if len(b.Tags) > 0 {
		fmt.Fprintf(w, "\ntags: %s\n", strings.Join(b.Tags, ", "))
	}
	if b.Favorite {
		fmt.Fprintln(w, "favourite")
	}
	return nil
}

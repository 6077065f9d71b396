// rm.go implements "stash bookmark rm".

package bookmarks

import (
	"fmt"

	"github.com/jpl-au/stash/cmd"
	"github.com/jpl-au/stash/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a bookmark",
		Args:  cobra.ExactArgs(1),
		RunE:  e.runRm,
	}
}

func (e *Extension) runRm(c *cobra.Command, args []string) error {
	b, err := e.svc.DeleteBookmark(c.Context(), cmd.Owner(), args[0])
	log.Event("bookmark:rm", "delete").Owner(cmd.Owner()).Target(args[0]).Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("bookmark rm %q: %w", args[0], err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(b)
	}
	fmt.Fprintf(cmd.Out(), "Deleted bookmark %s\n", b.ID)
	return nil
}

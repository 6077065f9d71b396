// rm.go implements "stash note rm".

package notes

import (
	"fmt"

	"github.com/jpl-au/stash/cmd"
	"github.com/jpl-au/stash/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a note and its attachments",
		Args:  cobra.ExactArgs(1),
		RunE:  e.runRm,
	}
}

func (e *Extension) runRm(c *cobra.Command, args []string) error {
	n, err := e.svc.DeleteNote(c.Context(), cmd.Owner(), args[0])
	log.Event("note:rm", "delete").Owner(cmd.Owner()).Target(args[0]).Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("note rm %q: %w", args[0], err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(n)
	}
	fmt.Fprintf(cmd.Out(), "Deleted note %s\n", n.ID)
	return nil
}

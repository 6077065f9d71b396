// complete.go implements "stash complete".
//
// Prints title suggestions for a prefix, one per line, for shell
// completion scripts and editor integrations. An empty prefix prints
// nothing.

package search

import (
	"fmt"
	"strings"

	"github.com/jpl-au/stash/cmd"
	"github.com/jpl-au/stash/internal/format"
	"github.com/jpl-au/stash/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newCompleteCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "complete",
		Short: "Suggest titles for a prefix",
	}
	c.AddCommand(
		&cobra.Command{
			Use:   "notes [prefix...]",
			Short: "Suggest note titles",
			RunE:  e.runCompleteNotes,
		},
		&cobra.Command{
			Use:   "bookmarks [prefix...]",
			Short: "Suggest bookmarks",
			RunE:  e.runCompleteBookmarks,
		},
	)
	return c
}

func (e *Extension) runCompleteNotes(c *cobra.Command, args []string) error {
	prefix := strings.Join(args, " ")
	s, err := e.svc.CompleteNotes(c.Context(), cmd.Owner(), prefix)
	log.Event("search:complete", "complete").Owner(cmd.Owner()).Detail("entity", "notes").Detail("prefix", prefix).Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("complete notes: %w", err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(s)
	}
	return format.Suggestions(cmd.Out(), s)
}

func (e *Extension) runCompleteBookmarks(c *cobra.Command, args []string) error {
	prefix := strings.Join(args, " ")
	s, err := e.svc.CompleteBookmarks(c.Context(), cmd.Owner(), prefix)
	log.Event("search:complete", "complete").Owner(cmd.Owner()).Detail("entity", "bookmarks").Detail("prefix", prefix).Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("complete bookmarks: %w", err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(s)
	}
	return format.Suggestions(cmd.Out(), s)
}

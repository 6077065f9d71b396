// ls.go implements "stash note ls", "stash note tags" and "stash note files".
//
// Listing is a search with no query: all notes, or those carrying every
// --tag, in the order they were added.

package notes

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
		Short: "List notes",
		Args:  cobra.NoArgs,
		RunE:  e.runLs,
	}
	c.Flags().BoolP(extension.FlagLong, "l", false, "Long format")
	c.Flags().StringSliceP(extension.FlagTag, "t", nil, "Only notes with every tag")
	return c
}

func (e *Extension) runLs(c *cobra.Command, _ []string) error {
	long, _ := c.Flags().GetBool(extension.FlagLong)
	tags, _ := c.Flags().GetStringSlice(extension.FlagTag)

	res, err := e.svc.SearchNotes(c.Context(), cmd.Owner(), "", tags)
	log.Event("note:ls", "list").Owner(cmd.Owner()).Detail("tags", tags).Detail("count", len(res.Hits)).Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("note ls: %w", err))
	}

	notes := res.Records()
	if cmd.JSON() {
		return cmd.PrintJSON(notes)
	}
	if long {
		return format.NotesLong(cmd.Out(), notes)
	}
	return format.Notes(cmd.Out(), notes)
}

func (e *Extension) newTagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List tags used on notes",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			tags, err := e.svc.NoteTags(c.Context(), cmd.Owner())
			if err != nil {
				return cmd.PrintJSONError(fmt.Errorf("note tags: %w", err))
			}
			if cmd.JSON() {
				return cmd.PrintJSON(tags)
			}
			return format.Tags(cmd.Out(), tags)
		},
	}
}

func (e *Extension) newFilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "files <id>",
		Short: "List a note's attachments",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			n, err := e.svc.Note(c.Context(), cmd.Owner(), args[0])
			if err != nil {
				return cmd.PrintJSONError(fmt.Errorf("note files %q: %w", args[0], err))
			}
			if cmd.JSON() {
				return cmd.PrintJSON(n.Files)
			}
			return format.Files(cmd.Out(), n)
		},
	}
}

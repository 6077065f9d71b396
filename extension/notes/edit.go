// edit.go implements "stash note edit".
//
// Design: Only flags that were given change the note, mirroring a partial
// update. --tag replaces the whole tag set; --tag "" clears it. Detached
// attachments are removed before new ones are added.

package notes

import (
	"errors"
	"fmt"

	"github.com/jpl-au/stash/cmd"
	"github.com/jpl-au/stash/extension"
	"github.com/jpl-au/stash/internal/log"
	"github.com/jpl-au/stash/internal/service"
	"github.com/jpl-au/stash/internal/store"
	"github.com/spf13/cobra"
)

// ErrNothingToChange is returned when edit is given no changes.
var ErrNothingToChange = errors.New("nothing to change")

func (e *Extension) newEditCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a note",
		Long: `Change a note's title, content, tags or favourite flag, and add or
remove attachments. Flags that are not given leave the field unchanged.

  stash note edit abc123 --title "New title"
  stash note edit abc123 -f note.md
  stash note edit abc123 --favorite=false -t work,urgent
  stash note edit abc123 --attach photo.jpg --detach file_x1`,
		Args: cobra.ExactArgs(1),
		RunE: e.runEdit,
	}
	c.Flags().String(extension.FlagTitle, "", "New title")
	c.Flags().String(extension.FlagContent, "", "New content")
	c.Flags().StringP(extension.FlagFile, "f", "", "Read new content from file")
	c.Flags().StringSliceP(extension.FlagTag, "t", nil, "Replace tags (repeatable or comma-separated)")
	c.Flags().Bool(extension.FlagFavorite, false, "Set favourite")
	c.Flags().StringArray(extension.FlagAttach, nil, "Attach a file (repeatable)")
	c.Flags().StringArray(extension.FlagDetach, nil, "Remove an attachment by id (repeatable)")
	return c
}

func (e *Extension) runEdit(c *cobra.Command, args []string) error {
	ctx := c.Context()
	id := args[0]
	flags := c.Flags()

	var patch service.NotePatch
	changed := false
	if flags.Changed(extension.FlagTitle) {
		v, _ := flags.GetString(extension.FlagTitle)
		patch.Title = &v
		changed = true
	}
	switch {
	case flags.Changed(extension.FlagContent):
		v, _ := flags.GetString(extension.FlagContent)
		patch.Content = &v
		changed = true
	case flags.Changed(extension.FlagFile):
		file, _ := flags.GetString(extension.FlagFile)
		v, err := readContent(c, nil, file)
		if err != nil {
			return cmd.PrintJSONError(err)
		}
		patch.Content = &v
		changed = true
	}
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
	attach, _ := flags.GetStringArray(extension.FlagAttach)
	detach, _ := flags.GetStringArray(extension.FlagDetach)

	if !changed && len(attach) == 0 && len(detach) == 0 {
		return cmd.PrintJSONError(fmt.Errorf("note edit %q: %w", id, ErrNothingToChange))
	}

	var (
		n   *store.Note
		err error
	)
	defer func() {
		log.Event("note:edit", "update").
			Owner(cmd.Owner()).
			Target(id).
			Detail("attached", len(attach)).
			Detail("detached", len(detach)).
			Write(err)
	}()

	for _, fileID := range detach {
		if n, err = e.svc.DeleteNoteFile(ctx, cmd.Owner(), id, fileID); err != nil {
			return cmd.PrintJSONError(fmt.Errorf("note edit %q: detach %q: %w", id, fileID, err))
		}
	}

	if changed || len(attach) > 0 {
		uploads, files, openErr := openUploads(attach)
		defer closeUploads(files)
		if openErr != nil {
			err = openErr
			return cmd.PrintJSONError(err)
		}
		if n, err = e.svc.UpdateNote(ctx, cmd.Owner(), id, patch, uploads); err != nil {
			return cmd.PrintJSONError(fmt.Errorf("note edit %q: %w", id, err))
		}
	}

	if cmd.JSON() {
		return cmd.PrintJSON(n)
	}
	fmt.Fprintf(cmd.Out(), "Updated note %s\n", n.ID)
	return nil
}

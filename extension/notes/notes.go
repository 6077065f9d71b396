// Package notes provides the note commands for stash.
// Registers commands: note add, note show, note edit, note rm, note ls, note tags, note files.
package notes

import (
	"github.com/jpl-au/stash/extension"
	"github.com/jpl-au/stash/internal/service"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the notes extension.
type Extension struct {
	svc service.Service
}

// Compile-time interface compliance.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "notes".
func (e *Extension) Name() string { return "notes" }

// Init connects to the shared service.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns the "note" command tree.
func (e *Extension) Commands() []*cobra.Command {
	c := &cobra.Command{
		Use:     "note",
		Aliases: []string{"notes"},
		Short:   "Manage notes",
		Long: `Create, read, edit and delete markdown notes.

Attachments are added with --attach and referenced from the content as
[name](file:<id>) or ![name](file:<id>).`,
	}
	c.AddCommand(
		e.newAddCmd(),
		e.newShowCmd(),
		e.newEditCmd(),
		e.newRmCmd(),
		e.newLsCmd(),
		e.newTagsCmd(),
		e.newFilesCmd(),
	)
	return []*cobra.Command{c}
}

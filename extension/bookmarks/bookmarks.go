// Package bookmarks provides the bookmark commands for stash.
// Registers commands: bookmark add, show, edit, rm, ls, tags.
package bookmarks

import (
	"github.com/jpl-au/stash/extension"
	"github.com/jpl-au/stash/internal/service"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the bookmarks extension.
type Extension struct {
	svc service.Service
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "bookmarks".
func (e *Extension) Name() string { return "bookmarks" }

// Init connects to the shared service.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns the "bookmark" command tree.
func (e *Extension) Commands() []*cobra.Command {
	c := &cobra.Command{
		Use:     "bookmark",
		Aliases: []string{"bookmarks", "bm"},
		Short:   "Manage bookmarks",
		Long: `Save, edit and delete bookmarks. A blank title or description is
filled from the page's metadata when metadata.enabled is set.`,
	}
	c.AddCommand(
		e.newAddCmd(),
		e.newShowCmd(),
		e.newEditCmd(),
		e.newRmCmd(),
		e.newLsCmd(),
		e.newTagsCmd(),
	)
	return []*cobra.Command{c}
}

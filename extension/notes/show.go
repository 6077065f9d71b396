// show.go implements "stash note show".
//
// Design: Terminal output gets glamour markdown rendering with attachment
// references resolved to their URLs; pipe/redirect gets the raw markdown so
// it round-trips through "note edit --file".

package notes

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/jpl-au/stash/cmd"
	"github.com/jpl-au/stash/extension"
	"github.com/jpl-au/stash/internal/format"
	"github.com/jpl-au/stash/internal/log"
	"github.com/jpl-au/stash/internal/markdown"
	"github.com/jpl-au/stash/internal/store"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func (e *Extension) newShowCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a note",
		Args:  cobra.ExactArgs(1),
		RunE:  e.runShow,
	}
	c.Flags().Bool(extension.FlagRaw, false, "Output raw markdown without rendering")
	return c
}

func (e *Extension) runShow(c *cobra.Command, args []string) error {
	raw, _ := c.Flags().GetBool(extension.FlagRaw)

	n, err := e.svc.Note(c.Context(), cmd.Owner(), args[0])
	log.Event("note:show", "read").Owner(cmd.Owner()).Target(args[0]).Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("note show %q: %w", args[0], err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(n)
	}

	if !raw && term.IsTerminal(int(os.Stdout.Fd())) {
		if rendered, err := glamour.Render(document(n, true), "dark"); err == nil {
			fmt.Fprint(cmd.Out(), rendered)
			return format.Files(cmd.Out(), n)
		}
	}

	fmt.Fprint(cmd.Out(), document(n, false))
	return nil
}

// document renders n for display. Rendered output gains a title heading
// and file: references pointing at the attachment URLs; raw output is the
// stored content alone.
func document(n *store.Note, rendered bool) string {
	if !rendered {
		return n.Content
	}
	urls := make(map[string]string, len(n.Files))
	for _, f := range n.Files {
		urls[f.ID] = f.URL
	}
	return fmt.Sprintf("# %s\n\n%s\n", n.Title, markdown.Resolve(n.Content, urls))
}

// guide.go implements the "stash guide" command for documentation access.
//
// Design: Guides are embedded in the binary via the guide package, so the
// documentation always matches the build. Terminal output gets glamour
// rendering; pipe/redirect gets raw markdown for LLM context loading.

package core

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/jpl-au/stash/cmd"
	"github.com/jpl-au/stash/guide"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newGuideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guide [topic]",
		Short: "Show the stash usage guide",
		Long: `Outputs the stash guide for LLMs and humans.

  stash guide          # main guide
  stash guide search   # how ranking and typo tolerance work
  stash guide api      # HTTP API reference
  stash guide mcp      # MCP tools and resources`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}

			content, err := guide.Get(name)
			if err != nil {
				available, listErr := guide.List()
				if listErr != nil {
					return listErr
				}
				return cmd.PrintJSONError(fmt.Errorf("guide %q not found. Available: %s", name, strings.Join(available, ", ")))
			}

			if term.IsTerminal(int(os.Stdout.Fd())) {
				if rendered, err := glamour.Render(content, "dark"); err == nil {
					fmt.Fprint(cmd.Out(), rendered)
					return nil
				}
			}

			fmt.Fprint(cmd.Out(), content)
			return nil
		},
	}
}

// add.go implements "stash note add".
//
// Design: Content comes from, in priority order, the second argument, the
// --file flag, or stdin. This supports both quick notes and piping.

package notes

import (
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/stash/cmd"
	"github.com/jpl-au/stash/extension"
	"github.com/jpl-au/stash/internal/log"
	"github.com/jpl-au/stash/internal/service"
	"github.com/spf13/cobra"
)

func (e *Extension) newAddCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "add <title> [content]",
		Short: "Create a note",
		Long: `Create a note. Content from argument, --file, or stdin.

  stash note add "Trip plan" "Book the train"
  stash note add "Meeting" -f minutes.md -t work -t q3
  cat draft.md | stash note add "Draft" --attach diagram.png`,
		Args: cobra.RangeArgs(1, 2),
		RunE: e.runAdd,
	}
	c.Flags().StringP(extension.FlagFile, "f", "", "Read content from file")
	c.Flags().StringSliceP(extension.FlagTag, "t", nil, "Tag (repeatable or comma-separated)")
	c.Flags().Bool(extension.FlagFavorite, false, "Mark as favourite")
	c.Flags().StringArray(extension.FlagAttach, nil, "Attach a file (repeatable)")
	return c
}

func (e *Extension) runAdd(c *cobra.Command, args []string) error {
	ctx := c.Context()
	file, _ := c.Flags().GetString(extension.FlagFile)
	tags, _ := c.Flags().GetStringSlice(extension.FlagTag)
	fav, _ := c.Flags().GetBool(extension.FlagFavorite)
	attach, _ := c.Flags().GetStringArray(extension.FlagAttach)

	content, err := readContent(c, args[1:], file)
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	uploads, files, err := openUploads(attach)
	defer closeUploads(files)
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	n, err := e.svc.CreateNote(ctx, cmd.Owner(), service.NoteInput{
		Title:    args[0],
		Content:  content,
		Tags:     tags,
		Favorite: fav,
	}, uploads)

	l := log.Event("note:add", "create").Owner(cmd.Owner()).Detail("files", len(uploads))
	if n != nil {
		l.Target(n.ID)
	}
	l.Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("note add: %w", err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(n)
	}
	fmt.Fprintf(cmd.Out(), "Created note %s\n", n.ID)
	return nil
}

// readContent returns args[0], the contents of file, or stdin.
func readContent(c *cobra.Command, args []string, file string) (string, error) {
	switch {
	case len(args) > 0:
		return args[0], nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read file %q: %w", file, err)
		}
		return string(data), nil
	default:
		data, err := io.ReadAll(c.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
}

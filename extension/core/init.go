// init.go implements the "stash init" command.
//
// Design: Init does NOT create config - that's managed separately via
// "stash config". This follows git's model where init creates repository
// structure and config is separate. Attachments stored by the local blob
// backend are gitignored unless --track-files is given.

package core

import (
	"fmt"

	"github.com/jpl-au/stash/cmd"
	"github.com/jpl-au/stash/extension"
	"github.com/jpl-au/stash/internal/log"
	"github.com/jpl-au/stash/internal/repo"
	"github.com/spf13/cobra"
)

type initResult struct {
	Dir string `json:"dir"`
}

func newInitCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "init",
		Short: "Initialise a new stash",
		Long: `Creates .stash/stash.db and .stash/files/ in the current directory.

Use --dir to create in a different directory:
  stash init --dir /path/to/project

Use --track-files to commit attachments instead of ignoring them.

Note: init does not create config or users. Use "stash config" and
"stash user add" afterwards.`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}
	c.Flags().Bool(extension.FlagTrackFiles, false, "Commit attachments (do not gitignore files/)")
	return c
}

func runInit(c *cobra.Command, _ []string) error {
	track, _ := c.Flags().GetBool(extension.FlagTrackFiles)

	dir, err := repo.Init(repo.Options{
		Force:      cmd.Force(),
		TrackFiles: track,
		Dir:        cmd.Dir(),
	})

	log.Event("core:init", "init").
		Detail("dir", dir).
		Detail("track_files", track).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("init: %w", err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(initResult{Dir: dir})
	}
	fmt.Fprintf(cmd.Out(), "Initialised stash in %s\n", dir)
	return nil
}

/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// root.go defines the root command and CLI execution entry point.
//
// Separated from init_extensions.go to isolate cobra setup from extension
// initialisation logic.
//
// Design: PersistentPreRunE opens the stash lazily. Only commands that need
// the store trigger extension init, so bootstrap commands (init, config,
// version) work before a stash exists. The noStoreCommands map controls
// which commands skip initialisation.

package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/jpl-au/stash/internal/log"
	"github.com/jpl-au/stash/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:     "stash",
	Short:   "Personal notes and bookmarks with fuzzy search",
	Long:    `Keep markdown notes and bookmarks per owner, search them with typo-tolerant ranking, and serve them over HTTP or MCP.`,
	Version: version.Short(),
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if output != "" && !slices.Contains(validOutputFormats, output) {
			return fmt.Errorf("invalid output format: %s (valid: %v)", output, validOutputFormats)
		}

		if owner == "" {
			owner = detectOwner()
		}

		cmdName := topLevelCmdName(cmd)
		if ownerRequiredCommands[cmdName] && owner == "" {
			return fmt.Errorf("owner not configured (checked --owner, STASH_OWNER, .stash/config.yaml and ~/.stash/config.yaml)\n\nRun: stash config owner <id>")
		}

		if !noStoreCommands[cmdName] {
			if err := initExtensions(); err != nil {
				if JSON() {
					_ = PrintJSON(map[string]string{"error": err.Error()})
					cmd.SilenceErrors = true
					cmd.SilenceUsage = true
				}
				return fmt.Errorf("open stash: %w", err)
			}
		}
		return nil
	},
}

// topLevelCmdName returns the name of the top-level command (direct child of root).
// For "stash note add", returns "note".
func topLevelCmdName(cmd *cobra.Command) string {
	for cmd.HasParent() && cmd.Parent().HasParent() {
		cmd = cmd.Parent()
	}
	return cmd.Name()
}

// Execute runs the root command and handles process lifecycle.
// Opens audit logging, registers extensions, executes the command, and closes
// the service before exit. Exit code 1 indicates error.
func Execute() {
	if err := log.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
	}
	defer log.Close()

	registerExtensions()
	err := rootCmd.Execute()

	if closeErr := closeService(); closeErr != nil {
		fmt.Fprintf(os.Stderr, "warning: closing service: %v\n", closeErr)
	}

	if err != nil {
		os.Exit(1)
	}
}

// RootCmd returns the root command for testing and extension access.
func RootCmd() *cobra.Command {
	return rootCmd
}

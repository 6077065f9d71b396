// Package core provides the core extension for stash.
// It registers commands: init, config, user, serve, mcp, guide, version.
package core

import (
	"github.com/jpl-au/stash/extension"
	"github.com/jpl-au/stash/internal/config"
	"github.com/jpl-au/stash/internal/service"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the core extension.
type Extension struct {
	svc service.Service
	cfg *config.Config
	dir string
}

// Compile-time interface compliance.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
	_ extension.Storeless     = (*Extension)(nil)
)

// Name returns "core" - this extension provides stash management commands.
func (e *Extension) Name() string { return "core" }

// Init connects to the shared service. Only the store-backed commands
// (user, serve, mcp) rely on it.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	e.cfg = ctx.Config()
	e.dir = ctx.Dir()
	return nil
}

// Commands returns all core CLI commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		newInitCmd(),
		newConfigCmd(),
		e.newUserCmd(),
		e.newServeCmd(),
		e.newMCPCmd(),
		newGuideCmd(),
		newVersionCmd(),
	}
}

// NoStoreCommands returns commands that work before a stash exists.
// version: Displays build info, doesn't need database connection.
// guide: Embedded documentation.
func (e *Extension) NoStoreCommands() []string {
	return []string{"version", "guide"}
}

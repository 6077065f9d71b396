// mcp.go implements the "stash mcp" command.
//
// Unlike other commands that run and exit, mcp blocks serving MCP requests
// over stdio. Every tool call acts as the owner resolved at startup.

package core

import (
	"github.com/jpl-au/stash/cmd"
	"github.com/jpl-au/stash/internal/log"
	"github.com/jpl-au/stash/internal/mcp"
	"github.com/spf13/cobra"
)

func (e *Extension) newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio for LLM integration.

Tools act as the owner from --owner, STASH_OWNER or the "owner" config key:
  stash mcp --owner alice`,
		Args: cobra.NoArgs,
		RunE: e.runMCP,
	}
}

func (e *Extension) runMCP(_ *cobra.Command, _ []string) error {
	err := mcp.Serve(e.svc, cmd.Owner())
	log.Event("core:mcp", "serve").Owner(cmd.Owner()).Write(err)
	return err
}

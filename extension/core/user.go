// user.go implements "stash user" for managing owners.
//
// Every note and bookmark belongs to a registered user. The HTTP API only
// accepts session tokens whose subject is registered here.

package core

import (
	"fmt"

	"github.com/jpl-au/stash/cmd"
	"github.com/jpl-au/stash/internal/log"
	"github.com/spf13/cobra"
)

type userResult struct {
	ID string `json:"id"`
}

func (e *Extension) newUserCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}
	c.AddCommand(&cobra.Command{
		Use:   "add <id>",
		Short: "Register a user",
		Args:  cobra.ExactArgs(1),
		RunE:  e.runUserAdd,
	})
	c.AddCommand(&cobra.Command{
		Use:   "ls",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE:  e.runUserList,
	})
	return c
}

func (e *Extension) runUserAdd(c *cobra.Command, args []string) error {
	err := e.svc.AddUser(c.Context(), args[0])
	log.Event("core:user", "add").Target(args[0]).Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("user add %q: %w", args[0], err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(userResult{ID: args[0]})
	}
	fmt.Fprintf(cmd.Out(), "Added user %s\n", args[0])
	return nil
}

func (e *Extension) runUserList(c *cobra.Command, _ []string) error {
	users, err := e.svc.Users(c.Context())
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("user ls: %w", err))
	}
	if cmd.JSON() {
		if users == nil {
			users = []string{}
		}
		return cmd.PrintJSON(users)
	}
	for _, u := range users {
		fmt.Fprintln(cmd.Out(), u)
	}
	return nil
}

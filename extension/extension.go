// Package extension provides the plugin architecture for stash. Extensions
// group related CLI commands and register at init time, so a feature area
// can be added without touching the root command.
package extension

import "github.com/spf13/cobra"

// Extension defines the contract for stash extensions.
type Extension interface {
	// Name returns a unique identifier for this extension.
	Name() string

	// Commands returns CLI commands to register with the root command.
	Commands() []*cobra.Command
}

// Initializable extensions receive the shared Context once the stash is open.
type Initializable interface {
	Extension
	Init(ctx Context) error
}

// Storeless is an optional interface for extensions with commands that
// don't require a store. Commands returned by NoStoreCommands() will
// not trigger store initialisation in PersistentPreRunE.
type Storeless interface {
	NoStoreCommands() []string
}

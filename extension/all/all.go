// Package all imports every built-in stash extension.
// Import this package to register all commands.
package all

import (
	// Each extension registers itself via init()
	_ "github.com/jpl-au/stash/extension/bookmarks"
	_ "github.com/jpl-au/stash/extension/core"
	_ "github.com/jpl-au/stash/extension/notes"
	_ "github.com/jpl-au/stash/extension/search"
)

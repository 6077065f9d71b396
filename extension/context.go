// context.go defines the Context interface for extension access to stash internals.
//
// Separated from extension.go to isolate dependency injection concerns.
// Extensions receive the Context during Init(), not at construction, to
// support the two-phase pattern where extensions register before the
// service is available.

package extension

import (
	"github.com/jpl-au/stash/internal/config"
	"github.com/jpl-au/stash/internal/service"
)

// Context provides extensions controlled access to stash internals.
type Context interface {
	// Service returns the notes and bookmarks service.
	Service() service.Service

	// Config returns the loaded configuration.
	Config() *config.Config

	// Dir returns the absolute path of the open .stash directory.
	Dir() string
}

// extContext implements Context.
type extContext struct {
	svc service.Service
	cfg *config.Config
	dir string
}

// NewContext creates a new extension context.
func NewContext(svc service.Service, cfg *config.Config, dir string) Context {
	return &extContext{svc: svc, cfg: cfg, dir: dir}
}

func (c *extContext) Service() service.Service { return c.svc }

func (c *extContext) Config() *config.Config { return c.cfg }

func (c *extContext) Dir() string { return c.dir }

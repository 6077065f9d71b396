/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// init_extensions.go handles extension initialisation and command registration.
//
// Separated from root.go to isolate the initialisation logic that discovers
// the stash, loads config, and wires up extensions.
//
// Design: Extensions register during init() but aren't initialised until
// first command execution. This two-phase pattern allows extensions to
// declare commands before the store exists. The service is created once
// and shared across all extensions via the Context.

package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/jpl-au/stash/extension"
	"github.com/jpl-au/stash/internal/config"
	"github.com/jpl-au/stash/internal/library"
	"github.com/jpl-au/stash/internal/log"
	"github.com/jpl-au/stash/internal/repo"
)

// noStoreCommands lists commands that bypass automatic store initialisation.
// Built from bootstrap commands plus extension-declared storeless commands.
var noStoreCommands map[string]bool

// ownerRequiredCommands lists commands that act on one owner's records.
var ownerRequiredCommands = map[string]bool{
	"note":     true,
	"bookmark": true,
	"search":   true,
	"complete": true,
	"mcp":      true,
}

// buildNoStoreCommands creates the set of commands that skip store
// initialisation: bootstrap commands that must work before "stash init",
// plus anything an extension declares via extension.Storeless.
func buildNoStoreCommands() map[string]bool {
	cmds := map[string]bool{
		"init":       true,
		"config":     true,
		"help":       true,
		"completion": true,
	}
	for _, ext := range extension.All() {
		if s, ok := ext.(extension.Storeless); ok {
			for _, name := range s.NoStoreCommands() {
				cmds[name] = true
			}
		}
	}
	return cmds
}

// Global extension context, created during initialisation.
var (
	extContext extension.Context
	extService *library.Service
	initOnce   sync.Once
	initErr    error
)

// StashDir returns the .stash directory commands act on: the one under
// --dir when given, otherwise the nearest one found walking up.
func StashDir() (string, error) {
	if d := Dir(); d != "" {
		abs, err := filepath.Abs(filepath.Join(d, repo.Dir))
		if err != nil {
			return "", err
		}
		return abs, nil
	}
	return repo.DiscoverDir()
}

// initExtensions opens the library service and injects it into extensions.
//
// sync.Once guarantees one service per process: opening the database sets
// up WAL mode and the blob store, and every extension must share it so it
// is closed exactly once.
func initExtensions() error {
	initOnce.Do(func() {
		stashDir, err := StashDir()
		if err != nil {
			initErr = err
			return
		}

		cfg, err := config.Load()
		if err != nil {
			initErr = err
			return
		}

		svc, err := library.Open(context.Background(), filepath.Join(stashDir, repo.DBFile), cfg)
		if err != nil {
			initErr = fmt.Errorf("opening database: %w", err)
			return
		}
		extService = svc

		log.SetInstance(stashDir)

		extContext = extension.NewContext(svc, cfg, stashDir)
		for _, ext := range extension.All() {
			if init, ok := ext.(extension.Initializable); ok {
				if err := init.Init(extContext); err != nil {
					initErr = fmt.Errorf("init extension %s: %w", ext.Name(), err)
					return
				}
			}
		}
	})
	return initErr
}

// closeService closes the shared service if a command opened it.
func closeService() error {
	if extService == nil {
		return nil
	}
	err := extService.Close()
	extService = nil
	return err
}

var extensionsOnce sync.Once

// registerExtensions adds commands from all registered extensions.
// Called once before Execute runs.
func registerExtensions() {
	extensionsOnce.Do(func() {
		for _, ext := range extension.All() {
			for _, cmd := range ext.Commands() {
				rootCmd.AddCommand(cmd)
			}
		}
		noStoreCommands = buildNoStoreCommands()
	})
}

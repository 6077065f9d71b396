package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig(t *testing.T) {
	t.Run("list shows defaults", func(t *testing.T) {
		env := newTestEnv(t)
		out := env.run("config")
		env.contains(out, "search.max_edits: 2")
		env.contains(out, "storage.backend: local")
		env.contains(out, "owner:")
	})

	t.Run("get after set", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("config", "search.max_expansions", "20")
		out := env.run("config", "search.max_expansions")
		env.contains(out, "20")
		assert.FileExists(t, filepath.Join(env.home, ".stash", "config.yaml"))
	})

	t.Run("local scope", func(t *testing.T) {
		env := newTestEnv(t)
		out := env.run("config", "owner", "bob", "--local")
		env.contains(out, "(local)")
		assert.FileExists(t, filepath.Join(env.dir, ".stash", "config.yaml"))
		assert.NoFileExists(t, filepath.Join(env.home, ".stash", "config.yaml"))
	})

	t.Run("secret is masked", func(t *testing.T) {
		env := newTestEnv(t)
		out := env.run("config", "auth.secret", "hunter2")
		env.notContains(out, "hunter2")

		out = env.run("config")
		env.contains(out, "auth.secret: ********")
		env.notContains(out, "hunter2")

		// Asking for the key by name shows it
		out = env.run("config", "auth.secret")
		env.contains(out, "hunter2")
	})
}

func TestConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown key", []string{"config", "nope.key", "x"}},
		{"edits out of range", []string{"config", "search.max_edits", "5"}},
		{"not a number", []string{"config", "limits.max_title", "lots"}},
		{"unknown backend", []string{"config", "storage.backend", "floppy"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)
			_, err := env.runErr(tc.args...)
			assert.Error(t, err)
		})
	}
}

func TestConfig_OwnerDefault(t *testing.T) {
	env := newTestEnv(t).as("")
	_, err := env.runErr("note", "ls")
	assert.Error(t, err, "no owner configured")

	env.run("config", "owner", "alice")
	env.run("note", "ls")
}

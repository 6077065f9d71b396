package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jpl-au/stash/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Defaults(t *testing.T) {
	var c config.Config
	assert.Equal(t, ":8080", c.Addr())
	assert.Equal(t, "jwt", c.Cookie())
	assert.Equal(t, 2, c.MaxEdits())
	assert.Equal(t, 50, c.MaxExpansions())
	assert.Equal(t, 1, c.CompleteMaxEdits())
	assert.Equal(t, 200, c.MaxTitle())
	assert.Equal(t, int64(1024*1024), c.MaxContent())
	assert.Equal(t, int64(10*1024*1024), c.MaxFileSize())
	assert.Equal(t, config.BackendLocal, c.Backend())
	assert.True(t, c.MetadataEnabled())
	assert.Equal(t, 5*time.Second, c.MetadataTimeout())
	assert.False(t, c.IsSet("search.max_edits"))
}

func TestConfig_SetGet(t *testing.T) {
	var c config.Config

	require.NoError(t, c.Set("search.max_edits", "0"))
	assert.True(t, c.IsSet("search.max_edits"))
	assert.Equal(t, 0, c.MaxEdits())

	require.NoError(t, c.Set("owner", " alice "))
	v, err := c.Get("owner")
	require.NoError(t, err)
	assert.Equal(t, "alice", v)

	require.NoError(t, c.Set("metadata.enabled", "FALSE"))
	assert.False(t, c.MetadataEnabled())

	all := c.All()
	assert.Len(t, all, len(config.ValidKeys()))
	assert.Equal(t, "0", all["search.max_edits"])
}

func TestConfig_SetRejects(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"search.max_edits", "3"},
		{"search.max_edits", "two"},
		{"search.max_expansions", "0"},
		{"limits.max_title", "-1"},
		{"metadata.enabled", "maybe"},
		{"metadata.timeout_ms", "10"},
		{"storage.backend", "ftp"},
		{"storage.backend", "s3"}, // bucket required
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			var c config.Config
			assert.ErrorIs(t, c.Set(tt.key, tt.value), config.ErrInvalidValue)
		})
	}

	var c config.Config
	assert.ErrorIs(t, c.Set("nope", "x"), config.ErrUnknownKey)
	_, err := c.Get("nope")
	assert.ErrorIs(t, err, config.ErrUnknownKey)
}

func TestConfig_LocalRoundTrip(t *testing.T) {
	t.Chdir(t.TempDir())

	c, err := config.LoadScope(config.ScopeLocal)
	require.NoError(t, err)
	require.NoError(t, c.Set("storage.bucket", "notes"))
	require.NoError(t, c.Set("storage.backend", "s3"))
	require.NoError(t, c.Save())

	info, err := os.Stat(config.LocalPath())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.ScopeLocal, loaded.Scope())
	assert.Equal(t, config.BackendS3, loaded.Backend())
	assert.Equal(t, "notes", loaded.Storage.Bucket)
}

func TestConfig_LoadInvalidFile(t *testing.T) {
	t.Chdir(t.TempDir())

	require.NoError(t, os.MkdirAll(".stash", 0755))
	require.NoError(t, os.WriteFile(filepath.Join(".stash", "config.yaml"), []byte("search:\n  max_edits: 9\n"), 0644))

	_, err := config.Load()
	assert.ErrorIs(t, err, config.ErrInvalidValue)
}

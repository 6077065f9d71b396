package log

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useTempDB points the logger at a temp database for the duration of t.
func useTempDB(t *testing.T) {
	t.Helper()
	tmpDir := t.TempDir()
	orig := dbPathFunc
	dbPathFunc = func() string {
		return filepath.Join(tmpDir, "log", "test.db")
	}
	t.Cleanup(func() {
		Close()
		dbPathFunc = orig
	})
}

func lastRow(t *testing.T) (source, owner, action, target string, success int, errMsg, detail sql.NullString) {
	t.Helper()
	db, err := sql.Open("sqlite", DBPath())
	require.NoError(t, err)
	defer db.Close()

	var o, tg sql.NullString
	err = db.QueryRow(`SELECT source, owner, action, target, success, error, detail
		FROM log ORDER BY id DESC LIMIT 1`).
		Scan(&source, &o, &action, &tg, &success, &errMsg, &detail)
	require.NoError(t, err)
	return source, o.String, action, tg.String, success, errMsg, detail
}

func TestLogger(t *testing.T) {
	useTempDB(t)

	t.Run("open and close", func(t *testing.T) {
		require.NoError(t, Open())
		defer Close()
		assert.FileExists(t, DBPath())
	})

	t.Run("log entry", func(t *testing.T) {
		require.NoError(t, Open())
		defer Close()
		SetInstance("/srv/stash/.stash")

		Log(Entry{Source: "note:show", Owner: "alice", Action: "read", Target: "n1", Success: true})

		source, owner, action, target, success, errMsg, _ := lastRow(t)
		assert.Equal(t, "note:show", source)
		assert.Equal(t, "alice", owner)
		assert.Equal(t, "read", action)
		assert.Equal(t, "n1", target)
		assert.Equal(t, 1, success)
		assert.False(t, errMsg.Valid)
	})

	t.Run("log without logger is noop", func(t *testing.T) {
		Close()
		Log(Entry{Source: "test:cmd", Action: "test", Success: true})
	})

	t.Run("open is idempotent", func(t *testing.T) {
		require.NoError(t, Open())
		require.NoError(t, Open())
		Close()
	})
}

func TestBuilder(t *testing.T) {
	useTempDB(t)

	t.Run("success", func(t *testing.T) {
		require.NoError(t, Open())
		defer Close()

		Event("api:notes", "read").Owner("alice").Target("n2").Write(nil)

		source, owner, _, target, success, _, detail := lastRow(t)
		assert.Equal(t, "api:notes", source)
		assert.Equal(t, "alice", owner)
		assert.Equal(t, "n2", target)
		assert.Equal(t, 1, success)
		assert.False(t, detail.Valid)
	})

	t.Run("error", func(t *testing.T) {
		require.NoError(t, Open())
		defer Close()

		Event("mcp:stash_note_read", "read").Owner("bob").Write(errors.New("note n3: not found"))

		_, _, _, _, success, errMsg, _ := lastRow(t)
		assert.Equal(t, 0, success)
		assert.Equal(t, "note n3: not found", errMsg.String)
	})

	t.Run("detail", func(t *testing.T) {
		require.NoError(t, Open())
		defer Close()

		Event("search:notes", "search").
			Owner("alice").
			Detail("query", "trip plan").
			Detail("count", 42).
			Write(nil)

		_, _, action, _, _, _, detail := lastRow(t)
		assert.Equal(t, "search", action)
		assert.Contains(t, detail.String, "trip plan")
		assert.Contains(t, detail.String, "42")
	})
}

func TestHash(t *testing.T) {
	h1 := hash("/home/user/notes/.stash")
	h2 := hash("/home/user/notes/.stash")
	h3 := hash("/home/user/other/.stash")

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.Len(t, h1, 16, "BLAKE2b-64 should produce 16 hex chars")
}

func TestDBPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	orig := dbPathFunc
	dbPathFunc = defaultDBPath
	defer func() { dbPathFunc = orig }()

	assert.Equal(t, filepath.Join(home, ".stash", "log", "stash-log.db"), DBPath())
}

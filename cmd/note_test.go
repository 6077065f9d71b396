package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noteJSON struct {
	ID       string     `json:"_id"`
	Title    string     `json:"title"`
	Content  string     `json:"content"`
	Tags     []string   `json:"tags"`
	Favorite bool       `json:"favorite"`
	Files    []fileJSON `json:"files"`
}

type fileJSON struct {
	ID   string `json:"id"`
	URL  string `json:"url"`
	Type string `json:"type"`
	Name string `json:"name"`
}

// pngHeader is enough of a PNG for content sniffing.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestNote_AddShow(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("note", "add", "Trip plan", "Book the train to Lyon", "-t", "Travel, france", "-t", "france", "--favorite")
	env.contains(out, "Created note")

	var list []noteJSON
	env.runJSON(&list, "note", "ls")
	require.Len(t, list, 1)
	n := list[0]
	assert.Equal(t, "Trip plan", n.Title)
	assert.Equal(t, []string{"Travel", "france"}, n.Tags)
	assert.True(t, n.Favorite)

	// Not a terminal: raw content
	out = env.run("note", "show", n.ID)
	env.contains(out, "Book the train to Lyon")
}

func TestNote_ContentSources(t *testing.T) {
	env := newTestEnv(t)

	t.Run("stdin", func(t *testing.T) {
		env.runStdin("# From a pipe\n", "note", "add", "Piped")
		var list []noteJSON
		env.runJSON(&list, "note", "ls")
		require.NotEmpty(t, list)
		assert.Equal(t, "# From a pipe\n", list[0].Content)
	})

	t.Run("file", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), "draft.md")
		require.NoError(t, os.WriteFile(p, []byte("from a file"), 0644))
		var n noteJSON
		env.runJSON(&n, "note", "add", "From file", "-f", p)
		assert.Equal(t, "from a file", n.Content)
	})
}

func TestNote_Validation(t *testing.T) {
	env := newTestEnv(t)
	txt := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("plain text"), 0644))

	tests := []struct {
		name string
		args []string
	}{
		{"blank title", []string{"note", "add", "  ", "body"}},
		{"empty content", []string{"note", "add", "Title", "   "}},
		{"long tag", []string{"note", "add", "Title", "body", "-t", strings.Repeat("x", 65)}},
		{"unsupported attachment", []string{"note", "add", "Title", "body", "--attach", txt}},
		{"missing attachment", []string{"note", "add", "Title", "body", "--attach", "nope.png"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.runErr(tc.args...)
			assert.Error(t, err)
		})
	}

	var list []noteJSON
	env.runJSON(&list, "note", "ls")
	assert.Empty(t, list)
}

func TestNote_Edit(t *testing.T) {
	env := newTestEnv(t)
	id := env.addNote("Draft", "first", "-t", "a")

	env.run("note", "edit", id, "--title", "Final")
	var n noteJSON
	env.runJSON(&n, "note", "show", id)
	assert.Equal(t, "Final", n.Title)
	assert.Equal(t, "first", n.Content, "content unchanged")
	assert.Equal(t, []string{"a"}, n.Tags, "tags unchanged")

	env.run("note", "edit", id, "--content", "second", "-t", "b,c", "--favorite")
	env.runJSON(&n, "note", "show", id)
	assert.Equal(t, "second", n.Content)
	assert.Equal(t, []string{"b", "c"}, n.Tags)
	assert.True(t, n.Favorite)

	env.run("note", "edit", id, "--favorite=false")
	env.runJSON(&n, "note", "show", id)
	assert.False(t, n.Favorite)

	_, err := env.runErr("note", "edit", id)
	assert.Error(t, err, "nothing to change")
}

func TestNote_Attachments(t *testing.T) {
	env := newTestEnv(t)
	img := filepath.Join(t.TempDir(), "plan.png")
	require.NoError(t, os.WriteFile(img, pngHeader, 0644))

	id := env.addNote("Floor plan", "See below", "--attach", img)

	var n noteJSON
	env.runJSON(&n, "note", "show", id)
	require.Len(t, n.Files, 1)
	f := n.Files[0]
	assert.Equal(t, "IMAGE", f.Type)
	assert.Equal(t, "plan.png", f.Name)

	out := env.run("note", "files", id)
	env.contains(out, f.ID)
	env.contains(out, "attached")

	env.run("note", "edit", id, "--content", "![plan](file:"+f.ID+") and ![gone](file:file_missing)")
	out = env.run("note", "files", id)
	env.contains(out, "inline")
	env.contains(out, "file_missing  dangling reference")

	entries, err := os.ReadDir(filepath.Join(env.dir, ".stash", "files"))
	require.NoError(t, err)
	assert.NotEmpty(t, entries)

	env.run("note", "edit", id, "--detach", f.ID)
	env.runJSON(&n, "note", "show", id)
	assert.Empty(t, n.Files)

	_, err = env.runErr("note", "edit", id, "--detach", f.ID)
	assert.Error(t, err, "already detached")
}

func TestNote_Rm(t *testing.T) {
	env := newTestEnv(t)
	id := env.addNote("Temporary", "gone soon")

	out := env.run("note", "rm", id)
	env.contains(out, "Deleted note")

	out, err := env.runErr("note", "show", id)
	assert.Error(t, err)
	assert.Contains(t, out, "not found")
}

func TestNote_LsTagsAndOwners(t *testing.T) {
	env := newTestEnv(t)
	env.run("user", "add", "bob")

	env.addNote("Work item", "ship it", "-t", "work")
	env.addNote("Home item", "fix tap", "-t", "home")
	bobs := env.as("bob").addNote("Bob note", "private")

	out := env.run("note", "ls", "-t", "work")
	env.contains(out, "Work item")
	env.notContains(out, "Home item")

	out = env.run("note", "ls", "--long")
	env.contains(out, "TITLE")
	env.notContains(out, "Bob note")

	var tags []string
	env.runJSON(&tags, "note", "tags")
	assert.ElementsMatch(t, []string{"work", "home"}, tags)

	_, err := env.runErr("note", "show", bobs)
	assert.Error(t, err, "alice cannot read bob's note")
}

func TestNote_UnknownOwner(t *testing.T) {
	env := newTestEnv(t).as("mallory")
	_, err := env.runErr("note", "add", "Title", "body")
	assert.Error(t, err)
}

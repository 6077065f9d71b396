package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookmarkJSON struct {
	ID          string   `json:"_id"`
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Favorite    bool     `json:"favorite"`
}

// newBookmarkEnv disables metadata fetching so tests never touch the network.
func newBookmarkEnv(t *testing.T) *testEnv {
	t.Helper()
	env := newTestEnv(t)
	env.run("config", "metadata.enabled", "false")
	return env
}

func TestBookmark_Add(t *testing.T) {
	env := newBookmarkEnv(t)

	var b bookmarkJSON
	env.runJSON(&b, "bookmark", "add", "https://go.dev/doc/effective_go",
		"--title", "Effective Go", "--description", "Writing clear Go", "-t", "go,reading")
	assert.Equal(t, "Effective Go", b.Title)
	assert.Equal(t, []string{"go", "reading"}, b.Tags)

	out := env.run("bookmark", "show", b.ID)
	env.contains(out, "Effective Go")
	env.contains(out, "https://go.dev/doc/effective_go")
	env.contains(out, "tags: go, reading")
}

func TestBookmark_Defaults(t *testing.T) {
	env := newBookmarkEnv(t)

	var b bookmarkJSON
	env.runJSON(&b, "bookmark", "add", "example.com")
	assert.Equal(t, "Untitled Bookmark", b.Title)
	assert.Equal(t, "No description", b.Description)
}

func TestBookmark_InvalidURL(t *testing.T) {
	env := newBookmarkEnv(t)
	for _, u := range []string{"not a url", "ftp://example.com", "localhost"} {
		_, err := env.runErr("bookmark", "add", u, "--title", "x")
		assert.Error(t, err, u)
	}
}

func TestBookmark_EditRm(t *testing.T) {
	env := newBookmarkEnv(t)
	id := env.addBookmark("https://a.example.com", "--title", "A", "--description", "first")

	env.run("bookmark", "edit", id, "--description", "second", "--favorite")
	var b bookmarkJSON
	env.runJSON(&b, "bookmark", "show", id)
	assert.Equal(t, "A", b.Title)
	assert.Equal(t, "second", b.Description)
	assert.True(t, b.Favorite)

	_, err := env.runErr("bookmark", "edit", id)
	assert.Error(t, err, "nothing to change")

	env.run("bookmark", "rm", id)
	_, err = env.runErr("bookmark", "show", id)
	assert.Error(t, err)
}

func TestBookmark_LsAndTags(t *testing.T) {
	env := newBookmarkEnv(t)
	env.addBookmark("https://go.dev", "--title", "Go", "-t", "lang")
	env.addBookmark("https://news.example.com", "--title", "News", "-t", "daily")

	var list []bookmarkJSON
	env.runJSON(&list, "bookmark", "ls", "-t", "lang")
	require.Len(t, list, 1)
	assert.Equal(t, "Go", list[0].Title)

	out := env.run("bookmark", "ls")
	env.contains(out, "<https://go.dev>")
	env.contains(out, "<https://news.example.com>")

	out = env.run("bookmark", "tags")
	env.contains(out, "lang")
	env.contains(out, "daily")
}

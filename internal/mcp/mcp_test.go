package mcp

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/jpl-au/stash/internal/library"
	"github.com/jpl-au/stash/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, owner string) *handlers {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "stash.db"))
	require.NoError(t, err)
	require.NoError(t, s.Init())

	svc := library.NewWithStore(s, library.Options{MaxTitle: 200, MaxContent: 1 << 20})
	t.Cleanup(func() { svc.Close() })
	require.NoError(t, svc.AddUser(context.Background(), "alice"))
	return &handlers{svc: svc, owner: owner}
}

func call(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

// decode fails the test on a tool error and decodes the JSON result.
func decode[T any](t *testing.T, res *mcp.CallToolResult, err error) T {
	t.Helper()
	require.NoError(t, err)
	body := text(t, res)
	require.False(t, res.IsError, body)
	var v T
	require.NoError(t, json.Unmarshal([]byte(body), &v))
	return v
}

func TestTools_NoOwner(t *testing.T) {
	h := setup(t, "")
	res, err := h.searchNotes(context.Background(), call(nil))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, ErrNoOwner, text(t, res))
}

func TestTools_NoteLifecycle(t *testing.T) {
	h := setup(t, "alice")
	ctx := context.Background()

	res, err := h.writeNote(ctx, call(map[string]any{
		"title": "Trip Plan Japan", "content": "Tokyo", "tags": "travel, 2024",
	}))
	n := decode[store.Note](t, res, err)
	assert.Equal(t, []string{"travel", "2024"}, n.Tags)

	res, err = h.writeNote(ctx, call(map[string]any{"id": n.ID, "favorite": true}))
	updated := decode[store.Note](t, res, err)
	assert.True(t, updated.Favorite)
	assert.Equal(t, "Tokyo", updated.Content, "omitted fields are kept")

	res, err = h.writeNote(ctx, call(map[string]any{"id": n.ID, "content": ""}))
	require.NoError(t, err)
	assert.True(t, res.IsError, "explicit empty content is rejected")

	res, err = h.readNote(ctx, call(map[string]any{"id": n.ID}))
	assert.Equal(t, n.ID, decode[store.Note](t, res, err).ID)

	var rr mcp.ReadResourceRequest
	rr.Params.URI = notePrefix + n.ID
	contents, err := h.readNoteResource(ctx, rr)
	require.NoError(t, err)
	require.Len(t, contents, 1)
	assert.Contains(t, contents[0].(mcp.TextResourceContents).Text, "# Trip Plan Japan")

	res, err = h.deleteNote(ctx, call(map[string]any{"id": n.ID}))
	decode[store.Note](t, res, err)

	res, err = h.readNote(ctx, call(map[string]any{"id": n.ID}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestTools_SearchAndComplete(t *testing.T) {
	h := setup(t, "alice")
	ctx := context.Background()

	for _, title := range []string{"Trip Plan Japan", "Trip Plan Korea"} {
		res, err := h.writeNote(ctx, call(map[string]any{"title": title, "content": "plans", "tags": []any{"travel"}}))
		decode[store.Note](t, res, err)
	}

	res, err := h.searchNotes(ctx, call(map[string]any{"query": "Trpi"}))
	found := decode[map[string]any](t, res, err)
	assert.Equal(t, "ranked", found["strategy"])
	assert.Len(t, found["result"], 2)

	res, err = h.searchNotes(ctx, call(map[string]any{"tags": []any{"food"}}))
	found = decode[map[string]any](t, res, err)
	assert.Equal(t, "tags", found["strategy"])
	assert.Empty(t, found["result"])

	res, err = h.completeNotes(ctx, call(map[string]any{"prefix": ""}))
	assert.Empty(t, decode[[]store.NoteSuggestion](t, res, err))

	res, err = h.completeNotes(ctx, call(map[string]any{"prefix": "trip plan k"}))
	sugg := decode[[]store.NoteSuggestion](t, res, err)
	require.Len(t, sugg, 1)
	assert.Equal(t, "Trip Plan Korea", sugg[0].Title)
}

func TestTools_Bookmarks(t *testing.T) {
	h := setup(t, "alice")
	ctx := context.Background()

	res, err := h.addBookmark(ctx, call(map[string]any{"url": "https://go.dev", "title": "Go"}))
	b := decode[store.Bookmark](t, res, err)
	assert.Equal(t, library.DefaultBookmarkDescription, b.Description)

	res, err = h.searchBookmarks(ctx, call(map[string]any{"query": "go.dev"}))
	found := decode[map[string]any](t, res, err)
	assert.Len(t, found["result"], 1)

	res, err = h.completeBookmarks(ctx, call(map[string]any{"prefix": "go"}))
	assert.Len(t, decode[[]store.BookmarkSuggestion](t, res, err), 1)

	res, err = h.readBookmark(ctx, call(map[string]any{"id": b.ID}))
	assert.Equal(t, "Go", decode[store.Bookmark](t, res, err).Title)

	res, err = h.deleteBookmark(ctx, call(map[string]any{"id": b.ID}))
	decode[store.Bookmark](t, res, err)

	res, err = h.addBookmark(ctx, call(map[string]any{"url": "not a url"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestParseNoteURI(t *testing.T) {
	id, err := parseNoteURI("stash://notes/abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", id)

	_, err = parseNoteURI("stash://notes/")
	assert.ErrorIs(t, err, ErrEmptyID)
	_, err = parseNoteURI("other://notes/x")
	assert.ErrorIs(t, err, ErrInvalidURI)
	_, err = parseNoteURI("stash://notes/a/b")
	assert.ErrorIs(t, err, ErrInvalidURI)
}

func TestGuideResource(t *testing.T) {
	var rr mcp.ReadResourceRequest
	rr.Params.URI = guideURI
	contents, err := readGuideResource(context.Background(), rr)
	require.NoError(t, err)
	require.Len(t, contents, 1)
	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Contains(t, text.Text, "# stash")
	assert.Contains(t, text.Text, "stash_search_notes")
}

package markdown_test

import (
	"testing"

	"github.com/jpl-au/stash/internal/markdown"
	"github.com/stretchr/testify/assert"
)

const note = "# Trip\n\n" +
	"![map](file:file_aaaaaaaaa)\n\n" +
	"See [the booking](file:file_bbbbbbbbb) and [site](https://example.com).\n\n" +
	"Again: [map](file:file_aaaaaaaaa)\n\n" +
	"```\n[not a ref](file:file_ccccccccc)\n```\n"

func TestFileRefs(t *testing.T) {
	assert.Equal(t, []string{"file_aaaaaaaaa", "file_bbbbbbbbb"}, markdown.FileRefs(note))
	assert.Empty(t, markdown.FileRefs("plain text, no links"))
}

func TestDangling(t *testing.T) {
	assert.Equal(t, []string{"file_bbbbbbbbb"}, markdown.Dangling(note, []string{"file_aaaaaaaaa"}))
	assert.Empty(t, markdown.Dangling(note, []string{"file_aaaaaaaaa", "file_bbbbbbbbb"}))
}

func TestResolve(t *testing.T) {
	out := markdown.Resolve(note, map[string]string{"file_aaaaaaaaa": "https://cdn/a.png"})
	assert.Contains(t, out, "![map](https://cdn/a.png)")
	assert.Contains(t, out, "[map](https://cdn/a.png)")
	assert.Contains(t, out, "(file:file_bbbbbbbbb)")
	assert.Contains(t, out, "(file:file_ccccccccc)")
}

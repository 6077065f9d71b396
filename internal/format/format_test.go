package format

import (
	"bytes"
	"testing"

	"github.com/jpl-au/stash/internal/search"
	"github.com/jpl-au/stash/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestHumanSize(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0B"},
		{1023, "1023B"},
		{1536, "1.5K"},
		{3 << 20, "3.0M"},
		{5 << 30, "5.0G"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, humanSize(tc.in))
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "a b c", truncate("a\n  b\tc", 10))
	assert.Equal(t, "héllo w...", truncate("héllo wörld again", 10))
}

func TestHits_ScoreOnlyWhenRanked(t *testing.T) {
	hits := []search.Hit[store.Note]{{Record: store.Note{ID: "n1", Title: "Trip"}, Score: 1.5}}

	var buf bytes.Buffer
	_ = NoteHits(&buf, search.Result[store.Note]{Plan: search.Plan{Strategy: search.Ranked}, Hits: hits})
	assert.Equal(t, "  1.500  n1  Trip\n", buf.String())

	buf.Reset()
	_ = NoteHits(&buf, search.Result[store.Note]{Plan: search.Plan{Strategy: search.TagFilterOnly}, Hits: hits})
	assert.Equal(t, "n1  Trip\n", buf.String())
}

func TestFiles(t *testing.T) {
	n := &store.Note{
		Content: "![a](file:file_a) and [gone](file:file_gone)",
		Files: []store.File{
			{ID: "file_a", Type: store.FileImage, Name: "a.png", Size: 2048},
			{ID: "file_b", Type: store.FileDocument, Name: "b.pdf", Size: 10},
		},
	}
	var buf bytes.Buffer
	_ = Files(&buf, n)
	out := buf.String()
	assert.Contains(t, out, "file_a  IMAGE       2.0K  inline    a.png")
	assert.Contains(t, out, "file_b  DOCUMENT     10B  attached  b.pdf")
	assert.Contains(t, out, "file_gone  dangling reference")
}

func TestSuggestions(t *testing.T) {
	var buf bytes.Buffer
	_ = Suggestions(&buf, []store.NoteSuggestion{{ID: "1", Title: "Lasagne"}, {ID: "2", Title: "Laptop"}})
	assert.Equal(t, "Lasagne\nLaptop\n", buf.String())
}

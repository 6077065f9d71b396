package service_test

import (
	"testing"

	"github.com/jpl-au/stash/internal/search"
	"github.com/jpl-au/stash/internal/service"
	"github.com/jpl-au/stash/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteHits_ScoreOnlyWhenRanked(t *testing.T) {
	hits := []search.Hit[store.Note]{{Record: store.Note{ID: "a"}, Score: 1.5}}

	ranked := service.NoteHits(search.Result[store.Note]{Plan: search.Plan{Strategy: search.Ranked}, Hits: hits})
	require.Len(t, ranked, 1)
	require.NotNil(t, ranked[0].Score)
	assert.InDelta(t, 1.5, *ranked[0].Score, 1e-9)
	assert.Equal(t, "a", ranked[0].ID)

	listed := service.NoteHits(search.Result[store.Note]{Plan: search.Plan{Strategy: search.Unranked}, Hits: hits})
	require.Len(t, listed, 1)
	assert.Nil(t, listed[0].Score)
}

func TestBookmarkHits_Empty(t *testing.T) {
	out := service.BookmarkHits(search.Result[store.Bookmark]{})
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

package store_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jpl-au/stash/internal/search"
	"github.com/jpl-au/stash/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupStore creates a temporary SQLite store with two registered owners.
func setupStore(t *testing.T) (*store.SQLiteStore, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "stash-store-test-*")
	require.NoError(t, err)

	s, err := store.Open(filepath.Join(tmpDir, "test.db"))
	require.NoError(t, err)
	require.NoError(t, s.Init())

	ctx := context.Background()
	require.NoError(t, s.AddUser(ctx, "alice"))
	require.NoError(t, s.AddUser(ctx, "bob"))

	cleanup := func() {
		s.Close()
		os.RemoveAll(tmpDir)
	}
	return s, cleanup
}

func addNote(t *testing.T, s *store.SQLiteStore, owner, title, content string, tags ...string) *store.Note {
	t.Helper()
	n := &store.Note{Owner: owner, Title: title, Content: content, Tags: tags}
	require.NoError(t, s.CreateNote(context.Background(), n))
	return n
}

func titles(hits []search.Hit[store.Note]) []string {
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.Record.Title
	}
	return out
}

// --- Users ---

func TestStore_Users(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	err := s.AddUser(ctx, "alice")
	assert.ErrorIs(t, err, store.ErrAlreadyExists)

	ok, err := s.UserExists(ctx, "bob")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.UserExists(ctx, "carol")
	require.NoError(t, err)
	assert.False(t, ok)

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alice", "bob"}, users)
}

func TestStore_CreateNoteUnknownOwner(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()

	err := s.CreateNote(context.Background(), &store.Note{Owner: "carol", Title: "x", Content: "y"})
	assert.ErrorIs(t, err, store.ErrUnknownOwner)
}

// --- Notes ---

func TestStore_NoteCRUD(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	n := addNote(t, s, "alice", "Shopping", "milk, eggs", "home", "weekly")
	require.NotEmpty(t, n.ID)
	assert.False(t, n.CreatedAt.IsZero())
	assert.Equal(t, n.CreatedAt, n.UpdatedAt)

	got, err := s.Note(ctx, "alice", n.ID)
	require.NoError(t, err)
	assert.Equal(t, "Shopping", got.Title)
	assert.Equal(t, "milk, eggs", got.Content)
	assert.Equal(t, []string{"home", "weekly"}, got.Tags)
	assert.Empty(t, got.Files)

	got.Title = "Groceries"
	got.Tags = []string{"home"}
	got.Files = []store.File{{ID: "file_abc123xyz", StorageID: "k1", URL: "https://cdn/k1", Type: store.FileImage, Name: "a.png", Size: 10}}
	require.NoError(t, s.UpdateNote(ctx, got))
	assert.True(t, !got.UpdatedAt.Before(got.CreatedAt))

	got, err = s.Note(ctx, "alice", n.ID)
	require.NoError(t, err)
	assert.Equal(t, "Groceries", got.Title)
	assert.Equal(t, []string{"home"}, got.Tags)
	require.Len(t, got.Files, 1)
	f, ok := got.File("file_abc123xyz")
	require.True(t, ok)
	assert.Equal(t, store.FileImage, f.Type)
	assert.Equal(t, int64(10), f.Size)

	deleted, err := s.DeleteNote(ctx, "alice", n.ID)
	require.NoError(t, err)
	assert.Len(t, deleted.Files, 1)

	_, err = s.Note(ctx, "alice", n.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_NoteOwnerScoped(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	n := addNote(t, s, "alice", "Private", "secret")

	_, err := s.Note(ctx, "bob", n.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = s.UpdateNote(ctx, &store.Note{ID: n.ID, Owner: "bob", Title: "mine"})
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.DeleteNote(ctx, "bob", n.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

// --- Retrieval ---

func TestNoteIndex_ListAndTags(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	addNote(t, s, "alice", "First", "one", "a")
	addNote(t, s, "alice", "Second", "two", "a", "b")
	addNote(t, s, "alice", "Third", "three", "b")
	addNote(t, s, "bob", "Other", "four", "a")

	notes, err := s.Notes().List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, notes, 3)
	assert.Equal(t, "First", notes[0].Title)
	assert.Equal(t, "Third", notes[2].Title)

	tagged, err := s.Notes().ListTagged(ctx, "alice", []string{"a", "b"})
	require.NoError(t, err)
	require.Len(t, tagged, 1)
	assert.Equal(t, "Second", tagged[0].Title)

	tagged, err = s.Notes().ListTagged(ctx, "alice", []string{"A"})
	require.NoError(t, err)
	assert.Empty(t, tagged, "tag matching is case-sensitive")

	tags, err := s.Notes().Tags(ctx, "alice")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, tags)
}

func TestNoteIndex_RankFuzzyScopedAndTagged(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	addNote(t, s, "alice", "Trip Plan Japan", "Tokyo and Kyoto", "travel")
	addNote(t, s, "alice", "Trip Plan Korea", "Seoul", "travel", "asia")
	addNote(t, s, "alice", "Groceries", "bread")
	addNote(t, s, "bob", "Trip to Paris", "Louvre", "travel")

	q := search.Query{Text: "Trpi", Fields: search.Notes.Fields}
	hits, err := s.Notes().Rank(ctx, "alice", q)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Trip Plan Japan", "Trip Plan Korea"}, titles(hits))

	q.Tags = []string{"asia"}
	hits, err = s.Notes().Rank(ctx, "alice", q)
	require.NoError(t, err)
	assert.Equal(t, []string{"Trip Plan Korea"}, titles(hits))

	hits, err = s.Notes().Rank(ctx, "bob", search.Query{Text: "trip", Fields: search.Notes.Fields})
	require.NoError(t, err)
	assert.Equal(t, []string{"Trip to Paris"}, titles(hits))
}

func TestNoteIndex_RankContentAndAccents(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	addNote(t, s, "alice", "Café list", "best espresso in town")

	for _, text := range []string{"cafe", "ESPRESSO", "café"} {
		hits, err := s.Notes().Rank(ctx, "alice", search.Query{Text: text, Fields: search.Notes.Fields})
		require.NoError(t, err, text)
		assert.Len(t, hits, 1, text)
	}
}

func TestNoteIndex_RankNoTokens(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()

	addNote(t, s, "alice", "Anything", "at all")

	hits, err := s.Notes().Rank(context.Background(), "alice", search.Query{Text: "?!", Fields: search.Notes.Fields})
	require.NoError(t, err)
	assert.NotNil(t, hits)
	assert.Empty(t, hits)
}

func TestNoteIndex_RankUnknownField(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()

	_, err := s.Notes().Rank(context.Background(), "alice", search.Query{Text: "trip", Fields: []string{"owner"}})
	assert.Error(t, err)
}

func TestNoteIndex_DeleteRemovesFromSearch(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	n := addNote(t, s, "alice", "Trip Plan Japan", "Tokyo")
	q := search.Query{Text: "japan", Fields: search.Notes.Fields}

	hits, err := s.Notes().Rank(ctx, "alice", q)
	require.NoError(t, err)
	require.Len(t, hits, 1)

	_, err = s.DeleteNote(ctx, "alice", n.ID)
	require.NoError(t, err)

	hits, err = s.Notes().Rank(ctx, "alice", q)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestNoteIndex_UpdateReindexes(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	n := addNote(t, s, "alice", "Draft", "lorem")
	n.Title = "Published"
	require.NoError(t, s.UpdateNote(ctx, n))

	hits, err := s.Notes().Rank(ctx, "alice", search.Query{Text: "draft", Fields: search.Notes.Fields})
	require.NoError(t, err)
	assert.Empty(t, hits)

	hits, err = s.Notes().Rank(ctx, "alice", search.Query{Text: "published", Fields: search.Notes.Fields})
	require.NoError(t, err)
	assert.Len(t, hits, 1)
}

func TestNoteIndex_Complete(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	addNote(t, s, "alice", "Trip Plan Japan", "")
	addNote(t, s, "alice", "Trip Plan Korea", "")
	addNote(t, s, "alice", "Plan B", "trip mentioned only in content")
	addNote(t, s, "bob", "Trip Plan Peru", "")

	q := search.Query{Text: "trip pl", Fields: search.Notes.CompleteFields}
	got, err := s.Notes().Complete(ctx, "alice", q)
	require.NoError(t, err)
	labels := make([]string, len(got))
	for i, sg := range got {
		labels[i] = sg.Label()
		assert.NotEmpty(t, sg.ID)
	}
	assert.ElementsMatch(t, []string{"Trip Plan Japan", "Trip Plan Korea"}, labels)

	// One typo in a prefix of three or more characters is tolerated.
	got, err = s.Notes().Complete(ctx, "alice", search.Query{Text: "trop", Fields: search.Notes.CompleteFields})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	// Matches start at a word boundary; "la" is inside "plan" but starts no word.
	got, err = s.Notes().Complete(ctx, "alice", search.Query{Text: "la", Fields: search.Notes.CompleteFields})
	require.NoError(t, err)
	assert.Empty(t, got)
}

// --- Bookmarks ---

func TestStore_BookmarkCRUDAndSearch(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	b := &store.Bookmark{
		Owner:       "alice",
		URL:         "https://go.dev/doc",
		Title:       "Go documentation",
		Description: "Tutorials and references",
		Tags:        []string{"golang"},
	}
	require.NoError(t, s.CreateBookmark(ctx, b))

	got, err := s.Bookmark(ctx, "alice", b.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://go.dev/doc", got.URL)
	assert.Equal(t, []string{"golang"}, got.Tags)

	_, err = s.Bookmark(ctx, "bob", b.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	hits, err := s.Bookmarks().Rank(ctx, "alice", search.Query{Text: "tutorails", Fields: search.Bookmarks.Fields})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, b.ID, hits[0].Record.ID)

	sugg, err := s.Bookmarks().Complete(ctx, "alice", search.Query{Text: "go.d", Fields: search.Bookmarks.CompleteFields})
	require.NoError(t, err)
	require.Len(t, sugg, 1)
	assert.Equal(t, "Go documentation", sugg[0].Label())

	got.Description = "Everything Go"
	require.NoError(t, s.UpdateBookmark(ctx, got))

	hits, err = s.Bookmarks().Rank(ctx, "alice", search.Query{Text: "tutorials", Fields: search.Bookmarks.Fields})
	require.NoError(t, err)
	assert.Empty(t, hits)

	_, err = s.DeleteBookmark(ctx, "alice", b.ID)
	require.NoError(t, err)

	list, err := s.Bookmarks().List(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestStore_SetFuzzyDisablesExpansion(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	addNote(t, s, "alice", "Trip", "")
	s.SetFuzzy(store.Fuzzy{MaxExpansions: 1})

	hits, err := s.Notes().Rank(ctx, "alice", search.Query{Text: "trpi", Fields: search.Notes.Fields})
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestFileID(t *testing.T) {
	id, err := store.FileID()
	require.NoError(t, err)
	assert.Regexp(t, `^file_[0-9a-z]{9}$`, id)
}

func TestNoteIndex_ListHydratesLargeCollections(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	// Spans several hydration batches.
	const total = 1201
	for i := range total {
		n := &store.Note{Owner: "alice", Title: fmt.Sprintf("Note %04d", i), Content: "bulk", Tags: []string{"bulk"}}
		if i == total-1 {
			n.Files = []store.File{{ID: "file_lastnote1", StorageID: "k", URL: "/files/k", Type: store.FileImage}}
		}
		require.NoError(t, s.CreateNote(ctx, n))
	}

	notes, err := s.Notes().List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, notes, total)
	assert.Equal(t, []string{"bulk"}, notes[0].Tags)
	assert.Equal(t, []string{"bulk"}, notes[total-1].Tags)
	require.Len(t, notes[total-1].Files, 1)
	assert.Equal(t, "file_lastnote1", notes[total-1].Files[0].ID)
	assert.Empty(t, notes[0].Files)

	tagged, err := s.Notes().ListTagged(ctx, "alice", []string{"bulk"})
	require.NoError(t, err)
	assert.Len(t, tagged, total)
}

func TestNoteIndex_RankStopsAtLimit(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	for i := range 15 {
		addNote(t, s, "alice", fmt.Sprintf("Trip %d", i), "itinerary")
	}

	q := search.Query{Text: "trip", Fields: search.Notes.Fields}
	hits, err := s.Notes().Rank(ctx, "alice", q)
	require.NoError(t, err)
	assert.Len(t, hits, 15)

	q.Limit = search.Limit
	hits, err = s.Notes().Rank(ctx, "alice", q)
	require.NoError(t, err)
	assert.Len(t, hits, search.Limit)
}

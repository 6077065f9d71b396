// bookmarks.go implements the /api/bookmarks handlers. Bodies are JSON only.

package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jpl-au/stash/internal/log"
	"github.com/jpl-au/stash/internal/service"
)

type bookmarkBody struct {
	URL         *string   `json:"url"`
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Tags        *[]string `json:"tags"`
	Favorite    *bool     `json:"favorite"`
}

func (s *Server) searchBookmarks(w http.ResponseWriter, r *http.Request) {
	const title = "Search Bookmarks"
	q, tags := r.URL.Query().Get("q"), r.URL.Query()["tags"]
	owner, err := s.owners.Owner(r)
	if err != nil {
		fail(w, r, title, err)
		return
	}

	res, err := s.svc.SearchBookmarks(r.Context(), owner, q, tags)
	log.Event("api:bookmarks", "search").
		Owner(owner).
		Detail("query", q).
		Detail("tags", tags).
		Detail("strategy", res.Plan.Strategy.String()).
		Detail("count", len(res.Hits)).
		Write(err)
	if err != nil {
		fail(w, r, title, err)
		return
	}
	ok(w, http.StatusOK, fmt.Sprintf("%d bookmarks found", len(res.Hits)), "result", service.BookmarkHits(res))
}

func (s *Server) completeBookmarks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	owner, err := s.owners.Owner(r)
	if err != nil {
		fail(w, r, "Autocomplete Bookmarks", err)
		return
	}

	sugg, err := s.svc.CompleteBookmarks(r.Context(), owner, q)
	log.Event("api:bookmarks", "complete").
		Owner(owner).
		Detail("prefix", q).
		Detail("count", len(sugg)).
		Write(err)
	if err != nil {
		fail(w, r, "Autocomplete Bookmarks", err)
		return
	}
	writeJSON(w, http.StatusOK, sugg)
}

func (s *Server) bookmarkTags(w http.ResponseWriter, r *http.Request) {
	owner, err := s.owners.Owner(r)
	if err != nil {
		fail(w, r, "Bookmark Tags", err)
		return
	}
	tags, err := s.svc.BookmarkTags(r.Context(), owner)
	if err != nil {
		fail(w, r, "Bookmark Tags", err)
		return
	}
	ok(w, http.StatusOK, fmt.Sprintf("%d tags found", len(tags)), "tags", tags)
}

func (s *Server) createBookmark(w http.ResponseWriter, r *http.Request) {
	const title = "Create Bookmark"
	owner, err := s.owners.Owner(r)
	if err != nil {
		fail(w, r, title, err)
		return
	}

	var body bookmarkBody
	if err := decodeJSON(r, &body); err != nil {
		fail(w, r, title, err)
		return
	}

	b, err := s.svc.CreateBookmark(r.Context(), owner, service.BookmarkInput{
		URL:         deref(body.URL),
		Title:       deref(body.Title),
		Description: deref(body.Description),
		Tags:        deref(body.Tags),
		Favorite:    deref(body.Favorite),
	})

	l := log.Event("api:bookmarks", "create").Owner(owner).Detail("url", deref(body.URL))
	if b != nil {
		l.Target(b.ID)
	}
	l.Write(err)

	if err != nil {
		fail(w, r, title, err)
		return
	}
	ok(w, http.StatusCreated, "Bookmark created", "bookmark", b)
}

func (s *Server) getBookmark(w http.ResponseWriter, r *http.Request) {
	const title = "Get Bookmark"
	id := chi.URLParam(r, "id")
	owner, err := s.owners.Owner(r)
	if err != nil {
		fail(w, r, title, err)
		return
	}

	b, err := s.svc.Bookmark(r.Context(), owner, id)
	log.Event("api:bookmarks", "read").Owner(owner).Target(id).Write(err)
	if err != nil {
		fail(w, r, title, err)
		return
	}
	ok(w, http.StatusOK, "Bookmark found", "bookmark", b)
}

func (s *Server) updateBookmark(w http.ResponseWriter, r *http.Request) {
	const title = "Update Bookmark"
	id := chi.URLParam(r, "id")
	owner, err := s.owners.Owner(r)
	if err != nil {
		fail(w, r, title, err)
		return
	}

	var body bookmarkBody
	if err := decodeJSON(r, &body); err != nil {
		fail(w, r, title, err)
		return
	}

	b, err := s.svc.UpdateBookmark(r.Context(), owner, id, service.BookmarkPatch{
		URL:         body.URL,
		Title:       body.Title,
		Description: body.Description,
		Tags:        body.Tags,
		Favorite:    body.Favorite,
	})
	log.Event("api:bookmarks", "update").Owner(owner).Target(id).Write(err)
	if err != nil {
		fail(w, r, title, err)
		return
	}
	ok(w, http.StatusOK, "Bookmark updated", "bookmark", b)
}

func (s *Server) deleteBookmark(w http.ResponseWriter, r *http.Request) {
	const title = "Delete Bookmark"
	id := chi.URLParam(r, "id")
	owner, err := s.owners.Owner(r)
	if err != nil {
		fail(w, r, title, err)
		return
	}

	b, err := s.svc.DeleteBookmark(r.Context(), owner, id)
	log.Event("api:bookmarks", "delete").Owner(owner).Target(id).Write(err)
	if err != nil {
		fail(w, r, title, err)
		return
	}
	ok(w, http.StatusOK, "Bookmark deleted", "bookmark", b)
}

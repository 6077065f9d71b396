// notes.go implements the /api/notes handlers.
//
// Create and update accept either JSON or a multipart form. Attachments are
// only possible with multipart, as repeated "files" parts; the other form
// fields mirror the JSON keys.

package api

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jpl-au/stash/internal/log"
	"github.com/jpl-au/stash/internal/service"
)

// noteBody is a note create or update request. Absent fields are nil.
type noteBody struct {
	Title    *string   `json:"title"`
	Content  *string   `json:"content"`
	Tags     *[]string `json:"tags"`
	Favorite *bool     `json:"favorite"`
}

func (s *Server) searchNotes(w http.ResponseWriter, r *http.Request) {
	const title = "Search Notes"
	q, tags := r.URL.Query().Get("q"), r.URL.Query()["tags"]
	owner, err := s.owners.Owner(r)
	if err != nil {
		fail(w, r, title, err)
		return
	}

	res, err := s.svc.SearchNotes(r.Context(), owner, q, tags)
	log.Event("api:notes", "search").
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
	ok(w, http.StatusOK, fmt.Sprintf("%d notes found", len(res.Hits)), "result", service.NoteHits(res))
}

func (s *Server) completeNotes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	owner, err := s.owners.Owner(r)
	if err != nil {
		fail(w, r, "Autocomplete Notes", err)
		return
	}

	sugg, err := s.svc.CompleteNotes(r.Context(), owner, q)
	log.Event("api:notes", "complete").
		Owner(owner).
		Detail("prefix", q).
		Detail("count", len(sugg)).
		Write(err)
	if err != nil {
		fail(w, r, "Autocomplete Notes", err)
		return
	}
	writeJSON(w, http.StatusOK, sugg)
}

func (s *Server) noteTags(w http.ResponseWriter, r *http.Request) {
	owner, err := s.owners.Owner(r)
	if err != nil {
		fail(w, r, "Note Tags", err)
		return
	}
	tags, err := s.svc.NoteTags(r.Context(), owner)
	if err != nil {
		fail(w, r, "Note Tags", err)
		return
	}
	ok(w, http.StatusOK, fmt.Sprintf("%d tags found", len(tags)), "tags", tags)
}

func (s *Server) createNote(w http.ResponseWriter, r *http.Request) {
	const title = "Create Note"
	owner, err := s.owners.Owner(r)
	if err != nil {
		fail(w, r, title, err)
		return
	}

	body, uploads, err := readNote(r)
	if err != nil {
		fail(w, r, title, err)
		return
	}
	defer closeUploads(uploads)

	n, err := s.svc.CreateNote(r.Context(), owner, service.NoteInput{
		Title:    deref(body.Title),
		Content:  deref(body.Content),
		Tags:     deref(body.Tags),
		Favorite: deref(body.Favorite),
	}, uploads)

	l := log.Event("api:notes", "create").Owner(owner).Detail("files", len(uploads))
	if n != nil {
		l.Target(n.ID)
	}
	l.Write(err)

	if err != nil {
		fail(w, r, title, err)
		return
	}
	ok(w, http.StatusCreated, "Note created", "note", n)
}

func (s *Server) getNote(w http.ResponseWriter, r *http.Request) {
	const title = "Get Note"
	id := chi.URLParam(r, "id")
	owner, err := s.owners.Owner(r)
	if err != nil {
		fail(w, r, title, err)
		return
	}

	n, err := s.svc.Note(r.Context(), owner, id)
	log.Event("api:notes", "read").Owner(owner).Target(id).Write(err)
	if err != nil {
		fail(w, r, title, err)
		return
	}
	ok(w, http.StatusOK, "Note found", "note", n)
}

func (s *Server) updateNote(w http.ResponseWriter, r *http.Request) {
	const title = "Update Note"
	id := chi.URLParam(r, "id")
	owner, err := s.owners.Owner(r)
	if err != nil {
		fail(w, r, title, err)
		return
	}

	body, uploads, err := readNote(r)
	if err != nil {
		fail(w, r, title, err)
		return
	}
	defer closeUploads(uploads)

	n, err := s.svc.UpdateNote(r.Context(), owner, id, service.NotePatch{
		Title:    body.Title,
		Content:  body.Content,
		Tags:     body.Tags,
		Favorite: body.Favorite,
	}, uploads)
	log.Event("api:notes", "update").
		Owner(owner).
		Target(id).
		Detail("files", len(uploads)).
		Write(err)
	if err != nil {
		fail(w, r, title, err)
		return
	}
	ok(w, http.StatusOK, "Note updated", "note", n)
}

func (s *Server) deleteNote(w http.ResponseWriter, r *http.Request) {
	const title = "Delete Note"
	id := chi.URLParam(r, "id")
	owner, err := s.owners.Owner(r)
	if err != nil {
		fail(w, r, title, err)
		return
	}

	n, err := s.svc.DeleteNote(r.Context(), owner, id)
	log.Event("api:notes", "delete").Owner(owner).Target(id).Write(err)
	if err != nil {
		fail(w, r, title, err)
		return
	}
	ok(w, http.StatusOK, "Note deleted", "note", n)
}

func (s *Server) deleteNoteFile(w http.ResponseWriter, r *http.Request) {
	const title = "Delete File"
	id, fileID := chi.URLParam(r, "id"), chi.URLParam(r, "fileID")
	owner, err := s.owners.Owner(r)
	if err != nil {
		fail(w, r, title, err)
		return
	}

	n, err := s.svc.DeleteNoteFile(r.Context(), owner, id, fileID)
	log.Event("api:notes", "delete-file").
		Owner(owner).
		Target(id).
		Detail("file", fileID).
		Write(err)
	if err != nil {
		fail(w, r, title, err)
		return
	}
	ok(w, http.StatusOK, "File deleted", "note", n)
}

// readNote decodes a note request from JSON or a multipart form.
// The caller closes the returned uploads.
func readNote(r *http.Request) (noteBody, []service.Upload, error) {
	var body noteBody
	if !isMultipart(r) {
		if err := decodeJSON(r, &body); err != nil {
			return body, nil, err
		}
		return body, nil, nil
	}

	if err := r.ParseMultipartForm(MaxMemory); err != nil {
		return body, nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	form := r.MultipartForm
	body.Title = formValue(form, "title")
	body.Content = formValue(form, "content")
	if tags, ok := form.Value["tags"]; ok {
		body.Tags = &tags
	}
	if v := formValue(form, "favorite"); v != nil {
		fav, err := strconv.ParseBool(*v)
		if err != nil {
			return body, nil, fmt.Errorf("%w: favorite must be true or false", ErrMalformed)
		}
		body.Favorite = &fav
	}

	uploads, err := openUploads(form.File["files"])
	return body, uploads, err
}

func openUploads(headers []*multipart.FileHeader) ([]service.Upload, error) {
	if len(headers) > MaxUploads {
		return nil, fmt.Errorf("%w: at most %d files per request", ErrMalformed, MaxUploads)
	}
	uploads := make([]service.Upload, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			closeUploads(uploads)
			return nil, fmt.Errorf("%w: open %s: %v", ErrMalformed, fh.Filename, err)
		}
		uploads = append(uploads, service.Upload{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Body:        f,
		})
	}
	return uploads, nil
}

func closeUploads(uploads []service.Upload) {
	for _, u := range uploads {
		if c, ok := u.Body.(io.Closer); ok {
			_ = c.Close()
		}
	}
}

func isMultipart(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "multipart/form-data"
}

func formValue(form *multipart.Form, key string) *string {
	v, ok := form.Value[key]
	if !ok || len(v) == 0 {
		return nil
	}
	return &v[0]
}

// decodeJSON decodes r's body into v. An empty body decodes as {}.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && err != io.EOF {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}

func deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

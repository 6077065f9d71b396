// Package api serves notes and bookmarks over HTTP.
//
// Routes are mounted on a chi router under /api. Each handler resolves the
// owner explicitly from the request before touching the service; there is
// no middleware that stashes the owner in the context, so a handler that
// forgets to resolve it cannot reach any data.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jpl-au/stash/internal/blob"
	"github.com/jpl-au/stash/internal/service"
)

// MaxMemory bounds the part of a multipart form held in memory; larger
// uploads spill to temporary files.
const MaxMemory = 32 << 20

// MaxUploads is the most attachments one request may carry.
const MaxUploads = 10

// Owners resolves the owner of a request.
type Owners interface {
	Owner(r *http.Request) (string, error)
}

// Options configure a Server.
type Options struct {
	// Files, when set, is served under blob.DefaultLocalURL so locally
	// stored attachments resolve.
	Files string
	// MaxBody caps a request body in bytes. Zero means no cap.
	MaxBody int64
}

// Server handles the HTTP API.
type Server struct {
	svc    service.Service
	owners Owners
	opts   Options
}

// New returns a Server for svc.
func New(svc service.Service, owners Owners, opts Options) *Server {
	return &Server{svc: svc, owners: owners, opts: opts}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.SetHeader("Cache-Control", "no-store"))
		if s.opts.MaxBody > 0 {
			r.Use(middleware.RequestSize(s.opts.MaxBody))
		}

		r.Route("/notes", func(r chi.Router) {
			r.Get("/", s.searchNotes)
			r.Post("/", s.createNote)
			r.Get("/autocomplete", s.completeNotes)
			r.Get("/tags", s.noteTags)
			r.Get("/{id}", s.getNote)
			r.Put("/{id}", s.updateNote)
			r.Delete("/{id}", s.deleteNote)
			r.Delete("/{id}/files/{fileID}", s.deleteNoteFile)
		})

		r.Route("/bookmarks", func(r chi.Router) {
			r.Get("/", s.searchBookmarks)
			r.Post("/", s.createBookmark)
			r.Get("/autocomplete", s.completeBookmarks)
			r.Get("/tags", s.bookmarkTags)
			r.Get("/{id}", s.getBookmark)
			r.Put("/{id}", s.updateBookmark)
			r.Delete("/{id}", s.deleteBookmark)
		})
	})

	if s.opts.Files != "" {
		r.Get(blob.DefaultLocalURL+"/*", serveFiles(s.opts.Files))
	}
	return r
}

// ListenAndServe serves until ctx is cancelled, then drains in-flight
// requests for up to five seconds.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		slog.Info("stash API listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	slog.Info("server stopped")
	return nil
}

// requestLogger logs one line per request through slog.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		slog.Info("request",
			"id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start))
	})
}

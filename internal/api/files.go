// files.go serves locally stored attachments.
//
// Only regular files are served. Directory paths answer 404 so the blob
// folder cannot be enumerated; an attachment is reachable only by its key.

package api

import (
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
)

func serveFiles(dir string) http.HandlerFunc {
	root := http.Dir(dir)
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "*")
		if key == "" || strings.HasSuffix(key, "/") {
			http.NotFound(w, r)
			return
		}
		f, err := root.Open(path.Clean("/" + key))
		if err != nil {
			http.NotFound(w, r)
			return
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil || !info.Mode().IsRegular() {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("X-Content-Type-Options", "nosniff")
		http.ServeContent(w, r, info.Name(), info.ModTime(), f)
	}
}

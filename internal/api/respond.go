// respond.go writes JSON responses and maps errors onto HTTP statuses.
//
// Every failure is classified exactly once here. Handlers return the error
// they got and never pick a status themselves, so the CLI, MCP and HTTP
// surfaces agree on what each sentinel means.

package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jpl-au/stash/internal/auth"
	"github.com/jpl-au/stash/internal/search"
	"github.com/jpl-au/stash/internal/store"
	"github.com/jpl-au/stash/internal/validate"
)

// ErrMalformed is returned for request bodies that cannot be decoded.
var ErrMalformed = errors.New("malformed request")

// Error names reported in the "name" field of an error body.
const (
	NameValidation    = "ValidationError"
	NameAuthorization = "AuthorizationError"
	NameNotFound      = "NotFoundError"
	NameServer        = "ServerError"
)

// errorBody is the JSON shape of every failed request.
type errorBody struct {
	Title string `json:"title"`
	Name  string `json:"name"`
	Error string `json:"error"`
}

// Classify returns the HTTP status and error name for err.
func Classify(err error) (int, string) {
	switch {
	case validate.Is(err), errors.Is(err, ErrMalformed):
		return http.StatusBadRequest, NameValidation
	case errors.Is(err, search.ErrNoOwner),
		errors.Is(err, auth.ErrUnauthenticated),
		errors.Is(err, store.ErrUnknownOwner):
		return http.StatusForbidden, NameAuthorization
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, NameNotFound
	default:
		return http.StatusInternalServerError, NameServer
	}
}

// fail writes the error body for err. Server errors are logged with their
// cause and reported with a generic message.
func fail(w http.ResponseWriter, r *http.Request, title string, err error) {
	status, name := Classify(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		msg = "internal server error"
	}
	writeJSON(w, status, errorBody{Title: title, Name: name, Error: msg})
}

// ok writes a success body: {"title": "Success", "message": msg, key: v}.
func ok(w http.ResponseWriter, status int, msg, key string, v any) {
	body := map[string]any{"title": "Success", "message": msg}
	if key != "" {
		body[key] = v
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("encode response", "error", err)
	}
}

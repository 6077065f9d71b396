// resources.go implements MCP resource handlers for note access.
//
// Resources give read-only access to note content by URI, for context
// loading where the LLM needs the text but is not performing an action.
// URIs follow stash://notes/{id}; stash://guide serves the usage guide.

package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jpl-au/stash/guide"
	"github.com/jpl-au/stash/internal/search"
	"github.com/mark3labs/mcp-go/mcp"
)

var (
	// ErrInvalidURI indicates a malformed resource URI.
	ErrInvalidURI = errors.New("invalid URI")
	// ErrEmptyID indicates a missing note id in a resource URI.
	ErrEmptyID = errors.New("empty note id")
)

const (
	notePrefix = "stash://notes/"
	guideURI   = "stash://guide"
)

func readGuideResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	content, err := guide.Get("")
	if err != nil {
		return nil, err
	}
	for _, topic := range []string{"search", "mcp"} {
		page, err := guide.Get(topic)
		if err != nil {
			return nil, err
		}
		content += "\n" + page
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{URI: guideURI, MIMEType: "text/markdown", Text: content},
	}, nil
}

func (h *handlers) readNoteResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	if h.owner == "" {
		return nil, search.ErrNoOwner
	}
	uri := req.Params.URI
	id, err := parseNoteURI(uri)
	if err != nil {
		return nil, err
	}

	n, err := h.svc.Note(ctx, h.owner, id)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/markdown",
			Text:     "# " + n.Title + "\n\n" + n.Content,
		},
	}, nil
}

// parseNoteURI extracts the note id from stash://notes/{id}.
func parseNoteURI(uri string) (string, error) {
	id, ok := strings.CutPrefix(uri, notePrefix)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	if id == "" {
		return "", ErrEmptyID
	}
	if strings.Contains(id, "/") {
		return "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	return id, nil
}

// tools_notes.go implements the note tools. Attachments cannot be uploaded
// over MCP; stash_note_read lists the ones a note already has.

package mcp

import (
	"context"

	"github.com/jpl-au/stash/internal/log"
	"github.com/jpl-au/stash/internal/service"
	"github.com/jpl-au/stash/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) readNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireOwner(); result != nil {
		return result, nil
	}
	id := getString(req, "id", "")

	n, err := h.svc.Note(ctx, h.owner, id)
	log.Event("mcp:stash_note_read", "read").Owner(h.owner).Target(id).Write(err)
	if err != nil {
		return errResult(err)
	}
	return jsonResult(n)
}

// writeNote creates a note when id is absent and patches it otherwise.
func (h *handlers) writeNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireOwner(); result != nil {
		return result, nil
	}
	id := getString(req, "id", "")
	tags := getStrings(req, "tags")

	var (
		n   *store.Note
		err error
	)
	if id == "" {
		n, err = h.svc.CreateNote(ctx, h.owner, service.NoteInput{
			Title:    getString(req, "title", ""),
			Content:  getString(req, "content", ""),
			Tags:     tags,
			Favorite: deref(optBool(req, "favorite")),
		}, nil)
	} else {
		patch := service.NotePatch{
			Title:    optString(req, "title"),
			Content:  optString(req, "content"),
			Favorite: optBool(req, "favorite"),
		}
		if tags != nil {
			patch.Tags = &tags
		}
		n, err = h.svc.UpdateNote(ctx, h.owner, id, patch, nil)
	}

	l := log.Event("mcp:stash_note_write", "write").Owner(h.owner)
	if n != nil {
		l.Target(n.ID)
	}
	l.Write(err)

	if err != nil {
		return errResult(err)
	}
	return jsonResult(n)
}

func (h *handlers) deleteNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireOwner(); result != nil {
		return result, nil
	}
	id := getString(req, "id", "")

	n, err := h.svc.DeleteNote(ctx, h.owner, id)
	log.Event("mcp:stash_note_delete", "delete").Owner(h.owner).Target(id).Write(err)
	if err != nil {
		return errResult(err)
	}
	return jsonResult(n)
}

func deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

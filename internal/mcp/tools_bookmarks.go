// tools_bookmarks.go implements the bookmark tools.

package mcp

import (
	"context"

	"github.com/jpl-au/stash/internal/log"
	"github.com/jpl-au/stash/internal/service"
	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) readBookmark(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireOwner(); result != nil {
		return result, nil
	}
	id := getString(req, "id", "")

	b, err := h.svc.Bookmark(ctx, h.owner, id)
	log.Event("mcp:stash_bookmark_read", "read").Owner(h.owner).Target(id).Write(err)
	if err != nil {
		return errResult(err)
	}
	return jsonResult(b)
}

func (h *handlers) addBookmark(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireOwner(); result != nil {
		return result, nil
	}
	url := getString(req, "url", "")

	b, err := h.svc.CreateBookmark(ctx, h.owner, service.BookmarkInput{
		URL:         url,
		Title:       getString(req, "title", ""),
		Description: getString(req, "description", ""),
		Tags:        getStrings(req, "tags"),
		Favorite:    deref(optBool(req, "favorite")),
	})

	l := log.Event("mcp:stash_bookmark_add", "write").Owner(h.owner).Detail("url", url)
	if b != nil {
		l.Target(b.ID)
	}
	l.Write(err)

	if err != nil {
		return errResult(err)
	}
	return jsonResult(b)
}

func (h *handlers) deleteBookmark(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireOwner(); result != nil {
		return result, nil
	}
	id := getString(req, "id", "")

	b, err := h.svc.DeleteBookmark(ctx, h.owner, id)
	log.Event("mcp:stash_bookmark_delete", "delete").Owner(h.owner).Target(id).Write(err)
	if err != nil {
		return errResult(err)
	}
	return jsonResult(b)
}

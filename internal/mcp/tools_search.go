// tools_search.go implements the search and autocomplete tools.
//
// Results use the same projections as the HTTP API: search returns
// {"strategy", "result"} with scores only on ranked hits, and autocomplete
// returns a bare array.

package mcp

import (
	"context"

	"github.com/jpl-au/stash/internal/log"
	"github.com/jpl-au/stash/internal/service"
	"github.com/mark3labs/mcp-go/mcp"
)

type searchResult[T any] struct {
	Strategy string `json:"strategy"`
	Result   []T    `json:"result"`
}

func (h *handlers) searchNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireOwner(); result != nil {
		return result, nil
	}
	q, tags := getString(req, "query", ""), getStrings(req, "tags")

	res, err := h.svc.SearchNotes(ctx, h.owner, q, tags)
	log.Event("mcp:stash_search_notes", "search").
		Owner(h.owner).
		Detail("query", q).
		Detail("tags", tags).
		Detail("strategy", res.Plan.Strategy.String()).
		Detail("count", len(res.Hits)).
		Write(err)
	if err != nil {
		return errResult(err)
	}
	return jsonResult(searchResult[service.ScoredNote]{
		Strategy: res.Plan.Strategy.String(),
		Result:   service.NoteHits(res),
	})
}

func (h *handlers) searchBookmarks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireOwner(); result != nil {
		return result, nil
	}
	q, tags := getString(req, "query", ""), getStrings(req, "tags")

	res, err := h.svc.SearchBookmarks(ctx, h.owner, q, tags)
	log.Event("mcp:stash_search_bookmarks", "search").
		Owner(h.owner).
		Detail("query", q).
		Detail("tags", tags).
		Detail("strategy", res.Plan.Strategy.String()).
		Detail("count", len(res.Hits)).
		Write(err)
	if err != nil {
		return errResult(err)
	}
	return jsonResult(searchResult[service.ScoredBookmark]{
		Strategy: res.Plan.Strategy.String(),
		Result:   service.BookmarkHits(res),
	})
}

func (h *handlers) completeNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireOwner(); result != nil {
		return result, nil
	}
	prefix := getString(req, "prefix", "")

	sugg, err := h.svc.CompleteNotes(ctx, h.owner, prefix)
	log.Event("mcp:stash_complete_notes", "complete").
		Owner(h.owner).
		Detail("prefix", prefix).
		Detail("count", len(sugg)).
		Write(err)
	if err != nil {
		return errResult(err)
	}
	return jsonResult(sugg)
}

func (h *handlers) completeBookmarks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireOwner(); result != nil {
		return result, nil
	}
	prefix := getString(req, "prefix", "")

	sugg, err := h.svc.CompleteBookmarks(ctx, h.owner, prefix)
	log.Event("mcp:stash_complete_bookmarks", "complete").
		Owner(h.owner).
		Detail("prefix", prefix).
		Detail("count", len(sugg)).
		Write(err)
	if err != nil {
		return errResult(err)
	}
	return jsonResult(sugg)
}

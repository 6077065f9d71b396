// Package mcp implements the Model Context Protocol server, exposing stash
// search and note/bookmark operations to LLMs over stdio.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/jpl-au/stash/internal/service"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// ErrNoOwner is the tool error when no owner is configured.
const ErrNoOwner = "no owner configured - run 'stash config owner <id>' or pass --owner"

// Serve runs the MCP server over stdio until the client disconnects.
// Every tool acts as owner.
func Serve(svc service.Service, owner string) error {
	// Log to stderr; stdout is reserved for MCP JSON-RPC messages
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if owner == "" {
		slog.Warn("no owner configured, every tool call will fail")
	}

	s := NewServer(svc, owner)
	slog.Info("stash MCP server ready", "version", Version, "transport", "stdio", "owner", owner)

	err := server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// NewServer builds the MCP server with every stash tool and resource.
func NewServer(svc service.Service, owner string) *server.MCPServer {
	h := &handlers{svc: svc, owner: owner}

	s := server.NewMCPServer(
		"stash",
		Version,
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
	)
	registerResources(s, h)
	registerTools(s, h)
	return s
}

// handlers provides MCP request handlers bound to one owner.
type handlers struct {
	svc   service.Service
	owner string
}

// requireOwner returns an error result if no owner is configured.
func (h *handlers) requireOwner() *mcp.CallToolResult {
	if h.owner == "" {
		return mcp.NewToolResultError(ErrNoOwner)
	}
	return nil
}

// registerResources adds URI-based access to note content and the guide.
func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"stash://notes/{id}",
			"Note",
			mcp.WithTemplateDescription("Read a note's markdown content by id"),
			mcp.WithTemplateMIMEType("text/markdown"),
		),
		h.readNoteResource,
	)
	s.AddResource(
		mcp.NewResource(
			guideURI,
			"stash guide",
			mcp.WithResourceDescription("How stash search, notes and bookmarks work"),
			mcp.WithMIMEType("text/markdown"),
		),
		readGuideResource,
	)
}

var tagsParam = mcp.WithArray("tags",
	mcp.Description("Tags; a record must carry every tag given. A single comma-separated string is also accepted"),
	mcp.Items(map[string]any{"type": "string"}),
)

// registerTools exposes stash operations as MCP tools for LLM invocation.
func registerTools(s *server.MCPServer, h *handlers) {
	s.AddTool(
		mcp.NewTool("stash_search_notes",
			mcp.WithDescription("Search notes. Queries of 2+ characters are ranked with typo tolerance over title and content; shorter queries list notes, filtered by tags when given. Ranked results are capped at 10."),
			mcp.WithString("query", mcp.Description("Search text")),
			tagsParam,
		),
		h.searchNotes,
	)

	s.AddTool(
		mcp.NewTool("stash_search_bookmarks",
			mcp.WithDescription("Search bookmarks over url, title and description. Same rules as stash_search_notes."),
			mcp.WithString("query", mcp.Description("Search text")),
			tagsParam,
		),
		h.searchBookmarks,
	)

	s.AddTool(
		mcp.NewTool("stash_complete_notes",
			mcp.WithDescription("Suggest notes whose title has a word starting with prefix (up to 10)"),
			mcp.WithString("prefix", mcp.Required(), mcp.Description("Typed prefix")),
		),
		h.completeNotes,
	)

	s.AddTool(
		mcp.NewTool("stash_complete_bookmarks",
			mcp.WithDescription("Suggest bookmarks whose url, title or description has a word starting with prefix (up to 10)"),
			mcp.WithString("prefix", mcp.Required(), mcp.Description("Typed prefix")),
		),
		h.completeBookmarks,
	)

	s.AddTool(
		mcp.NewTool("stash_note_read",
			mcp.WithDescription("Read a note including its attachments"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Note id")),
		),
		h.readNote,
	)

	s.AddTool(
		mcp.NewTool("stash_note_write",
			mcp.WithDescription("Create a note, or update one when id is given. On update, omitted fields are kept."),
			mcp.WithString("id", mcp.Description("Note id to update (omit to create)")),
			mcp.WithString("title", mcp.Description("Title (required to create)")),
			mcp.WithString("content", mcp.Description("Markdown content (required to create)")),
			tagsParam,
			mcp.WithBoolean("favorite", mcp.Description("Mark as favourite")),
		),
		h.writeNote,
	)

	s.AddTool(
		mcp.NewTool("stash_note_delete",
			mcp.WithDescription("Permanently delete a note and its attachments"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Note id")),
		),
		h.deleteNote,
	)

	s.AddTool(
		mcp.NewTool("stash_bookmark_read",
			mcp.WithDescription("Read a bookmark"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Bookmark id")),
		),
		h.readBookmark,
	)

	s.AddTool(
		mcp.NewTool("stash_bookmark_add",
			mcp.WithDescription("Save a url. A blank title or description is filled from the page."),
			mcp.WithString("url", mcp.Required(), mcp.Description("Url to save")),
			mcp.WithString("title", mcp.Description("Title")),
			mcp.WithString("description", mcp.Description("Description")),
			tagsParam,
			mcp.WithBoolean("favorite", mcp.Description("Mark as favourite")),
		),
		h.addBookmark,
	)

	s.AddTool(
		mcp.NewTool("stash_bookmark_delete",
			mcp.WithDescription("Permanently delete a bookmark"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Bookmark id")),
		),
		h.deleteBookmark,
	)
}

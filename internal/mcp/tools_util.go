// tools_util.go provides helper functions for MCP tool parameter extraction.
//
// Separated to centralise the boilerplate of extracting typed parameters from
// MCP's generic argument map. These helpers provide safe defaults when
// optional parameters are missing.
//
// Design: extraction is permissive (return default on error) rather than
// strict. An LLM that omits an optional parameter, or passes "true" for a
// boolean, still gets a usable tool instead of a type error.

package mcp

import (
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

func args(req mcp.CallToolRequest) map[string]any {
	m, _ := req.Params.Arguments.(map[string]any)
	return m
}

// getString extracts a string parameter, returning def if it is missing or
// not a string.
func getString(req mcp.CallToolRequest, name, def string) string {
	if v, err := req.RequireString(name); err == nil {
		return v
	}
	return def
}

// optString returns a pointer to a string parameter, or nil when absent.
// Update tools use it to tell "not given" from "given as empty".
func optString(req mcp.CallToolRequest, name string) *string {
	if v, ok := args(req)[name].(string); ok {
		return &v
	}
	return nil
}

// optBool returns a pointer to a boolean parameter, or nil when absent.
func optBool(req mcp.CallToolRequest, name string) *bool {
	if v, ok := args(req)[name].(bool); ok {
		return &v
	}
	return nil
}

// getStrings extracts a string array parameter. JSON arrays decode as []any,
// so each element is asserted and non-strings are skipped. A plain string is
// accepted as a one-element list. Returns nil when the parameter is absent.
func getStrings(req mcp.CallToolRequest, name string) []string {
	switch v := args(req)[name].(type) {
	case string:
		return []string{v}
	case []any:
		result := make([]string, 0, len(v))
		for _, x := range v {
			if s, ok := x.(string); ok {
				result = append(result, s)
			}
		}
		return result
	}
	return nil
}

// jsonResult serialises v as indented JSON in an MCP text result. LLMs parse
// indented output more reliably than compact JSON.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// errResult reports err to the LLM as a tool error rather than a protocol
// failure, so it can correct the call and retry.
func errResult(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

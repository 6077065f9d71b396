// Package markdown inspects note content.
//
// Notes reference their attachments with the file: scheme, as a link
// ([brief](file:file_abc123xyz)) or an image (![plan](file:file_abc123xyz)).
// The references are read from the parsed document, so a file: string inside
// a code block or code span is not a reference.
package markdown

import (
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Scheme prefixes attachment references.
const Scheme = "file:"

// FileRefs returns the attachment ids referenced by content, in document
// order without duplicates.
func FileRefs(content string) []string {
	source := []byte(content)
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	var refs []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		var dest []byte
		switch n := n.(type) {
		case *ast.Link:
			dest = n.Destination
		case *ast.Image:
			dest = n.Destination
		default:
			return ast.WalkContinue, nil
		}
		if id, ok := strings.CutPrefix(string(dest), Scheme); ok && id != "" && !slices.Contains(refs, id) {
			refs = append(refs, id)
		}
		return ast.WalkContinue, nil
	})
	return refs
}

// Dangling returns the references in content that name none of ids.
func Dangling(content string, ids []string) []string {
	var out []string
	for _, ref := range FileRefs(content) {
		if !slices.Contains(ids, ref) {
			out = append(out, ref)
		}
	}
	return out
}

// Resolve rewrites file: references to the URLs in urls (keyed by file id)
// so the content renders outside stash. Unknown references are left as is.
func Resolve(content string, urls map[string]string) string {
	refs := FileRefs(content)
	if len(refs) == 0 {
		return content
	}
	pairs := make([]string, 0, len(refs)*2)
	for _, id := range refs {
		if u, ok := urls[id]; ok {
			pairs = append(pairs, "("+Scheme+id+")", "("+u+")")
		}
	}
	return strings.NewReplacer(pairs...).Replace(content)
}

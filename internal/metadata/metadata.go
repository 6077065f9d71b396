// Package metadata fetches a page's title and description for new bookmarks.
//
// Open Graph tags win over the plain <title> and <meta name="description">.
// Only the document head matters, so the body read is capped and parsing
// stops at <body>.
package metadata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Defaults for Fetcher.
const (
	DefaultTimeout  = 5 * time.Second
	DefaultMaxBytes = 1 << 20 // 1 MiB
)

// ErrStatus is returned for non-2xx responses.
var ErrStatus = errors.New("unexpected status")

// Meta is what a page says about itself.
type Meta struct {
	Title       string
	Description string
}

// Fetcher retrieves page metadata over HTTP.
type Fetcher struct {
	Client   *http.Client
	MaxBytes int64
}

// New returns a Fetcher with the given timeout (DefaultTimeout if zero).
func New(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{
		Client:   &http.Client{Timeout: timeout},
		MaxBytes: DefaultMaxBytes,
	}
}

// Fetch downloads rawURL and extracts its metadata. URLs without a scheme
// are fetched over https.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (Meta, error) {
	u := strings.TrimSpace(rawURL)
	if !strings.Contains(u, "://") {
		u = "https://" + u
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Meta{}, fmt.Errorf("fetch metadata: %w", err)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("User-Agent", "stash/1.0 (+bookmark preview)")

	client := f.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return Meta{}, fmt.Errorf("fetch metadata: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Meta{}, fmt.Errorf("fetch metadata %s: %w: %d", u, ErrStatus, resp.StatusCode)
	}

	limit := f.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	return Parse(io.LimitReader(resp.Body, limit))
}

// Parse extracts metadata from an HTML document.
func Parse(r io.Reader) (Meta, error) {
	var og, plain Meta
	z := html.NewTokenizer(r)
	inTitle := false

	for {
		switch z.Next() {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return merge(og, plain), nil
			}
			return Meta{}, fmt.Errorf("parse metadata: %w", z.Err())

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			switch tok.DataAtom {
			case atom.Body:
				return merge(og, plain), nil
			case atom.Title:
				inTitle = plain.Title == ""
			case atom.Meta:
				key, content := metaPair(tok)
				switch key {
				case "og:title":
					og.Title = content
				case "og:description":
					og.Description = content
				case "description":
					plain.Description = content
				}
			}

		case html.TextToken:
			if inTitle {
				plain.Title = strings.TrimSpace(string(z.Text()))
			}

		case html.EndTagToken:
			if tok := z.Token(); tok.DataAtom == atom.Title {
				inTitle = false
			}
		}
	}
}

// metaPair returns the property (or name) and content of a <meta> tag.
func metaPair(tok html.Token) (key, content string) {
	for _, a := range tok.Attr {
		switch strings.ToLower(a.Key) {
		case "property", "name":
			if key == "" {
				key = strings.ToLower(strings.TrimSpace(a.Val))
			}
		case "content":
			content = strings.TrimSpace(a.Val)
		}
	}
	return key, content
}

func merge(og, plain Meta) Meta {
	m := og
	if m.Title == "" {
		m.Title = plain.Title
	}
	if m.Description == "" {
		m.Description = plain.Description
	}
	return m
}

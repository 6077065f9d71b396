package validate

import (
	"fmt"
	"regexp"
	"strings"
)

// urlPattern accepts an optional http(s) scheme, a dotted host, an optional
// port and an optional path.
var urlPattern = regexp.MustCompile(`(?i)^(https?://)?([\w\d-]+\.)+[\w\d-]+(:\d+)?(/.*)?$`)

// URL validates a bookmark url.
func URL(u string) error {
	u = strings.TrimSpace(u)
	if u == "" {
		return fmt.Errorf("%w: url is required", ErrInvalidURL)
	}
	if !urlPattern.MatchString(u) {
		return fmt.Errorf("%w: %q", ErrInvalidURL, u)
	}
	return nil
}

// content.go implements note title and content validation.
//
// Only presence and size are checked. Content is markdown but its format is
// never validated; stash stores whatever the user writes.

package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Title validates a required title. Blank titles are rejected; maxLen is
// measured in characters and 0 disables the limit.
func Title(title string, maxLen int) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidTitle)
	}
	if strings.ContainsRune(title, 0) {
		return fmt.Errorf("%w: null byte in title", ErrInvalidTitle)
	}
	if maxLen > 0 && utf8.RuneCountInString(title) > maxLen {
		return fmt.Errorf("%w: title longer than %d characters", ErrInvalidTitle, maxLen)
	}
	return nil
}

// Content validates required note content against a byte limit (0 = no limit).
func Content(content string, maxLen int64) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("%w: content is required", ErrInvalidContent)
	}
	if maxLen > 0 && int64(len(content)) > maxLen {
		return fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrContentTooLarge, len(content), maxLen)
	}
	return nil
}

// ID validates a record identifier supplied by a caller.
func ID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidID)
	}
	if strings.ContainsAny(id, "\x00/") {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

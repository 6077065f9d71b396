// tag.go implements tag string validation.
//
// Tags are categorical labels matched exactly and case-sensitively, so only
// clearly broken input is rejected. Normalisation (trim, dedupe) happens in
// the search package before validation.

package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxTagLength bounds a single tag in characters.
const MaxTagLength = 64

// Tag validates a tag string.
func Tag(t string) error {
	if t == "" {
		return fmt.Errorf("%w: empty tag", ErrInvalidTag)
	}
	if strings.ContainsRune(t, 0) {
		return fmt.Errorf("%w: null byte in tag", ErrInvalidTag)
	}
	if strings.Contains(t, ",") {
		return fmt.Errorf("%w: comma in tag %q", ErrInvalidTag, t)
	}
	if utf8.RuneCountInString(t) > MaxTagLength {
		return fmt.Errorf("%w: tag longer than %d characters", ErrInvalidTag, MaxTagLength)
	}
	return nil
}

// Tags validates every tag in the list.
func Tags(tags []string) error {
	for _, t := range tags {
		if err := Tag(t); err != nil {
			return err
		}
	}
	return nil
}

// file.go implements note attachment validation.

package validate

import (
	"fmt"
	"mime"
	"strings"
)

// FileKind classifies an accepted attachment by its content type.
// Returns "" for types that are not accepted.
func FileKind(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	main, _, _ := strings.Cut(mt, "/")
	switch {
	case main == "image":
		return "IMAGE"
	case main == "audio":
		return "AUDIO"
	case mt == "application/pdf":
		return "DOCUMENT"
	}
	return ""
}

// File validates an attachment before it is uploaded. maxSize of 0 disables
// the size check.
func File(name, contentType string, size, maxSize int64) error {
	if FileKind(contentType) == "" {
		return fmt.Errorf("%w: %s (%s): only image, audio, and PDF files are allowed", ErrInvalidFile, name, contentType)
	}
	if size < 0 {
		return fmt.Errorf("%w: %s: negative size", ErrInvalidFile, name)
	}
	if maxSize > 0 && size > maxSize {
		return fmt.Errorf("%w: %s is %d bytes, limit is %d", ErrFileTooLarge, name, size, maxSize)
	}
	return nil
}

// errors.go defines sentinel errors for validation failures.
//
// Sentinel errors (not error types) because validation failures don't carry
// context beyond the category. Messages are added by wrapping with fmt.Errorf.

package validate

import "errors"

var (
	ErrInvalidTitle    = errors.New("invalid title")
	ErrInvalidContent  = errors.New("invalid content")
	ErrContentTooLarge = errors.New("content too large")
	ErrInvalidURL      = errors.New("invalid url")
	ErrInvalidTag      = errors.New("invalid tag")
	ErrInvalidFile     = errors.New("invalid file")
	ErrFileTooLarge    = errors.New("file too large")
	ErrInvalidID       = errors.New("invalid id")
)

var all = []error{
	ErrInvalidTitle,
	ErrInvalidContent,
	ErrContentTooLarge,
	ErrInvalidURL,
	ErrInvalidTag,
	ErrInvalidFile,
	ErrFileTooLarge,
	ErrInvalidID,
}

// Is reports whether err wraps any validation sentinel.
func Is(err error) bool {
	for _, e := range all {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

// Package validate provides input validation for stash's domain types.
//
// This package enforces data integrity rules at the boundary between user
// input (HTTP, CLI, MCP) and the storage layer. Each validation function
// returns nil on success or an error wrapping one of the sentinels in
// errors.go.
//
// # Validation Functions
//
// Title and Content check the required note fields and their size limits.
// URL checks the bookmark url against the accepted url shape.
// Tag checks a single tag label.
// File checks an attachment's content type and size.
//
// # Error Handling
//
// Use errors.Is() against the sentinels to classify failures:
//
//	if errors.Is(err, validate.ErrInvalidURL) {
//	    // reject with 400
//	}
//
// The Is helper reports whether an error came from this package at all,
// which is how callers map validation failures to a ValidationError.
package validate

// flags.go defines constants for all CLI flag names.
//
// Using constants instead of string literals prevents typos when flag names
// are used in both Flags().Type() definitions and GetType() calls.
//
// Naming convention: Flag<PascalCaseName> where name matches the kebab-case
// CLI flag (e.g., "track-files" -> FlagTrackFiles).

package extension

const (
	// Boolean flags

	FlagFavorite   = "favorite"    // Mark as favourite (edit: set true/false)
	FlagLocal      = "local"       // Use local scope
	FlagLong       = "long"        // Long format output
	FlagRaw        = "raw"         // Raw output without rendering
	FlagTrackFiles = "track-files" // Commit attachments instead of ignoring them

	// String flags

	FlagAddr        = "addr"        // Listen address
	FlagAttach      = "attach"      // Attachment file path (repeatable)
	FlagContent     = "content"     // Note content
	FlagDescription = "description" // Bookmark description
	FlagDetach      = "detach"      // Attachment id to remove (repeatable)
	FlagFile        = "file"        // Read content from file
	FlagTag         = "tag"         // Tag (repeatable or comma-separated)
	FlagTitle       = "title"       // Title
	FlagURL         = "url"         // Bookmark url
)

// Package emoji provides symbol constants for CLI output.
package emoji

// Symbols used for status lines on stdout.
const (
	// Success marks a completed operation.
	Success = "✓"

	// Error marks a failed operation.
	Error = "✗"

	// Stop marks a shutdown.
	Stop = "✗"

	// Warning marks a non-fatal problem, such as a subject venue missing
	// from a snapshot.
	Warning = "!"

	// Info marks informational lines.
	Info = "i"
)

package chartshot

import "errors"

// Failure classes. Capture wraps every error in exactly one of these so
// callers can tell a missing browser from an unreachable page without
// string matching. None are retried internally.
var (
	// ErrEngine means the browser binary is missing or failed to launch,
	// typically because the one-time installation step was skipped.
	ErrEngine = errors.New("engine failure")

	// ErrNavigation covers unreachable URLs, DNS failures and readiness
	// timeouts.
	ErrNavigation = errors.New("navigation failure")

	// ErrCapture covers rendering and screenshot API failures.
	ErrCapture = errors.New("capture failure")

	// ErrFilesystem covers output directory creation and file writes.
	ErrFilesystem = errors.New("filesystem failure")
)

package ports

import "context"

// DocumentRenderer converts a self-contained HTML document into a binary
// document (PDF). The conversion engine is an opaque external collaborator;
// whether one is present is resolved once at startup and exposed through
// Available, not probed per request.
type DocumentRenderer interface {
	// Available reports whether a rendering engine was found at startup.
	// When false, Render must not be called; callers degrade gracefully.
	Available() bool

	// Render converts HTML bytes to the target document format.
	Render(ctx context.Context, html []byte) ([]byte, error)
}

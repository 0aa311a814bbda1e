package settings

import "context"

// Store persists the encoded settings record.
// Implementations must be safe for concurrent use.
type Store interface {
	// Load returns the stored document, or nil with no error when nothing
	// has been saved yet.
	Load(ctx context.Context) ([]byte, error)

	// Save replaces the stored document.
	Save(ctx context.Context, data []byte) error
}

// Archiver keeps the full body of uploaded brand files.
type Archiver interface {
	Archive(ctx context.Context, key string, body []byte, contentType string) error
}

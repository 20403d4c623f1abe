package docstore

import "context"

// Store manages folders and documents in the remote document store.
type Store interface {
	// GetOrCreateFolder returns the id of the first non-trashed folder with
	// the exact name, creating it when absent.
	GetOrCreateFolder(ctx context.Context, name string) (string, error)
	// CreateDocument creates a document, optionally reparents it into
	// folderID, writes the content, and returns the document id.
	CreateDocument(ctx context.Context, title, content, folderID string) (string, error)
	// DocumentURL derives the durable document URL from its id. No remote
	// call is made.
	DocumentURL(documentID string) string
}

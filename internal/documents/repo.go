package documents

import "context"

// Repo defines persistence operations for documents.
type Repo interface {
	Create(ctx context.Context, doc Document) error
	ListByUser(ctx context.Context, userID string) ([]Summary, error)
	GetByID(ctx context.Context, id string) (Document, error)
	// Delete removes at most the row matching both id and userID. A
	// non-matching or missing id is a silent no-op, not an error.
	Delete(ctx context.Context, id, userID string) error
}

package documents

import "context"

// Repo defines persistence operations for documents.
type Repo interface {
	Create(ctx context.Context, doc Document) error
	GetCurrent(ctx context.Context, sessionID string) (Document, error)
	GetByID(ctx context.Context, sessionID, documentID string) (Document, error)
	List(ctx context.Context, sessionID string, limit, offset int) ([]Document, error)
}

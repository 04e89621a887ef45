package analyses

import "context"

// Repo defines persistence operations for analyses.
type Repo interface {
	Create(ctx context.Context, analysis Analysis) error
	GetByID(ctx context.Context, sessionID, analysisID string) (Analysis, error)
	List(ctx context.Context, sessionID string, limit, offset int) ([]Analysis, error)
}

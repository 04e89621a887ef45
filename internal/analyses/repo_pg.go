package analyses

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const analysisColumns = `id, session_id, document_id, status, prompt_hash, provider, model, warning,
    result, error_message, duration_ms, created_at, completed_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row rowScanner) (Analysis, error) {
	var (
		analysis    Analysis
		completedAt sql.NullTime
	)
	err := row.Scan(
		&analysis.ID,
		&analysis.SessionID,
		&analysis.DocumentID,
		&analysis.Status,
		&analysis.PromptHash,
		&analysis.Provider,
		&analysis.Model,
		&analysis.Warning,
		&analysis.Result,
		&analysis.ErrorMessage,
		&analysis.DurationMs,
		&analysis.CreatedAt,
		&completedAt,
	)
	if err != nil {
		return Analysis{}, err
	}
	if completedAt.Valid {
		t := completedAt.Time
		analysis.CompletedAt = &t
	}
	return analysis, nil
}

// Create inserts a finished analysis.
func (r *PGRepo) Create(ctx context.Context, analysis Analysis) error {
	const query = `
INSERT INTO analyses (` + analysisColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	var completedAt sql.NullTime
	if analysis.CompletedAt != nil {
		completedAt = sql.NullTime{Time: *analysis.CompletedAt, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		analysis.ID,
		analysis.SessionID,
		analysis.DocumentID,
		analysis.Status,
		analysis.PromptHash,
		analysis.Provider,
		analysis.Model,
		analysis.Warning,
		analysis.Result,
		analysis.ErrorMessage,
		analysis.DurationMs,
		analysis.CreatedAt,
		completedAt,
	)
	return err
}

// GetByID fetches an analysis owned by the session.
func (r *PGRepo) GetByID(ctx context.Context, sessionID, analysisID string) (Analysis, error) {
	const query = `
SELECT ` + analysisColumns + `
FROM analyses
WHERE session_id = $1 AND id = $2
LIMIT 1`
	analysis, err := scanAnalysis(r.DB.QueryRowContext(ctx, query, sessionID, analysisID))
	if errors.Is(err, sql.ErrNoRows) {
		return Analysis{}, ErrNotFound
	}
	return analysis, err
}

// List lists the session's analyses newest first.
func (r *PGRepo) List(ctx context.Context, sessionID string, limit, offset int) ([]Analysis, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT ` + analysisColumns + `
FROM analyses
WHERE session_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, sessionID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Analysis{}
	for rows.Next() {
		analysis, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, analysis)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)

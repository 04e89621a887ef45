package documents

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const documentColumns = `id, session_id, file_name, mime_type, size_bytes, storage_provider, storage_key,
    extracted_text, extracted_text_key, extract_status, extract_error, page_count, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (Document, error) {
	var doc Document
	err := row.Scan(
		&doc.ID,
		&doc.SessionID,
		&doc.FileName,
		&doc.MimeType,
		&doc.SizeBytes,
		&doc.StorageProvider,
		&doc.StorageKey,
		&doc.ExtractedText,
		&doc.ExtractedTextKey,
		&doc.ExtractStatus,
		&doc.ExtractError,
		&doc.PageCount,
		&doc.CreatedAt,
	)
	return doc, err
}

// Create inserts a new document.
func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO documents (` + documentColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	storageProvider := doc.StorageProvider
	if storageProvider == "" {
		storageProvider = "local"
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		doc.ID,
		doc.SessionID,
		doc.FileName,
		doc.MimeType,
		doc.SizeBytes,
		storageProvider,
		doc.StorageKey,
		doc.ExtractedText,
		doc.ExtractedTextKey,
		doc.ExtractStatus,
		doc.ExtractError,
		doc.PageCount,
		doc.CreatedAt,
	)
	return err
}

// GetCurrent returns the latest document for a session.
func (r *PGRepo) GetCurrent(ctx context.Context, sessionID string) (Document, error) {
	const query = `
SELECT ` + documentColumns + `
FROM documents
WHERE session_id = $1
ORDER BY created_at DESC
LIMIT 1`
	doc, err := scanDocument(r.DB.QueryRowContext(ctx, query, sessionID))
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, ErrNotFound
	}
	return doc, err
}

// GetByID fetches a document by ID for a session.
func (r *PGRepo) GetByID(ctx context.Context, sessionID, documentID string) (Document, error) {
	const query = `
SELECT ` + documentColumns + `
FROM documents
WHERE session_id = $1 AND id = $2
LIMIT 1`
	doc, err := scanDocument(r.DB.QueryRowContext(ctx, query, sessionID, documentID))
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, ErrNotFound
	}
	return doc, err
}

// List lists documents ordered newest-first.
func (r *PGRepo) List(ctx context.Context, sessionID string, limit, offset int) ([]Document, error) {
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
SELECT ` + documentColumns + `
FROM documents
WHERE session_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, sessionID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)

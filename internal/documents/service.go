package documents

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-analyzer/internal/extract"
	"resume-analyzer/internal/shared/metrics"
	"resume-analyzer/internal/shared/storage/object"
	"resume-analyzer/internal/shared/telemetry"
)

const extractedSuffix = ".extracted.txt"

// Service contains business logic for documents.
type Service struct {
	Store           object.ObjectStore
	Repo            Repo
	StorageProvider string
	Now             func() time.Time
}

// Upload stores the PDF, extracts its text and records it as the session's
// current document. A failed extraction is still recorded, with empty text,
// and reported as ErrExtractionFailed.
func (s *Service) Upload(ctx context.Context, sessionID, fileName string, r io.Reader) (Document, error) {
	name := strings.TrimSpace(fileName)
	if strings.TrimSpace(sessionID) == "" {
		return Document{}, fmt.Errorf("%w: session id required", ErrInvalidInput)
	}
	if name == "" {
		return Document{}, fmt.Errorf("%w: file is required", ErrInvalidInput)
	}
	if r == nil {
		return Document{}, fmt.Errorf("%w: file is required", ErrInvalidInput)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return Document{}, ErrEmptyFile
	}
	if !extract.IsPDF(name, data) {
		return Document{}, ErrUnsupportedType
	}

	storageKey, size, mimeType, err := s.Store.Save(ctx, sessionID, name, bytes.NewReader(data))
	if err != nil {
		return Document{}, fmt.Errorf("store upload: %w", err)
	}

	doc := Document{
		ID:              uuid.NewString(),
		SessionID:       sessionID,
		FileName:        name,
		MimeType:        mimeType,
		SizeBytes:       size,
		StorageProvider: s.storageProvider(),
		StorageKey:      storageKey,
		CreatedAt:       s.now(),
	}

	start := time.Now()
	metrics.IncExtraction()
	pages, extractErr := extract.ExtractPages(ctx, data)
	metrics.ObserveExtractionDurationMs(metrics.SinceMillis(start))

	if extractErr != nil {
		metrics.IncExtractionFailed()
		doc.ExtractStatus = ExtractStatusFailed
		doc.ExtractError = extractErr.Error()
		telemetry.Warn("documents.extract_failed", map[string]any{
			"session_id":  sessionID,
			"document_id": doc.ID,
			"file_name":   name,
			"err":         extractErr,
		})
	} else {
		doc.ExtractStatus = ExtractStatusCompleted
		doc.PageCount = len(pages)
		doc.ExtractedText = extract.Join(pages)
		doc.ExtractedTextKey = s.saveExtracted(ctx, doc)
	}

	if err := s.Repo.Create(ctx, doc); err != nil {
		return Document{}, fmt.Errorf("record document: %w", err)
	}

	telemetry.Info("documents.uploaded", map[string]any{
		"session_id":     sessionID,
		"document_id":    doc.ID,
		"size_bytes":     doc.SizeBytes,
		"pages":          doc.PageCount,
		"text_length":    len(doc.ExtractedText),
		"extract_status": doc.ExtractStatus,
		"duration_ms":    metrics.SinceMillis(start),
	})

	if extractErr != nil {
		return doc, fmt.Errorf("%w: %w", ErrExtractionFailed, extractErr)
	}
	return doc, nil
}

// saveExtracted persists a derived text copy next to the upload. Failures
// are logged; the text is still kept on the document record.
func (s *Service) saveExtracted(ctx context.Context, doc Document) string {
	key := doc.StorageKey + extractedSuffix
	if _, err := s.Store.SaveWithKey(ctx, key, "text/plain; charset=utf-8", strings.NewReader(doc.ExtractedText)); err != nil {
		telemetry.Warn("documents.save_extracted_failed", map[string]any{
			"document_id": doc.ID,
			"key":         key,
			"err":         err,
		})
		return ""
	}
	return key
}

// Current returns the newest document uploaded by a session.
func (s *Service) Current(ctx context.Context, sessionID string) (Document, error) {
	if strings.TrimSpace(sessionID) == "" {
		return Document{}, fmt.Errorf("%w: session id required", ErrInvalidInput)
	}
	return s.Repo.GetCurrent(ctx, sessionID)
}

// Get returns one of the session's documents.
func (s *Service) Get(ctx context.Context, sessionID, documentID string) (Document, error) {
	if strings.TrimSpace(sessionID) == "" || strings.TrimSpace(documentID) == "" {
		return Document{}, fmt.Errorf("%w: session id and document id required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, sessionID, documentID)
}

// OpenFile returns one of the session's documents with a reader over the
// originally uploaded bytes. The caller closes the reader.
func (s *Service) OpenFile(ctx context.Context, sessionID, documentID string) (Document, io.ReadCloser, error) {
	doc, err := s.Get(ctx, sessionID, documentID)
	if err != nil {
		return Document{}, nil, err
	}
	rc, err := s.Store.Open(ctx, doc.StorageKey)
	if err != nil {
		return Document{}, nil, fmt.Errorf("open stored upload %s: %w", doc.ID, err)
	}
	if doc.MimeType == "" {
		doc.MimeType = extract.MimePDF
	}
	return doc, rc, nil
}

// List returns the session's documents, newest first.
func (s *Service) List(ctx context.Context, sessionID string, limit, offset int) ([]Document, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, fmt.Errorf("%w: session id required", ErrInvalidInput)
	}
	return s.Repo.List(ctx, sessionID, limit, offset)
}

func (s *Service) storageProvider() string {
	if s.StorageProvider == "" {
		return "local"
	}
	return s.StorageProvider
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

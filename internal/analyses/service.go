package analyses

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-analyzer/internal/documents"
	"resume-analyzer/internal/llm"
	"resume-analyzer/internal/shared/metrics"
	"resume-analyzer/internal/shared/telemetry"
)

const maxErrorMessageLen = 500

// DocumentSource resolves the document text an analysis runs over.
type DocumentSource interface {
	Current(ctx context.Context, sessionID string) (documents.Document, error)
	Get(ctx context.Context, sessionID, documentID string) (documents.Document, error)
}

// Service runs analyses synchronously and records their outcome.
type Service struct {
	Repo     Repo
	Docs     DocumentSource
	LLM      llm.Generator
	Provider string
	Model    string
	Now      func() time.Time
}

// Analyze runs the generator over the document's text. An empty documentID
// selects the session's current document; a session without uploads is
// analyzed with empty text. Every call generates anew.
func (s *Service) Analyze(ctx context.Context, sessionID, documentID string) (Analysis, error) {
	if strings.TrimSpace(sessionID) == "" {
		return Analysis{}, fmt.Errorf("%w: session id required", ErrInvalidInput)
	}

	doc, err := s.resolveDocument(ctx, sessionID, strings.TrimSpace(documentID))
	if err != nil {
		return Analysis{}, err
	}

	text := doc.ExtractedText
	prompt := llm.BuildAnalysisPrompt(text)
	analysis := Analysis{
		ID:         uuid.NewString(),
		SessionID:  sessionID,
		DocumentID: doc.ID,
		PromptHash: llm.PromptHash(prompt),
		Provider:   s.Provider,
		Model:      s.Model,
		CreatedAt:  s.now(),
	}
	if text == "" {
		analysis.Warning = EmptyTextWarning
	}

	metrics.IncAnalysisStarted()
	telemetry.Info("analysis.started", map[string]any{
		"request_id":  requestIDFromContext(ctx),
		"session_id":  sessionID,
		"document_id": doc.ID,
		"analysis_id": analysis.ID,
		"text_length": len(text),
		"provider":    s.Provider,
	})

	start := time.Now()
	output, genErr := s.generator().Generate(ctx, prompt)
	elapsed := metrics.SinceMillis(start)
	completedAt := s.now()
	analysis.CompletedAt = &completedAt
	analysis.DurationMs = int64(elapsed)
	metrics.ObserveAnalysisDurationMs(elapsed)

	if genErr == nil && strings.TrimSpace(output) == "" {
		genErr = llm.ErrEmptyOutput
	}

	if genErr != nil {
		analysis.Status = StatusFailed
		analysis.ErrorMessage = sanitizeError(genErr)
		metrics.IncAnalysisFailed()
	} else {
		analysis.Status = StatusCompleted
		analysis.Result = output
		metrics.IncAnalysisCompleted()
	}

	// Record the outcome even if the caller went away mid-generation.
	if err := s.Repo.Create(context.WithoutCancel(ctx), analysis); err != nil {
		return Analysis{}, fmt.Errorf("record analysis: %w", err)
	}

	fields := map[string]any{
		"request_id":  requestIDFromContext(ctx),
		"session_id":  sessionID,
		"document_id": doc.ID,
		"analysis_id": analysis.ID,
		"status":      analysis.Status,
		"duration_ms": elapsed,
	}
	if genErr != nil {
		fields["err"] = genErr
		telemetry.Warn("analysis.failed", fields)
		return analysis, fmt.Errorf("%w: %w", ErrGenerationFailed, genErr)
	}
	fields["result_length"] = len(output)
	telemetry.Info("analysis.completed", fields)
	return analysis, nil
}

// Get returns one of the session's analyses.
func (s *Service) Get(ctx context.Context, sessionID, analysisID string) (Analysis, error) {
	if strings.TrimSpace(sessionID) == "" || strings.TrimSpace(analysisID) == "" {
		return Analysis{}, fmt.Errorf("%w: session id and analysis id required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, sessionID, analysisID)
}

// List returns the session's analyses, newest first.
func (s *Service) List(ctx context.Context, sessionID string, limit, offset int) ([]Analysis, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, fmt.Errorf("%w: session id required", ErrInvalidInput)
	}
	return s.Repo.List(ctx, sessionID, limit, offset)
}

func (s *Service) resolveDocument(ctx context.Context, sessionID, documentID string) (documents.Document, error) {
	if s.Docs == nil {
		return documents.Document{}, nil
	}
	if documentID == "" {
		doc, err := s.Docs.Current(ctx, sessionID)
		if errors.Is(err, documents.ErrNotFound) {
			return documents.Document{}, nil
		}
		if err != nil {
			return documents.Document{}, fmt.Errorf("load current document: %w", err)
		}
		return doc, nil
	}

	doc, err := s.Docs.Get(ctx, sessionID, documentID)
	if errors.Is(err, documents.ErrNotFound) {
		return documents.Document{}, ErrDocumentNotFound
	}
	if err != nil {
		return documents.Document{}, fmt.Errorf("load document %s: %w", documentID, err)
	}
	return doc, nil
}

func (s *Service) generator() llm.Generator {
	if s.LLM == nil {
		return llm.PlaceholderGenerator{}
	}
	return s.LLM
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	msg = strings.ReplaceAll(msg, "\r", " ")
	msg = strings.TrimSpace(msg)
	if len(msg) > maxErrorMessageLen {
		msg = msg[:maxErrorMessageLen]
	}
	return msg
}

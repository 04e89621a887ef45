package llm

import (
	"context"
	"errors"

	"resume-analyzer/internal/shared/util"
)

// Generator abstracts text-to-text generation providers used for résumé analysis.
// Implementations are built once per process and must be safe for concurrent use.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a plain function to Generator.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

var (
	// ErrNotConfigured is returned when no provider is wired.
	ErrNotConfigured = errors.New("llm provider not configured")
	// ErrEmptyOutput is returned when a provider answers without generated text.
	ErrEmptyOutput = errors.New("llm returned empty output")
)

// PlaceholderGenerator is used when LLM_PROVIDER=none.
type PlaceholderGenerator struct{}

// Generate returns ErrNotConfigured.
func (PlaceholderGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "", ErrNotConfigured
}

// PromptHash identifies a prompt for traceability without storing it twice.
func PromptHash(prompt string) string {
	return util.HashKey(prompt)
}

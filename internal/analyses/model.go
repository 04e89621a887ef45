package analyses

import "time"

// Analysis outcomes.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// EmptyTextWarning accompanies analyses of documents without extractable text.
const EmptyTextWarning = "Could not extract text from the PDF. Please try another file."

// Analysis is one run of the generation model over a document's text.
type Analysis struct {
	ID           string
	SessionID    string
	DocumentID   string
	Status       string
	PromptHash   string
	Provider     string
	Model        string
	Warning      string
	Result       string
	ErrorMessage string
	DurationMs   int64
	CreatedAt    time.Time
	CompletedAt  *time.Time
}

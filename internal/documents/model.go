package documents

import "time"

// Extraction outcomes recorded on a document.
const (
	ExtractStatusCompleted = "completed"
	ExtractStatusFailed    = "failed"
)

// Document is an uploaded résumé owned by a session.
type Document struct {
	ID               string
	SessionID        string
	FileName         string
	MimeType         string
	SizeBytes        int64
	StorageProvider  string
	StorageKey       string
	ExtractedText    string
	ExtractedTextKey string
	ExtractStatus    string
	ExtractError     string
	PageCount        int
	CreatedAt        time.Time
}

// HasText reports whether extraction produced any text.
func (d Document) HasText() bool {
	return d.ExtractedText != ""
}

package analyses

import "time"

// AnalysisResponse is the outward-facing representation of an analysis.
type AnalysisResponse struct {
	AnalysisID  string     `json:"analysisId"`
	DocumentID  string     `json:"documentId,omitempty"`
	Status      string     `json:"status"`
	Result      string     `json:"result,omitempty"`
	Warning     string     `json:"warning,omitempty"`
	Error       string     `json:"error,omitempty"`
	Provider    string     `json:"provider,omitempty"`
	Model       string     `json:"model,omitempty"`
	DurationMs  int64      `json:"durationMs"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

func toResponse(a Analysis) AnalysisResponse {
	return AnalysisResponse{
		AnalysisID:  a.ID,
		DocumentID:  a.DocumentID,
		Status:      a.Status,
		Result:      a.Result,
		Warning:     a.Warning,
		Error:       a.ErrorMessage,
		Provider:    a.Provider,
		Model:       a.Model,
		DurationMs:  a.DurationMs,
		CreatedAt:   a.CreatedAt,
		CompletedAt: a.CompletedAt,
	}
}

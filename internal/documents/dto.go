package documents

import "time"

// DocumentResponse is the outward-facing representation of a document.
type DocumentResponse struct {
	DocumentID    string    `json:"documentId"`
	FileName      string    `json:"fileName"`
	MimeType      string    `json:"mimeType"`
	SizeBytes     int64     `json:"sizeBytes"`
	ExtractStatus string    `json:"extractStatus"`
	PageCount     int       `json:"pageCount"`
	TextLength    int       `json:"textLength"`
	ExtractedText *string   `json:"extractedText,omitempty"`
	UploadedAt    time.Time `json:"uploadedAt"`
}

func toResponse(doc Document, includeText bool) DocumentResponse {
	resp := DocumentResponse{
		DocumentID:    doc.ID,
		FileName:      doc.FileName,
		MimeType:      doc.MimeType,
		SizeBytes:     doc.SizeBytes,
		ExtractStatus: doc.ExtractStatus,
		PageCount:     doc.PageCount,
		TextLength:    len(doc.ExtractedText),
		UploadedAt:    doc.CreatedAt,
	}
	if includeText {
		text := doc.ExtractedText
		resp.ExtractedText = &text
	}
	return resp
}

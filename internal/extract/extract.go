// Package extract pulls plain text out of PDF résumés.
package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// MimePDF is the content type stored for uploaded résumés.
const MimePDF = "application/pdf"

var pdfMagic = []byte("%PDF-")

// ErrInvalidPDF reports input that cannot be parsed as a PDF.
var ErrInvalidPDF = errors.New("invalid pdf")

// IsPDF reports whether the upload looks like a PDF, by magic bytes or extension.
func IsPDF(fileName string, data []byte) bool {
	if bytes.HasPrefix(data, pdfMagic) {
		return true
	}
	return strings.EqualFold(filepath.Ext(strings.TrimSpace(fileName)), ".pdf")
}

// Extract returns the text of every page concatenated in page order.
// PDFs without a text layer yield an empty string and no error.
func Extract(ctx context.Context, data []byte) (string, error) {
	pages, err := ExtractPages(ctx, data)
	if err != nil {
		return "", err
	}
	return Join(pages), nil
}

// Join concatenates page text in order. Whitespace-only output collapses to "".
func Join(pages []string) string {
	text := strings.Join(pages, "")
	if strings.TrimSpace(text) == "" {
		return ""
	}
	return text
}

// ExtractPages returns the text of each page; index i holds page i+1.
// A page that fails to decode fails the whole extraction.
func ExtractPages(ctx context.Context, data []byte) (pages []string, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(data, pdfMagic) {
		return nil, fmt.Errorf("%w: missing %%PDF- header", ErrInvalidPDF)
	}

	// The parser panics on some malformed inputs.
	defer func() {
		if rec := recover(); rec != nil {
			pages = nil
			err = fmt.Errorf("%w: %v", ErrInvalidPDF, rec)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}

	total := reader.NumPage()
	pages = make([]string, 0, total)
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", ErrInvalidPDF, i, err)
		}
		pages = append(pages, text)
	}
	return pages, nil
}

package documents

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("document not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrExtractionFailed = errors.New("text extraction failed")
)

// Upload validation failures. Both match ErrInvalidInput.
var (
	ErrEmptyFile       = fmt.Errorf("%w: file is empty", ErrInvalidInput)
	ErrUnsupportedType = fmt.Errorf("%w: only PDF files are supported", ErrInvalidInput)
)

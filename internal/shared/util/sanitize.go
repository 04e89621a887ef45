package util

import (
	"errors"
	"path/filepath"
	"strings"
)

// ErrInvalidFileName is returned for names that are empty or attempt traversal.
var ErrInvalidFileName = errors.New("invalid file name")

// SanitizeFileName removes path separators and rejects traversal patterns.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", ErrInvalidFileName
	}
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	if s == "" {
		return "", ErrInvalidFileName
	}
	return s, nil
}

// HasExt reports whether name ends with ext, ignoring case.
func HasExt(name, ext string) bool {
	return strings.EqualFold(filepath.Ext(strings.TrimSpace(name)), ext)
}

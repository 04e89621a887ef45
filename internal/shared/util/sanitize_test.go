package util

import (
	"errors"
	"testing"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "plain", in: "resume.pdf", want: "resume.pdf"},
		{name: "trims", in: "  cv.pdf ", want: "cv.pdf"},
		{name: "separators", in: "a/b\\c.pdf", want: "a_b_c.pdf"},
		{name: "traversal", in: "../etc/passwd", wantErr: true},
		{name: "blank", in: "   ", wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeFileName(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidFileName) {
					t.Fatalf("expected ErrInvalidFileName, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("SanitizeFileName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestHasExt(t *testing.T) {
	if !HasExt("Resume.PDF", ".pdf") {
		t.Fatalf("expected case-insensitive match")
	}
	if HasExt("resume.pdf.txt", ".pdf") {
		t.Fatalf("expected only the final extension to count")
	}
}

package extract

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-analyzer/internal/extract/extracttest"
)

func TestExtractConcatenatesPagesInOrder(t *testing.T) {
	data := extracttest.BuildPDF(extracttest.TextPage("Jane Doe"), extracttest.TextPage("Go Engineer"), extracttest.TextPage("Berlin"))

	pages, err := ExtractPages(context.Background(), data)
	require.NoError(t, err)
	require.Len(t, pages, 3)
	assert.Contains(t, pages[0], "Jane Doe")
	assert.Contains(t, pages[1], "Go Engineer")
	assert.Contains(t, pages[2], "Berlin")

	text, err := Extract(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, strings.Join(pages, ""), text)

	first := strings.Index(text, "Jane Doe")
	second := strings.Index(text, "Go Engineer")
	third := strings.Index(text, "Berlin")
	assert.True(t, first >= 0 && first < second && second < third, "pages out of order: %q", text)
}

func TestExtractImageOnlyReturnsEmpty(t *testing.T) {
	data := extracttest.BuildPDF(extracttest.ImagePage, extracttest.ImagePage)

	text, err := Extract(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, "", text)
}

func TestExtractMixedPagesKeepsText(t *testing.T) {
	data := extracttest.BuildPDF(extracttest.ImagePage, extracttest.TextPage("Skills"))

	text, err := Extract(context.Background(), data)
	require.NoError(t, err)
	assert.Contains(t, text, "Skills")
}

func TestExtractRejectsCorruptInput(t *testing.T) {
	valid := extracttest.BuildPDF(extracttest.TextPage("Hello"))

	cases := map[string][]byte{
		"empty":     nil,
		"not pdf":   []byte("this is definitely not a pdf document"),
		"truncated": valid[:len(valid)/2],
		"bad xref":  bytes.Replace(valid, []byte("startxref"), []byte("startxrex"), 1),
	}
	for name, data := range cases {
		data := data
		t.Run(name, func(t *testing.T) {
			text, err := Extract(context.Background(), data)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidPDF)
			assert.Empty(t, text)
		})
	}
}

func TestExtractHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Extract(ctx, extracttest.BuildPDF(extracttest.TextPage("Hello")))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsPDF(t *testing.T) {
	assert.True(t, IsPDF("resume.pdf", nil))
	assert.True(t, IsPDF("RESUME.PDF", nil))
	assert.True(t, IsPDF("upload.bin", []byte("%PDF-1.7\n")))
	assert.False(t, IsPDF("resume.docx", []byte("PK\x03\x04")))
	assert.False(t, IsPDF("", nil))
}

func TestJoinCollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "", Join([]string{" ", "\n", ""}))
	assert.Equal(t, "a\nb", Join([]string{"a\n", "b"}))
	assert.Equal(t, "", Join(nil))
}

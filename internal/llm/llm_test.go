package llm

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAnalysisPromptEmbedsTextVerbatim(t *testing.T) {
	text := "Jane Doe\nSenior Go Engineer\n{text} braces & <tags> stay as-is"

	prompt := BuildAnalysisPrompt(text)

	assert.True(t, strings.HasPrefix(prompt, "Read the following resume text and give:\n"))
	assert.Contains(t, prompt, "1) A short summary (2-3 lines)")
	assert.Contains(t, prompt, "2) Top 5 strengths")
	assert.Contains(t, prompt, "3) Top 5 improvements")
	assert.Contains(t, prompt, "4) List job roles that match the resume")
	assert.Contains(t, prompt, text)
	assert.True(t, strings.HasSuffix(prompt, "Resume:\n"+text))
}

func TestBuildAnalysisPromptEmptyText(t *testing.T) {
	prompt := BuildAnalysisPrompt("")
	assert.True(t, strings.HasSuffix(prompt, "Resume:\n"))
	assert.NotContains(t, prompt, textPlaceholder)
}

func TestBuildAnalysisPromptLongTextNotTruncated(t *testing.T) {
	text := strings.Repeat("experience ", 20000)
	assert.Contains(t, BuildAnalysisPrompt(text), text)
}

func TestPlaceholderGenerator(t *testing.T) {
	_, err := PlaceholderGenerator{}.Generate(context.Background(), "prompt")
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestGeneratorFunc(t *testing.T) {
	gen := GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		return "echo:" + prompt, nil
	})
	out, err := gen.Generate(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "echo:hi", out)
}

func TestPromptHashStable(t *testing.T) {
	a := PromptHash(BuildAnalysisPrompt("x"))
	b := PromptHash(BuildAnalysisPrompt("x"))
	c := PromptHash(BuildAnalysisPrompt("y"))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}

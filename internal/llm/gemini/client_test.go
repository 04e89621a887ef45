package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"resume-analyzer/internal/llm"
)

type fakeModels struct {
	gotModel  string
	gotPrompt string
	resp      *genai.GenerateContentResponse
	err       error
}

func (f *fakeModels) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.gotModel = model
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.gotPrompt = contents[0].Parts[0].Text
	}
	return f.resp, f.err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Role: "model", Parts: []*genai.Part{{Text: text}}},
		}},
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient(context.Background(), "", "", 0)
	require.Error(t, err)
}

func TestGenerateReturnsText(t *testing.T) {
	fake := &fakeModels{resp: textResponse(" Summary: solid résumé ")}
	c := newClient(fake, "")

	out, err := c.Generate(context.Background(), "Resume:\nJane")
	require.NoError(t, err)
	assert.Equal(t, "Summary: solid résumé", out)
	assert.Equal(t, DefaultModel, fake.gotModel)
	assert.Equal(t, "Resume:\nJane", fake.gotPrompt)
}

func TestGenerateWrapsProviderError(t *testing.T) {
	boom := errors.New("quota exceeded")
	c := newClient(&fakeModels{err: boom}, "gemini-2.5-pro")

	_, err := c.Generate(context.Background(), "p")
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "gemini-2.5-pro")
}

func TestGenerateEmptyOutput(t *testing.T) {
	c := newClient(&fakeModels{resp: &genai.GenerateContentResponse{}}, "")
	_, err := c.Generate(context.Background(), "p")
	assert.ErrorIs(t, err, llm.ErrEmptyOutput)

	c = newClient(&fakeModels{}, "")
	_, err = c.Generate(context.Background(), "p")
	assert.ErrorIs(t, err, llm.ErrEmptyOutput)
}

// Package gemini generates analyses with Google's Gemini API.
package gemini

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"resume-analyzer/internal/llm"
)

// DefaultModel is used when LLM_MODEL is empty.
const DefaultModel = "gemini-2.5-flash"

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client implements llm.Generator on top of genai.
type Client struct {
	models contentGenerator
	model  string
}

// NewClient builds a Gemini API client. A zero timeout leaves requests
// bounded only by their context.
func NewClient(ctx context.Context, apiKey, model string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeout},
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return newClient(client.Models, model), nil
}

func newClient(models contentGenerator, model string) *Client {
	model = strings.TrimSpace(model)
	if model == "" {
		model = DefaultModel
	}
	return &Client{models: models, model: model}
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// Generate sends the prompt as a single text part and returns the reply text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate model=%s: %w", c.model, err)
	}
	if resp == nil {
		return "", llm.ErrEmptyOutput
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", llm.ErrEmptyOutput
	}
	return text, nil
}

var _ llm.Generator = (*Client)(nil)

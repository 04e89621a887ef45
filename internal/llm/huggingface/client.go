// Package huggingface calls the Hugging Face Inference API for text2text generation.
package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"resume-analyzer/internal/llm"
)

const (
	// DefaultModel matches the model the analyzer was tuned against.
	DefaultModel = "google/flan-t5-base"
	// DefaultBaseURL is the hosted inference endpoint.
	DefaultBaseURL = "https://router.huggingface.co/hf-inference"

	maxLength          = 500
	numReturnSequences = 1
)

// Options configures the client.
type Options struct {
	Token   string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Client implements llm.Generator against the Inference API.
type Client struct {
	token      string
	model      string
	endpoint   string
	httpClient *http.Client
}

// NewClient builds a client. Empty fields fall back to the defaults.
func NewClient(opts Options) *Client {
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = DefaultModel
	}
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	return &Client{
		token:    strings.TrimSpace(opts.Token),
		model:    model,
		endpoint: base + "/models/" + model,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
	}
}

// Model returns the configured model id.
func (c *Client) Model() string {
	return c.model
}

type parameters struct {
	MaxLength          int `json:"max_length"`
	NumReturnSequences int `json:"num_return_sequences"`
}

type options struct {
	WaitForModel bool `json:"wait_for_model"`
}

type request struct {
	Inputs     string     `json:"inputs"`
	Parameters parameters `json:"parameters"`
	Options    options    `json:"options"`
}

type generation struct {
	GeneratedText string `json:"generated_text"`
}

type apiError struct {
	Error string `json:"error"`
}

// Generate runs the prompt through the model and returns the first generated sequence.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(request{
		Inputs: prompt,
		Parameters: parameters{
			MaxLength:          maxLength,
			NumReturnSequences: numReturnSequences,
		},
		Options: options{WaitForModel: true},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return "", fmt.Errorf("huggingface request timeout: %w", err)
		}
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return "", fmt.Errorf("huggingface http status %d: %s", resp.StatusCode, apiErr.Error)
		}
		return "", fmt.Errorf("huggingface http status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out []generation
	if err := json.Unmarshal(body, &out); err != nil {
		var apiErr apiError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return "", fmt.Errorf("huggingface error: %s", apiErr.Error)
		}
		return "", fmt.Errorf("huggingface response parse: %w", err)
	}
	if len(out) == 0 {
		return "", llm.ErrEmptyOutput
	}
	text := strings.TrimSpace(out[0].GeneratedText)
	if text == "" {
		return "", llm.ErrEmptyOutput
	}
	return text, nil
}

var _ llm.Generator = (*Client)(nil)

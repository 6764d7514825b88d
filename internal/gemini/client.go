package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrNotConfigured is returned when no API key is set.
var ErrNotConfigured = errors.New("gemini API key is not configured")

// Client calls the Google generative-language API's generateContent endpoint.
type Client struct {
	client  *resty.Client
	baseURL string
	model   string
	apiKey  string
}

// Config holds connection settings for the generation provider.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Wire format for the v1beta generateContent call. Plain-text output is
// requested; the provider response is relayed to callers unmodified.
type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string `json:"responseMimeType"`
}

// generateResponse covers the slice of the provider response this service
// reads: candidate text for extraction and the error envelope.
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Result is a successful generation: the provider's raw JSON body for
// verbatim relay, plus the parsed view for text extraction.
type Result struct {
	Raw    json.RawMessage
	parsed generateResponse
}

// Text returns the first candidate's first part, or "" when the provider
// returned no usable candidate.
func (r *Result) Text() string {
	if len(r.parsed.Candidates) == 0 {
		return ""
	}
	parts := r.parsed.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return ""
	}
	return parts[0].Text
}

// APIError is a non-2xx response from the generation provider.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini API error: HTTP %d: %s", e.StatusCode, e.Message)
}

// New creates a generation client. A missing API key is reported per-request
// as ErrNotConfigured rather than failing construction.
func New(cfg *Config) *Client {
	client := resty.New()
	client.SetHeader("Content-Type", "application/json")
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	} else {
		client.SetTimeout(60 * time.Second)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com"
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}

	return &Client{
		client:  client,
		baseURL: baseURL,
		model:   model,
		apiKey:  cfg.APIKey,
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// GenerateContent submits a single-turn plain-text generation request.
func (c *Client) GenerateContent(ctx context.Context, prompt string) (*Result, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	req := generateRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: prompt}}},
		},
		GenerationConfig: generationConfig{ResponseMIMEType: "text/plain"},
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)

	var parsed generateResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(req).
		SetResult(&parsed).
		Post(endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to call gemini API: %w", err)
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		message := string(resp.Body())
		// SetResult only decodes on 2xx; decode the error envelope here.
		var errEnvelope generateResponse
		if jsonErr := json.Unmarshal(resp.Body(), &errEnvelope); jsonErr == nil && errEnvelope.Error != nil {
			message = errEnvelope.Error.Message
		}
		return nil, &APIError{StatusCode: resp.StatusCode(), Message: message}
	}

	raw := make(json.RawMessage, len(resp.Body()))
	copy(raw, resp.Body())

	return &Result{Raw: raw, parsed: parsed}, nil
}

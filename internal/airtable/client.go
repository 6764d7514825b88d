package airtable

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrNotConfigured is returned when the API token or base ID is missing.
var ErrNotConfigured = errors.New("airtable credentials are not configured")

// Client is a thin wrapper over the Airtable REST API for a single base.
type Client struct {
	client  *resty.Client
	baseURL string
	baseID  string
	token   string
}

// Config holds connection settings for one Airtable base.
type Config struct {
	APIToken string
	BaseID   string
	BaseURL  string
	Timeout  time.Duration
}

// Record is one Airtable row. Fields carries the raw column values keyed by
// column name; CreatedTime is assigned by Airtable on creation.
type Record struct {
	ID          string                 `json:"id"`
	CreatedTime time.Time              `json:"createdTime"`
	Fields      map[string]interface{} `json:"fields"`
}

// Name returns the string value of a field, or "" when absent or non-string.
func (r *Record) Name(field string) string {
	if s, ok := r.Fields[field].(string); ok {
		return s
	}
	return ""
}

// APIError is a non-2xx response from the Airtable API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("airtable API error: HTTP %d: %s", e.StatusCode, e.Message)
}

type listResponse struct {
	Records []Record `json:"records"`
}

type createRequest struct {
	Fields map[string]interface{} `json:"fields"`
}

// errorBody matches Airtable's error envelope. The message lives either in
// error.message or, for some endpoints, directly in error as a string; the
// raw body is kept as a fallback.
type errorBody struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// New creates a client for the configured base. The returned client reports
// ErrNotConfigured on use when credentials are missing, so construction
// always succeeds and the error surfaces per-request.
func New(cfg *Config) *Client {
	client := resty.New()
	client.SetHeader("Authorization", "Bearer "+cfg.APIToken)
	client.SetHeader("Content-Type", "application/json")
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	} else {
		client.SetTimeout(30 * time.Second)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.airtable.com"
	}

	return &Client{
		client:  client,
		baseURL: baseURL,
		baseID:  cfg.BaseID,
		token:   cfg.APIToken,
	}
}

// Configured reports whether both credentials are present.
func (c *Client) Configured() bool {
	return c.token != "" && c.baseID != ""
}

func (c *Client) tableURL(table string) string {
	return fmt.Sprintf("%s/v0/%s/%s", c.baseURL, c.baseID, url.PathEscape(table))
}

// ListRecords fetches rows from a table, optionally filtered by an Airtable
// formula. Only the first page is read; callers here never need more.
func (c *Client) ListRecords(ctx context.Context, table, filterByFormula string) ([]Record, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	req := c.client.R().SetContext(ctx)
	if filterByFormula != "" {
		req.SetQueryParam("filterByFormula", filterByFormula)
	}

	var result listResponse
	resp, err := req.SetResult(&result).Get(c.tableURL(table))
	if err != nil {
		return nil, fmt.Errorf("failed to call airtable API: %w", err)
	}
	if apiErr := c.checkStatus(resp); apiErr != nil {
		return nil, apiErr
	}

	return result.Records, nil
}

// CreateRecord appends one row to a table and returns it as stored, including
// the identifier Airtable assigned.
func (c *Client) CreateRecord(ctx context.Context, table string, fields map[string]interface{}) (*Record, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	var result Record
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(createRequest{Fields: fields}).
		SetResult(&result).
		Post(c.tableURL(table))
	if err != nil {
		return nil, fmt.Errorf("failed to call airtable API: %w", err)
	}
	if apiErr := c.checkStatus(resp); apiErr != nil {
		return nil, apiErr
	}

	if result.ID == "" {
		return nil, fmt.Errorf("airtable create response carried no record ID (status %d)", resp.StatusCode())
	}

	return &result, nil
}

func (c *Client) checkStatus(resp *resty.Response) error {
	if resp.StatusCode() >= 200 && resp.StatusCode() < 300 {
		return nil
	}

	var body errorBody
	message := string(resp.Body())
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Error.Message != "" {
		message = body.Error.Message
	}

	return &APIError{StatusCode: resp.StatusCode(), Message: message}
}

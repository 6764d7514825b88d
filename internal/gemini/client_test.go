package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_NotConfigured(t *testing.T) {
	client := New(&Config{})

	if _, err := client.GenerateContent(context.Background(), "hello"); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}

func TestClient_GenerateContent(t *testing.T) {
	var gotPath, gotKey string
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]string{{"text": "A fast widget."}},
				}},
			},
			"modelVersion": "gemini-2.0-flash",
		})
	}))
	defer srv.Close()

	client := New(&Config{APIKey: "test-key", Model: "gemini-2.0-flash", BaseURL: srv.URL})

	result, err := client.GenerateContent(context.Background(), "Describe a widget.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/v1beta/models/gemini-2.0-flash:generateContent" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("expected key in query string, got %q", gotKey)
	}

	// Wire payload: single user turn, plain-text output requested.
	contents, ok := gotBody["contents"].([]interface{})
	if !ok || len(contents) != 1 {
		t.Fatalf("expected one content entry, got %v", gotBody["contents"])
	}
	turn := contents[0].(map[string]interface{})
	if turn["role"] != "user" {
		t.Errorf("expected user role, got %v", turn["role"])
	}
	genCfg, ok := gotBody["generationConfig"].(map[string]interface{})
	if !ok || genCfg["responseMimeType"] != "text/plain" {
		t.Errorf("expected plain-text generationConfig, got %v", gotBody["generationConfig"])
	}

	if result.Text() != "A fast widget." {
		t.Errorf("unexpected extracted text %q", result.Text())
	}

	// Raw relay preserves fields this client does not model.
	var raw map[string]interface{}
	if err := json.Unmarshal(result.Raw, &raw); err != nil {
		t.Fatalf("raw body is not valid JSON: %v", err)
	}
	if raw["modelVersion"] != "gemini-2.0-flash" {
		t.Error("expected unmodeled provider fields to survive in Raw")
	}
}

func TestClient_TextWithoutCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"candidates": []interface{}{}})
	}))
	defer srv.Close()

	client := New(&Config{APIKey: "test-key", BaseURL: srv.URL})

	result, err := client.GenerateContent(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Text() != "" {
		t.Errorf("expected empty text, got %q", result.Text())
	}
}

func TestClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{
				"code":    429,
				"message": "Resource has been exhausted",
			},
		})
	}))
	defer srv.Close()

	client := New(&Config{APIKey: "test-key", BaseURL: srv.URL})

	_, err := client.GenerateContent(context.Background(), "hello")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("unexpected status %d", apiErr.StatusCode)
	}
	if apiErr.Message != "Resource has been exhausted" {
		t.Errorf("unexpected message %q", apiErr.Message)
	}
}

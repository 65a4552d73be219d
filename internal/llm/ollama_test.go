package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ppiankov/qclassify/internal/model"
)

func TestOllamaProvider_Classify_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("Expected path /api/generate, got %s", r.URL.Path)
		}

		var req ollamaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		if req.Format != "json" {
			t.Errorf("Expected json format, got %q", req.Format)
		}
		if req.Stream {
			t.Error("Expected non-streaming request")
		}
		if req.Options.NumPredict != 256 {
			t.Errorf("Expected default num_predict 256, got %d", req.Options.NumPredict)
		}

		resp := ollamaResponse{
			Model:    "llama3.1",
			Response: `{"category": "factual", "confidence": 0.9, "reasoning": "historical fact"}`,
			Done:     true,
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	provider, err := NewOllamaProvider(Config{
		BaseURL: server.URL,
		Model:   "llama3.1",
		Timeout: 5,
	})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	verdict, err := provider.Classify(context.Background(), "Who was the first president of the United States?")
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}

	if verdict.Category != model.CategoryFactual {
		t.Errorf("Expected factual, got %s", verdict.Category)
	}
	if verdict.Reasoning != "historical fact" {
		t.Errorf("Unexpected reasoning: %q", verdict.Reasoning)
	}
	if verdict.Model != "llama3.1" {
		t.Errorf("Unexpected model: %q", verdict.Model)
	}
}

func TestOllamaProvider_Classify_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": "model 'llama3.1' not found"}`))
	}))
	defer server.Close()

	provider, err := NewOllamaProvider(Config{BaseURL: server.URL, Model: "llama3.1", Timeout: 5})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	_, err = provider.Classify(context.Background(), "Who wrote Hamlet?")
	var unavailable *ErrProviderUnavailable
	if !errors.As(err, &unavailable) {
		t.Fatalf("Expected ErrProviderUnavailable, got %T: %v", err, err)
	}
	if unavailable.Provider != "ollama" {
		t.Errorf("Expected provider ollama, got %s", unavailable.Provider)
	}
}

func TestOllamaProvider_Classify_InvalidPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(ollamaResponse{
			Model:    "llama3.1",
			Response: `{"confidence": 0.9}`,
			Done:     true,
		})
	}))
	defer server.Close()

	provider, err := NewOllamaProvider(Config{BaseURL: server.URL, Model: "llama3.1", Timeout: 5})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	_, err = provider.Classify(context.Background(), "Who wrote Hamlet?")
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("Expected ErrInvalidResponse, got %T: %v", err, err)
	}
}

func TestOllamaProvider_Classify_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(3 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer server.Close()

	provider, err := NewOllamaProvider(Config{BaseURL: server.URL, Model: "llama3.1", Timeout: 1})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	start := time.Now()
	_, err = provider.Classify(context.Background(), "Who wrote Hamlet?")
	if err == nil {
		t.Fatal("Expected timeout error")
	}
	var unavailable *ErrProviderUnavailable
	if !errors.As(err, &unavailable) {
		t.Errorf("Expected ErrProviderUnavailable, got %T: %v", err, err)
	}
	if time.Since(start) > 2500*time.Millisecond {
		t.Errorf("Timeout not applied, took %v", time.Since(start))
	}
}

func TestOllamaProvider_RequiresModel(t *testing.T) {
	if _, err := NewOllamaProvider(Config{}); err == nil {
		t.Error("Expected error for missing model")
	}
}

func TestOllamaProvider_IsAvailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"models": []}`))
	}))
	defer server.Close()

	provider, err := NewOllamaProvider(Config{BaseURL: server.URL + "/", Model: "llama3.1"})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}
	if !provider.IsAvailable(context.Background()) {
		t.Error("Expected provider to be available")
	}
}

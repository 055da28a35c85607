package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaClient_Complete(t *testing.T) {
	t.Run("sends non-streaming cold-context request", func(t *testing.T) {
		var got ollamaGenerateRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/generate", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			json.NewEncoder(w).Encode(ollamaGenerateResponse{Response: "  generated text\n", Done: true})
		}))
		defer server.Close()

		client := NewOllamaClientWithConfig(OllamaConfig{Endpoint: server.URL, Model: "llama3.1:8b"})
		out, err := client.Complete(context.Background(), "hello")
		require.NoError(t, err)

		assert.Equal(t, "generated text", out)
		assert.Equal(t, "llama3.1:8b", got.Model)
		assert.Equal(t, "hello", got.Prompt)
		assert.False(t, got.Stream)
		assert.Equal(t, 0, got.KeepAlive)
	})

	t.Run("surfaces server error field", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(ollamaGenerateResponse{Error: "model not found"})
		}))
		defer server.Close()

		client := NewOllamaClientWithConfig(OllamaConfig{Endpoint: server.URL})
		_, err := client.Complete(context.Background(), "hello")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "model not found")
	})

	t.Run("non-200 status is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewOllamaClientWithConfig(OllamaConfig{Endpoint: server.URL})
		_, err := client.Complete(context.Background(), "hello")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 500")
	})

	t.Run("system prompt is forwarded", func(t *testing.T) {
		var got ollamaGenerateRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			json.NewEncoder(w).Encode(ollamaGenerateResponse{Response: "ok"})
		}))
		defer server.Close()

		client := NewOllamaClientWithConfig(OllamaConfig{Endpoint: server.URL})
		_, err := client.CompleteWithSystem(context.Background(), "be terse", "hi")
		require.NoError(t, err)
		assert.Equal(t, "be terse", got.System)
	})
}

func TestAnthropicClient_Complete(t *testing.T) {
	t.Run("parses text content blocks", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/messages", r.URL.Path)
			assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
			w.Write([]byte(`{"content":[{"type":"text","text":"part one "},{"type":"text","text":"part two"}]}`))
		}))
		defer server.Close()

		client := NewAnthropicClientWithConfig(AnthropicConfig{APIKey: "test-key", BaseURL: server.URL, Model: "m"})
		out, err := client.Complete(context.Background(), "hello")
		require.NoError(t, err)
		assert.Equal(t, "part one part two", out)
	})

	t.Run("missing API key fails fast", func(t *testing.T) {
		client := NewAnthropicClientWithConfig(AnthropicConfig{BaseURL: "http://unused"})
		_, err := client.Complete(context.Background(), "hello")
		require.Error(t, err)
	})

	t.Run("API error payload is surfaced", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"error":{"type":"overloaded_error","message":"overloaded"}}`))
		}))
		defer server.Close()

		client := NewAnthropicClientWithConfig(AnthropicConfig{APIKey: "k", BaseURL: server.URL})
		_, err := client.Complete(context.Background(), "hello")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "overloaded")
	})
}

func TestDetectProvider(t *testing.T) {
	t.Run("anthropic key wins", func(t *testing.T) {
		t.Setenv("ANTHROPIC_API_KEY", "ant")
		t.Setenv("GEMINI_API_KEY", "gem")

		opts := DetectProvider()
		assert.Equal(t, ProviderAnthropic, opts.Provider)
		assert.Equal(t, "ant", opts.APIKey)
	})

	t.Run("gemini key when no anthropic", func(t *testing.T) {
		t.Setenv("ANTHROPIC_API_KEY", "")
		t.Setenv("GEMINI_API_KEY", "gem")

		opts := DetectProvider()
		assert.Equal(t, ProviderGemini, opts.Provider)
	})

	t.Run("falls back to local ollama", func(t *testing.T) {
		t.Setenv("ANTHROPIC_API_KEY", "")
		t.Setenv("GEMINI_API_KEY", "")
		t.Setenv("OLLAMA_HOST", "http://box:11434")

		opts := DetectProvider()
		assert.Equal(t, ProviderOllama, opts.Provider)
		assert.Equal(t, "http://box:11434", opts.Endpoint)
	})
}

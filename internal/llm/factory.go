package llm

import (
	"context"
	"fmt"
	"os"
	"time"
)

// Provider identifies a generation backend.
type Provider string

const (
	ProviderOllama    Provider = "ollama"
	ProviderAnthropic Provider = "anthropic"
	ProviderGemini    Provider = "gemini"
)

// Options holds the resolved provider settings used to build a client.
type Options struct {
	Provider Provider
	Model    string
	APIKey   string
	Endpoint string // Ollama only
	Timeout  time.Duration
}

// DetectProvider resolves provider options from environment variables.
// Priority: ANTHROPIC_API_KEY > GEMINI_API_KEY > local Ollama. Ollama is the
// keyless fallback so a bare install still works against a local server.
func DetectProvider() Options {
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		return Options{Provider: ProviderAnthropic, APIKey: key}
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return Options{Provider: ProviderGemini, APIKey: key}
	}
	return Options{
		Provider: ProviderOllama,
		Endpoint: os.Getenv("OLLAMA_HOST"),
	}
}

// NewClient creates a client from resolved options. An empty provider falls
// back to environment detection.
func NewClient(ctx context.Context, opts Options) (Client, error) {
	if opts.Provider == "" {
		detected := DetectProvider()
		detected.Model = opts.Model
		if opts.Timeout != 0 {
			detected.Timeout = opts.Timeout
		}
		opts = detected
	}

	switch opts.Provider {
	case ProviderOllama:
		config := OllamaConfig{
			Endpoint: opts.Endpoint,
			Model:    opts.Model,
			Timeout:  opts.Timeout,
		}
		return NewOllamaClientWithConfig(config), nil

	case ProviderAnthropic:
		config := DefaultAnthropicConfig(opts.APIKey)
		if opts.Model != "" {
			config.Model = opts.Model
		}
		if opts.Timeout != 0 {
			config.Timeout = opts.Timeout
		}
		return NewAnthropicClientWithConfig(config), nil

	case ProviderGemini:
		return NewGeminiClient(ctx, opts.APIKey, opts.Model)

	default:
		return nil, fmt.Errorf("unknown provider: %s (valid: ollama, anthropic, gemini)", opts.Provider)
	}
}

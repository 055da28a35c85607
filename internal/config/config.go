// Package config loads engine configuration from YAML with environment
// overrides. A missing config file is not an error; defaults apply.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full engine configuration.
type Config struct {
	LLM        LLMConfig        `yaml:"llm"`
	Patterns   PatternsConfig   `yaml:"patterns"`
	Output     OutputConfig     `yaml:"output"`
	Generation GenerationConfig `yaml:"generation"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// LLMConfig selects and tunes the generation provider.
type LLMConfig struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key"`
	Endpoint string `yaml:"endpoint"`
	Timeout  string `yaml:"timeout"`
}

// PatternsConfig locates the pattern library.
type PatternsConfig struct {
	Root      string `yaml:"root"`
	Extension string `yaml:"extension"`
}

// OutputConfig locates generated artifacts.
type OutputConfig struct {
	Root string `yaml:"root"`
}

// GenerationConfig tunes pipeline execution.
type GenerationConfig struct {
	// Parallelism bounds concurrent resources. Steps within one resource
	// are always sequential.
	Parallelism int `yaml:"parallelism"`
}

// LoggingConfig tunes the logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Timeout: "300s",
		},
		Patterns: PatternsConfig{
			Root:      "patterns",
			Extension: ".js",
		},
		Output: OutputConfig{
			Root: "generated",
		},
		Generation: GenerationConfig{
			Parallelism: 2,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from path, falling back to defaults when the
// file does not exist, then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides fills provider credentials from the environment. An
// explicit provider in the file wins; otherwise the first available key
// decides, in the order anthropic, gemini, ollama.
func (c *Config) applyEnvOverrides() {
	anthropicKey := os.Getenv("ANTHROPIC_API_KEY")
	geminiKey := os.Getenv("GEMINI_API_KEY")

	if c.LLM.Provider == "" {
		switch {
		case anthropicKey != "":
			c.LLM.Provider = "anthropic"
		case geminiKey != "":
			c.LLM.Provider = "gemini"
		default:
			c.LLM.Provider = "ollama"
		}
	}

	if c.LLM.APIKey == "" {
		switch c.LLM.Provider {
		case "anthropic":
			c.LLM.APIKey = anthropicKey
		case "gemini":
			c.LLM.APIKey = geminiKey
		}
	}

	if c.LLM.Endpoint == "" {
		c.LLM.Endpoint = os.Getenv("OLLAMA_HOST")
	}
}

// LLMTimeout parses the configured timeout, falling back to the default on
// a malformed value.
func (c *Config) LLMTimeout() time.Duration {
	d, err := time.ParseDuration(c.LLM.Timeout)
	if err != nil || d <= 0 {
		return 300 * time.Second
	}
	return d
}

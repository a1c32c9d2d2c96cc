// Package llm integrates large language models into the journal. Two
// providers are supported: a local Ollama runtime and Google Gemini.
// Providers are probed for availability and chained so that a failing
// call falls back to the next configured one.
package llm

import (
	"context"
	"os"
	"time"
)

// Provider generates text from a prompt.
type Provider interface {
	// Name identifies the provider in reports ("ollama", "gemini").
	Name() string
	// Available returns nil when the provider is configured and reachable.
	Available(ctx context.Context) error
	// Generate returns the model's response to the prompt.
	Generate(ctx context.Context, prompt string) (string, error)
}

// Config holds the provider settings, read from the environment
// (a .env file is loaded by the command layer).
type Config struct {
	OllamaHost   string
	OllamaModel  string
	GeminiModel  string
	GeminiAPIKey string

	Temperature float32
	MaxTokens   int32
	Timeout     time.Duration
}

// ConfigFromEnv builds a Config from environment variables, with the
// same defaults as the original experiment.
func ConfigFromEnv() Config {
	return Config{
		OllamaHost:   envOr("OLLAMA_HOST", "http://localhost:11434"),
		OllamaModel:  envOr("OLLAMA_MODEL", "llama2"),
		GeminiModel:  envOr("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiAPIKey: os.Getenv("GOOGLE_API_KEY"),
		Temperature:  0.7,
		MaxTokens:    2000,
		Timeout:      60 * time.Second,
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Gemini talks to the Google Gemini API through the genai SDK.
type Gemini struct {
	apiKey string
	model  string
	config *genai.GenerateContentConfig
	client *genai.Client
}

// NewGemini creates a Gemini provider from the config. The client is
// created lazily on the first call so that a missing key only fails the
// AI features, not the whole command.
func NewGemini(cfg Config) *Gemini {
	return &Gemini{
		apiKey: cfg.GeminiAPIKey,
		model:  cfg.GeminiModel,
		config: &genai.GenerateContentConfig{
			Temperature:     genai.Ptr(cfg.Temperature),
			MaxOutputTokens: cfg.MaxTokens,
		},
	}
}

func (g *Gemini) Name() string { return "gemini" }

// Available checks that an API key is configured.
func (g *Gemini) Available(ctx context.Context) error {
	if g.apiKey == "" {
		return fmt.Errorf("GOOGLE_API_KEY is not set")
	}
	return nil
}

func (g *Gemini) start(ctx context.Context) error {
	if g.client != nil {
		return nil
	}
	if err := g.Available(ctx); err != nil {
		return err
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return fmt.Errorf("cannot create gemini client: %w", err)
	}
	g.client = client
	return nil
}

// Generate sends the prompt and returns the first candidate's text.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	if err := g.start(ctx); err != nil {
		return "", err
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), g.config)
	if err != nil {
		return "", fmt.Errorf("gemini api error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from gemini")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

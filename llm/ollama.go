package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// Ollama talks to a local Ollama runtime over its HTTP API.
type Ollama struct {
	host        string
	model       string
	temperature float32
	maxTokens   int32
	client      *http.Client
}

// NewOllama creates an Ollama provider from the config.
func NewOllama(cfg Config) *Ollama {
	return &Ollama{
		host:        strings.TrimSuffix(cfg.OllamaHost, "/"),
		model:       cfg.OllamaModel,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		client:      &http.Client{Timeout: cfg.Timeout},
	}
}

func (o *Ollama) Name() string { return "ollama" }

// Available probes the runtime and checks that the configured model is
// installed.
func (o *Ollama) Available(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.host+"/api/tags", nil)
	if err != nil {
		return err
	}
	resp, err := o.client.Do(req)
	if err != nil {
		return fmt.Errorf("ollama not accessible on %s: %w", o.host, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama not accessible on %s: %s", o.host, resp.Status)
	}

	models, err := installedModels(resp.Body)
	if err != nil {
		return fmt.Errorf("cannot list ollama models: %w", err)
	}
	for _, name := range models {
		// Models are reported as "name:tag".
		if name == o.model || strings.HasPrefix(name, o.model+":") {
			return nil
		}
	}
	return fmt.Errorf("model %q is not installed in ollama (have %s)", o.model, strings.Join(models, ", "))
}

// installedModels extracts the model names from the /api/tags payload.
func installedModels(r io.Reader) ([]string, error) {
	var jobj any
	if err := json.NewDecoder(r).Decode(&jobj); err != nil {
		return nil, err
	}
	jval, err := jsonpath.Get("$.models[*].name", jobj)
	if err != nil {
		return nil, err
	}
	// because jsonpath is never clear about whether it returns a list of
	// answers or a single one:
	switch v := jval.(type) {
	case []any:
		names := make([]string, 0, len(v))
		for _, name := range v {
			if s, ok := name.(string); ok {
				names = append(names, s)
			}
		}
		return names, nil
	case string:
		return []string{v}, nil
	default:
		return nil, fmt.Errorf("unexpected tags payload type %T", jval)
	}
}

// Generate calls the /api/generate endpoint in non-streaming mode.
func (o *Ollama) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(map[string]any{
		"model":  o.model,
		"prompt": prompt,
		"stream": false,
		"options": map[string]any{
			"temperature": o.temperature,
			"num_predict": o.maxTokens,
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.host+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama api error: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama api error: %s", resp.Status)
	}

	var payload struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("invalid ollama response: %w", err)
	}
	return payload.Response, nil
}

package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
)

// preference is the provider order used by auto-selection: the local
// runtime first, then the cloud.
var preference = []string{"ollama", "gemini"}

// New returns the provider for the given name. The name "auto" selects
// among the available providers in preference order and chains them so
// that a failing call falls back to the next one.
func New(ctx context.Context, name string, cfg Config) (Provider, error) {
	providers := map[string]Provider{
		"ollama": NewOllama(cfg),
		"gemini": NewGemini(cfg),
	}

	if name != "auto" {
		p, ok := providers[name]
		if !ok {
			return nil, fmt.Errorf("unknown provider %q (want ollama, gemini, or auto)", name)
		}
		if err := p.Available(ctx); err != nil {
			return nil, err
		}
		return p, nil
	}

	var available []Provider
	for _, n := range preference {
		p := providers[n]
		if err := p.Available(ctx); err != nil {
			log.Printf("provider %s unavailable: %v", n, err)
			continue
		}
		available = append(available, p)
	}
	if len(available) == 0 {
		return nil, fmt.Errorf("no AI provider available: configure Ollama or set GOOGLE_API_KEY")
	}
	return &Chain{providers: available}, nil
}

// Chain tries each provider in order and falls back on error.
type Chain struct {
	providers []Provider
	used      string
}

// Name returns the name of the provider that answered the last call, or
// "auto" before any call.
func (c *Chain) Name() string {
	if c.used == "" {
		return "auto"
	}
	return c.used
}

// Available returns nil when at least one provider in the chain is available.
func (c *Chain) Available(ctx context.Context) error {
	var errs error
	for _, p := range c.providers {
		if err := p.Available(ctx); err == nil {
			return nil
		} else {
			errs = errors.Join(errs, err)
		}
	}
	return errs
}

// Generate asks each provider in turn until one answers.
func (c *Chain) Generate(ctx context.Context, prompt string) (string, error) {
	var errs error
	for _, p := range c.providers {
		text, err := p.Generate(ctx, prompt)
		if err == nil {
			c.used = p.Name()
			return text, nil
		}
		log.Printf("provider %s failed, trying next: %v", p.Name(), err)
		errs = errors.Join(errs, err)
	}
	return "", fmt.Errorf("all providers failed: %w", errs)
}

// Statuses probes every known provider and reports availability, for
// the status command.
func Statuses(ctx context.Context, cfg Config) (statuses []Status, preferred string) {
	for _, n := range preference {
		var p Provider
		switch n {
		case "ollama":
			p = NewOllama(cfg)
		case "gemini":
			p = NewGemini(cfg)
		}
		s := Status{Name: n, Available: true}
		if err := p.Available(ctx); err != nil {
			s.Available = false
			s.Detail = err.Error()
		} else if preferred == "" {
			preferred = n
		}
		statuses = append(statuses, s)
	}
	return statuses, preferred
}

// Status is the availability of one provider.
type Status struct {
	Name      string
	Available bool
	Detail    string
}

package llm

import (
	"context"
	"errors"
	"testing"
)

// stubProvider scripts the availability and answer of a provider.
type stubProvider struct {
	name      string
	available error
	answer    string
	fail      error
	calls     int
}

func (s *stubProvider) Name() string                        { return s.name }
func (s *stubProvider) Available(ctx context.Context) error { return s.available }
func (s *stubProvider) Generate(ctx context.Context, prompt string) (string, error) {
	s.calls++
	if s.fail != nil {
		return "", s.fail
	}
	return s.answer, nil
}

func TestChainFallback(t *testing.T) {
	broken := &stubProvider{name: "broken", fail: errors.New("boom")}
	working := &stubProvider{name: "working", answer: "fine"}
	chain := &Chain{providers: []Provider{broken, working}}

	if got := chain.Name(); got != "auto" {
		t.Errorf("name before any call = %q, want auto", got)
	}

	text, err := chain.Generate(context.Background(), "hello")
	if err != nil {
		t.Fatalf("chain should have fallen back: %v", err)
	}
	if text != "fine" {
		t.Errorf("answer = %q, want %q", text, "fine")
	}
	if broken.calls != 1 || working.calls != 1 {
		t.Errorf("calls = %d, %d, want 1, 1", broken.calls, working.calls)
	}
	if got := chain.Name(); got != "working" {
		t.Errorf("name after the call = %q, want the provider that answered", got)
	}
}

func TestChainAllFail(t *testing.T) {
	chain := &Chain{providers: []Provider{
		&stubProvider{name: "a", fail: errors.New("a down")},
		&stubProvider{name: "b", fail: errors.New("b down")},
	}}
	if _, err := chain.Generate(context.Background(), "hello"); err == nil {
		t.Error("chain should fail when every provider fails")
	}
}

func TestChainAvailable(t *testing.T) {
	chain := &Chain{providers: []Provider{
		&stubProvider{name: "a", available: errors.New("a down")},
		&stubProvider{name: "b"},
	}}
	if err := chain.Available(context.Background()); err != nil {
		t.Errorf("chain with one working provider should be available: %v", err)
	}

	chain = &Chain{providers: []Provider{
		&stubProvider{name: "a", available: errors.New("a down")},
	}}
	if err := chain.Available(context.Background()); err == nil {
		t.Error("chain with no working provider should not be available")
	}
}

func TestNewUnknownProvider(t *testing.T) {
	if _, err := New(context.Background(), "skynet", Config{}); err == nil {
		t.Error("unknown provider name should be rejected")
	}
}

package microcap

import (
	"context"
	"fmt"
	"testing"
)

// stubQuotes is a QuoteProvider backed by a fixed quote map.
type stubQuotes map[string]Quote

func (s stubQuotes) DailyQuote(ctx context.Context, ticker string) (Quote, error) {
	q, ok := s[ticker]
	if !ok {
		return Quote{}, fmt.Errorf("no quote for %s", ticker)
	}
	return q, nil
}

func (s stubQuotes) History(ctx context.Context, ticker string, r Range) ([]Candle, error) {
	q, ok := s[ticker]
	if !ok {
		return nil, fmt.Errorf("no history for %s", ticker)
	}
	return []Candle{{Date: q.Date, Close: q.Price}}, nil
}

func TestProviderChainFallback(t *testing.T) {
	empty := stubQuotes{}
	full := stubQuotes{"ABEO": {Ticker: "ABEO", Price: M(6)}}
	chain := ProviderChain{empty, full}

	q, err := chain.DailyQuote(context.Background(), "ABEO")
	if err != nil {
		t.Fatalf("chain should have fallen back: %v", err)
	}
	if !q.Price.Equal(M(6)) {
		t.Errorf("price = %s, want %s", q.Price, M(6))
	}

	if _, err := chain.DailyQuote(context.Background(), "CASP"); err == nil {
		t.Error("chain should fail when every provider fails")
	}
	if _, err := chain.History(context.Background(), "CASP", Range{}); err == nil {
		t.Error("history should fail when every provider fails")
	}
}

func TestFetchQuotesPartialFailure(t *testing.T) {
	provider := stubQuotes{"ABEO": {Ticker: "ABEO", Price: M(6)}}
	quotes, err := FetchQuotes(context.Background(), provider, []string{"ABEO", "CASP"})
	if err == nil {
		t.Error("missing CASP should be reported")
	}
	if len(quotes) != 1 {
		t.Fatalf("got %d quotes, want the ABEO one", len(quotes))
	}
	if _, ok := quotes["ABEO"]; !ok {
		t.Error("ABEO quote missing from the batch")
	}
}

func TestChangePercent(t *testing.T) {
	q := Quote{Price: M(110), PrevPrice: M(100)}
	if got := q.ChangePercent(); !got.Equal(10) {
		t.Errorf("change = %v, want 10%%", got)
	}
	if got := (Quote{Price: M(110)}).ChangePercent(); got != 0 {
		t.Errorf("change without previous close = %v, want 0", got)
	}
}

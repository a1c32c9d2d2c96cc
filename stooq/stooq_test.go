package stooq

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/etnz/microcap"
)

func TestSymbol(t *testing.T) {
	cases := map[string]string{
		"ABEO": "abeo.us",
		"IWO":  "iwo.us",
		"^RUT": "^rut",
		"^SPX": "^spx",
		"^VIX": "^vix",
	}
	for ticker, want := range cases {
		if got := symbol(ticker); got != want {
			t.Errorf("symbol(%q) = %q, want %q", ticker, got, want)
		}
	}
}

func TestCompactDate(t *testing.T) {
	if got := compactDate(microcap.NewDate(2025, 8, 5)); got != "20250805" {
		t.Errorf("compactDate = %q, want 20250805", got)
	}
}

// serve replaces the endpoint with a local server for the test.
func serve(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	server := httptest.NewServer(handler)
	old := BaseURL
	BaseURL = server.URL + "/q/d/l/"
	t.Cleanup(func() {
		BaseURL = old
		server.Close()
	})
}

func TestDailyQuote(t *testing.T) {
	serve(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("s"); got != "abeo.us" {
			t.Errorf("requested symbol %q, want abeo.us", got)
		}
		w.Write([]byte(`Date,Open,High,Low,Close,Volume
2025-08-21,5.50,5.80,5.45,5.77,120000
2025-08-22,5.77,6.10,5.70,6.02,95000
`))
	})

	q, err := NewClient().DailyQuote(context.Background(), "ABEO")
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	if q.Ticker != "ABEO" {
		t.Errorf("ticker = %q", q.Ticker)
	}
	if !q.Price.Equal(microcap.M(6.02)) {
		t.Errorf("price = %s, want %s", q.Price, microcap.M(6.02))
	}
	if !q.PrevPrice.Equal(microcap.M(5.77)) {
		t.Errorf("previous price = %s, want %s", q.PrevPrice, microcap.M(5.77))
	}
	if q.Date != microcap.NewDate(2025, 8, 22) {
		t.Errorf("date = %s", q.Date)
	}
}

func TestNoData(t *testing.T) {
	serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("No data\n"))
	})
	if _, err := NewClient().DailyQuote(context.Background(), "NOPE"); err == nil {
		t.Error("an unknown ticker should fail, not return an empty quote")
	}
}

func TestHistory(t *testing.T) {
	serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`Date,Open,High,Low,Close,Volume
2025-08-21,100,101,99,100.5,1000
2025-08-22,100.5,102,100,101.2,1200
2025-08-25,101.2,103,101,102.9,900
`))
	})

	r := microcap.NewRange(microcap.NewDate(2025, 8, 21), microcap.NewDate(2025, 8, 25))
	candles, err := NewClient().History(context.Background(), "IWO", r)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(candles) != 3 {
		t.Fatalf("got %d candles, want 3", len(candles))
	}
	if !candles[0].Close.Equal(microcap.M(100.5)) || !candles[2].Close.Equal(microcap.M(102.9)) {
		t.Errorf("candles = %+v", candles)
	}
}

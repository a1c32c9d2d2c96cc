package eodhd

import (
	"encoding/json"
	"testing"

	"github.com/etnz/microcap"
)

func TestSymbol(t *testing.T) {
	cases := map[string]string{
		"ABEO":  "ABEO.US",
		"IWO":   "IWO.US",
		"XBI":   "XBI.US",
		"^RUT":  "RUT.INDX",
		"^SPX":  "GSPC.INDX",
		"^GSPC": "GSPC.INDX",
		"^VIX":  "VIX.INDX",
	}
	for ticker, want := range cases {
		if got := symbol(ticker); got != want {
			t.Errorf("symbol(%q) = %q, want %q", ticker, got, want)
		}
	}
}

func TestCandlePayload(t *testing.T) {
	payload := `[
		{"date":"2025-08-21","open":5.5,"high":5.8,"low":5.45,"close":5.77,"volume":120000},
		{"date":"2025-08-22","open":5.77,"high":6.1,"low":5.7,"close":6.02,"volume":95000}
	]`
	var candles []candle
	if err := json.Unmarshal([]byte(payload), &candles); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(candles) != 2 {
		t.Fatalf("got %d candles, want 2", len(candles))
	}
	last := candles[1]
	if last.Date != microcap.NewDate(2025, 8, 22) {
		t.Errorf("date = %s", last.Date)
	}
	if !microcap.M(last.Close).Equal(microcap.M(6.02)) {
		t.Errorf("close = %s", last.Close)
	}
	if last.Volume != 95000 {
		t.Errorf("volume = %d", last.Volume)
	}
}

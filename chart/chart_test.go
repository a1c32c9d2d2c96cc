package chart

import (
	"bytes"
	"testing"

	"github.com/etnz/microcap"
)

func points(values ...float64) []microcap.EquityPoint {
	pts := make([]microcap.EquityPoint, len(values))
	for i, v := range values {
		pts[i] = microcap.EquityPoint{Date: microcap.NewDate(2025, 8, 1+i), Equity: microcap.M(v)}
	}
	return pts
}

func TestRender(t *testing.T) {
	png, err := Render(Comparison{
		Title:         "$100 invested: portfolio vs ^SPX",
		PortfolioName: "Portfolio",
		BenchmarkName: "^SPX",
		Portfolio:     points(100, 102.5, 99.8, 105),
		Benchmark:     points(100, 101, 101.5, 102),
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	// PNG magic number.
	if !bytes.HasPrefix(png, []byte("\x89PNG\r\n\x1a\n")) {
		t.Errorf("output does not look like a PNG, starts with % x", png[:8])
	}
}

func TestRenderNeedsTwoPoints(t *testing.T) {
	if _, err := Render(Comparison{Portfolio: points(100), Benchmark: points(100, 101)}); err == nil {
		t.Error("a single portfolio point should be rejected")
	}
	if _, err := Render(Comparison{Portfolio: points(100, 101), Benchmark: points(100)}); err == nil {
		t.Error("a single benchmark point should be rejected")
	}
}

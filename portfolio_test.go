package microcap

import (
	"bytes"
	"strings"
	"testing"
)

func TestBuyThenSell(t *testing.T) {
	p := NewPortfolio(M(200))

	if err := p.Buy("ABEO", Q(10), M(5.77), M(4.9)); err != nil {
		t.Fatalf("buy failed: %v", err)
	}
	if got, want := p.Cash(), M(142.3); !got.Equal(want) {
		t.Errorf("cash after buy = %s, want %s", got, want)
	}

	// A second buy averages the price over all shares.
	if err := p.Buy("ABEO", Q(10), M(6.23), Money{}); err != nil {
		t.Fatalf("second buy failed: %v", err)
	}
	pos := p.Position("ABEO")
	if pos == nil {
		t.Fatal("position ABEO not found")
	}
	if got, want := pos.Shares, Q(20); !got.Equal(want) {
		t.Errorf("shares = %s, want %s", got, want)
	}
	if got, want := pos.BuyPrice, M(6); !got.Equal(want) {
		t.Errorf("average buy price = %s, want %s", got, want)
	}
	if got, want := pos.StopLoss, M(4.9); !got.Equal(want) {
		t.Errorf("stop loss = %s, want %s (a zero stop must not override)", got, want)
	}

	pnl, err := p.Sell("ABEO", Q(20), M(6.5))
	if err != nil {
		t.Fatalf("sell failed: %v", err)
	}
	if want := M(10); !pnl.Equal(want) {
		t.Errorf("realized pnl = %s, want %s", pnl, want)
	}
	if got, want := p.Cash(), M(210); !got.Equal(want) {
		t.Errorf("cash after sell = %s, want %s", got, want)
	}
	if p.Len() != 0 {
		t.Errorf("portfolio should be empty after selling everything, has %d positions", p.Len())
	}
}

func TestBuyRejections(t *testing.T) {
	p := NewPortfolio(M(100))
	cases := []struct {
		name   string
		ticker string
		shares Quantity
		price  Money
	}{
		{"total pseudo ticker", TotalTicker, Q(1), M(1)},
		{"empty ticker", "", Q(1), M(1)},
		{"zero shares", "ABEO", Q(0), M(1)},
		{"negative price", "ABEO", Q(1), M(-1)},
		{"cost exceeds cash", "ABEO", Q(100), M(2)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if err := p.Buy(c.ticker, c.shares, c.price, Money{}); err == nil {
				t.Errorf("buy %q should have failed", c.ticker)
			}
		})
	}
}

func TestSellRejections(t *testing.T) {
	p := NewPortfolio(M(100))
	if err := p.Buy("ABEO", Q(10), M(5), Money{}); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Sell("CASP", Q(1), M(1)); err == nil {
		t.Error("selling a ticker not held should fail")
	}
	if _, err := p.Sell("ABEO", Q(11), M(1)); err == nil {
		t.Error("selling more shares than held should fail")
	}
	if _, err := p.Sell("ABEO", Q(0), M(1)); err == nil {
		t.Error("selling zero shares should fail")
	}
}

func TestPortfolioRoundtrip(t *testing.T) {
	p := NewPortfolio(M(100))
	if err := p.Buy("ABEO", Q(4), M(5.77), M(4.9)); err != nil {
		t.Fatal(err)
	}
	if err := p.Buy("CASP", Q(10), M(2.5), M(2)); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := EncodePortfolio(&buf, p); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "ticker,shares,buy_price,stop_loss\n") {
		t.Errorf("unexpected header: %q", strings.SplitN(buf.String(), "\n", 2)[0])
	}

	q, err := DecodePortfolio(&buf)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if q.Len() != 2 {
		t.Fatalf("decoded %d positions, want 2", q.Len())
	}
	pos := q.Position("ABEO")
	if pos == nil {
		t.Fatal("position ABEO not found after roundtrip")
	}
	if !pos.Shares.Equal(Q(4)) || !pos.BuyPrice.Equal(M(5.77)) || !pos.StopLoss.Equal(M(4.9)) {
		t.Errorf("position ABEO = %+v after roundtrip", pos)
	}
}

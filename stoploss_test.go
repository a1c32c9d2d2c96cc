package microcap

import "testing"

func TestStopTriggered(t *testing.T) {
	cases := []struct {
		name  string
		stop  Money
		price Money
		want  bool
	}{
		{"zero stop never triggers", Money{}, M(0.01), false},
		{"price above stop", M(4.9), M(5), false},
		{"price exactly on stop", M(4.9), M(4.9), true},
		{"price below stop", M(4.9), M(4.5), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			pos := Position{Ticker: "ABEO", Shares: Q(10), BuyPrice: M(5.77), StopLoss: c.stop}
			if got := pos.StopTriggered(c.price); got != c.want {
				t.Errorf("StopTriggered(%s) with stop %s = %v, want %v", c.price, c.stop, got, c.want)
			}
		})
	}
}

func TestCheckStopLosses(t *testing.T) {
	p := NewPortfolio(M(100))
	if err := p.Buy("ABEO", Q(4), M(5.77), M(4.9)); err != nil {
		t.Fatal(err)
	}
	if err := p.Buy("CASP", Q(10), M(2.5), M(2)); err != nil {
		t.Fatal(err)
	}

	quotes := map[string]Quote{
		"ABEO": {Ticker: "ABEO", Price: M(6)},
		"CASP": {Ticker: "CASP", Price: M(1.8)},
	}
	triggers := CheckStopLosses(p, quotes)
	if len(triggers) != 1 {
		t.Fatalf("got %d triggers, want 1", len(triggers))
	}
	tr := triggers[0]
	if tr.Ticker != "CASP" || !tr.Shares.Equal(Q(10)) || !tr.CurrentPrice.Equal(M(1.8)) {
		t.Errorf("trigger = %+v", tr)
	}

	// A position with no quote is skipped, not triggered.
	delete(quotes, "CASP")
	if triggers := CheckStopLosses(p, quotes); len(triggers) != 0 {
		t.Errorf("got %d triggers without a quote, want 0", len(triggers))
	}
}

package microcap

import (
	"context"
	"testing"
)

func TestRunDaily(t *testing.T) {
	pf := NewPortfolio(M(30))
	if err := pf.Buy("ABEO", Q(2), M(5.77), M(4.9)); err != nil {
		t.Fatal(err)
	}
	if err := pf.Buy("CASP", Q(5), M(2), M(2.5)); err != nil {
		t.Fatal(err)
	}
	journal := NewJournal()
	tradeLog := NewTradeLog()

	provider := stubQuotes{
		"ABEO": {Ticker: "ABEO", Price: M(6), PrevPrice: M(5.8)},
		"CASP": {Ticker: "CASP", Price: M(2.4), PrevPrice: M(2.6)},
		"^RUT": {Ticker: "^RUT", Price: M(2295.42), PrevPrice: M(2290)},
	}
	on := day(25)
	report, err := RunDaily(context.Background(), provider, pf, journal, tradeLog, on)
	if err != nil {
		t.Fatalf("daily run failed: %v", err)
	}

	// CASP closed at 2.40, at or below its 2.50 stop: sold in full.
	if pf.Position("CASP") != nil {
		t.Error("CASP should have been sold by its stop-loss")
	}
	if len(report.Triggers) != 1 || report.Triggers[0].Ticker != "CASP" {
		t.Errorf("triggers = %+v, want one for CASP", report.Triggers)
	}
	trades := tradeLog.Trades()
	if len(trades) != 1 {
		t.Fatalf("logged %d trades, want 1", len(trades))
	}
	if trades[0].Reason != ReasonStopLoss {
		t.Errorf("trade reason = %q, want %q", trades[0].Reason, ReasonStopLoss)
	}
	if want := M(2); !trades[0].PnL.Equal(want) {
		t.Errorf("trade pnl = %s, want %s", trades[0].PnL, want)
	}

	// Totals cover the remaining holdings only.
	if want := M(12); !report.TotalValue.Equal(want) {
		t.Errorf("total value = %s, want %s", report.TotalValue, want)
	}
	// Cash: 30 - 11.54 - 10 at buy time, plus 12 of sell proceeds.
	if want := M(20.46); !report.Cash.Equal(want) {
		t.Errorf("cash = %s, want %s", report.Cash, want)
	}
	if want := M(32.46); !report.Equity.Equal(want) {
		t.Errorf("equity = %s, want %s", report.Equity, want)
	}

	total, ok := journal.Total(on)
	if !ok {
		t.Fatal("no TOTAL row in the journal")
	}
	if !total.TotalEquity.Equal(report.Equity) {
		t.Errorf("journal equity = %s, report equity = %s", total.TotalEquity, report.Equity)
	}

	// Only the quoted benchmarks show up.
	if len(report.Benchmarks) != 1 || report.Benchmarks[0].Ticker != "^RUT" {
		t.Errorf("benchmarks = %+v, want ^RUT only", report.Benchmarks)
	}

	// Re-running the day must not duplicate journal rows.
	rows := len(journal.Rows())
	if _, err := RunDaily(context.Background(), provider, pf, journal, tradeLog, on); err != nil {
		t.Fatal(err)
	}
	// CASP is gone, so the re-run writes one row less.
	if got := len(journal.Rows()); got != rows-1 {
		t.Errorf("journal has %d rows after re-run, want %d", got, rows-1)
	}
}

func TestRunDailyNoData(t *testing.T) {
	pf := NewPortfolio(M(100))
	if err := pf.Buy("ABEO", Q(10), M(5.77), M(4.9)); err != nil {
		t.Fatal(err)
	}
	journal := NewJournal()

	report, err := RunDaily(context.Background(), stubQuotes{}, pf, journal, NewTradeLog(), day(25))
	if err != nil {
		t.Fatalf("daily run failed: %v", err)
	}
	if len(report.Positions) != 1 || report.Positions[0].Action != ActionNoData {
		t.Errorf("positions = %+v, want one NO DATA row", report.Positions)
	}
	// A position without a quote is excluded from the totals.
	if !report.TotalValue.IsZero() {
		t.Errorf("total value = %s, want 0", report.TotalValue)
	}
	if want := M(42.3); !report.Equity.Equal(want) {
		t.Errorf("equity = %s, want the cash balance %s", report.Equity, want)
	}
	if pf.Position("ABEO") == nil {
		t.Error("the position must survive a day without data")
	}
}

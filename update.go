package microcap

import (
	"context"
	"log"
)

// RunDaily processes one day of the experiment: it quotes every holding
// and the benchmark tickers, executes stop-loss sells, replaces the
// day's journal rows, and returns the daily report.
//
// The portfolio, journal, and trade log are updated in memory; the
// caller persists them. Quote failures do not abort the run: the
// affected positions get a NO DATA row and are excluded from totals.
func RunDaily(ctx context.Context, provider QuoteProvider, pf *Portfolio, journal *Journal, tradeLog *TradeLog, on Date) (*DailyReport, error) {
	tickers := append(pf.Tickers(), BenchmarkTickers...)
	quotes, errs := FetchQuotes(ctx, provider, tickers)
	if errs != nil {
		log.Printf("daily %s: some quotes are missing: %v", on, errs)
	}

	report := &DailyReport{Date: on}
	report.Triggers = CheckStopLosses(pf, quotes)

	var rows []JournalRow
	// Positions() iterates over a snapshot, so selling inside the loop is safe.
	for pos := range pf.Positions() {
		q, ok := quotes[pos.Ticker]
		if !ok {
			rows = append(rows, JournalRow{
				Date: on, Ticker: pos.Ticker, Shares: pos.Shares,
				CostBasis: pos.CostBasis(), StopLoss: pos.StopLoss,
				Action: ActionNoData,
			})
			report.Positions = append(report.Positions, PositionReport{
				Ticker: pos.Ticker, Shares: pos.Shares, BuyPrice: pos.BuyPrice,
				StopLoss: pos.StopLoss, Action: ActionNoData,
			})
			continue
		}

		value := q.Price.Mul(pos.Shares)
		pnl := q.Price.Sub(pos.BuyPrice).Mul(pos.Shares)
		action := ActionHold

		if pos.StopTriggered(q.Price) {
			action = ActionSellStop
			realized, err := pf.Sell(pos.Ticker, pos.Shares, q.Price)
			if err != nil {
				return nil, err
			}
			tradeLog.Append(Trade{
				Date: on, Ticker: pos.Ticker,
				SharesSold: pos.Shares, SellPrice: q.Price,
				CostBasis: pos.CostBasis(), PnL: realized,
				Reason: ReasonStopLoss,
			})
		} else {
			report.TotalValue = report.TotalValue.Add(value)
			report.TotalPnL = report.TotalPnL.Add(pnl)
		}

		rows = append(rows, JournalRow{
			Date: on, Ticker: pos.Ticker, Shares: pos.Shares,
			CostBasis: pos.CostBasis(), StopLoss: pos.StopLoss,
			CurrentPrice: q.Price, TotalValue: value, PnL: pnl,
			Action: action,
		})
		report.Positions = append(report.Positions, PositionReport{
			Ticker: pos.Ticker, Shares: pos.Shares, BuyPrice: pos.BuyPrice,
			StopLoss: pos.StopLoss, CurrentPrice: q.Price,
			Change: q.ChangePercent(), Value: value, PnL: pnl, Action: action,
		})
	}

	report.Cash = pf.Cash()
	report.Equity = report.TotalValue.Add(report.Cash)
	rows = append(rows, JournalRow{
		Date: on, Ticker: TotalTicker,
		TotalValue: report.TotalValue, PnL: report.TotalPnL,
		CashBalance: report.Cash, TotalEquity: report.Equity,
	})
	journal.ReplaceDay(on, rows)

	for _, ticker := range BenchmarkTickers {
		if q, ok := quotes[ticker]; ok {
			report.Benchmarks = append(report.Benchmarks, BenchmarkQuote{
				Ticker: ticker, Price: q.Price, Change: q.ChangePercent(),
			})
		}
	}

	report.Metrics = ComputeMetrics(journal.EquitySeries())
	return report, nil
}

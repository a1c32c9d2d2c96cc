package microcap

import (
	"context"
	"errors"
	"fmt"
	"log"
)

// Benchmark tickers quoted alongside the holdings in the daily report.
var BenchmarkTickers = []string{"^RUT", "IWO", "XBI"}

// ComparisonTicker is the index the portfolio is measured against.
const ComparisonTicker = "^SPX"

// Quote is the daily market data for one ticker.
type Quote struct {
	Ticker    string
	Date      Date
	Price     Money // last close
	PrevPrice Money // previous close
	Volume    int64
}

// ChangePercent returns the change from the previous close.
func (q Quote) ChangePercent() Percent {
	if q.PrevPrice.IsZero() {
		return 0
	}
	return q.Price.Sub(q.PrevPrice).Ratio(q.PrevPrice)
}

// Candle is one day of close-price history.
type Candle struct {
	Date  Date
	Close Money
}

// QuoteProvider fetches market data for a ticker. Tickers use the
// conventional notation (^RUT, IWO, ABEO); each provider maps them to
// its own symbology.
type QuoteProvider interface {
	// DailyQuote returns the latest close and previous close.
	DailyQuote(ctx context.Context, ticker string) (Quote, error)
	// History returns the daily closes within the range, oldest first.
	History(ctx context.Context, ticker string, r Range) ([]Candle, error)
}

// ProviderChain tries each provider in order and falls back to the next
// one on error.
type ProviderChain []QuoteProvider

func (c ProviderChain) DailyQuote(ctx context.Context, ticker string) (Quote, error) {
	var errs error
	for _, p := range c {
		q, err := p.DailyQuote(ctx, ticker)
		if err == nil {
			return q, nil
		}
		log.Printf("quote %s: provider failed, trying next: %v", ticker, err)
		errs = errors.Join(errs, err)
	}
	return Quote{}, fmt.Errorf("no provider could quote %s: %w", ticker, errs)
}

func (c ProviderChain) History(ctx context.Context, ticker string, r Range) ([]Candle, error) {
	var errs error
	for _, p := range c {
		candles, err := p.History(ctx, ticker, r)
		if err == nil {
			return candles, nil
		}
		log.Printf("history %s: provider failed, trying next: %v", ticker, err)
		errs = errors.Join(errs, err)
	}
	return nil, fmt.Errorf("no provider could fetch history for %s: %w", ticker, errs)
}

// FetchQuotes fetches a quote for each ticker. Fetch failures are
// reported in the error but do not abort the whole batch: a position
// with no quote becomes a NO DATA row.
func FetchQuotes(ctx context.Context, provider QuoteProvider, tickers []string) (map[string]Quote, error) {
	quotes := make(map[string]Quote, len(tickers))
	var errs error
	for _, ticker := range tickers {
		q, err := provider.DailyQuote(ctx, ticker)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("no data for %s: %w", ticker, err))
			continue
		}
		quotes[ticker] = q
	}
	return quotes, errs
}

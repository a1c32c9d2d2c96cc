// Package eodhd fetches daily market data from the EODHD HTTP API
// (https://eodhd.com). Responses are cached on disk with a daily expiry
// so that re-running a command does not spend API quota.
package eodhd

import (
	"context"
	"fmt"
	"strings"

	"github.com/etnz/microcap"
	"github.com/shopspring/decimal"
)

// Client queries the EODHD API. It implements microcap.QuoteProvider.
type Client struct {
	apiKey string
}

// NewClient creates a client with the given API key.
func NewClient(apiKey string) *Client { return &Client{apiKey: apiKey} }

// symbol maps a conventional ticker to EODHD's notation: indices live on
// the virtual INDX exchange, plain tickers on the US one.
func symbol(ticker string) string {
	switch ticker {
	case "^RUT":
		return "RUT.INDX"
	case "^SPX", "^GSPC":
		return "GSPC.INDX"
	}
	if strings.HasPrefix(ticker, "^") {
		return strings.TrimPrefix(ticker, "^") + ".INDX"
	}
	return ticker + ".US"
}

// candle is the /api/eod payload item.
type candle struct {
	Date   microcap.Date   `json:"date"`
	Open   decimal.Decimal `json:"open"`
	Close  decimal.Decimal `json:"close"`
	Volume int64           `json:"volume"`
}

// fetchEOD returns the daily candles for a ticker in the given range,
// oldest first. Bounds are included in the response.
func (c *Client) fetchEOD(ctx context.Context, ticker string, r microcap.Range) ([]candle, error) {
	// https://eodhd.com/api/eod/NVD.F?api_token=demo&fmt=json
	addr := fmt.Sprintf("https://eodhd.com/api/eod/%s?fmt=json&api_token=%s&from=%s&to=%s",
		symbol(ticker), c.apiKey, r.From, r.To)

	content := make([]candle, 0)
	if err := jwget(ctx, newDailyCachingClient(), addr, &content); err != nil {
		return nil, err
	}
	return content, nil
}

// DailyQuote returns the latest close and previous close for a ticker.
// It scans the last two weeks of candles so that weekends and holidays
// do not leave the quote empty.
func (c *Client) DailyQuote(ctx context.Context, ticker string) (microcap.Quote, error) {
	today := microcap.Today()
	candles, err := c.fetchEOD(ctx, ticker, microcap.NewRange(today.Add(-14), today))
	if err != nil {
		return microcap.Quote{}, err
	}
	if len(candles) == 0 {
		return microcap.Quote{}, fmt.Errorf("eodhd: no candles for %s", ticker)
	}
	last := candles[len(candles)-1]
	q := microcap.Quote{
		Ticker: ticker,
		Date:   last.Date,
		Price:  microcap.M(last.Close),
		Volume: last.Volume,
	}
	if len(candles) > 1 {
		q.PrevPrice = microcap.M(candles[len(candles)-2].Close)
	}
	return q, nil
}

// History returns the daily closes within the range, oldest first.
func (c *Client) History(ctx context.Context, ticker string, r microcap.Range) ([]microcap.Candle, error) {
	candles, err := c.fetchEOD(ctx, ticker, r)
	if err != nil {
		return nil, err
	}
	out := make([]microcap.Candle, 0, len(candles))
	for _, cd := range candles {
		out = append(out, microcap.Candle{Date: cd.Date, Close: microcap.M(cd.Close)})
	}
	return out, nil
}

var _ microcap.QuoteProvider = (*Client)(nil)

// Package stooq fetches daily market data from stooq.com's keyless CSV
// download endpoint. It is the fallback provider when EODHD is not
// configured or fails.
package stooq

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/microcap"
)

// BaseURL is the download endpoint, overridable in tests.
var BaseURL = "https://stooq.com/q/d/l/"

// Client queries stooq.com. It implements microcap.QuoteProvider.
type Client struct {
	client *http.Client
}

// NewClient creates a stooq client.
func NewClient() *Client {
	return &Client{client: &http.Client{Timeout: 30 * time.Second}}
}

// symbol maps a conventional ticker to stooq's notation: lowercase, US
// stocks suffixed with ".us", indices prefixed with "^".
func symbol(ticker string) string {
	lower := strings.ToLower(ticker)
	switch lower {
	case "^rut", "^spx", "^gspc", "^dji", "^ndq":
		return lower
	}
	if strings.HasPrefix(lower, "^") {
		return lower
	}
	return lower + ".us"
}

// fetchDaily downloads the daily candles for a ticker in the given
// range, oldest first. The payload is a plain CSV:
// Date,Open,High,Low,Close,Volume.
func (c *Client) fetchDaily(ctx context.Context, ticker string, r microcap.Range) ([]microcap.Candle, error) {
	addr := fmt.Sprintf("%s?s=%s&d1=%s&d2=%s&i=d",
		BaseURL, symbol(ticker), compactDate(r.From), compactDate(r.To))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}

	cr := csv.NewReader(resp.Body)
	cr.FieldsPerRecord = -1 // stooq answers "No data" as a single field
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid stooq csv for %s: %w", ticker, err)
	}

	var candles []microcap.Candle
	for i, record := range records {
		if i == 0 || len(record) < 5 {
			continue // header or "No data"
		}
		on, err := microcap.ParseDate(record[0])
		if err != nil {
			return nil, fmt.Errorf("stooq row %d: %w", i, err)
		}
		close, err := microcap.ParseMoney(record[4])
		if err != nil {
			return nil, fmt.Errorf("stooq row %d: %w", i, err)
		}
		candles = append(candles, microcap.Candle{Date: on, Close: close})
	}
	if len(candles) == 0 {
		return nil, fmt.Errorf("stooq: no data for %s", ticker)
	}
	return candles, nil
}

// DailyQuote returns the latest close and previous close for a ticker.
func (c *Client) DailyQuote(ctx context.Context, ticker string) (microcap.Quote, error) {
	today := microcap.Today()
	candles, err := c.fetchDaily(ctx, ticker, microcap.NewRange(today.Add(-14), today))
	if err != nil {
		return microcap.Quote{}, err
	}
	last := candles[len(candles)-1]
	q := microcap.Quote{Ticker: ticker, Date: last.Date, Price: last.Close}
	if len(candles) > 1 {
		q.PrevPrice = candles[len(candles)-2].Close
	}
	return q, nil
}

// History returns the daily closes within the range, oldest first.
func (c *Client) History(ctx context.Context, ticker string, r microcap.Range) ([]microcap.Candle, error) {
	return c.fetchDaily(ctx, ticker, r)
}

// compactDate formats a date the way stooq's d1/d2 parameters expect: yyyymmdd.
func compactDate(d microcap.Date) string {
	return strconv.Itoa(d.Year()*10000 + int(d.Month())*100 + d.Day())
}

var _ microcap.QuoteProvider = (*Client)(nil)
